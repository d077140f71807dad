package ratings

import (
	"log/slog"
	"net/http"
	"strconv"

	"DiningAPI/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Handler exposes the rating aggregator over HTTP
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// PostRating stores a rating under the hall's current meal period
// POST /api/ratings
func (h *Handler) PostRating(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse(c, []string{"Invalid request body"}))
		return
	}

	submission, err := h.service.SubmitRating(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(c, submission))
}

// GET /api/ratings/averages
func (h *Handler) GetAverages(c *gin.Context) {
	averages, err := h.service.GetAverages(c.Request.Context(), c.Query("university"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(c, averages))
}

// GET /api/ratings/user
func (h *Handler) GetUserRating(c *gin.Context) {
	deviceID := c.Query("device_id")
	hallName := c.Query("hall_name")
	university := c.Query("university")
	if deviceID == "" || hallName == "" || university == "" {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse(c, []string{"Missing required parameters"}))
		return
	}

	rating, err := h.service.GetUserRating(c.Request.Context(), deviceID, hallName, university)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(c, rating))
}

// GET /api/leaderboard
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit := DefaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.CreateErrorResponse(c, []string{"limit must be an integer"}))
			return
		}
		limit = parsed
	}

	leaderboard, err := h.service.CurrentLeaderboard(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(c, leaderboard))
}

// GET /api/user/stats
func (h *Handler) GetUserStats(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse(c, []string{"Missing device_id"}))
		return
	}

	stats, err := h.service.CurrentUserStats(c.Request.Context(), deviceID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(c, stats))
}

// fail answers validation errors with 400 and hides everything else behind a 500
func (h *Handler) fail(c *gin.Context, err error) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse(c, []string{validation.Message}))
		return
	}
	h.logger.Error("ratings request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, common.CreateErrorResponse(c, []string{"internal server error"}))
}

//   This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
