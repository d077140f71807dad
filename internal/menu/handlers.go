package menu

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"DiningAPI/internal/common"

	"github.com/gin-gonic/gin"
)

// Refresher starts a background refresh, returning false when one is already running
type Refresher interface {
	Trigger() bool
}

// DocumentSource is the read side of the menu repository
type DocumentSource interface {
	Latest(ctx context.Context) (Document, error)
}

// Handler serves the menu document and the manual refresh trigger
type Handler struct {
	docs         DocumentSource
	refresher    Refresher
	logger       *slog.Logger
	pollInterval time.Duration
	pollAttempts int
}

// NewHandler creates a menu handler that waits up to wait for the first document to appear
func NewHandler(docs DocumentSource, refresher Refresher, wait time.Duration, logger *slog.Logger) *Handler {
	interval := time.Second
	if wait < interval {
		interval = wait
	}
	attempts := 0
	if interval > 0 {
		attempts = int(wait / interval)
	}
	return &Handler{
		docs:         docs,
		refresher:    refresher,
		logger:       logger,
		pollInterval: interval,
		pollAttempts: attempts,
	}
}

// GetDiningHalls returns the canonical menu document
// GET /api/dining-halls
func (h *Handler) GetDiningHalls(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := h.docs.Latest(ctx)
	if err != nil {
		h.logger.Error("load menu document", "error", err)
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse(c, []string{"failed to load menu data"}))
		return
	}

	if doc == nil {
		// First request before any refresh finished: kick one off and wait for it
		h.refresher.Trigger()
		doc, err = h.waitForDocument(ctx)
		if err != nil {
			h.logger.Error("wait for menu document", "error", err)
		}
		if doc == nil {
			c.JSON(http.StatusServiceUnavailable, common.CreateErrorResponse(c, []string{"Menu data not available"}))
			return
		}
	}

	c.JSON(http.StatusOK, common.CreateSuccessResponse(c, NormalizeDocument(doc)))
}

// Refresh starts an asynchronous refresh; a refresh already in flight is not an error
// GET /api/refresh
func (h *Handler) Refresh(c *gin.Context) {
	started := h.refresher.Trigger()
	h.logger.Info("manual refresh requested", "started", started)
	c.JSON(http.StatusOK, common.CreateSuccessResponse(c, gin.H{
		"status":  "success",
		"message": "Refresh started",
	}))
}

func (h *Handler) waitForDocument(ctx context.Context) (Document, error) {
	for i := 0; i < h.pollAttempts; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(h.pollInterval):
		}
		doc, err := h.docs.Latest(ctx)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			return doc, nil
		}
	}
	return nil, nil
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
