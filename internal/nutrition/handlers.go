package nutrition

import (
	"log/slog"
	"net/http"

	"DiningAPI/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Handler exposes single-food lookups for clients that want nutrition for custom items
type Handler struct {
	search Searcher
	logger *slog.Logger
}

// NewHandler creates a lookup handler; a nil searcher answers 503
func NewHandler(search Searcher, logger *slog.Logger) *Handler {
	return &Handler{search: search, logger: logger}
}

// GET /api/usda-search?q=
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse(c, []string{"missing_query"}))
		return
	}
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, common.CreateErrorResponse(c, []string{"nutrition lookup not configured"}))
		return
	}

	food, err := h.search.SearchFood(c.Request.Context(), query)
	if errors.Is(err, ErrUnauthorized) {
		h.logger.Error("usda api key rejected")
		c.JSON(http.StatusServiceUnavailable, common.CreateErrorResponse(c, []string{"nutrition lookup not configured"}))
		return
	}
	if err != nil {
		h.logger.Warn("usda search failed", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse(c, []string{"search_failed"}))
		return
	}
	if food == nil {
		c.JSON(http.StatusNotFound, common.CreateErrorResponse(c, []string{"not_found"}))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(c, food))
}

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/usda-search", h.Search)
}
