// internal/handlers/insights/insights_handler.go
package insights

import (
	"net/http"

	"tedtam-service/internal/middleware"
	"tedtam-service/internal/pkg/response"
	"tedtam-service/internal/service/mirror"
	"tedtam-service/internal/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InsightsHandler serves the derived views computed over the case mirror.
// All three views are pure functions of the current snapshot.
type InsightsHandler struct {
	mirror *mirror.Mirror
	logger *zap.Logger
}

func NewInsightsHandler(m *mirror.Mirror, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		mirror: m,
		logger: logger,
	}
}

// GetDashboard returns the headline counts and rates.
func (h *InsightsHandler) GetDashboard(c *gin.Context) {
	snapshot := h.mirror.Snapshot()
	response.Success(c, http.StatusOK, "dashboard retrieved", stats.Dashboard(snapshot))
}

// GetPerformance returns the per-branch and per-team breakdown.
func (h *InsightsHandler) GetPerformance(c *gin.Context) {
	snapshot := h.mirror.Snapshot()
	response.Success(c, http.StatusOK, "performance retrieved", stats.Performance(snapshot))
}

// GetWallet returns earned versus pending commission totals.
func (h *InsightsHandler) GetWallet(c *gin.Context) {
	snapshot := h.mirror.Snapshot()
	response.Success(c, http.StatusOK, "wallet retrieved", stats.Wallet(snapshot))
}

// RefreshMirror forces a full refetch scoped to the caller on a
// permission fallback, then returns the fresh snapshot size.
func (h *InsightsHandler) RefreshMirror(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	list := h.mirror.Refresh(c.Request.Context(), agentID)
	response.Success(c, http.StatusOK, "mirror refreshed", gin.H{
		"customers": len(list),
	})
}
