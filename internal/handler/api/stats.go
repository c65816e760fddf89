package api

import (
	"net/http"

	resdto "resto-api/internal/handler/dto/response"
	"resto-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsQueries queries.StatsQueries
}

func NewStatsHandler(statsQueries queries.StatsQueries) *StatsHandler {
	return &StatsHandler{statsQueries: statsQueries}
}

// @Summary Revenue statistics
// @Description Total, six-month series, top dishes, per-kind and per-weekday breakdowns
// @Tags stats
// @Produce json
// @Success 200 {object} resdto.RevenueStatsResponse
// @Router /stats/revenue [get]
func (h *StatsHandler) Revenue(c *gin.Context) {
	view, err := h.statsQueries.Revenue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRevenueStatsView(view))
}

// @Summary Monthly revenue histogram
// @Description Six months of revenue, zero-filled for empty months
// @Tags stats
// @Produce json
// @Success 200 {array} resdto.MonthlyRevenueResponse
// @Router /stats/monthly [get]
func (h *StatsHandler) Monthly(c *gin.Context) {
	points, err := h.statsQueries.MonthlyHistogram(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromMonthlyRevenuePoints(points))
}
