package handlers

import (
	"net/http"
	"time"

	"energy-insights/internal/analysis"
	"energy-insights/internal/api/models"
	"energy-insights/internal/data"
	"energy-insights/internal/export"

	"github.com/gin-gonic/gin"
)

// GetTrend handles GET /api/v1/sites/:id/trend
func (h *Handler) GetTrend(c *gin.Context) {
	siteID := c.Param("id")
	var q models.TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	loc := h.cfg.Location()
	if q.Timezone != "" {
		l, err := time.LoadLocation(q.Timezone)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_TIMEZONE", err.Error(), nil)
			return
		}
		loc = l
	}
	hours := h.windowHours(q.Hours)
	if !validWindow(hours) {
		writeError(c, http.StatusBadRequest, "INVALID_WINDOW", "hours must be a positive number", nil)
		return
	}
	src, err := h.source(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_API_KEY", err.Error(), nil)
		return
	}

	bundle := data.FetchSiteBundle(c.Request.Context(), src, siteID, hours, data.PartSeries, h.logger)
	if err, failed := bundle.Errors["series"]; failed {
		writeBackendError(c, err)
		return
	}

	agg, err := analysis.Aggregate(h.decoder.DecodeSeries(bundle.Series), hours, loc)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_WINDOW", err.Error(), nil)
		return
	}

	if q.Format == "csv" {
		h.writeCSV(c, "trend_"+siteID+".csv", export.TrendRecords(agg), export.TrendColumns)
		return
	}
	c.JSON(http.StatusOK, models.TrendResponse{SiteID: siteID, TrendAggregate: agg})
}
