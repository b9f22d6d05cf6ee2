package handlers

import (
	"net/http"

	"energy-insights/internal/api/models"
	"energy-insights/internal/export"
	"energy-insights/internal/metrics"

	"github.com/gin-gonic/gin"
)

// ListSites handles GET /api/v1/sites
func (h *Handler) ListSites(c *gin.Context) {
	src, err := h.source(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_API_KEY", err.Error(), nil)
		return
	}
	recs, err := src.ListSites(c.Request.Context())
	if err != nil {
		writeBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SitesResponse{Sites: h.decoder.DecodeSites(recs)})
}

// GetKPI handles GET /api/v1/sites/:id/kpi
func (h *Handler) GetKPI(c *gin.Context) {
	siteID := c.Param("id")
	src, err := h.source(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_API_KEY", err.Error(), nil)
		return
	}
	rec, err := src.SiteKPI(c.Request.Context(), siteID)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	snap := metrics.NormalizeKPI(h.decoder.Aliases, siteID, rec)
	if c.Query("format") == "csv" {
		h.writeCSV(c, "kpi_"+siteID+".csv", export.KPIRecords(snap), export.KPIColumns)
		return
	}
	c.JSON(http.StatusOK, snap)
}
