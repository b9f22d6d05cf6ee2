package handlers

import (
	"net/http"
	"time"

	"energy-insights/internal/analysis"
	"energy-insights/internal/api/models"
	"energy-insights/internal/data"
	"energy-insights/internal/export"
	"energy-insights/internal/metrics"
	"energy-insights/internal/model"
	"energy-insights/internal/normalize"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListOpportunities handles GET /api/v1/sites/:id/opportunities
func (h *Handler) ListOpportunities(c *gin.Context) {
	siteID := c.Param("id")
	var q models.OpportunityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	src, err := h.source(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_API_KEY", err.Error(), nil)
		return
	}

	parts := data.PartOpportunities
	if !normalize.Finite(q.Price) {
		parts |= data.PartKPI
	}
	bundle := data.FetchSiteBundle(c.Request.Context(), src, siteID, h.cfg.Trend.WindowHours, parts, h.logger)
	if err, failed := bundle.Errors["opportunities"]; failed {
		writeBackendError(c, err)
		return
	}

	price, priceSource := h.resolvePrice(q.Price, siteID, bundle.KPI)
	ranked := analysis.RankOpportunities(
		h.decoder.DecodeOpportunities(bundle.Opportunities),
		price,
		h.cfg.RankOptions(),
	)

	if q.Format == "csv" {
		h.writeCSV(c, "opportunities_"+siteID+".csv", export.OpportunityRecords(ranked), export.OpportunityColumns)
		return
	}
	c.JSON(http.StatusOK, models.OpportunitiesResponse{
		SiteID:        siteID,
		PricePerKWh:   price,
		PriceSource:   priceSource,
		Opportunities: ranked,
	})
}

// resolvePrice applies the price precedence: request, site KPI, config.
func (h *Handler) resolvePrice(requested *float64, siteID string, kpi model.Record) (*float64, string) {
	if normalize.Finite(requested) {
		return requested, "request"
	}
	if kpi != nil {
		snap := metrics.NormalizeKPI(h.decoder.Aliases, siteID, kpi)
		if snap.PricePerKWh != nil {
			return snap.PricePerKWh, "kpi"
		}
	}
	if p := h.cfg.FallbackPrice(); p != nil {
		return p, "config"
	}
	return nil, "none"
}

// CreateOpportunity handles POST /api/v1/sites/:id/opportunities
func (h *Handler) CreateOpportunity(c *gin.Context) {
	siteID := c.Param("id")
	var req models.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	src, err := h.source(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_API_KEY", err.Error(), nil)
		return
	}

	now := time.Now().UTC()
	o := model.Opportunity{
		ID:             uuid.NewString(),
		SiteID:         siteID,
		Name:           req.Name,
		Description:    req.Description,
		AnnualKWhSaved: req.AnnualKWhSaved,
		CapexCost:      req.CapexCost,
		PaybackYears:   req.PaybackYears,
		CO2TonsPerYear: req.CO2TonsPerYear,
		PricePerKWh:    req.PricePerKWh,
		Source:         model.SourceManual,
		CreatedAt:      &now,
	}

	stored, err := src.CreateOpportunity(c.Request.Context(), siteID, o)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	if stored != nil {
		decoded := h.decoder.DecodeOpportunity(stored)
		if decoded.ID != "" {
			o = decoded
			// The backend store may not echo provenance back.
			o.Source = model.SourceManual
		}
	}
	h.logger.Info("manual opportunity created",
		zap.String("site_id", siteID), zap.String("opportunity_id", o.ID))
	c.JSON(http.StatusCreated, o)
}
