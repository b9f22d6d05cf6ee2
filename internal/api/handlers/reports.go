package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"energy-insights/internal/api/models"
	"energy-insights/internal/data"
	"energy-insights/internal/export"
	"energy-insights/internal/model"
	"energy-insights/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetReport handles GET /api/v1/reports
func (h *Handler) GetReport(c *gin.Context) {
	var q models.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
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

	ctx := c.Request.Context()
	siteRecs, err := src.ListSites(ctx)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	sites := h.decoder.DecodeSites(siteRecs)

	bundles := data.FetchBundles(ctx, src,
		lo.Map(sites, func(s model.Site, _ int) string { return s.ID }),
		hours, data.PartSummary|data.PartInsights, h.cfg.Backend.MaxConcurrency, h.logger)

	inputs := make([]report.Input, len(sites))
	var partial []models.SiteFailure
	for i, site := range sites {
		b := bundles[i]
		inputs[i] = report.Input{
			Site:     site,
			Summary:  h.decoder.DecodeSiteSummary(b.Summary),
			Insights: h.decoder.DecodeInsights(b.Insights),
		}
		parts := lo.Keys(b.Errors)
		sort.Strings(parts)
		for _, part := range parts {
			partial = append(partial, models.SiteFailure{
				SiteID:  site.ID,
				Part:    part,
				Message: b.Errors[part].Error(),
			})
		}
	}
	rows := report.BuildRows(inputs, hours)

	switch q.Format {
	case "csv":
		h.writeCSV(c, fmt.Sprintf("report_%gh.csv", hours), export.ReportRecords(rows), export.ReportColumns)
	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, export.DefaultSheet, export.ReportRecords(rows), export.ReportColumns); err != nil {
			writeError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error(), nil)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%gh.xlsx"`, hours))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	default:
		c.JSON(http.StatusOK, models.ReportResponse{
			WindowHours: hours,
			Rows:        rows,
			Totals:      report.Summarize(rows),
			Partial:     partial,
		})
	}
}

func (h *Handler) writeCSV(c *gin.Context, filename string, rows []model.Record, columns []export.Column) {
	text, err := export.Serialize(rows, columns, h.cfg.ExportOptions())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error(), nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(text))
}
