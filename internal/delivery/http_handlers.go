package delivery

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"wbreports/internal/domain"
	"wbreports/internal/usecase"
	"wbreports/pkg/logger"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handles HTTP requests
type HTTPHandlers struct {
	reportService *usecase.ReportService
	exporter      domain.RowExporter
	logger        *logger.Logger
}

// creates new HTTP handlers
func NewHTTPHandlers(reportService *usecase.ReportService, exporter domain.RowExporter, logger *logger.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		reportService: reportService,
		exporter:      exporter,
		logger:        logger,
	}
}

// HealthCheck reports liveness
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "wbreports",
		"description": "Wildberries statistics reports with display field names",
		"endpoints": gin.H{
			"orders": gin.H{
				"path":       "/api/v1/reports/orders",
				"parameters": gin.H{"date": "Required: orders since date (YYYY-MM-DD)"},
				"example":    "/api/v1/reports/orders?date=2025-03-09",
			},
			"sales": gin.H{
				"path": "/api/v1/reports/sales",
				"parameters": gin.H{
					"date": "Required: sales date (YYYY-MM-DD)",
					"flag": "Optional: 1 for all sales on date (default), 0 for sales changed since date",
				},
				"example": "/api/v1/reports/sales?date=2025-03-09&flag=1",
			},
			"keywords": gin.H{
				"path": "/api/v1/reports/keywords",
				"parameters": gin.H{
					"campaign_id": "Required: advertising campaign id",
					"from":        "Required: period start (YYYY-MM-DD)",
					"to":          "Required: period end, less than 7 days after start",
				},
				"example": "/api/v1/reports/keywords?campaign_id=23827889&from=2025-03-09&to=2025-03-12",
			},
		},
		"formats":    []string{"json", "xlsx"},
		"request_id": c.GetString("request_id"),
	})
}

// GetOrders returns the orders report
func (h *HTTPHandlers) GetOrders(c *gin.Context) {
	report, err := h.reportService.Orders(c.Request.Context(), domain.OrdersRequest{DateFrom: c.Query("date")})
	h.respond(c, report, err)
}

// GetSales returns the sales report
func (h *HTTPHandlers) GetSales(c *gin.Context) {
	flag := domain.FlagSameDate
	if raw := c.Query("flag"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err == nil {
			flag, err = domain.ParseSalesFlag(v)
		}
		if err != nil {
			h.badRequest(c, fmt.Sprintf("flag must be 0 or 1, got %q", raw))
			return
		}
	}

	report, err := h.reportService.Sales(c.Request.Context(), domain.SalesRequest{DateFrom: c.Query("date"), Flag: flag})
	h.respond(c, report, err)
}

// GetKeywords returns the keyword statistics report of a campaign
func (h *HTTPHandlers) GetKeywords(c *gin.Context) {
	campaignID, err := strconv.ParseInt(c.Query("campaign_id"), 10, 64)
	if err != nil || campaignID <= 0 {
		h.badRequest(c, "campaign_id must be a positive integer")
		return
	}

	req := domain.KeywordsRequest{
		CampaignID: campaignID,
		DateFrom:   c.Query("from"),
		DateTo:     c.Query("to"),
	}
	report, err := h.reportService.Keywords(c.Request.Context(), req)
	h.respond(c, report, err)
}

func (h *HTTPHandlers) respond(c *gin.Context, report *usecase.Report, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}

	if c.Query("format") == "xlsx" {
		var buf bytes.Buffer
		if err := h.exporter.Write(&buf, report.Rows); err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(report.FileName))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":     report.Kind,
		"count":      len(report.Rows),
		"rows":       report.Rows,
		"request_id": c.GetString("request_id"),
	})
}

func (h *HTTPHandlers) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "Invalid parameters",
		"message":    message,
		"request_id": c.GetString("request_id"),
	})
}

// fail maps domain errors to HTTP statuses
func (h *HTTPHandlers) fail(c *gin.Context, err error) {
	var rangeErr *domain.InvalidRangeError
	var apiErr *domain.APIRequestError

	status := http.StatusInternalServerError
	body := gin.H{
		"error":      "Report failed",
		"message":    err.Error(),
		"request_id": c.GetString("request_id"),
	}

	switch {
	case errors.As(err, &rangeErr), errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
		body["error"] = "Invalid parameters"
	case errors.As(err, &apiErr):
		status = http.StatusBadGateway
		body["error"] = "Statistics API request failed"
		body["upstream_status"] = apiErr.StatusCode
	case errors.Is(err, domain.ErrNetwork):
		status = http.StatusGatewayTimeout
		body["error"] = "Statistics API unreachable"
	}

	if status >= http.StatusInternalServerError {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Report request failed")
	}
	c.JSON(status, body)
}
