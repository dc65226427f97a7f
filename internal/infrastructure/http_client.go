package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wbreports/internal/domain"
	"wbreports/pkg/logger"
	"wbreports/pkg/metrics"

	"golang.org/x/time/rate"
)

const (
	ordersPath   = "/api/v1/supplier/orders"
	salesPath    = "/api/v1/supplier/sales"
	keywordsPath = "/adv/v0/stats/keywords"

	maxErrorBody = 512
)

var _ domain.StatisticsClient = (*HTTPClient)(nil)

// implements StatisticsClient interface
type HTTPClient struct {
	client        *http.Client
	statisticsURL string
	advertURL     string
	token         string
	authScheme    string
	logger        *logger.Logger
	metrics       *metrics.Metrics
	rateLimiter   *rate.Limiter
}

type HTTPClientConfig struct {
	StatisticsURL      string
	AdvertURL          string
	Token              string
	AuthScheme         string
	Timeout            time.Duration
	RateLimitPerMinute int
}

// creates a new statistics API client
func NewHTTPClient(cfg HTTPClientConfig, logger *logger.Logger, metrics *metrics.Metrics) *HTTPClient {
	limit := rate.Inf
	if cfg.RateLimitPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RateLimitPerMinute))
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		statisticsURL: strings.TrimRight(cfg.StatisticsURL, "/"),
		advertURL:     strings.TrimRight(cfg.AdvertURL, "/"),
		token:         cfg.Token,
		authScheme:    cfg.AuthScheme,
		logger:        logger,
		metrics:       metrics,
		rateLimiter:   rate.NewLimiter(limit, 1),
	}
}

// fetches orders starting at req.DateFrom
func (c *HTTPClient) FetchOrders(ctx context.Context, req domain.OrdersRequest) ([]domain.Record, error) {
	query := url.Values{}
	query.Set("dateFrom", req.DateFrom)

	var records []domain.Record
	if err := c.getJSON(ctx, string(domain.ReportOrders), c.statisticsURL+ordersPath, query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// fetches sales for req.DateFrom with the given flag
func (c *HTTPClient) FetchSales(ctx context.Context, req domain.SalesRequest) ([]domain.Record, error) {
	query := url.Values{}
	query.Set("dateFrom", req.DateFrom)
	query.Set("flag", strconv.Itoa(int(req.Flag)))

	var records []domain.Record
	if err := c.getJSON(ctx, string(domain.ReportSales), c.statisticsURL+salesPath, query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// fetches per-keyword statistics of a campaign
func (c *HTTPClient) FetchKeywordStats(ctx context.Context, req domain.KeywordsRequest) (*domain.KeywordStatsResponse, error) {
	query := url.Values{}
	query.Set("advert_id", strconv.FormatInt(req.CampaignID, 10))
	query.Set("from", req.DateFrom)
	query.Set("to", req.DateTo)

	var resp domain.KeywordStatsResponse
	if err := c.getJSON(ctx, string(domain.ReportKeywords), c.advertURL+keywordsPath, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, api, endpoint string, query url.Values, dest any) error {
	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure(api, "rate_limit")
		return fmt.Errorf("rate limit wait aborted: %w", err)
	}

	fullURL := endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(api, "request_creation")
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authorization())

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(api, "network_error")
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &domain.NetworkError{API: api, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(api, "read_body")
		return &domain.NetworkError{API: api, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordExternalAPICall(api, fmt.Sprintf("error_%d", resp.StatusCode), duration)
		bodyStr := string(body)
		if len(bodyStr) > maxErrorBody {
			bodyStr = bodyStr[:maxErrorBody]
		}
		return &domain.APIRequestError{API: api, StatusCode: resp.StatusCode, Body: bodyStr}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.metrics.RecordExternalAPIFailure(api, "json_parse")
		return fmt.Errorf("failed to parse %s response: %w", api, err)
	}

	c.metrics.RecordExternalAPICall(api, "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":      endpoint,
		"duration": duration,
		"bytes":    len(body),
	}).Info("Fetched statistics")

	return nil
}

func (c *HTTPClient) authorization() string {
	if c.authScheme == "" {
		return c.token
	}
	return c.authScheme + " " + c.token
}
