package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"wbreports/internal/domain"
	"wbreports/pkg/logger"
	"wbreports/pkg/metrics"
)

// Report is the outcome of a single fetch and transform pass
type Report struct {
	Kind     domain.ReportKind
	FileName string
	Rows     []domain.Record
}

type ReportService struct {
	client    domain.StatisticsClient
	exporter  domain.RowExporter
	logger    *logger.Logger
	metrics   *metrics.Metrics
	outputDir string
}

func NewReportService(
	client domain.StatisticsClient,
	exporter domain.RowExporter,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	outputDir string,
) *ReportService {
	return &ReportService{
		client:    client,
		exporter:  exporter,
		logger:    logger,
		metrics:   metrics,
		outputDir: outputDir,
	}
}

// Orders fetches orders and renames them for display
func (s *ReportService) Orders(ctx context.Context, req domain.OrdersRequest) (*Report, error) {
	if err := domain.ValidateDate(req.DateFrom); err != nil {
		return nil, err
	}

	records, err := s.client.FetchOrders(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return &Report{
		Kind:     domain.ReportOrders,
		FileName: req.FileName(),
		Rows:     RenameAll(records, domain.OrdersMapping),
	}, nil
}

// Sales fetches sales and renames them for display
func (s *ReportService) Sales(ctx context.Context, req domain.SalesRequest) (*Report, error) {
	if err := domain.ValidateDate(req.DateFrom); err != nil {
		return nil, err
	}

	records, err := s.client.FetchSales(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	return &Report{
		Kind:     domain.ReportSales,
		FileName: req.FileName(),
		Rows:     RenameAll(records, domain.SalesMapping),
	}, nil
}

// Keywords validates the period before calling the API, then flattens the
// per-date keyword statistics.
func (s *ReportService) Keywords(ctx context.Context, req domain.KeywordsRequest) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.FetchKeywordStats(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch keyword statistics: %w", err)
	}

	return &Report{
		Kind:     domain.ReportKeywords,
		FileName: req.FileName(),
		Rows:     FlattenKeywordStats(req.CampaignID, resp.Keywords, domain.KeywordsMapping),
	}, nil
}

// Run builds a report with build and writes it to the output directory.
// It returns the path of the written file.
func (s *ReportService) Run(ctx context.Context, kind domain.ReportKind, build func(context.Context) (*Report, error)) (string, error) {
	start := time.Now()
	ctx = logger.WithReport(ctx, string(kind))

	log := s.logger.WithContext(ctx)
	log.Info("Starting report")

	report, err := build(ctx)
	if err != nil {
		s.metrics.RecordReportJob(string(kind), "failed", time.Since(start))
		return "", err
	}

	path := filepath.Join(s.outputDir, report.FileName)
	if err := s.exporter.Export(ctx, path, report.Rows); err != nil {
		s.metrics.RecordReportJob(string(kind), "failed", time.Since(start))
		return "", fmt.Errorf("failed to export report: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordReportJob(string(kind), "success", duration)
	s.metrics.RecordReportRows(string(kind), len(report.Rows))

	log.WithFields(map[string]any{
		"duration": duration,
		"rows":     len(report.Rows),
		"path":     path,
	}).Info("Report completed successfully")

	return path, nil
}

// RunOrders fetches orders and writes the spreadsheet
func (s *ReportService) RunOrders(ctx context.Context, req domain.OrdersRequest) (string, error) {
	return s.Run(ctx, domain.ReportOrders, func(ctx context.Context) (*Report, error) {
		return s.Orders(ctx, req)
	})
}

// RunSales fetches sales and writes the spreadsheet
func (s *ReportService) RunSales(ctx context.Context, req domain.SalesRequest) (string, error) {
	return s.Run(ctx, domain.ReportSales, func(ctx context.Context) (*Report, error) {
		return s.Sales(ctx, req)
	})
}

// RunKeywords fetches keyword statistics and writes the spreadsheet
func (s *ReportService) RunKeywords(ctx context.Context, req domain.KeywordsRequest) (string, error) {
	return s.Run(ctx, domain.ReportKeywords, func(ctx context.Context) (*Report, error) {
		return s.Keywords(ctx, req)
	})
}
