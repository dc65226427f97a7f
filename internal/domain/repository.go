package domain

import (
	"context"
	"io"
)

// interface for statistics API calls
type StatisticsClient interface {
	FetchOrders(ctx context.Context, req OrdersRequest) ([]Record, error)
	FetchSales(ctx context.Context, req SalesRequest) ([]Record, error)
	FetchKeywordStats(ctx context.Context, req KeywordsRequest) (*KeywordStatsResponse, error)
}

// interface for spreadsheet output
type RowExporter interface {
	Export(ctx context.Context, path string, rows []Record) error
	Write(w io.Writer, rows []Record) error
}
