package domain

import (
	"fmt"
	"time"
)

// DateLayout is the date format accepted by the statistics API
const DateLayout = "2006-01-02"

// MaxKeywordRange is the exclusive upper bound of a keyword statistics period
const MaxKeywordRange = 7 * 24 * time.Hour

// Keys injected into every keyword statistics row
const (
	CampaignIDField = "ID_кампании"
	ReportDateField = "Отчетная дата"
)

type ReportKind string

const (
	ReportOrders   ReportKind = "orders"
	ReportSales    ReportKind = "sales"
	ReportKeywords ReportKind = "keywords"
)

// FieldMapping translates source API field names to display names
type FieldMapping map[string]string

// SalesFlag selects which sales the API returns for dateFrom
type SalesFlag int

const (
	// FlagChangedSince returns records changed since dateFrom
	FlagChangedSince SalesFlag = 0
	// FlagSameDate returns all records dated exactly dateFrom
	FlagSameDate SalesFlag = 1
)

// ParseSalesFlag accepts the numeric API value
func ParseSalesFlag(v int) (SalesFlag, error) {
	switch SalesFlag(v) {
	case FlagChangedSince, FlagSameDate:
		return SalesFlag(v), nil
	}
	return 0, fmt.Errorf("%w: sales flag %d must be 0 or 1", ErrInvalidRequest, v)
}

func (f SalesFlag) String() string {
	if f == FlagSameDate {
		return "same_date"
	}
	return "changed_since"
}

type OrdersRequest struct {
	DateFrom string
}

type SalesRequest struct {
	DateFrom string
	Flag     SalesFlag
}

type KeywordsRequest struct {
	CampaignID int64
	DateFrom   string
	DateTo     string
}

// KeywordDateGroup is the per-date block of the keyword statistics payload
type KeywordDateGroup struct {
	Date  string   `json:"date"`
	Stats []Record `json:"stats"`
}

type KeywordStatsResponse struct {
	Keywords []KeywordDateGroup `json:"keywords"`
}

// ValidateDate checks that s is a YYYY-MM-DD date
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidRequest, s)
	}
	return nil
}

// Validate checks the campaign id and that the period is non-empty and
// shorter than seven days.
func (r KeywordsRequest) Validate() error {
	if r.CampaignID <= 0 {
		return fmt.Errorf("%w: campaign id must be positive, got %d", ErrInvalidRequest, r.CampaignID)
	}

	from, err := time.Parse(DateLayout, r.DateFrom)
	if err != nil {
		return &InvalidRangeError{From: r.DateFrom, To: r.DateTo, Reason: "date_from is not a YYYY-MM-DD date"}
	}
	to, err := time.Parse(DateLayout, r.DateTo)
	if err != nil {
		return &InvalidRangeError{From: r.DateFrom, To: r.DateTo, Reason: "date_to is not a YYYY-MM-DD date"}
	}

	if !from.Before(to) {
		return &InvalidRangeError{From: r.DateFrom, To: r.DateTo, Reason: "period start must be before period end"}
	}
	if to.Sub(from) >= MaxKeywordRange {
		return &InvalidRangeError{From: r.DateFrom, To: r.DateTo, Reason: "period must be shorter than 7 days"}
	}
	return nil
}

func (r OrdersRequest) FileName() string {
	return fmt.Sprintf("Отчет_по_заказам_%s.xlsx", r.DateFrom)
}

func (r SalesRequest) FileName() string {
	return fmt.Sprintf("Отчет_по_продажам_%s.xlsx", r.DateFrom)
}

func (r KeywordsRequest) FileName() string {
	return fmt.Sprintf("Отчет_по_статистике_кампании_%d_по_ключевым_фразам_%s_%s.xlsx", r.CampaignID, r.DateFrom, r.DateTo)
}
