package domain_test

import (
	"errors"
	"testing"

	"wbreports/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsRequestValidate(t *testing.T) {
	t.Parallel()

	const campaign = 23827889

	tests := map[string]struct {
		campaignID int64
		from       string
		to         string

		wantRangeErr   bool
		wantInvalidReq bool
	}{
		"Five day period":         {campaignID: campaign, from: "2025-03-09", to: "2025-03-14"},
		"One day period":          {campaignID: campaign, from: "2025-03-09", to: "2025-03-10"},
		"Six day period":          {campaignID: campaign, from: "2025-03-09", to: "2025-03-15"},
		"Period across month end": {campaignID: campaign, from: "2025-02-26", to: "2025-03-04"},

		"Same start and end": {campaignID: campaign, from: "2025-03-09", to: "2025-03-09", wantRangeErr: true},
		"End before start":   {campaignID: campaign, from: "2025-03-12", to: "2025-03-09", wantRangeErr: true},
		"Exactly seven days": {campaignID: campaign, from: "2025-03-09", to: "2025-03-16", wantRangeErr: true},
		"Eleven day period":  {campaignID: campaign, from: "2025-03-09", to: "2025-03-20", wantRangeErr: true},
		"Malformed start":    {campaignID: campaign, from: "09.03.2025", to: "2025-03-12", wantRangeErr: true},
		"Malformed end":      {campaignID: campaign, from: "2025-03-09", to: "2025-13-01", wantRangeErr: true},

		"Zero campaign id":     {campaignID: 0, from: "2025-03-09", to: "2025-03-12", wantInvalidReq: true},
		"Negative campaign id": {campaignID: -5, from: "2025-03-09", to: "2025-03-12", wantInvalidReq: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := domain.KeywordsRequest{CampaignID: tc.campaignID, DateFrom: tc.from, DateTo: tc.to}.Validate()

			switch {
			case tc.wantRangeErr:
				var rangeErr *domain.InvalidRangeError
				require.ErrorAs(t, err, &rangeErr, "Validate should return an InvalidRangeError")
				assert.Equal(t, tc.from, rangeErr.From)
				assert.Equal(t, tc.to, rangeErr.To)
			case tc.wantInvalidReq:
				require.ErrorIs(t, err, domain.ErrInvalidRequest, "Validate should reject the campaign id")
			default:
				require.NoError(t, err, "Validate should accept the period")
			}
		})
	}
}

func TestParseSalesFlag(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value int

		want    domain.SalesFlag
		wantErr bool
	}{
		"Changed since":  {value: 0, want: domain.FlagChangedSince},
		"Same date":      {value: 1, want: domain.FlagSameDate},
		"Negative value": {value: -1, wantErr: true},
		"Two":            {value: 2, wantErr: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := domain.ParseSalesFlag(tc.value)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateDate(t *testing.T) {
	t.Parallel()

	require.NoError(t, domain.ValidateDate("2025-03-09"))
	require.ErrorIs(t, domain.ValidateDate(""), domain.ErrInvalidRequest)
	require.ErrorIs(t, domain.ValidateDate("2025-3-9"), domain.ErrInvalidRequest)
}

func TestFileNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Отчет_по_заказам_2025-03-09.xlsx", domain.OrdersRequest{DateFrom: "2025-03-09"}.FileName())
	assert.Equal(t, "Отчет_по_продажам_2025-03-09.xlsx", domain.SalesRequest{DateFrom: "2025-03-09", Flag: domain.FlagSameDate}.FileName())
	assert.Equal(t,
		"Отчет_по_статистике_кампании_23827889_по_ключевым_фразам_2025-03-09_2025-03-12.xlsx",
		domain.KeywordsRequest{CampaignID: 23827889, DateFrom: "2025-03-09", DateTo: "2025-03-12"}.FileName(),
	)
}

func TestNetworkErrorIsClassified(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset by peer")
	err := error(&domain.NetworkError{API: "orders", Err: cause})

	require.ErrorIs(t, err, domain.ErrNetwork)
	require.ErrorIs(t, err, cause)
}
