package usecase_test

import (
	"encoding/json"
	"testing"

	"wbreports/internal/domain"
	"wbreports/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, data string) domain.Record {
	t.Helper()

	var r domain.Record
	require.NoError(t, json.Unmarshal([]byte(data), &r), "Setup: record fixture should decode")
	return r
}

func TestRename(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		record  string
		mapping domain.FieldMapping

		wantKeys []string
	}{
		"Mapped keys are replaced in place": {
			record:   `{"incomeId": 5, "quantity": 2}`,
			mapping:  domain.OrdersMapping,
			wantKeys: []string{"Номер поставки", "Количество"},
		},
		"Unmapped keys pass through": {
			record:   `{"keyword": "платье", "extra": 1}`,
			mapping:  domain.KeywordsMapping,
			wantKeys: []string{"Ключевая фраза", "extra"},
		},
		"Empty mapping is identity": {
			record:   `{"b": 1, "a": 2}`,
			mapping:  domain.FieldMapping{},
			wantKeys: []string{"b", "a"},
		},
		"Nil mapping is identity": {
			record:   `{"b": 1}`,
			wantKeys: []string{"b"},
		},
		"Empty record": {
			record:   `{}`,
			mapping:  domain.SalesMapping,
			wantKeys: []string{},
		},
		"Chained names are renamed once": {
			record:   `{"a": 1}`,
			mapping:  domain.FieldMapping{"a": "b", "b": "c"},
			wantKeys: []string{"b"},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			in := record(t, tc.record)
			got := usecase.Rename(in, tc.mapping)

			assert.Equal(t, tc.wantKeys, got.Keys(), "Renamed keys should keep source order")
			require.Equal(t, in.Len(), got.Len(), "Rename should keep the number of keys")
			for _, f := range in.Fields() {
				name, ok := tc.mapping[f.Key]
				if !ok {
					name = f.Key
				}
				v, ok := got.Get(name)
				require.True(t, ok, "Renamed record should contain %q", name)
				assert.Equal(t, f.Value, v, "Value of %q should be unchanged", f.Key)
			}
		})
	}
}

func TestRenameDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := record(t, `{"incomeId": 5}`)
	_ = usecase.Rename(in, domain.OrdersMapping)

	assert.Equal(t, []string{"incomeId"}, in.Keys())
}

func TestRenameOrdersScenario(t *testing.T) {
	t.Parallel()

	rows := usecase.RenameAll([]domain.Record{record(t, `{"incomeId": 5, "quantity": 2}`)}, domain.OrdersMapping)
	require.Len(t, rows, 1)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.Equal(t, `{"Номер поставки":5,"Количество":2}`, string(data))
}

func TestFlattenKeywordStats(t *testing.T) {
	t.Parallel()

	const campaign = int64(23827889)

	tests := map[string]struct {
		payload string

		wantKeywords []string
		wantDates    []string
	}{
		"Groups are sorted by date": {
			payload:      `[{"date":"2025-03-10","stats":[{"keyword":"a"}]},{"date":"2025-03-09","stats":[{"keyword":"b"}]}]`,
			wantKeywords: []string{"b", "a"},
			wantDates:    []string{"2025-03-09", "2025-03-10"},
		},
		"Stats keep their order within a date": {
			payload:      `[{"date":"2025-03-11","stats":[{"keyword":"z"},{"keyword":"y"}]},{"date":"2025-03-09","stats":[{"keyword":"x"}]}]`,
			wantKeywords: []string{"x", "z", "y"},
			wantDates:    []string{"2025-03-09", "2025-03-11", "2025-03-11"},
		},
		"Equal dates keep payload order": {
			payload:      `[{"date":"2025-03-09","stats":[{"keyword":"first"}]},{"date":"2025-03-08","stats":[{"keyword":"early"}]},{"date":"2025-03-09","stats":[{"keyword":"second"}]}]`,
			wantKeywords: []string{"early", "first", "second"},
			wantDates:    []string{"2025-03-08", "2025-03-09", "2025-03-09"},
		},
		"Empty stats produce no rows": {
			payload:      `[{"date":"2025-03-09","stats":[]},{"date":"2025-03-10","stats":null}]`,
			wantKeywords: []string{},
			wantDates:    []string{},
		},
		"No groups": {
			payload:      `[]`,
			wantKeywords: []string{},
			wantDates:    []string{},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var groups []domain.KeywordDateGroup
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &groups), "Setup: payload should decode")

			rows := usecase.FlattenKeywordStats(campaign, groups, domain.KeywordsMapping)

			keywords := []string{}
			dates := []string{}
			for _, row := range rows {
				kw, ok := row.Get("Ключевая фраза")
				require.True(t, ok, "Row should contain the renamed keyword")
				keywords = append(keywords, kw.(string))

				date, ok := row.Get(domain.ReportDateField)
				require.True(t, ok, "Row should contain the report date")
				dates = append(dates, date.(string))

				id, ok := row.Get(domain.CampaignIDField)
				require.True(t, ok, "Row should contain the campaign id")
				assert.Equal(t, campaign, id)

				_, ok = row.Get("keyword")
				assert.False(t, ok, "Source key should not survive renaming")
			}
			assert.Equal(t, tc.wantKeywords, keywords, "Rows should be ordered by date then stats order")
			assert.Equal(t, tc.wantDates, dates)
		})
	}
}

func TestFlattenKeywordStatsRowLayout(t *testing.T) {
	t.Parallel()

	var groups []domain.KeywordDateGroup
	payload := `[{"date":"2025-03-09","stats":[{"clicks":3,"ctr":1.5,"keyword":"платье","sum":120.4,"views":200}]}]`
	require.NoError(t, json.Unmarshal([]byte(payload), &groups))

	rows := usecase.FlattenKeywordStats(42, groups, domain.KeywordsMapping)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{
		"Количество кликов",
		"CTR",
		"Ключевая фраза",
		"Сумма затрат по ключевой фразе",
		"Количество показов",
		domain.CampaignIDField,
		domain.ReportDateField,
	}, rows[0].Keys(), "Injected fields should follow the source fields")

	assert.Equal(t, 5, groups[0].Stats[0].Len(), "Source stats should not be modified")
}
