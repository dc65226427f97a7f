package domain_test

import (
	"encoding/json"
	"testing"

	"wbreports/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data string

		wantKeys  []string
		wantValue map[string]any
		wantErr   bool
	}{
		"Keeps payload key order": {
			data:     `{"z": 1, "a": "x", "m": true}`,
			wantKeys: []string{"z", "a", "m"},
			wantValue: map[string]any{
				"z": json.Number("1"),
				"a": "x",
				"m": true,
			},
		},
		"Numbers are not coerced": {
			data:      `{"price": 1234.50, "id": 9007199254740993}`,
			wantKeys:  []string{"price", "id"},
			wantValue: map[string]any{"price": json.Number("1234.50"), "id": json.Number("9007199254740993")},
		},
		"Nested values pass through": {
			data:      `{"tags": ["a", "b"], "nil": null}`,
			wantKeys:  []string{"tags", "nil"},
			wantValue: map[string]any{"tags": []any{"a", "b"}, "nil": nil},
		},
		"Duplicate key keeps first position and last value": {
			data:      `{"a": 1, "b": 2, "a": 3}`,
			wantKeys:  []string{"a", "b"},
			wantValue: map[string]any{"a": json.Number("3")},
		},
		"Empty object": {data: `{}`, wantKeys: []string{}},

		"Array is rejected":     {data: `[1, 2]`, wantErr: true},
		"Truncated is rejected": {data: `{"a": 1`, wantErr: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var r domain.Record
			err := json.Unmarshal([]byte(tc.data), &r)
			if tc.wantErr {
				require.Error(t, err, "Unmarshal should return an error")
				return
			}
			require.NoError(t, err, "Unmarshal should not return an error")

			assert.Equal(t, tc.wantKeys, r.Keys(), "Keys should follow the payload order")
			for k, want := range tc.wantValue {
				got, ok := r.Get(k)
				require.True(t, ok, "Key %q should be present", k)
				assert.Equal(t, want, got, "Value of %q should be unchanged", k)
			}
		})
	}
}

func TestRecordUnmarshalJSONArrayOfRecords(t *testing.T) {
	t.Parallel()

	var records []domain.Record
	err := json.Unmarshal([]byte(`[{"b": 1, "a": 2}, null, {"c": 3}]`), &records)
	require.NoError(t, err, "Unmarshal should not return an error")
	require.Len(t, records, 3)

	assert.Equal(t, []string{"b", "a"}, records[0].Keys())
	assert.Equal(t, 0, records[1].Len(), "null element should decode to an empty record")
	assert.Equal(t, []string{"c"}, records[2].Keys())
}

func TestRecordSet(t *testing.T) {
	t.Parallel()

	r := domain.NewRecord(domain.Field{Key: "a", Value: 1}, domain.Field{Key: "b", Value: 2})
	r.Set("a", 10)
	r.Set("c", 3)

	assert.Equal(t, []string{"a", "b", "c"}, r.Keys(), "Existing key should stay in place, new key should be appended")
	v, _ := r.Get("a")
	assert.Equal(t, 10, v)
}

func TestRecordCloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := domain.NewRecord(domain.Field{Key: "a", Value: 1})
	clone := orig.Clone()
	clone.Set("a", 2)
	clone.Set("b", 3)

	v, _ := orig.Get("a")
	assert.Equal(t, 1, v, "Original value should not change")
	assert.Equal(t, []string{"a"}, orig.Keys(), "Original keys should not change")
	_, ok := orig.Get("b")
	assert.False(t, ok, "Original should not see keys added to the clone")
}

func TestRecordMarshalJSON(t *testing.T) {
	t.Parallel()

	r := domain.NewRecord(
		domain.Field{Key: "Количество", Value: json.Number("2")},
		domain.Field{Key: "Номер поставки", Value: json.Number("5")},
		domain.Field{Key: "flag", Value: nil},
	)

	data, err := json.Marshal(r)
	require.NoError(t, err, "Marshal should not return an error")
	assert.Equal(t, `{"Количество":2,"Номер поставки":5,"flag":null}`, string(data))

	var empty domain.Record
	data, err = json.Marshal(empty)
	require.NoError(t, err, "Marshal should not return an error")
	assert.Equal(t, `{}`, string(data))
}
