package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRegistry(t *testing.T) {
	fixedTime := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	t.Cleanup(func() { SetClock(nil) })

	t.Run("renames the official count column", func(t *testing.T) {
		columns := []string{"Municipality_City", "Province", "Number of Evacuation Center"}
		rows := []map[string]string{
			{"Municipality_City": "Legazpi", "Province": "Albay", "Number of Evacuation Center": "42"},
		}

		registry := NormalizeRegistry(columns, rows, &seqSampler{values: []int{12}})
		assert.Equal(t, []string{"Municipality_City", "Province", "Official_Count"}, registry.Columns)

		require.Len(t, registry.Rows, 1)
		row := registry.Rows[0]
		assert.Equal(t, "42", row.Fields[OfficialCountColumn])
		assert.NotContains(t, row.Fields, "Number of Evacuation Center")
		assert.Equal(t, "Legazpi", row.Fields["Municipality_City"])
		assert.Equal(t, "Albay", row.Fields["Province"])
	})

	t.Run("source without the known column is untouched", func(t *testing.T) {
		columns := []string{"Region", "Households"}
		rows := []map[string]string{{"Region": "V", "Households": "120"}}

		registry := NormalizeRegistry(columns, rows, &seqSampler{values: []int{3}})
		assert.Equal(t, columns, registry.Columns)
		assert.Equal(t, "120", registry.Rows[0].Fields["Households"])
	})

	t.Run("last audit within the last 90 days", func(t *testing.T) {
		rows := make([]map[string]string, 40)
		for i := range rows {
			rows[i] = map[string]string{"Province": "Samar"}
		}

		registry := NormalizeRegistry([]string{"Province"}, rows, NewSampler(5))
		today := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
		for _, row := range registry.Rows {
			assert.False(t, row.LastAudit.After(today))
			assert.False(t, row.LastAudit.Before(today.AddDate(0, 0, -89)))
		}
	})

	t.Run("no rows are filtered", func(t *testing.T) {
		rows := []map[string]string{{}, {}, {}}
		registry := NormalizeRegistry(nil, rows, &seqSampler{values: []int{1}})
		assert.Len(t, registry.Rows, 3)
	})

	t.Run("empty source yields empty registry", func(t *testing.T) {
		registry := NormalizeRegistry(nil, nil, &seqSampler{values: []int{1}})
		assert.Empty(t, registry.Columns)
		assert.Empty(t, registry.Rows)
	})
}

func TestRegistry_DisplayColumns(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		expected []string
	}{
		{
			"all known columns present",
			[]string{"Municipality_City", "Province", "Region", "Official_Count", "Households"},
			[]string{"Municipality_City", "Province", "Region", "Official_Count", "Last_Audit"},
		},
		{
			"missing columns are skipped",
			[]string{"Province", "Households"},
			[]string{"Province", "Last_Audit"},
		},
		{
			"audit column always shown",
			nil,
			[]string{"Last_Audit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := Registry{Columns: tt.columns}
			assert.Equal(t, tt.expected, registry.DisplayColumns())
		})
	}
}
