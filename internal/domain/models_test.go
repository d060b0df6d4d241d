package domain_test

import (
	"testing"

	"lotto-picker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTable() domain.FrequencyTable {
	table := make(domain.FrequencyTable, domain.TableSize)
	for i := range table {
		table[i] = domain.FrequencyRecord{Number: i + 1, Count: 100 + i}
	}
	return table
}

func TestFrequencyTableValidate(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		require.NoError(t, makeTable().Validate())
	})

	t.Run("wrong size", func(t *testing.T) {
		table := makeTable()[:44]
		require.Error(t, table.Validate())
	})

	t.Run("duplicate number", func(t *testing.T) {
		table := makeTable()
		table[1].Number = 1
		require.Error(t, table.Validate())
	})

	t.Run("number out of range", func(t *testing.T) {
		table := makeTable()
		table[0].Number = 46
		require.Error(t, table.Validate())
	})

	t.Run("negative count", func(t *testing.T) {
		table := makeTable()
		table[10].Count = -1
		require.Error(t, table.Validate())
	})

	t.Run("zero counts are allowed", func(t *testing.T) {
		table := makeTable()
		for i := range table {
			table[i].Count = 0
		}
		require.NoError(t, table.Validate())
	})
}

func TestFrequencyTableSortByNumber(t *testing.T) {
	table := makeTable()
	table[0], table[44] = table[44], table[0]

	table.SortByNumber()

	for i, r := range table {
		assert.Equal(t, i+1, r.Number)
	}
}

func TestFrequencyTableTopRecord(t *testing.T) {
	table := makeTable()
	table[33].Count = 999

	top := table.TopRecord()
	assert.Equal(t, 34, top.Number)
	assert.Equal(t, 999, top.Count)
}

func TestFrequencyTableTopRecordTieGoesToLowestNumber(t *testing.T) {
	table := makeTable()
	for i := range table {
		table[i].Count = 7
	}

	assert.Equal(t, 1, table.TopRecord().Number)
}

func TestFrequencyTableClone(t *testing.T) {
	table := makeTable()
	clone := table.Clone()

	clone[0].Count = 12345
	assert.Equal(t, 100, table[0].Count)
	assert.Equal(t, 12345, clone[0].Count)
}
