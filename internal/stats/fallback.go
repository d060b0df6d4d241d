package stats

import "lotto-picker/internal/domain"

// fallbackCounts holds approximate historical win counts for numbers
// 1..45 (index = number - 1), snapshotted from the dhlottery per-number
// statistics page. Used verbatim whenever the live fetch fails.
var fallbackCounts = [domain.TableSize]int{
	159, 153, 157, 151, 147, 152, 155, 148, 145, 150,
	154, 161, 162, 158, 149, 146, 163, 160, 156, 164,
	150, 141, 144, 158, 143, 165, 166, 147, 139, 153,
	157, 142, 169, 190, 155, 162, 159, 168, 167, 171,
	148, 151, 173, 172, 175,
}

// FallbackTable returns a fresh copy of the embedded dataset, sorted
// by number.
func FallbackTable() domain.FrequencyTable {
	table := make(domain.FrequencyTable, domain.TableSize)
	for i, count := range fallbackCounts {
		table[i] = domain.FrequencyRecord{Number: domain.MinNumber + i, Count: count}
	}
	return table
}
