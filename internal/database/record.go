package database

import (
	"strconv"
	"time"
)

// Record is one decoded database row: a mapping from column name to the
// Go-native value the driver produced. The column order of the originating
// query is tracked separately (see PagedResult.Columns) since Go maps carry
// no insertion order.
type Record map[string]any

// RecordSet is an ordered sequence of records produced by a fetch operation.
type RecordSet []Record

// rowFactory returns a function that zips the ordered column names with an
// ordered row value slice into a Record, mirroring the cursor description
// approach of classic DB-API drivers.
func rowFactory(columns []string) func(values []any) Record {
	return func(values []any) Record {
		rec := make(Record, len(columns))
		for i, col := range columns {
			if i < len(values) {
				rec[col] = normalizeValue(values[i])
			}
		}
		return rec
	}
}

// normalizeValue converts driver-specific raw values into a small set of
// JSON-friendly Go types. The MySQL driver returns []byte for text columns;
// everything else passes through unchanged.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val
	default:
		return v
	}
}

// toInt64 coerces the window total-count column into an int64. Drivers
// disagree on the concrete type of count(*) results, so all plausible
// representations are accepted.
func toInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int32:
		return int64(val), true
	case int:
		return int64(val), true
	case uint64:
		return int64(val), true
	case float64:
		return int64(val), true
	case []byte:
		n, err := strconv.ParseInt(string(val), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
