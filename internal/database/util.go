package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// ScanSampleRows collects single-column rows into a value slice. Shared by the
// dialect handlers' SampleKeys implementations.
func ScanSampleRows(rows *sql.Rows) ([]interface{}, error) {
	defer rows.Close()

	var values []interface{}
	for rows.Next() {
		var v interface{}
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("error scanning sampled key value: %w", err)
		}
		values = append(values, NormalizeRowValue(v))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sampled key rows: %w", err)
	}
	return values, nil
}

// NormalizeRowValue converts driver-specific scan results into plain Go
// values. MySQL and SQLite drivers return text columns as []byte.
func NormalizeRowValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// MarshalComplexValue serializes maps and slices to JSON text for dialects
// without a native binding for them. Scalars and times pass through untouched.
func MarshalComplexValue(v interface{}) (interface{}, error) {
	switch v.(type) {
	case nil, string, bool, int, int32, int64, float32, float64, time.Time:
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize value to JSON: %w", err)
	}
	return string(data), nil
}
