package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is one named value of a decoded sheet row. Value is nil for an empty
// cell, otherwise a string or a number.
type Cell struct {
	Name  string
	Value any
}

// Row keeps cells in column declaration order.
type Row []Cell

// Extract resolves a logical field from row. An exact, case-insensitive column
// match wins first, trying candidates in priority order. Failing that, columns
// are scanned in declaration order and the first whose lowercased name
// contains any candidate is used. Otherwise fallback is returned.
func Extract(row Row, candidates []string, fallback string) string {
	index := make(map[string]any, len(row))
	for _, cell := range row {
		key := strings.ToLower(cell.Name)
		if _, seen := index[key]; seen {
			continue
		}
		index[key] = cell.Value
	}

	for _, candidate := range candidates {
		if v, ok := index[strings.ToLower(candidate)]; ok && v != nil {
			return stringify(v)
		}
	}

	for _, cell := range row {
		if cell.Value == nil {
			continue
		}
		name := strings.ToLower(cell.Name)
		for _, candidate := range candidates {
			if strings.Contains(name, strings.ToLower(candidate)) {
				return stringify(cell.Value)
			}
		}
	}

	return fallback
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
