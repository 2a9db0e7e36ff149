package grid

import (
	"sort"
	"strconv"
	"strings"
)

// Result is one page of processed rows. Total is the row count after
// filtering but before paging.
type Result[T Item] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// Process applies the state to the rows: filter, then stable sort,
// then the skip/take window. Take <= 0 means no paging. The input
// slice is never mutated.
func Process[T Item](rows []T, state State) Result[T] {
	filtered := make([]T, 0, len(rows))
	for _, row := range rows {
		if state.Filter == nil || matches(*state.Filter, row) {
			filtered = append(filtered, row)
		}
	}

	if len(state.Sort) > 0 {
		sort.SliceStable(filtered, func(i, j int) bool {
			return less(filtered[i], filtered[j], state.Sort)
		})
	}

	total := len(filtered)

	start := state.Skip
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if state.Take > 0 && start+state.Take < total {
		end = start + state.Take
	}

	return Result[T]{Data: filtered[start:end], Total: total}
}

func matches(node FilterNode, item Item) bool {
	if node.composite() {
		if len(node.Filters) == 0 {
			return true
		}
		if strings.EqualFold(node.Logic, "or") {
			for _, child := range node.Filters {
				if matches(child, item) {
					return true
				}
			}
			return false
		}
		// Unknown logic values behave as "and"
		for _, child := range node.Filters {
			if !matches(child, item) {
				return false
			}
		}
		return true
	}
	return compare(item.Field(node.Field), node.Operator, node.Value)
}

func compare(value any, operator string, target any) bool {
	switch strings.ToLower(operator) {
	case "isempty":
		return stringify(value) == ""
	case "isnotempty":
		return stringify(value) != ""
	}

	if fv, fok := toNumber(value); fok {
		if ft, tok := toNumber(target); tok {
			return compareNumbers(fv, strings.ToLower(operator), ft)
		}
	}
	return compareStrings(stringify(value), strings.ToLower(operator), stringify(target))
}

func compareNumbers(value float64, operator string, target float64) bool {
	switch operator {
	case "eq":
		return value == target
	case "neq":
		return value != target
	case "gt":
		return value > target
	case "gte":
		return value >= target
	case "lt":
		return value < target
	case "lte":
		return value <= target
	default:
		return false
	}
}

// String comparison is case-insensitive across all operators.
func compareStrings(value, operator, target string) bool {
	v := strings.ToLower(value)
	t := strings.ToLower(target)
	switch operator {
	case "eq":
		return v == t
	case "neq":
		return v != t
	case "contains":
		return strings.Contains(v, t)
	case "doesnotcontain":
		return !strings.Contains(v, t)
	case "startswith":
		return strings.HasPrefix(v, t)
	case "endswith":
		return strings.HasSuffix(v, t)
	case "gt":
		return v > t
	case "gte":
		return v >= t
	case "lt":
		return v < t
	case "lte":
		return v <= t
	default:
		return false
	}
}

func less(a, b Item, descriptors []SortDescriptor) bool {
	for _, d := range descriptors {
		cmp := compareValues(a.Field(d.Field), b.Field(d.Field))
		if cmp == 0 {
			continue
		}
		if d.Dir == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func compareValues(a, b any) int {
	if fa, aok := toNumber(a); aok {
		if fb, bok := toNumber(b); bok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}

	sa := strings.ToLower(stringify(a))
	sb := strings.ToLower(stringify(b))
	// Empty values sort last regardless of direction tie-breaking
	switch {
	case sa == sb:
		return 0
	case sa == "":
		return 1
	case sb == "":
		return -1
	case sa < sb:
		return -1
	default:
		return 1
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
