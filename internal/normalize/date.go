package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tygart-labs/employee-portal-service/internal/models"
)

var monthYearPattern = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)

// MonthDate coerces the historical date shapes found in stored
// certification fields to a month-resolution date. Accepted shapes:
//
//   - canonical "YYYY-MM", plus "YYYY", "YYYY-MM-DD" and RFC3339 strings
//   - "MM/YYYY" strings
//   - bare numbers, treated as a year
//   - {"seconds": n} objects from serialized provider timestamps
//
// Anything unparseable yields nil rather than an error.
func MonthDate(raw any) *models.MonthDate {
	switch v := raw.(type) {
	case nil:
		return nil
	case models.MonthDate:
		d := v
		return &d
	case *models.MonthDate:
		return v
	case time.Time:
		d := models.MonthDateOf(v)
		return &d
	case float64:
		return yearDate(int(v))
	case int:
		return yearDate(v)
	case int64:
		return yearDate(int(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return yearDate(int(f))
	case string:
		return monthDateFromString(v)
	case map[string]any:
		return monthDateFromObject(v)
	default:
		return nil
	}
}

func monthDateFromString(s string) *models.MonthDate {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if m := monthYearPattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return nil
		}
		d := models.NewMonthDate(year, time.Month(month))
		return &d
	}

	for _, layout := range []string{"2006", "2006-01", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d := models.MonthDateOf(t)
			return &d
		}
	}
	return nil
}

func monthDateFromObject(obj map[string]any) *models.MonthDate {
	seconds, ok := obj["seconds"]
	if !ok {
		return nil
	}
	f, ok := toFloat(seconds)
	if !ok || math.IsNaN(f) {
		return nil
	}
	d := models.MonthDateOf(time.Unix(int64(f), 0).UTC())
	return &d
}

func yearDate(year int) *models.MonthDate {
	if year <= 0 {
		return nil
	}
	d := models.NewMonthDate(year, time.January)
	return &d
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
