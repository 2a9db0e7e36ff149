package normalize

import (
	"encoding/json"
	"strings"

	"github.com/tygart-labs/employee-portal-service/internal/models"
)

// DefaultMinYears is the years-of-experience assigned when a skill
// arrives as a bare string.
const DefaultMinYears = 0

// Skills canonicalizes a stored skills list. Bare strings become full
// entries with minYears experience and no proficiency; object entries
// may use the legacy "skill" key for the name; entries with no usable
// name are dropped. Junk input yields an empty list, never an error.
func Skills(raw any, minYears float64) []models.Skill {
	items := asList(raw)
	out := make([]models.Skill, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if name := strings.TrimSpace(v); name != "" {
				out = append(out, models.Skill{Name: name, Years: minYears})
			}
		case map[string]any:
			name := firstString(v, "name", "skill")
			if name == "" {
				continue
			}
			skill := models.Skill{
				Name:        name,
				Years:       minYears,
				Proficiency: firstString(v, "proficiency"),
			}
			if years, ok := firstNumber(v, "years", "yearsExperience", "yearsOfExperience"); ok {
				skill.Years = years
			}
			out = append(out, skill)
		}
	}
	return out
}

// Certifications canonicalizes a stored certifications list, coercing
// both date fields through MonthDate. Nameless entries are dropped.
func Certifications(raw any) []models.Certification {
	items := asList(raw)
	out := make([]models.Certification, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if name := strings.TrimSpace(v); name != "" {
				out = append(out, models.Certification{Name: name})
			}
		case map[string]any:
			name := firstString(v, "name")
			if name == "" {
				continue
			}
			out = append(out, models.Certification{
				Name:           name,
				IssuedBy:       firstString(v, "issuedBy", "issuer"),
				DateIssued:     MonthDate(firstValue(v, "dateIssued", "yearIssued")),
				ExpirationDate: MonthDate(firstValue(v, "expirationDate", "expirationYear", "expiration")),
			})
		}
	}
	return out
}

// EducationList canonicalizes a stored education list.
func EducationList(raw any) []models.Education {
	items := asList(raw)
	out := make([]models.Education, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if degree := strings.TrimSpace(v); degree != "" {
				out = append(out, models.Education{Degree: degree})
			}
		case map[string]any:
			edu := models.Education{
				Degree:       firstString(v, "degree"),
				Institution:  firstString(v, "institution"),
				FieldOfStudy: firstString(v, "fieldOfStudy"),
			}
			if edu.Degree == "" && edu.Institution == "" && edu.FieldOfStudy == "" {
				continue
			}
			out = append(out, edu)
		}
	}
	return out
}

// Languages canonicalizes a stored languages list.
func Languages(raw any) []models.Language {
	items := asList(raw)
	out := make([]models.Language, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if name := strings.TrimSpace(v); name != "" {
				out = append(out, models.Language{Name: name})
			}
		case map[string]any:
			name := firstString(v, "name", "language")
			if name == "" {
				continue
			}
			out = append(out, models.Language{
				Name:        name,
				Proficiency: firstString(v, "proficiency"),
			})
		}
	}
	return out
}

// StringList canonicalizes a stored free-text list such as other
// trainings, dropping blanks and non-strings.
func StringList(raw any) []string {
	items := asList(raw)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// asList decodes raw into a []any, accepting already-decoded slices,
// raw JSON bytes and nil. Everything else is treated as empty.
func asList(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return v
	case json.RawMessage:
		return decodeList([]byte(v))
	case []byte:
		return decodeList(v)
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

func decodeList(data []byte) []any {
	if len(data) == 0 {
		return nil
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return items
}

func firstValue(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if f, ok := toFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}
