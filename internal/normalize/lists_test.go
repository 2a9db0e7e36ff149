package normalize

import (
	"testing"
	"time"
)

func TestSkills(t *testing.T) {
	t.Run("bare strings become entries", func(t *testing.T) {
		got := Skills([]any{"Go", "  SQL  ", ""}, DefaultMinYears)
		if len(got) != 2 {
			t.Fatalf("got %d skills, want 2", len(got))
		}
		if got[0].Name != "Go" || got[0].Years != DefaultMinYears {
			t.Errorf("got[0] = %+v", got[0])
		}
		if got[1].Name != "SQL" {
			t.Errorf("got[1] = %+v", got[1])
		}
	})

	t.Run("legacy keys canonicalized", func(t *testing.T) {
		got := Skills([]any{
			map[string]any{"skill": "Kubernetes", "yearsOfExperience": float64(3)},
			map[string]any{"name": "Terraform", "years": float64(1.5), "proficiency": "Advanced"},
			map[string]any{"proficiency": "Expert"},
		}, DefaultMinYears)
		if len(got) != 2 {
			t.Fatalf("got %d skills, want 2", len(got))
		}
		if got[0].Name != "Kubernetes" || got[0].Years != 3 {
			t.Errorf("got[0] = %+v", got[0])
		}
		if got[1].Name != "Terraform" || got[1].Years != 1.5 || got[1].Proficiency != "Advanced" {
			t.Errorf("got[1] = %+v", got[1])
		}
	})

	t.Run("stored document shape", func(t *testing.T) {
		got := Skills([]any{
			map[string]any{"skill": "Go", "yearsExperience": float64(7), "proficiency": "Expert"},
		}, DefaultMinYears)
		if len(got) != 1 {
			t.Fatalf("got %d skills, want 1", len(got))
		}
		if got[0].Name != "Go" || got[0].Years != 7 || got[0].Proficiency != "Expert" {
			t.Errorf("got[0] = %+v, want Go with 7 years", got[0])
		}
	})

	t.Run("raw json bytes decoded", func(t *testing.T) {
		got := Skills([]byte(`[{"name":"Go","years":2}]`), DefaultMinYears)
		if len(got) != 1 || got[0].Name != "Go" || got[0].Years != 2 {
			t.Errorf("got = %+v", got)
		}
	})

	t.Run("junk input yields empty list", func(t *testing.T) {
		for _, raw := range []any{nil, "not a list", 42, []byte(`{"bad"`)} {
			if got := Skills(raw, DefaultMinYears); len(got) != 0 {
				t.Errorf("Skills(%v) = %+v, want empty", raw, got)
			}
		}
	})
}

func TestCertifications(t *testing.T) {
	got := Certifications([]any{
		map[string]any{
			"name":       "CISSP",
			"issuer":     "ISC2",
			"yearIssued": float64(2019),
			"expiration": "2025-06",
		},
		map[string]any{
			"name":           "AWS SAA",
			"issuedBy":       "Amazon",
			"dateIssued":     "03/2021",
			"expirationDate": "2024-03-10",
		},
		"Security+",
		map[string]any{"issuedBy": "nameless"},
	})
	if len(got) != 3 {
		t.Fatalf("got %d certifications, want 3", len(got))
	}

	first := got[0]
	if first.Name != "CISSP" || first.IssuedBy != "ISC2" {
		t.Errorf("got[0] = %+v", first)
	}
	if first.DateIssued == nil || first.DateIssued.String() != "2019-01" {
		t.Errorf("got[0].DateIssued = %v, want 2019-01", first.DateIssued)
	}
	if first.ExpirationDate == nil || first.ExpirationDate.String() != "2025-06" {
		t.Errorf("got[0].ExpirationDate = %v, want 2025-06", first.ExpirationDate)
	}

	second := got[1]
	if second.DateIssued == nil || second.DateIssued.String() != "2021-03" {
		t.Errorf("got[1].DateIssued = %v, want 2021-03", second.DateIssued)
	}
	if second.ExpirationDate == nil || second.ExpirationDate.String() != "2024-03" {
		t.Errorf("got[1].ExpirationDate = %v, want 2024-03", second.ExpirationDate)
	}

	third := got[2]
	if third.Name != "Security+" || third.DateIssued != nil {
		t.Errorf("got[2] = %+v", third)
	}
}

func TestCertificationsStoredShape(t *testing.T) {
	got := Certifications([]any{
		map[string]any{
			"name":           "CISSP",
			"issuedBy":       "ISC2",
			"yearIssued":     float64(2019),
			"expirationYear": "03/2025",
		},
	})
	if len(got) != 1 {
		t.Fatalf("got %d certifications, want 1", len(got))
	}
	if got[0].DateIssued == nil || got[0].DateIssued.String() != "2019-01" {
		t.Errorf("DateIssued = %v, want 2019-01", got[0].DateIssued)
	}
	if got[0].ExpirationDate == nil || got[0].ExpirationDate.String() != "2025-03" {
		t.Errorf("ExpirationDate = %v, want 2025-03", got[0].ExpirationDate)
	}
}

func TestEducationList(t *testing.T) {
	got := EducationList([]any{
		map[string]any{"degree": "BS", "institution": "State", "fieldOfStudy": "CS"},
		map[string]any{"institution": "Tech"},
		"MS",
		map[string]any{},
	})
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].Degree != "BS" || got[0].FieldOfStudy != "CS" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Institution != "Tech" || got[1].Degree != "" {
		t.Errorf("got[1] = %+v", got[1])
	}
	if got[2].Degree != "MS" {
		t.Errorf("got[2] = %+v", got[2])
	}
}

func TestLanguages(t *testing.T) {
	got := Languages([]any{
		map[string]any{"language": "Spanish", "proficiency": "Fluent"},
		map[string]any{"name": "German"},
		"French",
		map[string]any{"proficiency": "Basic"},
	})
	if len(got) != 3 {
		t.Fatalf("got %d languages, want 3", len(got))
	}
	if got[0].Name != "Spanish" || got[0].Proficiency != "Fluent" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Name != "German" || got[2].Name != "French" {
		t.Errorf("got = %+v", got)
	}
}

func TestStringList(t *testing.T) {
	got := StringList([]any{"OSHA 10", "  ", "First Aid  ", float64(7), nil})
	want := []string{"OSHA 10", "First Aid"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := StringList([]string{"A", "B"}); len(got) != 2 {
		t.Errorf("StringList([]string) = %v, want 2 entries", got)
	}
}

func TestToFloat(t *testing.T) {
	if f, ok := toFloat(" 3.5 "); !ok || f != 3.5 {
		t.Errorf("toFloat(string) = %v, %v", f, ok)
	}
	if _, ok := toFloat(time.Now()); ok {
		t.Error("toFloat should reject unsupported types")
	}
}
