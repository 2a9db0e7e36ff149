package validator

import (
	"fmt"
	"time"

	"github.com/tygart-labs/employee-portal-service/internal/models"
)

// Year window for certification issue dates, relative to the current year.
const (
	CertMinYearOffset = 80
	CertMaxYearOffset = 10
)

// The field rules below mirror the portal's form validation: each
// returns a human-readable message for the first failing item, or ""
// when the list passes. Later items are not inspected once one fails.

// ValidateSkills checks a normalized skills list. minYears is the
// minimum years of experience each skill must carry.
func ValidateSkills(items []models.Skill, required bool, minYears float64) string {
	if len(items) == 0 {
		if required {
			return "At least one skill is required."
		}
		return ""
	}
	for _, s := range items {
		if s.Years <= 0 && minYears > 0 {
			return fmt.Sprintf("Enter years of experience for %s.", s.Name)
		}
		if s.Years < minYears {
			return fmt.Sprintf("Years of experience for %s must be at least %g.", s.Name, minYears)
		}
	}
	return ""
}

// ValidateCertifications checks a normalized certifications list
// against the date window anchored at now.
func ValidateCertifications(items []models.Certification, required bool, now time.Time) string {
	if len(items) == 0 {
		if required {
			return "At least one certification is required."
		}
		return ""
	}

	minYear := now.Year() - CertMinYearOffset
	maxYear := now.Year() + CertMaxYearOffset

	for _, c := range items {
		if c.IssuedBy == "" {
			return fmt.Sprintf("Enter the issuer for %s.", c.Name)
		}
		if c.DateIssued == nil {
			return fmt.Sprintf("Enter the month and year %s was issued.", c.Name)
		}
		if year := c.DateIssued.Year(); year < minYear || year > maxYear {
			return fmt.Sprintf("The year %s was issued must be between %d and %d.", c.Name, minYear, maxYear)
		}
		if c.ExpirationDate != nil {
			if c.ExpirationDate.Before(c.DateIssued.Time) || c.ExpirationDate.Year() > maxYear {
				return fmt.Sprintf("The expiration date for %s must be after the issued date and no later than %d.", c.Name, maxYear)
			}
		}
	}
	return ""
}

// ValidateEducation checks a normalized education list.
func ValidateEducation(items []models.Education, required bool) string {
	if len(items) == 0 {
		if required {
			return "At least one degree is required."
		}
		return ""
	}
	for _, e := range items {
		if e.Degree == "" {
			return "Select a degree."
		}
		if e.Institution == "" {
			return fmt.Sprintf("Enter the institution for %s.", e.Degree)
		}
		if e.FieldOfStudy == "" {
			return fmt.Sprintf("Enter the field of study for %s.", e.Degree)
		}
	}
	return ""
}

// ValidateLanguages checks a normalized languages list.
func ValidateLanguages(items []models.Language, required bool) string {
	if len(items) == 0 {
		if required {
			return "At least one language is required."
		}
		return ""
	}
	for _, l := range items {
		if l.Proficiency == "" {
			return fmt.Sprintf("Select a proficiency for %s.", l.Name)
		}
	}
	return ""
}
