package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Name holds the separate name parts of an employee.
type Name struct {
	First string `json:"first" gorm:"column:first_name;size:255"`
	Last  string `json:"last" gorm:"column:last_name;size:255"`
}

// Fullname formats the name as "Last, First". Absent parts are skipped
// along with the separator.
func (n Name) Fullname() string {
	first := strings.TrimSpace(n.First)
	last := strings.TrimSpace(n.Last)

	switch {
	case first == "" && last == "":
		return ""
	case first == "":
		return last
	case last == "":
		return first
	default:
		return last + ", " + first
	}
}

// Skill is a single skill entry on an employee record.
type Skill struct {
	Name        string  `json:"name"`
	Years       float64 `json:"years"`
	Proficiency string  `json:"proficiency"`
}

// Certification is a single certification entry. Dates carry month
// resolution only.
type Certification struct {
	Name           string     `json:"name"`
	IssuedBy       string     `json:"issuedBy"`
	DateIssued     *MonthDate `json:"dateIssued"`
	ExpirationDate *MonthDate `json:"expirationDate"`
}

// Education is a single degree entry.
type Education struct {
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	FieldOfStudy string `json:"fieldOfStudy"`
}

// Language is a spoken-language entry with a proficiency tier.
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// DefaultLanguageProficiencies is the tier list offered when the
// proficiency lookup collection is empty.
var DefaultLanguageProficiencies = []string{"Beginner", "Intermediate", "Advanced", "Fluent"}

// MonthDate is a month-resolution date, always the first day of the
// month at UTC midnight. It serializes as "YYYY-MM".
type MonthDate struct {
	time.Time
}

// NewMonthDate builds a MonthDate for the given year and month.
func NewMonthDate(year int, month time.Month) MonthDate {
	return MonthDate{Time: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

// MonthDateOf floors an arbitrary time to its month.
func MonthDateOf(t time.Time) MonthDate {
	return NewMonthDate(t.UTC().Year(), t.UTC().Month())
}

func (d MonthDate) String() string {
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}

func (d MonthDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *MonthDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{"2006-01", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = MonthDateOf(t)
			return nil
		}
	}
	return fmt.Errorf("invalid month date %q", s)
}

// Employee is the persisted employee document. The list fields are
// stored as jsonb; the joined *Names columns are derived from them on
// every save so the roster grid can sort and filter on plain text.
type Employee struct {
	ID       string `json:"id" gorm:"primaryKey;size:255"`
	Name     Name   `json:"name" gorm:"embedded"`
	Fullname string `json:"fullname" gorm:"size:511;index"`

	Skills         datatypes.JSON `json:"skills" gorm:"type:jsonb"`
	Certifications datatypes.JSON `json:"certifications" gorm:"type:jsonb"`
	Education      datatypes.JSON `json:"education" gorm:"type:jsonb"`
	OtherTrainings datatypes.JSON `json:"otherTrainings" gorm:"type:jsonb"`
	Languages      datatypes.JSON `json:"languages" gorm:"type:jsonb"`

	ClearanceLevel string `json:"clearanceLevel" gorm:"size:100"`

	SkillNames         string `json:"skillNames" gorm:"index"`
	CertificationNames string `json:"certificationNames"`
	EducationNames     string `json:"educationNames"`
	OtherTrainingNames string `json:"otherTrainingNames"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeRow is the canonical in-memory view of an employee record
// after normalization. It is what list endpoints return and what the
// grid package operates on.
type EmployeeRow struct {
	ID             string          `json:"id"`
	Name           Name            `json:"name"`
	Fullname       string          `json:"fullname"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Education      []Education     `json:"education"`
	OtherTrainings []string        `json:"otherTrainings"`
	Languages      []Language      `json:"languages"`
	ClearanceLevel string          `json:"clearanceLevel"`

	SkillNames         string `json:"skillNames"`
	CertificationNames string `json:"certificationNames"`
	EducationNames     string `json:"educationNames"`
	OtherTrainingNames string `json:"otherTrainingNames"`
}

// Key returns the stable row identity used by grid selection.
func (r EmployeeRow) Key() string {
	return r.ID
}

// Field exposes the grid-addressable columns of a row by name.
func (r EmployeeRow) Field(name string) any {
	switch name {
	case "id":
		return r.ID
	case "fullname":
		return r.Fullname
	case "skillNames":
		return r.SkillNames
	case "certificationNames":
		return r.CertificationNames
	case "educationNames":
		return r.EducationNames
	case "otherTrainingNames":
		return r.OtherTrainingNames
	case "clearanceLevel":
		return r.ClearanceLevel
	default:
		return nil
	}
}
