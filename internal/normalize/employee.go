package normalize

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/tygart-labs/employee-portal-service/internal/models"
)

// EmployeeList converts a snapshot of raw employee documents keyed by
// id into the canonical row list the roster grid consumes. Ordering is
// by id so repeated snapshots of the same data produce identical
// output. Absent list fields become empty lists, never nil map
// lookups, and every derived column is recomputed.
func EmployeeList(docs map[string]map[string]any) []models.EmployeeRow {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]models.EmployeeRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, EmployeeRowFromDoc(id, docs[id]))
	}
	return rows
}

// EmployeeRowFromDoc normalizes a single raw employee document.
// The legacy singular "otherTraining" key is read when the canonical
// plural is absent.
func EmployeeRowFromDoc(id string, doc map[string]any) models.EmployeeRow {
	if doc == nil {
		doc = map[string]any{}
	}

	row := models.EmployeeRow{
		ID:             id,
		Name:           nameFromDoc(doc),
		Skills:         Skills(doc["skills"], DefaultMinYears),
		Certifications: Certifications(doc["certifications"]),
		Education:      EducationList(doc["education"]),
		Languages:      Languages(doc["languages"]),
		ClearanceLevel: firstString(doc, "clearanceLevel", "clearance"),
	}

	trainings := doc["otherTrainings"]
	if trainings == nil {
		trainings = doc["otherTraining"]
	}
	row.OtherTrainings = StringList(trainings)

	row.Fullname = row.Name.Fullname()
	FillDerivedNames(&row)
	return row
}

// EmployeeRowFromModel normalizes a persisted Employee into a row,
// re-deriving the joined name columns from the jsonb lists rather than
// trusting the stored ones.
func EmployeeRowFromModel(emp *models.Employee) models.EmployeeRow {
	row := models.EmployeeRow{
		ID:             emp.ID,
		Name:           emp.Name,
		Skills:         Skills(json.RawMessage(emp.Skills), DefaultMinYears),
		Certifications: Certifications(json.RawMessage(emp.Certifications)),
		Education:      EducationList(json.RawMessage(emp.Education)),
		OtherTrainings: StringList(json.RawMessage(emp.OtherTrainings)),
		Languages:      Languages(json.RawMessage(emp.Languages)),
		ClearanceLevel: emp.ClearanceLevel,
	}
	row.Fullname = row.Name.Fullname()
	FillDerivedNames(&row)
	return row
}

// FillDerivedNames recomputes the joined display columns: skills and
// certifications by name, education by field of study, other trainings
// verbatim.
func FillDerivedNames(row *models.EmployeeRow) {
	skillNames := make([]string, 0, len(row.Skills))
	for _, s := range row.Skills {
		skillNames = append(skillNames, s.Name)
	}
	certNames := make([]string, 0, len(row.Certifications))
	for _, c := range row.Certifications {
		certNames = append(certNames, c.Name)
	}
	eduNames := make([]string, 0, len(row.Education))
	for _, e := range row.Education {
		if e.FieldOfStudy != "" {
			eduNames = append(eduNames, e.FieldOfStudy)
		}
	}

	row.SkillNames = strings.Join(skillNames, ", ")
	row.CertificationNames = strings.Join(certNames, ", ")
	row.EducationNames = strings.Join(eduNames, ", ")
	row.OtherTrainingNames = strings.Join(row.OtherTrainings, ", ")
}

func nameFromDoc(doc map[string]any) models.Name {
	if nested, ok := doc["name"].(map[string]any); ok {
		return models.Name{
			First: firstString(nested, "first", "firstName"),
			Last:  firstString(nested, "last", "lastName"),
		}
	}
	return models.Name{
		First: firstString(doc, "firstName", "first"),
		Last:  firstString(doc, "lastName", "last"),
	}
}
