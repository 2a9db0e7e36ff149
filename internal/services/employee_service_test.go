package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/grid"
	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

func newEmployeeFixture(repo *mockRepository) EmployeeService {
	lookups := NewLookupService(repo, nil, newTestLogger())
	return NewEmployeeService(repo, nil, newTestLogger(), newTestValidator(), lookups)
}

func storedEmployee(id, first, last, skills string) *models.Employee {
	emp := &models.Employee{
		ID:             id,
		Name:           models.Name{First: first, Last: last},
		Skills:         []byte(`[]`),
		Certifications: []byte(`[]`),
		Education:      []byte(`[]`),
		OtherTrainings: []byte(`[]`),
		Languages:      []byte(`[]`),
	}
	if skills != "" {
		data, _ := json.Marshal([]models.Skill{{Name: skills, Years: 2}})
		emp.Skills = data
		emp.SkillNames = skills
	}
	emp.Fullname = emp.Name.Fullname()
	return emp
}

func TestNewEmployeeService(t *testing.T) {
	if svc := newEmployeeFixture(newMockRepository()); svc == nil {
		t.Fatal("NewEmployeeService returned nil")
	}
}

func TestEmployeeServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("canonicalizes and stores the document", func(t *testing.T) {
		repo := newMockRepository()
		var created *models.Employee
		repo.employees.createFn = func(ctx context.Context, tx *gorm.DB, employee *models.Employee) error {
			created = employee
			return nil
		}
		svc := newEmployeeFixture(repo)

		resp, err := svc.Create(ctx, &SaveEmployeeRequest{
			Name:           models.Name{First: "Jane", Last: "Doe"},
			Skills:         json.RawMessage(`["Go", {"skill":"SQL","yearsOfExperience":4}]`),
			OtherTraining:  json.RawMessage(`["OSHA 10"]`),
			ClearanceLevel: "Secret",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if created == nil || created.ID == "" {
			t.Fatalf("stored employee = %+v", created)
		}
		if created.Fullname != "Doe, Jane" {
			t.Errorf("Fullname = %q", created.Fullname)
		}
		if created.SkillNames != "Go, SQL" {
			t.Errorf("SkillNames = %q", created.SkillNames)
		}
		if created.OtherTrainingNames != "OSHA 10" {
			t.Errorf("OtherTrainingNames = %q, legacy singular key dropped", created.OtherTrainingNames)
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Error("timestamps not set")
		}
		if resp.Fullname != "Doe, Jane" {
			t.Errorf("response Fullname = %q", resp.Fullname)
		}

		// Saved values feed the option collections.
		if names := repo.lookups.names(models.LookupSkills); len(names) != 2 {
			t.Errorf("lookup skills = %v", names)
		}
		if names := repo.lookups.names(models.LookupClearanceLevels); len(names) != 1 || names[0] != "Secret" {
			t.Errorf("lookup clearanceLevels = %v", names)
		}
	})

	t.Run("no skills rejected", func(t *testing.T) {
		svc := newEmployeeFixture(newMockRepository())
		_, err := svc.Create(ctx, &SaveEmployeeRequest{
			Name: models.Name{First: "Jane", Last: "Doe"},
		})
		var ruleErr *BusinessRuleError
		if !errors.As(err, &ruleErr) {
			t.Fatalf("err = %v, want BusinessRuleError", err)
		}
		if ruleErr.Field != "skills" {
			t.Errorf("Field = %q, want skills", ruleErr.Field)
		}
	})

	t.Run("certification without issuer rejected", func(t *testing.T) {
		svc := newEmployeeFixture(newMockRepository())
		_, err := svc.Create(ctx, &SaveEmployeeRequest{
			Name:           models.Name{First: "Jane", Last: "Doe"},
			Skills:         json.RawMessage(`["Go"]`),
			Certifications: json.RawMessage(`[{"name":"CISSP"}]`),
		})
		var ruleErr *BusinessRuleError
		if !errors.As(err, &ruleErr) {
			t.Fatalf("err = %v, want BusinessRuleError", err)
		}
		if ruleErr.Field != "certifications" {
			t.Errorf("Field = %q, want certifications", ruleErr.Field)
		}
	})

	t.Run("lookup failure does not fail the save", func(t *testing.T) {
		repo := newMockRepository()
		repo.lookups.addFn = func(ctx context.Context, tx *gorm.DB, option *models.LookupOption) error {
			return errors.New("connection refused")
		}
		svc := newEmployeeFixture(repo)

		_, err := svc.Create(ctx, &SaveEmployeeRequest{
			Name:   models.Name{First: "Jane", Last: "Doe"},
			Skills: json.RawMessage(`["Go"]`),
		})
		if err != nil {
			t.Errorf("Create failed on lookup error: %v", err)
		}
	})
}

func TestEmployeeServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the whole document", func(t *testing.T) {
		repo := newMockRepository()
		existing := storedEmployee("e1", "Jane", "Doe", "Go")
		repo.employees.getByIDFn = func(ctx context.Context, tx *gorm.DB, id string) (*models.Employee, error) {
			return existing, nil
		}
		var updated *models.Employee
		repo.employees.updateFn = func(ctx context.Context, tx *gorm.DB, employee *models.Employee) error {
			updated = employee
			return nil
		}
		svc := newEmployeeFixture(repo)

		_, err := svc.Update(ctx, "e1", &SaveEmployeeRequest{
			Name:   models.Name{First: "Jane", Last: "Doe"},
			Skills: json.RawMessage(`["Terraform"]`),
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.SkillNames != "Terraform" {
			t.Errorf("SkillNames = %q, want old list replaced", updated.SkillNames)
		}
		if !updated.CreatedAt.Equal(existing.CreatedAt) {
			t.Errorf("CreatedAt changed on update")
		}
	})

	t.Run("missing employee", func(t *testing.T) {
		svc := newEmployeeFixture(newMockRepository())
		_, err := svc.Update(ctx, "missing", &SaveEmployeeRequest{
			Name:   models.Name{First: "Jane", Last: "Doe"},
			Skills: json.RawMessage(`["Go"]`),
		})
		if !errors.Is(err, ErrEmployeeNotFound) {
			t.Errorf("err = %v, want ErrEmployeeNotFound", err)
		}
	})
}

func TestEmployeeServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing", func(t *testing.T) {
		repo := newMockRepository()
		repo.employees.existsFn = func(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
			return true, nil
		}
		var deleted string
		repo.employees.deleteFn = func(ctx context.Context, tx *gorm.DB, id string) error {
			deleted = id
			return nil
		}
		svc := newEmployeeFixture(repo)

		if err := svc.Delete(ctx, "e1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if deleted != "e1" {
			t.Errorf("deleted %q, want e1", deleted)
		}
	})

	t.Run("missing employee", func(t *testing.T) {
		svc := newEmployeeFixture(newMockRepository())
		if err := svc.Delete(ctx, "missing"); !errors.Is(err, ErrEmployeeNotFound) {
			t.Errorf("err = %v, want ErrEmployeeNotFound", err)
		}
	})
}

func TestEmployeeServiceList(t *testing.T) {
	repo := newMockRepository()
	repo.employees.listFn = func(ctx context.Context, tx *gorm.DB, filters repositories.EmployeeFilters) ([]*models.Employee, int64, error) {
		return []*models.Employee{
			storedEmployee("e1", "Jane", "Doe", "Go"),
			storedEmployee("e2", "John", "Smith", "SQL"),
		}, 25, nil
	}
	svc := newEmployeeFixture(repo)

	resp, err := svc.List(context.Background(), repositories.EmployeeFilters{Limit: 10, Offset: 20})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 25 || len(resp.Employees) != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Page != 3 || resp.Size != 10 {
		t.Errorf("Page/Size = %d/%d, want 3/10", resp.Page, resp.Size)
	}
	if resp.Employees[0].Fullname != "Doe, Jane" {
		t.Errorf("Fullname = %q", resp.Employees[0].Fullname)
	}
}

func TestEmployeeServiceQuery(t *testing.T) {
	repo := newMockRepository()
	repo.employees.listFn = func(ctx context.Context, tx *gorm.DB, filters repositories.EmployeeFilters) ([]*models.Employee, int64, error) {
		return []*models.Employee{
			storedEmployee("e1", "Jane", "Doe", "Go"),
			storedEmployee("e2", "John", "Smith", "SQL"),
			storedEmployee("e3", "Amy", "Adams", "Go"),
		}, 3, nil
	}
	svc := newEmployeeFixture(repo)

	state := grid.State{
		Filter: &grid.FilterNode{Field: "skillNames", Operator: "contains", Value: "go"},
		Sort:   []grid.SortDescriptor{{Field: "fullname", Dir: grid.SortAsc}},
	}
	resp, err := svc.Query(context.Background(), state)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if resp.Total != 2 || len(resp.Employees) != 2 {
		t.Fatalf("resp = %+v, want the two Go rows", resp)
	}
	if resp.Employees[0].ID != "e3" || resp.Employees[1].ID != "e1" {
		t.Errorf("order = %s, %s, want e3 then e1", resp.Employees[0].ID, resp.Employees[1].ID)
	}
}

func TestEmployeeServiceGetBySkill(t *testing.T) {
	repo := newMockRepository()
	var gotFilters repositories.EmployeeFilters
	repo.employees.listFn = func(ctx context.Context, tx *gorm.DB, filters repositories.EmployeeFilters) ([]*models.Employee, int64, error) {
		gotFilters = filters
		return []*models.Employee{storedEmployee("e1", "Jane", "Doe", "Go")}, 1, nil
	}
	svc := newEmployeeFixture(repo)

	resp, err := svc.GetBySkill(context.Background(), "Go")
	if err != nil {
		t.Fatalf("GetBySkill failed: %v", err)
	}
	if gotFilters.Skill == nil || *gotFilters.Skill != "Go" {
		t.Errorf("filters = %+v, want skill filter", gotFilters)
	}
	if len(resp.Employees) != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestEmployeeServiceExport(t *testing.T) {
	repo := newMockRepository()
	repo.employees.listFn = func(ctx context.Context, tx *gorm.DB, filters repositories.EmployeeFilters) ([]*models.Employee, int64, error) {
		return []*models.Employee{storedEmployee("e1", "Jane", "Doe", "Go")}, 1, nil
	}
	svc := newEmployeeFixture(repo)

	data, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	// An xlsx workbook is a zip archive.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("export is not a zip archive, first bytes: %v", data[:min(4, len(data))])
	}
}

func TestEmployeeServiceImport(t *testing.T) {
	ctx := context.Background()

	rawDoc := func(first, last string, skills ...map[string]any) map[string]any {
		return map[string]any{
			"name":   map[string]any{"first": first, "last": last},
			"skills": toAnySlice(skills),
		}
	}

	t.Run("creates new and updates existing documents", func(t *testing.T) {
		repo := newMockRepository()
		var created, updated []*models.Employee
		repo.employees.existsFn = func(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
			return id == "e1", nil
		}
		repo.employees.getByIDFn = func(ctx context.Context, tx *gorm.DB, id string) (*models.Employee, error) {
			return storedEmployee(id, "Jane", "Doe", "Go"), nil
		}
		repo.employees.createFn = func(ctx context.Context, tx *gorm.DB, emp *models.Employee) error {
			created = append(created, emp)
			return nil
		}
		repo.employees.updateFn = func(ctx context.Context, tx *gorm.DB, emp *models.Employee) error {
			updated = append(updated, emp)
			return nil
		}
		svc := newEmployeeFixture(repo)

		resp, err := svc.Import(ctx, map[string]map[string]any{
			"e1": rawDoc("Jane", "Doe", map[string]any{"skill": "Go", "yearsExperience": 7}),
			"e2": rawDoc("John", "Smith", map[string]any{"skill": "SQL", "years": 3}),
		})
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if resp.Created != 1 || resp.Updated != 1 || resp.Total != 2 {
			t.Fatalf("resp = %+v, want 1 created 1 updated of 2", resp)
		}
		if len(created) != 1 || created[0].ID != "e2" {
			t.Fatalf("created = %+v", created)
		}
		if created[0].Fullname != "Smith, John" || created[0].SkillNames != "SQL" {
			t.Errorf("created row = %+v", created[0])
		}
		if len(updated) != 1 || updated[0].ID != "e1" || updated[0].SkillNames != "Go" {
			t.Fatalf("updated = %+v", updated)
		}
		var skills []models.Skill
		if err := json.Unmarshal(updated[0].Skills, &skills); err != nil {
			t.Fatalf("stored skills malformed: %v", err)
		}
		if len(skills) != 1 || skills[0].Years != 7 {
			t.Errorf("skills = %+v, want Go with 7 years", skills)
		}
	})

	t.Run("documents are processed in id order", func(t *testing.T) {
		repo := newMockRepository()
		var order []string
		repo.employees.createFn = func(ctx context.Context, tx *gorm.DB, emp *models.Employee) error {
			order = append(order, emp.ID)
			return nil
		}
		svc := newEmployeeFixture(repo)

		_, err := svc.Import(ctx, map[string]map[string]any{
			"e3": rawDoc("C", "C"),
			"e1": rawDoc("A", "A"),
			"e2": rawDoc("B", "B"),
		})
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if len(order) != 3 || order[0] != "e1" || order[1] != "e2" || order[2] != "e3" {
			t.Errorf("order = %v, want sorted by id", order)
		}
	})

	t.Run("blank id gets a generated one", func(t *testing.T) {
		repo := newMockRepository()
		var created *models.Employee
		repo.employees.createFn = func(ctx context.Context, tx *gorm.DB, emp *models.Employee) error {
			created = emp
			return nil
		}
		svc := newEmployeeFixture(repo)

		if _, err := svc.Import(ctx, map[string]map[string]any{"": rawDoc("Jane", "Doe")}); err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if created == nil || created.ID == "" {
			t.Errorf("created = %+v, want generated id", created)
		}
	})

	t.Run("storage error surfaces", func(t *testing.T) {
		repo := newMockRepository()
		repo.employees.existsFn = func(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
			return false, errors.New("connection refused")
		}
		svc := newEmployeeFixture(repo)

		if _, err := svc.Import(ctx, map[string]map[string]any{"e1": rawDoc("Jane", "Doe")}); err == nil {
			t.Error("expected storage error")
		}
	})
}

func toAnySlice(items []map[string]any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
