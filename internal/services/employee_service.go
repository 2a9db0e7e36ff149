package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/grid"
	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/normalize"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

type employeeService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	lookups   LookupService
}

func NewEmployeeService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, lookups LookupService) EmployeeService {
	return &employeeService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		lookups:   lookups,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *employeeService) Create(ctx context.Context, req *SaveEmployeeRequest) (*EmployeeResponse, error) {
	s.logger.Info("Creating employee", "fullname", req.Name.Fullname())

	// Validate request
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	emp, err := s.buildEmployee(uuid.NewString(), req)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	if err := s.repo.Employee().Create(ctx, nil, emp); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.absorbIntoLookups(ctx, emp)

	s.logger.Info("Employee created successfully", "employee_id", emp.ID)

	return s.buildEmployeeResponse(emp), nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*EmployeeResponse, error) {
	emp, err := s.repo.Employee().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.buildEmployeeResponse(emp), nil
}

// Update replaces the whole employee document. The roster client always
// submits the complete record, so the last write wins.
func (s *employeeService) Update(ctx context.Context, id string, req *SaveEmployeeRequest) (*EmployeeResponse, error) {
	s.logger.Info("Updating employee", "employee_id", id)

	// Validate request
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	current, err := s.repo.Employee().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	emp, err := s.buildEmployee(id, req)
	if err != nil {
		return nil, err
	}
	emp.CreatedAt = current.CreatedAt
	emp.UpdatedAt = time.Now()

	if err := s.repo.Employee().Update(ctx, nil, emp); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	s.absorbIntoLookups(ctx, emp)

	s.logger.Info("Employee updated successfully", "employee_id", id)

	return s.buildEmployeeResponse(emp), nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting employee", "employee_id", id)

	exists, err := s.repo.Employee().ExistsByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to check employee exists: %w", err)
	}
	if !exists {
		return ErrEmployeeNotFound
	}

	// Soft delete
	if err := s.repo.Employee().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.logger.Info("Employee deleted successfully", "employee_id", id)
	return nil
}

// ===== LIST AND QUERY OPERATIONS =====

func (s *employeeService) List(ctx context.Context, filters repositories.EmployeeFilters) (*EmployeeListResponse, error) {
	employees, total, err := s.repo.Employee().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	// Build response
	response := &EmployeeListResponse{
		Employees: make([]models.EmployeeRow, len(employees)),
		Total:     total,
		Page:      (filters.Offset / max(filters.Limit, 1)) + 1,
		Size:      filters.Limit,
	}

	for i, emp := range employees {
		response.Employees[i] = normalize.EmployeeRowFromModel(emp)
	}

	return response, nil
}

// Query applies a grid state (filter tree, sort, page window) to the
// full roster and returns the requested window plus the filtered total.
func (s *employeeService) Query(ctx context.Context, state grid.State) (*EmployeeQueryResponse, error) {
	employees, _, err := s.repo.Employee().List(ctx, nil, repositories.EmployeeFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load employees for query: %w", err)
	}

	rows := make([]models.EmployeeRow, len(employees))
	for i, emp := range employees {
		rows[i] = normalize.EmployeeRowFromModel(emp)
	}

	result := grid.Process(rows, state)

	return &EmployeeQueryResponse{
		Employees: result.Data,
		Total:     result.Total,
	}, nil
}

func (s *employeeService) GetBySkill(ctx context.Context, skill string) (*EmployeeListResponse, error) {
	filters := repositories.EmployeeFilters{Skill: &skill}
	return s.List(ctx, filters)
}

// ===== IMPORT =====

// Import ingests a snapshot of raw employee documents keyed by id, the
// shape older exports and the legacy store produced. Each document is
// normalized and upserted by id. Field rules are not enforced here
// because legacy documents predate the roster form; normalization alone
// decides what survives.
func (s *employeeService) Import(ctx context.Context, docs map[string]map[string]any) (*EmployeeImportResponse, error) {
	s.logger.Info("Importing employee documents", "count", len(docs))

	rows := normalize.EmployeeList(docs)

	resp := &EmployeeImportResponse{Total: len(rows)}
	for i := range rows {
		row := &rows[i]
		if row.ID == "" {
			row.ID = uuid.NewString()
		}

		emp := employeeFromRow(row)

		exists, err := s.repo.Employee().ExistsByID(ctx, nil, row.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check employee exists: %w", err)
		}

		now := time.Now()
		if exists {
			current, err := s.repo.Employee().GetByID(ctx, nil, row.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to get employee: %w", err)
			}
			emp.CreatedAt = current.CreatedAt
			emp.UpdatedAt = now
			if err := s.repo.Employee().Update(ctx, nil, emp); err != nil {
				return nil, fmt.Errorf("failed to update imported employee: %w", err)
			}
			resp.Updated++
		} else {
			emp.CreatedAt = now
			emp.UpdatedAt = now
			if err := s.repo.Employee().Create(ctx, nil, emp); err != nil {
				return nil, fmt.Errorf("failed to create imported employee: %w", err)
			}
			resp.Created++
		}

		s.absorbIntoLookups(ctx, emp)
	}

	s.logger.Info("Employee import finished", "created", resp.Created, "updated", resp.Updated)

	return resp, nil
}

// ===== EXPORT =====

var exportColumns = []string{"ID", "Name", "Skills", "Certifications", "Education", "Other Trainings", "Clearance Level"}

// Export renders the full roster as an xlsx workbook.
func (s *employeeService) Export(ctx context.Context) ([]byte, error) {
	s.logger.Info("Exporting employee roster")

	employees, _, err := s.repo.Employee().List(ctx, nil, repositories.EmployeeFilters{SortBy: "fullname"})
	if err != nil {
		return nil, fmt.Errorf("failed to load employees for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Employees"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for i, emp := range employees {
		row := normalize.EmployeeRowFromModel(emp)
		values := []interface{}{
			row.ID,
			row.Fullname,
			row.SkillNames,
			row.CertificationNames,
			row.EducationNames,
			row.OtherTrainingNames,
			row.ClearanceLevel,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write export row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export workbook: %w", err)
	}

	s.logger.Info("Employee roster exported", "employee_count", len(employees))

	return buf.Bytes(), nil
}

// ===== HELPER METHODS =====

// buildEmployee canonicalizes a submitted document: lists are
// normalized, roster field rules enforced, and the joined name columns
// recomputed from the canonical lists.
func (s *employeeService) buildEmployee(id string, req *SaveEmployeeRequest) (*models.Employee, error) {
	skills := normalize.Skills(req.Skills, normalize.DefaultMinYears)
	certifications := normalize.Certifications(req.Certifications)
	education := normalize.EducationList(req.Education)
	trainings := normalize.StringList(req.TrainingList())
	languages := normalize.Languages(req.Languages)

	if msg := validator.ValidateSkills(skills, true, normalize.DefaultMinYears); msg != "" {
		return nil, NewBusinessRuleError("skills", msg)
	}
	if msg := validator.ValidateCertifications(certifications, false, time.Now()); msg != "" {
		return nil, NewBusinessRuleError("certifications", msg)
	}
	if msg := validator.ValidateEducation(education, false); msg != "" {
		return nil, NewBusinessRuleError("education", msg)
	}
	if msg := validator.ValidateLanguages(languages, false); msg != "" {
		return nil, NewBusinessRuleError("languages", msg)
	}

	row := models.EmployeeRow{
		ID:             id,
		Name:           req.Name,
		Fullname:       req.Name.Fullname(),
		Skills:         skills,
		Certifications: certifications,
		Education:      education,
		OtherTrainings: trainings,
		Languages:      languages,
		ClearanceLevel: req.ClearanceLevel,
	}
	normalize.FillDerivedNames(&row)

	emp := &models.Employee{
		ID:             row.ID,
		Name:           row.Name,
		Fullname:       row.Fullname,
		Skills:         marshalList(skills),
		Certifications: marshalList(certifications),
		Education:      marshalList(education),
		OtherTrainings: marshalList(trainings),
		Languages:      marshalList(languages),
		ClearanceLevel: row.ClearanceLevel,

		SkillNames:         row.SkillNames,
		CertificationNames: row.CertificationNames,
		EducationNames:     row.EducationNames,
		OtherTrainingNames: row.OtherTrainingNames,
	}

	return emp, nil
}

// employeeFromRow maps a canonical row onto the persisted document.
func employeeFromRow(row *models.EmployeeRow) *models.Employee {
	return &models.Employee{
		ID:             row.ID,
		Name:           row.Name,
		Fullname:       row.Fullname,
		Skills:         marshalList(row.Skills),
		Certifications: marshalList(row.Certifications),
		Education:      marshalList(row.Education),
		OtherTrainings: marshalList(row.OtherTrainings),
		Languages:      marshalList(row.Languages),
		ClearanceLevel: row.ClearanceLevel,

		SkillNames:         row.SkillNames,
		CertificationNames: row.CertificationNames,
		EducationNames:     row.EducationNames,
		OtherTrainingNames: row.OtherTrainingNames,
	}
}

func (s *employeeService) buildEmployeeResponse(emp *models.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		EmployeeRow: normalize.EmployeeRowFromModel(emp),
		CreatedAt:   emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   emp.UpdatedAt.Format(time.RFC3339),
	}
}

// absorbIntoLookups feeds a saved document into the option collections.
// Lookup accumulation never fails a save.
func (s *employeeService) absorbIntoLookups(ctx context.Context, emp *models.Employee) {
	if s.lookups == nil {
		return
	}
	if err := s.lookups.AbsorbEmployee(ctx, emp); err != nil {
		s.logger.Warn("Failed to absorb employee into lookup collections", "employee_id", emp.ID, "error", err)
	}
}

func marshalList(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}
