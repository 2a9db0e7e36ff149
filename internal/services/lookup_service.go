package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

type lookupService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewLookupService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) LookupService {
	return &lookupService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// ===== COLLECTION ACCESS =====

func (s *lookupService) GetCollection(ctx context.Context, collection string) (*LookupResponse, error) {
	c := models.LookupCollection(collection)
	if !c.Valid() {
		return nil, ErrUnknownLookup
	}

	names, err := s.repo.Lookup().Names(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to load lookup collection: %w", err)
	}

	// The proficiency tier list has a built-in default so the language
	// editor is usable before any options are seeded.
	if len(names) == 0 && c == models.LookupProficiencyLevels {
		names = append(names, models.DefaultLanguageProficiencies...)
	}
	if names == nil {
		names = []string{}
	}

	return &LookupResponse{
		Collection: string(c),
		Options:    names,
	}, nil
}

func (s *lookupService) AddOption(ctx context.Context, collection, name string) error {
	c := models.LookupCollection(collection)
	if !c.Valid() {
		return ErrUnknownLookup
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return NewBusinessRuleError("name", "Option name is required.")
	}

	return s.addMissing(ctx, c, []string{name})
}

func (s *lookupService) RemoveOption(ctx context.Context, collection, name string) error {
	c := models.LookupCollection(collection)
	if !c.Valid() {
		return ErrUnknownLookup
	}

	if err := s.repo.Lookup().Remove(ctx, nil, c, name); err != nil {
		return fmt.Errorf("failed to remove lookup option: %w", err)
	}
	return nil
}

// ===== OPTION ACCUMULATION =====

// AbsorbEmployee unions a saved document's values into the option
// collections. Each collection only grows, so replaying saves in any
// order converges on the same option sets.
func (s *lookupService) AbsorbEmployee(ctx context.Context, emp *models.Employee) error {
	for collection, names := range rowForAbsorb(emp) {
		if len(names) == 0 {
			continue
		}
		if err := s.addMissing(ctx, collection, names); err != nil {
			return err
		}
	}
	return nil
}

// addMissing inserts only the names not already present, preserving the
// existing sort order and appending new options at the end.
func (s *lookupService) addMissing(ctx context.Context, collection models.LookupCollection, names []string) error {
	existing, err := s.repo.Lookup().ListByCollection(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to load lookup collection: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	nextOrder := 0
	for _, opt := range existing {
		seen[strings.ToLower(opt.Name)] = true
		if opt.SortOrder >= nextOrder {
			nextOrder = opt.SortOrder + 1
		}
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		option := &models.LookupOption{
			Collection: string(collection),
			Name:       name,
			SortOrder:  nextOrder,
		}
		nextOrder++

		if err := s.repo.Lookup().Add(ctx, nil, option); err != nil {
			return fmt.Errorf("failed to add lookup option: %w", err)
		}

		s.logger.Debug("Lookup option added", "collection", collection, "name", name)
	}
	return nil
}

// rowForAbsorb extracts the contributable values from a persisted
// document, keyed by the collection each feeds.
func rowForAbsorb(emp *models.Employee) map[models.LookupCollection][]string {
	out := make(map[models.LookupCollection][]string)

	add := func(c models.LookupCollection, values ...string) {
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				out[c] = append(out[c], v)
			}
		}
	}

	add(models.LookupSkills, splitNames(emp.SkillNames)...)
	add(models.LookupCertifications, splitNames(emp.CertificationNames)...)
	add(models.LookupFieldsOfStudy, splitNames(emp.EducationNames)...)
	add(models.LookupOtherTraining, splitNames(emp.OtherTrainingNames)...)
	add(models.LookupClearanceLevels, emp.ClearanceLevel)

	// Degrees are not part of a derived name column, so they come from
	// the stored document itself.
	var education []models.Education
	if len(emp.Education) > 0 {
		_ = json.Unmarshal(emp.Education, &education)
	}
	for _, e := range education {
		add(models.LookupEducationLevels, e.Degree)
	}

	return out
}

func splitNames(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
