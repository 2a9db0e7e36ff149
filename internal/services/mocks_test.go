package services

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newTestValidator() *validator.Validator {
	return validator.New()
}

// mockRepository is an in-memory Repository for service tests. Every
// sub-repository method can be overridden through its function field;
// unset fields fall back to a simple in-memory behavior.
type mockRepository struct {
	employees    *mockEmployeeRepo
	users        *mockUserRepo
	directory    *mockDirectoryRepo
	lookups      *mockLookupRepo
	gridSettings *mockGridSettingRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		employees:    &mockEmployeeRepo{},
		users:        &mockUserRepo{},
		directory:    &mockDirectoryRepo{},
		lookups:      &mockLookupRepo{},
		gridSettings: &mockGridSettingRepo{settings: map[string]*models.GridSetting{}},
	}
}

func (m *mockRepository) Employee() repositories.EmployeeRepository       { return m.employees }
func (m *mockRepository) User() repositories.UserRepository               { return m.users }
func (m *mockRepository) Directory() repositories.DirectoryRepository     { return m.directory }
func (m *mockRepository) Lookup() repositories.LookupRepository           { return m.lookups }
func (m *mockRepository) GridSetting() repositories.GridSettingRepository { return m.gridSettings }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== EMPLOYEE =====

type mockEmployeeRepo struct {
	createFn  func(ctx context.Context, tx *gorm.DB, employee *models.Employee) error
	updateFn  func(ctx context.Context, tx *gorm.DB, employee *models.Employee) error
	deleteFn  func(ctx context.Context, tx *gorm.DB, id string) error
	getByIDFn func(ctx context.Context, tx *gorm.DB, id string) (*models.Employee, error)
	listFn    func(ctx context.Context, tx *gorm.DB, filters repositories.EmployeeFilters) ([]*models.Employee, int64, error)
	existsFn  func(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

func (m *mockEmployeeRepo) Create(ctx context.Context, tx *gorm.DB, employee *models.Employee) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, employee)
	}
	return nil
}

func (m *mockEmployeeRepo) Update(ctx context.Context, tx *gorm.DB, employee *models.Employee) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, tx, employee)
	}
	return nil
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	return nil
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Employee, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.EmployeeFilters) ([]*models.Employee, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, tx, filters)
	}
	return nil, 0, nil
}

func (m *mockEmployeeRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, tx, id)
	}
	return false, nil
}

// ===== USER =====

type mockUserRepo struct {
	createFn     func(ctx context.Context, tx *gorm.DB, user *models.User) error
	updateFn     func(ctx context.Context, tx *gorm.DB, user *models.User) error
	upsertFn     func(ctx context.Context, tx *gorm.DB, user *models.User) error
	deleteFn     func(ctx context.Context, tx *gorm.DB, uid string) error
	getByIDFn    func(ctx context.Context, uid string) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	listFn       func(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error)
	existsFn     func(ctx context.Context, uid string) (bool, error)
	hasRoleFn    func(ctx context.Context, uid string, role models.UserRole) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, user)
	}
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, tx, user)
	}
	return nil
}

func (m *mockUserRepo) Upsert(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, tx, user)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, tx *gorm.DB, uid string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, uid)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, uid)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, 0, nil
}

func (m *mockUserRepo) ExistsByID(ctx context.Context, uid string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, uid)
	}
	return false, nil
}

func (m *mockUserRepo) HasRole(ctx context.Context, uid string, role models.UserRole) (bool, error) {
	if m.hasRoleFn != nil {
		return m.hasRoleFn(ctx, uid, role)
	}
	return false, nil
}

// ===== DIRECTORY =====

type mockDirectoryRepo struct {
	listPageFn func(ctx context.Context, page, pageSize int) ([]repositories.AccountInfo, int, error)
	getByIDFn  func(ctx context.Context, uid string) (*repositories.AccountInfo, error)
}

func (m *mockDirectoryRepo) ListPage(ctx context.Context, page, pageSize int) ([]repositories.AccountInfo, int, error) {
	if m.listPageFn != nil {
		return m.listPageFn(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockDirectoryRepo) GetByID(ctx context.Context, uid string) (*repositories.AccountInfo, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, uid)
	}
	return nil, gorm.ErrRecordNotFound
}

// ===== LOOKUP =====

// mockLookupRepo keeps options in memory so accumulation tests can
// assert on the resulting collections.
type mockLookupRepo struct {
	options []*models.LookupOption

	listFn   func(ctx context.Context, collection models.LookupCollection) ([]*models.LookupOption, error)
	namesFn  func(ctx context.Context, collection models.LookupCollection) ([]string, error)
	addFn    func(ctx context.Context, tx *gorm.DB, option *models.LookupOption) error
	removeFn func(ctx context.Context, tx *gorm.DB, collection models.LookupCollection, name string) error
}

func (m *mockLookupRepo) ListByCollection(ctx context.Context, collection models.LookupCollection) ([]*models.LookupOption, error) {
	if m.listFn != nil {
		return m.listFn(ctx, collection)
	}
	var out []*models.LookupOption
	for _, opt := range m.options {
		if opt.Collection == string(collection) {
			out = append(out, opt)
		}
	}
	return out, nil
}

func (m *mockLookupRepo) Names(ctx context.Context, collection models.LookupCollection) ([]string, error) {
	if m.namesFn != nil {
		return m.namesFn(ctx, collection)
	}
	opts, _ := m.ListByCollection(ctx, collection)
	var names []string
	for _, opt := range opts {
		names = append(names, opt.Name)
	}
	return names, nil
}

func (m *mockLookupRepo) Add(ctx context.Context, tx *gorm.DB, option *models.LookupOption) error {
	if m.addFn != nil {
		return m.addFn(ctx, tx, option)
	}
	m.options = append(m.options, option)
	return nil
}

func (m *mockLookupRepo) Remove(ctx context.Context, tx *gorm.DB, collection models.LookupCollection, name string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, tx, collection, name)
	}
	kept := m.options[:0]
	for _, opt := range m.options {
		if opt.Collection == string(collection) && strings.EqualFold(opt.Name, name) {
			continue
		}
		kept = append(kept, opt)
	}
	m.options = kept
	return nil
}

func (m *mockLookupRepo) names(collection models.LookupCollection) []string {
	names, _ := m.Names(context.Background(), collection)
	return names
}

// ===== GRID SETTINGS =====

type mockGridSettingRepo struct {
	settings map[string]*models.GridSetting

	getFn  func(ctx context.Context, userID, gridID string) (*models.GridSetting, error)
	saveFn func(ctx context.Context, userID, gridID string, state datatypes.JSON) error
}

func (m *mockGridSettingRepo) Get(ctx context.Context, userID, gridID string) (*models.GridSetting, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, gridID)
	}
	setting, ok := m.settings[userID+"/"+gridID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return setting, nil
}

func (m *mockGridSettingRepo) Save(ctx context.Context, userID, gridID string, state datatypes.JSON) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, gridID, state)
	}
	m.settings[userID+"/"+gridID] = &models.GridSetting{
		UserID: userID,
		GridID: gridID,
		State:  state,
	}
	return nil
}
