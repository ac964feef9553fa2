package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/internal/repository"
	"github.com/trackr/api/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json", ""); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

// baseMock implements repository.BaseRepository[T] on top of mock.Mock.
// GetByID copies the value passed to Return into dest.
type baseMock[T any] struct {
	mock.Mock
}

func (m *baseMock[T]) Create(ctx context.Context, obj *T) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *baseMock[T]) GetByID(ctx context.Context, id any, dest *T) error {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(T); ok {
		*dest = v
	}
	return args.Error(1)
}

func (m *baseMock[T]) Update(ctx context.Context, obj *T) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *baseMock[T]) Delete(ctx context.Context, id any) error {
	return m.Called(ctx, id).Error(0)
}

func (m *baseMock[T]) List(ctx context.Context, order string) ([]T, error) {
	args := m.Called(ctx, order)
	if v := args.Get(0); v != nil {
		return v.([]T), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserRepo struct {
	baseMock[models.User]
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	args := m.Called(ctx, email)
	if v, ok := args.Get(0).(models.User); ok {
		*dest = v
	}
	return args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Paginate(ctx context.Context, p query.Params, f repository.UserFilter) (query.Page[models.User], error) {
	args := m.Called(ctx, p, f)
	return args.Get(0).(query.Page[models.User]), args.Error(1)
}

func (m *mockUserRepo) CountByRole(ctx context.Context) (repository.RoleCounts, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(repository.RoleCounts), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProjectRepo struct {
	baseMock[models.Project]
}

func (m *mockProjectRepo) GetDetailed(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectRepo) Paginate(ctx context.Context, p query.Params, f repository.ProjectFilter) (query.Page[models.Project], error) {
	args := m.Called(ctx, p, f)
	return args.Get(0).(query.Page[models.Project]), args.Error(1)
}

func (m *mockProjectRepo) CountByStatus(ctx context.Context) (repository.StatusCounts, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(repository.StatusCounts), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectRepo) BudgetsCreatedBetween(ctx context.Context, from, to time.Time) ([]repository.ProjectBudget, error) {
	args := m.Called(ctx, from, to)
	if v := args.Get(0); v != nil {
		return v.([]repository.ProjectBudget), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectRepo) DeleteWithResources(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCustomerRepo struct {
	baseMock[models.Customer]
}

func (m *mockCustomerRepo) Paginate(ctx context.Context, p query.Params) (query.Page[models.Customer], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(query.Page[models.Customer]), args.Error(1)
}

type mockResourceRepo struct {
	baseMock[models.Resource]
}

func (m *mockResourceRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error) {
	args := m.Called(ctx, projectID)
	if v := args.Get(0); v != nil {
		return v.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	_ repository.UserRepository     = (*mockUserRepo)(nil)
	_ repository.ProjectRepository  = (*mockProjectRepo)(nil)
	_ repository.CustomerRepository = (*mockCustomerRepo)(nil)
	_ repository.ResourceRepository = (*mockResourceRepo)(nil)
)

func userWithRole(role models.Role) *models.User {
	return &models.User{ID: uuid.New(), Role: &role}
}
