package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/internal/repository"
	"github.com/trackr/api/internal/services"
	appErr "github.com/trackr/api/pkg/errors"
)

// tokenTable resolves fixed test tokens to users.
type tokenTable map[string]*models.User

func (t tokenTable) Principal(_ context.Context, token string) (*models.User, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, appErr.New(appErr.CodeUnauthorized, "invalid token")
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, actor *models.User, input *services.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, actor, input)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if v := args.Get(1); v != nil {
		return args.String(0), v.(*models.User), args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}

func (m *mockAuthService) Principal(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserService) PaginateUsers(ctx context.Context, p query.Params, f repository.UserFilter) (query.Page[models.User], error) {
	args := m.Called(ctx, p, f)
	return args.Get(0).(query.Page[models.User]), args.Error(1)
}

func (m *mockUserService) RoleStats(ctx context.Context) (*services.RoleStats, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*services.RoleStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, actor *models.User, id uuid.UUID, input *services.UpdateUserInput) (*models.User, error) {
	args := m.Called(ctx, actor, id, input)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, actor *models.User, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockProjectService struct{ mock.Mock }

func (m *mockProjectService) project(args mock.Arguments) (*models.Project, error) {
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectService) CreateProject(ctx context.Context, actor *models.User, input *services.CreateProjectInput) (*models.Project, error) {
	return m.project(m.Called(ctx, actor, input))
}

func (m *mockProjectService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return m.project(m.Called(ctx, id))
}

func (m *mockProjectService) PaginateProjects(ctx context.Context, p query.Params, f repository.ProjectFilter) (query.Page[models.Project], error) {
	args := m.Called(ctx, p, f)
	return args.Get(0).(query.Page[models.Project]), args.Error(1)
}

func (m *mockProjectService) UpdateProject(ctx context.Context, actor *models.User, id uuid.UUID, input *services.UpdateProjectInput) (*models.Project, error) {
	return m.project(m.Called(ctx, actor, id, input))
}

func (m *mockProjectService) UpdateStatus(ctx context.Context, actor *models.User, id uuid.UUID, status models.Status) (*models.Project, error) {
	return m.project(m.Called(ctx, actor, id, status))
}

func (m *mockProjectService) UpdateCustomer(ctx context.Context, actor *models.User, id uuid.UUID, customerID *uuid.UUID) (*models.Project, error) {
	return m.project(m.Called(ctx, actor, id, customerID))
}

func (m *mockProjectService) DeleteProject(ctx context.Context, actor *models.User, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockReportService struct{ mock.Mock }

func (m *mockReportService) StatusSummary(ctx context.Context) (*services.StatusSummary, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*services.StatusSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) MonthlyBudget(ctx context.Context, year int) ([]services.MonthlyBudget, error) {
	args := m.Called(ctx, year)
	if v := args.Get(0); v != nil {
		return v.([]services.MonthlyBudget), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockResourceService struct{ mock.Mock }

func (m *mockResourceService) CreateResource(ctx context.Context, input *services.CreateResourceInput) (*models.Resource, error) {
	args := m.Called(ctx, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) ListResources(ctx context.Context) ([]models.Resource, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Resource), args.Error(1)
}

func (m *mockResourceService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error) {
	args := m.Called(ctx, projectID)
	if v := args.Get(0); v != nil {
		return v.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCustomerService struct{ mock.Mock }

func (m *mockCustomerService) CreateCustomer(ctx context.Context, input *services.CreateCustomerInput) (*models.Customer, error) {
	args := m.Called(ctx, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *mockCustomerService) PaginateCustomers(ctx context.Context, p query.Params) (query.Page[models.Customer], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(query.Page[models.Customer]), args.Error(1)
}

var (
	_ services.AuthService     = (*mockAuthService)(nil)
	_ services.UserService     = (*mockUserService)(nil)
	_ services.ProjectService  = (*mockProjectService)(nil)
	_ services.ReportService   = (*mockReportService)(nil)
	_ services.ResourceService = (*mockResourceService)(nil)
	_ services.CustomerService = (*mockCustomerService)(nil)
)
