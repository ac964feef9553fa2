package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/patch"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/internal/repository"
	appErr "github.com/trackr/api/pkg/errors"
	"github.com/trackr/api/pkg/logger"
	"go.uber.org/zap"
)

// Service interface and related DTOs
type ProjectService interface {
	CreateProject(ctx context.Context, actor *models.User, input *CreateProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	PaginateProjects(ctx context.Context, p query.Params, f repository.ProjectFilter) (query.Page[models.Project], error)
	UpdateProject(ctx context.Context, actor *models.User, id uuid.UUID, input *UpdateProjectInput) (*models.Project, error)
	UpdateStatus(ctx context.Context, actor *models.User, id uuid.UUID, status models.Status) (*models.Project, error)
	UpdateCustomer(ctx context.Context, actor *models.User, id uuid.UUID, customerID *uuid.UUID) (*models.Project, error)
	DeleteProject(ctx context.Context, actor *models.User, id uuid.UUID) error
}

type CreateProjectInput struct {
	Name        string
	Description string
	CustomerID  *uuid.UUID
}

type UpdateProjectInput struct {
	Name        patch.Field[string]
	Description patch.Field[string]
}

type projectService struct {
	projectRepo  repository.ProjectRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

func NewProjectService(projectRepo repository.ProjectRepository, customerRepo repository.CustomerRepository) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		customerRepo: customerRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Ensure interfaces are satisfied at compile time
var _ ProjectService = (*projectService)(nil)

// CreateProject creates a ToDo project owned by actor.
func (s *projectService) CreateProject(ctx context.Context, actor *models.User, input *CreateProjectInput) (*models.Project, error) {
	logger.L().Info("create project called", zap.String("user_id", actor.ID.String()), zap.String("name", input.Name))

	if input.CustomerID != nil {
		if err := s.requireCustomer(ctx, *input.CustomerID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	p := &models.Project{
		Name:          input.Name,
		Description:   input.Description,
		Status:        models.StatusToDo,
		CreatedDate:   now,
		UpdatedDate:   now,
		CreatedUserID: actor.ID,
		UpdatedUserID: actor.ID,
		CustomerID:    input.CustomerID,
	}
	if err := s.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.L().Info("project created", zap.String("project_id", p.ID.String()), zap.String("user_id", actor.ID.String()))
	return s.projectRepo.GetDetailed(ctx, p.ID)
}

func (s *projectService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projectRepo.GetDetailed(ctx, id)
}

func (s *projectService) PaginateProjects(ctx context.Context, p query.Params, f repository.ProjectFilter) (query.Page[models.Project], error) {
	return s.projectRepo.Paginate(ctx, p, f)
}

func (s *projectService) UpdateProject(ctx context.Context, actor *models.User, id uuid.UUID, input *UpdateProjectInput) (*models.Project, error) {
	if input.Name.Set && (!input.Name.HasValue() || input.Name.Value == "") {
		return nil, appErr.New(appErr.CodeInvalid, "name cannot be empty")
	}
	return s.mutate(ctx, actor, id, "update project", func(p *models.Project) error {
		if input.Name.Set {
			p.Name = input.Name.Value
		}
		if input.Description.Set {
			p.Description = input.Description.Value
		}
		return nil
	})
}

func (s *projectService) UpdateStatus(ctx context.Context, actor *models.User, id uuid.UUID, status models.Status) (*models.Project, error) {
	if !status.Valid() {
		return nil, appErr.Newf(appErr.CodeInvalid, "invalid status %d", int(status))
	}
	return s.mutate(ctx, actor, id, "update project status", func(p *models.Project) error {
		p.Status = status
		return nil
	})
}

// UpdateCustomer links the project to customerID, or unlinks it when nil.
func (s *projectService) UpdateCustomer(ctx context.Context, actor *models.User, id uuid.UUID, customerID *uuid.UUID) (*models.Project, error) {
	return s.mutate(ctx, actor, id, "update project customer", func(p *models.Project) error {
		if customerID != nil {
			if err := s.requireCustomer(ctx, *customerID); err != nil {
				return err
			}
		}
		p.CustomerID = customerID
		return nil
	})
}

func (s *projectService) DeleteProject(ctx context.Context, actor *models.User, id uuid.UUID) error {
	logger.L().Info("delete project", zap.String("project_id", id.String()), zap.String("user_id", actor.ID.String()))
	if err := s.projectRepo.DeleteWithResources(ctx, id); err != nil {
		return err
	}
	logger.L().Info("project deleted", zap.String("project_id", id.String()), zap.String("user_id", actor.ID.String()))
	return nil
}

// mutate loads a project, applies change, stamps the actor and saves it.
func (s *projectService) mutate(ctx context.Context, actor *models.User, id uuid.UUID, op string, change func(*models.Project) error) (*models.Project, error) {
	logger.L().Info(op, zap.String("project_id", id.String()), zap.String("user_id", actor.ID.String()))

	var p models.Project
	if err := s.projectRepo.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}
	if err := change(&p); err != nil {
		return nil, err
	}
	p.Touch(actor.ID, s.now())
	if err := s.projectRepo.Update(ctx, &p); err != nil {
		return nil, err
	}
	return s.projectRepo.GetDetailed(ctx, id)
}

func (s *projectService) requireCustomer(ctx context.Context, id uuid.UUID) error {
	var c models.Customer
	return s.customerRepo.GetByID(ctx, id, &c)
}
