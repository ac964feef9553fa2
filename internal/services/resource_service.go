package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/repository"
	appErr "github.com/trackr/api/pkg/errors"
	"github.com/trackr/api/pkg/logger"
	"go.uber.org/zap"
)

type ResourceService interface {
	CreateResource(ctx context.Context, input *CreateResourceInput) (*models.Resource, error)
	ListResources(ctx context.Context) ([]models.Resource, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error)
}

type CreateResourceInput struct {
	EstimateType models.EstimateType
	TimeHours    int
	TimeCost     int
	ProjectID    uuid.UUID
}

type resourceService struct {
	resourceRepo repository.ResourceRepository
	projectRepo  repository.ProjectRepository
}

func NewResourceService(resourceRepo repository.ResourceRepository, projectRepo repository.ProjectRepository) ResourceService {
	return &resourceService{resourceRepo: resourceRepo, projectRepo: projectRepo}
}

var _ ResourceService = (*resourceService)(nil)

// CreateResource adds a line item; TotalCost is computed here and never
// taken from the caller.
func (s *resourceService) CreateResource(ctx context.Context, input *CreateResourceInput) (*models.Resource, error) {
	if err := ensureID(input.ProjectID, "project"); err != nil {
		return nil, err
	}
	if !input.EstimateType.Valid() {
		return nil, appErr.Newf(appErr.CodeInvalid, "invalid estimateType %d", int(input.EstimateType))
	}
	if input.TimeHours < 0 || input.TimeCost < 0 {
		return nil, appErr.New(appErr.CodeInvalid, "timeHours and timeCost must be non-negative")
	}
	if err := s.requireProject(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	r := models.NewResource(input.ProjectID, input.EstimateType, input.TimeHours, input.TimeCost)
	if err := s.resourceRepo.Create(ctx, &r); err != nil {
		return nil, err
	}
	logger.L().Info("resource created",
		zap.String("resource_id", r.ID.String()),
		zap.String("project_id", r.ProjectID.String()),
		zap.Int("total_cost", r.TotalCost),
	)
	return &r, nil
}

func (s *resourceService) ListResources(ctx context.Context) ([]models.Resource, error) {
	return s.resourceRepo.List(ctx, "created_at ASC")
}

func (s *resourceService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.resourceRepo.ListByProject(ctx, projectID)
}

func (s *resourceService) requireProject(ctx context.Context, id uuid.UUID) error {
	var p models.Project
	return s.projectRepo.GetByID(ctx, id, &p)
}
