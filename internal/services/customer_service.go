package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/internal/repository"
	"github.com/trackr/api/pkg/logger"
	"go.uber.org/zap"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	PaginateCustomers(ctx context.Context, p query.Params) (query.Page[models.Customer], error)
}

type CreateCustomerInput struct {
	Name               string
	ContactMail        string
	OrganizationNumber int
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

var _ CustomerService = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*models.Customer, error) {
	c := &models.Customer{
		Name:               input.Name,
		ContactMail:        input.ContactMail,
		OrganizationNumber: input.OrganizationNumber,
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.L().Info("customer created", zap.String("customer_id", c.ID.String()))
	return c, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	if err := s.customerRepo.GetByID(ctx, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.List(ctx, "name ASC")
}

func (s *customerService) PaginateCustomers(ctx context.Context, p query.Params) (query.Page[models.Customer], error) {
	return s.customerRepo.Paginate(ctx, p)
}
