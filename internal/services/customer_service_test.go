package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	appErr "github.com/trackr/api/pkg/errors"
)

func TestCreateCustomer(t *testing.T) {
	ctx := context.Background()
	repo := &mockCustomerRepo{}
	repo.On("Create", ctx, mock.AnythingOfType("*models.Customer")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Customer).ID = uuid.New()
	}).Return(nil)

	c, err := NewCustomerService(repo).CreateCustomer(ctx, &CreateCustomerInput{
		Name:               "Acme",
		ContactMail:        "post@acme.no",
		OrganizationNumber: 912345678,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, c.ID)
	require.Equal(t, 912345678, c.OrganizationNumber)
}

func TestGetCustomerNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mockCustomerRepo{}
	id := uuid.New()
	repo.On("GetByID", ctx, id).Return(nil, appErr.New(appErr.CodeNotFound, "customer not found"))

	_, err := NewCustomerService(repo).GetCustomer(ctx, id)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestPaginateCustomersPassesParams(t *testing.T) {
	ctx := context.Background()
	repo := &mockCustomerRepo{}
	p := query.Params{Search: "acme", Page: 2, PageSize: 5, Sort: query.Asc}
	repo.On("Paginate", ctx, p).Return(query.Page[models.Customer]{
		Items:      []models.Customer{{Name: "Acme"}},
		TotalItems: 6,
	}, nil)

	page, err := NewCustomerService(repo).PaginateCustomers(ctx, p)
	require.NoError(t, err)
	require.EqualValues(t, 6, page.TotalItems)
	require.Len(t, page.Items, 1)
}
