package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/trackr/api/internal/api/types"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/patch"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/internal/services"
)

// PageQuery selects one page of a list. Zero values fall back to the
// server defaults.
type PageQuery struct {
	Search    string
	Page      int
	PageSize  int
	SortOrder query.SortOrder
}

func (p PageQuery) values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("searchValue", p.Search)
	}
	if p.Page != 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize != 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", string(p.SortOrder))
	}
	return v
}

type ProjectQuery struct {
	PageQuery
	Status *models.Status
}

type UserQuery struct {
	PageQuery
	Role *models.Role
}

// setIf adds a partial-update field only when the caller set it, so absent
// fields are left out of the body instead of being sent as null.
func setIf(body map[string]any, key string, set bool, v any) {
	if set {
		body[key] = v
	}
}

func idQuery(key string, id uuid.UUID) url.Values {
	return url.Values{key: []string{id.String()}}
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*types.LoginResponse, error) {
	var out types.LoginResponse
	if err := c.mutate(ctx, http.MethodPost, "/Login/LoginUser", nil, types.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.UserSummary, error) {
	var out types.UserSummary
	if err := c.mutate(ctx, http.MethodPost, "/User/CreateUser", nil, req, &out, GroupUser); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AuthenticatedUser(ctx context.Context) (*types.AuthenticatedUser, error) {
	var out types.AuthenticatedUser
	if err := c.get(ctx, GroupUser, "/User/GetAuthenticatedUser", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserByID(ctx context.Context, id uuid.UUID) (*types.UserSummary, error) {
	var out types.UserSummary
	if err := c.get(ctx, GroupUser, "/User/GetUserById", idQuery("id", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AllUsers(ctx context.Context) ([]types.UserSummary, error) {
	var out []types.UserSummary
	if err := c.get(ctx, GroupUser, "/User/GetAllUsers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Users(ctx context.Context, q UserQuery) (*query.Page[types.UserSummary], error) {
	v := q.values()
	if q.Role != nil {
		v.Set("roleFilter", strconv.Itoa(int(*q.Role)))
	}
	var out query.Page[types.UserSummary]
	if err := c.get(ctx, GroupUser, "/User/GetUserPagination", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserRoleData(ctx context.Context) (*services.RoleStats, error) {
	var out services.RoleStats
	if err := c.get(ctx, GroupUser, "/User/GetUserRoleData", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser also clears cached projects, which embed user summaries.
func (c *Client) UpdateUser(ctx context.Context, id uuid.UUID, req types.UpdateUserRequest) (*types.UserSummary, error) {
	body := map[string]any{}
	setIf(body, "name", req.Name.Set, req.Name)
	setIf(body, "email", req.Email.Set, req.Email)
	setIf(body, "password", req.Password.Set, req.Password)
	setIf(body, "role", req.Role.Set, req.Role)
	var out types.UserSummary
	if err := c.mutate(ctx, http.MethodPut, "/User/UpdateUserData", idQuery("userId", id), body, &out, GroupUser, GroupProject); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, "/User/DeleteUser", idQuery("userId", id), nil, nil, GroupUser, GroupProject)
}

func (c *Client) Projects(ctx context.Context, q ProjectQuery) (*query.Page[types.ProjectResponse], error) {
	v := q.values()
	if q.Status != nil {
		v.Set("statusFilter", strconv.Itoa(int(*q.Status)))
	}
	var out query.Page[types.ProjectResponse]
	if err := c.get(ctx, GroupProject, "/Project/GetProjects", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProjectByID(ctx context.Context, id uuid.UUID) (*types.ProjectResponse, error) {
	var out types.ProjectResponse
	if err := c.get(ctx, GroupProject, "/Project/GetProjectById", idQuery("id", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProjectStatusList(ctx context.Context) (*services.StatusSummary, error) {
	var out services.StatusSummary
	if err := c.get(ctx, GroupProject, "/Project/GetProjectStatusList", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MonthlyData returns the monthly budget report. A zero year uses the
// server's configured report year.
func (c *Client) MonthlyData(ctx context.Context, year int) ([]services.MonthlyBudget, error) {
	var v url.Values
	if year != 0 {
		v = url.Values{"year": []string{strconv.Itoa(year)}}
	}
	var out []services.MonthlyBudget
	if err := c.get(ctx, GroupProject, "/Project/GetProjectMonthlyData", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, req types.CreateProjectRequest) (*types.ProjectResponse, error) {
	var out types.ProjectResponse
	if err := c.mutate(ctx, http.MethodPost, "/Project/CreateProject", nil, req, &out, GroupProject); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id uuid.UUID, req types.UpdateProjectRequest) (*types.ProjectResponse, error) {
	body := map[string]any{}
	setIf(body, "name", req.Name.Set, req.Name)
	setIf(body, "description", req.Description.Set, req.Description)
	var out types.ProjectResponse
	if err := c.mutate(ctx, http.MethodPut, "/Project/UpdateProject", idQuery("id", id), body, &out, GroupProject); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProjectStatus(ctx context.Context, id uuid.UUID, status models.Status) (*types.ProjectResponse, error) {
	var out types.ProjectResponse
	req := types.UpdateProjectStatusRequest{Status: &status}
	if err := c.mutate(ctx, http.MethodPut, "/Project/UpdateProjectStatus", idQuery("id", id), req, &out, GroupProject); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProjectCustomer links a customer, or unlinks it when customerID is nil.
func (c *Client) UpdateProjectCustomer(ctx context.Context, id uuid.UUID, customerID *uuid.UUID) (*types.ProjectResponse, error) {
	req := types.UpdateProjectCustomerRequest{CustomerID: patch.Null[uuid.UUID]()}
	if customerID != nil {
		req.CustomerID = patch.Of(*customerID)
	}
	var out types.ProjectResponse
	if err := c.mutate(ctx, http.MethodPut, "/Project/UpdateProjectCustomer", idQuery("id", id), req, &out, GroupProject); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, "/Project/DeleteProject", idQuery("id", id), nil, nil, GroupProject, GroupResource)
}

// CreateResource also clears cached projects, whose details and budgets
// include resources.
func (c *Client) CreateResource(ctx context.Context, req types.CreateResourceRequest) (*models.Resource, error) {
	var out models.Resource
	if err := c.mutate(ctx, http.MethodPost, "/Resource/CreateResource", nil, req, &out, GroupResource, GroupProject); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AllResources(ctx context.Context) ([]models.Resource, error) {
	var out []models.Resource
	if err := c.get(ctx, GroupResource, "/Resource/GetAllResources", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ResourcesByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error) {
	var out []models.Resource
	if err := c.get(ctx, GroupResource, "/Resource/GetResourceByProject", idQuery("projectId", projectID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, req types.CreateCustomerRequest) (*models.Customer, error) {
	var out models.Customer
	if err := c.mutate(ctx, http.MethodPost, "/Customer/CreateCustomer", nil, req, &out, GroupCustomer); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Customers(ctx context.Context, q PageQuery) (*query.Page[models.Customer], error) {
	var out query.Page[models.Customer]
	if err := c.get(ctx, GroupCustomer, "/Customer/GetCustomerPagination", q.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AllCustomers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	if err := c.get(ctx, GroupCustomer, "/Customer/GetAllCustomers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var out models.Customer
	if err := c.get(ctx, GroupCustomer, "/Customer/GetCustomerById", idQuery("id", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
