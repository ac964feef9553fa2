package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/trackr/api/internal/api/handlers"
	mw "github.com/trackr/api/internal/api/middleware"
	"github.com/trackr/api/internal/auth"
	"github.com/trackr/api/internal/models"
)

type Dependencies struct {
	Principals       mw.PrincipalResolver
	CORSOrigin       string
	Registry         *prometheus.Registry
	Health           *handlers.HealthHandler
	AuthHandler      *handlers.AuthHandler
	UsersHandler     *handlers.UsersHandler
	ProjectsHandler  *handlers.ProjectsHandler
	ResourcesHandler *handlers.ResourcesHandler
	CustomersHandler *handlers.CustomersHandler
}

func NewRouter(dep Dependencies) http.Handler {
	reg := dep.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	health := dep.Health
	if health == nil {
		health = handlers.NewHealthHandler(nil)
	}

	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(chimid.RealIP)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.NewMetrics(reg).Handler)
	r.Use(mw.CORS(dep.CORSOrigin))
	r.Use(chimid.Compress(5))

	// Health endpoints
	r.Get("/healthz", health.Liveness)
	r.Get("/readyz", health.Readiness)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	// Swagger documentation
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	requireAuth := mw.Auth(dep.Principals)
	adminOnly := mw.RequireRole(models.RoleAdmin)
	staffOnly := mw.RequireRole(auth.Staff...)

	r.Route("/api", func(api chi.Router) {
		api.Post("/Login/LoginUser", dep.AuthHandler.Login)

		api.Route("/User", func(ur chi.Router) {
			// Anonymous sign-up; an admin token allows assigning roles.
			ur.With(mw.OptionalAuth(dep.Principals)).Post("/CreateUser", dep.AuthHandler.Register)

			ur.Group(func(protected chi.Router) {
				protected.Use(requireAuth)
				protected.Get("/GetAuthenticatedUser", dep.AuthHandler.Me)
				protected.Get("/GetUserById", dep.UsersHandler.GetByID)
				protected.Get("/GetAllUsers", dep.UsersHandler.GetAll)
				protected.Put("/UpdateUserData", dep.UsersHandler.Update)
				protected.With(adminOnly).Get("/GetUserPagination", dep.UsersHandler.Paginate)
				protected.With(adminOnly).Get("/GetUserRoleData", dep.UsersHandler.RoleData)
				protected.With(adminOnly).Delete("/DeleteUser", dep.UsersHandler.Delete)
			})
		})

		api.Route("/Project", func(pr chi.Router) {
			pr.Use(requireAuth)
			pr.Get("/GetProjects", dep.ProjectsHandler.Paginate)
			pr.Get("/GetProjectById", dep.ProjectsHandler.GetByID)
			pr.Get("/GetProjectStatusList", dep.ProjectsHandler.StatusList)
			pr.Get("/GetProjectMonthlyData", dep.ProjectsHandler.MonthlyData)
			pr.Group(func(staff chi.Router) {
				staff.Use(staffOnly)
				staff.Post("/CreateProject", dep.ProjectsHandler.Create)
				staff.Put("/UpdateProject", dep.ProjectsHandler.Update)
				staff.Put("/UpdateProjectStatus", dep.ProjectsHandler.UpdateStatus)
				staff.Put("/UpdateProjectCustomer", dep.ProjectsHandler.UpdateCustomer)
				staff.Delete("/DeleteProject", dep.ProjectsHandler.Delete)
			})
		})

		api.Route("/Resource", func(rr chi.Router) {
			rr.Use(requireAuth)
			rr.Get("/GetAllResources", dep.ResourcesHandler.GetAll)
			rr.Get("/GetResourceByProject", dep.ResourcesHandler.ByProject)
			rr.With(staffOnly).Post("/CreateResource", dep.ResourcesHandler.Create)
		})

		api.Route("/Customer", func(cr chi.Router) {
			cr.Use(requireAuth)
			cr.Get("/GetAllCustomers", dep.CustomersHandler.GetAll)
			cr.Get("/GetCustomerById", dep.CustomersHandler.GetByID)
			cr.With(staffOnly).Post("/CreateCustomer", dep.CustomersHandler.Create)
			cr.With(staffOnly).Get("/GetCustomerPagination", dep.CustomersHandler.Paginate)
		})
	})

	return r
}
