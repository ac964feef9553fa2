package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/pkg/database"
	appErr "github.com/trackr/api/pkg/errors"
	"github.com/trackr/api/pkg/logger"
	"gorm.io/gorm"
)

var (
	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error
	pgStop func()
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json", ""); err != nil {
		panic(err)
	}
	code := m.Run()
	if pgStop != nil {
		pgStop()
	}
	os.Exit(code)
}

// testDB starts one PostgreSQL container per package run and returns a
// migrated, emptied database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgOnce.Do(func() {
		ctx := context.Background()
		ctr, err := postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("trackr"),
			postgres.WithUsername("trackr"),
			postgres.WithPassword("trackr"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			pgErr = err
			return
		}
		pgStop = func() { _ = ctr.Terminate(context.Background()) }

		dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			pgErr = err
			return
		}
		if pgDB, pgErr = database.OpenPostgres(ctx, dsn, false); pgErr != nil {
			return
		}
		pgErr = Migrate(pgDB)
	})
	require.NoError(t, pgErr)
	require.NoError(t, pgDB.Exec("TRUNCATE resources, projects, customers, users CASCADE").Error)
	return pgDB
}

func seedUser(t *testing.T, repo UserRepository, name string, role *models.Role) *models.User {
	t.Helper()
	email := uuid.NewString() + "@trackr.test"
	u := &models.User{Name: &name, Email: &email, PasswordHash: "x", Salt: "y", Role: role}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func seedProject(t *testing.T, repo ProjectRepository, owner *models.User, name string, status models.Status, created time.Time) *models.Project {
	t.Helper()
	p := &models.Project{
		Name:          name,
		Status:        status,
		CreatedDate:   created,
		UpdatedDate:   created,
		CreatedUserID: owner.ID,
		UpdatedUserID: owner.ID,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCustomerSearch(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewCustomerRepository(db)

	acme := &models.Customer{Name: "Acme", ContactMail: "a@acme.no", OrganizationNumber: 999999999}
	require.NoError(t, repo.Create(ctx, acme))
	require.NoError(t, repo.Create(ctx, &models.Customer{Name: "Globex", ContactMail: "g@globex.no", OrganizationNumber: 1}))
	require.NoError(t, repo.Create(ctx, &models.Customer{Name: "100% Pure", ContactMail: "p@pure.no", OrganizationNumber: 2}))

	page, err := repo.Paginate(ctx, query.Params{Search: "acme", Page: 1, PageSize: 10, Sort: query.Desc})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.TotalItems)
	require.Len(t, page.Items, 1)
	require.Equal(t, acme.ID, page.Items[0].ID)

	page, err = repo.Paginate(ctx, query.Params{Search: "%", Page: 1, PageSize: 10, Sort: query.Desc})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.TotalItems)
	require.Equal(t, "100% Pure", page.Items[0].Name)
}

func TestProjectPaginationIsCompleteAndStable(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users, projects := NewUserRepository(db), NewProjectRepository(db)
	owner := seedUser(t, users, "Owner", nil)

	// Identical creation times force the id tie-break.
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	want := map[uuid.UUID]bool{}
	for i := 0; i < 23; i++ {
		status := models.Status(i % 4)
		p := seedProject(t, projects, owner, "Project", status, created.Add(time.Duration(i%5)*time.Hour))
		want[p.ID] = true
	}

	collect := func() []uuid.UUID {
		var ids []uuid.UUID
		for page := 1; ; page++ {
			res, err := projects.Paginate(ctx, query.Params{Page: page, PageSize: 5, Sort: query.Asc}, ProjectFilter{})
			require.NoError(t, err)
			require.EqualValues(t, 23, res.TotalItems)
			if len(res.Items) == 0 {
				break
			}
			for _, p := range res.Items {
				ids = append(ids, p.ID)
				require.NotNil(t, p.CreatedUser)
			}
		}
		return ids
	}

	first := collect()
	require.Len(t, first, 23)
	for _, id := range first {
		require.True(t, want[id])
		delete(want, id)
	}
	require.Empty(t, want)
	require.Equal(t, first, collect())

	todo := models.StatusToDo
	res, err := projects.Paginate(ctx, query.Params{Page: 1, PageSize: 100, Sort: query.Desc}, ProjectFilter{Status: &todo})
	require.NoError(t, err)
	require.EqualValues(t, 6, res.TotalItems)
	for _, p := range res.Items {
		require.Equal(t, models.StatusToDo, p.Status)
	}
}

func TestUserRoleFilterTreatsMissingRoleAsUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	member, admin := models.RoleUser, models.RoleAdmin
	seedUser(t, users, "No Role", nil)
	seedUser(t, users, "Member", &member)
	seedUser(t, users, "Admin", &admin)

	res, err := users.Paginate(ctx, query.Params{Page: 1, PageSize: 10, Sort: query.Desc}, UserFilter{Role: &member})
	require.NoError(t, err)
	require.EqualValues(t, 2, res.TotalItems)

	counts, err := users.CountByRole(ctx)
	require.NoError(t, err)
	require.Equal(t, RoleCounts{models.RoleUser: 2, models.RoleAdmin: 1}, counts)
}

func TestDeleteProjectCascadesResources(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users, projects, resources := NewUserRepository(db), NewProjectRepository(db), NewResourceRepository(db)
	owner := seedUser(t, users, "Owner", nil)
	p := seedProject(t, projects, owner, "Doomed", models.StatusInProgress, time.Now().UTC())

	for _, kind := range []models.EstimateType{models.EstimateUX, models.EstimateTesting} {
		r := models.NewResource(p.ID, kind, 3, 100)
		require.NoError(t, resources.Create(ctx, &r))
	}
	detailed, err := projects.GetDetailed(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, detailed.Resources, 2)

	require.NoError(t, projects.DeleteWithResources(ctx, p.ID))
	left, err := resources.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, left)

	err = projects.DeleteWithResources(ctx, p.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestDeleteReferencedUserConflicts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users, projects := NewUserRepository(db), NewProjectRepository(db)
	owner := seedUser(t, users, "Owner", nil)
	seedProject(t, projects, owner, "Keeps owner", models.StatusToDo, time.Now().UTC())

	err := users.Delete(ctx, owner.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeConflict), "got %v", err)

	err = users.Delete(ctx, uuid.New())
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestBudgetsAndStatusCounts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users, projects, resources := NewUserRepository(db), NewProjectRepository(db), NewResourceRepository(db)
	owner := seedUser(t, users, "Owner", nil)

	jan := seedProject(t, projects, owner, "Jan", models.StatusToDo, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	mar := seedProject(t, projects, owner, "Mar", models.StatusCompleted, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	seedProject(t, projects, owner, "Empty", models.StatusCompleted, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
	seedProject(t, projects, owner, "Last year", models.StatusCancelled, time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC))

	for _, r := range []models.Resource{
		models.NewResource(jan.ID, models.EstimateDevelopment, 10, 100),
		models.NewResource(mar.ID, models.EstimateUX, 2, 50),
		models.NewResource(mar.ID, models.EstimateTesting, 4, 25),
	} {
		r := r
		require.NoError(t, resources.Create(ctx, &r))
	}

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err := projects.BudgetsCreatedBetween(ctx, from, from.AddDate(1, 0, 0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	var sum int64
	for _, row := range rows {
		sum += row.Budget
	}
	require.EqualValues(t, 1000+100+100, sum)

	counts, err := projects.CountByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusCounts{models.StatusToDo: 1, models.StatusCompleted: 2, models.StatusCancelled: 1}, counts)
}
