package services

import (
	"context"
	"sort"
	"time"

	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/repository"
	appErr "github.com/trackr/api/pkg/errors"
)

type ReportService interface {
	StatusSummary(ctx context.Context) (*StatusSummary, error)
	MonthlyBudget(ctx context.Context, year int) ([]MonthlyBudget, error)
}

type StatusSummary struct {
	TotalProjects     int64 `json:"totalProjects"`
	ToDoProjects      int64 `json:"toDoProjects"`
	StartedProjects   int64 `json:"startedProjects"`
	CompletedProjects int64 `json:"completedProjects"`
	CancelledProjects int64 `json:"cancelledProjects"`
}

type MonthlyBudget struct {
	Month         string `json:"month"`
	ProjectCount  int64  `json:"projectCount"`
	ProjectBudget int64  `json:"projectBudget"`
}

type reportService struct {
	projectRepo repository.ProjectRepository
}

func NewReportService(projectRepo repository.ProjectRepository) ReportService {
	return &reportService{projectRepo: projectRepo}
}

var _ ReportService = (*reportService)(nil)

func (s *reportService) StatusSummary(ctx context.Context) (*StatusSummary, error) {
	counts, err := s.projectRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	sum := &StatusSummary{
		ToDoProjects:      counts[models.StatusToDo],
		StartedProjects:   counts[models.StatusInProgress],
		CompletedProjects: counts[models.StatusCompleted],
		CancelledProjects: counts[models.StatusCancelled],
	}
	for _, n := range counts {
		sum.TotalProjects += n
	}
	return sum, nil
}

// MonthlyBudget groups projects created in year by UTC creation month and
// sums their resource costs. Months without projects are omitted.
func (s *reportService) MonthlyBudget(ctx context.Context, year int) ([]MonthlyBudget, error) {
	if year < 1 || year > 9999 {
		return nil, appErr.Newf(appErr.CodeInvalid, "invalid year %d", year)
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.projectRepo.BudgetsCreatedBetween(ctx, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}

	byMonth := map[time.Month]*MonthlyBudget{}
	for _, row := range rows {
		m := row.CreatedDate.UTC().Month()
		mb, ok := byMonth[m]
		if !ok {
			mb = &MonthlyBudget{Month: m.String()}
			byMonth[m] = mb
		}
		mb.ProjectCount++
		mb.ProjectBudget += row.Budget
	}

	months := make([]time.Month, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	out := make([]MonthlyBudget, 0, len(months))
	for _, m := range months {
		out = append(out, *byMonth[m])
	}
	return out, nil
}
