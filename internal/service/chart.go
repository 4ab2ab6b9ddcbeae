package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/student-report-api/internal/domain"
)

// ErrNoChartRendered is returned when every chart of a batch failed.
var ErrNoChartRendered = errors.New("no chart could be rendered")

type ChartRenderer interface {
	RenderAll(ctx context.Context, students []domain.EnrichedStudent) (domain.ChartSet, error)
}

type ChartService struct {
	repo     StudentRepository
	renderer ChartRenderer
}

func NewChartService(repo StudentRepository, renderer ChartRenderer) *ChartService {
	return &ChartService{
		repo:     repo,
		renderer: renderer,
	}
}

// GenerateCharts renders every chart for the current roster. Charts that fail
// are reported in ChartSet.Errors while the rest are still returned.
func (s *ChartService) GenerateCharts(ctx context.Context) (domain.ChartSet, error) {
	students, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.ChartSet{}, fmt.Errorf("s.repo.FindAll -> %w", err)
	}
	if len(students) == 0 {
		return domain.ChartSet{}, ErrNoData
	}

	set, err := s.renderer.RenderAll(ctx, Enrich(students))
	if err != nil {
		return domain.ChartSet{}, fmt.Errorf("s.renderer.RenderAll -> %w", err)
	}
	if len(set.Charts) == 0 {
		return set, ErrNoChartRendered
	}

	return set, nil
}
