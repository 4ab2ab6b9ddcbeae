package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/student-report-api/internal/domain"
	"github.com/vietanh2810/student-report-api/internal/repository"
)

var (
	ErrStudentNotFound = repository.ErrStudentNotFound
)

type StudentRepository interface {
	FindAll(ctx context.Context) ([]domain.Student, error)
	FindByRoll(ctx context.Context, roll int) (domain.Student, error)
}

// StudentService answers every roster query. Nothing is cached: each call
// reads the roster and enriches it again.
type StudentService struct {
	repo StudentRepository
}

func NewStudentService(repo StudentRepository) *StudentService {
	return &StudentService{
		repo: repo,
	}
}

func (s *StudentService) GetAllStudents(ctx context.Context) ([]domain.EnrichedStudent, error) {
	students, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return Enrich(students), nil
}

func (s *StudentService) GetStudentByRoll(ctx context.Context, roll int) (domain.EnrichedStudent, error) {
	student, err := s.repo.FindByRoll(ctx, roll)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return domain.EnrichedStudent{}, ErrStudentNotFound
		}

		return domain.EnrichedStudent{}, fmt.Errorf("s.repo.FindByRoll -> %w", err)
	}

	return Enrich([]domain.Student{student})[0], nil
}

func (s *StudentService) GetStudentsByGrade(ctx context.Context, grade domain.Grade) ([]domain.EnrichedStudent, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}

	return WithGrade(students, grade), nil
}

func (s *StudentService) GetBranchSummary(ctx context.Context) (domain.BranchSummary, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return domain.BranchSummary{}, err
	}

	return SummarizeBranches(students), nil
}

func (s *StudentService) GetBranchRolls(ctx context.Context) (map[string][]int, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}

	return BranchRolls(students), nil
}

func (s *StudentService) GetToppers(ctx context.Context) (domain.Toppers, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return domain.Toppers{}, err
	}

	return FindToppers(students)
}

func (s *StudentService) GetTopStudents(ctx context.Context, n int) ([]domain.EnrichedStudent, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}

	return TopN(students, n), nil
}

func (s *StudentService) GetStudentsAbove(ctx context.Context, cutoff float64) ([]domain.EnrichedStudent, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}

	return AtOrAbove(students, cutoff), nil
}

func (s *StudentService) GetStatistics(ctx context.Context) (domain.Statistics, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}

	return ComputeStatistics(students)
}

func (s *StudentService) GetReport(ctx context.Context) (domain.Report, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	return BuildReport(students)
}

func (s *StudentService) GetBranchAverages(ctx context.Context) ([]domain.BranchAverage, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrNoData
	}

	return BranchAverages(students), nil
}

func (s *StudentService) GetSubjectAverages(ctx context.Context) ([]domain.SubjectAverage, error) {
	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrNoData
	}

	return SubjectAverages(students), nil
}
