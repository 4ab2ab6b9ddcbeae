package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/student-report-api/internal/domain"
	"github.com/vietanh2810/student-report-api/internal/repository/dao"
)

var (
	ErrStudentNotFound = dao.ErrStudentNotFound
)

type StudentDAO interface {
	FindAll(ctx context.Context) ([]dao.Student, error)
	FindByRoll(ctx context.Context, roll int) (dao.Student, error)
}

type StudentRepository struct {
	dao StudentDAO
}

func NewStudentRepository(dao StudentDAO) *StudentRepository {
	return &StudentRepository{
		dao: dao,
	}
}

func (r *StudentRepository) FindAll(ctx context.Context) ([]domain.Student, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	students := make([]domain.Student, 0, len(found))
	for _, s := range found {
		students = append(students, r.daoToDomain(s))
	}

	return students, nil
}

func (r *StudentRepository) FindByRoll(ctx context.Context, roll int) (domain.Student, error) {
	found, err := r.dao.FindByRoll(ctx, roll)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByRoll -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) daoToDomain(s dao.Student) domain.Student {
	var marks domain.Marks
	copy(marks[:], s.Marks)

	return domain.Student{
		Roll:   s.Roll,
		Name:   s.Name,
		Branch: s.Branch,
		Marks:  marks,
	}
}
