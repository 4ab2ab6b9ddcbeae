package dao

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/student-report-api/internal/domain"
)

var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrDuplicateRoll    = errors.New("duplicate roll number")
	ErrEmptyRoster      = errors.New("roster has no students")
	errMarksOutOfBounds = errors.New("marks must be between 0 and 100")
)

type Student struct {
	Roll   int    `yaml:"roll"`
	Name   string `yaml:"name"`
	Branch string `yaml:"branch"`
	Marks  []int  `yaml:"marks"`
}

func (s Student) Validate() error {
	return validation.ValidateStruct(
		&s,
		validation.Field(&s.Roll, validation.Required, validation.Min(1)),
		validation.Field(&s.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&s.Branch, validation.Required, validation.Length(1, 20),
			validation.NotIn(domain.ReportOverallKey).Error("is reserved for the report's overall topper")),
		validation.Field(&s.Marks, validation.Required, validation.Length(3, 3), validation.By(marksInRange)),
	)
}

func marksInRange(value interface{}) error {
	marks, _ := value.([]int)
	for _, m := range marks {
		if m < 0 || m > 100 {
			return errMarksOutOfBounds
		}
	}

	return nil
}

// StudentDAO serves a roster snapshot taken at construction. The snapshot is
// never written to, so it is safe for concurrent readers.
type StudentDAO struct {
	students []Student
}

func NewStudentDAO(students []Student) *StudentDAO {
	return &StudentDAO{
		students: cloneStudents(students),
	}
}

func (d *StudentDAO) FindAll(ctx context.Context) ([]Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return cloneStudents(d.students), nil
}

func (d *StudentDAO) FindByRoll(ctx context.Context, roll int) (Student, error) {
	if err := ctx.Err(); err != nil {
		return Student{}, err
	}

	for _, s := range d.students {
		if s.Roll == roll {
			return cloneStudent(s), nil
		}
	}

	return Student{}, fmt.Errorf("roll %d -> %w", roll, ErrStudentNotFound)
}

func cloneStudents(students []Student) []Student {
	out := make([]Student, len(students))
	for i, s := range students {
		out[i] = cloneStudent(s)
	}

	return out
}

func cloneStudent(s Student) Student {
	s.Marks = append([]int(nil), s.Marks...)
	return s
}
