package request

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errNotFinite = errors.New("must be a finite number")

type StudentByRollRequest struct {
	Roll int `uri:"roll"`
}

type StudentsByGradeRequest struct {
	Grade string `uri:"grade"`
}

func (req *StudentsByGradeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Grade, validation.Required, validation.RuneLength(1, 1)),
	)
}

// TopStudentsRequest accepts any integer. A count of zero or less yields an
// empty ranking rather than an error.
type TopStudentsRequest struct {
	Count int `uri:"count"`
}

type StudentsAboveRequest struct {
	Percentage float64 `uri:"percentage"`
}

func (req *StudentsAboveRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Percentage, validation.By(finite)),
	)
}

func finite(value interface{}) error {
	f, _ := value.(float64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errNotFinite
	}

	return nil
}
