package domain

import "strings"

type Grade string

const (
	GradeO Grade = "O"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeP Grade = "P"
	GradeF Grade = "F"
)

// Grades lists every grade from best to worst.
var Grades = []Grade{GradeO, GradeA, GradeB, GradeC, GradeP, GradeF}

var gradeThresholds = []struct {
	min   float64
	grade Grade
}{
	{90, GradeO},
	{80, GradeA},
	{70, GradeB},
	{60, GradeC},
	{50, GradeP},
}

// GradeFor maps a percentage to its grade. A percentage sitting exactly on a
// threshold belongs to the higher band.
func GradeFor(percentage float64) Grade {
	for _, t := range gradeThresholds {
		if percentage >= t.min {
			return t.grade
		}
	}

	return GradeF
}

// ParseGrade normalizes a user supplied grade letter. Unknown letters are
// returned upper-cased as is; they simply never match a student.
func ParseGrade(s string) Grade {
	return Grade(strings.ToUpper(strings.TrimSpace(s)))
}
