package domain

// SubjectCount is the number of subjects every student is marked on.
const SubjectCount = 3

// MaxTotalMarks is the highest total a student can score across all subjects.
const MaxTotalMarks = SubjectCount * 100

type Marks [SubjectCount]int

func (m Marks) Total() int {
	total := 0
	for _, mark := range m {
		total += mark
	}

	return total
}

type Student struct {
	Roll   int    `json:"roll"`
	Name   string `json:"name"`
	Branch string `json:"branch"`
	Marks  Marks  `json:"marks"`
}

// EnrichedStudent is a Student plus the figures derived from its marks.
// It is built per request and never stored.
type EnrichedStudent struct {
	Student
	TotalMarks int     `json:"total_marks"`
	Percentage float64 `json:"percentage"`
	Grade      Grade   `json:"grade"`
}

type BranchGroup struct {
	Branch   string
	Students []EnrichedStudent
}

type BranchSummary struct {
	Branches    []string       `json:"branches"`
	BranchCount map[string]int `json:"branch_count"`
}

type Toppers struct {
	Overall  EnrichedStudent            `json:"overall_topper"`
	ByBranch map[string]EnrichedStudent `json:"branch_toppers"`
}

type Statistics struct {
	TotalStudents      int           `json:"total_students"`
	AveragePercentage  float64       `json:"average_percentage"`
	HighestPercentage  float64       `json:"highest_percentage"`
	LowestPercentage   float64       `json:"lowest_percentage"`
	GradesDistribution map[Grade]int `json:"grades_distribution"`
}

// ReportOverallKey is the key of the institute-wide topper in Report.Toppers.
const ReportOverallKey = "overall"

type Report struct {
	TotalStudents int      `json:"total_students"`
	Branches      []string `json:"branches"`
	// Toppers maps ReportOverallKey and every branch code to a student name.
	Toppers map[string]string `json:"toppers"`
}

type BranchAverage struct {
	Branch  string  `json:"branch"`
	Average float64 `json:"average_percentage"`
}

type SubjectAverage struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average_marks"`
}

type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ChartSet holds base64 encoded PNG charts keyed by chart name, plus the
// error message of every chart that could not be rendered.
type ChartSet struct {
	Charts map[string]string `json:"charts"`
	Errors map[string]string `json:"errors,omitempty"`
}
