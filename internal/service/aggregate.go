package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/vietanh2810/student-report-api/internal/domain"
)

// ErrNoData is returned by aggregates that are undefined over an empty roster.
var ErrNoData = errors.New("no student records available")

// RoundHalfEven rounds v to 2 decimal places, ties to even.
func RoundHalfEven(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// Percentage converts a total out of domain.MaxTotalMarks to a percentage
// rounded to 2 decimal places.
func Percentage(total int) float64 {
	return RoundHalfEven(float64(total) * 100 / domain.MaxTotalMarks)
}

func Enrich(students []domain.Student) []domain.EnrichedStudent {
	enriched := make([]domain.EnrichedStudent, 0, len(students))
	for _, s := range students {
		total := s.Marks.Total()
		percentage := Percentage(total)
		enriched = append(enriched, domain.EnrichedStudent{
			Student:    s,
			TotalMarks: total,
			Percentage: percentage,
			Grade:      domain.GradeFor(percentage),
		})
	}

	return enriched
}

// GroupByBranch partitions students by branch. Groups appear in the order
// their branch is first seen and members keep roster order.
func GroupByBranch(students []domain.EnrichedStudent) []domain.BranchGroup {
	index := make(map[string]int)
	groups := make([]domain.BranchGroup, 0)

	for _, s := range students {
		i, ok := index[s.Branch]
		if !ok {
			i = len(groups)
			index[s.Branch] = i
			groups = append(groups, domain.BranchGroup{Branch: s.Branch})
		}
		groups[i].Students = append(groups[i].Students, s)
	}

	return groups
}

func Branches(groups []domain.BranchGroup) []string {
	branches := make([]string, 0, len(groups))
	for _, g := range groups {
		branches = append(branches, g.Branch)
	}

	return branches
}

func SummarizeBranches(students []domain.EnrichedStudent) domain.BranchSummary {
	groups := GroupByBranch(students)

	counts := make(map[string]int, len(groups))
	for _, g := range groups {
		counts[g.Branch] = len(g.Students)
	}

	return domain.BranchSummary{
		Branches:    Branches(groups),
		BranchCount: counts,
	}
}

func BranchRolls(students []domain.EnrichedStudent) map[string][]int {
	groups := GroupByBranch(students)

	rolls := make(map[string][]int, len(groups))
	for _, g := range groups {
		list := make([]int, 0, len(g.Students))
		for _, s := range g.Students {
			list = append(list, s.Roll)
		}
		rolls[g.Branch] = list
	}

	return rolls
}

// Topper returns the highest-percentage student. On a tie the one earliest in
// the slice wins.
func Topper(students []domain.EnrichedStudent) (domain.EnrichedStudent, bool) {
	if len(students) == 0 {
		return domain.EnrichedStudent{}, false
	}

	best := students[0]
	for _, s := range students[1:] {
		if s.Percentage > best.Percentage {
			best = s
		}
	}

	return best, true
}

func FindToppers(students []domain.EnrichedStudent) (domain.Toppers, error) {
	overall, ok := Topper(students)
	if !ok {
		return domain.Toppers{}, ErrNoData
	}

	byBranch := make(map[string]domain.EnrichedStudent)
	for _, g := range GroupByBranch(students) {
		if t, ok := Topper(g.Students); ok {
			byBranch[g.Branch] = t
		}
	}

	return domain.Toppers{
		Overall:  overall,
		ByBranch: byBranch,
	}, nil
}

// SortByPercentage returns a copy of students ordered by percentage, highest
// first. Equal percentages keep their relative order.
func SortByPercentage(students []domain.EnrichedStudent) []domain.EnrichedStudent {
	sorted := make([]domain.EnrichedStudent, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percentage > sorted[j].Percentage
	})

	return sorted
}

func TopN(students []domain.EnrichedStudent, n int) []domain.EnrichedStudent {
	if n <= 0 {
		return []domain.EnrichedStudent{}
	}

	sorted := SortByPercentage(students)
	if n < len(sorted) {
		sorted = sorted[:n]
	}

	return sorted
}

// AtOrAbove keeps students whose percentage is >= cutoff.
func AtOrAbove(students []domain.EnrichedStudent, cutoff float64) []domain.EnrichedStudent {
	filtered := make([]domain.EnrichedStudent, 0)
	for _, s := range students {
		if s.Percentage >= cutoff {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

func WithGrade(students []domain.EnrichedStudent, grade domain.Grade) []domain.EnrichedStudent {
	filtered := make([]domain.EnrichedStudent, 0)
	for _, s := range students {
		if s.Grade == grade {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

func GradeCounts(students []domain.EnrichedStudent) map[domain.Grade]int {
	counts := make(map[domain.Grade]int)
	for _, s := range students {
		counts[s.Grade]++
	}

	return counts
}

func ComputeStatistics(students []domain.EnrichedStudent) (domain.Statistics, error) {
	if len(students) == 0 {
		return domain.Statistics{}, ErrNoData
	}

	sum := 0.0
	lowest, highest := students[0].Percentage, students[0].Percentage
	for _, s := range students {
		sum += s.Percentage
		lowest = math.Min(lowest, s.Percentage)
		highest = math.Max(highest, s.Percentage)
	}

	return domain.Statistics{
		TotalStudents:      len(students),
		AveragePercentage:  RoundHalfEven(sum / float64(len(students))),
		HighestPercentage:  highest,
		LowestPercentage:   lowest,
		GradesDistribution: GradeCounts(students),
	}, nil
}

// BuildReport summarises the roster. Report.Toppers holds one name per branch
// plus the institute topper under domain.ReportOverallKey. The roster loader
// rejects a branch with that code; if one gets through anyway, the institute
// topper takes the key.
func BuildReport(students []domain.EnrichedStudent) (domain.Report, error) {
	toppers, err := FindToppers(students)
	if err != nil {
		return domain.Report{}, fmt.Errorf("FindToppers -> %w", err)
	}

	names := make(map[string]string, len(toppers.ByBranch)+1)
	for branch, s := range toppers.ByBranch {
		names[branch] = s.Name
	}
	names[domain.ReportOverallKey] = toppers.Overall.Name

	return domain.Report{
		TotalStudents: len(students),
		Branches:      Branches(GroupByBranch(students)),
		Toppers:       names,
	}, nil
}

// BranchAverages returns the mean percentage of every branch, highest first.
func BranchAverages(students []domain.EnrichedStudent) []domain.BranchAverage {
	groups := GroupByBranch(students)

	averages := make([]domain.BranchAverage, 0, len(groups))
	for _, g := range groups {
		sum := 0.0
		for _, s := range g.Students {
			sum += s.Percentage
		}
		averages = append(averages, domain.BranchAverage{
			Branch:  g.Branch,
			Average: RoundHalfEven(sum / float64(len(g.Students))),
		})
	}

	sort.SliceStable(averages, func(i, j int) bool {
		return averages[i].Average > averages[j].Average
	})

	return averages
}

// SubjectAverages returns the mean raw mark of every subject position.
func SubjectAverages(students []domain.EnrichedStudent) []domain.SubjectAverage {
	if len(students) == 0 {
		return []domain.SubjectAverage{}
	}

	var sums [domain.SubjectCount]int
	for _, s := range students {
		for i, mark := range s.Marks {
			sums[i] += mark
		}
	}

	averages := make([]domain.SubjectAverage, 0, domain.SubjectCount)
	for i, sum := range sums {
		averages = append(averages, domain.SubjectAverage{
			Subject: fmt.Sprintf("Subject %d", i+1),
			Average: RoundHalfEven(float64(sum) / float64(len(students))),
		})
	}

	return averages
}

// Histogram splits [min, max] of values into bins equal-width buckets. Every
// bucket is half-open except the last, which also holds max. When all values
// are equal the range is widened by 0.5 on either side.
func Histogram(values []float64, bins int) []domain.HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return []domain.HistogramBin{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	hist := make([]domain.HistogramBin, bins)
	for i := range hist {
		hist[i].Low = lo + float64(i)*width
		hist[i].High = lo + float64(i+1)*width
	}
	hist[bins-1].High = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		hist[i].Count++
	}

	return hist
}

func Percentages(students []domain.EnrichedStudent) []float64 {
	values := make([]float64, 0, len(students))
	for _, s := range students {
		values = append(values, s.Percentage)
	}

	return values
}
