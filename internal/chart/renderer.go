package chart

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/wcharczuk/go-chart/v2/roboto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/vietanh2810/student-report-api/internal/config"
	"github.com/vietanh2810/student-report-api/internal/domain"
	"github.com/vietanh2810/student-report-api/internal/service"
)

type Kind string

const (
	KindGradeDistribution   Kind = "grade_distribution"
	KindBranchPerformance   Kind = "branch_performance"
	KindPercentageHistogram Kind = "percentage_histogram"
	KindTopTen              Kind = "top_10_chart"
	KindSubjectAnalysis     Kind = "subject_analysis"
)

// Kinds lists every chart RenderAll produces.
var Kinds = []Kind{
	KindGradeDistribution,
	KindBranchPerformance,
	KindPercentageHistogram,
	KindTopTen,
	KindSubjectAnalysis,
}

const topCount = 10

var (
	ErrUnknownKind = errors.New("unknown chart kind")
	errNoStudents  = errors.New("no students to plot")
)

var (
	gradeColors = map[domain.Grade]drawing.Color{
		domain.GradeO: drawing.ColorFromHex("28a745"),
		domain.GradeA: drawing.ColorFromHex("17a2b8"),
		domain.GradeB: drawing.ColorFromHex("007bff"),
		domain.GradeC: drawing.ColorFromHex("ffc107"),
		domain.GradeP: drawing.ColorFromHex("fd7e14"),
		domain.GradeF: drawing.ColorFromHex("dc3545"),
	}
	branchColor    = drawing.ColorFromHex("667eea")
	histogramColor = drawing.ColorFromHex("764ba2")
	subjectColors  = []drawing.Color{
		drawing.ColorFromHex("FF6B6B"),
		drawing.ColorFromHex("4ECDC4"),
		drawing.ColorFromHex("45B7D1"),
	}
)

type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

// Renderer draws the roster charts as PNG images. One Renderer is shared by
// all requests so its semaphore bounds rendering process-wide.
type Renderer struct {
	conf *config.ChartConfig
	sem  *semaphore.Weighted
	// font is set on every chart. A chart without a font falls back to
	// gochart.GetDefaultFont, which is not safe for concurrent first use.
	font *truetype.Font
}

func NewRenderer(conf *config.ChartConfig) (*Renderer, error) {
	font, err := truetype.Parse(roboto.Roboto)
	if err != nil {
		return nil, fmt.Errorf("truetype.Parse -> %w", err)
	}

	return &Renderer{
		conf: conf,
		sem:  semaphore.NewWeighted(int64(conf.MaxConcurrent)),
		font: font,
	}, nil
}

// RenderAll renders every kind in parallel. A chart that fails is recorded in
// ChartSet.Errors and does not stop the others. An error is returned only when
// ctx ends before the work is done.
func (r *Renderer) RenderAll(ctx context.Context, students []domain.EnrichedStudent) (domain.ChartSet, error) {
	set := domain.ChartSet{
		Charts: make(map[string]string, len(Kinds)),
		Errors: make(map[string]string),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range Kinds {
		kind := kind
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := r.sem.Acquire(gctx, 1); err != nil {
				return fmt.Errorf("r.sem.Acquire -> %w", err)
			}
			defer r.sem.Release(1)

			img, err := r.Render(kind, students)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				zap.L().Warn("chart rendering failed", zap.String("chart", string(kind)), zap.Error(err))
				set.Errors[string(kind)] = err.Error()
				return nil
			}
			set.Charts[string(kind)] = base64.StdEncoding.EncodeToString(img)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.ChartSet{}, err
	}
	if len(set.Errors) == 0 {
		set.Errors = nil
	}

	return set, nil
}

// Render draws a single chart and returns the PNG bytes.
func (r *Renderer) Render(kind Kind, students []domain.EnrichedStudent) (img []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s panicked: %v", kind, p)
		}
	}()

	if len(students) == 0 {
		return nil, errNoStudents
	}

	var c renderable
	switch kind {
	case KindGradeDistribution:
		c = r.gradeDistribution(students)
	case KindBranchPerformance:
		c = r.branchPerformance(students)
	case KindPercentageHistogram:
		c = r.percentageHistogram(students)
	case KindTopTen:
		c = r.topTen(students)
	case KindSubjectAnalysis:
		c = r.subjectAnalysis(students)
	default:
		return nil, fmt.Errorf("%q -> %w", kind, ErrUnknownKind)
	}

	var buf bytes.Buffer
	if err = c.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s -> %w", kind, err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) gradeDistribution(students []domain.EnrichedStudent) renderable {
	counts := service.GradeCounts(students)

	values := make([]gochart.Value, 0, len(counts))
	for _, grade := range domain.Grades {
		count, ok := counts[grade]
		if !ok {
			continue
		}
		share := float64(count) * 100 / float64(len(students))
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s %.1f%%", grade, share),
			Value: float64(count),
			Style: filled(gradeColors[grade]),
		})
	}

	return gochart.PieChart{
		Title:  "Grade Distribution",
		Width:  r.conf.Width,
		Height: r.conf.Height,
		Font:   r.font,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		Values: values,
	}
}

func (r *Renderer) branchPerformance(students []domain.EnrichedStudent) renderable {
	averages := service.BranchAverages(students)

	bars := make([]gochart.Value, 0, len(averages))
	for _, avg := range averages {
		bars = append(bars, gochart.Value{
			Label: fmt.Sprintf("%s %.1f%%", avg.Branch, avg.Average),
			Value: avg.Average,
			Style: filled(branchColor),
		})
	}

	return r.barChart("Branch-wise Average Performance", bars, &gochart.ContinuousRange{Min: 0, Max: 100})
}

func (r *Renderer) percentageHistogram(students []domain.EnrichedStudent) renderable {
	bins := service.Histogram(service.Percentages(students), r.conf.HistogramBins)

	maxCount := 1
	bars := make([]gochart.Value, 0, len(bins))
	for _, bin := range bins {
		maxCount = max(maxCount, bin.Count)
		bars = append(bars, gochart.Value{
			Label: fmt.Sprintf("%.1f-%.1f", bin.Low, bin.High),
			Value: float64(bin.Count),
			Style: filled(histogramColor),
		})
	}

	return r.barChart("Percentage Distribution", bars, &gochart.ContinuousRange{Min: 0, Max: float64(maxCount)})
}

func (r *Renderer) subjectAnalysis(students []domain.EnrichedStudent) renderable {
	averages := service.SubjectAverages(students)

	bars := make([]gochart.Value, 0, len(averages))
	for i, avg := range averages {
		bars = append(bars, gochart.Value{
			Label: fmt.Sprintf("%s %.1f", avg.Subject, avg.Average),
			Value: avg.Average,
			Style: filled(subjectColors[i%len(subjectColors)]),
		})
	}

	return r.barChart("Subject-wise Average Marks", bars, &gochart.ContinuousRange{Min: 0, Max: 100})
}

// topTen draws one horizontal bar per student, best first. Stacked bars are
// always drawn full width, so each bar is the percentage plus a transparent
// remainder up to 100.
func (r *Renderer) topTen(students []domain.EnrichedStudent) renderable {
	const (
		barWidth   = 30
		barSpacing = 16
	)

	top := service.TopN(students, topCount)
	last := float64(max(len(top)-1, 1))

	bars := make([]gochart.StackedBar, 0, len(top))
	for i, s := range top {
		bars = append(bars, gochart.StackedBar{
			Name:  fmt.Sprintf("%s (%d)", s.Name, s.Roll),
			Width: barWidth,
			Values: []gochart.Value{
				{Value: 100 - s.Percentage, Style: filled(drawing.ColorTransparent)},
				{
					Label: fmt.Sprintf("%.1f%%", s.Percentage),
					Value: s.Percentage,
					Style: filled(gochart.Viridis(float64(i), 0, last)),
				},
			},
		})
	}

	return gochart.StackedBarChart{
		Title:        "Top 10 Students",
		Width:        r.conf.Width,
		Height:       max(r.conf.Height, 120+len(top)*(barWidth+barSpacing)),
		IsHorizontal: true,
		BarSpacing:   barSpacing,
		Font:         r.font,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 150, Right: 30, Bottom: 50},
		},
		Bars: bars,
	}
}

func (r *Renderer) barChart(title string, bars []gochart.Value, yRange *gochart.ContinuousRange) gochart.BarChart {
	return gochart.BarChart{
		Title:  title,
		Width:  r.conf.Width,
		Height: r.conf.Height,
		Font:   r.font,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50},
		},
		BarWidth: 60,
		YAxis: gochart.YAxis{
			Range: yRange,
		},
		Bars: bars,
	}
}

func filled(c drawing.Color) gochart.Style {
	return gochart.Style{
		FillColor:   c,
		StrokeColor: c,
	}
}
