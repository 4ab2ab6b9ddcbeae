package chart

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/vietanh2810/student-report-api/internal/config"
	"github.com/vietanh2810/student-report-api/internal/domain"
	"github.com/vietanh2810/student-report-api/internal/service"
)

func newRenderer(t *testing.T, conf *config.ChartConfig) *Renderer {
	t.Helper()

	r, err := NewRenderer(conf)
	require.NoError(t, err)

	return r
}

func testConfig() *config.ChartConfig {
	return &config.ChartConfig{
		Width:         800,
		Height:        500,
		HistogramBins: 10,
		MaxConcurrent: 2,
	}
}

func roster() []domain.EnrichedStudent {
	return service.Enrich([]domain.Student{
		{Roll: 101, Name: "Rohan", Branch: "CSE", Marks: domain.Marks{78, 67, 89}},
		{Roll: 102, Name: "Riyaa", Branch: "CSE", Marks: domain.Marks{88, 91, 76}},
		{Roll: 103, Name: "Suman", Branch: "ECE", Marks: domain.Marks{92, 81, 74}},
		{Roll: 104, Name: "Priya", Branch: "EEE", Marks: domain.Marks{65, 69, 72}},
		{Roll: 105, Name: "Kunal", Branch: "CSE", Marks: domain.Marks{91, 73, 84}},
		{Roll: 106, Name: "Meera", Branch: "ME", Marks: domain.Marks{58, 82, 55}},
		{Roll: 107, Name: "Ameet", Branch: "CSE", Marks: domain.Marks{78, 67, 89}},
		{Roll: 108, Name: "Diyaa", Branch: "EEE", Marks: domain.Marks{85, 81, 76}},
		{Roll: 109, Name: "Rohan", Branch: "ECE", Marks: domain.Marks{37, 87, 70}},
		{Roll: 110, Name: "Sriya", Branch: "EEE", Marks: domain.Marks{65, 66, 72}},
		{Roll: 111, Name: "Kusal", Branch: "ME", Marks: domain.Marks{88, 73, 84}},
		{Roll: 112, Name: "Manoj", Branch: "ME", Marks: domain.Marks{78, 73, 65}},
	})
}

func TestRenderer_Render(t *testing.T) {
	r := newRenderer(t, testConfig())

	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			img, err := r.Render(kind, roster())
			require.NoError(t, err)

			decoded, err := png.Decode(bytes.NewReader(img))
			require.NoError(t, err)
			assert.Equal(t, 800, decoded.Bounds().Dx())
		})
	}
}

func TestRenderer_Render_SingleStudent(t *testing.T) {
	r := newRenderer(t, testConfig())
	one := roster()[:1]

	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			_, err := r.Render(kind, one)
			assert.NoError(t, err)
		})
	}
}

func TestRenderer_Render_Errors(t *testing.T) {
	r := newRenderer(t, testConfig())

	_, err := r.Render(Kind("scatter"), roster())
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = r.Render(KindGradeDistribution, nil)
	assert.Error(t, err)
}

func TestRenderer_RenderAll(t *testing.T) {
	r := newRenderer(t, testConfig())

	set, err := r.RenderAll(context.Background(), roster())
	require.NoError(t, err)

	assert.Len(t, set.Charts, len(Kinds))
	assert.Nil(t, set.Errors)
	for _, kind := range Kinds {
		encoded, ok := set.Charts[string(kind)]
		require.True(t, ok, kind)

		raw, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		_, err = png.Decode(bytes.NewReader(raw))
		assert.NoError(t, err)
	}
}

func TestRenderer_RenderAll_NoStudents(t *testing.T) {
	r := newRenderer(t, testConfig())

	set, err := r.RenderAll(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, set.Charts)
	assert.Len(t, set.Errors, len(Kinds))
}

func TestRenderer_RenderAll_Canceled(t *testing.T) {
	r := newRenderer(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RenderAll(ctx, roster())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_ChartsCarryFont(t *testing.T) {
	r := newRenderer(t, testConfig())
	require.NotNil(t, r.font)

	students := roster()
	pie, ok := r.gradeDistribution(students).(gochart.PieChart)
	require.True(t, ok)
	assert.Same(t, r.font, pie.Font)

	for _, bar := range []renderable{r.branchPerformance(students), r.percentageHistogram(students), r.subjectAnalysis(students)} {
		bc, ok := bar.(gochart.BarChart)
		require.True(t, ok)
		assert.Same(t, r.font, bc.Font)
	}

	stacked, ok := r.topTen(students).(gochart.StackedBarChart)
	require.True(t, ok)
	assert.Same(t, r.font, stacked.Font)
}

// Every chart renders at once on a renderer that has never drawn before.
// Run with -race.
func TestRenderer_RenderAll_FullyParallel(t *testing.T) {
	conf := testConfig()
	conf.MaxConcurrent = len(Kinds)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := NewRenderer(conf)
			if !assert.NoError(t, err) {
				return
			}
			set, err := r.RenderAll(context.Background(), roster())
			assert.NoError(t, err)
			assert.Len(t, set.Charts, len(Kinds))
		}()
	}
	wg.Wait()
}
