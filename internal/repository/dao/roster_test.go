package dao

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "roster.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestSampleRoster(t *testing.T) {
	roster := SampleRoster()

	assert.Len(t, roster, 12)
	assert.NoError(t, ValidateRoster(roster))
}

func TestLoadRoster(t *testing.T) {
	t.Run("Success: empty path falls back to the sample", func(t *testing.T) {
		roster, err := LoadRoster("")

		require.NoError(t, err)
		assert.Equal(t, SampleRoster(), roster)
	})

	t.Run("Success: file", func(t *testing.T) {
		path := writeRoster(t, `
students:
  - roll: 1
    name: Asha
    branch: CIVIL
    marks: [90, 95, 100]
  - roll: 2
    name: Bilal
    branch: CIVIL
    marks: [0, 50, 40]
`)

		roster, err := LoadRoster(path)

		require.NoError(t, err)
		require.Len(t, roster, 2)
		assert.Equal(t, Student{Roll: 1, Name: "Asha", Branch: "CIVIL", Marks: []int{90, 95, 100}}, roster[0])
	})

	t.Run("Error: missing file", func(t *testing.T) {
		_, err := LoadRoster(filepath.Join(t.TempDir(), "nope.yml"))

		assert.Error(t, err)
	})

	t.Run("Error: empty roster", func(t *testing.T) {
		_, err := LoadRoster(writeRoster(t, "students: []\n"))

		assert.ErrorIs(t, err, ErrEmptyRoster)
	})

	t.Run("Error: duplicate roll", func(t *testing.T) {
		_, err := LoadRoster(writeRoster(t, `
students:
  - {roll: 7, name: A, branch: ME, marks: [1, 2, 3]}
  - {roll: 7, name: B, branch: ME, marks: [4, 5, 6]}
`))

		assert.ErrorIs(t, err, ErrDuplicateRoll)
	})

	t.Run("Error: branch named after the overall topper key", func(t *testing.T) {
		_, err := LoadRoster(writeRoster(t, `
students:
  - {roll: 1, name: Top, branch: CSE, marks: [99, 99, 99]}
  - {roll: 2, name: Low, branch: overall, marks: [10, 10, 10]}
`))

		assert.ErrorContains(t, err, "reserved")
	})

	t.Run("Error: malformed yaml", func(t *testing.T) {
		_, err := LoadRoster(writeRoster(t, "students: [roll: {"))

		assert.Error(t, err)
	})
}

func TestStudentValidate(t *testing.T) {
	tests := []struct {
		name    string
		student Student
		wantErr bool
	}{
		{"Valid", Student{Roll: 1, Name: "A", Branch: "ME", Marks: []int{0, 50, 100}}, false},
		{"Missing roll", Student{Name: "A", Branch: "ME", Marks: []int{1, 2, 3}}, true},
		{"Missing name", Student{Roll: 1, Branch: "ME", Marks: []int{1, 2, 3}}, true},
		{"Missing branch", Student{Roll: 1, Name: "A", Marks: []int{1, 2, 3}}, true},
		{"Two marks", Student{Roll: 1, Name: "A", Branch: "ME", Marks: []int{1, 2}}, true},
		{"Mark above 100", Student{Roll: 1, Name: "A", Branch: "ME", Marks: []int{1, 2, 101}}, true},
		{"Negative mark", Student{Roll: 1, Name: "A", Branch: "ME", Marks: []int{-1, 2, 3}}, true},
		{"Reserved branch", Student{Roll: 1, Name: "A", Branch: "overall", Marks: []int{1, 2, 3}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.student.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStudentDAO(t *testing.T) {
	ctx := context.Background()
	d := NewStudentDAO(SampleRoster())

	t.Run("FindAll returns a copy", func(t *testing.T) {
		all, err := d.FindAll(ctx)
		require.NoError(t, err)
		all[0].Marks[0] = 0
		all[1].Name = "changed"

		again, err := d.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, SampleRoster(), again)
	})

	t.Run("FindByRoll", func(t *testing.T) {
		s, err := d.FindByRoll(ctx, 106)

		require.NoError(t, err)
		assert.Equal(t, "Meera", s.Name)
	})

	t.Run("FindByRoll not found", func(t *testing.T) {
		_, err := d.FindByRoll(ctx, 999)

		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	t.Run("Canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := d.FindAll(canceled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
