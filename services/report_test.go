package services

import (
	"testing"
	"time"

	"coachfit_server/structs/tables"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildExerciseReport(t *testing.T) {
	exercises := []tables.FitnessExercise{
		{Semana: 1, Dia: 1, NombreActividad: "Sentadillas", EquipoNecesario: "Barra", SeriesRepeticiones: "4x10", VideoURL: strPtr("https://vimeo.com/1")},
		{Semana: 1, Dia: 2, NombreActividad: "Plancha", EquipoNecesario: "Ninguno"},
		{Semana: 2, Dia: 1, NombreActividad: "Burpees"},
	}

	report := BuildExerciseReport(exercises)

	require.Len(t, report, 4)
	assert.Equal(t, fitnessReportHeader, report[0])

	assert.Equal(t, []string{"1", "1", "Sentadillas", "", "", "", "", "Barra", "", "4x10", "https://vimeo.com/1"}, report[1])
	assert.Equal(t, "Plancha", report[2][2])
	assert.Equal(t, "", report[2][10], "nil video renders as empty cell")

	// row order follows the input slice
	assert.Equal(t, "Burpees", report[3][2])
}

func TestBuildExerciseReportEmpty(t *testing.T) {
	report := BuildExerciseReport(nil)
	require.Len(t, report, 1, "header row only")
	assert.Equal(t, fitnessReportHeader, report[0])
}

func TestCountSessions(t *testing.T) {
	assert.Zero(t, CountSessions(nil))

	exercises := []tables.FitnessExercise{
		{Semana: 1}, {Semana: 1}, {Semana: 3}, {Semana: 2}, {Semana: 3},
	}
	assert.Equal(t, 3, CountSessions(exercises))
}

func TestResolveVideoURL(t *testing.T) {
	media := []tables.ActivityMedia{{VideoURL: "https://vimeo.com/media"}}

	t.Run("first exercise video wins", func(t *testing.T) {
		exercises := []tables.FitnessExercise{
			{VideoURL: nil},
			{VideoURL: strPtr("")},
			{VideoURL: strPtr("https://vimeo.com/42")},
			{VideoURL: strPtr("https://vimeo.com/43")},
		}
		assert.Equal(t, "https://vimeo.com/42", ResolveVideoURL(exercises, media))
	})

	t.Run("falls back to media video", func(t *testing.T) {
		assert.Equal(t, "https://vimeo.com/media", ResolveVideoURL(nil, media))
	})

	t.Run("empty without any source", func(t *testing.T) {
		assert.Equal(t, "", ResolveVideoURL(nil, nil))
	})
}

func TestPickProgramAvailability(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("canonical period row wins regardless of age", func(t *testing.T) {
		rows := []tables.ActivityAvailability{
			{ID: uuid.New(), SessionType: tables.SessionWorkshopBlock, AvailabilityType: tables.AvailabilityWorkshopBlock, CreatedAt: base.Add(time.Hour)},
			{ID: uuid.New(), SessionType: tables.SessionProgramPeriod, AvailabilityType: tables.AvailabilityUntilStock, CreatedAt: base},
		}
		picked := PickProgramAvailability(rows)
		require.NotNil(t, picked)
		assert.Equal(t, rows[1].ID, picked.ID)
	})

	t.Run("no canonical row picks the newest", func(t *testing.T) {
		rows := []tables.ActivityAvailability{
			{ID: uuid.New(), SessionType: tables.SessionWorkshopBlock, CreatedAt: base},
			{ID: uuid.New(), SessionType: tables.SessionWorkshopBlock, CreatedAt: base.Add(2 * time.Hour)},
			{ID: uuid.New(), SessionType: tables.SessionWorkshopBlock, CreatedAt: base.Add(time.Hour)},
		}
		picked := PickProgramAvailability(rows)
		require.NotNil(t, picked)
		assert.Equal(t, rows[1].ID, picked.ID)
	})

	t.Run("period row with foreign availability type is only a fallback", func(t *testing.T) {
		rows := []tables.ActivityAvailability{
			{ID: uuid.New(), SessionType: tables.SessionProgramPeriod, AvailabilityType: tables.AvailabilityWorkshopBlock, CreatedAt: base},
			{ID: uuid.New(), SessionType: tables.SessionProgramPeriod, AvailabilityType: tables.AvailabilityConsult, CreatedAt: base.Add(-time.Hour)},
		}
		picked := PickProgramAvailability(rows)
		require.NotNil(t, picked)
		assert.Equal(t, rows[1].ID, picked.ID, "older canonical row beats newer non-canonical one")
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, PickProgramAvailability(nil))
	})
}

func TestExtractVimeoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://vimeo.com/123456789", "123456789"},
		{"https://vimeo.com/video/987", "987"},
		{"https://player.vimeo.com/video/555", "555"},
		{"https://youtube.com/watch?v=abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractVimeoID(tt.url), tt.url)
	}
}

func TestProductImageObjectName(t *testing.T) {
	id := uuid.New()

	name := ProductImageObjectName(id, "cover.PNG")
	assert.Contains(t, name, "products/"+id.String()+"/cover-")
	assert.True(t, len(name) > 0)
	assert.Equal(t, ".png", name[len(name)-4:], "extension is lowercased")

	fallback := ProductImageObjectName(id, "noextension")
	assert.Equal(t, ".jpg", fallback[len(fallback)-4:])
}
