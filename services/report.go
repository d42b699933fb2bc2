package services

import (
	"strconv"

	"coachfit_server/structs/tables"
)

// fitnessReportHeader is the header row of the synthesized tabular report.
// Column positions mirror the ingest layout, video last.
var fitnessReportHeader = []string{
	"Semana",
	"Día",
	"Nombre",
	"Descripción",
	"Duración",
	"Tipo",
	"Intensidad",
	"Equipo",
	"Calorías",
	"Series/Repeticiones",
	"Video URL",
}

// BuildExerciseReport synthesizes the CSV-shaped projection for a program:
// the header row followed by one row per exercise. Row order follows the
// input slice, which the reader fetches ordered by week then day.
func BuildExerciseReport(exercises []tables.FitnessExercise) [][]string {
	report := make([][]string, 0, len(exercises)+1)
	report = append(report, fitnessReportHeader)

	for _, ex := range exercises {
		video := ""
		if ex.VideoURL != nil {
			video = *ex.VideoURL
		}
		report = append(report, []string{
			strconv.Itoa(ex.Semana),
			strconv.Itoa(ex.Dia),
			ex.NombreActividad,
			ex.Descripcion,
			ex.Duracion,
			ex.TipoEjercicio,
			ex.NivelIntensidad,
			ex.EquipoNecesario,
			ex.Calorias,
			ex.SeriesRepeticiones,
			video,
		})
	}

	return report
}

// CountSessions returns the number of distinct weeks across the exercises.
func CountSessions(exercises []tables.FitnessExercise) int {
	weeks := make(map[int]struct{}, len(exercises))
	for _, ex := range exercises {
		weeks[ex.Semana] = struct{}{}
	}
	return len(weeks)
}

// ResolveVideoURL picks the product's representative video: the first
// exercise row carrying one, falling back to the media record's video.
func ResolveVideoURL(exercises []tables.FitnessExercise, media []tables.ActivityMedia) string {
	for _, ex := range exercises {
		if ex.VideoURL != nil && *ex.VideoURL != "" {
			return *ex.VideoURL
		}
	}
	for _, m := range media {
		if m.VideoURL != "" {
			return m.VideoURL
		}
	}
	return ""
}

// programAvailabilityTypes are the availability types a consolidated program
// period may carry.
var programAvailabilityTypes = map[string]struct{}{
	tables.AvailabilityUntilStock: {},
	tables.AvailabilityConsult:    {},
}

// PickProgramAvailability selects the row describing the program period:
// the canonical program_period row with an allowed availability type wins;
// otherwise the newest row by creation time is used as a deterministic
// fallback. Returns nil when no rows exist.
func PickProgramAvailability(rows []tables.ActivityAvailability) *tables.ActivityAvailability {
	for i := range rows {
		if rows[i].SessionType != tables.SessionProgramPeriod {
			continue
		}
		if _, ok := programAvailabilityTypes[rows[i].AvailabilityType]; ok {
			return &rows[i]
		}
	}

	var newest *tables.ActivityAvailability
	for i := range rows {
		if newest == nil || rows[i].CreatedAt.After(newest.CreatedAt) {
			newest = &rows[i]
		}
	}
	return newest
}
