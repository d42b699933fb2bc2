package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fitnessHeader = []string{
	"Semana", "Día", "Nombre", "Descripción", "Duración",
	"Tipo", "Intensidad", "Equipo", "Calorías", "Series", "Video",
}

var nutritionHeader = []string{
	"Nº", "Orden", "Comida", "Nombre", "Calorías",
	"Proteínas", "Carbohidratos", "Peso", "Receta", "Video",
}

var mixedHeader = []string{
	"Semana", "Día", "Comida", "Nombre", "Calorías",
	"Proteínas", "Carbohidratos", "Peso", "Receta", "Video",
}

func TestClassifyProgram(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   ProgramKind
	}{
		{"fitness header", fitnessHeader, ProgramFitness},
		{"nutrition header", nutritionHeader, ProgramNutrition},
		{"meal plus week and day is mixed", mixedHeader, ProgramMixed},
		{"empty header defaults to fitness", []string{}, ProgramFitness},
		{"lowercase comida is not a meal token", []string{"comida", "Nombre"}, ProgramFitness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyProgram(tt.header))
		})
	}
}

func TestProgramKindPredicates(t *testing.T) {
	assert.True(t, ProgramFitness.HasFitness())
	assert.False(t, ProgramFitness.HasNutrition())
	assert.False(t, ProgramNutrition.HasFitness())
	assert.True(t, ProgramNutrition.HasNutrition())
	assert.True(t, ProgramMixed.HasFitness())
	assert.True(t, ProgramMixed.HasNutrition())
}

func TestParseProgramFitness(t *testing.T) {
	activityID := uuid.New()
	coachID := uuid.New()

	csvData := [][]string{
		fitnessHeader,
		{"1", "1", "Sentadillas", "Piernas", "30 min", "Fuerza", "Alta", "Barra", "200", "4x10", "https://vimeo.com/123456"},
		{"1", "2", "Plancha", "Core", "10 min", "Fuerza", "Media", "Ninguno", "50", "3x60s", ""},
	}

	parsed := ParseProgram(csvData, activityID, coachID)

	require.Len(t, parsed.Exercises, 2)
	assert.Empty(t, parsed.Nutrition)

	first := parsed.Exercises[0]
	assert.Equal(t, activityID, first.ActivityID)
	assert.Equal(t, coachID, first.CoachID)
	assert.Nil(t, first.ClientID)
	assert.Equal(t, 1, first.Semana)
	assert.Equal(t, "Sentadillas", first.NombreActividad)
	assert.Equal(t, "Barra", first.EquipoNecesario)
	require.NotNil(t, first.VideoURL)
	assert.Equal(t, "https://vimeo.com/123456", *first.VideoURL)

	// empty video cells store NULL, not ""
	assert.Nil(t, parsed.Exercises[1].VideoURL)
}

func TestParseProgramDefaultsForMalformedCells(t *testing.T) {
	csvData := [][]string{
		fitnessHeader,
		{"abc", "", "Burpees"},
	}

	parsed := ParseProgram(csvData, uuid.New(), uuid.New())

	require.Len(t, parsed.Exercises, 1)
	ex := parsed.Exercises[0]
	assert.Equal(t, 1, ex.Semana, "unparseable week falls back to 1")
	assert.Equal(t, 1, ex.Dia, "missing day falls back to 1")
	assert.Equal(t, "Burpees", ex.NombreActividad)
	assert.Equal(t, "", ex.EquipoNecesario, "short rows read missing cells as empty")
}

func TestParseProgramNutrition(t *testing.T) {
	csvData := [][]string{
		nutritionHeader,
		{"2", "1", "Desayuno", "Avena con fruta", "420.5", "18", "61.2", "350g", "Cocer la avena", "https://vimeo.com/777"},
		{"2", "2", "Comida", "Pollo con arroz", "bad", "", "", "400g", "", ""},
	}

	parsed := ParseProgram(csvData, uuid.New(), uuid.New())

	assert.Empty(t, parsed.Exercises)
	assert.Empty(t, parsed.Materials)
	require.Len(t, parsed.Nutrition, 2)

	first := parsed.Nutrition[0]
	assert.Equal(t, 2, first.Semana)
	assert.Equal(t, "Desayuno", first.Comida)
	assert.InDelta(t, 420.5, first.Calorias, 0.001)
	assert.InDelta(t, 61.2, first.Carbohidratos, 0.001)

	// malformed numbers fall back to zero
	second := parsed.Nutrition[1]
	assert.Zero(t, second.Calorias)
	assert.Zero(t, second.Proteinas)
	assert.Nil(t, second.VideoURL)
}

func TestParseProgramMixed(t *testing.T) {
	csvData := [][]string{
		mixedHeader,
		{"1", "1", "Desayuno", "Tortilla", "300", "20", "5", "250g", "Batir y cocinar", ""},
	}

	parsed := ParseProgram(csvData, uuid.New(), uuid.New())

	assert.Equal(t, ProgramMixed, parsed.Kind)
	assert.Len(t, parsed.Exercises, 1, "mixed payloads produce fitness rows")
	assert.Len(t, parsed.Nutrition, 1, "mixed payloads produce nutrition rows")
}

func TestParseProgramEmptyPayload(t *testing.T) {
	for _, csvData := range [][][]string{nil, {}, {fitnessHeader}} {
		parsed := ParseProgram(csvData, uuid.New(), uuid.New())
		assert.Empty(t, parsed.Exercises)
		assert.Empty(t, parsed.Nutrition)
		assert.Empty(t, parsed.Materials)
	}
}

func TestExtractMaterials(t *testing.T) {
	csvData := [][]string{
		fitnessHeader,
		{"1", "1", "A", "", "", "", "", "Mancuernas", "", "", ""},
		{"1", "2", "B", "", "", "", "", "Ninguno", "", "", ""},
		{"1", "3", "C", "", "", "", "", "none", "", "", ""},
		{"2", "1", "D", "", "", "", "", "Mancuernas", "", "", ""},
		{"2", "2", "E", "", "", "", "", "  Banda elástica  ", "", "", ""},
		{"2", "3", "F", "", "", "", "", "", "", "", ""},
	}

	parsed := ParseProgram(csvData, uuid.New(), uuid.New())

	assert.Equal(t, []string{"Mancuernas", "Banda elástica"}, parsed.Materials)
}
