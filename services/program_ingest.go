package services

import (
	"strconv"
	"strings"

	"coachfit_server/structs/tables"

	"github.com/google/uuid"
)

// ProgramKind classifies a tabular program payload by its header row.
type ProgramKind int

const (
	ProgramFitness ProgramKind = iota
	ProgramNutrition
	ProgramMixed
)

func (k ProgramKind) HasFitness() bool {
	return k == ProgramFitness || k == ProgramMixed
}

func (k ProgramKind) HasNutrition() bool {
	return k == ProgramNutrition || k == ProgramMixed
}

// Header tokens recognized during classification. Matching is exact and
// case-sensitive: "comida" or "COMIDA" does not classify as nutrition.
const (
	headerMealToken = "Comida"
	headerWeekToken = "Semana"
	headerDayToken  = "Día"
)

// Fixed column positions of a fitness program row.
const (
	fitColWeek = iota
	fitColDay
	fitColName
	fitColDescription
	fitColDuration
	fitColType
	fitColIntensity
	fitColEquipment
	fitColCalories
	fitColSeriesReps
	fitColVideoURL // position 10
)

// Fixed column positions of a nutrition program row.
const (
	nutColWeek = iota
	nutColDay
	nutColMeal
	nutColName
	nutColCalories
	nutColProtein
	nutColCarbs
	nutColWeight
	nutColRecipe
	nutColVideoURL // position 9
)

// Equipment values that never become material tags.
const equipmentNone = "none"
const equipmentNinguno = "Ninguno"

// ClassifyProgram decides the program kind from the header row. A header
// carrying the meal token is nutrition-only, unless it also carries the
// week and day tokens, in which case the payload holds both kinds.
func ClassifyProgram(header []string) ProgramKind {
	hasMeal := false
	hasWeek := false
	hasDay := false
	for _, cell := range header {
		switch cell {
		case headerMealToken:
			hasMeal = true
		case headerWeekToken:
			hasWeek = true
		case headerDayToken:
			hasDay = true
		}
	}

	if hasMeal {
		if hasWeek && hasDay {
			return ProgramMixed
		}
		return ProgramNutrition
	}
	return ProgramFitness
}

// ParsedProgram is the result of ingesting one tabular payload.
type ParsedProgram struct {
	Kind      ProgramKind
	Exercises []tables.FitnessExercise
	Nutrition []tables.NutritionProgramDetail
	Materials []string
}

// ParseProgram converts a header-first tabular payload into typed rows tagged
// with the product and coach identity. A payload without data rows yields an
// empty result, never an error; malformed cells substitute documented
// defaults instead of rejecting the row.
func ParseProgram(csvData [][]string, activityID, coachID uuid.UUID) *ParsedProgram {
	parsed := &ParsedProgram{Kind: ProgramFitness}
	if len(csvData) < 2 {
		return parsed
	}

	parsed.Kind = ClassifyProgram(csvData[0])
	rows := csvData[1:]

	if parsed.Kind.HasFitness() {
		parsed.Exercises = parseFitnessRows(rows, activityID, coachID)
		parsed.Materials = extractMaterials(rows)
	}
	if parsed.Kind.HasNutrition() {
		parsed.Nutrition = parseNutritionRows(rows, activityID, coachID)
	}

	return parsed
}

func parseFitnessRows(rows [][]string, activityID, coachID uuid.UUID) []tables.FitnessExercise {
	exercises := make([]tables.FitnessExercise, 0, len(rows))
	for _, row := range rows {
		exercises = append(exercises, tables.FitnessExercise{
			ID:                 uuid.New(),
			ActivityID:         activityID,
			CoachID:            coachID,
			Semana:             parseIntCell(cellAt(row, fitColWeek), 1),
			Dia:                parseIntCell(cellAt(row, fitColDay), 1),
			NombreActividad:    cellAt(row, fitColName),
			Descripcion:        cellAt(row, fitColDescription),
			Duracion:           cellAt(row, fitColDuration),
			TipoEjercicio:      cellAt(row, fitColType),
			NivelIntensidad:    cellAt(row, fitColIntensity),
			EquipoNecesario:    cellAt(row, fitColEquipment),
			Calorias:           cellAt(row, fitColCalories),
			SeriesRepeticiones: cellAt(row, fitColSeriesReps),
			VideoURL:           optionalCell(row, fitColVideoURL),
		})
	}
	return exercises
}

func parseNutritionRows(rows [][]string, activityID, coachID uuid.UUID) []tables.NutritionProgramDetail {
	meals := make([]tables.NutritionProgramDetail, 0, len(rows))
	for _, row := range rows {
		meals = append(meals, tables.NutritionProgramDetail{
			ID:            uuid.New(),
			ActivityID:    activityID,
			CoachID:       coachID,
			Semana:        parseIntCell(cellAt(row, nutColWeek), 1),
			Dia:           parseIntCell(cellAt(row, nutColDay), 1),
			Comida:        cellAt(row, nutColMeal),
			Nombre:        cellAt(row, nutColName),
			Calorias:      parseFloatCell(cellAt(row, nutColCalories), 0),
			Proteinas:     parseFloatCell(cellAt(row, nutColProtein), 0),
			Carbohidratos: parseFloatCell(cellAt(row, nutColCarbs), 0),
			Peso:          cellAt(row, nutColWeight),
			Receta:        cellAt(row, nutColRecipe),
			VideoURL:      optionalCell(row, nutColVideoURL),
		})
	}
	return meals
}

// extractMaterials collects distinct equipment strings from the fixed
// equipment column, skipping empties and the "no equipment" literals.
func extractMaterials(rows [][]string) []string {
	seen := make(map[string]struct{}, len(rows))
	materials := make([]string, 0, len(rows))
	for _, row := range rows {
		equipment := strings.TrimSpace(cellAt(row, fitColEquipment))
		if equipment == "" || equipment == equipmentNone || equipment == equipmentNinguno {
			continue
		}
		if _, ok := seen[equipment]; ok {
			continue
		}
		seen[equipment] = struct{}{}
		materials = append(materials, equipment)
	}
	return materials
}

func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// optionalCell returns nil for absent or empty cells so the column stores
// NULL instead of "".
func optionalCell(row []string, index int) *string {
	cell := cellAt(row, index)
	if cell == "" {
		return nil
	}
	return &cell
}

func parseIntCell(cell string, defaultVal int) int {
	value, err := strconv.Atoi(cell)
	if err != nil {
		return defaultVal
	}
	return value
}

func parseFloatCell(cell string, defaultVal float64) float64 {
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return defaultVal
	}
	return value
}
