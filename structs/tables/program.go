package tables

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FitnessExercise is a single prescribed exercise row of a program.
// Rows are replaced wholesale on every program update. ClientID is only set
// when a program has been assigned to a specific client.
type FitnessExercise struct {
	bun.BaseModel `bun:"table:fitness_exercises,alias:fe"`

	ID                uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	ActivityID        uuid.UUID  `bun:"activity_id,type:uuid,notnull" json:"activity_id"`
	CoachID           uuid.UUID  `bun:"coach_id,type:uuid,notnull" json:"coach_id"`
	ClientID          *uuid.UUID `bun:"client_id,type:uuid,nullzero" json:"client_id,omitempty"`
	Semana            int        `bun:"semana,notnull" json:"semana"`
	Dia               int        `bun:"dia,notnull" json:"dia"`
	NombreActividad   string     `bun:"nombre_actividad,notnull" json:"nombre_actividad"`
	Descripcion       string     `bun:"descripcion" json:"descripcion,omitempty"`
	Duracion          string     `bun:"duracion" json:"duracion,omitempty"`
	TipoEjercicio     string     `bun:"tipo_ejercicio" json:"tipo_ejercicio,omitempty"`
	NivelIntensidad   string     `bun:"nivel_intensidad" json:"nivel_intensidad,omitempty"`
	EquipoNecesario   string     `bun:"equipo_necesario" json:"equipo_necesario,omitempty"`
	Calorias          string     `bun:"calorias" json:"calorias,omitempty"`
	SeriesRepeticiones string    `bun:"series_repeticiones" json:"series_repeticiones,omitempty"`
	VideoURL          *string    `bun:"video_url,nullzero" json:"video_url"`
}

// NutritionProgramDetail is a single prescribed meal row of a program.
// Same replace-all lifecycle as FitnessExercise.
type NutritionProgramDetail struct {
	bun.BaseModel `bun:"table:nutrition_program_details,alias:np"`

	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	ActivityID    uuid.UUID  `bun:"activity_id,type:uuid,notnull" json:"activity_id"`
	CoachID       uuid.UUID  `bun:"coach_id,type:uuid,notnull" json:"coach_id"`
	ClientID      *uuid.UUID `bun:"client_id,type:uuid,nullzero" json:"client_id,omitempty"`
	Semana        int        `bun:"semana,notnull" json:"semana"`
	Dia           int        `bun:"dia,notnull" json:"dia"`
	Comida        string     `bun:"comida,notnull" json:"comida"`
	Nombre        string     `bun:"nombre,notnull" json:"nombre"`
	Calorias      float64    `bun:"calorias" json:"calorias"`
	Proteinas     float64    `bun:"proteinas" json:"proteinas"`
	Carbohidratos float64    `bun:"carbohidratos" json:"carbohidratos"`
	Peso          string     `bun:"peso" json:"peso,omitempty"`
	Receta        string     `bun:"receta" json:"receta,omitempty"`
	VideoURL      *string    `bun:"video_url,nullzero" json:"video_url"`
}
