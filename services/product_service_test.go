package services

import (
	"testing"

	"coachfit_server/structs"
	"coachfit_server/structs/tables"

	"github.com/stretchr/testify/assert"
)

func TestReplacesWorkshopBlocks(t *testing.T) {
	block := structs.WorkshopBlock{
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
		StartTime: "10:00",
		EndTime:   "12:00",
	}

	tests := []struct {
		name  string
		input structs.UpdateProductInput
		want  bool
	}{
		{
			name: "workshop with blocks",
			input: structs.UpdateProductInput{
				Type:   tables.ActivityWorkshop,
				Blocks: []structs.WorkshopBlock{block},
			},
			want: true,
		},
		{
			name: "title-only workshop edit keeps the stored schedule",
			input: structs.UpdateProductInput{
				Type:  tables.ActivityWorkshop,
				Title: "New title",
			},
			want: false,
		},
		{
			name: "blocks on a non-workshop type are ignored",
			input: structs.UpdateProductInput{
				Type:   tables.ActivityDocument,
				Blocks: []structs.WorkshopBlock{block},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, replacesWorkshopBlocks(&tt.input))
		})
	}
}

func TestReplacesProgramRows(t *testing.T) {
	rows := [][]string{
		{"Semana", "Día", "Nombre Actividad"},
		{"1", "1", "Sentadilla"},
	}

	tests := []struct {
		name  string
		input structs.UpdateProductInput
		want  bool
	}{
		{
			name:  "program with tabular data",
			input: structs.UpdateProductInput{Type: tables.ActivityProgram, CSVData: rows},
			want:  true,
		},
		{
			name:  "fitness with tabular data",
			input: structs.UpdateProductInput{Type: tables.ActivityFitness, CSVData: rows},
			want:  true,
		},
		{
			name:  "program without data keeps stored rows",
			input: structs.UpdateProductInput{Type: tables.ActivityProgram, Title: "New title"},
			want:  false,
		},
		{
			name:  "tabular data on a workshop is ignored",
			input: structs.UpdateProductInput{Type: tables.ActivityWorkshop, CSVData: rows},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, replacesProgramRows(&tt.input))
		})
	}
}
