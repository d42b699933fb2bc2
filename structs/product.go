package structs

import (
	"io"

	"coachfit_server/structs/tables"
)

// ProductView is the denormalized product read model: the primary activity
// plus its dependent relations, and — for program-like types — the derived
// CSV projection.
type ProductView struct {
	tables.Activity

	Media        []tables.ActivityMedia        `json:"media"`
	Availability []tables.ActivityAvailability `json:"availability"`
	Tags         []tables.ActivityTag          `json:"tags"`

	// Program-derived block. CSVData is header-first, rows ordered by week
	// then day. Empty for non-program types.
	CSVData        [][]string `json:"csvData,omitempty"`
	ExercisesCount int        `json:"exercisesCount"`
	TotalSessions  int        `json:"totalSessions"`
	VideoURL       string     `json:"videoUrl,omitempty"`
}

// WorkshopBlock is one discrete scheduled time block of a workshop.
type WorkshopBlock struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// UpdateProductInput is the fully-formed update payload handed to the
// product service. Required scalars are validated before any write.
type UpdateProductInput struct {
	Title       string
	Description string
	Price       uint64
	Type        tables.ActivityType
	Capacity    int
	Modality    string

	// Media reference. Image is the raw upload when the request was
	// multipart; ImageURL carries an already-hosted URL otherwise.
	ImageURL  string
	Image     io.Reader
	ImageName string
	VideoURL  string

	// Workshop scheduling.
	Blocks []WorkshopBlock

	// Program data: header-first tabular rows plus the consolidated period.
	CSVData          [][]string
	StartDate        string
	EndDate          string
	AvailabilityType string
	StockQuantity    int
}
