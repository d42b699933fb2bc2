package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ActivityType enumerates the sellable product kinds.
type ActivityType string

const (
	ActivityProgram      ActivityType = "program"
	ActivityWorkshop     ActivityType = "workshop"
	ActivityDocument     ActivityType = "document"
	ActivityFitness      ActivityType = "fitness"
	ActivityConsultation ActivityType = "consultation"
)

// IsProgramLike reports whether the activity carries a training program
// (and therefore a derived CSV projection).
func (t ActivityType) IsProgramLike() bool {
	return t == ActivityProgram || t == ActivityFitness
}

// Activity is the primary sellable unit owned by a coach.
type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID          uuid.UUID    `bun:"id,pk,type:uuid" json:"id"`
	CoachID     uuid.UUID    `bun:"coach_id,type:uuid,notnull" json:"coach_id"`
	Title       string       `bun:"title,notnull" json:"title"`
	Description string       `bun:"description,notnull" json:"description"`
	Price       uint64       `bun:"price,notnull" json:"price"` // stored in cents
	Type        ActivityType `bun:"type,notnull" json:"type"`
	Capacity    int          `bun:"capacity" json:"capacity,omitempty"`
	Modality    string       `bun:"modality" json:"modality,omitempty"` // "online", "in_person"
	CreatedAt   time.Time    `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time    `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

// ActivityMedia associates an activity with its cover image and video.
// Modeled one-to-many in storage but at most one authoritative row exists;
// the update path enforces that by lookup-upsert, not a unique constraint.
type ActivityMedia struct {
	bun.BaseModel `bun:"table:activity_media,alias:am"`

	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ActivityID uuid.UUID `bun:"activity_id,type:uuid,notnull" json:"activity_id"`
	ImageURL   string    `bun:"image_url" json:"image_url,omitempty"`
	VideoURL   string    `bun:"video_url" json:"video_url,omitempty"`
	VimeoID    string    `bun:"vimeo_id" json:"vimeo_id,omitempty"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// Session/availability type discriminators for activity_availability rows.
const (
	SessionWorkshopBlock = "workshop_block"
	SessionProgramPeriod = "program_period"

	AvailabilityWorkshopBlock = "workshop_block"
	AvailabilityUntilStock    = "until_stock"
	AvailabilityConsult       = "consult"
)

// ActivityAvailability is a scheduling row: one per discrete workshop block,
// or a single consolidated period descriptor for programs.
type ActivityAvailability struct {
	bun.BaseModel `bun:"table:activity_availability,alias:av"`

	ID               uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ActivityID       uuid.UUID `bun:"activity_id,type:uuid,notnull" json:"activity_id"`
	SessionType      string    `bun:"session_type,notnull" json:"session_type"`
	AvailabilityType string    `bun:"availability_type,notnull" json:"availability_type"`
	StartDate        string    `bun:"start_date" json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate          string    `bun:"end_date" json:"end_date,omitempty"`
	StartTime        string    `bun:"start_time" json:"start_time,omitempty"` // HH:MM
	EndTime          string    `bun:"end_time" json:"end_time,omitempty"`
	StockQuantity    int       `bun:"stock_quantity" json:"stock_quantity,omitempty"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// TagMaterial is the tag_type under which required equipment is stored.
const TagMaterial = "material"

// ActivityTag is a typed tag attached to an activity. Material tags are the
// deduplicated equipment strings extracted from program data.
type ActivityTag struct {
	bun.BaseModel `bun:"table:activity_tags,alias:at"`

	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ActivityID uuid.UUID `bun:"activity_id,type:uuid,notnull" json:"activity_id"`
	TagType    string    `bun:"tag_type,notnull" json:"tag_type"`
	TagValue   string    `bun:"tag_value,notnull" json:"tag_value"`
}
