package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Marketplace roles.
const (
	RoleCoach  = "coach"
	RoleClient = "client"
)

type AuthResponse struct {
	User        *UserProfile `json:"user"`
	AccessToken string       `json:"access_token"`
}

// UserProfile holds the marketplace identity for both coaches and clients.
type UserProfile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:up"`

	ID            uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email         string    `json:"email" bun:"email,unique,notnull"`
	PasswordHash  string    `json:"-" bun:"password_hash,notnull"`
	FullName      string    `json:"full_name" bun:"full_name,notnull"`
	Role          string    `json:"role" bun:"role,notnull,default:'client'"`
	AvatarURL     string    `json:"avatar_url,omitempty" bun:"avatar_url"`
	LastLogin     time.Time `json:"last_login" bun:"last_login,default:now()"`
	EmailVerified bool      `json:"email_verified" bun:"email_verified,notnull,default:false"`
	CreatedAt     time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
}
