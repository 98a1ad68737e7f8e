package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole string

const (
	// RoleUser is the default role for registered accounts
	RoleUser UserRole = "user"
	// RoleManager can manage content owned by regular users
	RoleManager UserRole = "manager"
	// RoleAdmin has full administrative access
	RoleAdmin UserRole = "admin"
)

// User is the account model. Username and email are both unique identifiers;
// the store enforces uniqueness so concurrent registrations have exactly one
// winner. PasswordHash is never serialized.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role           UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	FullName       string     `bun:"full_name,notnull" json:"full_name,omitempty"`
	Username       string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	IsActive       bool       `bun:"is_active,notnull,default:false" json:"is_active"`
	ActivationCode string     `bun:"activation_code" json:"-"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// prepareUserDefaults fills defaults for a record about to be created.
// Accounts always start inactive with a fresh activation code.
func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Role == "" {
		record.Role = RoleUser
	}
	if record.ActivationCode == "" {
		record.ActivationCode = NewActivationCode()
	}
	record.IsActive = false
}

// NewActivationCode returns a fresh unpredictable one-time code.
func NewActivationCode() string {
	return uuid.NewString()
}
