package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the profile an individual wallet hangs off. Exactly one
// wallet is provisioned per account; both rows are created in the same
// database transaction.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxAccountNameLength bounds the display name, mirroring the varchar(32)
// column in the schema.
const MaxAccountNameLength = 32
