package models

import (
	"time"

	"github.com/google/uuid"
)

// Link is a link record as seen outside of storage. Passphrase is only set
// on the value returned by creation.
type Link struct {
	ID         uuid.UUID
	Target     string
	Passphrase string
	CreatedAt  time.Time
	ModifiedAt *time.Time
}
