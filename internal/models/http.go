// Package models defines the request and response data structures used
// for communication between the client and the QR link service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest is the body of POST /qr and POST /qr/image.
type CreateRequest struct {
	// Link is the absolute URL the QR code redirects to.
	Link string `json:"link"`
}

// CreateResponse is returned once, on creation. It is the only response
// that carries the passphrase.
type CreateResponse struct {
	ID         uuid.UUID `json:"id"`
	Link       string    `json:"link"`
	Passphrase string    `json:"passphrase"`
}

// LinkResponse is the public view of a link record.
type LinkResponse struct {
	ID         uuid.UUID  `json:"id"`
	Link       string     `json:"link"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

// UpdateRequest is the body of PUT /qr/{id}.
type UpdateRequest struct {
	// Link is the new redirect target.
	Link string `json:"link"`

	// Password is the passphrase handed out on creation.
	Password string `json:"password"`
}

// UpdateResponse is returned by a successful update.
type UpdateResponse struct {
	ID uuid.UUID `json:"id"`
}

// NewLinkResponse strips everything but the public fields of l.
func NewLinkResponse(l *Link) LinkResponse {
	return LinkResponse{
		ID:         l.ID,
		Link:       l.Target,
		CreatedAt:  l.CreatedAt,
		ModifiedAt: l.ModifiedAt,
	}
}
