package model

import (
	"encoding/json"
	"time"
)

// Document is a generated identity document. The three identity fields are
// normalized columns; Data carries the rest of the submitted payload
// verbatim, so rows written before normalization stay readable.
type Document struct {
	ID         int64           `json:"id"`
	PublicID   string          `json:"public_id"`
	OwnerID    int64           `json:"owner_id"`
	Name       string          `json:"name"`
	Surname    string          `json:"surname"`
	NationalID string          `json:"national_id"`
	Data       json.RawMessage `json:"data,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PublicDocument is the unauthenticated projection served on the public
// link: no internal id, no owner reference.
type PublicDocument struct {
	PublicID   string          `json:"public_id"`
	Name       string          `json:"name"`
	Surname    string          `json:"surname"`
	NationalID string          `json:"national_id"`
	Data       json.RawMessage `json:"data,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (d Document) Public() PublicDocument {
	return PublicDocument{
		PublicID:   d.PublicID,
		Name:       d.Name,
		Surname:    d.Surname,
		NationalID: d.NationalID,
		Data:       d.Data,
		CreatedAt:  d.CreatedAt,
	}
}

// DocumentSummary is one row of the admin listing, joined with the owner's
// username.
type DocumentSummary struct {
	ID         int64     `json:"id"`
	PublicID   string    `json:"public_id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	NationalID string    `json:"national_id"`
	CreatedAt  time.Time `json:"created_at"`
}
