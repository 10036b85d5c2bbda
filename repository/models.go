package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DateLayout is the wire and storage format of event dates. Stored as text
// so range filters compare lexicographically.
const DateLayout = "2006-01-02"

type EventType struct {
	bun.BaseModel `bun:"table:event_types,alias:et"`
	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Description   string    `bun:"description" json:"description,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
}

type Event struct {
	bun.BaseModel `bun:"table:events,alias:ev"`
	ID            uuid.UUID      `bun:"id,pk,type:uuid" json:"id"`
	Name          string         `bun:"name,notnull" json:"name"`
	EventDate     string         `bun:"event_date,notnull" json:"event_date"`
	Description   string         `bun:"description" json:"description,omitempty"`
	Location      string         `bun:"location" json:"location"`
	EventTypeID   uuid.UUID      `bun:"event_type_id,type:uuid,notnull" json:"event_type_id"`
	CreatedAt     time.Time      `bun:"created_at,notnull" json:"created_at"`
	Participants  []*Participant `bun:"rel:has-many,join:id=event_id" json:"participants,omitempty"`
}

type Participant struct {
	bun.BaseModel `bun:"table:participants,alias:pt"`
	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	FirstName     string    `bun:"first_name,notnull" json:"first_name"`
	LastName      string    `bun:"last_name,notnull" json:"last_name"`
	Email         string    `bun:"email,notnull" json:"email"`
	Phone         string    `bun:"phone" json:"phone"`
	Address       string    `bun:"address" json:"address"`
	City          string    `bun:"city" json:"city"`
	State         string    `bun:"state" json:"state"`
	ZipCode       string    `bun:"zip_code" json:"zip_code"`
	EventID       uuid.UUID `bun:"event_id,type:uuid,notnull" json:"event_id"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
}

func stampDefaults(id *uuid.UUID, createdAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
