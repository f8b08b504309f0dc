package tripstore

import (
	"context"
	"errors"
	"time"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

// ErrNotFound is returned when a trip does not exist.
var ErrNotFound = errors.New("trip not found")

// Origin records how a trip's itinerary was obtained.
type Origin string

const (
	OriginGenerated Origin = "generated"
	OriginImported  Origin = "imported"
)

// Trip is a stored itinerary. Suggestions holds the raw lines exactly as
// received; Itinerary is the document built from them.
type Trip struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Destination string             `json:"destination"`
	StartDate   string             `json:"start_date,omitempty"`
	EndDate     string             `json:"end_date,omitempty"`
	Preferences string             `json:"preferences,omitempty"`
	Origin      Origin             `json:"origin"`
	Suggestions []string           `json:"suggestions"`
	Itinerary   itinerary.Document `json:"itinerary"`
	ContentHash string             `json:"content_hash"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Clone returns a copy of t that shares no slices with it.
func (t *Trip) Clone() *Trip {
	c := *t
	c.Suggestions = append([]string(nil), t.Suggestions...)
	c.Itinerary = t.Itinerary.Clone()
	return &c
}

// Store persists trips. ListByUser returns newest first.
type Store interface {
	Save(ctx context.Context, trip *Trip) error
	Get(ctx context.Context, id string) (*Trip, error)
	ListByUser(ctx context.Context, userID string) ([]*Trip, error)
	FindByHash(ctx context.Context, userID, contentHash string) (*Trip, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
