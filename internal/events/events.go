// Package events carries in-process notifications between the write path
// and whoever needs to react: cache invalidation today, an indexer later.
package events

import (
	"context"

	"github.com/google/uuid"
)

// ListingUpdated fires after a listing's stored payload or status changed.
type ListingUpdated struct {
	EventID  string
	ObjectID string
	Status   string
}

type Publisher interface {
	PublishListingUpdated(ctx context.Context, evt ListingUpdated)
	SubscribeListingUpdated() <-chan ListingUpdated
}

type inMemory struct{ ch chan ListingUpdated }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan ListingUpdated, buffer)}
}

// PublishListingUpdated never blocks the write path; if nobody is keeping
// up, events are dropped.
func (m *inMemory) PublishListingUpdated(_ context.Context, evt ListingUpdated) {
	if evt.EventID == "" {
		evt.EventID = uuid.NewString()
	}
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) SubscribeListingUpdated() <-chan ListingUpdated { return m.ch }
