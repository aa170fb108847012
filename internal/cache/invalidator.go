package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourorg/listing-console/internal/events"
)

// Invalidator consumes listing-updated events and drops the corresponding
// cache entries, so readers re-fetch after any write. Status overrides from
// the syndication sync bypass the HTTP path, which is why this listens on
// events rather than living in the handlers.
type Invalidator struct {
	Pub   events.Publisher
	Cache *Cache
	Log   *zap.Logger
}

func (i *Invalidator) Run(ctx context.Context) {
	sub := i.Pub.SubscribeListingUpdated()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			i.Cache.Invalidate(ObjectKey(evt.ObjectID))
			if i.Log != nil {
				i.Log.Debug("cache invalidated",
					zap.String("event_id", evt.EventID),
					zap.String("object_id", evt.ObjectID),
					zap.String("status", evt.Status))
			}
		}
	}
}
