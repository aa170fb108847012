package cian

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/listing-console/listing"
)

func TestMapOrderReport(t *testing.T) {
	t.Run("mixed id types and statuses", func(t *testing.T) {
		raw := []byte(`{
			"result": {
				"offers": [
					{"externalId": "obj-1", "offerId": 111, "status": "Published"},
					{"externalId": 202, "status": "Отклонено"},
					{"offerId": "303", "status": "Deactivated"},
					{"externalId": "obj-4", "status": "SomethingNew"},
					{"status": "Published"},
					{"externalId": null, "offerId": 505, "status": "На модерации"}
				]
			}
		}`)
		overrides, err := MapOrderReport(raw)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"obj-1": listing.StatusActive,
			"202":   listing.StatusRejected,
			"303":   listing.StatusInactive,
			"505":   listing.StatusDraft,
		}, overrides)
	})

	t.Run("external id wins over offer id", func(t *testing.T) {
		raw := []byte(`{"result":{"offers":[{"externalId":"ext","offerId":"off","status":"Published"}]}}`)
		overrides, err := MapOrderReport(raw)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ext": listing.StatusActive}, overrides)
	})

	t.Run("empty report", func(t *testing.T) {
		overrides, err := MapOrderReport([]byte(`{"result":{"offers":[]}}`))
		require.NoError(t, err)
		assert.Empty(t, overrides)
	})

	t.Run("malformed payload errors", func(t *testing.T) {
		_, err := MapOrderReport([]byte(`{"result":`))
		assert.Error(t, err)
	})
}
