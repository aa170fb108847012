package cian

import (
	"encoding/json"

	"github.com/yourorg/listing-console/listing"
)

// stringNumber accepts string or number JSON and stores the textual form.
type stringNumber string

func (s *stringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = stringNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = stringNumber(num.String())
	return nil
}

// MapOrderReport extracts per-object status overrides from a raw order
// report payload. Offers without a usable id or with a status the console
// does not recognize are dropped; an unknown provider status must never
// clobber the status the console already has.
func MapOrderReport(raw []byte) (map[string]string, error) {
	var root orderReport
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	overrides := make(map[string]string, len(root.Result.Offers))
	for _, offer := range root.Result.Offers {
		id := firstNonEmpty(string(offer.ExternalID), string(offer.OfferID))
		if id == "" {
			continue
		}
		if status := listing.MapProviderStatus(offer.Status); status != "" {
			overrides[id] = status
		}
	}
	return overrides, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
