// Package cian talks to the listing-syndication provider: fetching the
// order report that says what the provider did with each published offer,
// and mapping its statuses back onto console statuses.
package cian

// Offer is one entry of the provider's order report. Identifiers come back
// as strings or numbers depending on how the offer was created, so both id
// fields decode defensively.
type Offer struct {
	ExternalID stringNumber `json:"externalId"`
	OfferID    stringNumber `json:"offerId"`
	Status     string       `json:"status"`
}

type orderReport struct {
	Result struct {
		Offers []Offer `json:"offers"`
	} `json:"result"`
}
