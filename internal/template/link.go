package template

import (
	"net/url"
	"time"
)

// DefaultFormURL is the external confirmation form supervisors answer.
// Overridable via config so staging environments can point elsewhere.
const DefaultFormURL = "https://docs.google.com/forms/d/e/1FAIpQLSdVwQuOHxOWhFI7bRdQ3dWKoWBqk8qTRAWG5HekTMJzWO2gig/viewform"

// Pre-filled form field identifiers.
const (
	formFieldPersonName = "entry.1543887881"
	formFieldPersonID   = "entry.767260361"
	formFieldDate       = "entry.1702966662"
)

// ConfirmationLink builds the pre-filled confirmation form URL for one
// suggestion. All values are URL-encoded.
func ConfirmationLink(baseURL, personName, personID string, suggested time.Time) string {
	q := url.Values{}
	q.Set("usp", "pp_url")
	q.Set(formFieldPersonName, personName)
	q.Set(formFieldPersonID, personID)
	q.Set(formFieldDate, ISODate(suggested))
	return baseURL + "?" + q.Encode()
}
