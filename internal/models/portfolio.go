package models

// SiteRequest is one site in a portfolio scoring request body. Coordinates
// are pointers so that missing fields are distinguishable from zero values
// during validation.
type SiteRequest struct {
	SiteID    string   `json:"siteId"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// PortfolioRequest is the batch scoring POST body.
type PortfolioRequest struct {
	Name  string        `json:"name"`
	Sites []SiteRequest `json:"sites"`
}

// PortfolioEntry is the batch scoring response payload.
type PortfolioEntry struct {
	RunID          string       `json:"runId,omitempty"`
	Name           string       `json:"name,omitempty"`
	TotalSites     int          `json:"totalSites"`
	QualifiedSites int          `json:"qualifiedSites"`
	Results        []ScoreEntry `json:"results"`
}
