package domain

// MovieSummary is one entry of a catalog search result. JSON names follow the
// catalog so results pass through unchanged.
type MovieSummary struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// MovieDetail is the full catalog record for one title, keyed by the
// catalog's own field names. Fields vary by title type (series carry
// totalSeasons, episodes carry Season and Episode), so the record is kept
// as the catalog sent it.
type MovieDetail map[string]any
