// Package catalog fetches candidate movies for a genre label from an
// external catalog service.
package catalog

import (
	"context"

	"github.com/abhisek/cinematch/internal/quiz"
)

// Item is one candidate movie as returned by the catalog.
type Item struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	Rating      float64 `json:"rating"`
	VoteCount   int     `json:"vote_count"`
	ReleaseDate string  `json:"release_date,omitempty"`
	PosterURL   string  `json:"poster_url,omitempty"`
}

// Year returns the release year, or "" when the date is unknown.
func (i Item) Year() string {
	if len(i.ReleaseDate) < 4 {
		return ""
	}
	return i.ReleaseDate[:4]
}

// Fetcher returns up to limit candidates for a label, in the order the
// catalog ranks them. No matches is an empty slice with a nil error.
type Fetcher interface {
	FetchCandidates(ctx context.Context, label quiz.Label, limit int) ([]Item, error)
}

// DefaultGenres maps each built-in label to its TMDB genre id.
var DefaultGenres = map[quiz.Label]int{
	quiz.LabelDrama:   18,
	quiz.LabelRomance: 10749,
	quiz.LabelComedy:  35,
	quiz.LabelAction:  28,
	quiz.LabelSciFi:   878,
	quiz.LabelMystery: 9648,
}
