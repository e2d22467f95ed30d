package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/abhisek/cinematch/internal/quiz"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage     = "en-US"
	DefaultTimeout      = 10 * time.Second
)

// TMDBConfig configures a TMDBClient. Either APIKey (v3) or AccessToken
// (v4 bearer) authenticates; AccessToken wins when both are set.
type TMDBConfig struct {
	APIKey       string
	AccessToken  string
	BaseURL      string
	ImageBaseURL string
	Language     string
	Timeout      time.Duration
	Genres       map[quiz.Label]int
}

// TMDBClient queries The Movie Database discover endpoint. It issues exactly
// one request per call and never retries.
type TMDBClient struct {
	cfg        TMDBConfig
	httpClient *http.Client
}

var _ Fetcher = (*TMDBClient)(nil)

// NewTMDBClient creates a client, filling unset fields with defaults.
func NewTMDBClient(cfg TMDBConfig) *TMDBClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultImageBaseURL
	}
	cfg.ImageBaseURL = strings.TrimSuffix(cfg.ImageBaseURL, "/")
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	genres := make(map[quiz.Label]int, len(DefaultGenres)+len(cfg.Genres))
	for l, id := range DefaultGenres {
		genres[l] = id
	}
	for l, id := range cfg.Genres {
		genres[l] = id
	}
	cfg.Genres = genres

	return &TMDBClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether a credential is set.
func (c *TMDBClient) Configured() bool {
	return c.cfg.APIKey != "" || c.cfg.AccessToken != ""
}

// WithAPIKey returns a copy of c using key as its v3 API key.
func (c *TMDBClient) WithAPIKey(key string) *TMDBClient {
	cp := *c
	cp.cfg.APIKey = key
	cp.cfg.AccessToken = ""
	return &cp
}

type discoverResponse struct {
	Page    int `json:"page"`
	Results []struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		PosterPath  string  `json:"poster_path"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
		VoteCount   int     `json:"vote_count"`
	} `json:"results"`
}

type statusResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// FetchCandidates returns up to limit popular movies for label.
func (c *TMDBClient) FetchCandidates(ctx context.Context, label quiz.Label, limit int) ([]Item, error) {
	if !c.Configured() {
		return nil, &Error{Kind: KindNotConfigured, Err: errors.New("no TMDB API key set")}
	}
	genre, ok := c.cfg.Genres[label]
	if !ok {
		return nil, &Error{Kind: KindUnsupportedLabel, Err: fmt.Errorf("no TMDB genre for label %q", label)}
	}
	if limit <= 0 {
		return []Item{}, nil
	}

	req, err := c.newDiscoverRequest(ctx, genre)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: redactURL(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var body discoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &Error{Kind: KindDecode, StatusCode: resp.StatusCode, Err: err}
	}

	n := min(limit, len(body.Results))
	items := make([]Item, 0, n)
	for _, r := range body.Results[:n] {
		item := Item{
			ID:          r.ID,
			Title:       r.Title,
			Overview:    r.Overview,
			Rating:      r.VoteAverage,
			VoteCount:   r.VoteCount,
			ReleaseDate: r.ReleaseDate,
		}
		if r.PosterPath != "" {
			item.PosterURL = c.cfg.ImageBaseURL + r.PosterPath
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *TMDBClient) newDiscoverRequest(ctx context.Context, genre int) (*http.Request, error) {
	q := url.Values{}
	q.Set("with_genres", strconv.Itoa(genre))
	q.Set("sort_by", "popularity.desc")
	q.Set("language", c.cfg.Language)
	q.Set("include_adult", "false")
	q.Set("page", "1")
	if c.cfg.AccessToken == "" {
		q.Set("api_key", c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/discover/movie?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}
	return req, nil
}

// redactURL drops the query string from a transport error. The v3 key
// travels as a query parameter and must not reach logs or the event store.
func redactURL(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	target, _, _ := strings.Cut(uerr.URL, "?")
	return &url.Error{Op: uerr.Op, URL: target, Err: uerr.Err}
}

func statusError(resp *http.Response) error {
	kind := KindUpstream
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		kind = KindUnauthorized
	}

	msg := http.StatusText(resp.StatusCode)
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		var s statusResponse
		if json.Unmarshal(raw, &s) == nil && s.StatusMessage != "" {
			msg = s.StatusMessage
		}
	}
	return &Error{Kind: kind, StatusCode: resp.StatusCode, Err: errors.New(msg)}
}
