package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"movielog/internal/note"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

var (
	ErrNotFound     = errors.New("omdb: not found")
	ErrUnauthorized = errors.New("omdb: invalid or missing api key")
	ErrRateLimited  = errors.New("omdb: request limit reached")
	ErrEmptyQuery   = errors.New("omdb: query must not be empty")
)

// Movie is the OMDb title payload.
type Movie struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	IMDbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

// Record converts the catalog payload into the note value object. User
// fields are left empty for the caller to fill.
func (m Movie) Record() note.MovieRecord {
	return note.MovieRecord{
		Title:      m.Title,
		Year:       m.Year,
		Rated:      m.Rated,
		Runtime:    m.Runtime,
		Genre:      m.Genre,
		Actors:     m.Actors,
		Director:   m.Director,
		Plot:       m.Plot,
		Poster:     m.Poster,
		IMDbID:     m.IMDbID,
		IMDbRating: m.IMDbRating,
	}
}

// SearchResult is a single entry of a search response.
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchPage models one page of OMDb search results.
type SearchPage struct {
	Results      []SearchResult `json:"Search"`
	TotalResults int            `json:"-"`
	Page         int            `json:"-"`
}

type searchPayload struct {
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error,omitempty"`
}

// SearchOptions narrows a search.
type SearchOptions struct {
	Year int
	// Type is one of movie, series, episode; empty searches all.
	Type string
	Page int
}

// Fetcher is the lookup surface consumed by the logbook service.
type Fetcher interface {
	Title(ctx context.Context, title string) (*Movie, error)
	ByID(ctx context.Context, imdbID string) (*Movie, error)
	Search(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error)
}

// Client provides access to the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	plot       string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLimiter overrides the request limiter. A nil limiter disables pacing.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithPlot selects the "short" or "full" plot variant.
func WithPlot(plot string) Option {
	return func(c *Client) {
		if plot = strings.ToLower(strings.TrimSpace(plot)); plot != "" {
			c.plot = plot
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewLimiter builds the token bucket used to pace requests. A non-positive
// rate disables pacing.
func NewLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrUnauthorized
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		plot:       "short",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    NewLimiter(1, 2),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Title looks up a single title by name.
func (c *Client) Title(ctx context.Context, title string) (*Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyQuery
	}
	params := url.Values{}
	params.Set("t", title)
	params.Set("plot", c.plot)
	return c.lookup(ctx, params)
}

// ByID looks up a single title by IMDb identifier (tt1234567).
func (c *Client) ByID(ctx context.Context, imdbID string) (*Movie, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, ErrEmptyQuery
	}
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", c.plot)
	return c.lookup(ctx, params)
}

// Search returns one page of titles matching query.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	params := url.Values{}
	params.Set("s", query)
	if opts.Year > 0 {
		params.Set("y", strconv.Itoa(opts.Year))
	}
	if t := strings.TrimSpace(opts.Type); t != "" {
		params.Set("type", t)
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	var payload searchPayload
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	if err := responseError(payload.Response, payload.Error); err != nil {
		return nil, err
	}
	total, _ := strconv.Atoi(payload.TotalResults)
	return &SearchPage{Results: payload.Search, TotalResults: total, Page: page}, nil
}

func (c *Client) lookup(ctx context.Context, params url.Values) (*Movie, error) {
	var payload Movie
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	if err := responseError(payload.Response, payload.Error); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse omdb url: %w", err)
	}
	params.Set("apikey", c.apiKey)
	params.Set("r", "json")
	endpoint.RawQuery = params.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for omdb rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	// OMDb answers 401 with a JSON error body for bad keys and exhausted quotas.
	if resp.StatusCode == http.StatusUnauthorized {
		var payload searchPayload
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if err := responseError("False", payload.Error); errors.Is(err, ErrRateLimited) {
			return err
		}
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("omdb returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode omdb response: %w", err)
	}
	return nil
}

// responseError maps OMDb's in-band failure signalling onto sentinels.
func responseError(response, message string) error {
	if !strings.EqualFold(strings.TrimSpace(response), "false") {
		return nil
	}
	message = strings.TrimSpace(message)
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "api key"):
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case strings.Contains(lower, "limit reached"):
		return fmt.Errorf("%w: %s", ErrRateLimited, message)
	case message == "":
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	}
}
