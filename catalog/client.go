// Package catalog is a thin HTTP client for the movie-catalog service,
// the external system of record for movie listings.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// CreateMovieRequest is the payload for the catalog's movie creation
// endpoint. URL fields point back at this service's public file routes.
type CreateMovieRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Year        int      `json:"year"`
	Duration    int      `json:"duration"`
	Quality     string   `json:"quality"`
	Rating      float64  `json:"rating"`
	Genres      []string `json:"genres"`
	Tags        []string `json:"tags"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
	PosterURL   string   `json:"poster_url,omitempty"`
	TrailerURL  string   `json:"trailer_url,omitempty"`
	StreamURL   string   `json:"stream_url"`
	DownloadURL string   `json:"download_url"`
}

type createMovieResponse struct {
	ID string `json:"id"`
}

// Error distinguishes "the catalog rejected the request" (4xx) from
// "the catalog couldn't be reached" (transport failure or 5xx). Callers
// roll back either way but the distinction matters for logs.
type Error struct {
	StatusCode  int
	Unreachable bool
	Message     string
}

func (e *Error) Error() string {
	switch {
	case e.Unreachable && e.StatusCode > 0:
		return fmt.Sprintf("catalog unreachable, status %d: %s", e.StatusCode, e.Message)
	case e.Unreachable:
		return "catalog unreachable: " + e.Message
	case e.StatusCode >= 400:
		return fmt.Sprintf("rejected by catalog, status %d: %s", e.StatusCode, e.Message)
	default:
		// A 2xx whose body we couldn't use. Not a rejection and the
		// catalog clearly answered, so it gets its own label
		return fmt.Sprintf("malformed catalog response, status %d: %s", e.StatusCode, e.Message)
	}
}

type Client struct {
	r *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		r: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// CreateMovie registers one movie and returns the catalog's id for it.
// A single attempt, no internal retry.
func (c *Client) CreateMovie(ctx context.Context, req *CreateMovieRequest) (string, error) {
	var out createMovieResponse

	resp, err := c.r.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/movies")
	if err != nil {
		return "", &Error{Unreachable: true, Message: err.Error()}
	}

	if resp.IsError() {
		return "", statusError(resp)
	}

	if out.ID == "" {
		return "", &Error{StatusCode: resp.StatusCode(), Message: "no movie id in response"}
	}

	return out.ID, nil
}

// DeleteMovie removes a previously created entry. Used when ingestion
// fails after the catalog call already succeeded.
func (c *Client) DeleteMovie(ctx context.Context, movieID string) error {
	resp, err := c.r.R().
		SetContext(ctx).
		Delete("/api/movies/" + movieID)
	if err != nil {
		return &Error{Unreachable: true, Message: err.Error()}
	}

	if resp.IsError() {
		return statusError(resp)
	}

	return nil
}

func statusError(resp *resty.Response) *Error {
	return &Error{
		StatusCode:  resp.StatusCode(),
		Unreachable: resp.StatusCode() >= 500,
		Message:     string(resp.Body()),
	}
}
