// Package detail fetches parcel attribute records from the details API.
// Results are typed values, never raised errors: the selection controller
// always has a deterministic panel state to render.
package detail

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/duraiaravindh/parcel-landscore/models"
)

type Status int

const (
	Found Status = iota
	NotFound
	TransportError
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "transport_error"
	}
}

// FetchResult carries the outcome of a single lookup. Record is non-nil
// only when Status is Found. HTTPStatus and Message describe transport
// failures for logging and user alerts.
type FetchResult struct {
	Status     Status
	Record     *models.ParcelDetail
	HTTPStatus int
	Message    string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

type detailEnvelope struct {
	Details *models.ParcelDetail `json:"details"`
}

// FetchDetails looks an identifier up on /api/details/{id}. A null details
// body is a valid NotFound outcome, not an error.
func (c *Client) FetchDetails(id string) FetchResult {
	return c.get("/api/details/" + url.PathEscape(id))
}

// FetchParcel is the search-path lookup against /api/parcels/{id}.
func (c *Client) FetchParcel(id string) FetchResult {
	return c.get("/api/parcels/" + url.PathEscape(id))
}

func (c *Client) get(path string) FetchResult {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return FetchResult{Status: TransportError, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return FetchResult{
			Status:     TransportError,
			HTTPStatus: resp.StatusCode,
			Message:    fmt.Sprintf("details api returned %d: %s", resp.StatusCode, body),
		}
	}

	var envelope detailEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return FetchResult{
			Status:     TransportError,
			HTTPStatus: resp.StatusCode,
			Message:    "bad details payload: " + err.Error(),
		}
	}
	if envelope.Details == nil {
		return FetchResult{Status: NotFound, HTTPStatus: resp.StatusCode}
	}
	return FetchResult{Status: Found, Record: envelope.Details, HTTPStatus: resp.StatusCode}
}
