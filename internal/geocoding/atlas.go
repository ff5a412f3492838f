// Package geocoding resolves Dutch postcode and house number pairs to a
// point using the Atlas search API.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/amsterdam/sensorregister/internal/logging"
	"github.com/amsterdam/sensorregister/internal/models"
)

const (
	DefaultPostcodeURL = "https://api.data.amsterdam.nl/atlas/search/postcode"
	DefaultAddressURL  = "https://api.data.amsterdam.nl/atlas/search/adres"

	component = "geocoding"
	maxPages  = 50
)

type Config struct {
	PostcodeURL       string
	AddressURL        string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client wraps the Atlas postcode and address search endpoints.
type Client struct {
	postcodeURL string
	addressURL  string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.PostcodeURL == "" {
		cfg.PostcodeURL = DefaultPostcodeURL
	}
	if cfg.AddressURL == "" {
		cfg.AddressURL = DefaultAddressURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Client{
		postcodeURL: strings.TrimRight(cfg.PostcodeURL, "/"),
		addressURL:  strings.TrimRight(cfg.AddressURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// PostcodeSearchError means no address matched the postcode and house
// number. Err is set when the search itself failed.
type PostcodeSearchError struct {
	Postcode    string
	HouseNumber string
	Err         error
}

func (e *PostcodeSearchError) Error() string {
	msg := fmt.Sprintf("Ongeldige postcode (%s) / huisnummer (%s)", e.Postcode, e.HouseNumber)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PostcodeSearchError) Unwrap() error {
	return e.Err
}

type searchResponse struct {
	Results []searchResult `json:"results"`
	Links   struct {
		Next struct {
			Href *string `json:"href"`
		} `json:"next"`
	} `json:"_links"`
}

type searchResult struct {
	Naam       string    `json:"naam"`
	Postcode   string    `json:"postcode"`
	Huisnummer any       `json:"huisnummer"`
	Centroid   []float64 `json:"centroid"`
}

// NormalizePostcode strips spaces and upper-cases a postcode.
func NormalizePostcode(postcode string) string {
	return strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
}

// Resolve returns the centroid of the address with the given postcode and
// house number. Address search is fuzzy, so pages are followed until a
// result matches both exactly.
func (c *Client) Resolve(ctx context.Context, postcode, houseNumber string) (models.Point, error) {
	houseNumber = strings.TrimSpace(houseNumber)
	fail := func(err error) (models.Point, error) {
		return models.Point{}, &PostcodeSearchError{Postcode: postcode, HouseNumber: houseNumber, Err: err}
	}

	normalized := NormalizePostcode(postcode)
	data, err := c.search(ctx, c.postcodeURL+"/?q="+url.QueryEscape(normalized))
	if err != nil {
		return fail(err)
	}
	if len(data.Results) == 0 || data.Results[0].Naam == "" {
		return fail(nil)
	}

	next := c.addressURL + "/?q=" + url.QueryEscape(strings.ToLower(data.Results[0].Naam)+" "+houseNumber)
	for page := 0; next != "" && page < maxPages; page++ {
		data, err := c.search(ctx, next)
		if err != nil {
			return fail(err)
		}
		if len(data.Results) == 0 {
			break
		}
		for _, r := range data.Results {
			if len(r.Centroid) < 2 {
				return fail(nil)
			}
			if r.Postcode == normalized && formatNumber(r.Huisnummer) == houseNumber {
				return models.Point{Longitude: r.Centroid[0], Latitude: r.Centroid[1]}, nil
			}
		}
		next = ""
		if data.Links.Next.Href != nil {
			next = *data.Links.Next.Href
		}
	}
	return fail(nil)
}

func (c *Client) search(ctx context.Context, u string) (*searchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	logging.LogRequest(ctx, component, http.MethodGet, u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.LogError(ctx, component, "search", err)
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned HTTP %d", resp.StatusCode)
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	logging.LogResponse(ctx, component, resp.StatusCode, time.Since(start), len(data.Results))
	return &data, nil
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return strings.TrimSpace(n)
	case nil:
		return ""
	default:
		return fmt.Sprint(n)
	}
}
