package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	// PerPage is the page size used for every list request. The page count
	// from the first response decides how many more pages get fetched.
	PerPage = 200
)

// Resource is one of the two paginated Discogs list resources.
type Resource string

const (
	ResourceCollection Resource = "releases"
	ResourceWantlist   Resource = "wants"
)

// Credentials identify one Discogs account and the token that may read it.
type Credentials struct {
	Username  string
	Token     string
	UserAgent string
}

// Client interfaces with the Discogs API for a single account.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      Credentials
}

// NewClient creates a Discogs API client. baseURL is normally
// https://api.discogs.com and only varies in tests.
func NewClient(baseURL string, creds Credentials) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		creds:   creds,
	}
}

// Pagination is the paging metadata Discogs attaches to every list response.
type Pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

// RawFormat is one entry of a release's formats array.
type RawFormat struct {
	Name string `json:"name"`
	Qty  string `json:"qty"`
	Text string `json:"text"`
}

// RawArtist is one credited artist on a release.
type RawArtist struct {
	Name string `json:"name"`
}

// RawBasicInfo is the nested basic_information block of a raw item.
type RawBasicInfo struct {
	Artists    []RawArtist `json:"artists"`
	Title      string      `json:"title"`
	Year       int         `json:"year"`
	Thumb      string      `json:"thumb"`
	CoverImage string      `json:"cover_image"`
	Genres     []string    `json:"genres"`
	Styles     []string    `json:"styles"`
	Formats    []RawFormat `json:"formats"`
}

// RawItem is one untransformed collection or wantlist entry as served by
// the Discogs API. ID is a pointer so a payload without an id can be told
// apart from id 0.
type RawItem struct {
	ID        *int         `json:"id"`
	DateAdded string       `json:"date_added"`
	BasicInfo RawBasicInfo `json:"basic_information"`
}

// pageEnvelope wraps one list response. Items live under "releases" or
// "wants" depending on the resource.
type pageEnvelope struct {
	Pagination Pagination `json:"pagination"`
	Releases   []RawItem  `json:"releases"`
	Wants      []RawItem  `json:"wants"`
}

func (e *pageEnvelope) itemsFor(resource Resource) []RawItem {
	if resource == ResourceWantlist {
		return e.Wants
	}
	return e.Releases
}

func (c *Client) resourcePath(resource Resource, page int) string {
	switch resource {
	case ResourceWantlist:
		return fmt.Sprintf("%s/users/%s/wants?page=%d&per_page=%d", c.baseURL, c.creds.Username, page, PerPage)
	default:
		return fmt.Sprintf("%s/users/%s/collection/folders/0/releases?page=%d&per_page=%d", c.baseURL, c.creds.Username, page, PerPage)
	}
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Discogs token="+c.creds.Token)
	req.Header.Set("User-Agent", fmt.Sprintf("DiscogsApiApp/1.0 (%s)", c.creds.UserAgent))
	return req, nil
}

// fetchPage retrieves a single page of one list resource. Any non-2xx
// status becomes an UpstreamError carrying the response body.
func (c *Client) fetchPage(ctx context.Context, resource Resource, page int) (*pageEnvelope, error) {
	req, err := c.newRequest(ctx, c.resourcePath(resource, page))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope pageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode page %d: %w", page, err)
	}

	return &envelope, nil
}

// FetchAll retrieves every raw item of one resource across all pages.
// Pages are fetched sequentially: the single rate-limited token should not
// be hammered concurrently, and the page count is only known after the
// first response. A failure on any page fails the whole fetch; no partial
// results are returned.
func (c *Client) FetchAll(ctx context.Context, resource Resource) ([]RawItem, error) {
	first, err := c.fetchPage(ctx, resource, 1)
	if err != nil {
		return nil, err
	}

	allItems := append([]RawItem(nil), first.itemsFor(resource)...)

	for page := first.Pagination.Page + 1; page <= first.Pagination.Pages; page++ {
		envelope, err := c.fetchPage(ctx, resource, page)
		if err != nil {
			return nil, err
		}
		allItems = append(allItems, envelope.itemsFor(resource)...)
	}

	return allItems, nil
}

// Profile is the subset of the Discogs identity response we care about.
// Email is only included when the token actually belongs to the requested
// account, which makes it a usable credential check.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfileIsValid confirms the configured username/token pair is usable by
// requesting the account's own profile and checking for the account-only
// email field.
func (c *Client) ProfileIsValid(ctx context.Context) (bool, error) {
	req, err := c.newRequest(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, c.creds.Username))
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, nil
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return false, fmt.Errorf("failed to decode profile: %w", err)
	}

	return profile.Email != "", nil
}
