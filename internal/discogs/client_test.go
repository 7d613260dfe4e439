package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredentials() Credentials {
	return Credentials{
		Username:  "crate-digger",
		Token:     "secret-token",
		UserAgent: "example.org/discodash",
	}
}

func collectionPage(page, pages, perPage, firstID, itemCount int) map[string]any {
	items := make([]map[string]any, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		items = append(items, map[string]any{
			"id":         firstID + i,
			"date_added": "2023-01-02T10:00:00-08:00",
			"basic_information": map[string]any{
				"title": fmt.Sprintf("Release %d", firstID+i),
			},
		})
	}
	return map[string]any{
		"pagination": map[string]any{
			"page":     page,
			"pages":    pages,
			"per_page": perPage,
			"items":    pages * itemCount,
		},
		"releases": items,
	}
}

func TestClient_FetchAll_SinglePage(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "Discogs token=secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "DiscogsApiApp/1.0 (example.org/discodash)", r.Header.Get("User-Agent"))
		assert.Equal(t, "/users/crate-digger/collection/folders/0/releases", r.URL.Path)
		json.NewEncoder(w).Encode(collectionPage(1, 1, 200, 100, 3))
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials())

	items, err := client.FetchAll(context.Background(), ResourceCollection)

	require.NoError(t, err)
	assert.Equal(t, 1, requests)
	require.Len(t, items, 3)
	require.NotNil(t, items[0].ID)
	assert.Equal(t, 100, *items[0].ID)
}

func TestClient_FetchAll_ThreePagesMeansThreeRequests(t *testing.T) {
	var pagesRequested []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pagesRequested = append(pagesRequested, page)
		assert.Equal(t, strconv.Itoa(PerPage), r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode(collectionPage(page, 3, 200, page*1000, 2))
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials())

	items, err := client.FetchAll(context.Background(), ResourceCollection)

	require.NoError(t, err)
	// The first page reports pages=3, so exactly two more follow, in order
	assert.Equal(t, []int{1, 2, 3}, pagesRequested)
	assert.Len(t, items, 6)
}

func TestClient_FetchAll_FailingPageAbortsWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"message": "You are making requests too quickly."}`)
			return
		}
		json.NewEncoder(w).Encode(collectionPage(page, 3, 200, page*1000, 2))
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials())

	items, err := client.FetchAll(context.Background(), ResourceCollection)

	require.Error(t, err)
	assert.Nil(t, items) // no partial results

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "too quickly")
}

func TestClient_FetchAll_Wantlist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/crate-digger/wants", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"pagination": map[string]any{"page": 1, "pages": 1, "per_page": 200, "items": 1},
			"wants": []map[string]any{
				{"id": 55, "basic_information": map[string]any{"title": "Wanted Record"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials())

	items, err := client.FetchAll(context.Background(), ResourceWantlist)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Wanted Record", items[0].BasicInfo.Title)
}

func TestClient_ProfileIsValid(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       bool
	}{
		{
			name:       "status unsuccessful",
			statusCode: http.StatusBadRequest,
			body:       `{"message": "bad request"}`,
			want:       false,
		},
		{
			name:       "token does not match account",
			statusCode: http.StatusOK,
			body:       `{"username": "crate-digger"}`,
			want:       false,
		},
		{
			name:       "token valid",
			statusCode: http.StatusOK,
			body:       `{"username": "crate-digger", "email": "digger@example.org"}`,
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/crate-digger", r.URL.Path)
				w.WriteHeader(tt.statusCode)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewClient(server.URL, testCredentials())

			valid, err := client.ProfileIsValid(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, valid)
		})
	}
}
