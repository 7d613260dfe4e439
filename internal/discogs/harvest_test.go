package discogs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarvester_DeduplicatesAcrossPageBoundaries(t *testing.T) {
	// The API occasionally re-serves an item on the next page; the pipeline
	// must collapse it to one record
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		var releases []map[string]any
		if page == 1 {
			releases = []map[string]any{
				{"id": 1, "basic_information": map[string]any{"title": "One"}},
				{"id": 2, "basic_information": map[string]any{"title": "Two"}},
			}
		} else {
			releases = []map[string]any{
				{"id": 2, "basic_information": map[string]any{"title": "Two again"}},
				{"id": 3, "basic_information": map[string]any{"title": "Three"}},
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"pagination": map[string]any{"page": page, "pages": 2, "per_page": 200, "items": 4},
			"releases":   releases,
		})
	}))
	defer server.Close()

	harvester := NewHarvester(NewClient(server.URL, testCredentials()))

	items, err := harvester.Harvest(context.Background(), ResourceCollection)

	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestHarvester_PropagatesFetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	harvester := NewHarvester(NewClient(server.URL, testCredentials()))

	_, err := harvester.Harvest(context.Background(), ResourceCollection)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
}
