package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdeneef/discodash/internal/database"
	"github.com/sdeneef/discodash/internal/database/collection"
	"github.com/sdeneef/discodash/internal/entities"
	"github.com/sdeneef/discodash/internal/facts"
	"github.com/sdeneef/discodash/internal/importer"
)

type fakeCollection struct {
	randomItem  *entities.CollectionItem
	randomErr   error
	lastFormat  entities.FormatType
	recentItems []entities.CollectionItem
	lastCount   int
	byArtist    []entities.CollectionItem
	byGenre     []entities.CollectionItem
	byStyle     []entities.CollectionItem
}

func (f *fakeCollection) Random(format entities.FormatType) (*entities.CollectionItem, error) {
	f.lastFormat = format
	return f.randomItem, f.randomErr
}

func (f *fakeCollection) Recent(n int) ([]entities.CollectionItem, error) {
	f.lastCount = n
	return f.recentItems, nil
}

func (f *fakeCollection) AllForArtist(string) ([]entities.CollectionItem, error) {
	return f.byArtist, nil
}

func (f *fakeCollection) AllForGenre(string) ([]entities.CollectionItem, error) {
	return f.byGenre, nil
}

func (f *fakeCollection) AllForStyle(string) ([]entities.CollectionItem, error) {
	return f.byStyle, nil
}

type fakeWantlist struct {
	items []entities.WantlistItem
}

func (f *fakeWantlist) All() ([]entities.WantlistItem, error) { return f.items, nil }

type fakeInfo struct {
	artists []string
}

func (f *fakeInfo) DistinctArtists() ([]string, error) { return f.artists, nil }

type fakeTags struct {
	genres []string
	styles []string
}

func (f *fakeTags) GenreTexts() ([]string, error) { return f.genres, nil }
func (f *fakeTags) StyleTexts() ([]string, error) { return f.styles, nil }

type fakeFacts struct {
	fact string
	err  error
}

func (f *fakeFacts) Fact() (string, error) { return f.fact, f.err }

type fakeStatus struct {
	snapshot *entities.Status
	err      error
}

func (f *fakeStatus) Status() (*entities.Status, error) { return f.snapshot, f.err }

type fakeImporter struct {
	summary *importer.Summary
	err     error
	runs    int
}

func (f *fakeImporter) Run(context.Context) (*importer.Summary, error) {
	f.runs++
	return f.summary, f.err
}

type fakeChecker struct {
	canConnect bool
}

func (f *fakeChecker) CanConnect() bool { return f.canConnect }

type testDeps struct {
	collection *fakeCollection
	wantlist   *fakeWantlist
	info       *fakeInfo
	tags       *fakeTags
	facts      *fakeFacts
	status     *fakeStatus
	importer   *fakeImporter
	checker    *fakeChecker
}

func setupRouter() (*gin.Engine, *testDeps) {
	gin.SetMode(gin.TestMode)

	deps := &testDeps{
		collection: &fakeCollection{},
		wantlist:   &fakeWantlist{},
		info:       &fakeInfo{},
		tags:       &fakeTags{},
		facts:      &fakeFacts{},
		status:     &fakeStatus{},
		importer:   &fakeImporter{},
		checker:    &fakeChecker{canConnect: true},
	}

	router := NewRouter(RouterConfig{
		Collection: deps.collection,
		Wantlist:   deps.wantlist,
		Info:       deps.info,
		Tags:       deps.tags,
		Facts:      deps.facts,
		Status:     deps.status,
		Importer:   deps.importer,
		Checker:    deps.checker,
		Version:    "test",
	})
	return router, deps
}

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestGetRandomItem(t *testing.T) {
	router, deps := setupRouter()
	deps.collection.randomItem = &entities.CollectionItem{Item: entities.Item{
		ReleaseID:   42,
		ReleaseName: "Loveless",
		FormatType:  entities.FormatVinyl,
	}}

	recorder := perform(router, http.MethodGet, "/api/collection/random?format=Vinyl")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, entities.FormatVinyl, deps.collection.lastFormat)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Loveless", body["release_name"])
}

func TestGetRandomItem_InvalidFormat(t *testing.T) {
	router, _ := setupRouter()

	recorder := perform(router, http.MethodGet, "/api/collection/random?format=8-Track")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Contains(t, body["error"], "format must be one of")
}

func TestGetRandomItem_EmptyCollection(t *testing.T) {
	router, deps := setupRouter()
	deps.collection.randomErr = collection.ErrNoItems

	recorder := perform(router, http.MethodGet, "/api/collection/random")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetRecentItems_DefaultCount(t *testing.T) {
	router, deps := setupRouter()
	deps.collection.recentItems = []entities.CollectionItem{
		{Item: entities.Item{ReleaseID: 1, ReleaseName: "Souvlaki", DateAdded: time.Now()}},
	}

	recorder := perform(router, http.MethodGet, "/api/collection/recent")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 5, deps.collection.lastCount)
	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["count"])
}

func TestGetRecentItems_InvalidCount(t *testing.T) {
	router, _ := setupRouter()

	for _, raw := range []string{"0", "-3", "many"} {
		recorder := perform(router, http.MethodGet, "/api/collection/recent?count="+raw)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "count=%s", raw)
	}
}

func TestGetItems_RequiresExactlyOneFilter(t *testing.T) {
	router, _ := setupRouter()

	paths := []string{
		"/api/collection/items",
		"/api/collection/items?artist=Slowdive&genre=Rock",
		"/api/collection/items?artist=Slowdive&style=Shoegaze",
	}
	for _, path := range paths {
		recorder := perform(router, http.MethodGet, path)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, path)
	}
}

func TestGetItems_ByGenre(t *testing.T) {
	router, deps := setupRouter()
	deps.collection.byGenre = []entities.CollectionItem{
		{Item: entities.Item{ReleaseID: 1}},
		{Item: entities.Item{ReleaseID: 2}},
	}

	recorder := perform(router, http.MethodGet, "/api/collection/items?genre=Rock")

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, float64(2), body["count"])
}

func TestGetWantlist(t *testing.T) {
	router, deps := setupRouter()
	deps.wantlist.items = []entities.WantlistItem{
		{Item: entities.Item{ReleaseID: 7, ReleaseName: "Wanted"}},
	}

	recorder := perform(router, http.MethodGet, "/api/wantlist")

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["count"])
}

func TestListEndpoints_UnreachableStore(t *testing.T) {
	router, deps := setupRouter()
	deps.checker.canConnect = false

	for _, path := range []string{"/api/collection/artists", "/api/collection/genres", "/api/collection/styles"} {
		recorder := perform(router, http.MethodGet, path)
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code, path)
	}
}

func TestGetGenres(t *testing.T) {
	router, deps := setupRouter()
	deps.tags.genres = []string{"Electronic", "Rock"}

	recorder := perform(router, http.MethodGet, "/api/collection/genres")

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, []any{"Electronic", "Rock"}, body["values"])
}

func TestGetFact(t *testing.T) {
	router, deps := setupRouter()
	deps.facts.fact = `"Slowdive" has 1 items in the collection, ranking them 2nd among artists`

	recorder := perform(router, http.MethodGet, "/api/fact")

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, deps.facts.fact, body["fact"])
}

func TestGetFact_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unreachable", database.ErrUnreachable, http.StatusServiceUnavailable},
		{"no data", facts.ErrNoData, http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := setupRouter()
			deps.facts.err = tt.err

			recorder := perform(router, http.MethodGet, "/api/fact")

			assert.Equal(t, tt.code, recorder.Code)
		})
	}
}

func TestGetStatus(t *testing.T) {
	router, deps := setupRouter()
	deps.status.snapshot = &entities.Status{
		DatabaseStatus:  entities.DbStatusActive,
		CollectionCount: 4,
		WantlistCount:   1,
		VinylCount:      2,
	}

	recorder := perform(router, http.MethodGet, "/api/status")

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, entities.DbStatusActive, body["database_status"])
	assert.Equal(t, float64(4), body["collection_count"])
}

func TestGetStatus_Disconnected(t *testing.T) {
	router, deps := setupRouter()
	deps.status.snapshot = &entities.Status{DatabaseStatus: entities.DbStatusDisconnected}

	recorder := perform(router, http.MethodGet, "/api/status")

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestRunImport(t *testing.T) {
	router, deps := setupRouter()
	deps.importer.summary = &importer.Summary{CollectionItems: 12, WantlistItems: 3, Genres: 4, Styles: 6}

	recorder := perform(router, http.MethodPost, "/api/import")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, deps.importer.runs)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Data imported!", body["message"])
}

func TestRunImport_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"missing configuration", importer.ErrInvalidConfiguration, http.StatusUnprocessableEntity},
		{"invalid profile", importer.ErrInvalidProfile, http.StatusUnprocessableEntity},
		{"upstream failure", &importer.StageError{Stage: importer.StageCollection, Err: errors.New("status 429")}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := setupRouter()
			deps.importer.err = tt.err

			recorder := perform(router, http.MethodPost, "/api/import")

			assert.Equal(t, tt.code, recorder.Code)
		})
	}
}

func TestRunImport_ReportsStage(t *testing.T) {
	router, deps := setupRouter()
	deps.importer.err = &importer.StageError{
		Stage: importer.StageWantlist,
		Err:   fmt.Errorf("fetching page 2: boom"),
	}

	recorder := perform(router, http.MethodPost, "/api/import")

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, string(importer.StageWantlist), body["stage"])
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter()

	recorder := perform(router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "up", body["status"])
	assert.Equal(t, "ok", body["database"])
}

func TestHealth_UnreachableStore(t *testing.T) {
	router, deps := setupRouter()
	deps.checker.canConnect = false

	recorder := perform(router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "unreachable", body["database"])
}
