package ui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/metrics"
	"charlesfind/safaritracker/internal/models/dtos"
	"charlesfind/safaritracker/internal/models/dtos/responses"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
	"charlesfind/safaritracker/internal/providers"
	"charlesfind/safaritracker/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu        sync.Mutex
	records   []gormModels.Sighting
	selectErr error
	insertErr error
	inserts   int
}

func (s *fakeStore) Select(_ context.Context, query providers.SelectQuery) ([]gormModels.Sighting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectErr != nil {
		return nil, s.selectErr
	}
	out := append([]gormModels.Sighting(nil), s.records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ObservedAt.After(out[j].ObservedAt) })
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (s *fakeStore) Insert(_ context.Context, sighting *gormModels.Sighting) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	if s.insertErr != nil {
		return "", s.insertErr
	}
	sighting.ID = "new"
	s.records = append(s.records, *sighting)
	return sighting.ID, nil
}

func (s *fakeStore) Ping(context.Context) error { return nil }
func (s *fakeStore) GetProviderType() string    { return "fake" }

func seeded() *fakeStore {
	now := time.Now()
	location := "Mara River crossing"
	return &fakeStore{records: []gormModels.Sighting{
		{ID: "1", Species: "Lion", ReporterFirstName: "John", ReporterLastName: "Kamau", Status: constants.StatusNormal, ObservedAt: now.Add(-1 * time.Minute)},
		{ID: "2", Species: "Elephant", ReporterFirstName: "Sarah", ReporterLastName: "Wanjiku", Status: constants.StatusUrgent, LocationDescription: &location, ObservedAt: now.Add(-10 * time.Minute)},
		{ID: "3", Species: "Leopard", ReporterFirstName: "Peter", ReporterLastName: "Otieno", Status: constants.StatusNormal, ObservedAt: now.Add(-20 * time.Minute)},
		{ID: "4", Species: "Cheetah", ReporterFirstName: "Grace", ReporterLastName: "Achieng", Status: constants.StatusNormal, ObservedAt: now.Add(-3 * time.Hour)},
	}}
}

func newTestHandler(t *testing.T, store *fakeStore) *UIHandler {
	t.Helper()
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	logger := zap.NewNop()
	h, err := NewUIHandler(
		services.NewFeedService(store, reg, logger),
		services.NewReportService(store, nil, reg, logger),
		services.NewStatsService(services.NewStoreStatsSource(store), common.NewCacheService(time.Minute, time.Minute), time.Minute, reg, logger),
		services.NewProfileService(services.NewStoreStatsSource(store), logger),
		logger,
	)
	require.NoError(t, err)
	return h
}

func TestHomeHandler_ShowsPlaceholdersAndFlash(t *testing.T) {
	h := newTestHandler(t, seeded())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: url.QueryEscape(reportSuccessMessage)})
	rec := httptest.NewRecorder()
	h.HomeHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `hx-get="/home/feed"`)
	assert.Contains(t, body, `aria-busy="true"`)
	assert.Contains(t, body, "Sighting reported. Thank you!")
	assert.NotContains(t, body, "No sightings")

	// the flash is cleared once shown
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestHomeFeedHandler_RecentThreeAndStats(t *testing.T) {
	h := newTestHandler(t, seeded())

	rec := httptest.NewRecorder()
	h.HomeFeedHandler(rec, httptest.NewRequest(http.MethodGet, "/home/feed", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Lion")
	assert.Contains(t, body, "Elephant")
	assert.Contains(t, body, "Leopard")
	assert.NotContains(t, body, "Cheetah")
	assert.Contains(t, body, "URGENT")
	assert.Contains(t, body, "Mara River crossing")
	assert.Contains(t, body, "Active guides")
}

func TestHomeFeedHandler_FailureIsNotEmpty(t *testing.T) {
	store := seeded()
	store.selectErr = errors.New("store offline")
	h := newTestHandler(t, store)

	rec := httptest.NewRecorder()
	h.HomeFeedHandler(rec, httptest.NewRequest(http.MethodGet, "/home/feed", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Couldn't load sightings.")
	assert.NotContains(t, body, "No sightings")
	assert.Contains(t, body, "Stats unavailable")
}

func TestActivityListHandler_Filters(t *testing.T) {
	h := newTestHandler(t, seeded())

	tests := []struct {
		name     string
		query    string
		contains []string
		excludes []string
	}{
		{"all", "", []string{"Lion", "Elephant", "Leopard", "Cheetah"}, nil},
		{"search species", "q=LEO", []string{"Leopard"}, []string{"Lion", "Elephant"}},
		{"search location", "q=river", []string{"Elephant"}, []string{"Lion", "Leopard"}},
		{"species filter", "species=Cheetah", []string{"Cheetah"}, []string{"Lion"}},
		{"no match", "q=rhino", []string{"No sightings match your search"}, []string{"Lion"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ActivityListHandler(rec, httptest.NewRequest(http.MethodGet, "/activity/list?"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestActivityHandler_KeepsFilterValues(t *testing.T) {
	h := newTestHandler(t, seeded())

	rec := httptest.NewRecorder()
	h.ActivityHandler(rec, httptest.NewRequest(http.MethodGet, "/activity?q=mara&species=Lion", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="mara"`)
	assert.Contains(t, body, `<option value="Lion" selected>`)
}

func postForm(values url.Values, target string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestReportFormHandler_StartsDisabled(t *testing.T) {
	h := newTestHandler(t, &fakeStore{})

	rec := httptest.NewRecorder()
	h.ReportFormHandler(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `type="submit" disabled`)
	assert.Contains(t, rec.Body.String(), "Urgent: Fighting/Eating")
	assert.NotContains(t, rec.Body.String(), "poaching")
}

func TestReportCheckHandler(t *testing.T) {
	h := newTestHandler(t, &fakeStore{})

	rec := httptest.NewRecorder()
	h.ReportCheckHandler(rec, postForm(url.Values{"species": {"Lion"}}, "/report/check"))
	assert.Contains(t, rec.Body.String(), `type="submit" disabled`)

	rec = httptest.NewRecorder()
	h.ReportCheckHandler(rec, postForm(url.Values{
		"species":             {"Lion"},
		"reporter_first_name": {"John"},
		"reporter_last_name":  {"Kamau"},
	}, "/report/check"))
	assert.NotContains(t, rec.Body.String(), `type="submit" disabled`)
}

func TestReportSubmitHandler_SuccessRedirectsWithFlash(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(t, store)

	rec := httptest.NewRecorder()
	h.ReportSubmitHandler(rec, postForm(url.Values{
		"species":             {"Rhino"},
		"reporter_first_name": {"John"},
		"reporter_last_name":  {"Kamau"},
		"urgent":              {"1"},
	}, "/report"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var flash string
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie {
			flash, _ = url.QueryUnescape(c.Value)
		}
	}
	assert.Equal(t, reportSuccessMessage, flash)

	require.Len(t, store.records, 1)
	assert.Equal(t, constants.StatusUrgent, store.records[0].Status)
}

func TestReportSubmitHandler_ValidationKeepsValues(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(t, store)

	rec := httptest.NewRecorder()
	h.ReportSubmitHandler(rec, postForm(url.Values{
		"species":            {"Buffalo"},
		"reporter_last_name": {"Kamau"},
	}, "/report"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="Buffalo"`)
	assert.Contains(t, body, "reporter first name")
	assert.Equal(t, 0, store.inserts)
}

func TestReportSubmitHandler_StoreFailureShowsBanner(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("insert rejected")}
	h := newTestHandler(t, store)

	rec := httptest.NewRecorder()
	h.ReportSubmitHandler(rec, postForm(url.Values{
		"species":             {"Lion"},
		"reporter_first_name": {"John"},
		"reporter_last_name":  {"Kamau"},
		"notes":               {"Pride of 5"},
	}, "/report"))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="submit-error"`)
	assert.Contains(t, body, `value="Lion"`)
	assert.Contains(t, body, "Pride of 5")
	assert.Equal(t, 1, store.inserts)
}

func TestMapMarkersHandler(t *testing.T) {
	h := newTestHandler(t, seeded())

	rec := httptest.NewRecorder()
	h.MapMarkersHandler(rec, httptest.NewRequest(http.MethodGet, "/map/markers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body responses.APIResponse[dtos.MapMarkersResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Data)
	assert.Equal(t, [2]float64{constants.ReserveLatitude, constants.ReserveLongitude}, body.Data.Center)
	require.Len(t, body.Data.Markers, 4)
	assert.Equal(t, "Lion", body.Data.Markers[0].Species)
	assert.True(t, body.Data.Markers[1].IsUrgent)
	assert.Equal(t, "Sarah Wanjiku", body.Data.Markers[1].Reporter)
}

func TestMapHandler_RendersCenter(t *testing.T) {
	h := newTestHandler(t, seeded())

	rec := httptest.NewRecorder()
	h.MapHandler(rec, httptest.NewRequest(http.MethodGet, "/map", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "leaflet")
	assert.Contains(t, rec.Body.String(), `data-zoom="12"`)
}

func TestProfileHandler_FormOnlyWithoutName(t *testing.T) {
	h := newTestHandler(t, seeded())

	rec := httptest.NewRecorder()
	h.ProfileHandler(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Enter your name to see your statistics")
	assert.NotContains(t, body, "Total sightings")
	assert.Contains(t, body, `href="/profile" class="py-3 text-amber-700 font-semibold"`)
}

func TestProfileHandler_ShowsGuideStats(t *testing.T) {
	store := seeded()
	store.records = append(store.records, gormModels.Sighting{
		ID: "5", Species: "Buffalo", ReporterFirstName: "John", ReporterLastName: "Kamau",
		Status: constants.StatusUrgent, ObservedAt: time.Now().Add(-30 * time.Minute),
	})
	h := newTestHandler(t, store)

	rec := httptest.NewRecorder()
	h.ProfileHandler(rec, httptest.NewRequest(http.MethodGet, "/profile?first_name=john&last_name=kamau", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Total sightings")
	assert.Contains(t, body, "Recent activity")
	assert.Contains(t, body, "Lion")
	assert.Contains(t, body, "Buffalo")
	assert.NotContains(t, body, "Elephant")
	assert.Contains(t, body, `<p class="text-2xl font-bold">2</p><p class="text-xs">Total sightings</p>`)
	assert.Contains(t, body, `<p class="text-2xl font-bold">1</p><p class="text-xs">Urgent reports</p>`)
}

func TestProfileHandler_MissingLastName(t *testing.T) {
	h := newTestHandler(t, seeded())

	rec := httptest.NewRecorder()
	h.ProfileHandler(rec, httptest.NewRequest(http.MethodGet, "/profile?first_name=John", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter both your first and last name")
	assert.Contains(t, rec.Body.String(), `value="John"`)
}

func TestProfileHandler_StoreFailure(t *testing.T) {
	h := newTestHandler(t, &fakeStore{selectErr: errors.New("offline")})

	rec := httptest.NewRecorder()
	h.ProfileHandler(rec, httptest.NewRequest(http.MethodGet, "/profile?first_name=John&last_name=Kamau", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "load your statistics")
	assert.NotContains(t, rec.Body.String(), "Total sightings")
}
