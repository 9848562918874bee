package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"charlesfind/safaritracker/internal/constants"
	gormModels "charlesfind/safaritracker/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *PostgRESTStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewPostgRESTStore(server.URL, "test-key", 2*time.Second, zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestPostgRESTSelect_SendsOrderAndLimit(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/sightings", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "observed_at.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, `[
			{"id":"a","species":"Lion","reporter_first_name":"John","reporter_last_name":"Kamau","notes":null,"status":"normal","location_description":null,"latitude":-1.29,"longitude":34.75,"observed_at":"2024-05-01T10:00:00Z"},
			{"id":"b","species":"Elephant","reporter_first_name":"Sarah","reporter_last_name":"Wanjiku","notes":"herd of 12","status":"urgent","location_description":"River crossing","latitude":-1.3,"longitude":34.76,"observed_at":"2024-05-01T09:00:00Z"}
		]`)
	})

	rows, err := store.Select(context.Background(), LatestSightings(3))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID)
	assert.Nil(t, rows[0].Notes)
	require.NotNil(t, rows[1].Notes)
	assert.Equal(t, "herd of 12", *rows[1].Notes)
	assert.True(t, rows[1].IsUrgent())
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), rows[1].ObservedAt.UTC())
}

func TestPostgRESTSelect_NoLimitOmitsParam(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["limit"]
		assert.False(t, present)
		writeJSON(w, http.StatusOK, `[]`)
	})

	rows, err := store.Select(context.Background(), LatestSightings(0))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPostgRESTSelect_InvalidQuery(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an invalid query")
	})

	_, err := store.Select(context.Background(), SelectQuery{Table: "sightings", OrderBy: OrderBy{Column: "notes"}})
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, constants.ErrCodeInvalidDataFormat, storeErr.Code)
}

func TestPostgRESTSelect_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
	}{
		{"unauthorized", http.StatusUnauthorized, constants.ErrCodeInvalidAPIKey},
		{"forbidden", http.StatusForbidden, constants.ErrCodeInvalidAPIKey},
		{"missing table", http.StatusNotFound, constants.ErrCodeTableNotFound},
		{"rate limited", http.StatusTooManyRequests, constants.ErrCodeRateLimited},
		{"bad request", http.StatusBadRequest, constants.ErrCodeInvalidDataFormat},
		{"server error", http.StatusInternalServerError, constants.ErrCodeNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, `{"message":"nope"}`)
			})

			_, err := store.Select(context.Background(), LatestSightings(3))
			var storeErr *StoreError
			require.ErrorAs(t, err, &storeErr)
			assert.Equal(t, tt.code, storeErr.Code)
			assert.Contains(t, storeErr.Details, "nope")
		})
	}
}

func TestPostgRESTSelect_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	store := NewPostgRESTStore(url, "k", time.Second, zap.NewNop())
	_, err := store.Select(context.Background(), LatestSightings(3))

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, constants.ErrCodeNetworkError, storeErr.Code)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestPostgRESTInsert_ReturnsAssignedID(t *testing.T) {
	notes := "Pride of 5 resting"
	observed := time.Date(2024, 5, 1, 13, 0, 0, 0, time.FixedZone("EAT", 3*3600))

	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/sightings", r.URL.Path)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "created_at")
		assert.Equal(t, "Lion", body["species"])
		assert.Equal(t, "Pride of 5 resting", body["notes"])
		assert.Nil(t, body["location_description"])
		assert.Equal(t, "2024-05-01T10:00:00Z", body["observed_at"])

		writeJSON(w, http.StatusCreated, `[{"id":"new-id","species":"Lion"}]`)
	})

	sighting := &gormModels.Sighting{
		Species:           "Lion",
		ReporterFirstName: "John",
		ReporterLastName:  "Kamau",
		Notes:             &notes,
		Status:            constants.StatusNormal,
		Latitude:          -1.2921,
		Longitude:         34.7516,
		ObservedAt:        observed,
	}

	id, err := store.Insert(context.Background(), sighting)
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	assert.Equal(t, "new-id", sighting.ID)
}

func TestPostgRESTInsert_EmptyRepresentationStillSucceeds(t *testing.T) {
	var posts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		writeJSON(w, http.StatusCreated, `[]`)
	}))
	t.Cleanup(server.Close)

	core, logs := observer.New(zap.WarnLevel)
	store := NewPostgRESTStore(server.URL, "test-key", 2*time.Second, zap.New(core))

	sighting := &gormModels.Sighting{Species: "Lion", ObservedAt: time.Now()}
	id, err := store.Insert(context.Background(), sighting)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Empty(t, sighting.ID)
	assert.Equal(t, int32(1), posts.Load())
	assert.Equal(t, 1, logs.FilterMessage("Store accepted insert without returning the record").Len())
}

func TestPostgRESTPing(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id", r.URL.Query().Get("select"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, `[]`)
	})

	assert.NoError(t, store.Ping(context.Background()))
}
