package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"charlesfind/safaritracker/internal/constants"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
	"charlesfind/safaritracker/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	calls []*gormModels.Sighting
	err   error
}

func (n *recordingNotifier) NotifyUrgent(ctx context.Context, s *gormModels.Sighting) error {
	n.calls = append(n.calls, s)
	return n.err
}

func validForm() ReportForm {
	return ReportForm{
		Species:           "  Lion ",
		ReporterFirstName: "John",
		ReporterLastName:  "Kamau",
		Notes:             "Pride of 5 resting under acacia",
	}
}

func newTestReportService(store providers.SightingStore, notifier AlertNotifier, now time.Time) *ReportService {
	svc := NewReportService(store, notifier, testMetrics(), zap.NewNop())
	svc.now = fixedClock(now)
	return svc
}

func TestReportFlow_MissingFirstNameNeverCallsStore(t *testing.T) {
	store := &mockSightingStore{
		insertFunc: func(ctx context.Context, s *gormModels.Sighting) (string, error) {
			t.Fatal("insert must not be called when preconditions fail")
			return "", nil
		},
	}
	form := validForm()
	form.ReporterFirstName = "   "
	flow := newTestReportService(store, nil, time.Now()).NewFlow(form)

	assert.False(t, flow.CanSubmit())

	_, err := flow.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidationFailed)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"reporter_first_name"}, vErr.MissingFields)
	assert.Equal(t, SubmitIdle, flow.State())
}

func TestReportForm_MissingFields(t *testing.T) {
	assert.Empty(t, validForm().MissingFields())
	assert.Equal(t,
		[]string{"species", "reporter_first_name", "reporter_last_name"},
		ReportForm{}.MissingFields(),
	)

	bad := validForm()
	bad.Status = "sleeping"
	assert.Equal(t, []string{"status"}, bad.MissingFields())
}

func TestReportFlow_SuccessBuildsRecord(t *testing.T) {
	now := time.Date(2024, 5, 1, 13, 30, 0, 0, time.FixedZone("EAT", 3*3600))
	store := &memoryStore{}
	flow := newTestReportService(store, nil, now).NewFlow(validForm())

	require.True(t, flow.CanSubmit())
	saved, err := flow.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SubmitSucceeded, flow.State())
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Lion", saved.Species)
	assert.Equal(t, constants.StatusNormal, saved.Status)
	assert.Equal(t, constants.ReserveLatitude, saved.Latitude)
	assert.Equal(t, constants.ReserveLongitude, saved.Longitude)
	require.NotNil(t, saved.LocationDescription)
	assert.Equal(t, constants.ReserveName, *saved.LocationDescription)
	require.NotNil(t, saved.Notes)
	assert.Equal(t, "Pride of 5 resting under acacia", *saved.Notes)
	assert.True(t, saved.ObservedAt.Equal(now))
	assert.Equal(t, time.UTC, saved.ObservedAt.Location())
	assert.Same(t, saved, flow.Sighting())

	records, _ := store.Select(context.Background(), providers.LatestSightings(0))
	require.Len(t, records, 1)
	assert.Equal(t, saved.ID, records[0].ID)
}

func TestReportFlow_BlankNotesStoredAsNull(t *testing.T) {
	store := &memoryStore{}
	form := validForm()
	form.Notes = "  "
	saved, err := newTestReportService(store, nil, time.Now()).NewFlow(form).Submit(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved.Notes)
}

func TestReportFlow_InsertFailureKeepsFormAndAddsNothing(t *testing.T) {
	store := &memoryStore{insertErr: &providers.StoreError{Code: constants.ErrCodeNetworkError, Message: "offline"}}
	form := validForm()
	flow := newTestReportService(store, nil, time.Now()).NewFlow(form)

	_, err := flow.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, SubmitFailed, flow.State())
	assert.Equal(t, form, flow.Form())
	assert.ErrorIs(t, flow.Err(), ErrSubmitFailed)

	feed := NewFeed(NewFeedService(store, testMetrics(), zap.NewNop()), 0)
	require.NoError(t, feed.Refresh(context.Background()))
	assert.Empty(t, feed.Snapshot().Records)
}

func TestReportFlow_RetryAfterFailure(t *testing.T) {
	store := &memoryStore{insertErr: errors.New("timeout")}
	flow := newTestReportService(store, nil, time.Now()).NewFlow(validForm())

	_, err := flow.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, SubmitFailed, flow.State())
	require.True(t, flow.CanSubmit())

	store.insertErr = nil
	_, err = flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SubmitSucceeded, flow.State())
	assert.Nil(t, flow.Err())
	assert.Equal(t, 2, store.inserts)
}

func TestReportFlow_SucceededIsTerminal(t *testing.T) {
	store := &memoryStore{}
	flow := newTestReportService(store, nil, time.Now()).NewFlow(validForm())

	first, err := flow.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, SubmitSucceeded, flow.State())
	assert.False(t, flow.CanSubmit())

	again, err := flow.Submit(context.Background())
	require.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Nil(t, again)
	assert.Equal(t, SubmitSucceeded, flow.State())
	assert.Equal(t, first, flow.Sighting())
	assert.Equal(t, 1, store.inserts)

	records, _ := store.Select(context.Background(), providers.LatestSightings(0))
	assert.Len(t, records, 1)
}

func TestReportFlow_AcceptedWithoutIDIsStillSucceeded(t *testing.T) {
	store := &mockSightingStore{
		insertFunc: func(ctx context.Context, s *gormModels.Sighting) (string, error) {
			return "", nil
		},
	}
	notifier := &recordingNotifier{}
	form := validForm()
	form.Status = constants.StatusUrgent
	flow := newTestReportService(store, notifier, time.Now()).NewFlow(form)

	saved, err := flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, saved.ID)
	assert.Equal(t, SubmitSucceeded, flow.State())
	assert.False(t, flow.CanSubmit())
	assert.Len(t, notifier.calls, 1)
}

func TestReportFlow_RejectsSubmitWhileSubmitting(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	store := &mockSightingStore{
		insertFunc: func(ctx context.Context, s *gormModels.Sighting) (string, error) {
			close(entered)
			<-release
			return "id-1", nil
		},
	}
	flow := newTestReportService(store, nil, time.Now()).NewFlow(validForm())

	done := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background())
		done <- err
	}()
	<-entered

	assert.Equal(t, SubmitSubmitting, flow.State())
	assert.False(t, flow.CanSubmit())
	_, err := flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	assert.ErrorIs(t, flow.SetForm(ReportForm{}), ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, SubmitSucceeded, flow.State())
}

func TestReportFlow_UrgentSightingNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	form := validForm()
	form.Status = constants.StatusUrgent

	saved, err := newTestReportService(&memoryStore{}, notifier, time.Now()).NewFlow(form).Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, saved.ID, notifier.calls[0].ID)
}

func TestReportFlow_NormalSightingDoesNotNotify(t *testing.T) {
	notifier := &recordingNotifier{}
	_, err := newTestReportService(&memoryStore{}, notifier, time.Now()).NewFlow(validForm()).Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notifier.calls)
}

func TestReportFlow_AlertFailureStillSucceeds(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("redis down")}
	form := validForm()
	form.Status = constants.StatusUrgent
	flow := newTestReportService(&memoryStore{}, notifier, time.Now()).NewFlow(form)

	_, err := flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SubmitSucceeded, flow.State())
}
