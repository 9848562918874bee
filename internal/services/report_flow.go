package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/metrics"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
	"charlesfind/safaritracker/internal/providers"

	"go.uber.org/zap"
)

type SubmitState string

const (
	SubmitIdle       SubmitState = "idle"
	SubmitSubmitting SubmitState = "submitting"
	SubmitSucceeded  SubmitState = "succeeded"
	SubmitFailed     SubmitState = "failed"
)

// ReportForm holds the values a guide enters on the report screen
type ReportForm struct {
	Species           string
	ReporterFirstName string
	ReporterLastName  string
	Notes             string
	Status            string // empty means normal
}

// MissingFields lists the required fields that are blank after trimming
func (f ReportForm) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(f.Species) == "" {
		missing = append(missing, "species")
	}
	if strings.TrimSpace(f.ReporterFirstName) == "" {
		missing = append(missing, "reporter_first_name")
	}
	if strings.TrimSpace(f.ReporterLastName) == "" {
		missing = append(missing, "reporter_last_name")
	}
	switch f.Status {
	case "", constants.StatusNormal, constants.StatusUrgent:
	default:
		missing = append(missing, "status")
	}
	return missing
}

// ReportService builds report flows sharing one store and notifier
type ReportService struct {
	store    providers.SightingStore
	notifier AlertNotifier
	metrics  *metrics.MetricsRegistry
	logger   *zap.Logger
	now      func() time.Time
}

func NewReportService(
	store providers.SightingStore,
	notifier AlertNotifier,
	reg *metrics.MetricsRegistry,
	logger *zap.Logger,
) *ReportService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ReportService{
		store:    store,
		notifier: notifier,
		metrics:  reg,
		logger:   logger,
		now:      time.Now,
	}
}

// NewFlow starts a report in the Idle state with the given values
func (s *ReportService) NewFlow(form ReportForm) *ReportFlow {
	return &ReportFlow{
		svc:   s,
		form:  form,
		state: SubmitIdle,
	}
}

// ReportFlow is one report screen's submission state machine:
// Idle -> Submitting -> Succeeded | Failed, and Failed -> Submitting on retry.
type ReportFlow struct {
	svc *ReportService

	mu       sync.Mutex
	form     ReportForm
	state    SubmitState
	lastErr  error
	sighting *gormModels.Sighting
}

func (f *ReportFlow) State() SubmitState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *ReportFlow) Form() ReportForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// Err is the error of the last failed submit, if any
func (f *ReportFlow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Sighting is the persisted record after a successful submit
func (f *ReportFlow) Sighting() *gormModels.Sighting {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sighting
}

// SetForm replaces the form values; not allowed mid-submit
func (f *ReportFlow) SetForm(form ReportForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == SubmitSubmitting {
		return ErrSubmitInProgress
	}
	f.form = form
	return nil
}

// CanSubmit drives the submit button's enabled state
func (f *ReportFlow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case SubmitSubmitting, SubmitSucceeded:
		return false
	}
	return len(f.form.MissingFields()) == 0
}

// Submit validates the form and inserts the sighting. A validation failure
// leaves the state untouched and never reaches the store. On store failure
// the flow moves to Failed with the form preserved; calling Submit again
// retries. Succeeded is terminal.
func (f *ReportFlow) Submit(ctx context.Context) (*gormModels.Sighting, error) {
	f.mu.Lock()
	if f.state == SubmitSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if f.state == SubmitSucceeded {
		f.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	if missing := f.form.MissingFields(); len(missing) > 0 {
		f.mu.Unlock()
		f.svc.metrics.SubmissionsTotal.WithLabelValues("invalid", "").Inc()
		return nil, &ValidationError{MissingFields: missing}
	}

	sighting := f.svc.buildSighting(f.form)
	f.state = SubmitSubmitting
	f.lastErr = nil
	f.mu.Unlock()

	id, err := f.svc.store.Insert(ctx, sighting)

	f.mu.Lock()
	if err != nil {
		f.state = SubmitFailed
		f.lastErr = fmt.Errorf("%w: %w", ErrSubmitFailed, err)
		submitErr := f.lastErr
		f.mu.Unlock()

		f.svc.metrics.SubmissionsTotal.WithLabelValues("failed", sighting.Status).Inc()
		f.svc.logger.Error("Failed to submit sighting",
			zap.String("species", sighting.Species),
			zap.String("store", f.svc.store.GetProviderType()),
			zap.Error(err),
		)
		return nil, submitErr
	}

	sighting.ID = id
	f.state = SubmitSucceeded
	f.sighting = sighting
	f.mu.Unlock()

	f.svc.metrics.SubmissionsTotal.WithLabelValues("succeeded", sighting.Status).Inc()
	f.svc.logger.Info("Sighting reported",
		zap.String("id", id),
		zap.String("species", sighting.Species),
		zap.String("status", sighting.Status),
	)

	if sighting.IsUrgent() {
		f.svc.notifyUrgent(ctx, sighting)
	}
	return sighting, nil
}

// buildSighting fills the server-side fields. Coordinates are the fixed
// reserve centre; there is no device location.
func (s *ReportService) buildSighting(form ReportForm) *gormModels.Sighting {
	status := form.Status
	if status == "" {
		status = constants.StatusNormal
	}

	location := constants.ReserveName
	sighting := &gormModels.Sighting{
		Species:             strings.TrimSpace(form.Species),
		ReporterFirstName:   strings.TrimSpace(form.ReporterFirstName),
		ReporterLastName:    strings.TrimSpace(form.ReporterLastName),
		Status:              status,
		LocationDescription: &location,
		Latitude:            constants.ReserveLatitude,
		Longitude:           constants.ReserveLongitude,
		ObservedAt:          s.now().UTC(),
	}
	if notes := strings.TrimSpace(form.Notes); notes != "" {
		sighting.Notes = &notes
	}
	return sighting
}

// notifyUrgent never fails the submission; the record is already stored
func (s *ReportService) notifyUrgent(ctx context.Context, sighting *gormModels.Sighting) {
	if err := s.notifier.NotifyUrgent(ctx, sighting); err != nil {
		s.metrics.UrgentAlertsTotal.WithLabelValues("enqueue", "error").Inc()
		s.logger.Warn("Failed to queue urgent alert",
			zap.String("sighting_id", sighting.ID),
			zap.Error(err),
		)
		return
	}
	s.metrics.UrgentAlertsTotal.WithLabelValues("enqueue", "ok").Inc()
}
