package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/galien/internal/registration"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSubmissionLifecycleUpdatesCollectors(t *testing.T) {
	t.Parallel()

	m := New()
	m.SubmissionStarted()
	if got := testutil.ToFloat64(m.SubmissionsInFlight); got != 1 {
		t.Fatalf("in flight = %v, want 1", got)
	}
	m.SubmissionStopped()
	m.SubmissionFinished(registration.OutcomeFailed, 20*time.Millisecond)
	m.SubmissionFinished(registration.OutcomeInFlight, 0)
	if got := testutil.ToFloat64(m.SubmissionsInFlight); got != 0 {
		t.Fatalf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("failed")); got != 1 {
		t.Fatalf("failed submissions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("in_flight")); got != 1 {
		t.Fatalf("in_flight submissions = %v, want 1", got)
	}
}

func TestStepAndActionCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.StepChanged(1, 2)
	m.StepChanged(1, 2)
	m.ParticipantAction("delete", errors.New("boom"))
	if got := testutil.ToFloat64(m.StepTransitions.WithLabelValues("1", "2")); got != 2 {
		t.Fatalf("step transitions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ParticipantActions.WithLabelValues("delete", "error")); got != 1 {
		t.Fatalf("delete errors = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	t.Parallel()

	m := New()
	m.StepChanged(2, 3)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "galien_registration_step_transitions_total") {
		t.Fatalf("metrics body missing step counter: %s", rr.Body.String())
	}
}
