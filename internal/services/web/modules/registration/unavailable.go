package registration

import (
	"context"

	"github.com/louisbranch/galien/internal/registration"
	apperrors "github.com/louisbranch/galien/internal/services/web/platform/errors"
)

var errWorkflowUnavailable = apperrors.EK(apperrors.KindUnavailable, "error.web.message.service_unavailable", "registration is not configured")

type unavailableWorkflow struct{}

func (unavailableWorkflow) LoadOrStart(context.Context, string) (registration.Draft, error) {
	return registration.Draft{}, errWorkflowUnavailable
}

func (unavailableWorkflow) Next(_ context.Context, draft registration.Draft, _ registration.Application) (registration.Draft, error) {
	return draft, errWorkflowUnavailable
}

func (unavailableWorkflow) Previous(_ context.Context, draft registration.Draft, _ registration.Application) (registration.Draft, error) {
	return draft, errWorkflowUnavailable
}

func (unavailableWorkflow) Submit(_ context.Context, draft registration.Draft, _ registration.Application) (string, registration.Draft, error) {
	return "", draft, errWorkflowUnavailable
}

func (unavailableWorkflow) Flow(draft registration.Draft) *registration.Flow {
	return registration.RestoreFlow(registration.FixedSteps(registration.StepCount), draft.Step)
}

func (unavailableWorkflow) IsSubmitting(string) bool { return false }
