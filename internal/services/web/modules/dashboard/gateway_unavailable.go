package dashboard

import (
	"context"

	"github.com/louisbranch/galien/internal/participant"
	apperrors "github.com/louisbranch/galien/internal/services/web/platform/errors"
)

var errGatewayUnavailable = apperrors.EK(apperrors.KindUnavailable, "error.web.message.service_unavailable", "participant store is not configured")

type unavailableGateway struct{}

func (unavailableGateway) GetParticipant(context.Context, string) (participant.Participant, error) {
	return participant.Participant{}, errGatewayUnavailable
}

func (unavailableGateway) ListParticipants(context.Context, participant.Query) ([]participant.Participant, error) {
	return nil, errGatewayUnavailable
}

func (unavailableGateway) RevokeApproval(context.Context, string) error { return errGatewayUnavailable }

func (unavailableGateway) DeleteParticipant(context.Context, string) error {
	return errGatewayUnavailable
}

func (unavailableGateway) QueueEmail(context.Context, string) error { return errGatewayUnavailable }

func (unavailableGateway) UpdateParticipant(context.Context, string, participant.Update) error {
	return errGatewayUnavailable
}
