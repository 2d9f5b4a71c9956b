package registration

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/registration"
	webtemplates "github.com/louisbranch/galien/internal/services/web/templates"
)

// Form intents.
const (
	intentNext     = "next"
	intentPrevious = "previous"
	intentSubmit   = "submit"
)

// parseIntent returns the button the applicant pressed. An empty intent is
// treated as next so pressing Enter in a field moves forward.
func parseIntent(form url.Values) (string, bool) {
	switch intent := strings.ToLower(strings.TrimSpace(form.Get(webtemplates.FieldIntent))); intent {
	case "":
		return intentNext, true
	case intentNext, intentPrevious, intentSubmit:
		return intent, true
	default:
		return "", false
	}
}

// parseStep returns the step the form was rendered for.
func parseStep(form url.Values) (int, bool) {
	step, err := strconv.Atoi(strings.TrimSpace(form.Get(webtemplates.FieldStep)))
	if err != nil {
		return 0, false
	}
	return step, true
}

// parseApplication reads every known field. The workflow merges only the
// fields owned by the current step.
func parseApplication(form url.Values) registration.Application {
	kind, ok := participant.ParseType(form.Get(webtemplates.FieldType))
	if !ok {
		kind = participant.Type(strings.TrimSpace(form.Get(webtemplates.FieldType)))
	}
	return registration.Application{
		FirstName:     form.Get(webtemplates.FieldFirstName),
		LastName:      form.Get(webtemplates.FieldLastName),
		Email:         form.Get(webtemplates.FieldEmail),
		Phone:         form.Get(webtemplates.FieldPhone),
		Organization:  form.Get(webtemplates.FieldOrg),
		Country:       form.Get(webtemplates.FieldCountry),
		Type:          kind,
		AcceptedTerms: checked(form.Get(webtemplates.FieldAcceptTerms)),
	}
}

func checked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
