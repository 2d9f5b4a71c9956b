package registration

import (
	"strings"

	"github.com/louisbranch/galien/internal/participant"
)

// Step numbers of the registration form.
const (
	StepIdentity    = 1
	StepAffiliation = 2
	StepTerms       = 3

	// StepCount is the number of form steps.
	StepCount = StepTerms
)

// StepInfo describes one form step for rendering.
type StepInfo struct {
	Number   int
	Key      string
	TitleKey string
}

var steps = []StepInfo{
	{Number: StepIdentity, Key: "identity", TitleKey: "registration.step.identity"},
	{Number: StepAffiliation, Key: "affiliation", TitleKey: "registration.step.affiliation"},
	{Number: StepTerms, Key: "terms", TitleKey: "registration.step.terms"},
}

// Steps returns the form steps in order.
func Steps() []StepInfo {
	out := make([]StepInfo, len(steps))
	copy(out, steps)
	return out
}

// StepAt returns the step info for number, or false when out of range.
func StepAt(number int) (StepInfo, bool) {
	if number < 1 || number > len(steps) {
		return StepInfo{}, false
	}
	return steps[number-1], true
}

// Application is the data collected across all steps.
type Application struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Organization  string
	Country       string
	Type          participant.Type
	AcceptedTerms bool
}

// Merge copies the fields owned by step from input into a.
func (a Application) Merge(step int, input Application) Application {
	switch step {
	case StepIdentity:
		a.FirstName = strings.TrimSpace(input.FirstName)
		a.LastName = strings.TrimSpace(input.LastName)
		a.Email = strings.TrimSpace(input.Email)
		a.Phone = strings.TrimSpace(input.Phone)
	case StepAffiliation:
		a.Organization = strings.TrimSpace(input.Organization)
		a.Country = strings.TrimSpace(input.Country)
		a.Type = input.Type
	case StepTerms:
		a.AcceptedTerms = input.AcceptedTerms
	}
	return a
}

// ValidationError is a user-facing validation failure.
type ValidationError struct {
	Step    int
	Field   string
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(step int, field string, key string, message string) error {
	return &ValidationError{Step: step, Field: field, Key: key, Message: message}
}

// ValidateStep checks the fields owned by step.
func (a Application) ValidateStep(step int) error {
	switch step {
	case StepIdentity:
		if a.FirstName == "" {
			return invalid(step, "first_name", "error.web.message.registration_first_name_required", "first name is required")
		}
		if a.LastName == "" {
			return invalid(step, "last_name", "error.web.message.registration_last_name_required", "last name is required")
		}
		if !validEmail(a.Email) {
			return invalid(step, "email", "error.web.message.registration_email_invalid", "a valid email is required")
		}
	case StepAffiliation:
		if a.Country == "" {
			return invalid(step, "country", "error.web.message.registration_country_required", "country is required")
		}
		if _, ok := participant.ParseType(string(a.Type)); !ok || a.Type == "" {
			return invalid(step, "type", "error.web.message.registration_type_invalid", "registration type is invalid")
		}
	case StepTerms:
		if !a.AcceptedTerms {
			return invalid(step, "accept_terms", "error.web.message.registration_terms_required", "terms must be accepted")
		}
	default:
		return invalid(step, "", "error.web.message.registration_step_not_available", "registration step is not available")
	}
	return nil
}

// Validate checks every step in order and returns the first failure.
func (a Application) Validate() error {
	for _, info := range steps {
		if err := a.ValidateStep(info.Number); err != nil {
			return err
		}
	}
	return nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n")
}
