package registration

// PrimaryAction is the main form button for the current state.
type PrimaryAction struct {
	LabelKey string
	// Name is the submitted intent: "next" or "submit".
	Name     string
	Disabled bool
}

// PrimaryActionFor picks the main button for flow. A running submission
// replaces the label with a disabled processing state.
func PrimaryActionFor(flow *Flow, submitting bool) PrimaryAction {
	switch {
	case submitting:
		return PrimaryAction{LabelKey: "registration.action.processing", Name: "submit", Disabled: true}
	case flow.CanSubmit():
		return PrimaryAction{LabelKey: "registration.action.submit", Name: "submit"}
	default:
		return PrimaryAction{LabelKey: "registration.action.continue", Name: "next"}
	}
}
