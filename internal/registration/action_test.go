package registration

import "testing"

func TestPrimaryActionFor(t *testing.T) {
	t.Parallel()

	first := NewFlow(FixedSteps(3))
	if got := PrimaryActionFor(first, false); got.LabelKey != "registration.action.continue" || got.Name != "next" || got.Disabled {
		t.Fatalf("first step action = %+v", got)
	}
	final := RestoreFlow(FixedSteps(3), 3)
	if got := PrimaryActionFor(final, false); got.LabelKey != "registration.action.submit" || got.Name != "submit" {
		t.Fatalf("final step action = %+v", got)
	}
	if got := PrimaryActionFor(final, true); got.LabelKey != "registration.action.processing" || !got.Disabled {
		t.Fatalf("submitting action = %+v", got)
	}
}
