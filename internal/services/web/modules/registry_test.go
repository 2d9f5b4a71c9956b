package modules

import (
	"testing"
	"time"

	"github.com/louisbranch/galien/internal/registration/drafttoken"
	module "github.com/louisbranch/galien/internal/services/web/module"
)

func TestDefaultModulesOrder(t *testing.T) {
	t.Parallel()

	got := DefaultModules(Dependencies{})
	want := []string{"public", "registration", "dashboard"}
	if len(got) != len(want) {
		t.Fatalf("module count = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID() != id {
			t.Fatalf("module[%d] id = %q, want %q", i, got[i].ID(), id)
		}
	}
}

func TestDefaultModulesHaveUniquePrefixes(t *testing.T) {
	t.Parallel()

	codec, err := drafttoken.NewCodec([]byte("secret"), time.Hour, nil)
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	seen := map[string]string{}
	for _, m := range DefaultModules(Dependencies{DraftTokens: codec}) {
		mount, err := m.Mount(module.Dependencies{})
		if err != nil {
			t.Fatalf("%s Mount() error = %v", m.ID(), err)
		}
		if mount.Handler == nil {
			t.Fatalf("%s Mount() handler = nil", m.ID())
		}
		if other, ok := seen[mount.Prefix]; ok {
			t.Fatalf("prefix %q mounted by %q and %q", mount.Prefix, other, m.ID())
		}
		seen[mount.Prefix] = m.ID()
	}
}

func TestUnconfiguredModulesReportUnhealthy(t *testing.T) {
	t.Parallel()

	for _, m := range DefaultModules(Dependencies{}) {
		reporter, ok := m.(module.HealthReporter)
		if !ok {
			continue
		}
		if reporter.Healthy() {
			t.Fatalf("%s Healthy() = true without collaborators", m.ID())
		}
	}
}
