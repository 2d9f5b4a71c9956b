package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Health != "/up" {
		t.Fatalf("Health = %q", Health)
	}
	if Register != "/register" {
		t.Fatalf("Register = %q", Register)
	}
	if Dashboard != "/dashboard" {
		t.Fatalf("Dashboard = %q", Dashboard)
	}
}

func TestParticipantBuilders(t *testing.T) {
	t.Parallel()

	const id = "12345678-abcd-efgh-ijkl-123456789012"
	tests := []struct {
		got  string
		want string
	}{
		{got: Participant("main", id), want: "/dashboard/main/" + id},
		{got: Participant("", id), want: "/dashboard/main/" + id},
		{got: ParticipantEdit("congres", id), want: "/dashboard/congres/" + id + "/edit"},
		{got: ParticipantEmail("congres", id), want: "/dashboard/congres/" + id + "/email"},
		{got: ParticipantRevoke("congres", id), want: "/dashboard/congres/" + id + "/revoke"},
		{got: ParticipantDelete("congres", id), want: "/dashboard/congres/" + id + "/delete"},
		{got: Participant("a b", "x/y"), want: "/dashboard/a%20b/x%2Fy"},
		{got: DashboardList("congres"), want: "/dashboard?slug=congres"},
		{got: DashboardList(" "), want: "/dashboard?slug=main"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("path = %q, want %q", tc.got, tc.want)
		}
	}
}

func TestIsActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		link string
		loc  Location
		want bool
	}{
		{name: "exact path", link: "/register", loc: Location{Path: "/register"}, want: true},
		{name: "different path", link: "/register", loc: Location{Path: "/dashboard"}, want: false},
		{name: "prefix is not a match", link: "/register", loc: Location{Path: "/register/complete"}, want: false},
		{name: "root without hash", link: "/", loc: Location{Path: "/"}, want: true},
		{name: "empty path is root", link: "/", loc: Location{}, want: true},
		{name: "root with hash is never active", link: "/", loc: Location{Path: "/", Hash: "#about"}, want: false},
		{name: "hash link needs both", link: "/#about", loc: Location{Path: "/", Hash: "#about"}, want: true},
		{name: "hash link wrong hash", link: "/#about", loc: Location{Path: "/", Hash: "#faq"}, want: false},
		{name: "hash link wrong path", link: "/register#terms", loc: Location{Path: "/", Hash: "#terms"}, want: false},
		{name: "hash link without location hash", link: "/#about", loc: Location{Path: "/"}, want: false},
		{name: "bare hash is root", link: "#about", loc: Location{Path: "/", Hash: "#about"}, want: true},
		{name: "blank link", link: " ", loc: Location{Path: "/"}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsActive(tc.link, tc.loc); got != tc.want {
				t.Fatalf("IsActive(%q, %+v) = %v, want %v", tc.link, tc.loc, got, tc.want)
			}
		})
	}
}

func TestParseSegments(t *testing.T) {
	t.Parallel()

	segments := Parse("/dashboard/congres/12345678-abcd-efgh-ijkl-123456789012/")
	if len(segments) != 3 {
		t.Fatalf("len(segments) = %d, want 3", len(segments))
	}
	if got := segments.Slug(); got != "congres" {
		t.Fatalf("Slug() = %q, want congres", got)
	}
	if got := segments.ParticipantID(); got != "12345678-abcd-efgh-ijkl-123456789012" {
		t.Fatalf("ParticipantID() = %q", got)
	}
	if got := Parse("/dashboard/congres").ParticipantID(); got != "" {
		t.Fatalf("ParticipantID() without id = %q, want empty", got)
	}
	if got := Parse("/register/a/b").ParticipantID(); got != "" {
		t.Fatalf("ParticipantID() outside dashboard = %q, want empty", got)
	}
	if got := Parse("//"); len(got) != 0 {
		t.Fatalf("Parse(//) = %v, want empty", got)
	}
}
