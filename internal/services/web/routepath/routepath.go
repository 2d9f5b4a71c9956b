// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root     = "/"
	Health   = "/up"
	Metrics  = "/metrics"
	Static   = "/static/"
	Register = "/register"
	// RegisterComplete is where a successful submission lands.
	RegisterComplete = "/register/complete"
	RegisterPrefix   = "/register/"

	Dashboard       = "/dashboard"
	DashboardPrefix = "/dashboard/"

	ParticipantPattern       = DashboardPrefix + "{slug}/{participantID}"
	ParticipantEditPattern   = DashboardPrefix + "{slug}/{participantID}/edit"
	ParticipantEmailPattern  = DashboardPrefix + "{slug}/{participantID}/email"
	ParticipantRevokePattern = DashboardPrefix + "{slug}/{participantID}/revoke"
	ParticipantDeletePattern = DashboardPrefix + "{slug}/{participantID}/delete"

	// DefaultSlug names the event when a request carries none.
	DefaultSlug = "main"
	// SlugParam selects the event on the dashboard list.
	SlugParam = "slug"
	// FilterParam carries the AIP-160 participant filter.
	FilterParam = "filter"
)

// DashboardList returns the participant list for slug.
func DashboardList(slug string) string {
	return Dashboard + "?" + url.Values{SlugParam: {normalizeSlug(slug)}}.Encode()
}

// Participant returns the participant detail page.
func Participant(slug string, participantID string) string {
	return DashboardPrefix + escapeSegment(normalizeSlug(slug)) + "/" + escapeSegment(participantID)
}

func ParticipantEdit(slug string, participantID string) string {
	return Participant(slug, participantID) + "/edit"
}

func ParticipantEmail(slug string, participantID string) string {
	return Participant(slug, participantID) + "/email"
}

func ParticipantRevoke(slug string, participantID string) string {
	return Participant(slug, participantID) + "/revoke"
}

func ParticipantDelete(slug string, participantID string) string {
	return Participant(slug, participantID) + "/delete"
}

// Location is the part of a URL that decides which nav link is active.
type Location struct {
	Path string
	// Hash includes the leading "#" when present.
	Hash string
}

// IsActive reports whether a nav link should be highlighted for loc.
//
// Links with a fragment match only when both path and fragment match. The
// root path never matches while a fragment is present, so "/" is not lit up
// together with an in-page "/#section" link.
func IsActive(linkPath string, loc Location) bool {
	linkPath = strings.TrimSpace(linkPath)
	if linkPath == "" {
		return false
	}
	if idx := strings.Index(linkPath, "#"); idx >= 0 {
		path := linkPath[:idx]
		if path == "" {
			path = Root
		}
		return path == normalizePath(loc.Path) && linkPath[idx:] == loc.Hash
	}
	if linkPath == Root && loc.Hash != "" {
		return false
	}
	return linkPath == normalizePath(loc.Path)
}

// Segments is a path split on "/" with empty parts removed.
type Segments []string

// Parse splits path into segments.
func Parse(path string) Segments {
	parts := strings.Split(path, "/")
	out := make(Segments, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Slug returns the event slug of a /dashboard/<slug>/... path.
func (s Segments) Slug() string {
	if len(s) < 2 || s[0] != "dashboard" {
		return ""
	}
	return s[1]
}

// ParticipantID returns the participant id of a /dashboard/<slug>/<id>
// path, or "" when the path has no id segment.
func (s Segments) ParticipantID() string {
	if len(s) < 3 || s[0] != "dashboard" {
		return ""
	}
	return s[2]
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return Root
	}
	return path
}

func normalizeSlug(slug string) string {
	if slug = strings.TrimSpace(slug); slug == "" {
		return DefaultSlug
	}
	return slug
}

func escapeSegment(value string) string {
	return url.PathEscape(strings.TrimSpace(value))
}
