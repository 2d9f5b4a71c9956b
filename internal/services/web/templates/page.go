package templates

import (
	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/services/web/routepath"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Locale       i18n.Locale
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	Toast        *Toast
}

// Toast is a one-time notice shown at the top of the page.
type Toast struct {
	Kind    string
	Message string
}

// Location returns the nav location of the current page. Browsers never send
// the URL fragment, so Hash is empty for server-rendered pages and only path
// matches decide the active link here.
func (p PageContext) Location() routepath.Location {
	return routepath.Location{Path: p.CurrentPath}
}

// NavLink is one entry of the site header.
type NavLink struct {
	Path     string
	LabelKey string
}

// NavLinks returns the header links in display order.
func NavLinks() []NavLink {
	return []NavLink{
		{Path: routepath.Root, LabelKey: "nav.home"},
		{Path: routepath.Register, LabelKey: "nav.register"},
	}
}
