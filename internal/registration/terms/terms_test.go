package terms

import (
	"strings"
	"testing"

	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

func TestHTMLRendersLocalizedTerms(t *testing.T) {
	t.Parallel()

	fr, err := HTML(i18n.LocaleFR)
	if err != nil {
		t.Fatalf("HTML(fr): %v", err)
	}
	if !strings.Contains(fr, "<h2>Conditions de participation</h2>") {
		t.Fatalf("fr terms missing heading: %s", fr)
	}
	en, err := HTML(i18n.LocaleEN)
	if err != nil {
		t.Fatalf("HTML(en): %v", err)
	}
	if !strings.Contains(en, "<strong>accurate</strong>") {
		t.Fatalf("en terms missing emphasis: %s", en)
	}
	if !strings.Contains(en, "<li>") {
		t.Fatalf("en terms missing list: %s", en)
	}
}

func TestRenderSanitizesScripts(t *testing.T) {
	t.Parallel()

	// goldmark drops raw HTML unless unsafe; bluemonday strips the rest.
	html, err := Render(goldmark.New(), bluemonday.UGCPolicy(), []byte("[click](javascript:alert(1))\n\n<script>alert(1)</script>"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "<script") || strings.Contains(html, "javascript:") {
		t.Fatalf("unsafe html survived: %s", html)
	}
}
