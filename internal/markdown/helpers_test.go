package markdown

import (
	"slices"
	"strings"
	"testing"
)

func TestBoldToTags(t *testing.T) {
	cases := map[string]string{
		"**Term**: definition":         "<b>Term</b>: definition",
		"no emphasis":                  "no emphasis",
		"**a** and **b**":              "<b>a</b> and <b>b</b>",
		"unpaired ** marker":           "unpaired ** marker",
		"****":                         "<b></b>",
		"x **bold with * star** after": "x <b>bold with * star</b> after",
	}

	for input, want := range cases {
		if got := BoldToTags(input); got != want {
			t.Fatalf("BoldToTags(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestStripBold(t *testing.T) {
	if got := StripBold("**Key** Points"); got != "Key Points" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestSpans(t *testing.T) {
	got := Spans("<b>Term</b>: definition with a < b")
	want := []Span{
		{Text: "Term", Bold: true},
		{Text: ": definition with a < b", Bold: false},
	}

	if !slices.Equal(got, want) {
		t.Fatalf("unexpected spans: %#v", got)
	}
}

func TestSpansPlainText(t *testing.T) {
	got := Spans("plain")
	if len(got) != 1 || got[0].Text != "plain" || got[0].Bold {
		t.Fatalf("unexpected spans: %#v", got)
	}

	if spans := Spans(""); len(spans) != 0 {
		t.Fatalf("expected no spans for empty markup, got %#v", spans)
	}
}

func TestToHTML(t *testing.T) {
	html, err := ToHTML("## Key Points\n\n* **Term**: definition\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"<h2>Key Points</h2>", "<strong>Term</strong>: definition"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %q", want, html)
		}
	}

	if strings.Contains(html, "<script>") {
		t.Fatalf("expected raw HTML to be dropped, got %q", html)
	}
}
