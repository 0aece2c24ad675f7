package ui

import (
	"errors"
	"strings"
	"testing"
)

func TestComposeTitle(t *testing.T) {
	cases := map[string]string{
		"/srv/shop/docker-compose.yml": "shop/docker-compose.yml",
		"docker-compose.yml":           "docker-compose.yml",
		"/compose.yml":                 "compose.yml",
	}
	for path, want := range cases {
		if got := composeTitle(path); got != want {
			t.Fatalf("composeTitle(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestComposeContentReadError(t *testing.T) {
	title, content := composeContent("/x/compose.yml", func(string) ([]byte, error) {
		return nil, errors.New("boom")
	})
	if title != "x/compose.yml" {
		t.Fatalf("unexpected title %q", title)
	}
	if view := content.View(40, 3); !strings.Contains(view, "boom") {
		t.Fatalf("expected error text, got %q", view)
	}
}

func TestTextContentClipsToSize(t *testing.T) {
	c := newTextContent("a\nb\nc\nd")
	view := c.View(5, 2)
	if got := strings.Count(view, "\n") + 1; got != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", got, view)
	}
	if c.View(0, 2) != "" {
		t.Fatalf("expected empty view for zero width")
	}
}

func TestClosedComposeContentStopsFollowingFile(t *testing.T) {
	_, content := composeContent("/srv/shop/compose.yml", func(string) ([]byte, error) {
		return []byte("services: {}"), nil
	})
	tc := content.(*textContent)
	if err := tc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if tc.source != "" {
		t.Fatalf("expected closed content to drop its source, got %q", tc.source)
	}
	if strings.Contains(tc.View(40, 3), "services") {
		t.Fatalf("expected closed content to be empty")
	}
}
