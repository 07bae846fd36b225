package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  hello   world \n next "); got != "hello world next" {
		t.Errorf("got %q", got)
	}
	if got := CollapseSpaces("   "); got != "" {
		t.Errorf("got %q", got)
	}
}
