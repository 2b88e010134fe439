package engine

import "testing"

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Chop the onions</p>", "Chop the onions"},
		{"no tags here", "no tags here"},
		{"  <b>bold</b>  ", "bold"},
		{"<div><span>nested</span></div>", "nested"},
		{"", ""},
	}
	for _, tt := range tests {
		got := CleanHTML(tt.input)
		if got != tt.want {
			t.Errorf("CleanHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("short", 100, "..."); got != "short" {
		t.Errorf("TruncateRunes = %q, want %q", got, "short")
	}
	got := TruncateRunes("양파를 썰어주세요", 3, "")
	if got != "양파를" {
		t.Errorf("TruncateRunes = %q, want %q", got, "양파를")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hello" {
		t.Errorf("Truncate = %q, want %q", got, "hello")
	}
	if got := Truncate("short", 100); got != "short" {
		t.Errorf("Truncate = %q, want %q", got, "short")
	}
}
