// intent/intent_test.go
package intent

import (
	"regexp"
	"strings"
	"testing"
)

func TestDefaultTableMatch(t *testing.T) {
	table := Default()

	tests := []struct {
		name      string
		text      string
		wantMatch bool
		wantIn    string // substring expected in the reply
	}{
		{
			name:      "menu keyword",
			text:      "menu",
			wantMatch: true,
			wantIn:    "3DBotics courses & pricing",
		},
		{
			name:      "help at end of sentence",
			text:      "I need help",
			wantMatch: true,
			wantIn:    "3DBotics courses & pricing",
		},
		{
			name:      "course inquiry",
			text:      "how much is the basic course?",
			wantMatch: true,
			wantIn:    "Basic (3D modeling)",
		},
		{
			name:      "franchise inquiry",
			text:      "magkano ang franchise?",
			wantMatch: true,
			wantIn:    "printers, toolkits, modules",
		},
		{
			name:      "contact request",
			text:      "can I talk to someone",
			wantMatch: true,
			wantIn:    "John Villamil",
		},
		{
			name:      "case insensitive",
			text:      "FRANCHISE INFO PLEASE",
			wantMatch: true,
			wantIn:    "printers, toolkits, modules",
		},
		{
			name:      "unmatched falls through",
			text:      "what's the weather like",
			wantMatch: false,
		},
		{
			name:      "empty text never matches",
			text:      "",
			wantMatch: false,
		},
		{
			name:      "whitespace only never matches",
			text:      "   \n\t ",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, ok := table.Match(tt.text)
			if ok != tt.wantMatch {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.text, ok, tt.wantMatch)
			}
			if tt.wantMatch && !strings.Contains(reply, tt.wantIn) {
				t.Errorf("Match(%q) reply = %q, want substring %q", tt.text, reply, tt.wantIn)
			}
			if !tt.wantMatch && reply != "" {
				t.Errorf("Match(%q) reply = %q, want empty on no match", tt.text, reply)
			}
		})
	}
}

func TestFirstMatchWins(t *testing.T) {
	table := Default()

	// "3dbotics franchise" matches both the courses and franchise rules;
	// courses is earlier in the table so it must win.
	reply, ok := table.Match("3dbotics franchise")
	if !ok {
		t.Fatal("expected a match")
	}
	if !strings.Contains(reply, "Basic (3D modeling)") {
		t.Errorf("expected the earlier courses rule to win, got %q", reply)
	}
}

func TestCustomTableOrdering(t *testing.T) {
	table := NewTable([]Rule{
		{Name: "specific", Pattern: regexp.MustCompile(`(?i)refund please`), Reply: "specific"},
		{Name: "broad", Pattern: regexp.MustCompile(`(?i)refund`), Reply: "broad"},
	})

	if reply, ok := table.Match("refund please"); !ok || reply != "specific" {
		t.Errorf("Match = %q, %v; want specific rule first", reply, ok)
	}
	if reply, ok := table.Match("I want a refund"); !ok || reply != "broad" {
		t.Errorf("Match = %q, %v; want broad rule", reply, ok)
	}
}
