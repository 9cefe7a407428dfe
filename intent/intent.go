// intent.go
package intent

import (
	"regexp"
	"strings"
)

// Rule pairs a pattern with its canned reply.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Reply   string
}

// Table is an ordered rule set. Rules are evaluated in priority order
// and the first match wins; these answers cost no tokens.
type Table struct {
	rules []Rule
}

func NewTable(rules []Rule) *Table {
	return &Table{rules: rules}
}

// Match returns the canned reply for the first rule matching text. ok is
// false when nothing matches and the caller should fall through to the
// AI resolver. Empty or whitespace-only text never matches.
func (t *Table) Match(text string) (reply string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	for _, rule := range t.rules {
		if rule.Pattern.MatchString(trimmed) {
			return rule.Reply, true
		}
	}
	return "", false
}

// Default returns the 3DBotics rule table.
func Default() *Table {
	return NewTable([]Rule{
		{
			Name:    "menu",
			Pattern: regexp.MustCompile(`(?i)(menu|help|options)$`),
			Reply: "Here's what I can help with right now:\n" +
				"• 3DBotics courses & pricing\n" +
				"• Franchise info\n" +
				"• Class schedules & branches\n" +
				"• Robotics kits & demos\n" +
				`Ask me in plain English, e.g., "courses" or "how to franchise".`,
		},
		{
			Name:    "courses",
			Pattern: regexp.MustCompile(`(?i)(course|class|tuition|module|3dbotics)`),
			Reply: "3DBotics has: Basic (3D modeling) → MM1 (3D printing ops) → MM2-A (basic robotics) → MM2-B (full obstacle-avoid robot).\n" +
				"Want a quick price sheet or the nearest branch?",
		},
		{
			Name:    "franchise",
			Pattern: regexp.MustCompile(`(?i)(franchise|magkano|package|branch)`),
			Reply: "Franchise includes printers, toolkits, modules, training, and our AI platform. OJT + weekly Zoom support. " +
				"Want the latest package deck or to talk to John Villamil (COO) for a walkthrough?",
		},
		{
			Name:    "contact",
			Pattern: regexp.MustCompile(`(?i)(contact|phone|email|message|talk to|john)`),
			Reply: "Best next step: message our COO John Villamil for franchise/course ops. " +
				`I can prep a quick intro script for you, just say "intro me to John".`,
		},
	})
}
