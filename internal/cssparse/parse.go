// Package cssparse extracts element rules from hand-edited CSS text. It
// recognises only the editor's own class pattern, with or without the
// trailing index, and never fails: text it cannot match is skipped.
package cssparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/cssforge/internal/style"
)

var (
	rulePattern    = regexp.MustCompile(`\.(\w+)-element(?:-(\d+))?\s*\{([^}]+)\}`)
	commentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// Rule is one matched block.
type Rule struct {
	// Type is the word before "-element", as written.
	Type string
	// Index is the explicit selector index; meaningful only when HasIndex
	// is set. An index too large to represent is -1.
	Index    int
	HasIndex bool
	// Properties holds the block's declarations in text order. A repeated
	// property keeps its first position and its last value.
	Properties *style.Map
}

// Parse returns the rules found in css, in text order.
func Parse(css string) []Rule {
	matches := rulePattern.FindAllStringSubmatchIndex(css, -1)
	rules := make([]Rule, 0, len(matches))

	for _, m := range matches {
		rule := Rule{
			Type:       css[m[2]:m[3]],
			Properties: parseBody(css[m[6]:m[7]]),
		}
		if m[4] >= 0 {
			rule.HasIndex = true
			idx, err := strconv.Atoi(css[m[4]:m[5]])
			if err != nil {
				idx = -1
			}
			rule.Index = idx
		}
		rules = append(rules, rule)
	}
	return rules
}

func parseBody(body string) *style.Map {
	props := style.NewMap()
	body = commentPattern.ReplaceAllString(body, "")

	for clause := range strings.SplitSeq(body, ";") {
		name, value, ok := strings.Cut(clause, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		props.Set(name, value)
	}
	return props
}
