package preview

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// ValidateHTML checks tag balance in text and returns one message per
// problem, in document order. Void elements and self-closing tags are
// ignored. A closing tag that matches an outer open tag closes everything
// above it and reports each of those as unclosed.
func ValidateHTML(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		problems []string
		open     []string
	)
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); !voidElements[tag] {
				open = append(open, tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[tag] {
				continue
			}
			at := lastIndex(open, tag)
			if at < 0 {
				problems = append(problems, fmt.Sprintf("Unexpected closing tag: </%s>", tag))
				continue
			}
			for i := len(open) - 1; i > at; i-- {
				problems = append(problems, fmt.Sprintf("Unclosed tag: <%s>", open[i]))
			}
			open = open[:at]
		}
	}

	for _, tag := range open {
		problems = append(problems, fmt.Sprintf("Unclosed tag: <%s>", tag))
	}
	return problems
}

func lastIndex(stack []string, tag string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == tag {
			return i
		}
	}
	return -1
}
