package style

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Kind classifies a declaration value.
type Kind int

const (
	KindEmpty Kind = iota
	KindLength
	KindPercentage
	KindNumber
	KindColor
	KindKeyword
	KindString
	KindFunction
	KindComposite
)

var kindNames = map[Kind]string{
	KindEmpty:      "empty",
	KindLength:     "length",
	KindPercentage: "percentage",
	KindNumber:     "number",
	KindColor:      "color",
	KindKeyword:    "keyword",
	KindString:     "string",
	KindFunction:   "function",
	KindComposite:  "composite",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a typed view over a raw declaration value. Raw is always the
// original text; the other fields are filled according to Kind.
type Value struct {
	Raw     string
	Kind    Kind
	Number  float64
	Unit    string
	Keyword string
}

var colorFunctions = map[string]struct{}{
	"rgb(": {}, "rgba(": {}, "hsl(": {}, "hsla(": {}, "hwb(": {}, "lab(": {}, "lch(": {}, "oklab(": {}, "oklch(": {},
}

var namedColors = map[string]struct{}{
	"transparent": {}, "currentcolor": {}, "black": {}, "white": {}, "red": {}, "green": {}, "blue": {},
	"yellow": {}, "orange": {}, "purple": {}, "gray": {}, "grey": {}, "silver": {}, "maroon": {},
	"olive": {}, "lime": {}, "aqua": {}, "teal": {}, "navy": {}, "fuchsia": {}, "pink": {},
}

type token struct {
	tt   css.TokenType
	data string
}

// Classify tokenizes raw with the CSS lexer and reports what kind of value
// it holds. Anything with more than one significant token is composite,
// except a single function call.
func Classify(raw string) Value {
	v := Value{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return v
	}

	lexer := css.NewLexer(parse.NewInputString(trimmed))
	var tokens []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		tokens = append(tokens, token{tt: tt, data: string(data)})
	}

	if len(tokens) == 0 {
		return v
	}

	if tokens[0].tt == css.FunctionToken && tokens[len(tokens)-1].tt == css.RightParenthesisToken && closesAtEnd(tokens[1:]) {
		name := strings.ToLower(tokens[0].data)
		v.Keyword = strings.TrimSuffix(name, "(")
		if _, ok := colorFunctions[name]; ok {
			v.Kind = KindColor
		} else {
			v.Kind = KindFunction
		}
		return v
	}

	if len(tokens) > 1 {
		v.Kind = KindComposite
		return v
	}

	t := tokens[0]
	switch t.tt {
	case css.DimensionToken:
		v.Kind = KindLength
		v.Number, v.Unit = splitDimension(t.data)
	case css.PercentageToken:
		v.Kind = KindPercentage
		v.Number, _ = strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 64)
		v.Unit = "%"
	case css.NumberToken:
		v.Kind = KindNumber
		v.Number, _ = strconv.ParseFloat(t.data, 64)
	case css.HashToken:
		v.Kind = KindColor
		v.Keyword = strings.ToLower(t.data)
	case css.IdentToken:
		v.Keyword = strings.ToLower(t.data)
		if _, ok := namedColors[v.Keyword]; ok {
			v.Kind = KindColor
		} else {
			v.Kind = KindKeyword
		}
	case css.StringToken:
		v.Kind = KindString
		v.Keyword = strings.Trim(t.data, `"'`)
	default:
		v.Kind = KindComposite
	}
	return v
}

// closesAtEnd reports whether the parenthesis opened by a leading function
// token is closed by the final token and not before.
func closesAtEnd(rest []token) bool {
	depth := 1
	for i, t := range rest {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return i == len(rest)-1
			}
		}
	}
	return false
}

func splitDimension(s string) (float64, string) {
	end := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' || ((r == 'e' || r == 'E') && i > 0 && i+1 < len(s) && unicode.IsDigit(rune(s[i+1]))) {
			end = i + 1
			continue
		}
		break
	}
	num, _ := strconv.ParseFloat(s[:end], 64)
	return num, strings.ToLower(s[end:])
}

// Pixels returns the magnitude of a px length or a unitless number.
func (v Value) Pixels() (float64, bool) {
	switch {
	case v.Kind == KindLength && v.Unit == "px":
		return v.Number, true
	case v.Kind == KindNumber:
		return v.Number, true
	}
	return 0, false
}

// ParsePixels reads a px magnitude from raw, returning fallback when raw is
// missing or not a px length.
func ParsePixels(raw string, fallback float64) float64 {
	if n, ok := Classify(raw).Pixels(); ok {
		return n
	}
	return fallback
}

// FormatPixels renders a canvas coordinate the way generated CSS does:
// truncated to an integer with a px suffix.
func FormatPixels(f float64) string {
	return strconv.Itoa(int(f)) + "px"
}
