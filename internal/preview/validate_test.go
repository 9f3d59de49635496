package preview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "  \n", want: nil},
		{name: "balanced", in: "<div><p>Hi<br></p><img src=x></div>", want: nil},
		{name: "self closing", in: "<div/><section><hr/></section>", want: nil},
		{name: "unclosed", in: "<div><span>text", want: []string{"Unclosed tag: <div>", "Unclosed tag: <span>"}},
		{name: "unexpected close", in: "<p>a</p></div>", want: []string{"Unexpected closing tag: </div>"}},
		{name: "close skips inner", in: "<div><span>a</div>", want: []string{"Unclosed tag: <span>"}},
		{name: "case insensitive", in: "<DIV></div>", want: nil},
		{name: "script body ignored", in: "<script>if (a < b) { x = '<div>' }</script>", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ValidateHTML(tc.in))
		})
	}
}
