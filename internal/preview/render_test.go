package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
)

func TestInlineStyleUsesLivePositionAndForcedGeometry(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	e := s.Add("div", 50, 50, 200, 100)
	e.MoveTo(70.8, 12)

	got := InlineStyle(e)

	require.Equal(t,
		"width: 200px !important; height: 100px !important; background-color: #e0e0e0; "+
			"border: 1px solid #ccc; position: absolute !important; left: 70px !important; "+
			"top: 12px !important; display: block",
		got)
}

func TestInlineStyleReplacesStaticPosition(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	e := s.Add("span", 0, 0, 10, 10)
	e.SetStyle("position", "static")

	got := InlineStyle(e)

	require.Contains(t, got, "position: absolute !important")
	require.NotContains(t, got, "display")
}

func TestInlineStyleKeepsExplicitDisplay(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	e := s.Add("section", 0, 0, 10, 10)
	e.SetStyle("display", "flex")

	require.Contains(t, InlineStyle(e), "display: flex")
	require.NotContains(t, InlineStyle(e), "display: block")
}

func TestBodyChoosesTagAndPlaceholder(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	for _, kind := range []string{"button", "p", "span", "a", "H2", "section"} {
		s.Add(kind, 0, 0, 10, 10)
	}
	img := s.Add("img", 0, 0, 10, 10)
	img.SetText("logo.png")

	body := Body(s.Elements())

	require.Contains(t, body, ">Button</button>")
	require.Contains(t, body, ">Paragraph text</p>")
	require.Contains(t, body, ">Span text</span>")
	require.Contains(t, body, `<a href="#"`)
	require.Contains(t, body, ">H2</h2>")
	require.Contains(t, body, ">Element 6</div>")
	require.Contains(t, body, `<img src="logo.png" alt="Image"`)
	require.Equal(t, 7, strings.Count(body, "\n"))
}

func TestBodyRendersCardAndInput(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	s.Add("card", 0, 0, 10, 10)
	in := s.Add("input", 0, 0, 10, 10)
	in.SetStyle("type", "email")
	in.SetText("you@example.com")

	body := Body(s.Elements())

	require.Contains(t, body, `<div class="card-header">Card Header</div>`)
	require.Contains(t, body, `<div class="card-body">Card Content</div>`)
	require.Contains(t, body, `<input type="email"`)
	require.Contains(t, body, `placeholder="you@example.com"`)
}

func TestBodyEscapesText(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	e := s.Add("p", 0, 0, 10, 10)
	e.SetText(`<script>alert("x")</script>`)
	e.SetStyle("font-family", `"Segoe UI"`)

	body := Body(s.Elements())

	require.NotContains(t, body, "<script>")
	require.Contains(t, body, "&lt;script&gt;")
	require.Contains(t, body, "font-family: &#34;Segoe UI&#34;")
}

func TestDocumentUsesBackground(t *testing.T) {
	t.Parallel()

	doc := NewRenderer("").Document(nil)
	require.Contains(t, doc, "background-color: #000000;")
	require.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))

	doc = NewRenderer("#112233").Render(nil, "   ")
	require.Contains(t, doc, "background-color: #112233;")
}

func TestRenderSplicesIntoDocument(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	s.Add("div", 1, 2, 3, 4)

	out := NewRenderer("").Render(s.Elements(), "<html><head><title>x</title></head><body></body></html>")

	require.Contains(t, out, "<style>\n.div-element-0 {\n")
	require.Contains(t, out, "</style>\n</head>")
	require.NotContains(t, out, "<!DOCTYPE html>")
}

func TestSplice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "replaces style blocks",
			doc:  "<style>\nold\n</style><p>a</p><style>x</style>",
			want: "<style>\nNEW\n</style><p>a</p><style>\nNEW\n</style>",
		},
		{
			name: "inserts before head close",
			doc:  "<head><title>t</title></head><body></body>",
			want: "<head><title>t</title><style>\nNEW\n</style>\n</head><body></body>",
		},
		{
			name: "synthesizes head",
			doc:  "<p>hello</p>",
			want: "<head><style>\nNEW\n</style></head>\n<p>hello</p>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Splice(tc.doc, "NEW"))
		})
	}
}

func TestSpliceTreatsCSSLiterally(t *testing.T) {
	t.Parallel()

	out := Splice("<style></style>", `.a { content: "$1"; }`)
	require.Equal(t, "<style>\n.a { content: \"$1\"; }\n</style>", out)
}
