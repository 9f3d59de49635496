package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/cssgen"
	"github.com/alexisbeaulieu97/cssforge/internal/cssparse"
	"github.com/alexisbeaulieu97/cssforge/internal/syncguard"
)

func sampleStore() *canvas.Store {
	s := canvas.NewStore()
	a := s.Add("div", 50, 50, 200, 100)
	a.SetStyle("border-radius", "4px")
	b := s.Add("button", 10, 400, 120, 40)
	b.SetStyle("color", "#ffffff")
	b.SetText("Save")
	c := s.Add("div", 300.4, 20, 80, 80)
	c.SetStyle("box-shadow", "0 2px 4px rgba(0,0,0,0.1)")
	return s
}

func TestRoundTripLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	s := sampleStore()
	before := s.Snapshot()

	res := Reconcile(s, cssparse.Parse(cssgen.Generate(s.Elements())))

	require.False(t, res.Changed())
	require.Equal(t, 3, res.Matched)
	require.True(t, before.Equal(s.Snapshot()))
}

func TestChangesOnlyDifferingProperty(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	e := s.Add("div", 50, 50, 200, 100)

	res := Reconcile(s, cssparse.Parse(".div-element-0 { background-color: #ff0000; }"))

	require.Equal(t, 1, res.Updated)
	require.False(t, res.Moved > 0)
	require.Equal(t, "#ff0000", e.Styles().Value("background-color"))
	require.Equal(t, canvas.Size{Width: 200, Height: 100}, e.Size())
	require.Equal(t, canvas.Point{X: 50, Y: 50}, e.Position())
	require.Equal(t, "200px", e.Styles().Value("width"))
}

func TestLeftTopMoveElement(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	e := s.Add("div", 50, 50, 200, 100)

	res := Reconcile(s, cssparse.Parse(".div-element-0 { left: 120px; }"))

	require.Equal(t, 1, res.Moved)
	require.Equal(t, canvas.Point{X: 120, Y: 0}, e.Position())
	require.Equal(t, "120px", e.Styles().Value("left"))
	require.Equal(t, "0px", e.Styles().Value("top"))
}

func TestMissingCoordinateDefaultsToZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		css  string
		want canvas.Point
	}{
		{name: "left only", css: ".div-element-0 { left: 120px; }", want: canvas.Point{X: 120, Y: 0}},
		{name: "top only", css: ".div-element-0 { top: 30px; }", want: canvas.Point{X: 0, Y: 30}},
		{name: "both", css: ".div-element-0 { left: 7px; top: 8px; }", want: canvas.Point{X: 7, Y: 8}},
		{name: "neither", css: ".div-element-0 { color: red; }", want: canvas.Point{X: 50, Y: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := canvas.NewStore()
			e := s.Add("div", 50, 50, 200, 100)
			Reconcile(s, cssparse.Parse(tt.css))
			require.Equal(t, tt.want, e.Position())
		})
	}
}

func TestNonPixelPositionFailsClosedToZero(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	e := s.Add("div", 50, 50, 200, 100)

	Reconcile(s, cssparse.Parse(".div-element-0 { left: 80px; top: auto; }"))

	require.Equal(t, canvas.Point{X: 80, Y: 0}, e.Position())
}

func TestWidthChangeResizes(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	e := s.Add("div", 0, 0, 200, 100)

	Reconcile(s, cssparse.Parse(".div-element-0 { width: 320px; }"))

	require.Equal(t, canvas.Size{Width: 320, Height: 100}, e.Size())
}

func TestExplicitIndexRequiresMatchingType(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	s.Add("div", 0, 0, 10, 10)

	res := Reconcile(s, cssparse.Parse(".p-element-0 { color: red; } .div-element-7 { color: blue; }"))

	require.Equal(t, 0, res.Matched)
	require.Equal(t, 2, res.Created)
	require.Equal(t, 3, s.Len())
	require.Equal(t, "p", s.At(1).Type())
	require.Equal(t, "div", s.At(2).Type())
	require.False(t, s.At(0).Styles().Has("color"))
}

func TestExplicitIndexIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	e := s.Add("Card", 0, 0, 10, 10)

	res := Reconcile(s, cssparse.Parse(".card-element-0 { color: red; }"))

	require.Equal(t, 1, res.Matched)
	require.Equal(t, "red", e.Styles().Value("color"))
}

func TestLegacyRuleBindsFirstUnconsumedInStoreOrder(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	first := s.Add("div", 0, 0, 10, 10)
	second := s.Add("div", 0, 0, 10, 10)

	res := Reconcile(s, cssparse.Parse(`.div-element { color: red; } .div-element { color: blue; }`))

	require.Equal(t, 2, res.Matched)
	require.Equal(t, "red", first.Styles().Value("color"))
	require.Equal(t, "blue", second.Styles().Value("color"))
}

func TestLegacyRuleSkipsIndexConsumedByExplicitRule(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	first := s.Add("div", 0, 0, 10, 10)
	second := s.Add("div", 0, 0, 10, 10)

	Reconcile(s, cssparse.Parse(`.div-element-0 { color: green; } .div-element { color: blue; }`))

	require.Equal(t, "green", first.Styles().Value("color"))
	require.Equal(t, "blue", second.Styles().Value("color"))
}

func TestLegacyRuleAfterOtherTypeStillBindsFirstDiv(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()
	first := s.Add("div", 0, 0, 10, 10)
	second := s.Add("div", 0, 0, 10, 10)
	s.Add("p", 0, 0, 10, 10)

	Reconcile(s, cssparse.Parse(`.p-element { color: black; } .div-element { color: blue; }`))

	require.Equal(t, "blue", first.Styles().Value("color"))
	require.False(t, second.Styles().Has("color"))
}

func TestUnmatchedRuleCreatesElementWithDefaults(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()

	res := Reconcile(s, cssparse.Parse(`.section-element { color: red; width: 50%; left: 30px; }`))

	require.Equal(t, 1, res.Created)
	e := s.At(0)
	require.Equal(t, "section", e.Type())
	require.Equal(t, canvas.Point{X: 30, Y: 0}, e.Position())
	require.Equal(t, canvas.Size{Width: 200, Height: 100}, e.Size())
	require.Equal(t, "50%", e.Styles().Value("width"))
	require.Equal(t, "red", e.Styles().Value("color"))
	require.Equal(t, "#e0e0e0", e.Styles().Value("background-color"))
}

func TestUnmatchedRuleUsesPixelGeometry(t *testing.T) {
	t.Parallel()

	s := canvas.NewStore()

	Reconcile(s, cssparse.Parse(`.img-element-3 { left: 5px; top: 6px; width: 70px; height: 80px; }`))

	e := s.At(0)
	require.Equal(t, canvas.Point{X: 5, Y: 6}, e.Position())
	require.Equal(t, canvas.Size{Width: 70, Height: 80}, e.Size())
}

func TestReconcilerSkipsWhenTokenHeld(t *testing.T) {
	t.Parallel()

	tok := &syncguard.Token{}
	r := New(tok, nil)
	s := canvas.NewStore()

	release, ok := tok.Acquire("generator")
	require.True(t, ok)
	_, ran := r.Apply(s, ".div-element { color: red; }")
	require.False(t, ran)
	require.Equal(t, 0, s.Len())
	release()

	res, ran := r.Apply(s, ".div-element { color: red; }")
	require.True(t, ran)
	require.Equal(t, 1, res.Created)
	require.False(t, tok.Held())
}
