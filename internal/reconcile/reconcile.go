// Package reconcile merges parsed CSS rules back into the element store.
package reconcile

import (
	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/cssparse"
	"github.com/alexisbeaulieu97/cssforge/internal/logger"
	"github.com/alexisbeaulieu97/cssforge/internal/style"
	"github.com/alexisbeaulieu97/cssforge/internal/syncguard"
)

// Result summarises what a reconciliation changed.
type Result struct {
	Rules   int
	Matched int
	Created int
	Updated int
	Moved   int
}

// Changed reports whether the store was mutated.
func (r Result) Changed() bool {
	return r.Created > 0 || r.Updated > 0 || r.Moved > 0
}

// Reconcile applies rules to store in text order.
//
// A rule with an explicit index binds to the element at that index when
// the types match (case-insensitively). A rule without one binds to the
// first element of its type not already bound in this pass. Bound elements
// receive only the properties whose values differ; left/top move the
// element directly. Unbound rules append a new element.
func Reconcile(store *canvas.Store, rules []cssparse.Rule) Result {
	res := Result{Rules: len(rules)}
	consumed := make(map[int]struct{}, len(rules))

	for _, rule := range rules {
		idx := bind(store, rule, consumed)
		if idx < 0 {
			create(store, rule)
			res.Created++
			continue
		}

		consumed[idx] = struct{}{}
		res.Matched++
		updated, moved := update(store.At(idx), rule.Properties)
		res.Updated += updated
		if moved {
			res.Moved++
		}
	}
	return res
}

func bind(store *canvas.Store, rule cssparse.Rule, consumed map[int]struct{}) int {
	if rule.HasIndex {
		e := store.At(rule.Index)
		if e != nil && e.MatchesType(rule.Type) {
			return rule.Index
		}
		return -1
	}

	for i, e := range store.Elements() {
		if _, used := consumed[i]; used {
			continue
		}
		if e.MatchesType(rule.Type) {
			return i
		}
	}
	return -1
}

func update(e *canvas.Element, props *style.Map) (updated int, moved bool) {
	for name, value := range props.All() {
		if name == "left" || name == "top" {
			continue
		}
		if current, ok := e.Style(name); ok && current == value {
			continue
		}
		e.SetStyle(name, value)
		updated++
	}

	left, hasLeft := props.Get("left")
	top, hasTop := props.Get("top")
	if !hasLeft && !hasTop {
		return updated, false
	}

	// A rule naming one coordinate places the element on the other axis at
	// 0. Generated CSS carries whole pixels, so a coordinate only moves when
	// it differs at that precision.
	pos := e.Position()
	x, y := pos.X, pos.Y
	if v := style.ParsePixels(left, 0); style.FormatPixels(v) != style.FormatPixels(x) {
		x = v
	}
	if v := style.ParsePixels(top, 0); style.FormatPixels(v) != style.FormatPixels(y) {
		y = v
	}
	if x == pos.X && y == pos.Y {
		return updated, false
	}
	e.MoveTo(x, y)
	return updated, true
}

func create(store *canvas.Store, rule cssparse.Rule) {
	props := rule.Properties
	widthRaw, heightRaw := props.Value("width"), props.Value("height")
	_, widthPx := style.Classify(widthRaw).Pixels()
	_, heightPx := style.Classify(heightRaw).Pixels()

	e := store.Add(
		rule.Type,
		style.ParsePixels(props.Value("left"), 0),
		style.ParsePixels(props.Value("top"), 0),
		style.ParsePixels(widthRaw, canvas.DefaultWidth),
		style.ParsePixels(heightRaw, canvas.DefaultHeight),
	)

	for name, value := range props.All() {
		switch {
		case name == "left" || name == "top":
		case name == "width" && widthPx:
		case name == "height" && heightPx:
		default:
			e.SetStyle(name, value)
		}
	}
}

// Reconciler runs text-to-model reconciliation under the shared sync
// token, so regeneration triggered from inside the pass is suppressed.
type Reconciler struct {
	token *syncguard.Token
	log   *logger.Logger
}

// New builds a Reconciler sharing token with the CSS generator path.
func New(token *syncguard.Token, log *logger.Logger) *Reconciler {
	if token == nil {
		token = &syncguard.Token{}
	}
	return &Reconciler{token: token, log: log.Component("reconcile")}
}

// Apply parses css and reconciles it into store. It reports ran=false
// without touching the store when another sync writer holds the token.
func (r *Reconciler) Apply(store *canvas.Store, css string) (res Result, ran bool) {
	release, ok := r.token.Acquire("reconcile")
	if !ok {
		r.log.Debug("reconcile skipped", "holder", r.token.Holder())
		return Result{}, false
	}
	defer release()

	res = Reconcile(store, cssparse.Parse(css))
	r.log.Debug("css reconciled",
		"rules", res.Rules,
		"matched", res.Matched,
		"created", res.Created,
		"updated", res.Updated,
		"moved", res.Moved,
	)
	return res, true
}
