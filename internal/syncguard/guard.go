// Package syncguard provides the single-writer token that keeps CSS text
// regeneration and CSS reconciliation from re-entering each other.
package syncguard

// Token is held while one side of the text/model sync is writing. The zero
// value is released. A Token is not safe for concurrent use; it guards
// re-entrancy on a single control path.
type Token struct {
	holder string
}

// Acquire takes the token for holder. When the token is already held it
// returns ok=false and a no-op release, so callers can always defer the
// returned function.
func (t *Token) Acquire(holder string) (release func(), ok bool) {
	if t.holder != "" {
		return func() {}, false
	}
	if holder == "" {
		holder = "anonymous"
	}
	t.holder = holder

	released := false
	return func() {
		if released {
			return
		}
		released = true
		t.holder = ""
	}, true
}

// Held reports whether any writer currently holds the token.
func (t *Token) Held() bool {
	return t.holder != ""
}

// Holder names the current writer, or "" when released.
func (t *Token) Holder() string {
	return t.holder
}

// Do runs fn while holding the token and reports whether fn ran. The token
// is released when fn returns or panics.
func (t *Token) Do(holder string, fn func()) bool {
	release, ok := t.Acquire(holder)
	if !ok {
		return false
	}
	defer release()
	fn()
	return true
}
