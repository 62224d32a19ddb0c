package store

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/MKhiriev/go-settings/models"
)

// hydrationTracker remembers which scopes a persistent handler has loaded
// into its cache. With a zero ttl a mark lives until Reset; otherwise it
// expires and the scope is loaded again on the next touch.
//
// The tracker is owned by one handler and shares its lifetime.
type hydrationTracker struct {
	marks *ttlcache.Cache[string, struct{}]
}

func newHydrationTracker(ttl time.Duration) *hydrationTracker {
	return &hydrationTracker{
		marks: ttlcache.New[string, struct{}](
			ttlcache.WithTTL[string, struct{}](ttl),
			ttlcache.WithDisableTouchOnHit[string, struct{}](),
		),
	}
}

// pending returns the scopes that must be loaded before scope can be served:
// scope itself and, for a named context, the global scope when it has not
// been loaded yet either.
func (t *hydrationTracker) pending(scope models.Scope) []models.Scope {
	scopes := make([]models.Scope, 0, 2)

	if !t.isHydrated(scope) {
		scopes = append(scopes, scope)
	}
	if !scope.IsGlobal() && len(scopes) > 0 && !t.isHydrated(models.GlobalScope) {
		scopes = append(scopes, models.GlobalScope)
	}

	return scopes
}

func (t *hydrationTracker) isHydrated(scope models.Scope) bool {
	return t.marks.Get(markKey(scope)) != nil
}

func (t *hydrationTracker) mark(scopes ...models.Scope) {
	for _, scope := range scopes {
		t.marks.Set(markKey(scope), struct{}{}, ttlcache.DefaultTTL)
	}
}

// Reset forgets every mark.
func (t *hydrationTracker) Reset() {
	t.marks.DeleteAll()
}

func markKey(scope models.Scope) string {
	if scope.IsGlobal() {
		return ""
	}
	return "c:" + scope.Name()
}
