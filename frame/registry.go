package frame

import (
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/squash/errs"
	"github.com/arloliu/squash/internal/collision"
	"github.com/arloliu/squash/schema"
)

// Registry names the schemas a reader understands, so frames of several
// message types sharing one stream can be told apart by their fingerprint
// before decoding.
//
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	tracker *collision.Tracker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tracker: collision.NewTracker()}
}

// Register records the schema of c under name.
//
// Returns:
//   - error: ErrInvalidSchema for an empty or reused name, ErrSchemaCollision
//     when a different schema already has the same fingerprint
func (r *Registry) Register(name string, c any) error {
	node := schema.Of(c)

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.tracker.Track(name, node.Fingerprint(), node.String())
}

// Identify returns the name of the schema a frame was encoded with.
//
// Returns:
//   - string: Registered schema name
//   - error: ErrInvalidFrame for a malformed header or a frame without a
//     fingerprint, ErrSchemaMismatch for an unregistered fingerprint
func (r *Registry) Identify(data []byte) (string, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return "", err
	}
	if !header.Flags.Has(FlagFingerprint) {
		return "", fmt.Errorf("%w: frame carries no schema fingerprint", errs.ErrInvalidFrame)
	}

	r.mu.RLock()
	name, ok := r.tracker.Lookup(header.Fingerprint)
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: no schema registered for 0x%016x", errs.ErrSchemaMismatch, header.Fingerprint)
	}

	return name, nil
}

// Names returns the registered schema names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.tracker.Names())
}

// Fingerprint returns the fingerprint registered under name, for writers
// that tag frames or route streams by schema.
func (r *Registry) Fingerprint(name string) (uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tracker.Fingerprint(name)
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tracker.Count()
}

// Reset removes every registered schema.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tracker.Reset()
}
