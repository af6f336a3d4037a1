// Package collision tracks schema fingerprints and detects collisions
// between different schemas that hash to the same value.
package collision

import (
	"fmt"

	"github.com/arloliu/squash/errs"
)

type entry struct {
	name       string
	descriptor string
}

// Tracker maps fingerprints to named schemas.
//
// A fingerprint is only trusted when its descriptor text matches: two
// different descriptors with one fingerprint are a collision, while the same
// descriptor registered twice under one name is a no-op.
type Tracker struct {
	byFingerprint map[uint64]entry
	byName        map[string]uint64
	names         []string // registration order
}

// NewTracker creates a new fingerprint tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byFingerprint: make(map[uint64]entry),
		byName:        make(map[string]uint64),
	}
}

// Track records a named schema.
//
// Parameters:
//   - name: Non-empty schema name
//   - fingerprint: Fingerprint of the schema
//   - descriptor: Canonical text of the schema, used to tell collisions apart
//
// Returns:
//   - error: ErrInvalidSchema for an empty name or a name reused for another
//     schema, ErrSchemaCollision when another schema has the same fingerprint
func (t *Tracker) Track(name string, fingerprint uint64, descriptor string) error {
	if name == "" {
		return fmt.Errorf("%w: empty schema name", errs.ErrInvalidSchema)
	}

	if existing, ok := t.byFingerprint[fingerprint]; ok {
		if existing.descriptor != descriptor {
			return fmt.Errorf("%w: %q and %q share 0x%016x", errs.ErrSchemaCollision, existing.name, name, fingerprint)
		}
		if existing.name != name {
			return fmt.Errorf("%w: schema %q is already registered as %q", errs.ErrInvalidSchema, name, existing.name)
		}

		return nil
	}

	if _, ok := t.byName[name]; ok {
		return fmt.Errorf("%w: name %q is already registered", errs.ErrInvalidSchema, name)
	}

	t.byFingerprint[fingerprint] = entry{name: name, descriptor: descriptor}
	t.byName[name] = fingerprint
	t.names = append(t.names, name)

	return nil
}

// Lookup returns the name registered for fingerprint.
func (t *Tracker) Lookup(fingerprint uint64) (string, bool) {
	e, ok := t.byFingerprint[fingerprint]
	return e.name, ok
}

// Fingerprint returns the fingerprint registered under name.
func (t *Tracker) Fingerprint(name string) (uint64, bool) {
	fp, ok := t.byName[name]
	return fp, ok
}

// Names returns the tracked names in registration order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked schemas.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked schemas.
func (t *Tracker) Reset() {
	clear(t.byFingerprint)
	clear(t.byName)
	t.names = t.names[:0]
}
