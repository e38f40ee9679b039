// Package id provides centralized ID generation for the engine.
//
// All persistent entities (specs, pages, components, actions, marketplace
// packages) carry prefixed ULIDs: lexicographically sortable, unique, and
// readable in logs. Runtime sessions are ephemeral and use plain UUIDs at
// their call sites instead.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SpecID identifies a mini-app spec
type SpecID string

// PageID identifies a page within a spec
type PageID string

// ComponentID identifies a component node
type ComponentID string

// ActionID identifies an action within a spec
type ActionID string

// PackageID identifies a marketplace package
type PackageID string

const (
	SpecPrefix      = "spec"
	PagePrefix      = "page"
	ComponentPrefix = "cmp"
	ActionPrefix    = "act"
	PackagePrefix   = "pkg"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewSpecID generates a new spec ID
func NewSpecID() SpecID {
	return SpecID(Default().GenerateWithPrefix(SpecPrefix))
}

// NewPageID generates a new page ID
func NewPageID() PageID {
	return PageID(Default().GenerateWithPrefix(PagePrefix))
}

// NewComponentID generates a new component ID
func NewComponentID() ComponentID {
	return ComponentID(Default().GenerateWithPrefix(ComponentPrefix))
}

// NewActionID generates a new action ID
func NewActionID() ActionID {
	return ActionID(Default().GenerateWithPrefix(ActionPrefix))
}

// NewPackageID generates a new package ID
func NewPackageID() PackageID {
	return PackageID(Default().GenerateWithPrefix(PackagePrefix))
}

// String methods for ID types
func (id SpecID) String() string      { return string(id) }
func (id PageID) String() string      { return string(id) }
func (id ComponentID) String() string { return string(id) }
func (id ActionID) String() string    { return string(id) }
func (id PackageID) String() string   { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Timestamp extracts the creation time from a ULID string
func Timestamp(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
