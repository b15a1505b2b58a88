// Package id provides ID generation for the bridge.
//
// Request IDs are prefixed ULIDs (req_*), so they sort by arrival time and
// read well in logs. Instance IDs are UUIDs identifying one bridge process.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// RequestID identifies a channel request
type RequestID string

// InstanceID identifies one bridge process
type InstanceID string

// RequestPrefix marks generated request IDs
const RequestPrefix = "req"

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

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{
		entropy: rand.Reader,
	}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source
// Useful for testing with deterministic entropy
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewInstanceID generates a new bridge instance ID
func NewInstanceID() InstanceID {
	return InstanceID(uuid.NewString())
}

func (id RequestID) String() string  { return string(id) }
func (id InstanceID) String() string { return string(id) }

// IsRequestID checks if s is a generated request ID
func IsRequestID(s string) bool {
	ulidPart, ok := strings.CutPrefix(s, RequestPrefix+"_")
	if !ok {
		return false
	}
	_, err := ulid.Parse(ulidPart)
	return err == nil
}

// Timestamp extracts the creation time of a generated request ID
func Timestamp(id RequestID) (time.Time, error) {
	ulidPart, ok := strings.CutPrefix(string(id), RequestPrefix+"_")
	if !ok {
		return time.Time{}, fmt.Errorf("not a request id: %s", id)
	}
	parsed, err := ulid.Parse(ulidPart)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
