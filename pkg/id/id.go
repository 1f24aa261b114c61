// Package id produces ULID identifiers for runs and fills. ULIDs are
// lexicographically increasing, so journal indexes on them sort by
// creation time.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator issues ULID strings. IDs from one Generator remain strictly
// increasing even within the same millisecond. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

func NewGenerator() *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(time.Now().UTC()), g.entropy)
	if err != nil {
		panic(err)
	}
	return u.String()
}

var shared = NewGenerator()

// New returns a ULID from the shared generator.
func New() string { return shared.Next() }
