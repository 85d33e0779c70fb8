// Package localid generates the temporary ids given to optimistic records
// before the backend assigns a real one.
package localid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const prefix = "local_"

var (
	entropyOnce sync.Once
	entropyMu   sync.Mutex
	entropy     *ulid.MonotonicEntropy
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

// New returns a local_* ULID. Ids from one process are strictly increasing.
func New() string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	entropyMu.Unlock()
	return prefix + strings.ToLower(id.String())
}

// IsLocal reports whether value is a temporary id produced by New.
func IsLocal(value string) bool {
	if !strings.HasPrefix(value, prefix) {
		return false
	}
	_, err := ulid.ParseStrict(strings.TrimPrefix(value, prefix))
	return err == nil
}
