package util

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewULID generates a new ULID string. IDs generated within the same
// millisecond sort in creation order.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// OutputFileName names a converted template file. The ULID keeps names
// unique and sortable by creation time.
func OutputFileName(prefix string) string {
	if prefix == "" {
		prefix = "converted"
	}
	return prefix + "_" + NewULID() + ".json"
}
