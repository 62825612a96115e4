package uid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// ErrNoNodeIdentity is returned when neither machine-id nor hostname is available.
var ErrNoNodeIdentity = errors.New("uid: cannot determine node identity")

// ObjectID generates 16-byte, lexically time-ordered hex identifiers used as
// object storage keys: 6 bytes of unix millis, 4 bytes of node hash, 2 bytes
// of pid and a 4 byte counter seeded at random.
type ObjectID struct {
	node    [4]byte
	pid     uint16
	counter atomic.Uint32
	now     func() time.Time
}

// NewObjectID builds a generator bound to this host.
func NewObjectID() (*ObjectID, error) {
	src := nodeIdentity()
	if src == "" {
		return nil, ErrNoNodeIdentity
	}

	g := &ObjectID{pid: uint16(os.Getpid()), now: time.Now}
	sum := sha256.Sum256([]byte(src))
	copy(g.node[:], sum[:4])

	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	g.counter.Store(uint32(seed[0])<<24 | uint32(seed[1])<<16 | uint32(seed[2])<<8 | uint32(seed[3]))

	return g, nil
}

func nodeIdentity() string {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s
		}
	}
	if h, err := os.Hostname(); err == nil {
		return strings.TrimSpace(h)
	}
	return ""
}

// Generate returns a 32-char hex string.
func (g *ObjectID) Generate() string {
	var raw [16]byte

	ts := uint64(g.now().UnixMilli())
	for i := 0; i < 6; i++ {
		raw[i] = byte(ts >> (40 - 8*i))
	}
	copy(raw[6:10], g.node[:])
	raw[10] = byte(g.pid >> 8)
	raw[11] = byte(g.pid)

	c := g.counter.Add(1)
	raw[12] = byte(c >> 24)
	raw[13] = byte(c >> 16)
	raw[14] = byte(c >> 8)
	raw[15] = byte(c)

	return hex.EncodeToString(raw[:])
}
