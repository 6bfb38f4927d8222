package scene

import (
	crand "crypto/rand"
	"encoding/binary"
	"strings"

	"github.com/google/uuid"
)

// newFileID mints a random positive file ID not present in the document.
// Collision probability is negligible but the set is checked anyway and the
// ID re-rolled.
func (d *Document) newFileID() int64 {
	for {
		var buf [8]byte
		if _, err := crand.Read(buf[:]); err != nil {
			// crypto/rand never fails on supported platforms; fall
			// back to the uuid source rather than returning an error
			// from every mutation signature.
			u := uuid.New()
			copy(buf[:], u[:8])
		}
		id := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
		if id == 0 {
			continue
		}
		if _, taken := d.byID[id]; !taken {
			return id
		}
	}
}

// NewGUID mints a fresh 32-character lowercase-hex asset GUID, used when a
// clone or unpack needs a template source that does not exist yet.
func NewGUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
