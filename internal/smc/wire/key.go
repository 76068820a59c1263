package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrBadKey = errors.New("wire: key must be exactly 4 bytes")

// Key is a four-character ASCII code naming one SMC register.
// The ASCII bytes are the big-endian representation of the key's
// 32-bit wire form.
type Key [4]byte

// ParseKey validates a caller-supplied key name at the boundary.
func ParseKey(s string) (Key, error) {
	if len(s) != 4 {
		return Key{}, fmt.Errorf("%w: %q", ErrBadKey, s)
	}
	var k Key
	copy(k[:], s)
	return k, nil
}

// KeyFromUint32 reconstructs a key from its wire form.
func KeyFromUint32(v uint32) Key {
	var k Key
	binary.BigEndian.PutUint32(k[:], v)
	return k
}

func (k Key) Uint32() uint32 {
	return binary.BigEndian.Uint32(k[:])
}

func (k Key) String() string {
	return string(k[:])
}

// TypeTag is a four-character ASCII code declaring how a key's payload
// bytes decode. Tags shorter than four characters are space padded on
// the wire ("flt ", "ui8 ").
type TypeTag [4]byte

func TypeTagFromUint32(v uint32) TypeTag {
	var t TypeTag
	binary.BigEndian.PutUint32(t[:], v)
	return t
}

func (t TypeTag) Uint32() uint32 {
	return binary.BigEndian.Uint32(t[:])
}

func (t TypeTag) String() string {
	return string(t[:])
}
