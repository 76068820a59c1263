package smc

import (
	"fmt"
	"strings"

	"github.com/danmuck/smcctl/internal/smc/wire"
)

// KeyValue is one key's read result: its metadata plus the raw payload.
// Only the first Info.Size bytes of Bytes are meaningful; a size of 0 is
// a legitimate "no data" value.
type KeyValue struct {
	Key   wire.Key
	Info  wire.KeyInfo
	Bytes [wire.BytesLen]byte
}

// ValidBytes returns the declared-size prefix of the payload.
func (v *KeyValue) ValidBytes() []byte {
	n := int(v.Info.Size)
	if n > len(v.Bytes) {
		n = len(v.Bytes)
	}
	return v.Bytes[:n]
}

// Decode interprets the payload according to the key's type tag.
// The second return is false when the tag is not a known type and the
// payload should be treated as opaque bytes.
func (v *KeyValue) Decode() (Value, bool) {
	return Decode(v.Info.Type, v.Bytes)
}

func (v *KeyValue) String() string {
	if v.Info.Size == 0 {
		return "no data"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s size: %d(bytes", v.Key, v.Info.Type, v.Info.Size)
	for _, c := range v.ValidBytes() {
		fmt.Fprintf(&b, " %02x", c)
	}
	b.WriteString(")")
	if val, ok := v.Decode(); ok {
		fmt.Fprintf(&b, " value: %s", val)
	}
	return b.String()
}
