package wire

import (
	"errors"
	"testing"
)

func TestParseKey(t *testing.T) {
	k, err := ParseKey("TB0T")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if k.String() != "TB0T" {
		t.Fatalf("key string: %q", k.String())
	}
	if k.Uint32() != 0x54423054 {
		t.Fatalf("key wire form: %#x", k.Uint32())
	}
}

func TestParseKeyRejectsWrongLength(t *testing.T) {
	for _, s := range []string{"", "TB0", "TB0TX"} {
		if _, err := ParseKey(s); !errors.Is(err, ErrBadKey) {
			t.Fatalf("ParseKey(%q): expected ErrBadKey, got %v", s, err)
		}
	}
}

func TestKeyUint32RoundTrip(t *testing.T) {
	k := Key{'#', 'K', 'E', 'Y'}
	if got := KeyFromUint32(k.Uint32()); got != k {
		t.Fatalf("round trip: %q", got.String())
	}
}

func TestTypeTagRoundTrip(t *testing.T) {
	tag := TypeTag{'f', 'l', 't', ' '}
	if got := TypeTagFromUint32(tag.Uint32()); got != tag {
		t.Fatalf("round trip: %q", got.String())
	}
	if tag.String() != "flt " {
		t.Fatalf("tag string: %q", tag.String())
	}
}
