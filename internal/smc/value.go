package smc

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/danmuck/smcctl/internal/smc/wire"
)

// Value is one decoded key payload. The set of implementations is
// closed; callers switch on the concrete type.
type Value interface {
	fmt.Stringer
	smcValue()
}

// Float32 carries both byte-order interpretations of a "flt " payload.
// The byte order of this type is known to differ between keys, so
// neither reading is discarded; String collapses them when the bit
// patterns coincide.
type Float32 struct {
	LE float32
	BE float32
}

type (
	U8  uint8
	I8  int8
	U16 uint16
	I16 int16
	U32 uint32
	I32 int32
	U64 uint64
	I64 int64

	// Flag is a boolean stored as a single byte, nonzero meaning true.
	Flag bool

	// Chars is ASCII text, trimmed at the first NUL.
	Chars string

	// Fixed48_16 is a 48.16 fixed-point number in its raw 64-bit form.
	Fixed48_16 uint64
)

func (Float32) smcValue()    {}
func (U8) smcValue()         {}
func (I8) smcValue()         {}
func (U16) smcValue()        {}
func (I16) smcValue()        {}
func (U32) smcValue()        {}
func (I32) smcValue()        {}
func (U64) smcValue()        {}
func (I64) smcValue()        {}
func (Flag) smcValue()       {}
func (Chars) smcValue()      {}
func (Fixed48_16) smcValue() {}

func (v Float32) String() string {
	if math.Float32bits(v.LE) == math.Float32bits(v.BE) {
		return formatFloat32(v.LE)
	}
	return fmt.Sprintf("le=%s, be=%s", formatFloat32(v.LE), formatFloat32(v.BE))
}

func formatFloat32(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func (v U8) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v I8) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v U16) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v I16) String() string { return strconv.FormatInt(int64(v), 10) }
func (v U32) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v I32) String() string { return strconv.FormatInt(int64(v), 10) }
func (v U64) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v I64) String() string { return strconv.FormatInt(int64(v), 10) }

func (v Flag) String() string  { return strconv.FormatBool(bool(v)) }
func (v Chars) String() string { return string(v) }

// fixedPointDivisor is the fractional divisor of the 48.16 format.
const fixedPointDivisor = 65536.0

// Float is the fixed-point value as integer part plus fraction/65536.
func (v Fixed48_16) Float() float64 {
	return float64(v>>16) + float64(v&0xFFFF)/fixedPointDivisor
}

func (v Fixed48_16) String() string {
	return formatFloat(v.Float())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Decode interprets payload bytes according to a four-character type
// tag, returning false for tags it does not recognize. All multi-byte
// integer reads are little-endian from the leading payload bytes; the
// float is read in both byte orders.
func Decode(tag wire.TypeTag, b [wire.BytesLen]byte) (Value, bool) {
	switch tag.String() {
	case "flt ":
		return Float32{
			LE: math.Float32frombits(binary.LittleEndian.Uint32(b[:4])),
			BE: math.Float32frombits(binary.BigEndian.Uint32(b[:4])),
		}, true
	case "ui8 ":
		return U8(b[0]), true
	case "si8 ":
		return I8(b[0]), true
	case "ui16":
		return U16(binary.LittleEndian.Uint16(b[:2])), true
	case "si16":
		return I16(binary.LittleEndian.Uint16(b[:2])), true
	case "ui32":
		return U32(binary.LittleEndian.Uint32(b[:4])), true
	case "si32":
		return I32(binary.LittleEndian.Uint32(b[:4])), true
	case "ui64":
		return U64(binary.LittleEndian.Uint64(b[:8])), true
	case "si64":
		return I64(binary.LittleEndian.Uint64(b[:8])), true
	case "flag":
		return Flag(b[0] != 0), true
	case "ch8*":
		end := len(b)
		if i := strings.IndexByte(string(b[:]), 0); i >= 0 {
			end = i
		}
		return Chars(lossyString(b[:end])), true
	case "ioft":
		return Fixed48_16(binary.LittleEndian.Uint64(b[:8])), true
	default:
		return nil, false
	}
}

// lossyString decodes UTF-8, substituting one replacement character
// for each invalid byte rather than collapsing runs.
func lossyString(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(b[:size])
		}
		b = b[size:]
	}
	return sb.String()
}
