package log

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// FieldType tags the union stored in a ZField so Value can render it without
// reflection. The hex widths mirror the console's own bus widths: Hex8 for a
// register or DAC sample, Hex16 for a CPU/PPU address, Hex32/Hex64 for the
// wider cycle counters the PPU and APU run on.
type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeHex32
	FieldTypeHex64
	FieldTypeInt
	FieldTypeUint
	FieldTypeError
	FieldTypeDuration
	FieldTypeStringer
	FieldTypeBlob
)

// hexDigits maps a hex FieldType to the zero-padded width its value is
// rendered at, so a register dump lines up in a terminal regardless of the
// magnitude of any one value logged.
var hexDigits = map[FieldType]int{
	FieldTypeHex8:  2,
	FieldTypeHex16: 4,
	FieldTypeHex32: 8,
	FieldTypeHex64: 16,
}

// ZField is one key/value pair attached to a structured log line. Only the
// member matching Type holds a meaningful value; the rest sit at their zero
// value and are ignored by Value.
type ZField struct {
	Type FieldType
	Key  string

	String    string
	Integer   uint64
	Duration  time.Duration
	Error     error
	Interface any
	Boolean   bool
	Blob      []byte
}

// Value renders the field as text for the logrus backend.
func (f *ZField) Value() string {
	if digits, ok := hexDigits[f.Type]; ok {
		return fmt.Sprintf("%0*x", digits, f.Integer)
	}
	switch f.Type {
	case FieldTypeBool:
		return strconv.FormatBool(f.Boolean)
	case FieldTypeString:
		return f.String
	case FieldTypeUint:
		return strconv.FormatUint(f.Integer, 10)
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	case FieldTypeDuration:
		return f.Duration.String()
	case FieldTypeStringer:
		return f.Interface.(fmt.Stringer).String()
	case FieldTypeBlob:
		return hex.Dump(f.Blob)
	default:
		return ""
	}
}
