package tuid

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"sort"
	"time"
)

const (
	rawLen     = 12 // binary representation
	encodedLen = 20 // base32 text representation
)

// ID is a 12-byte, k-sortable unique identifier. The zero value is Nil.
type ID [rawLen]byte

// Nil is the all-zero identifier, the value of an uninitialized ID.
var Nil ID

// FromBytes builds an ID from a 12-byte slice.
func FromBytes(b []byte) (ID, error) {
	if b == nil {
		return Nil, ErrNilInput
	}
	if len(b) != rawLen {
		return Nil, ErrInvalidFormat
	}
	var id ID
	copy(id[:], b)
	return id, nil
}

// FromString decodes the 20-character base32 form of an ID.
func FromString(s string) (ID, error) {
	var id ID
	if !decodeString(&id, s) {
		return Nil, ErrInvalidFormat
	}
	return id, nil
}

// TryFromString decodes like FromString but never returns an error: on any
// invalid input it reports false and yields Nil.
func TryFromString(s string) (ID, bool) {
	var id ID
	if !decodeString(&id, s) {
		return Nil, false
	}
	return id, true
}

// String returns the 20-character base32 form.
func (id ID) String() string {
	var dst [encodedLen]byte
	encode(&dst, &id)
	return string(dst[:])
}

// Bytes returns a fresh copy of the raw 12 bytes.
func (id ID) Bytes() []byte {
	b := make([]byte, rawLen)
	copy(b, id[:])
	return b
}

// CopyTo writes the raw 12 bytes into dst starting at off.
func (id ID) CopyTo(dst []byte, off int) error {
	if dst == nil {
		return ErrNilInput
	}
	if off < 0 || off > len(dst)-rawLen {
		return ErrInvalidArgument
	}
	copy(dst[off:], id[:])
	return nil
}

// Time returns the timestamp component as a UTC time with second precision.
func (id ID) Time() time.Time {
	secs := int64(binary.BigEndian.Uint32(id[0:4]))
	return time.Unix(secs, 0).UTC()
}

// Machine returns a copy of the 3-byte machine fingerprint.
func (id ID) Machine() []byte {
	m := make([]byte, 3)
	copy(m, id[4:7])
	return m
}

// Pid returns the 2-byte process fingerprint.
func (id ID) Pid() uint16 {
	return binary.BigEndian.Uint16(id[7:9])
}

// Counter returns the 24-bit counter component.
func (id ID) Counter() uint32 {
	return uint32(id[9])<<16 | uint32(id[10])<<8 | uint32(id[11])
}

// IsNil reports whether id is the all-zero identifier.
func (id ID) IsNil() bool {
	return id == Nil
}

// Compare returns -1, 0 or 1 by unsigned byte-wise comparison, byte 0 most
// significant. The ordering agrees with creation time to second precision.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// Less reports whether id sorts before other.
func (id ID) Less(other ID) bool {
	return id.Compare(other) < 0
}

// Hash folds the 12 bytes left to right into a 32-bit polynomial hash.
// Equal IDs hash equal; the fold uses seed 17 and multiplier 486187739.
func (id ID) Hash() uint32 {
	h := uint32(17)
	for _, b := range id {
		h = h*486187739 + uint32(b)
	}
	return h
}

// Sort sorts ids in place into byte-wise (chronological) order.
func Sort(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	var dst [encodedLen]byte
	encode(&dst, &id)
	return dst[:], nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	var out ID
	if !decodeString(&out, string(text)) {
		*id = Nil
		return ErrInvalidFormat
	}
	*id = out
	return nil
}

// MarshalJSON encodes the ID as a quoted base32 string, or null for Nil.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsNil() {
		return []byte("null"), nil
	}
	out := make([]byte, 0, encodedLen+2)
	out = append(out, '"')
	out = append(out, id.String()...)
	out = append(out, '"')
	return out, nil
}

// UnmarshalJSON implements json.Unmarshaler; null decodes to Nil.
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = Nil
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return ErrInvalidFormat
	}
	return id.UnmarshalText(b[1 : len(b)-1])
}

// Value implements driver.Valuer, storing the text form; Nil stores NULL.
func (id ID) Value() (driver.Value, error) {
	if id.IsNil() {
		return nil, nil
	}
	return id.String(), nil
}

// Scan implements sql.Scanner for string, []byte and NULL columns.
func (id *ID) Scan(value any) error {
	switch v := value.(type) {
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		return id.UnmarshalText(v)
	case nil:
		*id = Nil
		return nil
	default:
		return fmt.Errorf("tuid: cannot scan %T: %w", value, ErrInvalidArgument)
	}
}
