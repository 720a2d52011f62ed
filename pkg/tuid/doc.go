// Package tuid provides a 96-bit, k-sortable, configuration-free unique
// identifier.
//
// # Format
//
// An ID is 12 bytes, big-endian within each field:
//
//	[4 bytes seconds since Unix epoch][3 bytes machine][2 bytes pid][3 bytes counter]
//
// The layout matches MongoDB's ObjectID 4/3/2/3 split, so byte-wise comparison
// sorts IDs roughly by creation time, with same-second ties broken by
// machine, pid and counter. Ordering is k-sortable, not globally monotonic
// across machines.
//
// # Text form
//
// IDs encode to exactly 20 lowercase characters from the alphabet
// 0123456789abcdefghijklmnopqrstuv (regex ^[0-9a-v]{20}$), packing the 96 bits
// into twenty 5-bit groups. Encoding is total; decoding rejects any other
// length or character.
//
// # Generation
//
// A Generator holds the per-process state: a 3-byte machine fingerprint, a
// 2-byte pid fingerprint, and an atomic counter seeded randomly below 2^23.
// Generation is goroutine-safe and allocation-free. The package-level New uses
// a lazily constructed process-wide Generator.
//
// The machine fingerprint sums the bytes of an md5 digest of the host name,
// which discards most of the digest's entropy. This is the historical
// ObjectID-compatible derivation, kept for byte compatibility with stored
// identifiers; do not rely on it to distinguish hosts with certainty.
//
// Usage
//
//	id := tuid.New()
//	s := id.String()            // "9m4e2mr0ui3e8a215n4g"
//	back, err := tuid.FromString(s)
package tuid
