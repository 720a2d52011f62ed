package journal

import (
	"encoding/binary"
	"hash/crc32"
)

// Value encoding: varint sourceLen | source | note | crc32c(source|note)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func encodeValue(source, note string) []byte {
	out := make([]byte, 0, 10+len(source)+len(note)+4)
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(len(source)))
	out = append(out, tmp[:n]...)
	out = append(out, source...)
	out = append(out, note...)

	crc := crc32.Update(0, castagnoli, []byte(source))
	crc = crc32.Update(crc, castagnoli, []byte(note))
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	return append(out, crcb[:]...)
}

func decodeValue(b []byte) (source, note string, ok bool) {
	if len(b) < 1+4 {
		return "", "", false
	}
	slen, n := binary.Uvarint(b)
	if n <= 0 || int(slen)+n+4 > len(b) {
		return "", "", false
	}
	src := b[n : n+int(slen)]
	nt := b[n+int(slen) : len(b)-4]
	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	crc := crc32.Update(0, castagnoli, src)
	crc = crc32.Update(crc, castagnoli, nt)
	if crc != expect {
		return "", "", false
	}
	return string(src), string(nt), true
}
