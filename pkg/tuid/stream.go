package tuid

import "io"

// WriteTo writes the raw 12 bytes to w. Implements io.WriterTo.
func (id ID) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(id[:])
	return int64(n), err
}

// ReadFrom reads exactly 12 bytes from r and reconstructs the ID. A stream
// that ends short of a full identifier reports ErrInsufficientData, never a
// truncated ID.
func ReadFrom(r io.Reader) (ID, error) {
	if r == nil {
		return Nil, ErrNilInput
	}
	var id ID
	if _, err := io.ReadFull(r, id[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Nil, ErrInsufficientData
		}
		return Nil, err
	}
	return id, nil
}
