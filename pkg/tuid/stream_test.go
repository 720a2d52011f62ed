package tuid

import (
	"bytes"
	"testing"
)

func TestStreamRoundTrip(t *testing.T) {
	a, _ := FromBytes(refBytes)
	b := New()

	var buf bytes.Buffer
	if n, err := a.WriteTo(&buf); err != nil || n != 12 {
		t.Fatalf("WriteTo: n=%d err=%v", n, err)
	}
	if n, err := b.WriteTo(&buf); err != nil || n != 12 {
		t.Fatalf("WriteTo: n=%d err=%v", n, err)
	}

	got1, err := ReadFrom(&buf)
	if err != nil || got1 != a {
		t.Fatalf("ReadFrom first: %v %v", got1, err)
	}
	got2, err := ReadFrom(&buf)
	if err != nil || got2 != b {
		t.Fatalf("ReadFrom second: %v %v", got2, err)
	}
}

func TestReadFromShortStream(t *testing.T) {
	for _, n := range []int{0, 1, 11} {
		r := bytes.NewReader(refBytes[:n])
		if _, err := ReadFrom(r); err != ErrInsufficientData {
			t.Fatalf("short read of %d bytes: got %v", n, err)
		}
	}
}

func TestReadFromNilReader(t *testing.T) {
	if _, err := ReadFrom(nil); err != ErrNilInput {
		t.Fatalf("got %v", err)
	}
}
