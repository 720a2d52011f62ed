package tuid

import (
	"crypto/md5"
	crand "crypto/rand"
	"encoding/binary"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// counterSeedMask keeps the random counter seed below 2^23, half the 24-bit
// range, so a process rarely wraps within one second.
const counterSeedMask = 0x7FFFFF

// Test seams; swapped only from tests in this package.
var (
	now        = time.Now
	getenv     = os.Getenv
	osHostname = os.Hostname
	getpid     = os.Getpid
)

// Generator holds the per-process identifier state: fixed machine and pid
// fingerprints and an atomically incremented counter. The fingerprints are
// computed once at construction and never change.
type Generator struct {
	machine [3]byte
	pid     uint16
	counter atomic.Uint32
}

// NewGenerator derives the machine and pid fingerprints and seeds the counter
// with a random value below 2^23.
func NewGenerator() *Generator {
	g := &Generator{
		machine: machineFingerprint(),
		pid:     uint16(getpid()),
	}
	g.counter.Store(randUint32() & counterSeedMask)
	return g
}

// New returns a fresh ID stamped with the current wall-clock second.
func (g *Generator) New() ID {
	return g.NewWithTime(now())
}

// NewWithTime returns a fresh ID stamped with t's whole Unix seconds. Safe for
// concurrent use; every call consumes a distinct counter value mod 2^24.
// Times before the Unix epoch wrap through the unsigned conversion and produce
// an implementation-defined timestamp field.
func (g *Generator) NewWithTime(t time.Time) ID {
	var id ID
	binary.BigEndian.PutUint32(id[0:4], uint32(t.Unix()))
	copy(id[4:7], g.machine[:])
	binary.BigEndian.PutUint16(id[7:9], g.pid)
	c := g.counter.Add(1)
	id[9] = byte(c >> 16)
	id[10] = byte(c >> 8)
	id[11] = byte(c)
	return id
}

// std is the process-wide generator behind the package-level New.
var std = sync.OnceValue(NewGenerator)

// New returns a fresh ID from the process-wide Generator.
func New() ID {
	return std().New()
}

// NewWithTime returns a fresh ID with an explicit timestamp from the
// process-wide Generator.
func NewWithTime(t time.Time) ID {
	return std().NewWithTime(t)
}

// machineFingerprint derives the 3-byte host component: md5 the host name and
// sum the digest bytes. The sum collapses the digest to a few thousand
// distinct values; that is the historical ObjectID-compatible derivation,
// kept as-is for byte compatibility with stored identifiers.
func machineFingerprint() [3]byte {
	var sum uint32
	if name := machineName(); name != "" {
		digest := md5.Sum([]byte(name))
		for _, b := range digest {
			sum += uint32(b)
		}
	} else {
		// No host identity at all: a random value below 2^16 stands in for
		// the digest sum.
		sum = randUint32() & 0xFFFF
	}
	return [3]byte{byte(sum >> 16), byte(sum >> 8), byte(sum)}
}

// machineName returns the first non-empty host identity source: COMPUTERNAME,
// HOSTNAME, then the OS-reported host name.
func machineName() string {
	if v := getenv("COMPUTERNAME"); v != "" {
		return v
	}
	if v := getenv("HOSTNAME"); v != "" {
		return v
	}
	if h, err := osHostname(); err == nil {
		return h
	}
	return ""
}

// randUint32 reads the system entropy source, falling back to the wall clock
// if it is unavailable. Seeding only; not used on any ID hot path.
func randUint32() uint32 {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint32(time.Now().UnixNano())
	}
	return binary.BigEndian.Uint32(b[:])
}
