package tuid

import (
	"crypto/md5"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGenerateLayout(t *testing.T) {
	restore := now
	now = func() time.Time { return time.Unix(1300816219, 987e6) }
	defer func() { now = restore }()

	g := NewGenerator()
	id := g.New()

	if got := id.Time().Unix(); got != 1300816219 {
		t.Fatalf("timestamp: got %d, sub-second precision must truncate", got)
	}
	if got := id.Machine(); len(got) != 3 || [3]byte{got[0], got[1], got[2]} != g.machine {
		t.Fatalf("machine: got %x want %x", got, g.machine)
	}
	if id.Pid() != g.pid {
		t.Fatalf("pid: got %#x want %#x", id.Pid(), g.pid)
	}
}

func TestCounterIncrementsWithinSecond(t *testing.T) {
	restore := now
	now = func() time.Time { return time.Unix(1000, 0) }
	defer func() { now = restore }()

	g := NewGenerator()
	a := g.New()
	b := g.New()
	if b.Counter() != (a.Counter()+1)&0xFFFFFF {
		t.Fatalf("counter: %d then %d", a.Counter(), b.Counter())
	}
	if a.Compare(b) >= 0 {
		t.Fatalf("same-second IDs must order by counter")
	}
}

func TestCounterWraps(t *testing.T) {
	g := &Generator{}
	g.counter.Store(0xFFFFFF)
	id := g.NewWithTime(time.Unix(1000, 0))
	if id.Counter() != 0 {
		t.Fatalf("counter should wrap to 0, got %d", id.Counter())
	}
}

func TestCounterSeedBelowHalfRange(t *testing.T) {
	for i := 0; i < 32; i++ {
		g := NewGenerator()
		if c := g.counter.Load(); c >= 1<<23 {
			t.Fatalf("seed %d outside [0, 2^23)", c)
		}
	}
}

func TestKSortable(t *testing.T) {
	g := NewGenerator()
	prev := g.New()
	for i := 0; i < 1000; i++ {
		next := g.New()
		if next.Compare(prev) < 0 {
			t.Fatalf("id %d sorts before its predecessor", i)
		}
		prev = next
	}
}

func TestConcurrentCountersDistinct(t *testing.T) {
	const workers = 8
	const perWorker = 2000

	g := NewGenerator()
	var mu sync.Mutex
	seen := make(map[uint32]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]uint32, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, g.New().Counter())
			}
			mu.Lock()
			for _, c := range local {
				seen[c] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != workers*perWorker {
		t.Fatalf("duplicate counters: %d distinct of %d", len(seen), workers*perWorker)
	}
}

func TestMachineFingerprintSources(t *testing.T) {
	restoreEnv, restoreHost := getenv, osHostname
	defer func() { getenv, osHostname = restoreEnv, restoreHost }()

	fromName := func(name string) [3]byte {
		var sum uint32
		digest := md5.Sum([]byte(name))
		for _, b := range digest {
			sum += uint32(b)
		}
		return [3]byte{byte(sum >> 16), byte(sum >> 8), byte(sum)}
	}

	// COMPUTERNAME takes precedence over HOSTNAME and the OS host name.
	getenv = func(key string) string {
		switch key {
		case "COMPUTERNAME":
			return "alpha"
		case "HOSTNAME":
			return "beta"
		}
		return ""
	}
	osHostname = func() (string, error) { return "gamma", nil }
	if got := machineFingerprint(); got != fromName("alpha") {
		t.Fatalf("COMPUTERNAME precedence: got %x", got)
	}

	getenv = func(key string) string {
		if key == "HOSTNAME" {
			return "beta"
		}
		return ""
	}
	if got := machineFingerprint(); got != fromName("beta") {
		t.Fatalf("HOSTNAME fallback: got %x", got)
	}

	getenv = func(string) string { return "" }
	if got := machineFingerprint(); got != fromName("gamma") {
		t.Fatalf("os.Hostname fallback: got %x", got)
	}

	// No host identity: random stand-in stays below 2^16, so the top byte of
	// the fingerprint is always zero.
	osHostname = func() (string, error) { return "", errors.New("no hostname") }
	if got := machineFingerprint(); got[0] != 0 {
		t.Fatalf("random fallback exceeded 16 bits: %x", got)
	}
}

func TestPidTruncation(t *testing.T) {
	restore := getpid
	defer func() { getpid = restore }()

	getpid = func() int { return 0x1e428 }
	g := NewGenerator()
	if g.pid != 0xe428 {
		t.Fatalf("pid truncation: got %#x", g.pid)
	}
	if got := g.New().Pid(); got != 0xe428 {
		t.Fatalf("pid field: got %#x", got)
	}
}

func TestPackageLevelNew(t *testing.T) {
	a := New()
	b := New()
	if a == b {
		t.Fatalf("consecutive IDs equal")
	}
	if a.IsNil() || b.IsNil() {
		t.Fatalf("generated ID is Nil")
	}
}
