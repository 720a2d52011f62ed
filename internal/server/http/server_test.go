package httpserver

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rzbill/tuid/internal/journal"
	pebblestore "github.com/rzbill/tuid/internal/storage/pebble"
	"github.com/rzbill/tuid/pkg/tuid"
)

func newTestServer(t *testing.T, withJournal bool) *Server {
	t.Helper()
	opts := Options{Generator: tuid.NewGenerator()}
	if withJournal {
		j, err := journal.Open(journal.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeNever})
		if err != nil {
			t.Fatalf("journal: %v", err)
		}
		t.Cleanup(func() { _ = j.Close() })
		opts.Journal = j
	}
	return New(opts)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/healthz", nil))
	if rec.Code != 200 {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestMint(t *testing.T) {
	s := newTestServer(t, true)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/v1/ids/new?count=3", nil))
	if rec.Code != 200 {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		IDs []string `json:"ids"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.IDs) != 3 {
		t.Fatalf("ids: %v", resp.IDs)
	}
	for _, raw := range resp.IDs {
		if _, err := tuid.FromString(raw); err != nil {
			t.Fatalf("minted invalid id %q", raw)
		}
	}
}

func TestMintValidation(t *testing.T) {
	s := newTestServer(t, false)
	for _, url := range []string{
		"/v1/ids/new?count=0",
		"/v1/ids/new?count=-1",
		"/v1/ids/new?count=abc",
		"/v1/ids/new?count=999999",
	} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest("POST", url, nil))
		if rec.Code != 400 {
			t.Fatalf("%s: status %d", url, rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/ids/new", nil))
	if rec.Code != 405 {
		t.Fatalf("GET mint: status %d", rec.Code)
	}
}

func TestInspect(t *testing.T) {
	s := newTestServer(t, false)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/ids/inspect?id=9m4e2mr0ui3e8a215n4g", nil))
	if rec.Code != 200 {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body.String())
	}
	var resp inspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Unix != 1300816219 || resp.Pid != 0xe428 || resp.Counter != 4271561 || resp.Machine != "60f486" {
		t.Fatalf("decoded: %+v", resp)
	}

	for _, id := range []string{"", "short", "9M4E2MR0UI3E8A215N4G"} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/ids/inspect?id="+id, nil))
		if rec.Code != 400 {
			t.Fatalf("id %q: status %d", id, rec.Code)
		}
	}
}

func TestJournalEndpoint(t *testing.T) {
	s := newTestServer(t, true)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/v1/ids/new?count=2&note=batch", nil))
	if rec.Code != 200 {
		t.Fatalf("mint: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/journal?filter=source%20%3D%3D%20%22http%22", nil))
	if rec.Code != 200 {
		t.Fatalf("list: %d body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Entries []journal.Entry `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("entries: %+v", resp.Entries)
	}
	if resp.Entries[0].Note != "batch" {
		t.Fatalf("note: %+v", resp.Entries[0])
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/journal?filter=((bad", nil))
	if rec.Code != 400 {
		t.Fatalf("bad filter: %d", rec.Code)
	}
}

func TestJournalDisabled(t *testing.T) {
	s := newTestServer(t, false)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/journal", nil))
	if rec.Code != 404 {
		t.Fatalf("status: %d", rec.Code)
	}
}
