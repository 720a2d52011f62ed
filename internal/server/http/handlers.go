package httpserver

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rzbill/tuid/internal/journal"
	logpkg "github.com/rzbill/tuid/pkg/log"
	"github.com/rzbill/tuid/pkg/tuid"
)

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	count := 1
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}
	if count > maxMintCount {
		writeError(w, http.StatusBadRequest, "count exceeds maximum of "+strconv.Itoa(maxMintCount))
		return
	}

	note := r.URL.Query().Get("note")
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := s.gen.New()
		if s.jnl != nil {
			if err := s.jnl.Append(id, "http", note); err != nil {
				s.logger.Error("journal append failed", logpkg.Err(err))
				writeError(w, http.StatusInternalServerError, "journal write failed")
				return
			}
		}
		ids = append(ids, id.String())
	}
	writeJSON(w, map[string]any{"ids": ids})
}

// inspectResponse is the decoded view of a single ID.
type inspectResponse struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Unix      int64  `json:"unix"`
	Machine   string `json:"machine"`
	Pid       uint16 `json:"pid"`
	Counter   uint32 `json:"counter"`
	Journaled bool   `json:"journaled,omitempty"`
	Source    string `json:"source,omitempty"`
	Note      string `json:"note,omitempty"`
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing id parameter")
		return
	}
	id, err := tuid.FromString(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id: want 20 characters of 0-9a-v")
		return
	}
	resp := inspectResponse{
		ID:      id.String(),
		Time:    id.Time().Format(time.RFC3339),
		Unix:    id.Time().Unix(),
		Machine: hex.EncodeToString(id.Machine()),
		Pid:     id.Pid(),
		Counter: id.Counter(),
	}
	if s.jnl != nil {
		if e, found, err := s.jnl.Get(id); err == nil && found {
			resp.Journaled = true
			resp.Source = e.Source
			resp.Note = e.Note
		}
	}
	writeJSON(w, resp)
}

func (s *Server) handleJournalList(w http.ResponseWriter, r *http.Request) {
	if s.jnl == nil {
		writeError(w, http.StatusNotFound, "journal disabled")
		return
	}
	opts := journal.ListOptions{Filter: r.URL.Query().Get("filter")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.Limit = n
	}
	if v := r.URL.Query().Get("after"); v != "" {
		after, err := tuid.FromString(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid after id")
			return
		}
		opts.After = after
	}
	entries, err := s.jnl.List(opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	writeJSON(w, map[string]any{"entries": entries})
}
