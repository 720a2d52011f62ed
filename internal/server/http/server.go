package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rzbill/tuid/internal/journal"
	logpkg "github.com/rzbill/tuid/pkg/log"
	"github.com/rzbill/tuid/pkg/tuid"
)

// maxMintCount caps how many IDs a single request may mint.
const maxMintCount = 1000

// Options wires the server's collaborators.
type Options struct {
	Generator *tuid.Generator
	// Journal records minted IDs when non-nil.
	Journal *journal.Journal
	Logger  logpkg.Logger
}

type Server struct {
	gen    *tuid.Generator
	jnl    *journal.Journal
	logger logpkg.Logger
	srv    *http.Server
	lis    net.Listener
}

func New(opts Options) *Server {
	gen := opts.Generator
	if gen == nil {
		gen = tuid.NewGenerator()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	mux := http.NewServeMux()
	s := &Server{
		gen:    gen,
		jnl:    opts.Journal,
		logger: logger.With(logpkg.Component("http")),
		srv:    &http.Server{Handler: cors(mux)},
	}
	mux.HandleFunc("/v1/healthz", s.handleHealth)
	mux.HandleFunc("/v1/ids/new", s.handleNew)
	mux.HandleFunc("/v1/ids/inspect", s.handleInspect)
	mux.HandleFunc("/v1/journal", s.handleJournalList)
	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
