package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/rzbill/tuid/internal/storage/pebble"
	logpkg "github.com/rzbill/tuid/pkg/log"
	"github.com/rzbill/tuid/pkg/tuid"
)

// Entry is one recorded mint.
type Entry struct {
	ID     tuid.ID `json:"id"`
	Source string  `json:"source"`
	Note   string  `json:"note,omitempty"`
}

// Options configures a Journal.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	// MaxListLimit caps List results; 0 means the built-in default of 1000.
	MaxListLimit int
	Logger       logpkg.Logger
}

// ListOptions selects which entries List returns.
type ListOptions struct {
	// After restricts results to entries strictly newer than this ID.
	After tuid.ID
	// Limit caps the result count; 0 means the journal's max.
	Limit int
	// Filter is an optional CEL expression over id, ts, machine, pid,
	// counter, source, note and now.
	Filter string
}

// Journal is a durable record of minted IDs backed by Pebble.
type Journal struct {
	db      *pebblestore.DB
	logger  logpkg.Logger
	maxList int
}

// Open opens or creates the journal under opts.DataDir.
func Open(opts Options) (*Journal, error) {
	if opts.DataDir == "" {
		return nil, errors.New("journal: Options.DataDir is required")
	}
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("journal: open store: %w", err)
	}
	maxList := opts.MaxListLimit
	if maxList <= 0 {
		maxList = 1000
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Journal{
		db:      db,
		logger:  logger.With(logpkg.Component("journal")),
		maxList: maxList,
	}, nil
}

// Close releases the underlying store.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}

// Append records a minted ID. Appending Nil is an error; re-appending an
// existing ID overwrites its entry.
func (j *Journal) Append(id tuid.ID, source, note string) error {
	if id.IsNil() {
		return errors.New("journal: refusing to record the nil ID")
	}
	if err := j.db.Set(id.Bytes(), encodeValue(source, note)); err != nil {
		return fmt.Errorf("journal: append: %w", err)
	}
	j.logger.Debug("recorded mint", logpkg.Str("id", id.String()), logpkg.Str("source", source))
	return nil
}

// Get looks up a single entry by ID.
func (j *Journal) Get(id tuid.ID) (Entry, bool, error) {
	v, err := j.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebblestore.ErrNotFound) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("journal: get: %w", err)
	}
	source, note, ok := decodeValue(v)
	if !ok {
		return Entry{}, false, fmt.Errorf("journal: corrupt entry for %s", id)
	}
	return Entry{ID: id, Source: source, Note: note}, true, nil
}

// List returns entries in mint (key) order, optionally filtered by a CEL
// expression. Corrupt values are skipped with a warning rather than failing
// the whole listing.
func (j *Journal) List(opts ListOptions) ([]Entry, error) {
	filter, err := newCELFilter(opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("journal: filter: %w", err)
	}
	limit := opts.Limit
	if limit <= 0 || limit > j.maxList {
		limit = j.maxList
	}

	iterOpts := &pebble.IterOptions{}
	if !opts.After.IsNil() {
		// Keys are the raw ID bytes; the smallest key strictly greater than
		// After is After+1 in byte order.
		lower := opts.After.Bytes()
		for i := len(lower) - 1; i >= 0; i-- {
			lower[i]++
			if lower[i] != 0 {
				break
			}
		}
		iterOpts.LowerBound = lower
	}

	it, err := j.db.NewIter(iterOpts)
	if err != nil {
		return nil, fmt.Errorf("journal: iterate: %w", err)
	}
	defer it.Close()

	var out []Entry
	for valid := it.First(); valid && len(out) < limit; valid = it.Next() {
		id, err := tuid.FromBytes(it.Key())
		if err != nil {
			j.logger.Warn("skipping malformed journal key", logpkg.Str("key", fmt.Sprintf("%x", it.Key())))
			continue
		}
		source, note, ok := decodeValue(it.Value())
		if !ok {
			j.logger.Warn("skipping corrupt journal entry", logpkg.Str("id", id.String()))
			continue
		}
		e := Entry{ID: id, Source: source, Note: note}
		if filter.Eval(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
