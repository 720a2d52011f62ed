// Package journal records minted identifiers durably for later audit and
// inspection. Each entry is keyed by the raw 12 ID bytes, so Pebble returns
// entries in mint order when iterating; values carry the mint source and an
// optional note, protected by a CRC.
//
// The journal is an audit log only. It does not, and cannot, make uniqueness
// guarantees across process restarts.
//
// Example:
//
//	j, _ := journal.Open(journal.Options{DataDir: dir})
//	defer j.Close()
//	_ = j.Append(tuid.New(), "cli", "batch import")
//	entries, _ := j.List(journal.ListOptions{Limit: 100, Filter: `pid == 1234`})
package journal
