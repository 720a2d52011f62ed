// Package pebblestore provides a thin wrapper around Pebble with fsync
// policy, batches, and copy-on-read point lookups. The mint journal sits on
// top of it; IDs are written as keys, so Pebble's sorted iteration yields
// entries in chronological order without a secondary index.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./data",
//	    Fsync:   pebblestore.FsyncModeInterval,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	_ = db.Set([]byte("k"), []byte("v"))
//	v, _ := db.Get([]byte("k"))
package pebblestore
