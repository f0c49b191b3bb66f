// Package sqlite keeps merge run history in ~/.kmzmerge/data/history.db.
//
// It uses the pure Go modernc.org/sqlite driver, so kmzmerge builds without
// cgo. The schema is managed by golang-migrate from the NNN_name.up.sql and
// .down.sql pairs embedded from migrations/. The database runs in WAL mode so
// the TUI can list history while a merge is being recorded.
package sqlite
