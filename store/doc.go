// Package store provides the sqlite-backed time-bounded store for train
// positions and announcements.
//
// Both collections are append-only: rows get a created_at millisecond epoch
// at insert time and are never updated. The only deletion path is Sweep,
// which enforces the retention horizon. Rows are indexed by their entity key
// (operational train number / advertised train ident) and by created_at.
package store
