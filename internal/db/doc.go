// Package db persists post-processing runs and their scores in SQLite.
//
// The schema is managed by golang-migrate from migrations embedded in the
// binary. Writes go through retryOnBusy so several CLI invocations can share
// one database file.
package db
