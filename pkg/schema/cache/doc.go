// Package cache persists fetched manifest payloads in SQLite so remote
// schema sources survive network outages: when a re-fetch fails, the loader
// falls back to the last cached payload instead of dropping the source.
package cache
