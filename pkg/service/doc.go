// Package service wires the configuration resolver, schema loader,
// validation engine, and reload machinery into one lifecycle.
//
// A Service owns the configuration file path. Its reload cycle runs in a
// fixed order: re-resolve configuration, swap the engine to the new
// snapshot, then rebuild and atomically publish the schema index. Readers
// that arrive mid-cycle block on the loader's gate and observe a complete
// index, never a partial one.
//
// Configuration errors never stop the service. A broken file is reported
// through ConfigError and the built-in defaults take over until the next
// successful reload.
package service
