// Package server wires and runs the single HTTP(S) listener vaulty exposes.
//
// It provides startup, signal handling, graceful shutdown, and a restart
// loop that re-binds the listener after an unexpected failure instead of
// treating it as fatal.
package server
