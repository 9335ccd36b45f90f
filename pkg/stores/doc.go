// Package stores instantiates one store.Store per daybook entity kind with
// the derived filters each kind exposes. A Registry is an ordinary value:
// build one per session, per test, or per process and pass it where it is
// needed.
package stores
