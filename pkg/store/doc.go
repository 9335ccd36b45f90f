// Package store provides Store, a generic in-memory cache for one entity
// type. A Store holds an ordered collection of entities keyed by ID, a single
// selected entity (the cursor a consumer is viewing or editing), advisory
// loading/error flags, and a set of named derived filters.
//
// Every mutation notifies subscribers synchronously with a complete
// snapshot of the post-mutation state. Snapshots are built under the store
// lock, so a subscriber never observes items and the selection out of step.
//
// A Store does not persist anything and never cascades across entity types;
// callers own both concerns.
package store
