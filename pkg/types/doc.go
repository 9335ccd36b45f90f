// Package types defines the daybook entity types, the Entity contract every
// store and table relies on, the standard kind names, backend configuration,
// and the standard errors shared by the storage packages.
package types
