// Package store defines the persistence contract for the user collection and
// the error taxonomy shared by its implementations. Business code depends on
// these interfaces, never on a concrete file format.
package store
