// Package service contains the user repository: the component that owns the
// authoritative in-memory user collection, applies validation and identity
// rules, answers queries, and writes every mutation through to the store.
//
// Mutations follow one order: validate, build the prospective collection,
// persist it, and only then replace the live collection. A store failure
// therefore never leaves memory and disk disagreeing.
package service
