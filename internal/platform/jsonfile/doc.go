// Package jsonfile provides a file-backed implementation of store.UserStore.
// The whole collection lives in one human-readable JSON array that is read
// once and rewritten in full on every save.
package jsonfile
