// Package domain contains the user record, the shapes clients submit to
// create or patch it, and the validation rules every stored record obeys.
// It has no knowledge of storage or transport.
package domain
