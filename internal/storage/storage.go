// Package storage holds what every persistence backend shares: the not-found
// sentinel and the strict JSON document codec.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// Document is a stored entity that can check its own invariants.
type Document interface {
	Validate() error
}

// Decode parses a stored document, rejecting unknown fields and documents
// that fail validation.
//
// Precondition: T must be a struct type whose pointer implements Document.
// Postcondition: Returns a validated *T or an error naming the problem.
func Decode[T any, PT interface {
	*T
	Document
}](data []byte) (*T, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var v T
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if err := PT(&v).Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// Encode validates doc and serializes it for storage.
func Encode(doc Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}
