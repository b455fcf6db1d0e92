package gplocal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to handle the import format.
// An import payload is a Document in JSON, typically a previous JSON export.

var (
	// ErrInvalidImport is returned when an import payload is not valid JSON or not a Document.
	ErrInvalidImport = errors.New("invalid import payload")
	// ErrMissingProducts is returned when an import payload has no "products" list.
	ErrMissingProducts = errors.New("import payload has no products")
)

// ParseDocument reads an import payload from r.
func ParseDocument(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	products, err := jsonpath.Get("$.products", jobj)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMissingProducts, err)
	}
	if _, ok := products.([]any); !ok {
		return Document{}, fmt.Errorf("%w: got %T", ErrMissingProducts, products)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	return doc, nil
}

// Import merges the document read from r into the stored one, and saves the result.
//
// Nothing is saved unless the whole payload is valid and the stored document
// could be read.
func (s *Store) Import(ctx context.Context, r io.Reader) (Document, error) {
	incoming, err := ParseDocument(r)
	if err != nil {
		s.rec.DocumentImported(err)
		return Document{}, err
	}
	return s.ImportDocument(ctx, incoming)
}

// ImportDocument merges incoming into the stored document, and saves the result.
func (s *Store) ImportDocument(ctx context.Context, incoming Document) (Document, error) {
	merged, err := s.importDocument(ctx, incoming)
	s.rec.DocumentImported(err)
	return merged, err
}

func (s *Store) importDocument(ctx context.Context, incoming Document) (Document, error) {
	if incoming.Products == nil {
		return Document{}, ErrMissingProducts
	}
	local, err := s.Fetch(ctx)
	if err != nil {
		return Document{}, err
	}
	merged := Merge(local, incoming)
	if err := s.Save(ctx, merged); err != nil {
		return Document{}, err
	}
	return merged, nil
}
