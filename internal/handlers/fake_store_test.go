package handlers

import (
	"context"
	"fmt"
	"reflect"

	"github.com/glowstack/storefront-api/internal/identity"
	"github.com/glowstack/storefront-api/internal/store"
)

// fakeStore is an in-memory store.API for handler tests.
type fakeStore struct {
	available   bool
	collections map[string][]store.Document

	insertErr error
	listErr   error

	insertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		available:   true,
		collections: map[string][]store.Document{},
	}
}

func (f *fakeStore) Available() bool { return f.available }

func (f *fakeStore) List(ctx context.Context, collection string, filter store.Filter, limit int) ([]store.Document, error) {
	if !f.available {
		return nil, store.ErrUnavailable
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	docs := []store.Document{}
	for _, doc := range f.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		docs = append(docs, doc)
		if limit > 0 && len(docs) >= limit {
			break
		}
	}
	return docs, nil
}

func (f *fakeStore) GetByID(ctx context.Context, collection, id string) (store.Document, error) {
	native, err := identity.DecodeID(id)
	if err != nil {
		return nil, err
	}
	if !f.available {
		return nil, store.ErrUnavailable
	}
	for _, doc := range f.collections[collection] {
		if doc[identity.NativeField] == identity.EncodeID(native) {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
}

func (f *fakeStore) Insert(ctx context.Context, collection string, doc store.Document) (string, error) {
	f.insertCalls++
	if !f.available {
		return "", store.ErrUnavailable
	}
	if f.insertErr != nil {
		return "", f.insertErr
	}
	id := identity.EncodeID(identity.NewID())
	stored := store.Document{identity.NativeField: id}
	for k, v := range doc {
		stored[k] = v
	}
	f.collections[collection] = append(f.collections[collection], stored)
	return id, nil
}

func (f *fakeStore) Count(ctx context.Context, collection string, filter store.Filter) (int, error) {
	if !f.available {
		return 0, store.ErrUnavailable
	}
	n := 0
	for _, doc := range f.collections[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) Exists(ctx context.Context, collection string, filter store.Filter) (bool, error) {
	if !f.available {
		return false, store.ErrUnavailable
	}
	n, err := f.Count(ctx, collection, filter)
	return n > 0, err
}

func matches(doc store.Document, filter store.Filter) bool {
	for k, v := range filter {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}
