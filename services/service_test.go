package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/SierraFuelsDev/fuelwarden/store"
)

// fakeStore is an in-memory DocumentStore. Payloads are round-tripped through
// JSON so attribute values come back with the same shapes the wire produces.
type fakeStore struct {
	mu   sync.Mutex
	seq  int
	docs map[string][]*store.Document // by collection

	failNext error
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string][]*store.Document)}
}

func normalize(data map[string]any) map[string]any {
	b, _ := json.Marshal(data)
	var out map[string]any
	_ = json.Unmarshal(b, &out)
	return out
}

func (f *fakeStore) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeStore) CreateDocument(_ context.Context, _, collectionID, documentID string, data map[string]any, permissions []string) (*store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	f.seq++
	doc := &store.Document{
		ID:          documentID,
		Collection:  collectionID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Permissions: permissions,
		Data:        normalize(data),
	}
	f.docs[collectionID] = append(f.docs[collectionID], doc)
	cp := *doc
	return &cp, nil
}

func (f *fakeStore) ListDocuments(_ context.Context, _, collectionID string, queries []string) (*store.DocumentList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	var out []store.Document
	for _, doc := range f.docs[collectionID] {
		if matchesQueries(doc, queries) {
			out = append(out, *doc)
		}
	}
	return &store.DocumentList{Total: len(out), Documents: out}, nil
}

func matchesQueries(doc *store.Document, queries []string) bool {
	for _, q := range queries {
		var parsed struct {
			Method    string   `json:"method"`
			Attribute string   `json:"attribute"`
			Values    []string `json:"values"`
		}
		if err := json.Unmarshal([]byte(q), &parsed); err != nil || parsed.Method != "equal" {
			return false
		}
		v, _ := doc.Data[parsed.Attribute].(string)
		if len(parsed.Values) == 0 || v != parsed.Values[0] {
			return false
		}
	}
	return true
}

func (f *fakeStore) UpdateDocument(_ context.Context, _, collectionID, documentID string, data map[string]any) (*store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	for _, doc := range f.docs[collectionID] {
		if doc.ID == documentID {
			for k, v := range normalize(data) {
				doc.Data[k] = v
			}
			doc.UpdatedAt = time.Now()
			cp := *doc
			return &cp, nil
		}
	}
	return nil, &store.Error{Code: 404, Type: "document_not_found", Message: fmt.Sprintf("document %s not found", documentID)}
}

func (f *fakeStore) DeleteDocument(_ context.Context, _, collectionID, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	docs := f.docs[collectionID]
	for i, doc := range docs {
		if doc.ID == documentID {
			f.docs[collectionID] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return &store.Error{Code: 404, Type: "document_not_found", Message: fmt.Sprintf("document %s not found", documentID)}
}

func (f *fakeStore) count(collectionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs[collectionID])
}

func newTestService() (*DatabaseService, *fakeStore) {
	fs := newFakeStore()
	return NewDatabaseService(fs, "fuelwarden", nil, nil), fs
}
