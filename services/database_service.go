package services

import (
	"context"
	"sync"

	"github.com/SierraFuelsDev/fuelwarden/models"
	"github.com/SierraFuelsDev/fuelwarden/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Collection ids inside the hosted database.
const (
	CollectionUserProfiles     = "user_profiles"
	CollectionMealLogs         = "meal_logs"
	CollectionMealPlans        = "meal_plans"
	CollectionActivitySchedule = "activity_schedule"
)

// DocumentStore is the slice of the store client the data access layer
// consumes; the concrete implementation lives in the store package.
type DocumentStore interface {
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any, permissions []string) (*store.Document, error)
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (*store.DocumentList, error)
	UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*store.Document, error)
	DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error
}

// DatabaseService is the single point of translation between domain types and
// remote document operations. It owns validation and field-shape
// transformation; ownership checks stay with the remote store.
type DatabaseService struct {
	store      DocumentStore
	databaseID string
	hub        *RealtimeHub
	log        *zap.SugaredLogger
	locks      *userLocks
}

func NewDatabaseService(st DocumentStore, databaseID string, hub *RealtimeHub, logger *zap.SugaredLogger) *DatabaseService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DatabaseService{
		store:      st,
		databaseID: databaseID,
		hub:        hub,
		log:        logger,
		locks:      newUserLocks(),
	}
}

// userLocks serializes upserts per user. This narrows the read-then-write
// window inside one process only; two tabs against two replicas can still
// race, which is the accepted weak spot for self-owned data.
type userLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{m: make(map[string]*sync.Mutex)}
}

func (l *userLocks) forUser(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.m[userID]; ok {
		return m
	}
	m := &sync.Mutex{}
	l.m[userID] = m
	return m
}

// newDocumentID mirrors the store SDK's unique-id helper.
func newDocumentID() string { return uuid.NewString() }

// mapStoreErr translates a store failure into the domain taxonomy, always
// keeping the attempted operation in the message. Nothing is swallowed.
func mapStoreErr(op, collection, documentID string, err error) error {
	switch {
	case store.IsNotFound(err):
		return &models.NotFoundError{Collection: collection, DocumentID: documentID}
	case store.IsForbidden(err):
		return &models.PermissionError{DocumentID: documentID}
	case store.IsUnauthorized(err):
		return models.ErrNotAuthenticated
	default:
		return &models.RemoteError{Op: op, Err: err}
	}
}

func (s *DatabaseService) publish(kind, collection, userID string, payload any) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(userID, DocumentEvent{Kind: kind, Collection: collection, Payload: payload})
}

// singletonDoc picks the document for a singleton entity out of a list
// result. More than one stored document is a data-integrity anomaly: it gets
// logged and the first is returned deterministically.
func (s *DatabaseService) singletonDoc(collection, userID string, list *store.DocumentList) *store.Document {
	if len(list.Documents) == 0 {
		return nil
	}
	if len(list.Documents) > 1 {
		s.log.Warnw("multiple documents for singleton entity, using first",
			"collection", collection, "userId", userID, "count", len(list.Documents))
	}
	return &list.Documents[0]
}

// Decoding helpers for document attribute payloads. JSON numbers arrive as
// float64; arrays as []any.

func docString(d *store.Document, key string) string {
	v, _ := d.Data[key].(string)
	return v
}

func docFloat(d *store.Document, key string) float64 {
	v, _ := d.Data[key].(float64)
	return v
}

func docInt(d *store.Document, key string) int {
	return int(docFloat(d, key))
}

func docStrings(d *store.Document, key string) []string {
	raw, ok := d.Data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
