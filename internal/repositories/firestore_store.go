package repositories

import (
	"context"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreStore is the document-store implementation of Store. Outside a
// transaction tx is nil and operations go straight to the client; inside
// RunInTransaction every repository runs against the same tx handle.
type firestoreStore struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

// NewFirestoreStore creates a Store backed by a Firestore client.
func NewFirestoreStore(client *firestore.Client) Store {
	return &firestoreStore{client: client}
}

func (s *firestoreStore) Products() ProductRepository    { return &firestoreProductRepository{s} }
func (s *firestoreStore) Categories() CategoryRepository { return &firestoreCategoryRepository{s} }
func (s *firestoreStore) Users() UserRepository          { return &firestoreUserRepository{s} }
func (s *firestoreStore) Orders() OrderRepository        { return &firestoreOrderRepository{s} }
func (s *firestoreStore) Banners() BannerRepository      { return &firestoreBannerRepository{s} }
func (s *firestoreStore) Settings() SettingRepository    { return &firestoreSettingRepository{s} }

// RunInTransaction executes fn against a transaction-scoped store.
// Firestore requires every read in a transaction to happen before the first
// write; the order-placement sequence satisfies that naturally.
func (s *firestoreStore) RunInTransaction(ctx context.Context, fn func(Store) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(&firestoreStore{client: s.client, tx: tx})
	})
}

func docID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (s *firestoreStore) getDoc(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if s.tx != nil {
		return s.tx.Get(ref)
	}
	return ref.Get(ctx)
}

func (s *firestoreStore) setDoc(ctx context.Context, ref *firestore.DocumentRef, data interface{}) error {
	if s.tx != nil {
		return s.tx.Set(ref, data)
	}
	_, err := ref.Set(ctx, data)
	return err
}

func (s *firestoreStore) deleteDoc(ctx context.Context, ref *firestore.DocumentRef) error {
	if s.tx != nil {
		return s.tx.Delete(ref)
	}
	_, err := ref.Delete(ctx)
	return err
}

func (s *firestoreStore) runQuery(ctx context.Context, q firestore.Query) *firestore.DocumentIterator {
	if s.tx != nil {
		return s.tx.Documents(q)
	}
	return q.Documents(ctx)
}

// nextID allocates a numeric ID from the counters collection. It always
// runs its own small transaction, independent of any ambient one, so an ID
// consumed by a rolled-back write is burned rather than reused.
func (s *firestoreStore) nextID(ctx context.Context, collection string) (uint, error) {
	ref := s.client.Collection("counters").Doc(collection)
	var id uint
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		next := int64(1)
		snap, err := tx.Get(ref)
		if err == nil {
			cur, dataErr := snap.DataAt("value")
			if dataErr != nil {
				return dataErr
			}
			if n, ok := cur.(int64); ok {
				next = n + 1
			}
		} else if !isNotFound(err) {
			return err
		}
		id = uint(next)
		return tx.Set(ref, map[string]interface{}{"value": next})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s ID: %w", collection, err)
	}
	return id, nil
}
