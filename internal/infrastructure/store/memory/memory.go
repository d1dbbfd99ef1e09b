// Package memory is an embedded implementation of the catalog store and
// transaction contracts. State is kept normalized the same way the postgres
// schema is laid out: flat rows per entity plus link tables, with aggregates
// materialized on read. Transactions run against a snapshot that replaces the
// live state only on success, so a failed unit of work leaves no partial
// cascade behind.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
)

type sellerRow struct {
	seller        catalog.Seller // relation fields unset
	credentialsID uuid.UUID
	addressID     uuid.UUID
}

type clientRow struct {
	client        catalog.Client // relation fields unset
	credentialsID uuid.UUID
	cartID        uuid.UUID
}

type state struct {
	credentials map[uuid.UUID]catalog.Credentials
	addresses   map[uuid.UUID]catalog.Address
	carts       map[uuid.UUID]struct{}
	books       map[uuid.UUID]catalog.Book // Authors/Genres unset
	authors     map[uuid.UUID]catalog.Author
	genres      map[uuid.UUID]catalog.Genre
	publishers  map[uuid.UUID]catalog.Publisher
	sellers     map[uuid.UUID]sellerRow
	clients     map[uuid.UUID]clientRow

	cartItems       map[uuid.UUID][]uuid.UUID // cart -> book ids
	bookAuthors     map[uuid.UUID][]uuid.UUID // book -> author ids
	bookGenres      map[uuid.UUID][]uuid.UUID // book -> genre ids
	clientAddresses map[uuid.UUID][]uuid.UUID // client -> address ids

	order map[catalog.Kind][]uuid.UUID // insertion order per kind
}

func newState() *state {
	return &state{
		credentials:     map[uuid.UUID]catalog.Credentials{},
		addresses:       map[uuid.UUID]catalog.Address{},
		carts:           map[uuid.UUID]struct{}{},
		books:           map[uuid.UUID]catalog.Book{},
		authors:         map[uuid.UUID]catalog.Author{},
		genres:          map[uuid.UUID]catalog.Genre{},
		publishers:      map[uuid.UUID]catalog.Publisher{},
		sellers:         map[uuid.UUID]sellerRow{},
		clients:         map[uuid.UUID]clientRow{},
		cartItems:       map[uuid.UUID][]uuid.UUID{},
		bookAuthors:     map[uuid.UUID][]uuid.UUID{},
		bookGenres:      map[uuid.UUID][]uuid.UUID{},
		clientAddresses: map[uuid.UUID][]uuid.UUID{},
		order:           map[catalog.Kind][]uuid.UUID{},
	}
}

func cloneIDs(m map[uuid.UUID][]uuid.UUID) map[uuid.UUID][]uuid.UUID {
	cp := make(map[uuid.UUID][]uuid.UUID, len(m))
	for k, v := range m {
		cp[k] = append([]uuid.UUID(nil), v...)
	}
	return cp
}

// clone snapshots the whole state. Rows are flat value structs, so copying
// the map entries is enough; only the link and order slices need their own
// backing arrays.
func (st *state) clone() *state {
	cp := newState()
	for k, v := range st.credentials {
		cp.credentials[k] = v
	}
	for k, v := range st.addresses {
		cp.addresses[k] = v
	}
	for k, v := range st.carts {
		cp.carts[k] = v
	}
	for k, v := range st.books {
		cp.books[k] = v
	}
	for k, v := range st.authors {
		cp.authors[k] = v
	}
	for k, v := range st.genres {
		cp.genres[k] = v
	}
	for k, v := range st.publishers {
		cp.publishers[k] = v
	}
	for k, v := range st.sellers {
		cp.sellers[k] = v
	}
	for k, v := range st.clients {
		cp.clients[k] = v
	}
	cp.cartItems = cloneIDs(st.cartItems)
	cp.bookAuthors = cloneIDs(st.bookAuthors)
	cp.bookGenres = cloneIDs(st.bookGenres)
	cp.clientAddresses = cloneIDs(st.clientAddresses)
	for k, v := range st.order {
		cp.order[k] = append([]uuid.UUID(nil), v...)
	}
	return cp
}

// Store is the embedded store. It implements both catalog.Store and
// catalog.TxRunner; reads outside a transaction may observe concurrently
// committed writes, as the contract allows.
type Store struct {
	mu sync.RWMutex
	st *state
}

// New returns an empty embedded store.
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) GetByID(_ context.Context, kind catalog.Kind, id uuid.UUID) (catalog.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getByID(s.st, kind, id)
}

func (s *Store) GetAllPaged(_ context.Context, kind catalog.Kind, req catalog.PageRequest) (catalog.Page[catalog.Entity], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getAllPaged(s.st, kind, req)
}

func (s *Store) GetWhere(_ context.Context, kind catalog.Kind, filter catalog.Filter) ([]catalog.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getWhere(s.st, kind, filter)
}

func (s *Store) ExistsWhere(_ context.Context, kind catalog.Kind, filter catalog.Filter) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ents, err := getWhere(s.st, kind, filter)
	if err != nil {
		return false, err
	}
	return len(ents) > 0, nil
}

func (s *Store) Put(_ context.Context, entity catalog.Entity) (catalog.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return put(s.st, entity)
}

func (s *Store) DeleteByID(_ context.Context, kind catalog.Kind, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleteByID(s.st, kind, id)
	return nil
}

// RunInNewTransaction executes fn against a snapshot of the state. On success
// the snapshot becomes the live state; on failure it is discarded, so none of
// fn's writes are observable.
func (s *Store) RunInNewTransaction(ctx context.Context, fn func(ctx context.Context, st catalog.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(ctx, &txStore{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// txStore operates on the snapshot without locking; the owning Store holds
// the write lock for the whole transaction.
type txStore struct {
	st *state
}

func (t *txStore) GetByID(_ context.Context, kind catalog.Kind, id uuid.UUID) (catalog.Entity, error) {
	return getByID(t.st, kind, id)
}

func (t *txStore) GetAllPaged(_ context.Context, kind catalog.Kind, req catalog.PageRequest) (catalog.Page[catalog.Entity], error) {
	return getAllPaged(t.st, kind, req)
}

func (t *txStore) GetWhere(_ context.Context, kind catalog.Kind, filter catalog.Filter) ([]catalog.Entity, error) {
	return getWhere(t.st, kind, filter)
}

func (t *txStore) ExistsWhere(_ context.Context, kind catalog.Kind, filter catalog.Filter) (bool, error) {
	ents, err := getWhere(t.st, kind, filter)
	if err != nil {
		return false, err
	}
	return len(ents) > 0, nil
}

func (t *txStore) Put(_ context.Context, entity catalog.Entity) (catalog.Entity, error) {
	return put(t.st, entity)
}

func (t *txStore) DeleteByID(_ context.Context, kind catalog.Kind, id uuid.UUID) error {
	deleteByID(t.st, kind, id)
	return nil
}
