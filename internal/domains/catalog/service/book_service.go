package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/domains/catalog/cascade"
	"bookmarketplace-backend/internal/domains/catalog/reconcile"
)

type bookService struct {
	store catalog.Store
	tx    catalog.TxRunner
}

// NewBookService wires a BookService against the given store and transaction
// boundary.
func NewBookService(store catalog.Store, tx catalog.TxRunner) catalog.BookService {
	return &bookService{store: store, tx: tx}
}

func (s *bookService) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	book, err := catalog.Get[*catalog.Book](ctx, s.store, id)
	if err != nil {
		return nil, notFoundOnMiss(err, catalog.KindBook, id)
	}
	return book, nil
}

func (s *bookService) FindByTitle(ctx context.Context, title string) ([]*catalog.Book, error) {
	return catalog.Where[*catalog.Book](ctx, s.store, catalog.Filter{
		Field: "title",
		Op:    catalog.OpContainsFold,
		Value: title,
	})
}

func (s *bookService) FindAllPaged(ctx context.Context, req catalog.PageRequest) (catalog.Page[*catalog.Book], error) {
	return catalog.GetAll[*catalog.Book](ctx, s.store, req)
}

// Save persists a new book. ISBN uniqueness is deliberately not enforced at
// this layer. Authors and genres referenced by the book must already exist.
func (s *bookService) Save(ctx context.Context, book *catalog.Book) (*catalog.Book, error) {
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		cascade.EnsureID(book)
		_, err := st.Put(ctx, book)
		return err
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, incoming *catalog.Book) (*catalog.Book, error) {
	var merged *catalog.Book
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		persisted, err := catalog.Get[*catalog.Book](ctx, st, id)
		if err != nil {
			return notFoundOnMiss(err, catalog.KindBook, id)
		}
		merged = reconcile.Book(persisted, incoming)
		_, err = st.Put(ctx, merged)
		return err
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		_, err := catalog.Get[*catalog.Book](ctx, st, id)
		if errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil
		}
		if err != nil {
			return err
		}
		return st.DeleteByID(ctx, catalog.KindBook, id)
	})
}
