package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/domains/catalog/cascade"
	"bookmarketplace-backend/internal/domains/catalog/reconcile"
)

type authorService struct {
	store catalog.Store
	tx    catalog.TxRunner
}

// NewAuthorService wires an AuthorService against the given store and
// transaction boundary.
func NewAuthorService(store catalog.Store, tx catalog.TxRunner) catalog.AuthorService {
	return &authorService{store: store, tx: tx}
}

func (s *authorService) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Author, error) {
	author, err := catalog.Get[*catalog.Author](ctx, s.store, id)
	if err != nil {
		return nil, notFoundOnMiss(err, catalog.KindAuthor, id)
	}
	return author, nil
}

func (s *authorService) FindByName(ctx context.Context, name string) ([]*catalog.Author, error) {
	return catalog.Where[*catalog.Author](ctx, s.store, nameFilter(name))
}

func (s *authorService) FindAllPaged(ctx context.Context, req catalog.PageRequest) (catalog.Page[*catalog.Author], error) {
	return catalog.GetAll[*catalog.Author](ctx, s.store, req)
}

func (s *authorService) Save(ctx context.Context, author *catalog.Author) (*catalog.Author, error) {
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		exists, err := st.ExistsWhere(ctx, catalog.KindAuthor, catalog.Filter{
			Field: "name",
			Op:    catalog.OpEqFold,
			Value: author.Name,
		})
		if err != nil {
			return err
		}
		if exists {
			return catalog.NewConflict(catalog.KindAuthor, author.Name)
		}
		cascade.EnsureID(author)
		_, err = st.Put(ctx, author)
		return err
	})
	if err != nil {
		return nil, err
	}
	return author, nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, incoming *catalog.Author) (*catalog.Author, error) {
	var merged *catalog.Author
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		persisted, err := catalog.Get[*catalog.Author](ctx, st, id)
		if err != nil {
			return notFoundOnMiss(err, catalog.KindAuthor, id)
		}
		merged = reconcile.Author(persisted, incoming)
		_, err = st.Put(ctx, merged)
		return err
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		_, err := catalog.Get[*catalog.Author](ctx, st, id)
		if errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil
		}
		if err != nil {
			return err
		}
		return st.DeleteByID(ctx, catalog.KindAuthor, id)
	})
}
