package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/domains/catalog/cascade"
	"bookmarketplace-backend/internal/domains/catalog/reconcile"
)

type genreService struct {
	store catalog.Store
	tx    catalog.TxRunner
}

// NewGenreService wires a GenreService against the given store and
// transaction boundary.
func NewGenreService(store catalog.Store, tx catalog.TxRunner) catalog.GenreService {
	return &genreService{store: store, tx: tx}
}

func (s *genreService) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	genre, err := catalog.Get[*catalog.Genre](ctx, s.store, id)
	if err != nil {
		return nil, notFoundOnMiss(err, catalog.KindGenre, id)
	}
	return genre, nil
}

func (s *genreService) FindByName(ctx context.Context, name string) ([]*catalog.Genre, error) {
	return catalog.Where[*catalog.Genre](ctx, s.store, nameFilter(name))
}

func (s *genreService) FindAllPaged(ctx context.Context, req catalog.PageRequest) (catalog.Page[*catalog.Genre], error) {
	return catalog.GetAll[*catalog.Genre](ctx, s.store, req)
}

func (s *genreService) Save(ctx context.Context, genre *catalog.Genre) (*catalog.Genre, error) {
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		cascade.EnsureID(genre)
		_, err := st.Put(ctx, genre)
		return err
	})
	if err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Update(ctx context.Context, id uuid.UUID, incoming *catalog.Genre) (*catalog.Genre, error) {
	var merged *catalog.Genre
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		persisted, err := catalog.Get[*catalog.Genre](ctx, st, id)
		if err != nil {
			return notFoundOnMiss(err, catalog.KindGenre, id)
		}
		merged = reconcile.Genre(persisted, incoming)
		_, err = st.Put(ctx, merged)
		return err
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *genreService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		_, err := catalog.Get[*catalog.Genre](ctx, st, id)
		if errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil
		}
		if err != nil {
			return err
		}
		return st.DeleteByID(ctx, catalog.KindGenre, id)
	})
}
