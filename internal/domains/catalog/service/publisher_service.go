package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/domains/catalog/cascade"
	"bookmarketplace-backend/internal/domains/catalog/reconcile"
	"bookmarketplace-backend/pkg/logger"
)

type publisherService struct {
	store catalog.Store
	tx    catalog.TxRunner
}

// NewPublisherService wires a PublisherService against the given store and
// transaction boundary.
func NewPublisherService(store catalog.Store, tx catalog.TxRunner) catalog.PublisherService {
	return &publisherService{store: store, tx: tx}
}

func (s *publisherService) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Publisher, error) {
	publisher, err := catalog.Get[*catalog.Publisher](ctx, s.store, id)
	if err != nil {
		return nil, notFoundOnMiss(err, catalog.KindPublisher, id)
	}
	return publisher, nil
}

func (s *publisherService) FindByName(ctx context.Context, name string) ([]*catalog.Publisher, error) {
	return catalog.Where[*catalog.Publisher](ctx, s.store, nameFilter(name))
}

func (s *publisherService) FindAllPaged(ctx context.Context, req catalog.PageRequest) (catalog.Page[*catalog.Publisher], error) {
	return catalog.GetAll[*catalog.Publisher](ctx, s.store, req)
}

func (s *publisherService) Save(ctx context.Context, publisher *catalog.Publisher) (*catalog.Publisher, error) {
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		cascade.EnsureID(publisher)
		_, err := st.Put(ctx, publisher)
		return err
	})
	if err != nil {
		return nil, err
	}
	return publisher, nil
}

func (s *publisherService) Update(ctx context.Context, id uuid.UUID, incoming *catalog.Publisher) (*catalog.Publisher, error) {
	var merged *catalog.Publisher
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		persisted, err := catalog.Get[*catalog.Publisher](ctx, st, id)
		if err != nil {
			return notFoundOnMiss(err, catalog.KindPublisher, id)
		}
		merged = reconcile.Publisher(persisted, incoming)
		_, err = st.Put(ctx, merged)
		return err
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete removes the publisher and every book in its collection. Destructive
// to the shared catalog, kept for compatibility with the established
// behavior.
func (s *publisherService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		persisted, err := catalog.Get[*catalog.Publisher](ctx, st, id)
		if errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil
		}
		if err != nil {
			return err
		}
		return cascade.DeletePublisher(ctx, st, persisted)
	})
	if err != nil {
		return err
	}
	logger.Info("publisher deleted", map[string]interface{}{"id": id.String()})
	return nil
}
