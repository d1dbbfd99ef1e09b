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

type clientService struct {
	store catalog.Store
	tx    catalog.TxRunner
}

// NewClientService wires a ClientService against the given store and
// transaction boundary.
func NewClientService(store catalog.Store, tx catalog.TxRunner) catalog.ClientService {
	return &clientService{store: store, tx: tx}
}

func (s *clientService) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	client, err := catalog.Get[*catalog.Client](ctx, s.store, id)
	if err != nil {
		return nil, notFoundOnMiss(err, catalog.KindClient, id)
	}
	return client, nil
}

func (s *clientService) FindByUsername(ctx context.Context, username string) (*catalog.Client, error) {
	clients, err := catalog.Where[*catalog.Client](ctx, s.store, catalog.Filter{
		Field: "username",
		Op:    catalog.OpEqFold,
		Value: username,
	})
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, catalog.NewNotFoundBy(catalog.KindClient, "username", username)
	}
	return clients[0], nil
}

func (s *clientService) FindAllPaged(ctx context.Context, req catalog.PageRequest) (catalog.Page[*catalog.Client], error) {
	return catalog.GetAll[*catalog.Client](ctx, s.store, req)
}

func (s *clientService) Save(ctx context.Context, client *catalog.Client) (*catalog.Client, error) {
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		exists, err := st.ExistsWhere(ctx, catalog.KindClient, catalog.Filter{
			Field: "cpf",
			Op:    catalog.OpEq,
			Value: client.CPF,
		})
		if err != nil {
			return err
		}
		if exists {
			return catalog.NewConflict(catalog.KindClient, client.CPF)
		}
		cascade.EnsureID(client)
		if err := cascade.SaveClientOwned(ctx, st, client); err != nil {
			return err
		}
		_, err = st.Put(ctx, client)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("client created", map[string]interface{}{"id": client.ID.String()})
	return client, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, incoming *catalog.Client) (*catalog.Client, error) {
	var merged *catalog.Client
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		persisted, err := catalog.Get[*catalog.Client](ctx, st, id)
		if err != nil {
			return notFoundOnMiss(err, catalog.KindClient, id)
		}
		merged = reconcile.Client(persisted, incoming)
		if err := cascade.SaveClientOwned(ctx, st, merged); err != nil {
			return err
		}
		_, err = st.Put(ctx, merged)
		return err
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		persisted, err := catalog.Get[*catalog.Client](ctx, st, id)
		if errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil
		}
		if err != nil {
			return err
		}
		return cascade.DeleteClient(ctx, st, persisted)
	})
}
