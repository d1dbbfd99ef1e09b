package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/domains/catalog/cascade"
	"bookmarketplace-backend/internal/domains/catalog/reconcile"
	"bookmarketplace-backend/pkg/logger"
)

type sellerService struct {
	store catalog.Store
	tx    catalog.TxRunner
}

// NewSellerService wires a SellerService against the given store and
// transaction boundary.
func NewSellerService(store catalog.Store, tx catalog.TxRunner) catalog.SellerService {
	return &sellerService{store: store, tx: tx}
}

func (s *sellerService) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Seller, error) {
	seller, err := catalog.Get[*catalog.Seller](ctx, s.store, id)
	if err != nil {
		return nil, notFoundOnMiss(err, catalog.KindSeller, id)
	}
	return seller, nil
}

func (s *sellerService) FindByName(ctx context.Context, name string) ([]*catalog.Seller, error) {
	return catalog.Where[*catalog.Seller](ctx, s.store, nameFilter(name))
}

// FindAllPaged lists sellers redacted to their public view. Page metadata is
// computed against the unredacted query and preserved by the projection.
func (s *sellerService) FindAllPaged(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.SellerView], error) {
	page, err := catalog.GetAll[*catalog.Seller](ctx, s.store, req)
	if err != nil {
		return catalog.Page[catalog.SellerView]{}, err
	}
	return catalog.MapPage(page, func(seller *catalog.Seller) catalog.SellerView {
		return seller.View()
	}), nil
}

func (s *sellerService) Save(ctx context.Context, seller *catalog.Seller) (*catalog.Seller, error) {
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		nameTaken, err := st.ExistsWhere(ctx, catalog.KindSeller, catalog.Filter{
			Field: "name",
			Op:    catalog.OpEqFold,
			Value: seller.Name,
		})
		if err != nil {
			return err
		}
		phoneTaken, err := st.ExistsWhere(ctx, catalog.KindSeller, catalog.Filter{
			Field: "phone",
			Op:    catalog.OpEq,
			Value: seller.Phone,
		})
		if err != nil {
			return err
		}
		if nameTaken || phoneTaken {
			return catalog.NewConflict(catalog.KindSeller, seller.Name)
		}
		cascade.EnsureID(seller)
		if seller.CreatedAt.IsZero() {
			seller.CreatedAt = time.Now().UTC()
		}
		if err := cascade.SaveSellerOwned(ctx, st, seller); err != nil {
			return err
		}
		_, err = st.Put(ctx, seller)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("seller created", map[string]interface{}{"id": seller.ID.String()})
	return seller, nil
}

func (s *sellerService) Update(ctx context.Context, id uuid.UUID, incoming *catalog.Seller) (*catalog.Seller, error) {
	var merged *catalog.Seller
	err := s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		persisted, err := catalog.Get[*catalog.Seller](ctx, st, id)
		if err != nil {
			return notFoundOnMiss(err, catalog.KindSeller, id)
		}
		merged = reconcile.Seller(persisted, incoming)
		if err := cascade.SaveSellerOwned(ctx, st, merged); err != nil {
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

func (s *sellerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		persisted, err := catalog.Get[*catalog.Seller](ctx, st, id)
		if errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil
		}
		if err != nil {
			return err
		}
		return cascade.DeleteSeller(ctx, st, persisted)
	})
}
