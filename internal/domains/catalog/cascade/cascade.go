// Package cascade propagates create, update and delete operations from an
// owning aggregate to its exclusively-owned sub-entities, inside the caller's
// transaction. Referenced-but-not-owned entities are never touched here, with
// the two documented exceptions: deleting a seller or a publisher also
// deletes every book in its collection.
package cascade

import (
	"context"

	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
)

type idSetter interface {
	SetEntityID(uuid.UUID)
}

// EnsureID assigns a fresh server-generated identity when the entity does not
// carry one yet.
func EnsureID(e catalog.Entity) uuid.UUID {
	if e.EntityID() == uuid.Nil {
		if s, ok := e.(idSetter); ok {
			s.SetEntityID(uuid.New())
		}
	}
	return e.EntityID()
}

// SaveClientOwned persists the client's owned sub-entities: credentials, cart
// and every address. A missing cart is created empty, since the cart's
// lifecycle starts with the client's. The client row itself is written by the
// caller afterwards.
func SaveClientOwned(ctx context.Context, s catalog.Store, client *catalog.Client) error {
	if client.Credentials != nil {
		EnsureID(client.Credentials)
		if _, err := s.Put(ctx, client.Credentials); err != nil {
			return err
		}
	}
	if client.Cart == nil {
		client.Cart = &catalog.Cart{}
	}
	EnsureID(client.Cart)
	if _, err := s.Put(ctx, client.Cart); err != nil {
		return err
	}
	for _, addr := range client.Addresses {
		EnsureID(addr)
		if _, err := s.Put(ctx, addr); err != nil {
			return err
		}
	}
	return nil
}

// DeleteClient removes the client row and then its owned credentials, cart
// and addresses. The owner row goes first so no foreign key still points at a
// sub-entity when it is removed. Books referenced by the cart survive: the
// cart only references them.
func DeleteClient(ctx context.Context, s catalog.Store, client *catalog.Client) error {
	if err := s.DeleteByID(ctx, catalog.KindClient, client.ID); err != nil {
		return err
	}
	if client.Credentials != nil {
		if err := s.DeleteByID(ctx, catalog.KindCredentials, client.Credentials.ID); err != nil {
			return err
		}
	}
	if client.Cart != nil {
		if err := s.DeleteByID(ctx, catalog.KindCart, client.Cart.ID); err != nil {
			return err
		}
	}
	for _, addr := range client.Addresses {
		if err := s.DeleteByID(ctx, catalog.KindAddress, addr.ID); err != nil {
			return err
		}
	}
	return nil
}

// SaveSellerOwned persists the seller's credentials and address. The seller
// row itself is written by the caller afterwards.
func SaveSellerOwned(ctx context.Context, s catalog.Store, seller *catalog.Seller) error {
	if seller.Credentials != nil {
		EnsureID(seller.Credentials)
		if _, err := s.Put(ctx, seller.Credentials); err != nil {
			return err
		}
	}
	if seller.Address != nil {
		EnsureID(seller.Address)
		if _, err := s.Put(ctx, seller.Address); err != nil {
			return err
		}
	}
	return nil
}

// DeleteSeller removes the seller row, its credentials and address, and every
// book in its collection. The book cascade makes seller deletion destructive
// to the catalog, not just to the seller row.
func DeleteSeller(ctx context.Context, s catalog.Store, seller *catalog.Seller) error {
	if err := s.DeleteByID(ctx, catalog.KindSeller, seller.ID); err != nil {
		return err
	}
	if seller.Credentials != nil {
		if err := s.DeleteByID(ctx, catalog.KindCredentials, seller.Credentials.ID); err != nil {
			return err
		}
	}
	if seller.Address != nil {
		if err := s.DeleteByID(ctx, catalog.KindAddress, seller.Address.ID); err != nil {
			return err
		}
	}
	for _, book := range seller.Books {
		if err := s.DeleteByID(ctx, catalog.KindBook, book.ID); err != nil {
			return err
		}
	}
	return nil
}

// DeletePublisher removes the publisher row and every book in its collection.
func DeletePublisher(ctx context.Context, s catalog.Store, publisher *catalog.Publisher) error {
	if err := s.DeleteByID(ctx, catalog.KindPublisher, publisher.ID); err != nil {
		return err
	}
	for _, book := range publisher.Books {
		if err := s.DeleteByID(ctx, catalog.KindBook, book.ID); err != nil {
			return err
		}
	}
	return nil
}
