package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ClientService manages client aggregates. Clients are created and looked up
// by the account flow, so there is no paged public listing consumer, but the
// operation is exposed like every other aggregate's.
type ClientService interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByUsername(ctx context.Context, username string) (*Client, error)
	FindAllPaged(ctx context.Context, req PageRequest) (Page[*Client], error)
	Save(ctx context.Context, client *Client) (*Client, error)
	Update(ctx context.Context, id uuid.UUID, incoming *Client) (*Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SellerService manages seller aggregates. FindAllPaged redacts each seller
// to its public view; every other lookup returns the full aggregate.
type SellerService interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)
	FindByName(ctx context.Context, name string) ([]*Seller, error)
	FindAllPaged(ctx context.Context, req PageRequest) (Page[SellerView], error)
	Save(ctx context.Context, seller *Seller) (*Seller, error)
	Update(ctx context.Context, id uuid.UUID, incoming *Seller) (*Seller, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookService manages book aggregates.
type BookService interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)
	FindByTitle(ctx context.Context, title string) ([]*Book, error)
	FindAllPaged(ctx context.Context, req PageRequest) (Page[*Book], error)
	Save(ctx context.Context, book *Book) (*Book, error)
	Update(ctx context.Context, id uuid.UUID, incoming *Book) (*Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthorService manages author aggregates.
type AuthorService interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)
	FindByName(ctx context.Context, name string) ([]*Author, error)
	FindAllPaged(ctx context.Context, req PageRequest) (Page[*Author], error)
	Save(ctx context.Context, author *Author) (*Author, error)
	Update(ctx context.Context, id uuid.UUID, incoming *Author) (*Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// GenreService manages genre aggregates.
type GenreService interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Genre, error)
	FindByName(ctx context.Context, name string) ([]*Genre, error)
	FindAllPaged(ctx context.Context, req PageRequest) (Page[*Genre], error)
	Save(ctx context.Context, genre *Genre) (*Genre, error)
	Update(ctx context.Context, id uuid.UUID, incoming *Genre) (*Genre, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PublisherService manages publisher aggregates.
type PublisherService interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Publisher, error)
	FindByName(ctx context.Context, name string) ([]*Publisher, error)
	FindAllPaged(ctx context.Context, req PageRequest) (Page[*Publisher], error)
	Save(ctx context.Context, publisher *Publisher) (*Publisher, error)
	Update(ctx context.Context, id uuid.UUID, incoming *Publisher) (*Publisher, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
