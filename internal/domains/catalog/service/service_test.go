package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/domains/catalog/service"
	"bookmarketplace-backend/internal/infrastructure/store/memory"
)

type fixture struct {
	store      *memory.Store
	clients    catalog.ClientService
	sellers    catalog.SellerService
	books      catalog.BookService
	authors    catalog.AuthorService
	genres     catalog.GenreService
	publishers catalog.PublisherService
}

func newFixture() *fixture {
	store := memory.New()
	return &fixture{
		store:      store,
		clients:    service.NewClientService(store, store),
		sellers:    service.NewSellerService(store, store),
		books:      service.NewBookService(store, store),
		authors:    service.NewAuthorService(store, store),
		genres:     service.NewGenreService(store, store),
		publishers: service.NewPublisherService(store, store),
	}
}

func newSeller(name, phone string) *catalog.Seller {
	return &catalog.Seller{
		Name:        name,
		Phone:       phone,
		Credentials: &catalog.Credentials{Username: name, Password: "secret", Role: catalog.RoleSeller},
		Address:     &catalog.Address{Line: "Rua A", City: "São Paulo", Country: "BR"},
	}
}

func newClient(name, cpf string) *catalog.Client {
	return &catalog.Client{
		Name:        name,
		CPF:         cpf,
		Email:       name + "@example.com",
		Credentials: &catalog.Credentials{Username: name, Password: "secret", Role: catalog.RoleClient},
	}
}

// ---- client ----

func TestClientSaveCreatesOwnedEntities(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	saved, err := f.clients.Save(ctx, newClient("ana", "111.222.333-44"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID, "identity is server-generated")
	require.NotNil(t, saved.Cart, "a cart is created with the client")
	assert.NotEqual(t, uuid.Nil, saved.Cart.ID)

	loaded, err := f.clients.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Credentials)
	assert.Equal(t, "ana", loaded.Credentials.Username)
	require.NotNil(t, loaded.Cart)
	assert.Empty(t, loaded.Cart.Items)
}

func TestClientSaveRejectsDuplicateCPF(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.clients.Save(ctx, newClient("ana", "111.222.333-44"))
	require.NoError(t, err)

	_, err = f.clients.Save(ctx, newClient("bia", "111.222.333-44"))
	require.Error(t, err)
	assert.True(t, catalog.IsConflict(err))
	assert.EqualError(t, err, "client already exists")

	// The rejected save left nothing behind.
	page, err := f.clients.FindAllPaged(ctx, catalog.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestClientFindByUsername(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	saved, err := f.clients.Save(ctx, newClient("ana", "111"))
	require.NoError(t, err)

	found, err := f.clients.FindByUsername(ctx, "ANA")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)

	_, err = f.clients.FindByUsername(ctx, "nobody")
	require.Error(t, err)
	assert.True(t, catalog.IsNotFound(err))
	assert.EqualError(t, err, "client not found with provided username: #nobody")
}

func TestClientUpdateGrowsAddresses(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	client := newClient("ana", "111")
	client.Addresses = []*catalog.Address{{Line: "Rua 1", City: "Recife", Country: "BR"}}
	saved, err := f.clients.Save(ctx, client)
	require.NoError(t, err)

	_, err = f.clients.Update(ctx, saved.ID, &catalog.Client{
		Name:      "ana",
		CPF:       "111",
		Email:     saved.Email,
		Addresses: []*catalog.Address{{ID: uuid.New(), Line: "Rua 2", City: "Olinda", Country: "BR"}},
	})
	require.NoError(t, err)

	loaded, err := f.clients.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Addresses, 2, "addresses only grow")
}

func TestClientUpdateKeepsEveryNewAddress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	saved, err := f.clients.Save(ctx, newClient("ana", "111"))
	require.NoError(t, err)

	// Both addresses are brand-new and arrive without ids.
	_, err = f.clients.Update(ctx, saved.ID, &catalog.Client{
		Name:  "ana",
		CPF:   "111",
		Email: saved.Email,
		Addresses: []*catalog.Address{
			{Line: "Rua 2", City: "Olinda", Country: "BR"},
			{Line: "Rua 3", City: "Caruaru", Country: "BR"},
		},
	})
	require.NoError(t, err)

	loaded, err := f.clients.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Addresses, 2, "no new address is dropped")
	for _, addr := range loaded.Addresses {
		assert.NotEqual(t, uuid.Nil, addr.ID)
	}
}

func TestClientUpdateNoOpKeepsOwnedEntities(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	client := newClient("ana", "111.222.333-44")
	client.Addresses = []*catalog.Address{{Line: "Rua 1", City: "Recife", Country: "BR"}}
	saved, err := f.clients.Save(ctx, client)
	require.NoError(t, err)
	credentialsID := saved.Credentials.ID
	cartID := saved.Cart.ID
	addressID := saved.Addresses[0].ID

	// Resubmitting the persisted state changes nothing and recreates nothing.
	updated, err := f.clients.Update(ctx, saved.ID, &catalog.Client{
		Name:        "ana",
		CPF:         "111.222.333-44",
		Email:       saved.Email,
		Credentials: &catalog.Credentials{Username: "ana", Password: "secret", Role: catalog.RoleClient},
		Addresses:   []*catalog.Address{{ID: addressID, Line: "Rua 1", City: "Recife", Country: "BR"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", updated.Name)

	loaded, err := f.clients.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Credentials)
	assert.Equal(t, credentialsID, loaded.Credentials.ID, "credentials keep their identity")
	require.NotNil(t, loaded.Cart)
	assert.Equal(t, cartID, loaded.Cart.ID, "the cart is not recreated")
	require.Len(t, loaded.Addresses, 1)
	assert.Equal(t, addressID, loaded.Addresses[0].ID)
}

func TestClientUpdateMissingReturnsNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.clients.Update(context.Background(), uuid.New(), newClient("x", "1"))
	require.Error(t, err)
	assert.True(t, catalog.IsNotFound(err))
}

func TestClientDeleteRemovesOwnedButSparesBooks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	book, err := f.books.Save(ctx, &catalog.Book{Title: "Dom Casmurro", Condition: catalog.ConditionUsed, CoverType: catalog.CoverTypeSoftcover, Language: catalog.LanguagePtBR})
	require.NoError(t, err)

	client := newClient("ana", "111")
	client.Cart = &catalog.Cart{Items: []*catalog.Book{book}}
	saved, err := f.clients.Save(ctx, client)
	require.NoError(t, err)
	credentialsID := saved.Credentials.ID
	cartID := saved.Cart.ID

	require.NoError(t, f.clients.Delete(ctx, saved.ID))

	_, err = f.clients.FindByID(ctx, saved.ID)
	assert.True(t, catalog.IsNotFound(err))
	_, err = f.store.GetByID(ctx, catalog.KindCredentials, credentialsID)
	assert.ErrorIs(t, err, catalog.ErrNoSuchEntity)
	_, err = f.store.GetByID(ctx, catalog.KindCart, cartID)
	assert.ErrorIs(t, err, catalog.ErrNoSuchEntity)

	// Cart items are references, not owned rows.
	_, err = f.books.FindByID(ctx, book.ID)
	assert.NoError(t, err)
}

func TestClientDeleteAbsentSucceeds(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.clients.Delete(context.Background(), uuid.New()))
}

// ---- seller ----

func TestSellerSaveAndCascadeCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	saved, err := f.sellers.Save(ctx, newSeller("Sebo Belo", "+55 11 90000-0001"))
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	loaded, err := f.sellers.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Credentials)
	require.NotNil(t, loaded.Address)
	assert.Equal(t, "Sebo Belo", loaded.Name)
}

func TestSellerSaveUniqueness(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.sellers.Save(ctx, newSeller("Sebo Belo", "+55 11 90000-0001"))
	require.NoError(t, err)

	_, err = f.sellers.Save(ctx, newSeller("SEBO BELO", "+55 11 90000-0002"))
	assert.True(t, catalog.IsConflict(err), "name uniqueness is case-insensitive")

	_, err = f.sellers.Save(ctx, newSeller("Outro Sebo", "+55 11 90000-0001"))
	assert.True(t, catalog.IsConflict(err), "phone uniqueness is exact")
}

func TestSellerDeleteCascadesToBooks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	seller, err := f.sellers.Save(ctx, newSeller("Sebo Belo", "+55 11 90000-0001"))
	require.NoError(t, err)

	first, err := f.books.Save(ctx, &catalog.Book{Title: "Livro Um", SellerID: &seller.ID, Condition: catalog.ConditionUsed, CoverType: catalog.CoverTypeSoftcover, Language: catalog.LanguagePtBR})
	require.NoError(t, err)
	second, err := f.books.Save(ctx, &catalog.Book{Title: "Livro Dois", SellerID: &seller.ID, Condition: catalog.ConditionNew, CoverType: catalog.CoverTypeHardcover, Language: catalog.LanguagePtBR})
	require.NoError(t, err)

	credentialsID := seller.Credentials.ID
	addressID := seller.Address.ID

	require.NoError(t, f.sellers.Delete(ctx, seller.ID))

	_, err = f.sellers.FindByID(ctx, seller.ID)
	assert.True(t, catalog.IsNotFound(err))
	_, err = f.books.FindByID(ctx, first.ID)
	assert.True(t, catalog.IsNotFound(err), "seller deletion removes its listings")
	_, err = f.books.FindByID(ctx, second.ID)
	assert.True(t, catalog.IsNotFound(err))
	_, err = f.store.GetByID(ctx, catalog.KindCredentials, credentialsID)
	assert.ErrorIs(t, err, catalog.ErrNoSuchEntity)
	_, err = f.store.GetByID(ctx, catalog.KindAddress, addressID)
	assert.ErrorIs(t, err, catalog.ErrNoSuchEntity)
}

func TestSellerListingIsRedacted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.sellers.Save(ctx, newSeller("Sebo Belo", "+55 11 90000-0001"))
	require.NoError(t, err)
	_, err = f.sellers.Save(ctx, newSeller("Outro Sebo", "+55 11 90000-0002"))
	require.NoError(t, err)

	page, err := f.sellers.FindAllPaged(ctx, catalog.PageRequest{Page: 0, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Size)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].Address, "address stays public")
}

// ---- book ----

func TestBookSaveAllowsDuplicateISBN(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	template := catalog.Book{Title: "Dom Casmurro", ISBN: "978-85-0000-000-1", Condition: catalog.ConditionUsed, CoverType: catalog.CoverTypeSoftcover, Language: catalog.LanguagePtBR}
	first := template
	second := template

	_, err := f.books.Save(ctx, &first)
	require.NoError(t, err)
	_, err = f.books.Save(ctx, &second)
	require.NoError(t, err, "two sellers may list the same edition")
}

func TestBookFindByTitle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.books.Save(ctx, &catalog.Book{Title: "Grande Sertão: Veredas", Condition: catalog.ConditionGood, CoverType: catalog.CoverTypeHardcover, Language: catalog.LanguagePtBR})
	require.NoError(t, err)

	matches, err := f.books.FindByTitle(ctx, "sertão")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	none, err := f.books.FindByTitle(ctx, "alienista")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookUpdateMergesAndKeepsRelations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	author, err := f.authors.Save(ctx, &catalog.Author{Name: "Machado de Assis"})
	require.NoError(t, err)

	book, err := f.books.Save(ctx, &catalog.Book{
		Title:     "Dom Casmuro",
		Price:     decimal.RequireFromString("20.00"),
		Condition: catalog.ConditionUsed,
		CoverType: catalog.CoverTypeSoftcover,
		Language:  catalog.LanguagePtBR,
		Authors:   []*catalog.Author{author},
	})
	require.NoError(t, err)

	updated, err := f.books.Update(ctx, book.ID, &catalog.Book{
		Title:     "Dom Casmurro",
		Price:     decimal.RequireFromString("22.50"),
		Condition: catalog.ConditionUsed,
		CoverType: catalog.CoverTypeSoftcover,
		Language:  catalog.LanguagePtBR,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dom Casmurro", updated.Title)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("22.50")))
	require.Len(t, updated.Authors, 1, "omitting a relation does not clear it")

	loaded, err := f.books.FindByID(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Authors, 1)
	assert.Equal(t, author.ID, loaded.Authors[0].ID)
}

// ---- author ----

func TestAuthorSaveRejectsDuplicateName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.authors.Save(ctx, &catalog.Author{Name: "Machado de Assis"})
	require.NoError(t, err)

	_, err = f.authors.Save(ctx, &catalog.Author{Name: "machado de assis"})
	assert.True(t, catalog.IsConflict(err))
}

func TestAuthorUpdateFixesTypoKeepingBooks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	author, err := f.authors.Save(ctx, &catalog.Author{Name: "Machado de Asis"})
	require.NoError(t, err)
	_, err = f.books.Save(ctx, &catalog.Book{Title: "Dom Casmurro", Authors: []*catalog.Author{author}, Condition: catalog.ConditionUsed, CoverType: catalog.CoverTypeSoftcover, Language: catalog.LanguagePtBR})
	require.NoError(t, err)

	updated, err := f.authors.Update(ctx, author.ID, &catalog.Author{Name: "Machado de Assis"})
	require.NoError(t, err)
	assert.Equal(t, "Machado de Assis", updated.Name)

	loaded, err := f.authors.FindByID(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Books, 1, "authorship links survive the rename")
}

// ---- genre ----

func TestGenreLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	genre, err := f.genres.Save(ctx, &catalog.Genre{Name: "Romance"})
	require.NoError(t, err)

	// Genre names are not unique.
	_, err = f.genres.Save(ctx, &catalog.Genre{Name: "Romance"})
	require.NoError(t, err)

	updated, err := f.genres.Update(ctx, genre.ID, &catalog.Genre{Name: "Romance", Image: "romance.png"})
	require.NoError(t, err)
	assert.Equal(t, "romance.png", updated.Image)

	require.NoError(t, f.genres.Delete(ctx, genre.ID))
	_, err = f.genres.FindByID(ctx, genre.ID)
	assert.True(t, catalog.IsNotFound(err))
}

// ---- publisher ----

func TestPublisherDeleteCascadesToBooks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	publisher, err := f.publishers.Save(ctx, &catalog.Publisher{Name: "Companhia das Letras"})
	require.NoError(t, err)

	published, err := f.books.Save(ctx, &catalog.Book{Title: "Livro Um", PublisherID: &publisher.ID, Condition: catalog.ConditionNew, CoverType: catalog.CoverTypeHardcover, Language: catalog.LanguagePtBR})
	require.NoError(t, err)
	other, err := f.books.Save(ctx, &catalog.Book{Title: "Livro Dois", Condition: catalog.ConditionNew, CoverType: catalog.CoverTypeHardcover, Language: catalog.LanguagePtBR})
	require.NoError(t, err)

	require.NoError(t, f.publishers.Delete(ctx, publisher.ID))

	_, err = f.publishers.FindByID(ctx, publisher.ID)
	assert.True(t, catalog.IsNotFound(err))
	_, err = f.books.FindByID(ctx, published.ID)
	assert.True(t, catalog.IsNotFound(err), "publisher deletion removes its catalog")
	_, err = f.books.FindByID(ctx, other.ID)
	assert.NoError(t, err, "unrelated books survive")
}

func TestPublisherFindByName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.publishers.Save(ctx, &catalog.Publisher{Name: "Companhia das Letras"})
	require.NoError(t, err)

	matches, err := f.publishers.FindByName(ctx, "companhia")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
