package reconcile_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/domains/catalog/reconcile"
)

func TestBookScalarMerge(t *testing.T) {
	date := time.Date(2001, 5, 1, 0, 0, 0, 0, time.UTC)
	persisted := &catalog.Book{
		ID:            uuid.New(),
		Title:         "Old Title",
		Description:   "unchanged",
		PublishedDate: date,
		ISBN:          "978-85-0000-000-1",
		Price:         decimal.RequireFromString("30.00"),
		Stock:         5,
		Condition:     catalog.ConditionUsed,
		CoverType:     catalog.CoverTypeSoftcover,
		Language:      catalog.LanguagePtBR,
	}
	incoming := &catalog.Book{
		Title:         "New Title",
		Description:   "unchanged",
		PublishedDate: date,
		ISBN:          "978-85-0000-000-1",
		Price:         decimal.RequireFromString("35.50"),
		Stock:         5,
		Condition:     catalog.ConditionGood,
		CoverType:     catalog.CoverTypeSoftcover,
		Language:      catalog.LanguagePtBR,
	}

	merged := reconcile.Book(persisted, incoming)

	assert.Same(t, persisted, merged, "merge mutates the persisted aggregate")
	assert.Equal(t, "New Title", merged.Title)
	assert.True(t, merged.Price.Equal(decimal.RequireFromString("35.50")))
	assert.Equal(t, catalog.ConditionGood, merged.Condition)
	assert.Equal(t, "unchanged", merged.Description)
}

func TestBookRelationsOnlyGrow(t *testing.T) {
	kept := &catalog.Author{ID: uuid.New(), Name: "Machado"}
	added := &catalog.Author{ID: uuid.New(), Name: "Clarice"}

	persisted := &catalog.Book{ID: uuid.New(), Authors: []*catalog.Author{kept}}
	incoming := &catalog.Book{Authors: []*catalog.Author{added}}

	merged := reconcile.Book(persisted, incoming)

	require.Len(t, merged.Authors, 2, "incoming set does not replace, it extends")
	assert.Equal(t, kept.ID, merged.Authors[0].ID)
	assert.Equal(t, added.ID, merged.Authors[1].ID)

	// Submitting the same set again changes nothing.
	again := reconcile.Book(merged, &catalog.Book{Authors: []*catalog.Author{kept, added}})
	assert.Len(t, again.Authors, 2)
}

func TestClientAdditiveAddresses(t *testing.T) {
	first := &catalog.Address{ID: uuid.New(), City: "Recife"}
	second := &catalog.Address{ID: uuid.New(), City: "Olinda"}

	persisted := &catalog.Client{ID: uuid.New(), Name: "Ana", Addresses: []*catalog.Address{first}}
	incoming := &catalog.Client{Name: "Ana", Addresses: []*catalog.Address{second}}

	merged := reconcile.Client(persisted, incoming)

	require.Len(t, merged.Addresses, 2)
	assert.Equal(t, "Recife", merged.Addresses[0].City)
	assert.Equal(t, "Olinda", merged.Addresses[1].City)
}

func TestClientMergeKeepsEveryNewAddress(t *testing.T) {
	existing := &catalog.Address{ID: uuid.New(), City: "Recife"}
	persisted := &catalog.Client{ID: uuid.New(), Name: "Ana", Addresses: []*catalog.Address{existing}}

	// Brand-new addresses have no id yet; none of them may shadow another.
	incoming := &catalog.Client{Name: "Ana", Addresses: []*catalog.Address{
		{City: "Olinda"},
		{City: "Caruaru"},
	}}

	merged := reconcile.Client(persisted, incoming)

	require.Len(t, merged.Addresses, 3, "every id-less address is new")
	assert.Equal(t, "Recife", merged.Addresses[0].City)
	assert.Equal(t, "Olinda", merged.Addresses[1].City)
	assert.Equal(t, "Caruaru", merged.Addresses[2].City)
}

func TestCredentialsMergedInPlace(t *testing.T) {
	owned := &catalog.Credentials{ID: uuid.New(), Username: "ana", Password: "old", Role: catalog.RoleClient}
	persisted := &catalog.Client{ID: uuid.New(), Credentials: owned}
	incoming := &catalog.Client{Credentials: &catalog.Credentials{Username: "ana", Password: "new", Role: catalog.RoleClient}}

	merged := reconcile.Client(persisted, incoming)

	assert.Same(t, owned, merged.Credentials, "owned instance keeps its identity")
	assert.Equal(t, "new", merged.Credentials.Password)
}

func TestSellerAddressComplementNilSkipped(t *testing.T) {
	complement := "apto 12"
	persisted := &catalog.Seller{
		ID:      uuid.New(),
		Address: &catalog.Address{ID: uuid.New(), Line: "Rua A", Complement: &complement},
	}
	incoming := &catalog.Seller{
		Address: &catalog.Address{Line: "Rua B", Complement: nil},
	}

	merged := reconcile.Seller(persisted, incoming)

	assert.Equal(t, "Rua B", merged.Address.Line)
	require.NotNil(t, merged.Address.Complement, "nil complement means no change requested")
	assert.Equal(t, "apto 12", *merged.Address.Complement)
}

func TestNilIncomingCredentialsSkipped(t *testing.T) {
	owned := &catalog.Credentials{ID: uuid.New(), Username: "sebo"}
	persisted := &catalog.Seller{ID: uuid.New(), Name: "Sebo", Credentials: owned}

	merged := reconcile.Seller(persisted, &catalog.Seller{Name: "Sebo"})

	assert.Same(t, owned, merged.Credentials)
	assert.Equal(t, "sebo", merged.Credentials.Username)
}

func TestAuthorMerge(t *testing.T) {
	book := &catalog.Book{ID: uuid.New(), Title: "Dom Casmurro"}
	persisted := &catalog.Author{ID: uuid.New(), Name: "Machado de Asis", Biography: "bio"}
	incoming := &catalog.Author{Name: "Machado de Assis", Biography: "bio", Books: []*catalog.Book{book}}

	merged := reconcile.Author(persisted, incoming)

	assert.Equal(t, "Machado de Assis", merged.Name)
	require.Len(t, merged.Books, 1)
	assert.Equal(t, book.ID, merged.Books[0].ID)
}

func TestPublisherMerge(t *testing.T) {
	persisted := &catalog.Publisher{ID: uuid.New(), Name: "Companhia", Logo: "old.png"}
	incoming := &catalog.Publisher{Name: "Companhia das Letras", Logo: "old.png"}

	merged := reconcile.Publisher(persisted, incoming)

	assert.Equal(t, "Companhia das Letras", merged.Name)
	assert.Equal(t, "old.png", merged.Logo)
}

func TestGenreMerge(t *testing.T) {
	persisted := &catalog.Genre{ID: uuid.New(), Name: "Romance"}
	merged := reconcile.Genre(persisted, &catalog.Genre{Name: "Romance", Image: "romance.png"})

	assert.Equal(t, "Romance", merged.Name)
	assert.Equal(t, "romance.png", merged.Image)
}
