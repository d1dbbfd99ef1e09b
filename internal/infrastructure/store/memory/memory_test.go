package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/infrastructure/store/memory"
)

func putAuthor(t *testing.T, s *memory.Store, name string) *catalog.Author {
	t.Helper()
	author := &catalog.Author{ID: uuid.New(), Name: name}
	_, err := s.Put(context.Background(), author)
	require.NoError(t, err)
	return author
}

func TestGetByIDMiss(t *testing.T) {
	s := memory.New()
	_, err := s.GetByID(context.Background(), catalog.KindBook, uuid.New())
	assert.ErrorIs(t, err, catalog.ErrNoSuchEntity)
}

func TestBookMaterializesRelations(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	author := putAuthor(t, s, "Machado de Assis")
	genre := &catalog.Genre{ID: uuid.New(), Name: "Romance"}
	_, err := s.Put(ctx, genre)
	require.NoError(t, err)

	book := &catalog.Book{
		ID:      uuid.New(),
		Title:   "Dom Casmurro",
		Price:   decimal.RequireFromString("29.90"),
		Authors: []*catalog.Author{author},
		Genres:  []*catalog.Genre{genre},
	}
	_, err = s.Put(ctx, book)
	require.NoError(t, err)

	loaded, err := s.GetByID(ctx, catalog.KindBook, book.ID)
	require.NoError(t, err)
	got := loaded.(*catalog.Book)
	require.Len(t, got.Authors, 1)
	assert.Equal(t, "Machado de Assis", got.Authors[0].Name)
	require.Len(t, got.Genres, 1)
	assert.Equal(t, "Romance", got.Genres[0].Name)

	// The reverse side is derived from the link rows.
	loadedAuthor, err := s.GetByID(ctx, catalog.KindAuthor, author.ID)
	require.NoError(t, err)
	require.Len(t, loadedAuthor.(*catalog.Author).Books, 1)
	assert.Equal(t, "Dom Casmurro", loadedAuthor.(*catalog.Author).Books[0].Title)
}

func TestDeleteAuthorDropsLinkRows(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	author := putAuthor(t, s, "Clarice Lispector")
	book := &catalog.Book{ID: uuid.New(), Title: "A Hora da Estrela", Authors: []*catalog.Author{author}}
	_, err := s.Put(ctx, book)
	require.NoError(t, err)

	require.NoError(t, s.DeleteByID(ctx, catalog.KindAuthor, author.ID))

	loaded, err := s.GetByID(ctx, catalog.KindBook, book.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.(*catalog.Book).Authors)
}

func TestDeleteAbsentIsNoError(t *testing.T) {
	s := memory.New()
	assert.NoError(t, s.DeleteByID(context.Background(), catalog.KindGenre, uuid.New()))
}

func TestGetAllPaged(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	for _, name := range []string{"Cecília", "Machado", "Ariano", "Jorge", "Clarice"} {
		putAuthor(t, s, name)
	}

	page, err := s.GetAllPaged(ctx, catalog.KindAuthor, catalog.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	// Insertion order without a sort key.
	assert.Equal(t, "Ariano", page.Items[0].(*catalog.Author).Name)
	assert.Equal(t, "Jorge", page.Items[1].(*catalog.Author).Name)

	sorted, err := s.GetAllPaged(ctx, catalog.KindAuthor, catalog.PageRequest{Page: 0, Size: 3, Sort: "name"})
	require.NoError(t, err)
	require.Len(t, sorted.Items, 3)
	assert.Equal(t, "Ariano", sorted.Items[0].(*catalog.Author).Name)

	all, err := s.GetAllPaged(ctx, catalog.KindAuthor, catalog.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 5, "non-positive size returns everything")
}

func TestGetWhereOperators(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	putAuthor(t, s, "Machado de Assis")
	putAuthor(t, s, "Graciliano Ramos")

	eq, err := s.GetWhere(ctx, catalog.KindAuthor, catalog.Filter{Field: "name", Op: catalog.OpEqFold, Value: "machado DE assis"})
	require.NoError(t, err)
	require.Len(t, eq, 1)

	contains, err := s.GetWhere(ctx, catalog.KindAuthor, catalog.Filter{Field: "name", Op: catalog.OpContainsFold, Value: "RAMOS"})
	require.NoError(t, err)
	require.Len(t, contains, 1)
	assert.Equal(t, "Graciliano Ramos", contains[0].(*catalog.Author).Name)

	exists, err := s.ExistsWhere(ctx, catalog.KindAuthor, catalog.Filter{Field: "name", Op: catalog.OpEq, Value: "Machado de Assis"})
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClientUsernameFilterReachesCredentials(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	credentials := &catalog.Credentials{ID: uuid.New(), Username: "jdoe", Role: catalog.RoleClient}
	_, err := s.Put(ctx, credentials)
	require.NoError(t, err)
	client := &catalog.Client{ID: uuid.New(), Name: "John", CPF: "123", Credentials: credentials}
	_, err = s.Put(ctx, client)
	require.NoError(t, err)

	matched, err := s.GetWhere(ctx, catalog.KindClient, catalog.Filter{Field: "username", Op: catalog.OpEqFold, Value: "JDOE"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, client.ID, matched[0].(*catalog.Client).ID)
}

func TestTransactionRollbackDiscardsWrites(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	kept := putAuthor(t, s, "Kept")

	boom := errors.New("boom")
	err := s.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		if _, err := st.Put(ctx, &catalog.Author{ID: uuid.New(), Name: "Discarded"}); err != nil {
			return err
		}
		if err := st.DeleteByID(ctx, catalog.KindAuthor, kept.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	page, err := s.GetAllPaged(ctx, catalog.KindAuthor, catalog.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Kept", page.Items[0].(*catalog.Author).Name)
}

func TestTransactionCommitPublishesWrites(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	err := s.RunInNewTransaction(ctx, func(ctx context.Context, st catalog.Store) error {
		_, err := st.Put(ctx, &catalog.Author{ID: uuid.New(), Name: "Committed"})
		return err
	})
	require.NoError(t, err)

	exists, err := s.ExistsWhere(ctx, catalog.KindAuthor, catalog.Filter{Field: "name", Op: catalog.OpEq, Value: "Committed"})
	require.NoError(t, err)
	assert.True(t, exists)
}
