// Package postgres implements the catalog store and transaction contracts on
// PostgreSQL through pgx. Mapping is explicit: table and column names live in
// the metadata below, never derived from struct tags or reflection. Put
// writes the aggregate row plus its forward link rows; owned sub-entity rows
// are written through their own Put calls, which is how the cascade manager
// keeps them in lockstep with the owner.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookmarketplace-backend/internal/domains/catalog"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same store
// code serves plain reads and transactional units of work.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// table maps a kind to its relation and whitelists the fields filters and
// sorts may reference.
type table struct {
	name    string
	columns map[string]string // filter/sort field -> column
}

var tables = map[catalog.Kind]table{
	catalog.KindCredentials: {name: "tb_credentials", columns: map[string]string{"username": "username"}},
	catalog.KindAddress:     {name: "tb_address", columns: map[string]string{"city": "city"}},
	catalog.KindCart:        {name: "tb_cart", columns: map[string]string{}},
	catalog.KindBook:        {name: "tb_book", columns: map[string]string{"title": "title", "isbn": "isbn"}},
	catalog.KindAuthor:      {name: "tb_author", columns: map[string]string{"name": "name"}},
	catalog.KindGenre:       {name: "tb_genre", columns: map[string]string{"name": "name"}},
	catalog.KindPublisher:   {name: "tb_publisher", columns: map[string]string{"name": "name"}},
	catalog.KindSeller:      {name: "tb_seller", columns: map[string]string{"name": "name", "phone": "phone"}},
	catalog.KindClient:      {name: "tb_client", columns: map[string]string{"name": "name", "cpf": "cpf", "email": "email"}},
}

// kindByTable reverses the metadata for unique-violation translation.
func kindByTable(constraint string) catalog.Kind {
	for kind, t := range tables {
		if strings.HasPrefix(constraint, t.name) {
			return kind
		}
	}
	return ""
}

// Store implements catalog.Store over a pool or transaction.
type Store struct {
	q querier
}

// NewStore builds a store reading and writing through the pool, outside any
// explicit transaction.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{q: pool}
}

// TxRunner implements catalog.TxRunner with requires-new semantics: every
// call begins its own transaction on the pool.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the transaction boundary for the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInNewTransaction begins a fresh transaction, hands fn a store bound to
// it and commits on success. Any error, including a panic, rolls the whole
// unit of work back.
func (r *TxRunner) RunInNewTransaction(ctx context.Context, fn func(ctx context.Context, s catalog.Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()
	if err := fn(ctx, &Store{q: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return translateErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return translateErr(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// translateErr maps unique-violation errors the database raced us into onto
// the domain conflict type; services check uniqueness first, the constraint
// is the backstop under concurrency.
func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if kind := kindByTable(pgErr.ConstraintName); kind != "" {
			return catalog.NewConflict(kind, pgErr.ConstraintName)
		}
	}
	return err
}

func (s *Store) GetByID(ctx context.Context, kind catalog.Kind, id uuid.UUID) (catalog.Entity, error) {
	switch kind {
	case catalog.KindCredentials:
		return s.credentials(ctx, id)
	case catalog.KindAddress:
		return s.address(ctx, id)
	case catalog.KindCart:
		return s.cart(ctx, id)
	case catalog.KindBook:
		return s.book(ctx, id)
	case catalog.KindAuthor:
		return s.author(ctx, id)
	case catalog.KindGenre:
		return s.genre(ctx, id)
	case catalog.KindPublisher:
		return s.publisher(ctx, id)
	case catalog.KindSeller:
		return s.seller(ctx, id)
	case catalog.KindClient:
		return s.client(ctx, id)
	}
	return nil, catalog.ErrNoSuchEntity
}

func (s *Store) GetAllPaged(ctx context.Context, kind catalog.Kind, req catalog.PageRequest) (catalog.Page[catalog.Entity], error) {
	t, ok := tables[kind]
	if !ok {
		return catalog.Page[catalog.Entity]{}, catalog.ErrNoSuchEntity
	}
	var total int
	if err := s.q.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", t.name)).Scan(&total); err != nil {
		return catalog.Page[catalog.Entity]{}, err
	}
	query := fmt.Sprintf("SELECT id FROM %s ORDER BY %s", t.name, orderClause(t, req.Sort))
	args := []any{}
	if req.Size > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, req.Size, req.Offset())
	}
	ids, err := s.selectIDs(ctx, query, args...)
	if err != nil {
		return catalog.Page[catalog.Entity]{}, err
	}
	items, err := s.loadAll(ctx, kind, ids)
	if err != nil {
		return catalog.Page[catalog.Entity]{}, err
	}
	return catalog.Page[catalog.Entity]{Items: items, Total: total, Page: req.Page, Size: req.Size}, nil
}

func (s *Store) GetWhere(ctx context.Context, kind catalog.Kind, filter catalog.Filter) ([]catalog.Entity, error) {
	query, ok := whereQuery(kind, filter)
	if !ok {
		return nil, nil
	}
	ids, err := s.selectIDs(ctx, query, filter.Value)
	if err != nil {
		return nil, err
	}
	return s.loadAll(ctx, kind, ids)
}

func (s *Store) ExistsWhere(ctx context.Context, kind catalog.Kind, filter catalog.Filter) (bool, error) {
	query, ok := whereQuery(kind, filter)
	if !ok {
		return false, nil
	}
	var exists bool
	err := s.q.QueryRow(ctx, fmt.Sprintf("SELECT EXISTS (%s)", query), filter.Value).Scan(&exists)
	return exists, err
}

func (s *Store) Put(ctx context.Context, entity catalog.Entity) (catalog.Entity, error) {
	var err error
	switch v := entity.(type) {
	case *catalog.Credentials:
		err = s.putCredentials(ctx, v)
	case *catalog.Address:
		err = s.putAddress(ctx, v)
	case *catalog.Cart:
		err = s.putCart(ctx, v)
	case *catalog.Book:
		err = s.putBook(ctx, v)
	case *catalog.Author:
		err = s.putAuthor(ctx, v)
	case *catalog.Genre:
		err = s.putGenre(ctx, v)
	case *catalog.Publisher:
		err = s.putPublisher(ctx, v)
	case *catalog.Seller:
		err = s.putSeller(ctx, v)
	case *catalog.Client:
		err = s.putClient(ctx, v)
	default:
		err = catalog.ErrNoSuchEntity
	}
	if err != nil {
		return nil, translateErr(err)
	}
	return entity, nil
}

// DeleteByID removes the row; link rows follow through ON DELETE CASCADE
// constraints. Deleting an absent id is a no-op.
func (s *Store) DeleteByID(ctx context.Context, kind catalog.Kind, id uuid.UUID) error {
	t, ok := tables[kind]
	if !ok {
		return catalog.ErrNoSuchEntity
	}
	_, err := s.q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.name), id)
	return err
}

func (s *Store) selectIDs(ctx context.Context, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) loadAll(ctx context.Context, kind catalog.Kind, ids []uuid.UUID) ([]catalog.Entity, error) {
	items := make([]catalog.Entity, 0, len(ids))
	for _, id := range ids {
		ent, err := s.GetByID(ctx, kind, id)
		if errors.Is(err, catalog.ErrNoSuchEntity) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, ent)
	}
	return items, nil
}

// orderClause resolves the requested sort key against the whitelist, falling
// back to insertion order (seq) for unknown or absent keys.
func orderClause(t table, sortKey string) string {
	if column, ok := t.columns[sortKey]; ok {
		return column
	}
	return "seq"
}

// whereQuery builds the id-selecting query for a filter. The client username
// predicate is the one lookup that crosses into the credentials table.
func whereQuery(kind catalog.Kind, filter catalog.Filter) (string, bool) {
	if kind == catalog.KindClient && filter.Field == "username" {
		return "SELECT c.id FROM tb_client c JOIN tb_credentials u ON u.id = c.credentials_id WHERE lower(u.username) = lower($1)", true
	}
	t, ok := tables[kind]
	if !ok {
		return "", false
	}
	column, ok := t.columns[filter.Field]
	if !ok {
		return "", false
	}
	switch filter.Op {
	case catalog.OpEq:
		return fmt.Sprintf("SELECT id FROM %s WHERE %s = $1", t.name, column), true
	case catalog.OpEqFold:
		return fmt.Sprintf("SELECT id FROM %s WHERE lower(%s) = lower($1)", t.name, column), true
	case catalog.OpContainsFold:
		return fmt.Sprintf("SELECT id FROM %s WHERE %s ILIKE '%%' || $1 || '%%'", t.name, column), true
	}
	return "", false
}
