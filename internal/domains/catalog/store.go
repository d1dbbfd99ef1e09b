package catalog

import (
	"context"

	"github.com/google/uuid"
)

// PageRequest asks for a bounded slice of a result set. Page is zero-based,
// Size is the maximum number of elements. Sort names a whitelisted field;
// empty means insertion order.
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// Offset is the number of rows to skip for this request.
func (p PageRequest) Offset() int {
	if p.Page < 0 || p.Size <= 0 {
		return 0
	}
	return p.Page * p.Size
}

// Page is a slice of a result set plus total-count metadata computed against
// the unpaged query.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// MapPage rebuilds a page with each element projected through fn, preserving
// the page metadata exactly.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	return Page[U]{Items: items, Total: p.Total, Page: p.Page, Size: p.Size}
}

// FilterOp is a predicate operator the store knows how to evaluate.
type FilterOp string

const (
	OpEq           FilterOp = "eq"
	OpEqFold       FilterOp = "eq_fold"       // case-insensitive equality
	OpContainsFold FilterOp = "contains_fold" // case-insensitive substring
)

// Filter is a predicate as data: each store implementation maps Field to its
// own column or accessor. Keeping predicates declarative is what lets the
// postgres store translate them to SQL instead of shipping closures around.
type Filter struct {
	Field string
	Op    FilterOp
	Value string
}

// Store is the narrow persistence contract the services depend on. GetByID
// returns ErrNoSuchEntity when no row matches. Put upserts the aggregate row
// and its forward relation links; owned sub-entity rows are written through
// their own Put calls. DeleteByID of an absent id is not an error.
type Store interface {
	GetByID(ctx context.Context, kind Kind, id uuid.UUID) (Entity, error)
	GetAllPaged(ctx context.Context, kind Kind, req PageRequest) (Page[Entity], error)
	GetWhere(ctx context.Context, kind Kind, filter Filter) ([]Entity, error)
	Put(ctx context.Context, entity Entity) (Entity, error)
	DeleteByID(ctx context.Context, kind Kind, id uuid.UUID) error
	ExistsWhere(ctx context.Context, kind Kind, filter Filter) (bool, error)
}

// TxRunner executes a unit of work in a fresh transaction, never joining an
// ambient one. Any error from fn rolls back every store write performed
// inside it.
type TxRunner interface {
	RunInNewTransaction(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

// Get loads a typed entity by id.
func Get[T Entity](ctx context.Context, s Store, id uuid.UUID) (T, error) {
	var zero T
	ent, err := s.GetByID(ctx, zero.EntityKind(), id)
	if err != nil {
		return zero, err
	}
	typed, ok := ent.(T)
	if !ok {
		return zero, ErrNoSuchEntity
	}
	return typed, nil
}

// GetAll loads a typed page.
func GetAll[T Entity](ctx context.Context, s Store, req PageRequest) (Page[T], error) {
	var zero T
	page, err := s.GetAllPaged(ctx, zero.EntityKind(), req)
	if err != nil {
		return Page[T]{}, err
	}
	return MapPage(page, func(e Entity) T { return e.(T) }), nil
}

// Where loads all typed entities matching the filter.
func Where[T Entity](ctx context.Context, s Store, filter Filter) ([]T, error) {
	var zero T
	ents, err := s.GetWhere(ctx, zero.EntityKind(), filter)
	if err != nil {
		return nil, err
	}
	items := make([]T, len(ents))
	for i, e := range ents {
		items[i] = e.(T)
	}
	return items, nil
}
