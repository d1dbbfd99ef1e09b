package service

import (
	"errors"

	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
)

// notFoundOnMiss converts the store's miss sentinel into the typed NotFound
// error carrying the aggregate kind and key; everything else passes through.
func notFoundOnMiss(err error, kind catalog.Kind, id uuid.UUID) error {
	if errors.Is(err, catalog.ErrNoSuchEntity) {
		return catalog.NewNotFound(kind, id.String())
	}
	return err
}

func nameFilter(name string) catalog.Filter {
	return catalog.Filter{Field: "name", Op: catalog.OpContainsFold, Value: name}
}
