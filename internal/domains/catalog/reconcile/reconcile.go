// Package reconcile merges an incoming aggregate representation into the
// persisted one, field by field. Every comparison happens before assignment
// so a no-op update mutates nothing. Collection relations only ever grow:
// elements of the incoming set that are missing from the persisted set are
// added, nothing is removed. Singular owned sub-entities are merged in place,
// keeping their identity stable; the owned instance is never swapped out.
package reconcile

import (
	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
)

// Client merges incoming into persisted and returns persisted. The persisted
// id wins regardless of what identity incoming carries.
func Client(persisted, incoming *catalog.Client) *catalog.Client {
	if persisted.Name != incoming.Name {
		persisted.Name = incoming.Name
	}
	if persisted.CPF != incoming.CPF {
		persisted.CPF = incoming.CPF
	}
	if persisted.Email != incoming.Email {
		persisted.Email = incoming.Email
	}
	if persisted.Phone != incoming.Phone {
		persisted.Phone = incoming.Phone
	}
	if incoming.Credentials != nil && persisted.Credentials != nil {
		credentials(persisted.Credentials, incoming.Credentials)
	}
	persisted.Addresses = unionByID(persisted.Addresses, incoming.Addresses)
	return persisted
}

// Seller merges incoming into persisted and returns persisted.
func Seller(persisted, incoming *catalog.Seller) *catalog.Seller {
	if persisted.Name != incoming.Name {
		persisted.Name = incoming.Name
	}
	if persisted.Phone != incoming.Phone {
		persisted.Phone = incoming.Phone
	}
	if persisted.Logo != incoming.Logo {
		persisted.Logo = incoming.Logo
	}
	if incoming.Credentials != nil && persisted.Credentials != nil {
		credentials(persisted.Credentials, incoming.Credentials)
	}
	if incoming.Address != nil && persisted.Address != nil {
		address(persisted.Address, incoming.Address)
	}
	return persisted
}

// Book merges incoming into persisted and returns persisted. Publisher and
// seller references are not part of the merge; they are set at creation time.
func Book(persisted, incoming *catalog.Book) *catalog.Book {
	if persisted.Title != incoming.Title {
		persisted.Title = incoming.Title
	}
	if persisted.Description != incoming.Description {
		persisted.Description = incoming.Description
	}
	if !persisted.PublishedDate.Equal(incoming.PublishedDate) {
		persisted.PublishedDate = incoming.PublishedDate
	}
	if persisted.ISBN != incoming.ISBN {
		persisted.ISBN = incoming.ISBN
	}
	if persisted.Image != incoming.Image {
		persisted.Image = incoming.Image
	}
	if !persisted.Price.Equal(incoming.Price) {
		persisted.Price = incoming.Price
	}
	if persisted.Stock != incoming.Stock {
		persisted.Stock = incoming.Stock
	}
	if persisted.Condition != incoming.Condition {
		persisted.Condition = incoming.Condition
	}
	if persisted.CoverType != incoming.CoverType {
		persisted.CoverType = incoming.CoverType
	}
	if persisted.Language != incoming.Language {
		persisted.Language = incoming.Language
	}
	persisted.Authors = unionByID(persisted.Authors, incoming.Authors)
	persisted.Genres = unionByID(persisted.Genres, incoming.Genres)
	return persisted
}

// Author merges incoming into persisted and returns persisted.
func Author(persisted, incoming *catalog.Author) *catalog.Author {
	if persisted.Name != incoming.Name {
		persisted.Name = incoming.Name
	}
	if persisted.Biography != incoming.Biography {
		persisted.Biography = incoming.Biography
	}
	if persisted.Image != incoming.Image {
		persisted.Image = incoming.Image
	}
	persisted.Books = unionByID(persisted.Books, incoming.Books)
	return persisted
}

// Genre merges incoming into persisted and returns persisted.
func Genre(persisted, incoming *catalog.Genre) *catalog.Genre {
	if persisted.Name != incoming.Name {
		persisted.Name = incoming.Name
	}
	if persisted.Image != incoming.Image {
		persisted.Image = incoming.Image
	}
	persisted.Books = unionByID(persisted.Books, incoming.Books)
	return persisted
}

// Publisher merges incoming into persisted and returns persisted.
func Publisher(persisted, incoming *catalog.Publisher) *catalog.Publisher {
	if persisted.Name != incoming.Name {
		persisted.Name = incoming.Name
	}
	if persisted.Logo != incoming.Logo {
		persisted.Logo = incoming.Logo
	}
	persisted.Books = unionByID(persisted.Books, incoming.Books)
	return persisted
}

// credentials merges in place; the owned instance keeps its identity.
func credentials(persisted, incoming *catalog.Credentials) {
	if persisted.Username != incoming.Username {
		persisted.Username = incoming.Username
	}
	if persisted.Password != incoming.Password {
		persisted.Password = incoming.Password
	}
	if persisted.Role != incoming.Role {
		persisted.Role = incoming.Role
	}
}

// address merges in place. A nil incoming complement means "no change
// requested", not "clear the field": the source representation cannot tell an
// omitted complement from an explicitly cleared one.
func address(persisted, incoming *catalog.Address) {
	if persisted.Line != incoming.Line {
		persisted.Line = incoming.Line
	}
	if persisted.City != incoming.City {
		persisted.City = incoming.City
	}
	if persisted.State != incoming.State {
		persisted.State = incoming.State
	}
	if persisted.Zip != incoming.Zip {
		persisted.Zip = incoming.Zip
	}
	if persisted.Country != incoming.Country {
		persisted.Country = incoming.Country
	}
	if incoming.Complement != nil {
		if persisted.Complement == nil || *persisted.Complement != *incoming.Complement {
			persisted.Complement = incoming.Complement
		}
	}
}

// unionByID adds elements of src missing from dst, keyed by identity. It
// never removes: partial updates can grow a relation but not shrink it.
// Elements without a server-generated id yet are always new; uuid.Nil never
// enters the seen set, so several id-less elements can arrive in one update.
func unionByID[T catalog.Entity](dst, src []T) []T {
	seen := make(map[uuid.UUID]struct{}, len(dst))
	for _, e := range dst {
		seen[e.EntityID()] = struct{}{}
	}
	for _, e := range src {
		if id := e.EntityID(); id != uuid.Nil {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
		}
		dst = append(dst, e)
	}
	return dst
}
