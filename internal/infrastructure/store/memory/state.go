package memory

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
)

func (st *state) track(kind catalog.Kind, id uuid.UUID) {
	for _, existing := range st.order[kind] {
		if existing == id {
			return
		}
	}
	st.order[kind] = append(st.order[kind], id)
}

func (st *state) untrack(kind catalog.Kind, id uuid.UUID) {
	ids := st.order[kind]
	for i, existing := range ids {
		if existing == id {
			st.order[kind] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

func idsOf[T catalog.Entity](entities []T) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.EntityID())
	}
	return ids
}

// put stores the flat row and syncs the aggregate's forward link rows. Rows
// of owned sub-entities arrive through their own put calls; derived reverse
// sets (Author.Books and friends) are ignored on write and rebuilt on read.
func put(st *state, entity catalog.Entity) (catalog.Entity, error) {
	switch v := entity.(type) {
	case *catalog.Credentials:
		st.credentials[v.ID] = *v
	case *catalog.Address:
		st.addresses[v.ID] = *v
	case *catalog.Cart:
		st.carts[v.ID] = struct{}{}
		st.cartItems[v.ID] = idsOf(v.Items)
	case *catalog.Book:
		row := *v
		row.Authors = nil
		row.Genres = nil
		st.books[v.ID] = row
		st.bookAuthors[v.ID] = idsOf(v.Authors)
		st.bookGenres[v.ID] = idsOf(v.Genres)
	case *catalog.Author:
		row := *v
		row.Books = nil
		st.authors[v.ID] = row
	case *catalog.Genre:
		row := *v
		row.Books = nil
		st.genres[v.ID] = row
	case *catalog.Publisher:
		row := *v
		row.Books = nil
		st.publishers[v.ID] = row
	case *catalog.Seller:
		row := sellerRow{seller: *v}
		row.seller.Credentials = nil
		row.seller.Address = nil
		row.seller.Books = nil
		if v.Credentials != nil {
			row.credentialsID = v.Credentials.ID
		}
		if v.Address != nil {
			row.addressID = v.Address.ID
		}
		st.sellers[v.ID] = row
	case *catalog.Client:
		row := clientRow{client: *v}
		row.client.Credentials = nil
		row.client.Cart = nil
		row.client.Addresses = nil
		if v.Credentials != nil {
			row.credentialsID = v.Credentials.ID
		}
		if v.Cart != nil {
			row.cartID = v.Cart.ID
		}
		st.clients[v.ID] = row
		st.clientAddresses[v.ID] = idsOf(v.Addresses)
	default:
		return nil, catalog.ErrNoSuchEntity
	}
	st.track(entity.EntityKind(), entity.EntityID())
	return entity, nil
}

func deleteByID(st *state, kind catalog.Kind, id uuid.UUID) {
	switch kind {
	case catalog.KindCredentials:
		delete(st.credentials, id)
	case catalog.KindAddress:
		delete(st.addresses, id)
		for client, ids := range st.clientAddresses {
			st.clientAddresses[client] = removeID(ids, id)
		}
	case catalog.KindCart:
		delete(st.carts, id)
		delete(st.cartItems, id)
	case catalog.KindBook:
		delete(st.books, id)
		delete(st.bookAuthors, id)
		delete(st.bookGenres, id)
		for cart, ids := range st.cartItems {
			st.cartItems[cart] = removeID(ids, id)
		}
	case catalog.KindAuthor:
		delete(st.authors, id)
		for book, ids := range st.bookAuthors {
			st.bookAuthors[book] = removeID(ids, id)
		}
	case catalog.KindGenre:
		delete(st.genres, id)
		for book, ids := range st.bookGenres {
			st.bookGenres[book] = removeID(ids, id)
		}
	case catalog.KindPublisher:
		delete(st.publishers, id)
	case catalog.KindSeller:
		delete(st.sellers, id)
	case catalog.KindClient:
		delete(st.clients, id)
		delete(st.clientAddresses, id)
	}
	st.untrack(kind, id)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// ---- materialization ----
//
// Aggregates are rebuilt two levels deep: relation members carry their own
// scalars plus flat one-level relations, which is where the recursion stops.

func getByID(st *state, kind catalog.Kind, id uuid.UUID) (catalog.Entity, error) {
	switch kind {
	case catalog.KindCredentials:
		if row, ok := st.credentials[id]; ok {
			return &row, nil
		}
	case catalog.KindAddress:
		if row, ok := st.addresses[id]; ok {
			return &row, nil
		}
	case catalog.KindCart:
		if _, ok := st.carts[id]; ok {
			return st.cart(id), nil
		}
	case catalog.KindBook:
		if _, ok := st.books[id]; ok {
			return st.book(id, true), nil
		}
	case catalog.KindAuthor:
		if _, ok := st.authors[id]; ok {
			return st.author(id), nil
		}
	case catalog.KindGenre:
		if _, ok := st.genres[id]; ok {
			return st.genre(id), nil
		}
	case catalog.KindPublisher:
		if _, ok := st.publishers[id]; ok {
			return st.publisher(id), nil
		}
	case catalog.KindSeller:
		if _, ok := st.sellers[id]; ok {
			return st.seller(id), nil
		}
	case catalog.KindClient:
		if _, ok := st.clients[id]; ok {
			return st.client(id), nil
		}
	}
	return nil, catalog.ErrNoSuchEntity
}

func (st *state) book(id uuid.UUID, withRelations bool) *catalog.Book {
	row := st.books[id]
	book := row
	if withRelations {
		for _, authorID := range st.bookAuthors[id] {
			if flat, ok := st.authors[authorID]; ok {
				author := flat
				book.Authors = append(book.Authors, &author)
			}
		}
		for _, genreID := range st.bookGenres[id] {
			if flat, ok := st.genres[genreID]; ok {
				genre := flat
				book.Genres = append(book.Genres, &genre)
			}
		}
	}
	return &book
}

func (st *state) cart(id uuid.UUID) *catalog.Cart {
	cart := &catalog.Cart{ID: id}
	for _, bookID := range st.cartItems[id] {
		if _, ok := st.books[bookID]; ok {
			cart.Items = append(cart.Items, st.book(bookID, true))
		}
	}
	return cart
}

// booksWhere collects materialized books matching keep, in insertion order.
func (st *state) booksWhere(keep func(uuid.UUID, catalog.Book) bool) []*catalog.Book {
	var books []*catalog.Book
	for _, id := range st.order[catalog.KindBook] {
		row, ok := st.books[id]
		if !ok || !keep(id, row) {
			continue
		}
		books = append(books, st.book(id, true))
	}
	return books
}

func (st *state) author(id uuid.UUID) *catalog.Author {
	author := st.authors[id]
	author.Books = st.booksWhere(func(bookID uuid.UUID, _ catalog.Book) bool {
		for _, authorID := range st.bookAuthors[bookID] {
			if authorID == id {
				return true
			}
		}
		return false
	})
	return &author
}

func (st *state) genre(id uuid.UUID) *catalog.Genre {
	genre := st.genres[id]
	genre.Books = st.booksWhere(func(bookID uuid.UUID, _ catalog.Book) bool {
		for _, genreID := range st.bookGenres[bookID] {
			if genreID == id {
				return true
			}
		}
		return false
	})
	return &genre
}

func (st *state) publisher(id uuid.UUID) *catalog.Publisher {
	publisher := st.publishers[id]
	publisher.Books = st.booksWhere(func(_ uuid.UUID, row catalog.Book) bool {
		return row.PublisherID != nil && *row.PublisherID == id
	})
	return &publisher
}

func (st *state) seller(id uuid.UUID) *catalog.Seller {
	row := st.sellers[id]
	seller := row.seller
	if credentials, ok := st.credentials[row.credentialsID]; ok {
		seller.Credentials = &credentials
	}
	if address, ok := st.addresses[row.addressID]; ok {
		seller.Address = &address
	}
	seller.Books = st.booksWhere(func(_ uuid.UUID, book catalog.Book) bool {
		return book.SellerID != nil && *book.SellerID == id
	})
	return &seller
}

func (st *state) client(id uuid.UUID) *catalog.Client {
	row := st.clients[id]
	client := row.client
	if credentials, ok := st.credentials[row.credentialsID]; ok {
		client.Credentials = &credentials
	}
	if _, ok := st.carts[row.cartID]; ok {
		client.Cart = st.cart(row.cartID)
	}
	for _, addressID := range st.clientAddresses[id] {
		if address, ok := st.addresses[addressID]; ok {
			addr := address
			client.Addresses = append(client.Addresses, &addr)
		}
	}
	return &client
}

// ---- queries ----

func getAllPaged(st *state, kind catalog.Kind, req catalog.PageRequest) (catalog.Page[catalog.Entity], error) {
	all := make([]catalog.Entity, 0, len(st.order[kind]))
	for _, id := range st.order[kind] {
		if ent, err := getByID(st, kind, id); err == nil {
			all = append(all, ent)
		}
	}
	if req.Sort != "" {
		sort.SliceStable(all, func(i, j int) bool {
			a, _ := fieldValue(all[i], req.Sort)
			b, _ := fieldValue(all[j], req.Sort)
			return a < b
		})
	}
	total := len(all)
	items := all
	if req.Size > 0 {
		start := req.Offset()
		if start > total {
			start = total
		}
		end := start + req.Size
		if end > total {
			end = total
		}
		items = all[start:end]
	}
	return catalog.Page[catalog.Entity]{Items: items, Total: total, Page: req.Page, Size: req.Size}, nil
}

func getWhere(st *state, kind catalog.Kind, filter catalog.Filter) ([]catalog.Entity, error) {
	var matched []catalog.Entity
	for _, id := range st.order[kind] {
		ent, err := getByID(st, kind, id)
		if err != nil {
			continue
		}
		value, ok := fieldValue(ent, filter.Field)
		if !ok {
			continue
		}
		if matches(value, filter) {
			matched = append(matched, ent)
		}
	}
	return matched, nil
}

func matches(value string, filter catalog.Filter) bool {
	switch filter.Op {
	case catalog.OpEq:
		return value == filter.Value
	case catalog.OpEqFold:
		return strings.EqualFold(value, filter.Value)
	case catalog.OpContainsFold:
		return strings.Contains(strings.ToLower(value), strings.ToLower(filter.Value))
	}
	return false
}

// fieldValue resolves a filter or sort field against a materialized entity.
// The field names mirror the column names the postgres store queries.
func fieldValue(e catalog.Entity, field string) (string, bool) {
	switch v := e.(type) {
	case *catalog.Credentials:
		if field == "username" {
			return v.Username, true
		}
	case *catalog.Book:
		switch field {
		case "title":
			return v.Title, true
		case "isbn":
			return v.ISBN, true
		}
	case *catalog.Author:
		if field == "name" {
			return v.Name, true
		}
	case *catalog.Genre:
		if field == "name" {
			return v.Name, true
		}
	case *catalog.Publisher:
		if field == "name" {
			return v.Name, true
		}
	case *catalog.Seller:
		switch field {
		case "name":
			return v.Name, true
		case "phone":
			return v.Phone, true
		}
	case *catalog.Client:
		switch field {
		case "name":
			return v.Name, true
		case "cpf":
			return v.CPF, true
		case "email":
			return v.Email, true
		case "username":
			if v.Credentials != nil {
				return v.Credentials.Username, true
			}
		}
	}
	return "", false
}
