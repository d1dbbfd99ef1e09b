package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookmarketplace-backend/internal/domains/catalog"
)

// Loading is two levels deep, the same rule the embedded store follows:
// relation members come back with their scalars and flat one-level relations.

func noRow(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.ErrNoSuchEntity
	}
	return err
}

// ---- credentials ----

func (s *Store) credentials(ctx context.Context, id uuid.UUID) (*catalog.Credentials, error) {
	c := &catalog.Credentials{ID: id}
	err := s.q.QueryRow(ctx,
		`SELECT username, password, role FROM tb_credentials WHERE id = $1`, id,
	).Scan(&c.Username, &c.Password, &c.Role)
	if err != nil {
		return nil, noRow(err)
	}
	return c, nil
}

func (s *Store) putCredentials(ctx context.Context, c *catalog.Credentials) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO tb_credentials (id, username, password, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			password = EXCLUDED.password,
			role = EXCLUDED.role`,
		c.ID, c.Username, c.Password, c.Role)
	return err
}

// ---- address ----

func (s *Store) address(ctx context.Context, id uuid.UUID) (*catalog.Address, error) {
	a := &catalog.Address{ID: id}
	err := s.q.QueryRow(ctx,
		`SELECT address_line, city, state, zip, country, complement FROM tb_address WHERE id = $1`, id,
	).Scan(&a.Line, &a.City, &a.State, &a.Zip, &a.Country, &a.Complement)
	if err != nil {
		return nil, noRow(err)
	}
	return a, nil
}

func (s *Store) putAddress(ctx context.Context, a *catalog.Address) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO tb_address (id, address_line, city, state, zip, country, complement)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			address_line = EXCLUDED.address_line,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip = EXCLUDED.zip,
			country = EXCLUDED.country,
			complement = EXCLUDED.complement`,
		a.ID, a.Line, a.City, a.State, a.Zip, a.Country, a.Complement)
	return err
}

// ---- cart ----

func (s *Store) cart(ctx context.Context, id uuid.UUID) (*catalog.Cart, error) {
	var one int
	if err := s.q.QueryRow(ctx, `SELECT 1 FROM tb_cart WHERE id = $1`, id).Scan(&one); err != nil {
		return nil, noRow(err)
	}
	cart := &catalog.Cart{ID: id}
	bookIDs, err := s.selectIDs(ctx, `
		SELECT b.id FROM tb_book b
		JOIN tb_cart_items ci ON ci.book_id = b.id
		WHERE ci.cart_id = $1
		ORDER BY b.seq`, id)
	if err != nil {
		return nil, err
	}
	for _, bookID := range bookIDs {
		book, err := s.book(ctx, bookID)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, book)
	}
	return cart, nil
}

func (s *Store) putCart(ctx context.Context, c *catalog.Cart) error {
	if _, err := s.q.Exec(ctx, `
		INSERT INTO tb_cart (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, c.ID); err != nil {
		return err
	}
	return s.syncLinks(ctx, "tb_cart_items", "cart_id", "book_id", c.ID, idsOf(c.Items))
}

// ---- book ----

func (s *Store) book(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	b := &catalog.Book{ID: id}
	err := s.q.QueryRow(ctx, `
		SELECT title, description, published_date, isbn, image, price, stock,
		       condition, cover_type, language, publisher_id, seller_id
		FROM tb_book WHERE id = $1`, id,
	).Scan(&b.Title, &b.Description, &b.PublishedDate, &b.ISBN, &b.Image, &b.Price,
		&b.Stock, &b.Condition, &b.CoverType, &b.Language, &b.PublisherID, &b.SellerID)
	if err != nil {
		return nil, noRow(err)
	}
	rows, err := s.q.Query(ctx, `
		SELECT a.id, a.name, a.biography, a.image FROM tb_author a
		JOIN tb_book_author ba ON ba.author_id = a.id
		WHERE ba.book_id = $1 ORDER BY a.seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		author := &catalog.Author{}
		if err := rows.Scan(&author.ID, &author.Name, &author.Biography, &author.Image); err != nil {
			return nil, err
		}
		b.Authors = append(b.Authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	genreRows, err := s.q.Query(ctx, `
		SELECT g.id, g.name, g.image FROM tb_genre g
		JOIN tb_book_genre bg ON bg.genre_id = g.id
		WHERE bg.book_id = $1 ORDER BY g.seq`, id)
	if err != nil {
		return nil, err
	}
	defer genreRows.Close()
	for genreRows.Next() {
		genre := &catalog.Genre{}
		if err := genreRows.Scan(&genre.ID, &genre.Name, &genre.Image); err != nil {
			return nil, err
		}
		b.Genres = append(b.Genres, genre)
	}
	return b, genreRows.Err()
}

func (s *Store) putBook(ctx context.Context, b *catalog.Book) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO tb_book (id, title, description, published_date, isbn, image,
		                     price, stock, condition, cover_type, language,
		                     publisher_id, seller_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			published_date = EXCLUDED.published_date,
			isbn = EXCLUDED.isbn,
			image = EXCLUDED.image,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			condition = EXCLUDED.condition,
			cover_type = EXCLUDED.cover_type,
			language = EXCLUDED.language,
			publisher_id = EXCLUDED.publisher_id,
			seller_id = EXCLUDED.seller_id`,
		b.ID, b.Title, b.Description, b.PublishedDate, b.ISBN, b.Image,
		b.Price, b.Stock, b.Condition, b.CoverType, b.Language,
		b.PublisherID, b.SellerID)
	if err != nil {
		return err
	}
	if err := s.syncLinks(ctx, "tb_book_author", "book_id", "author_id", b.ID, idsOf(b.Authors)); err != nil {
		return err
	}
	return s.syncLinks(ctx, "tb_book_genre", "book_id", "genre_id", b.ID, idsOf(b.Genres))
}

// ---- author / genre / publisher ----

func (s *Store) author(ctx context.Context, id uuid.UUID) (*catalog.Author, error) {
	a := &catalog.Author{ID: id}
	err := s.q.QueryRow(ctx,
		`SELECT name, biography, image FROM tb_author WHERE id = $1`, id,
	).Scan(&a.Name, &a.Biography, &a.Image)
	if err != nil {
		return nil, noRow(err)
	}
	a.Books, err = s.booksFrom(ctx, `
		SELECT b.id FROM tb_book b
		JOIN tb_book_author ba ON ba.book_id = b.id
		WHERE ba.author_id = $1 ORDER BY b.seq`, id)
	return a, err
}

func (s *Store) putAuthor(ctx context.Context, a *catalog.Author) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO tb_author (id, name, biography, image)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			biography = EXCLUDED.biography,
			image = EXCLUDED.image`,
		a.ID, a.Name, a.Biography, a.Image)
	return err
}

func (s *Store) genre(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	g := &catalog.Genre{ID: id}
	err := s.q.QueryRow(ctx,
		`SELECT name, image FROM tb_genre WHERE id = $1`, id,
	).Scan(&g.Name, &g.Image)
	if err != nil {
		return nil, noRow(err)
	}
	g.Books, err = s.booksFrom(ctx, `
		SELECT b.id FROM tb_book b
		JOIN tb_book_genre bg ON bg.book_id = b.id
		WHERE bg.genre_id = $1 ORDER BY b.seq`, id)
	return g, err
}

func (s *Store) putGenre(ctx context.Context, g *catalog.Genre) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO tb_genre (id, name, image)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			image = EXCLUDED.image`,
		g.ID, g.Name, g.Image)
	return err
}

func (s *Store) publisher(ctx context.Context, id uuid.UUID) (*catalog.Publisher, error) {
	p := &catalog.Publisher{ID: id}
	err := s.q.QueryRow(ctx,
		`SELECT name, logo FROM tb_publisher WHERE id = $1`, id,
	).Scan(&p.Name, &p.Logo)
	if err != nil {
		return nil, noRow(err)
	}
	p.Books, err = s.booksFrom(ctx,
		`SELECT id FROM tb_book WHERE publisher_id = $1 ORDER BY seq`, id)
	return p, err
}

func (s *Store) putPublisher(ctx context.Context, p *catalog.Publisher) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO tb_publisher (id, name, logo)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			logo = EXCLUDED.logo`,
		p.ID, p.Name, p.Logo)
	return err
}

// ---- seller ----

func (s *Store) seller(ctx context.Context, id uuid.UUID) (*catalog.Seller, error) {
	sl := &catalog.Seller{ID: id}
	var credentialsID, addressID *uuid.UUID
	err := s.q.QueryRow(ctx, `
		SELECT name, phone, logo, created_at, credentials_id, address_id
		FROM tb_seller WHERE id = $1`, id,
	).Scan(&sl.Name, &sl.Phone, &sl.Logo, &sl.CreatedAt, &credentialsID, &addressID)
	if err != nil {
		return nil, noRow(err)
	}
	if credentialsID != nil {
		if sl.Credentials, err = s.credentials(ctx, *credentialsID); err != nil && !errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil, err
		}
	}
	if addressID != nil {
		if sl.Address, err = s.address(ctx, *addressID); err != nil && !errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil, err
		}
	}
	sl.Books, err = s.booksFrom(ctx,
		`SELECT id FROM tb_book WHERE seller_id = $1 ORDER BY seq`, id)
	return sl, err
}

func (s *Store) putSeller(ctx context.Context, sl *catalog.Seller) error {
	var credentialsID, addressID *uuid.UUID
	if sl.Credentials != nil {
		credentialsID = &sl.Credentials.ID
	}
	if sl.Address != nil {
		addressID = &sl.Address.ID
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO tb_seller (id, name, phone, logo, created_at, credentials_id, address_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			logo = EXCLUDED.logo,
			created_at = EXCLUDED.created_at,
			credentials_id = EXCLUDED.credentials_id,
			address_id = EXCLUDED.address_id`,
		sl.ID, sl.Name, sl.Phone, sl.Logo, sl.CreatedAt, credentialsID, addressID)
	return err
}

// ---- client ----

func (s *Store) client(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	c := &catalog.Client{ID: id}
	var credentialsID, cartID *uuid.UUID
	err := s.q.QueryRow(ctx, `
		SELECT name, cpf, email, phone, credentials_id, cart_id
		FROM tb_client WHERE id = $1`, id,
	).Scan(&c.Name, &c.CPF, &c.Email, &c.Phone, &credentialsID, &cartID)
	if err != nil {
		return nil, noRow(err)
	}
	if credentialsID != nil {
		if c.Credentials, err = s.credentials(ctx, *credentialsID); err != nil && !errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil, err
		}
	}
	if cartID != nil {
		if c.Cart, err = s.cart(ctx, *cartID); err != nil && !errors.Is(err, catalog.ErrNoSuchEntity) {
			return nil, err
		}
	}
	addressIDs, err := s.selectIDs(ctx, `
		SELECT a.id FROM tb_address a
		JOIN tb_client_address ca ON ca.address_id = a.id
		WHERE ca.client_id = $1 ORDER BY a.seq`, id)
	if err != nil {
		return nil, err
	}
	for _, addressID := range addressIDs {
		address, err := s.address(ctx, addressID)
		if err != nil {
			return nil, err
		}
		c.Addresses = append(c.Addresses, address)
	}
	return c, nil
}

func (s *Store) putClient(ctx context.Context, c *catalog.Client) error {
	var credentialsID, cartID *uuid.UUID
	if c.Credentials != nil {
		credentialsID = &c.Credentials.ID
	}
	if c.Cart != nil {
		cartID = &c.Cart.ID
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO tb_client (id, name, cpf, email, phone, credentials_id, cart_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			cpf = EXCLUDED.cpf,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			credentials_id = EXCLUDED.credentials_id,
			cart_id = EXCLUDED.cart_id`,
		c.ID, c.Name, c.CPF, c.Email, c.Phone, credentialsID, cartID)
	if err != nil {
		return err
	}
	return s.syncLinks(ctx, "tb_client_address", "client_id", "address_id", c.ID, idsOf(c.Addresses))
}

// ---- shared helpers ----

func idsOf[T catalog.Entity](entities []T) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.EntityID())
	}
	return ids
}

func (s *Store) booksFrom(ctx context.Context, query string, id uuid.UUID) ([]*catalog.Book, error) {
	bookIDs, err := s.selectIDs(ctx, query, id)
	if err != nil {
		return nil, err
	}
	var books []*catalog.Book
	for _, bookID := range bookIDs {
		book, err := s.book(ctx, bookID)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// syncLinks resets the owner's rows in a link table to exactly the given set.
func (s *Store) syncLinks(ctx context.Context, linkTable, ownerColumn, refColumn string, owner uuid.UUID, refs []uuid.UUID) error {
	query := "DELETE FROM " + linkTable + " WHERE " + ownerColumn + " = $1"
	if _, err := s.q.Exec(ctx, query, owner); err != nil {
		return err
	}
	for _, ref := range refs {
		insert := "INSERT INTO " + linkTable + " (" + ownerColumn + ", " + refColumn + ") VALUES ($1, $2) ON CONFLICT DO NOTHING"
		if _, err := s.q.Exec(ctx, insert, owner, ref); err != nil {
			return err
		}
	}
	return nil
}
