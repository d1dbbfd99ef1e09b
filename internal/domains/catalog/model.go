package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies an entity type towards the store layer.
type Kind string

const (
	KindCredentials Kind = "credentials"
	KindAddress     Kind = "address"
	KindCart        Kind = "cart"
	KindBook        Kind = "book"
	KindAuthor      Kind = "author"
	KindGenre       Kind = "genre"
	KindPublisher   Kind = "publisher"
	KindSeller      Kind = "seller"
	KindClient      Kind = "client"
)

// Entity is anything the store can persist. Identity is the uuid, never
// structural equality. EntityKind must work on a nil receiver so that it can
// be derived from a type parameter's zero value.
type Entity interface {
	EntityID() uuid.UUID
	EntityKind() Kind
}

// Role is the closed set of credential roles. Unknown values are kept as-is
// but grant no authority.
type Role string

const (
	RoleClient Role = "client"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Authority is the capability token derived from a role.
type Authority string

const (
	AuthorityClient Authority = "ROLE_CLIENT"
	AuthoritySeller Authority = "ROLE_SELLER"
	AuthorityAdmin  Authority = "ROLE_ADMIN"
)

var roleAuthorities = map[Role][]Authority{
	RoleClient: {AuthorityClient},
	RoleSeller: {AuthoritySeller},
	RoleAdmin:  {AuthorityAdmin},
}

// Condition grades a book's physical state.
type Condition string

const (
	ConditionNew  Condition = "NEW"
	ConditionUsed Condition = "USED"
	ConditionGood Condition = "GOOD"
)

func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionGood:
		return true
	}
	return false
}

// CoverType is the book binding.
type CoverType string

const (
	CoverTypeHardcover CoverType = "HARDCOVER"
	CoverTypeSoftcover CoverType = "SOFTCOVER"
)

func (ct CoverType) IsValid() bool {
	return ct == CoverTypeHardcover || ct == CoverTypeSoftcover
}

// Language is a locale tag such as "en_US" or "pt_BR".
type Language string

const (
	LanguageEnUS Language = "en_US"
	LanguageEnGB Language = "en_GB"
	LanguagePtBR Language = "pt_BR"
	LanguagePtPT Language = "pt_PT"
	LanguageEsES Language = "es_ES"
	LanguageFrFR Language = "fr_FR"
	LanguageDeDE Language = "de_DE"
)

// Credentials is the login identity owned by exactly one client or seller.
// The password is stored opaque, exactly as supplied.
type Credentials struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     Role      `json:"role"`
}

func (c *Credentials) EntityID() uuid.UUID { return c.ID }
func (c *Credentials) SetEntityID(id uuid.UUID) { c.ID = id }
func (*Credentials) EntityKind() Kind { return KindCredentials }

// Authorities maps the role to its capability tokens. An unrecognized role
// grants nothing; it is not an error.
func (c *Credentials) Authorities() []Authority {
	return roleAuthorities[c.Role]
}

// Address is a postal address. Owned exclusively by one seller, or part of a
// client's address collection.
type Address struct {
	ID         uuid.UUID `json:"id"`
	Line       string    `json:"addressLine"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Zip        string    `json:"zip"`
	Country    string    `json:"country"`
	Complement *string   `json:"complement,omitempty"`
}

func (a *Address) EntityID() uuid.UUID { return a.ID }
func (a *Address) SetEntityID(id uuid.UUID) { a.ID = id }
func (*Address) EntityKind() Kind { return KindAddress }

// Cart holds a set of book references, one per book. Owned by exactly one
// client and created together with it.
type Cart struct {
	ID    uuid.UUID `json:"id"`
	Items []*Book   `json:"items"`
}

func (c *Cart) EntityID() uuid.UUID { return c.ID }
func (c *Cart) SetEntityID(id uuid.UUID) { c.ID = id }
func (*Cart) EntityKind() Kind { return KindCart }

// Total sums the prices of the contained books, zero for an empty cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price)
	}
	return total
}

// Contains reports whether a book with the given id is already in the cart.
func (c *Cart) Contains(id uuid.UUID) bool {
	for _, item := range c.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// AddItem inserts the book unless it is already present.
func (c *Cart) AddItem(book *Book) {
	if book == nil || c.Contains(book.ID) {
		return
	}
	c.Items = append(c.Items, book)
}

// RemoveItem drops the book with the given id, if present.
func (c *Cart) RemoveItem(id uuid.UUID) {
	for i, item := range c.Items {
		if item.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Book is a catalog entry. It is referenced by carts and by seller and
// publisher collections but owned by none of them.
type Book struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	PublishedDate time.Time       `json:"publishedDate"`
	ISBN          string          `json:"isbn"`
	Image         string          `json:"image"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	Condition     Condition       `json:"condition"`
	CoverType     CoverType       `json:"coverType"`
	Language      Language        `json:"language"`
	Authors       []*Author       `json:"authors"`
	Genres        []*Genre        `json:"genres"`
	PublisherID   *uuid.UUID      `json:"publisherId,omitempty"`
	SellerID      *uuid.UUID      `json:"sellerId,omitempty"`
}

func (b *Book) EntityID() uuid.UUID { return b.ID }
func (b *Book) SetEntityID(id uuid.UUID) { b.ID = id }
func (*Book) EntityKind() Kind { return KindBook }

// Author of books. Books is the reverse side of Book.Authors, materialized by
// the store; it is not authoritative.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Biography string    `json:"biography"`
	Image     string    `json:"image,omitempty"`
	Books     []*Book   `json:"books"`
}

func (a *Author) EntityID() uuid.UUID { return a.ID }
func (a *Author) SetEntityID(id uuid.UUID) { a.ID = id }
func (*Author) EntityKind() Kind { return KindAuthor }

// Genre of books. Books is derived, like Author.Books.
type Genre struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image,omitempty"`
	Books []*Book   `json:"books"`
}

func (g *Genre) EntityID() uuid.UUID { return g.ID }
func (g *Genre) SetEntityID(id uuid.UUID) { g.ID = id }
func (*Genre) EntityKind() Kind { return KindGenre }

// Publisher of books. Deleting a publisher deletes every book in Books.
type Publisher struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Logo  string    `json:"logo,omitempty"`
	Books []*Book   `json:"books"`
}

func (p *Publisher) EntityID() uuid.UUID { return p.ID }
func (p *Publisher) SetEntityID(id uuid.UUID) { p.ID = id }
func (*Publisher) EntityKind() Kind { return KindPublisher }

// Seller is a merchant aggregate owning one credentials and one address.
// Deleting a seller deletes every book in Books.
type Seller struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Logo        string       `json:"logo,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	Credentials *Credentials `json:"credentials"`
	Address     *Address     `json:"address"`
	Books       []*Book      `json:"books"`
}

func (s *Seller) EntityID() uuid.UUID { return s.ID }
func (s *Seller) SetEntityID(id uuid.UUID) { s.ID = id }
func (*Seller) EntityKind() Kind { return KindSeller }

// SellerView is the public projection of a seller for listings: everything
// but the credentials.
type SellerView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Logo    string    `json:"logo,omitempty"`
	Address *Address  `json:"address"`
	Books   []*Book   `json:"books"`
}

// View redacts the seller to its public shape.
func (s *Seller) View() SellerView {
	return SellerView{
		ID:      s.ID,
		Name:    s.Name,
		Phone:   s.Phone,
		Logo:    s.Logo,
		Address: s.Address,
		Books:   s.Books,
	}
}

// Client is a customer aggregate owning credentials, a cart and an address
// collection. CPF is the unique national identifier.
type Client struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	CPF         string       `json:"cpf"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Credentials *Credentials `json:"credentials"`
	Cart        *Cart        `json:"cart"`
	Addresses   []*Address   `json:"addresses"`
}

func (c *Client) EntityID() uuid.UUID { return c.ID }
func (c *Client) SetEntityID(id uuid.UUID) { c.ID = id }
func (*Client) EntityKind() Kind { return KindClient }
