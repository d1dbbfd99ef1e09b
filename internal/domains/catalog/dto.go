package catalog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs for the HTTP surface. The same shape serves create and
// update: on update, relation references are merged additively and scalar
// fields are applied through the field-by-field merge.

// EntityRef carries just an identity, for relation membership.
type EntityRef struct {
	ID uuid.UUID `json:"id"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

func (r CredentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Password, validation.Required),
	)
}

func (r CredentialsRequest) ToEntity() *Credentials {
	return &Credentials{Username: r.Username, Password: r.Password, Role: r.Role}
}

type AddressRequest struct {
	AddressLine string  `json:"addressLine"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Zip         string  `json:"zip"`
	Country     string  `json:"country"`
	Complement  *string `json:"complement,omitempty"`
}

func (r AddressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AddressLine, validation.Required),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.Country, validation.Required),
	)
}

func (r AddressRequest) ToEntity() *Address {
	return &Address{
		Line:       r.AddressLine,
		City:       r.City,
		State:      r.State,
		Zip:        r.Zip,
		Country:    r.Country,
		Complement: r.Complement,
	}
}

type AuthorRequest struct {
	Name      string      `json:"name"`
	Biography string      `json:"biography"`
	Image     string      `json:"image"`
	Books     []EntityRef `json:"books,omitempty"`
}

func (r AuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

func (r AuthorRequest) ToEntity() *Author {
	return &Author{
		Name:      r.Name,
		Biography: r.Biography,
		Image:     r.Image,
		Books:     bookRefs(r.Books),
	}
}

type GenreRequest struct {
	Name  string      `json:"name"`
	Image string      `json:"image"`
	Books []EntityRef `json:"books,omitempty"`
}

func (r GenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

func (r GenreRequest) ToEntity() *Genre {
	return &Genre{Name: r.Name, Image: r.Image, Books: bookRefs(r.Books)}
}

type PublisherRequest struct {
	Name  string      `json:"name"`
	Logo  string      `json:"logo"`
	Books []EntityRef `json:"books,omitempty"`
}

func (r PublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

func (r PublisherRequest) ToEntity() *Publisher {
	return &Publisher{Name: r.Name, Logo: r.Logo, Books: bookRefs(r.Books)}
}

type BookRequest struct {
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
	Authors       []EntityRef     `json:"authors,omitempty"`
	Genres        []EntityRef     `json:"genres,omitempty"`
	PublisherID   *uuid.UUID      `json:"publisherId,omitempty"`
	SellerID      *uuid.UUID      `json:"sellerId,omitempty"`
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.ISBN, validation.Required),
		validation.Field(&r.Condition, validation.Required,
			validation.In(ConditionNew, ConditionUsed, ConditionGood)),
		validation.Field(&r.CoverType, validation.Required,
			validation.In(CoverTypeHardcover, CoverTypeSoftcover)),
		validation.Field(&r.Language, validation.Required),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.Price, validation.By(priceNotNegative)),
	)
}

func (r BookRequest) ToEntity() *Book {
	book := &Book{
		Title:         r.Title,
		Description:   r.Description,
		PublishedDate: r.PublishedDate,
		ISBN:          r.ISBN,
		Image:         r.Image,
		Price:         r.Price,
		Stock:         r.Stock,
		Condition:     r.Condition,
		CoverType:     r.CoverType,
		Language:      r.Language,
		PublisherID:   r.PublisherID,
		SellerID:      r.SellerID,
	}
	for _, ref := range r.Authors {
		book.Authors = append(book.Authors, &Author{ID: ref.ID})
	}
	for _, ref := range r.Genres {
		book.Genres = append(book.Genres, &Genre{ID: ref.ID})
	}
	return book
}

type SellerRequest struct {
	Name        string              `json:"name"`
	Phone       string              `json:"phone"`
	Logo        string              `json:"logo"`
	Credentials *CredentialsRequest `json:"credentials,omitempty"`
	Address     *AddressRequest     `json:"address,omitempty"`
}

func (r SellerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.Credentials),
		validation.Field(&r.Address),
	)
}

func (r SellerRequest) ToEntity() *Seller {
	seller := &Seller{Name: r.Name, Phone: r.Phone, Logo: r.Logo}
	if r.Credentials != nil {
		seller.Credentials = r.Credentials.ToEntity()
	}
	if r.Address != nil {
		seller.Address = r.Address.ToEntity()
	}
	return seller
}

type ClientRequest struct {
	Name        string              `json:"name"`
	CPF         string              `json:"cpf"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Credentials *CredentialsRequest `json:"credentials,omitempty"`
	Addresses   []AddressRequest    `json:"addresses,omitempty"`
}

func (r ClientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.CPF, validation.Required),
		validation.Field(&r.Credentials),
		validation.Field(&r.Addresses),
	)
}

func (r ClientRequest) ToEntity() *Client {
	client := &Client{Name: r.Name, CPF: r.CPF, Email: r.Email, Phone: r.Phone}
	if r.Credentials != nil {
		client.Credentials = r.Credentials.ToEntity()
	}
	for _, addr := range r.Addresses {
		client.Addresses = append(client.Addresses, addr.ToEntity())
	}
	return client
}

func bookRefs(refs []EntityRef) []*Book {
	var books []*Book
	for _, ref := range refs {
		books = append(books, &Book{ID: ref.ID})
	}
	return books
}

func priceNotNegative(value interface{}) error {
	price, ok := value.(decimal.Decimal)
	if !ok || price.IsNegative() {
		return validation.NewError("validation_price", "must be zero or positive")
	}
	return nil
}
