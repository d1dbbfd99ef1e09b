package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookRequestValidate(t *testing.T) {
	valid := BookRequest{
		Title:     "Dom Casmurro",
		ISBN:      "978-85-0000-000-1",
		Condition: ConditionUsed,
		CoverType: CoverTypeSoftcover,
		Language:  LanguagePtBR,
		Price:     decimal.RequireFromString("29.90"),
	}
	assert.NoError(t, valid.Validate())

	missingTitle := valid
	missingTitle.Title = ""
	assert.Error(t, missingTitle.Validate())

	badCondition := valid
	badCondition.Condition = "MINT"
	assert.Error(t, badCondition.Validate())

	negativePrice := valid
	negativePrice.Price = decimal.RequireFromString("-1")
	assert.Error(t, negativePrice.Validate())
}

func TestBookRequestToEntity(t *testing.T) {
	authorID := uuid.New()
	genreID := uuid.New()
	sellerID := uuid.New()
	req := BookRequest{
		Title:     "Dom Casmurro",
		ISBN:      "978-85-0000-000-1",
		Condition: ConditionUsed,
		CoverType: CoverTypeSoftcover,
		Language:  LanguagePtBR,
		Authors:   []EntityRef{{ID: authorID}},
		Genres:    []EntityRef{{ID: genreID}},
		SellerID:  &sellerID,
	}

	book := req.ToEntity()

	require.Len(t, book.Authors, 1)
	assert.Equal(t, authorID, book.Authors[0].ID)
	require.Len(t, book.Genres, 1)
	assert.Equal(t, genreID, book.Genres[0].ID)
	require.NotNil(t, book.SellerID)
	assert.Equal(t, sellerID, *book.SellerID)
}

func TestSellerRequestValidatesNested(t *testing.T) {
	req := SellerRequest{
		Name:        "Sebo Belo",
		Phone:       "+55 11 90000-0001",
		Credentials: &CredentialsRequest{Username: "sebo"},
	}
	assert.Error(t, req.Validate(), "nested credentials need a password")

	req.Credentials.Password = "secret"
	assert.NoError(t, req.Validate())
}

func TestClientRequestToEntity(t *testing.T) {
	req := ClientRequest{
		Name: "Ana",
		CPF:  "111.222.333-44",
		Addresses: []AddressRequest{
			{AddressLine: "Rua 1", City: "Recife", Country: "BR"},
		},
	}

	client := req.ToEntity()

	assert.Equal(t, "Ana", client.Name)
	require.Len(t, client.Addresses, 1)
	assert.Equal(t, "Recife", client.Addresses[0].City)
	assert.Nil(t, client.Credentials)
}
