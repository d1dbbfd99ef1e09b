package handler

import (
	"github.com/gin-gonic/gin"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/shared/response"
)

type AuthorHandler struct {
	service catalog.AuthorService
}

func NewAuthorHandler(svc catalog.AuthorService) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// Create handles POST /v1/authors.
func (h *AuthorHandler) Create(c *gin.Context) {
	var req catalog.AuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	author, err := h.service.Save(c.Request.Context(), req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	created(c, author)
}

// GetByID handles GET /v1/authors/:id.
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	author, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, author)
}

// GetAll handles GET /v1/authors. A name query narrows the listing to a
// case-insensitive partial match.
func (h *AuthorHandler) GetAll(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		authors, err := h.service.FindByName(c.Request.Context(), name)
		if err != nil {
			writeError(c, err)
			return
		}
		ok(c, authors)
		return
	}
	page, err := h.service.FindAllPaged(c.Request.Context(), pageRequest(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMeta(c, 200, page.Items, pageMeta(page))
}

// Update handles PUT /v1/authors/:id with merge semantics: scalars are
// applied, the book set only grows.
func (h *AuthorHandler) Update(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req catalog.AuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	author, err := h.service.Update(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, author)
}

// Delete handles DELETE /v1/authors/:id. Deleting an absent author succeeds.
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	noContent(c)
}
