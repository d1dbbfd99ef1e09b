package handler

import (
	"github.com/gin-gonic/gin"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/shared/response"
)

type SellerHandler struct {
	service catalog.SellerService
}

func NewSellerHandler(svc catalog.SellerService) *SellerHandler {
	return &SellerHandler{service: svc}
}

func (h *SellerHandler) Create(c *gin.Context) {
	var req catalog.SellerRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	seller, err := h.service.Save(c.Request.Context(), req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	created(c, seller)
}

func (h *SellerHandler) GetByID(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	seller, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, seller)
}

// GetAll handles GET /v1/sellers. The listing is redacted to the public
// view; credentials never leave through this endpoint.
func (h *SellerHandler) GetAll(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		sellers, err := h.service.FindByName(c.Request.Context(), name)
		if err != nil {
			writeError(c, err)
			return
		}
		views := make([]catalog.SellerView, 0, len(sellers))
		for _, seller := range sellers {
			views = append(views, seller.View())
		}
		ok(c, views)
		return
	}
	page, err := h.service.FindAllPaged(c.Request.Context(), pageRequest(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMeta(c, 200, page.Items, pageMeta(page))
}

func (h *SellerHandler) Update(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req catalog.SellerRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	seller, err := h.service.Update(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, seller)
}

// Delete handles DELETE /v1/sellers/:id. The seller's credentials, address
// and every book it listed are removed with it.
func (h *SellerHandler) Delete(c *gin.Context) {
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
