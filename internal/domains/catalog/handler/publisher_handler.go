package handler

import (
	"github.com/gin-gonic/gin"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/shared/response"
)

type PublisherHandler struct {
	service catalog.PublisherService
}

func NewPublisherHandler(svc catalog.PublisherService) *PublisherHandler {
	return &PublisherHandler{service: svc}
}

func (h *PublisherHandler) Create(c *gin.Context) {
	var req catalog.PublisherRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	publisher, err := h.service.Save(c.Request.Context(), req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	created(c, publisher)
}

func (h *PublisherHandler) GetByID(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	publisher, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, publisher)
}

func (h *PublisherHandler) GetAll(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		publishers, err := h.service.FindByName(c.Request.Context(), name)
		if err != nil {
			writeError(c, err)
			return
		}
		ok(c, publishers)
		return
	}
	page, err := h.service.FindAllPaged(c.Request.Context(), pageRequest(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMeta(c, 200, page.Items, pageMeta(page))
}

func (h *PublisherHandler) Update(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req catalog.PublisherRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	publisher, err := h.service.Update(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, publisher)
}

// Delete handles DELETE /v1/publishers/:id. Every book referencing the
// publisher goes with it.
func (h *PublisherHandler) Delete(c *gin.Context) {
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
