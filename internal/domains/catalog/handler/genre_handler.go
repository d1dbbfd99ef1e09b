package handler

import (
	"github.com/gin-gonic/gin"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/shared/response"
)

type GenreHandler struct {
	service catalog.GenreService
}

func NewGenreHandler(svc catalog.GenreService) *GenreHandler {
	return &GenreHandler{service: svc}
}

func (h *GenreHandler) Create(c *gin.Context) {
	var req catalog.GenreRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	genre, err := h.service.Save(c.Request.Context(), req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	created(c, genre)
}

func (h *GenreHandler) GetByID(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	genre, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, genre)
}

func (h *GenreHandler) GetAll(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		genres, err := h.service.FindByName(c.Request.Context(), name)
		if err != nil {
			writeError(c, err)
			return
		}
		ok(c, genres)
		return
	}
	page, err := h.service.FindAllPaged(c.Request.Context(), pageRequest(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMeta(c, 200, page.Items, pageMeta(page))
}

func (h *GenreHandler) Update(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req catalog.GenreRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	genre, err := h.service.Update(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, genre)
}

func (h *GenreHandler) Delete(c *gin.Context) {
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
