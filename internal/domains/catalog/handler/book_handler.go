package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/shared/response"
	"bookmarketplace-backend/pkg/cache"
	"bookmarketplace-backend/pkg/logger"
)

const bookCacheTTL = 5 * time.Minute

type BookHandler struct {
	service catalog.BookService
	cache   cache.Cache
}

// NewBookHandler wires the book resource. cache may be nil, in which case
// every read goes to the store.
func NewBookHandler(svc catalog.BookService, c cache.Cache) *BookHandler {
	return &BookHandler{service: svc, cache: c}
}

func bookCacheKey(id uuid.UUID) string {
	return "book:" + id.String()
}

func (h *BookHandler) Create(c *gin.Context) {
	var req catalog.BookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	book, err := h.service.Save(c.Request.Context(), req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	created(c, book)
}

// GetByID handles GET /v1/books/:id with cache-aside: a hit skips the store,
// a miss populates the cache. Cache failures degrade to a plain read.
func (h *BookHandler) GetByID(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	ctx := c.Request.Context()
	if h.cache != nil {
		var cached catalog.Book
		hit, err := h.cache.Get(ctx, bookCacheKey(id), &cached)
		if err != nil {
			logger.Error("book cache read failed", err)
		} else if hit {
			ok(c, &cached)
			return
		}
	}
	book, err := h.service.FindByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, bookCacheKey(id), book, bookCacheTTL); err != nil {
			logger.Error("book cache write failed", err)
		}
	}
	ok(c, book)
}

// GetAll handles GET /v1/books. A title query narrows the listing to a
// case-insensitive partial match.
func (h *BookHandler) GetAll(c *gin.Context) {
	if title := c.Query("title"); title != "" {
		books, err := h.service.FindByTitle(c.Request.Context(), title)
		if err != nil {
			writeError(c, err)
			return
		}
		ok(c, books)
		return
	}
	page, err := h.service.FindAllPaged(c.Request.Context(), pageRequest(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMeta(c, 200, page.Items, pageMeta(page))
}

func (h *BookHandler) Update(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req catalog.BookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	book, err := h.service.Update(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	h.invalidate(c, id)
	ok(c, book)
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.invalidate(c, id)
	noContent(c)
}

func (h *BookHandler) invalidate(c *gin.Context, id uuid.UUID) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(c.Request.Context(), bookCacheKey(id)); err != nil {
		logger.Error("book cache invalidation failed", err)
	}
}
