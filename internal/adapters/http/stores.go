package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chandrasingh0914/mersiv-backend/internal/domain"
	"github.com/chandrasingh0914/mersiv-backend/internal/storage"
)

// Catalog is what the REST handlers need from the store repository.
type Catalog interface {
	List(ctx context.Context) ([]domain.StoreListItem, error)
	Get(ctx context.Context, id string) (*domain.Store, error)
	Create(ctx context.Context, in domain.StoreCreate) (*domain.Store, error)
	Update(ctx context.Context, id string, in domain.StoreUpdate) (*domain.Store, error)
	UpdateModelPosition(ctx context.Context, id string, upd domain.ModelPositionUpdate) (*domain.Store, error)
	Delete(ctx context.Context, id string) error
	WidgetConfigByDomain(ctx context.Context, pageDomain string) (*domain.WidgetConfig, error)
}

type StoreHandlers struct {
	Stores Catalog
}

func (h *StoreHandlers) ListStores(c *gin.Context) {
	items, err := h.Stores.List(c.Request.Context())
	if err != nil {
		abortStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *StoreHandlers) GetStore(c *gin.Context) {
	store, err := h.Stores.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandlers) CreateStore(c *gin.Context) {
	var in domain.StoreCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	store, err := h.Stores.Create(c.Request.Context(), in)
	if err != nil {
		abortStorageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (h *StoreHandlers) UpdateStore(c *gin.Context) {
	var in domain.StoreUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	store, err := h.Stores.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		abortStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandlers) UpdateModelPosition(c *gin.Context) {
	var upd domain.ModelPositionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	store, err := h.Stores.UpdateModelPosition(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		abortStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandlers) DeleteStore(c *gin.Context) {
	if err := h.Stores.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Store deleted successfully"})
}

func (h *StoreHandlers) WidgetConfig(c *gin.Context) {
	pageDomain := c.Query("domain")
	if pageDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "domain query parameter is required"})
		return
	}
	cfg, err := h.Stores.WidgetConfigByDomain(c.Request.Context(), pageDomain)
	if err != nil {
		abortStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func abortStorageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid store ID format"})
	case errors.Is(err, storage.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Store name already exists"})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Store not found"})
	case errors.Is(err, storage.ErrModelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Model not found in store"})
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("storage error")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}
