package api

import (
	"net/http"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/logging"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/storage"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only catalog data the team picker needs.
type CatalogHandler struct {
	repo storage.Repository
}

func NewCatalogHandler(repo storage.Repository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

// ListPokemon returns the whole catalog as flat summaries.
func (h *CatalogHandler) ListPokemon(c *gin.Context) {
	list, err := h.repo.ListPokemon()
	if err != nil {
		logging.Error("failed to list pokemon", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokemon": list, "total": len(list)})
}

// ListTypes returns the distinct type names in the catalog.
func (h *CatalogHandler) ListTypes(c *gin.Context) {
	types, err := h.repo.ListTypes()
	if err != nil {
		logging.Error("failed to list types", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"types": types})
}

// Health is the liveness probe used by the healthcheck binary.
func (h *CatalogHandler) Health(c *gin.Context) {
	count, err := h.repo.CountPokemon()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "pokemon": count})
}
