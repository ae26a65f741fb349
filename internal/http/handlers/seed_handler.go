package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoconnect/ecoconnect-backend/internal/http/handlers/common"
	"github.com/ecoconnect/ecoconnect-backend/internal/service"
)

// SeedHandler повторно запускает посев справочных данных. Доступен только
// в development-окружении.
type SeedHandler struct {
	seed *service.SeedService
}

func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Seed POST /seed — обновляет каталог значков и возвращает его содержимое.
func (h *SeedHandler) Seed(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.seed.SeedBadges(ctx); err != nil {
		common.RespondAppError(c, err)
		return
	}

	catalog, err := h.seed.Catalog(ctx)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "каталог значков обновлён",
		"badges":  catalog,
	})
}
