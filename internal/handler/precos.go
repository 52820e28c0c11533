package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precoCacheTTL = 4 * time.Hour

// PrecosHandler serves the public price check endpoint.
// No authentication required — no side effects whatsoever.
type PrecosHandler struct {
	svc service.ProdutoService
	rdb *redis.Client
}

func NewPrecosHandler(svc service.ProdutoService, rdb *redis.Client) *PrecosHandler {
	return &PrecosHandler{svc: svc, rdb: rdb}
}

// ConsultarPorBarcode godoc
// @Summary Consulta de preço por código de barras (sem autenticação)
// @Tags preco
// @Produce json
// @Param barcode path string true "Código de barras"
// @Success 200 {object} dto.ConsultaPrecoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/preco/{barcode} [get]
func (h *PrecosHandler) ConsultarPorBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	ctx := c.Request.Context()
	cacheKey := "preco:" + barcode

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.svc.ConsultarPreco(ctx, barcode)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Produto não encontrado"))
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
