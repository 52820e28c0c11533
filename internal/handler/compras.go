package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/middleware"
	"github.com/tiagok38-hash/iStorePro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComprasHandler struct{ svc service.EstoqueService }

func NewComprasHandler(svc service.EstoqueService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// Criar godoc
// @Summary Registra uma nova compra (ordem de entrada)
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarCompraRequest true "Itens da compra"
// @Success 201 {object} dto.CompraResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/compras [post]
func (h *ComprasHandler) Criar(c *gin.Context) {
	var req dto.CriarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.CriarCompra(c.Request.Context(), claims.Username, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ComprasHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, err := h.svc.ListarCompras(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar compras"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComprasHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObterCompra(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PrepararLancamento godoc
// @Summary Expande a compra em linhas de lançamento pendentes
// @Description Uma linha por aparelho (modo único) ou uma linha com a quantidade restante (modo granel). Lista vazia significa compra totalmente lançada.
// @Tags compras
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da compra"
// @Success 200 {array} dto.ItemLancamentoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/compras/{id}/lancamento [get]
func (h *ComprasHandler) PrepararLancamento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.PrepararLancamento(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Lancar godoc
// @Summary Lança o lote no estoque
// @Description Valida série/IMEI contra o lote e contra todo o sistema antes de criar os produtos. Duplicidades retornam 409 com o payload estruturado de conflitos.
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da compra"
// @Param body body dto.LancarCompraRequest true "Linhas do lançamento"
// @Success 201 {object} dto.LancamentoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.ErroDuplicados
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/compras/{id}/lancar [post]
func (h *ComprasHandler) Lancar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.LancarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, svcErr := h.svc.LancarCompra(c.Request.Context(), id, claims.Username, req)
	if svcErr != nil {
		var dup *apierror.ErroDuplicados
		if errors.As(svcErr, &dup) {
			c.JSON(http.StatusConflict, dup)
			return
		}
		var semPreco *service.ErroPrecoVenda
		if errors.As(svcErr, &semPreco) {
			fields := make(map[string]string, len(semPreco.Indices))
			for _, idx := range semPreco.Indices {
				fields[fmt.Sprintf("itens[%d].preco_venda", idx)] = "gt=0"
			}
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(svcErr.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
