package handler

import (
	"net/http"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/middleware"
	"github.com/tiagok38-hash/iStorePro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendasHandler struct{ svc service.VendaService }

func NewVendasHandler(svc service.VendaService) *VendasHandler { return &VendasHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar uma nova venda
// @Description  Cria a venda de forma atômica: baixa estoque, grava itens e pagamentos e dispara a checagem de estoque mínimo em segundo plano.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVendaRequest true "Detalhe da venda"
// @Success      201  {object} dto.VendaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/vendas [post]
func (h *VendasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	vendedorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), vendedorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancelar godoc
// @Summary      Cancelar venda
// @Description  Cancela uma venda: restaura o estoque e registra o motivo. A venda permanece no histórico com status Cancelada.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string                   true "UUID da venda"
// @Param        body body     dto.CancelarVendaRequest true "Motivo do cancelamento"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/vendas/{id} [delete]
func (h *VendasHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id, req.Motivo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Listar godoc
// @Summary      Listar vendas
// @Description  Retorna lista paginada de vendas filtrada por data, status ou sessão de caixa.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        data      query string false "Data YYYY-MM-DD (default: hoje)"
// @Param        status    query string false "Finalizada | Cancelada | Pendente | all"
// @Param        sessao_id query string false "UUID da sessão de caixa"
// @Param        page      query int    false "Página (default 1)"
// @Param        limit     query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.VendaListResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/vendas [get]
func (h *VendasHandler) Listar(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorSessao returns every sale attached to a cash session (used by the
// session summary screen).
func (h *VendasHandler) PorSessao(c *gin.Context) {
	sessaoID, err := uuid.Parse(c.Param("sessao_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de sessão inválido"))
		return
	}
	resp, err := h.svc.PorSessao(c.Request.Context(), sessaoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas da sessão"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
