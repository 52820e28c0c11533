package handler

import (
	"net/http"
	"strconv"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/middleware"
	"github.com/tiagok38-hash/iStorePro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre uma nova sessão de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCaixaRequest true "Dados de abertura"
// @Success 201 {object} dto.SessaoCaixaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha a sessão de caixa
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} dto.SessaoCaixaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/{id}/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reabrir godoc
// @Summary Reabre uma sessão fechada para correções
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} dto.SessaoCaixaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/{id}/reabrir [post]
func (h *CaixaHandler) Reabrir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Reabrir(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimento godoc
// @Summary Registra um suprimento ou sangria na sessão aberta
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimentoCaixaRequest true "Movimento manual"
// @Success 201 {object} dto.SessaoCaixaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/movimento [post]
func (h *CaixaHandler) RegistrarMovimento(c *gin.Context) {
	var req dto.MovimentoCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RegistrarMovimento(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Resumo godoc
// @Summary Resumo financeiro da sessão (dinheiro em caixa, totais por método)
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} dto.ResumoCaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixa/{id}/resumo [get]
func (h *CaixaHandler) Resumo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Resumo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SessaoAtiva returns the currently open cash session for the authenticated user.
func (h *CaixaHandler) SessaoAtiva(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}
	resp, err := h.svc.SessaoAtiva(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Nenhuma sessão de caixa aberta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar returns a paginated history of cash sessions.
func (h *CaixaHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, total, err := h.svc.Listar(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "total": total, "page": page, "limit": limit})
}
