package handler

import (
	"net/http"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/service"

	"github.com/gin-gonic/gin"
)

// ParametrosHandler serves the launch-form lookup tables: product conditions,
// stock locations and warranty terms.
type ParametrosHandler struct{ svc service.ParametroService }

func NewParametrosHandler(svc service.ParametroService) *ParametrosHandler {
	return &ParametrosHandler{svc: svc}
}

func (h *ParametrosHandler) ListarCondicoes(c *gin.Context) {
	resp, err := h.svc.ListarCondicoes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar condições"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ParametrosHandler) CriarCondicao(c *gin.Context) {
	var req dto.ParametroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarCondicao(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ParametrosHandler) ListarLocais(c *gin.Context) {
	resp, err := h.svc.ListarLocais(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar locais de estoque"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ParametrosHandler) CriarLocal(c *gin.Context) {
	var req dto.ParametroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarLocal(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ParametrosHandler) ListarGarantias(c *gin.Context) {
	resp, err := h.svc.ListarGarantias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar garantias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ParametrosHandler) CriarGarantia(c *gin.Context) {
	var req dto.ParametroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarGarantia(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
