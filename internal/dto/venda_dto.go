package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVendaRequest struct {
	ProdutoID  string          `json:"produto_id" validate:"required,uuid"`
	Quantidade int             `json:"quantidade" validate:"required,gt=0"`
	Desconto   decimal.Decimal `json:"desconto"   validate:"min=0"`
}

type PagamentoRequest struct {
	Metodo string          `json:"metodo" validate:"required,min=1"`
	Valor  decimal.Decimal `json:"valor"  validate:"required,gt=0"`
	Taxa   decimal.Decimal `json:"taxa"   validate:"min=0"`
	Tipo   string          `json:"tipo"   validate:"omitempty,oneof=liquidado pendente"`
}

type RegistrarVendaRequest struct {
	SessaoCaixaID string             `json:"sessao_caixa_id" validate:"required,uuid"`
	ClienteNome   *string            `json:"cliente_nome"`
	Origem        string             `json:"origem"     validate:"omitempty,oneof=PDV Balcao"`
	Itens         []ItemVendaRequest `json:"itens"      validate:"required,min=1,dive"`
	Pagamentos    []PagamentoRequest `json:"pagamentos" validate:"required,min=1,dive"`
}

type CancelarVendaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// VendaFilter narrows sale listings. Status "all" disables the status filter;
// empty Data means today.
type VendaFilter struct {
	Status   string `form:"status"`
	Data     string `form:"data"`
	SessaoID string `form:"sessao_id"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVendaResponse struct {
	ProdutoID     string          `json:"produto_id"`
	Descricao     string          `json:"descricao"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Desconto      decimal.Decimal `json:"desconto"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type PagamentoResponse struct {
	Metodo string          `json:"metodo"`
	Valor  decimal.Decimal `json:"valor"`
	Taxa   decimal.Decimal `json:"taxa"`
	Tipo   string          `json:"tipo"`
}

type VendaResponse struct {
	ID                 string              `json:"id"`
	NumeroVenda        int                 `json:"numero_venda"`
	Status             string              `json:"status"`
	ClienteNome        *string             `json:"cliente_nome"`
	VendedorID         string              `json:"vendedor_id"`
	VendedorNome       string              `json:"vendedor_nome,omitempty"`
	SessaoCaixaID      *string             `json:"sessao_caixa_id"`
	Origem             string              `json:"origem"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	Desconto           decimal.Decimal     `json:"desconto"`
	Total              decimal.Decimal     `json:"total"`
	Troco              decimal.Decimal     `json:"troco"`
	Itens              []ItemVendaResponse `json:"itens"`
	Pagamentos         []PagamentoResponse `json:"pagamentos"`
	MotivoCancelamento *string             `json:"motivo_cancelamento,omitempty"`
	CreatedAt          string              `json:"created_at"`
}

type VendaListResponse struct {
	Data  []VendaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
