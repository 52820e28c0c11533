package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	SaldoAbertura decimal.Decimal `json:"saldo_abertura" validate:"min=0"`
}

type MovimentoCaixaRequest struct {
	SessaoCaixaID string          `json:"sessao_caixa_id" validate:"required,uuid"`
	Tipo          string          `json:"tipo"            validate:"required,oneof=suprimento sangria"`
	Valor         decimal.Decimal `json:"valor"           validate:"required,gt=0"`
	Motivo        string          `json:"motivo"          validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimentoCaixaResponse struct {
	ID       string          `json:"id"`
	Tipo     string          `json:"tipo"`
	Valor    decimal.Decimal `json:"valor"`
	Motivo   string          `json:"motivo"`
	CriadoEm string          `json:"criado_em"`
}

type SessaoCaixaResponse struct {
	ID            string                   `json:"id"`
	NumeroSessao  int                      `json:"numero_sessao"`
	UsuarioID     string                   `json:"usuario_id"`
	UsuarioNome   string                   `json:"usuario_nome,omitempty"`
	SaldoAbertura decimal.Decimal          `json:"saldo_abertura"`
	Status        string                   `json:"status"`
	AbertoEm      string                   `json:"aberto_em"`
	FechadoEm     *string                  `json:"fechado_em"`
	Movimentos    []MovimentoCaixaResponse `json:"movimentos"`
}

type TotalMetodoResponse struct {
	Metodo string          `json:"metodo"`
	Valor  decimal.Decimal `json:"valor"`
}

// ResumoCaixaResponse carries the session plus every figure the balance
// calculator derives from its sales and movements.
type ResumoCaixaResponse struct {
	Sessao             SessaoCaixaResponse   `json:"sessao"`
	QuantidadeVendas   int                   `json:"quantidade_vendas"`
	ValorTransacionado decimal.Decimal       `json:"valor_transacionado"`
	VendasDinheiro     decimal.Decimal       `json:"vendas_dinheiro"`
	Suprimentos        decimal.Decimal       `json:"suprimentos"`
	Sangrias           decimal.Decimal       `json:"sangrias"`
	DinheiroEmCaixa    decimal.Decimal       `json:"dinheiro_em_caixa"`
	TotaisPorMetodo    []TotalMetodoResponse `json:"totais_por_metodo"`
}
