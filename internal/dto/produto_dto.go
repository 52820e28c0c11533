package dto

import "github.com/shopspring/decimal"

// ProdutoFilter: Ativo accepts "false" (inactive only), "all", or anything
// else for the default active-only listing.
type ProdutoFilter struct {
	Busca     string `form:"busca"`
	Marca     string `form:"marca"`
	Categoria string `form:"categoria"`
	CompraID  string `form:"compra_id"`
	Ativo     string `form:"ativo"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type ProdutoResponse struct {
	ID             string           `json:"id"`
	Marca          string           `json:"marca"`
	Categoria      string           `json:"categoria"`
	Modelo         string           `json:"modelo"`
	Cor            string           `json:"cor"`
	NumeroSerie    string           `json:"numero_serie"`
	Imei1          string           `json:"imei1"`
	Imei2          string           `json:"imei2"`
	SaudeBateria   int              `json:"saude_bateria"`
	Condicao       string           `json:"condicao"`
	Garantia       string           `json:"garantia"`
	LocalEstoque   string           `json:"local_estoque"`
	PrecoCusto     decimal.Decimal  `json:"preco_custo"`
	CustoAdicional decimal.Decimal  `json:"custo_adicional"`
	Preco          decimal.Decimal  `json:"preco"`
	PrecoAtacado   *decimal.Decimal `json:"preco_atacado"`
	Estoque        int              `json:"estoque"`
	EstoqueMinimo  *int             `json:"estoque_minimo"`
	CodigoBarras   string           `json:"codigo_barras"`
	Origem         string           `json:"origem"`
	Ativo          bool             `json:"ativo"`
	CreatedAt      string           `json:"created_at"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ConsultaPrecoResponse is the public price-check payload. No identity or
// cost fields — only what a customer-facing terminal may display.
type ConsultaPrecoResponse struct {
	Descricao         string           `json:"descricao"`
	Preco             decimal.Decimal  `json:"preco"`
	PrecoAtacado      *decimal.Decimal `json:"preco_atacado"`
	EstoqueDisponivel int              `json:"estoque_disponivel"`
	Categoria         string           `json:"categoria"`
}
