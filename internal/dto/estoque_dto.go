package dto

import "github.com/shopspring/decimal"

// ─── Compra (purchase order) DTOs ────────────────────────────────────────────

type CriarCompraItemRequest struct {
	Marca                  string          `json:"marca"      validate:"required,min=1"`
	Categoria              string          `json:"categoria"  validate:"required,min=1"`
	Modelo                 string          `json:"modelo"     validate:"required,min=1"`
	Cor                    string          `json:"cor"`
	Quantidade             int             `json:"quantidade" validate:"required,gt=0"`
	CustoUnitario          decimal.Decimal `json:"custo_unitario"           validate:"min=0"`
	CustoAdicionalUnitario decimal.Decimal `json:"custo_adicional_unitario" validate:"min=0"`
	TemImei                bool            `json:"tem_imei"`
	Condicao               *string         `json:"condicao"`
	Garantia               *string         `json:"garantia"`
	LocalEstoque           *string         `json:"local_estoque"`
	EstoqueMinimo          *int            `json:"estoque_minimo" validate:"omitempty,min=0"`
	CodigoBarras           *string         `json:"codigo_barras"`
}

type CriarCompraRequest struct {
	FornecedorNome  string                   `json:"fornecedor_nome"`
	CompraDeCliente bool                     `json:"compra_de_cliente"`
	Observacoes     *string                  `json:"observacoes"`
	Itens           []CriarCompraItemRequest `json:"itens" validate:"required,min=1,dive"`
}

type CompraItemResponse struct {
	ID                     string          `json:"id"`
	Marca                  string          `json:"marca"`
	Categoria              string          `json:"categoria"`
	Modelo                 string          `json:"modelo"`
	Cor                    string          `json:"cor"`
	Quantidade             int             `json:"quantidade"`
	QuantidadeLancada      int             `json:"quantidade_lancada"`
	CustoUnitario          decimal.Decimal `json:"custo_unitario"`
	CustoAdicionalUnitario decimal.Decimal `json:"custo_adicional_unitario"`
	TemImei                bool            `json:"tem_imei"`
	Condicao               *string         `json:"condicao"`
	Garantia               *string         `json:"garantia"`
	LocalEstoque           *string         `json:"local_estoque"`
	EstoqueMinimo          *int            `json:"estoque_minimo"`
	CodigoBarras           *string         `json:"codigo_barras"`
}

type CompraResponse struct {
	ID              string               `json:"id"`
	NumeroCompra    int                  `json:"numero_compra"`
	FornecedorNome  string               `json:"fornecedor_nome"`
	CompraDeCliente bool                 `json:"compra_de_cliente"`
	Observacoes     *string              `json:"observacoes"`
	CriadoPor       string               `json:"criado_por"`
	CreatedAt       string               `json:"created_at"`
	Itens           []CompraItemResponse `json:"itens"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ─── Stock launch DTOs ───────────────────────────────────────────────────────

// ItemLancamentoResponse is one expanded draft row returned by the launch
// preview. In bulk mode Quantidade carries the remaining units of the item;
// in unique mode each row is a single device (Quantidade=1) with identity
// fields left blank for the operator to fill in.
type ItemLancamentoResponse struct {
	CompraItemID   string           `json:"compra_item_id"`
	Descricao      string           `json:"descricao"`
	Marca          string           `json:"marca"`
	Categoria      string           `json:"categoria"`
	Modelo         string           `json:"modelo"`
	Cor            string           `json:"cor"`
	Quantidade     int              `json:"quantidade"`
	TemImei        bool             `json:"tem_imei"`
	EhApple        bool             `json:"eh_apple"`
	NumeroSerie    string           `json:"numero_serie"`
	Imei1          string           `json:"imei1"`
	Imei2          string           `json:"imei2"`
	SaudeBateria   int              `json:"saude_bateria"`
	Condicao       string           `json:"condicao"`
	Garantia       string           `json:"garantia"`
	LocalEstoque   string           `json:"local_estoque"`
	PrecoCusto     decimal.Decimal  `json:"preco_custo"`
	CustoAdicional decimal.Decimal  `json:"custo_adicional"`
	Markup         *decimal.Decimal `json:"markup"`
	PrecoVenda     *decimal.Decimal `json:"preco_venda"`
	PrecoAtacado   *decimal.Decimal `json:"preco_atacado"`
	EstoqueMinimo  *int             `json:"estoque_minimo"`
	CodigoBarras   string           `json:"codigo_barras"`
}

// LancarItemRequest is one submitted launch row. PrecoVenda must be present
// and positive on every row; the service flags violations per index.
type LancarItemRequest struct {
	CompraItemID   string           `json:"compra_item_id" validate:"required,uuid"`
	Quantidade     int              `json:"quantidade"     validate:"required,gt=0"`
	NumeroSerie    string           `json:"numero_serie"`
	Imei1          string           `json:"imei1"`
	Imei2          string           `json:"imei2"`
	SaudeBateria   *int             `json:"saude_bateria"`
	Condicao       string           `json:"condicao"`
	Garantia       string           `json:"garantia"`
	LocalEstoque   string           `json:"local_estoque"`
	PrecoCusto     decimal.Decimal  `json:"preco_custo"     validate:"min=0"`
	CustoAdicional decimal.Decimal  `json:"custo_adicional" validate:"min=0"`
	PrecoVenda     *decimal.Decimal `json:"preco_venda"`
	PrecoAtacado   *decimal.Decimal `json:"preco_atacado"`
	EstoqueMinimo  *int             `json:"estoque_minimo"  validate:"omitempty,min=0"`
	CodigoBarras   string           `json:"codigo_barras"`
}

type LancarCompraRequest struct {
	Itens []LancarItemRequest `json:"itens" validate:"required,min=1,dive"`
}

type LancamentoResponse struct {
	ProdutosCriados int `json:"produtos_criados"`
}
