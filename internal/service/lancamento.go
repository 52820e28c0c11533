package service

// lancamento.go — pure stock-launch logic: purchase-order expansion into
// draft rows, markup/sale-price reconciliation, and batch duplicate
// validation. No I/O here; EstoqueService wires these into the endpoint.

import (
	"strings"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	condicaoPadrao     = "Novo"
	garantiaPadrao     = "1 ano"
	localEstoquePadrao = "Estoque Principal"
	marcaApple         = "Apple"
	saudeBateriaPadrao = 100
)

var cem = decimal.NewFromInt(100)

// ItemLancamento is one draft row of a stock launch. In bulk mode Quantidade
// carries all remaining units of the purchase item; in unique mode each row
// is a single device and the operator fills the identity fields.
type ItemLancamento struct {
	CompraItemID uuid.UUID
	Marca        string
	Categoria    string
	Modelo       string
	Cor          string
	Quantidade   int
	TemImei      bool
	EhApple      bool

	NumeroSerie string
	Imei1       string
	Imei2       string

	SaudeBateria int
	Condicao     string
	Garantia     string
	LocalEstoque string

	PrecoCusto     decimal.Decimal
	CustoAdicional decimal.Decimal
	Markup         *decimal.Decimal
	PrecoVenda     *decimal.Decimal
	PrecoAtacado   *decimal.Decimal

	EstoqueMinimo *int
	CodigoBarras  string
}

// CustoBase is the markup base: unit cost plus additional unit cost.
func (i *ItemLancamento) CustoBase() decimal.Decimal {
	return i.PrecoCusto.Add(i.CustoAdicional)
}

// DefinirMarkup stores the markup and recomputes the sale price from the cost
// base. A non-positive base leaves the sale price untouched.
func (i *ItemLancamento) DefinirMarkup(m decimal.Decimal) {
	i.Markup = &m
	base := i.CustoBase()
	if base.IsPositive() {
		preco := base.Mul(decimal.NewFromInt(1).Add(m.Div(cem))).Round(2)
		i.PrecoVenda = &preco
	}
}

// DefinirPrecoVenda stores the sale price and recomputes the implied markup.
// When the base or the price is not positive the markup becomes undefined.
func (i *ItemLancamento) DefinirPrecoVenda(p decimal.Decimal) {
	i.PrecoVenda = &p
	base := i.CustoBase()
	if base.IsPositive() && p.IsPositive() {
		m := p.Div(base).Sub(decimal.NewFromInt(1)).Mul(cem).Round(2)
		i.Markup = &m
	} else {
		i.Markup = nil
	}
}

// ExpandirCompra turns a purchase order into launch draft rows, skipping
// whatever was already launched. The decision between bulk and unique mode is
// made at the ORDER level: only when every item has TemImei=false does the
// order expand one row per item; a single IMEI-tracked item switches the whole
// order to one-row-per-unit. Calling it again after a partial launch yields
// only the remainder; a fully launched order yields no rows.
func ExpandirCompra(compra *model.Compra, produtos []model.Produto) []ItemLancamento {
	lancadas := make(map[uuid.UUID]int, len(compra.Itens))
	for _, p := range produtos {
		if p.CompraItemID != nil {
			lancadas[*p.CompraItemID] += p.Estoque
		}
	}

	granel := true
	for _, item := range compra.Itens {
		if item.TemImei {
			granel = false
			break
		}
	}

	var linhas []ItemLancamento
	for _, item := range compra.Itens {
		restante := item.Quantidade - lancadas[item.ID]
		if restante <= 0 {
			continue
		}

		base := ItemLancamento{
			CompraItemID:   item.ID,
			Marca:          item.Marca,
			Categoria:      item.Categoria,
			Modelo:         item.Modelo,
			Cor:            item.Cor,
			TemImei:        item.TemImei,
			EhApple:        item.Marca == marcaApple,
			SaudeBateria:   saudeBateriaPadrao,
			Condicao:       condicaoPadrao,
			Garantia:       garantiaPadrao,
			LocalEstoque:   localEstoquePadrao,
			PrecoCusto:     item.CustoUnitario,
			CustoAdicional: item.CustoAdicionalUnitario,
		}
		if item.Condicao != nil && *item.Condicao != "" {
			base.Condicao = *item.Condicao
		}
		if item.Garantia != nil && *item.Garantia != "" {
			base.Garantia = *item.Garantia
		}
		if item.LocalEstoque != nil && *item.LocalEstoque != "" {
			base.LocalEstoque = *item.LocalEstoque
		}
		if item.CodigoBarras != nil {
			base.CodigoBarras = *item.CodigoBarras
		}
		// Apple units are exempt from minimum-stock tracking
		if item.EstoqueMinimo != nil && !base.EhApple {
			min := *item.EstoqueMinimo
			base.EstoqueMinimo = &min
		}

		if granel {
			linha := base
			linha.Quantidade = restante
			linhas = append(linhas, linha)
			continue
		}
		for n := 0; n < restante; n++ {
			linha := base
			linha.Quantidade = 1
			linhas = append(linhas, linha)
		}
	}
	return linhas
}

// ClampSaudeBateria limits battery health to 0-100, defaulting to 100.
func ClampSaudeBateria(v *int) int {
	if v == nil {
		return saudeBateriaPadrao
	}
	if *v < 0 {
		return 0
	}
	if *v > 100 {
		return 100
	}
	return *v
}

// CamposConflito marks which identity fields of a row collide.
type CamposConflito struct {
	NumeroSerie bool
	Imei1       bool
	Imei2       bool
}

func (c CamposConflito) Vazio() bool {
	return !c.NumeroSerie && !c.Imei1 && !c.Imei2
}

// ResultadoLote is the outcome of in-batch duplicate validation.
type ResultadoLote struct {
	OK        bool
	Conflitos map[int]CamposConflito
}

// ValidarLote detects duplicate identity values within one launch batch.
// Serial numbers live in their own namespace; IMEI1 and IMEI2 share a single
// combined namespace, so the same value in item A's imei1 and item B's imei2
// flags both. Blank values never conflict. The check is advisory — the insert
// transaction re-validates against the whole products table.
func ValidarLote(itens []ItemLancamento) ResultadoLote {
	seriais := make(map[string][]int)
	imeis := make(map[string][]int)

	for idx, item := range itens {
		if v := strings.TrimSpace(item.NumeroSerie); v != "" {
			seriais[v] = append(seriais[v], idx)
		}
		if v := strings.TrimSpace(item.Imei1); v != "" {
			imeis[v] = append(imeis[v], idx)
		}
		if v := strings.TrimSpace(item.Imei2); v != "" {
			imeis[v] = append(imeis[v], idx)
		}
	}

	conflitos := make(map[int]CamposConflito)
	marcar := func(idx int, campo string) {
		c := conflitos[idx]
		switch campo {
		case "numero_serie":
			c.NumeroSerie = true
		case "imei1":
			c.Imei1 = true
		case "imei2":
			c.Imei2 = true
		}
		conflitos[idx] = c
	}

	for valor, indices := range seriais {
		if len(indices) < 2 {
			continue
		}
		for _, idx := range indices {
			if strings.TrimSpace(itens[idx].NumeroSerie) == valor {
				marcar(idx, "numero_serie")
			}
		}
	}
	for valor, indices := range imeis {
		if len(indices) < 2 {
			continue
		}
		for _, idx := range indices {
			if strings.TrimSpace(itens[idx].Imei1) == valor {
				marcar(idx, "imei1")
			}
			if strings.TrimSpace(itens[idx].Imei2) == valor {
				marcar(idx, "imei2")
			}
		}
	}

	return ResultadoLote{OK: len(conflitos) == 0, Conflitos: conflitos}
}

// MapearDuplicadosServidor projects a DUPLICATE_ENTRIES payload back onto the
// submitted rows. Serial values match the serial field; any value listed under
// imei1 OR imei2 matches BOTH IMEI fields of a row, mirroring the combined
// namespace of ValidarLote.
func MapearDuplicadosServidor(itens []ItemLancamento, dup apierror.Duplicados) map[int]CamposConflito {
	seriais := make(map[string]bool, len(dup.NumeroSerie))
	for _, v := range dup.NumeroSerie {
		seriais[strings.TrimSpace(v)] = true
	}
	imeis := make(map[string]bool, len(dup.Imei1)+len(dup.Imei2))
	for _, v := range dup.Imei1 {
		imeis[strings.TrimSpace(v)] = true
	}
	for _, v := range dup.Imei2 {
		imeis[strings.TrimSpace(v)] = true
	}

	conflitos := make(map[int]CamposConflito)
	for idx, item := range itens {
		var c CamposConflito
		if v := strings.TrimSpace(item.NumeroSerie); v != "" && seriais[v] {
			c.NumeroSerie = true
		}
		if v := strings.TrimSpace(item.Imei1); v != "" && imeis[v] {
			c.Imei1 = true
		}
		if v := strings.TrimSpace(item.Imei2); v != "" && imeis[v] {
			c.Imei2 = true
		}
		if !c.Vazio() {
			conflitos[idx] = c
		}
	}
	return conflitos
}

// IndicesSemPreco returns the indices of rows whose sale price is missing or
// not positive. Any hit blocks the whole submission.
func IndicesSemPreco(itens []ItemLancamento) []int {
	var indices []int
	for idx, item := range itens {
		if item.PrecoVenda == nil || !item.PrecoVenda.IsPositive() {
			indices = append(indices, idx)
		}
	}
	return indices
}
