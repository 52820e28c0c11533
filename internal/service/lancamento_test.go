package service

import (
	"testing"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func compraDeTeste(itens ...model.CompraItem) *model.Compra {
	c := &model.Compra{ID: uuid.New(), NumeroCompra: 1}
	for i := range itens {
		if itens[i].ID == uuid.Nil {
			itens[i].ID = uuid.New()
		}
		itens[i].CompraID = c.ID
	}
	c.Itens = itens
	return c
}

// ── ExpandirCompra ────────────────────────────────────────────────────────────

func TestExpandirCompraModoGranel(t *testing.T) {
	compra := compraDeTeste(
		model.CompraItem{Marca: "JBL", Categoria: "Acessórios", Modelo: "Go 3", Quantidade: 10, CustoUnitario: dec("120")},
		model.CompraItem{Marca: "Baseus", Categoria: "Acessórios", Modelo: "Cabo USB-C", Quantidade: 50, CustoUnitario: dec("15")},
	)

	linhas := ExpandirCompra(compra, nil)

	require.Len(t, linhas, 2)
	assert.Equal(t, 10, linhas[0].Quantidade)
	assert.Equal(t, 50, linhas[1].Quantidade)
	assert.False(t, linhas[0].TemImei)
}

func TestExpandirCompraModoUnicoPorPedido(t *testing.T) {
	// One IMEI-tracked item switches the WHOLE order to one-row-per-unit,
	// including the accessory line.
	compra := compraDeTeste(
		model.CompraItem{Marca: "Apple", Categoria: "Smartphones", Modelo: "iPhone 15", Quantidade: 3, TemImei: true, CustoUnitario: dec("3500")},
		model.CompraItem{Marca: "JBL", Categoria: "Acessórios", Modelo: "Go 3", Quantidade: 2, CustoUnitario: dec("120")},
	)

	linhas := ExpandirCompra(compra, nil)

	require.Len(t, linhas, 5)
	for _, l := range linhas {
		assert.Equal(t, 1, l.Quantidade)
	}
}

func TestExpandirCompraDescontaJaLancados(t *testing.T) {
	item := model.CompraItem{ID: uuid.New(), Marca: "Apple", Categoria: "Smartphones", Modelo: "iPhone 15", Quantidade: 3, TemImei: true}
	compra := compraDeTeste(item)
	itemID := compra.Itens[0].ID

	produtos := []model.Produto{
		{CompraItemID: &itemID, Estoque: 1},
		{CompraItemID: &itemID, Estoque: 1},
	}

	linhas := ExpandirCompra(compra, produtos)
	require.Len(t, linhas, 1)

	// Fully launched: expansion yields nothing — the operation is idempotent
	produtos = append(produtos, model.Produto{CompraItemID: &itemID, Estoque: 1})
	assert.Empty(t, ExpandirCompra(compra, produtos))
}

func TestExpandirCompraDefaults(t *testing.T) {
	compra := compraDeTeste(
		model.CompraItem{Marca: "Xiaomi", Categoria: "Smartphones", Modelo: "Redmi 13", Quantidade: 1, EstoqueMinimo: intPtr(2)},
		model.CompraItem{Marca: "Samsung", Categoria: "Smartphones", Modelo: "A55", Quantidade: 1, Condicao: strPtr("Seminovo"), Garantia: strPtr("90 dias"), LocalEstoque: strPtr("Vitrine")},
	)

	linhas := ExpandirCompra(compra, nil)
	require.Len(t, linhas, 2)

	assert.Equal(t, "Novo", linhas[0].Condicao)
	assert.Equal(t, "1 ano", linhas[0].Garantia)
	assert.Equal(t, "Estoque Principal", linhas[0].LocalEstoque)
	assert.Equal(t, 100, linhas[0].SaudeBateria)
	require.NotNil(t, linhas[0].EstoqueMinimo)
	assert.Equal(t, 2, *linhas[0].EstoqueMinimo)

	assert.Equal(t, "Seminovo", linhas[1].Condicao)
	assert.Equal(t, "90 dias", linhas[1].Garantia)
	assert.Equal(t, "Vitrine", linhas[1].LocalEstoque)
}

func TestExpandirCompraAppleSemEstoqueMinimo(t *testing.T) {
	compra := compraDeTeste(
		model.CompraItem{Marca: "Apple", Categoria: "Smartphones", Modelo: "iPhone 15", Quantidade: 1, EstoqueMinimo: intPtr(3)},
	)

	linhas := ExpandirCompra(compra, nil)
	require.Len(t, linhas, 1)
	assert.True(t, linhas[0].EhApple)
	assert.Nil(t, linhas[0].EstoqueMinimo)
}

// ── Markup / sale price reconciliation ────────────────────────────────────────

func TestDefinirMarkupCalculaPrecoVenda(t *testing.T) {
	item := ItemLancamento{PrecoCusto: dec("100"), CustoAdicional: dec("20")}

	item.DefinirMarkup(dec("30"))

	require.NotNil(t, item.PrecoVenda)
	// (100+20) * 1.30
	assert.True(t, item.PrecoVenda.Equal(dec("156")))
}

func TestDefinirPrecoVendaCalculaMarkup(t *testing.T) {
	item := ItemLancamento{PrecoCusto: dec("100")}

	item.DefinirPrecoVenda(dec("150"))

	require.NotNil(t, item.Markup)
	assert.True(t, item.Markup.Equal(dec("50")))
}

func TestMarkupIdaEVolta(t *testing.T) {
	item := ItemLancamento{PrecoCusto: dec("79.90"), CustoAdicional: dec("5.10")}

	item.DefinirMarkup(dec("37.5"))
	require.NotNil(t, item.PrecoVenda)

	item.DefinirPrecoVenda(*item.PrecoVenda)
	require.NotNil(t, item.Markup)
	// Rounding to 2 decimals keeps the round trip within one cent of markup
	diff := item.Markup.Sub(dec("37.5")).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.01")), "markup drift: %s", diff)
}

func TestDefinirPrecoVendaSemBaseAnulaMarkup(t *testing.T) {
	item := ItemLancamento{PrecoCusto: dec("0")}
	item.DefinirPrecoVenda(dec("99"))
	assert.Nil(t, item.Markup)

	item2 := ItemLancamento{PrecoCusto: dec("100")}
	item2.DefinirPrecoVenda(dec("0"))
	assert.Nil(t, item2.Markup)
}

func TestDefinirMarkupSemBaseNaoDefinePreco(t *testing.T) {
	item := ItemLancamento{}
	item.DefinirMarkup(dec("30"))
	assert.Nil(t, item.PrecoVenda)
}

// ── ValidarLote ───────────────────────────────────────────────────────────────

func TestValidarLoteSerieDuplicada(t *testing.T) {
	itens := []ItemLancamento{
		{NumeroSerie: "ABC"},
		{NumeroSerie: "ABC"},
		{NumeroSerie: "XYZ"},
	}

	res := ValidarLote(itens)

	assert.False(t, res.OK)
	require.Len(t, res.Conflitos, 2)
	assert.True(t, res.Conflitos[0].NumeroSerie)
	assert.True(t, res.Conflitos[1].NumeroSerie)
	_, ok := res.Conflitos[2]
	assert.False(t, ok)
}

func TestValidarLoteImeiNamespaceCombinado(t *testing.T) {
	// The same value in A's imei1 and B's imei2 collides: one namespace.
	itens := []ItemLancamento{
		{Imei1: "350000000000001"},
		{Imei2: "350000000000001"},
	}

	res := ValidarLote(itens)

	assert.False(t, res.OK)
	assert.True(t, res.Conflitos[0].Imei1)
	assert.False(t, res.Conflitos[0].Imei2)
	assert.True(t, res.Conflitos[1].Imei2)
	assert.False(t, res.Conflitos[1].Imei1)
}

func TestValidarLoteIgnoraVazios(t *testing.T) {
	itens := []ItemLancamento{
		{NumeroSerie: "", Imei1: " "},
		{NumeroSerie: "", Imei1: ""},
	}

	res := ValidarLote(itens)
	assert.True(t, res.OK)
}

// ── MapearDuplicadosServidor ──────────────────────────────────────────────────

func TestMapearDuplicadosServidor(t *testing.T) {
	itens := []ItemLancamento{
		{NumeroSerie: "SN1", Imei1: "111"},
		{Imei1: "999"},
		{Imei2: "999"},
	}
	dup := apierror.Duplicados{
		NumeroSerie: []string{"SN1"},
		Imei1:       []string{"999"},
	}

	conflitos := MapearDuplicadosServidor(itens, dup)

	require.Len(t, conflitos, 3)
	assert.True(t, conflitos[0].NumeroSerie)
	assert.False(t, conflitos[0].Imei1)
	// "999" flags whichever IMEI field holds it, on both rows
	assert.True(t, conflitos[1].Imei1)
	assert.True(t, conflitos[2].Imei2)
}

// ── Misc helpers ──────────────────────────────────────────────────────────────

func TestClampSaudeBateria(t *testing.T) {
	assert.Equal(t, 100, ClampSaudeBateria(nil))
	assert.Equal(t, 0, ClampSaudeBateria(intPtr(-5)))
	assert.Equal(t, 100, ClampSaudeBateria(intPtr(150)))
	assert.Equal(t, 87, ClampSaudeBateria(intPtr(87)))
}

func TestIndicesSemPreco(t *testing.T) {
	preco := dec("10")
	zero := dec("0")
	itens := []ItemLancamento{
		{PrecoVenda: &preco},
		{PrecoVenda: nil},
		{PrecoVenda: &zero},
	}

	assert.Equal(t, []int{1, 2}, IndicesSemPreco(itens))
}
