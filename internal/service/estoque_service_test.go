package service

import (
	"context"
	"testing"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func novoEstoqueService() (EstoqueService, *stubCompraRepo, *stubProdutoRepo) {
	compraRepo := newStubCompraRepo()
	produtoRepo := newStubProdutoRepo()
	return NewEstoqueService(compraRepo, produtoRepo), compraRepo, produtoRepo
}

// criarCompraIphones registers an order with 2 iPhones (IMEI-tracked) and
// returns the order id plus the id of its single item.
func criarCompraIphones(t *testing.T, svc EstoqueService) (uuid.UUID, string) {
	t.Helper()
	resp, err := svc.CriarCompra(context.Background(), "gerente", dto.CriarCompraRequest{
		FornecedorNome: "Distribuidora XYZ",
		Itens: []dto.CriarCompraItemRequest{
			{Marca: "Apple", Categoria: "Smartphones", Modelo: "iPhone 15", Quantidade: 2, TemImei: true, CustoUnitario: dec("3500")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Itens, 1)
	return uuid.MustParse(resp.ID), resp.Itens[0].ID
}

func TestCriarCompraAtribuiNumeroEItens(t *testing.T) {
	svc, _, _ := novoEstoqueService()

	resp, err := svc.CriarCompra(context.Background(), "gerente", dto.CriarCompraRequest{
		FornecedorNome: "Fornecedor A",
		Itens: []dto.CriarCompraItemRequest{
			{Marca: "JBL", Categoria: "Acessórios", Modelo: "Go 3", Quantidade: 10, CustoUnitario: dec("120")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.NumeroCompra)
	assert.Equal(t, "gerente", resp.CriadoPor)
	require.Len(t, resp.Itens, 1)
	assert.NotEmpty(t, resp.Itens[0].ID)
	assert.Equal(t, 0, resp.Itens[0].QuantidadeLancada)

	segunda, err := svc.CriarCompra(context.Background(), "gerente", dto.CriarCompraRequest{
		Itens: []dto.CriarCompraItemRequest{
			{Marca: "Baseus", Categoria: "Acessórios", Modelo: "Cabo USB-C", Quantidade: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, segunda.NumeroCompra)
}

func TestLancarCompraItemDeOutraCompraAborta(t *testing.T) {
	svc, _, produtoRepo := novoEstoqueService()
	compraID, _ := criarCompraIphones(t, svc)

	_, err := svc.LancarCompra(context.Background(), compraID, "gerente", dto.LancarCompraRequest{
		Itens: []dto.LancarItemRequest{
			{CompraItemID: uuid.NewString(), Quantidade: 1, PrecoVenda: decPtr("4500")},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "não pertence à compra")
	assert.Empty(t, produtoRepo.produtos)
}

func TestLancarCompraQuantidadeExcedeComprada(t *testing.T) {
	svc, _, produtoRepo := novoEstoqueService()
	compraID, itemID := criarCompraIphones(t, svc)

	// One unit already launched against this item
	iid := uuid.MustParse(itemID)
	cid := compraID
	lancado := &model.Produto{
		ID: uuid.New(), Marca: "Apple", Modelo: "iPhone 15",
		Estoque: 1, CompraID: &cid, CompraItemID: &iid, Ativo: true,
	}
	produtoRepo.produtos[lancado.ID] = lancado

	_, err := svc.LancarCompra(context.Background(), compraID, "gerente", dto.LancarCompraRequest{
		Itens: []dto.LancarItemRequest{
			{CompraItemID: itemID, Quantidade: 1, Imei1: "350000000000001", PrecoVenda: decPtr("4500")},
			{CompraItemID: itemID, Quantidade: 1, Imei1: "350000000000002", PrecoVenda: decPtr("4500")},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "excede a quantidade comprada")
}

func TestLancarCompraSemPrecoVenda(t *testing.T) {
	svc, _, _ := novoEstoqueService()
	compraID, itemID := criarCompraIphones(t, svc)

	_, err := svc.LancarCompra(context.Background(), compraID, "gerente", dto.LancarCompraRequest{
		Itens: []dto.LancarItemRequest{
			{CompraItemID: itemID, Quantidade: 1, Imei1: "350000000000001", PrecoVenda: decPtr("4500")},
			{CompraItemID: itemID, Quantidade: 1, Imei1: "350000000000002", PrecoVenda: decPtr("0")},
		},
	})

	var semPreco *ErroPrecoVenda
	require.ErrorAs(t, err, &semPreco)
	assert.Equal(t, []int{1}, semPreco.Indices)
}

func TestLancarCompraDuplicadoNoLote(t *testing.T) {
	svc, _, produtoRepo := novoEstoqueService()
	compraID, itemID := criarCompraIphones(t, svc)

	// Same value in row 0's imei1 and row 1's imei2: one namespace
	_, err := svc.LancarCompra(context.Background(), compraID, "gerente", dto.LancarCompraRequest{
		Itens: []dto.LancarItemRequest{
			{CompraItemID: itemID, Quantidade: 1, Imei1: "350000000000009", PrecoVenda: decPtr("4500")},
			{CompraItemID: itemID, Quantidade: 1, Imei2: "350000000000009", PrecoVenda: decPtr("4500")},
		},
	})

	var dup *apierror.ErroDuplicados
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, apierror.CodigoDuplicados, dup.Code)
	assert.Contains(t, dup.Duplicates.Imei1, "350000000000009")
	assert.Contains(t, dup.Duplicates.Imei2, "350000000000009")
	assert.Empty(t, produtoRepo.produtos)
}

func TestLancarCompraDuplicadoNoSistema(t *testing.T) {
	svc, _, produtoRepo := novoEstoqueService()
	compraID, itemID := criarCompraIphones(t, svc)

	// A device with this IMEI already lives in stock, from another order
	existente := &model.Produto{ID: uuid.New(), Marca: "Apple", Modelo: "iPhone 14", Imei2: "350000000000777", Estoque: 1, Ativo: true}
	produtoRepo.produtos[existente.ID] = existente

	_, err := svc.LancarCompra(context.Background(), compraID, "gerente", dto.LancarCompraRequest{
		Itens: []dto.LancarItemRequest{
			{CompraItemID: itemID, Quantidade: 1, Imei1: "350000000000777", PrecoVenda: decPtr("4500")},
		},
	})

	var dup *apierror.ErroDuplicados
	require.ErrorAs(t, err, &dup)
	assert.False(t, dup.Duplicates.Vazio())
	// Only the pre-existing device remains
	assert.Len(t, produtoRepo.produtos, 1)
}

func TestLancarCompraSucesso(t *testing.T) {
	svc, _, produtoRepo := novoEstoqueService()
	ctx := context.Background()

	resp, err := svc.CriarCompra(ctx, "gerente", dto.CriarCompraRequest{
		FornecedorNome:  "Cliente João",
		CompraDeCliente: true,
		Itens: []dto.CriarCompraItemRequest{
			{Marca: "Apple", Categoria: "Smartphones", Modelo: "iPhone 15", Quantidade: 2, TemImei: true, CustoUnitario: dec("3500")},
		},
	})
	require.NoError(t, err)
	compraID := uuid.MustParse(resp.ID)
	itemID := resp.Itens[0].ID

	lanc, err := svc.LancarCompra(ctx, compraID, "gerente", dto.LancarCompraRequest{
		Itens: []dto.LancarItemRequest{
			{CompraItemID: itemID, Quantidade: 1, Imei1: " 350000000000001 ", SaudeBateria: intPtr(92), PrecoVenda: decPtr("4500"), PrecoCusto: dec("3500")},
			{CompraItemID: itemID, Quantidade: 1, Imei1: "350000000000002", Condicao: "Seminovo", PrecoVenda: decPtr("4300"), PrecoCusto: dec("3500")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, lanc.ProdutosCriados)

	require.Len(t, produtoRepo.produtos, 2)
	for _, p := range produtoRepo.produtos {
		assert.Equal(t, 1, p.Estoque)
		assert.True(t, p.Ativo)
		assert.Equal(t, "Comprado de Cliente", p.Origem)
		require.NotNil(t, p.CompraID)
		assert.Equal(t, compraID, *p.CompraID)
		require.NotNil(t, p.CompraItemID)
		assert.Nil(t, p.EstoqueMinimo)
		assert.NotEqual(t, " 350000000000001 ", p.Imei1)
		switch p.Imei1 {
		case "350000000000001":
			assert.Equal(t, 92, p.SaudeBateria)
			assert.Equal(t, "Novo", p.Condicao)
			assert.True(t, p.Preco.Equal(dec("4500")))
		case "350000000000002":
			assert.Equal(t, "Seminovo", p.Condicao)
			assert.Equal(t, "1 ano", p.Garantia)
		default:
			t.Fatalf("imei1 inesperado: %q", p.Imei1)
		}
	}

	require.Len(t, produtoRepo.movimentos, 2)
	for _, mov := range produtoRepo.movimentos {
		assert.Equal(t, "entrada_compra", mov.Tipo)
		assert.Equal(t, 1, mov.Quantidade)
		assert.Equal(t, 0, mov.EstoqueAnterior)
		assert.Equal(t, 1, mov.EstoqueNovo)
		require.NotNil(t, mov.ReferenciaID)
		assert.Equal(t, compraID, *mov.ReferenciaID)
	}

	// The order now reports both units launched and nothing left to expand
	obtida, err := svc.ObterCompra(ctx, compraID)
	require.NoError(t, err)
	assert.Equal(t, 2, obtida.Itens[0].QuantidadeLancada)

	restantes, err := svc.PrepararLancamento(ctx, compraID)
	require.NoError(t, err)
	assert.Empty(t, restantes)
}

func TestLancarCompraGranel(t *testing.T) {
	svc, _, produtoRepo := novoEstoqueService()
	ctx := context.Background()

	resp, err := svc.CriarCompra(ctx, "gerente", dto.CriarCompraRequest{
		FornecedorNome: "Distribuidora XYZ",
		Itens: []dto.CriarCompraItemRequest{
			{Marca: "JBL", Categoria: "Acessórios", Modelo: "Go 3", Quantidade: 10, CustoUnitario: dec("120"), EstoqueMinimo: intPtr(3)},
		},
	})
	require.NoError(t, err)
	compraID := uuid.MustParse(resp.ID)

	lanc, err := svc.LancarCompra(ctx, compraID, "gerente", dto.LancarCompraRequest{
		Itens: []dto.LancarItemRequest{
			{CompraItemID: resp.Itens[0].ID, Quantidade: 10, PrecoVenda: decPtr("199.90"), PrecoCusto: dec("120"), EstoqueMinimo: intPtr(3)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, lanc.ProdutosCriados)

	require.Len(t, produtoRepo.produtos, 1)
	for _, p := range produtoRepo.produtos {
		assert.Equal(t, 10, p.Estoque)
		assert.Equal(t, "Compra", p.Origem)
		require.NotNil(t, p.EstoqueMinimo)
		assert.Equal(t, 3, *p.EstoqueMinimo)
	}
}

func TestObterCompraInexistente(t *testing.T) {
	svc, _, _ := novoEstoqueService()

	_, err := svc.ObterCompra(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "compra não encontrada", err.Error())
}
