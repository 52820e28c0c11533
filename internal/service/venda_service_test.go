package service

import (
	"context"
	"testing"

	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoVendaService() (VendaService, CaixaService, *stubVendaRepo, *stubProdutoRepo) {
	caixaRepo := newStubCaixaRepo()
	vendaRepo := newStubVendaRepo()
	produtoRepo := newStubProdutoRepo()
	caixaSvc := NewCaixaService(caixaRepo, vendaRepo)
	vendaSvc := NewVendaService(vendaRepo, caixaSvc, produtoRepo, nil)
	return vendaSvc, caixaSvc, vendaRepo, produtoRepo
}

func produtoDeTeste(repo *stubProdutoRepo, estoque int, preco string) *model.Produto {
	p := &model.Produto{
		ID:      uuid.New(),
		Marca:   "JBL",
		Modelo:  "Go 3",
		Preco:   dec(preco),
		Estoque: estoque,
		Ativo:   true,
	}
	repo.produtos[p.ID] = p
	return p
}

func abrirSessao(t *testing.T, caixaSvc CaixaService, usuarioID uuid.UUID) string {
	t.Helper()
	resp, err := caixaSvc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{SaldoAbertura: dec("0")})
	require.NoError(t, err)
	return resp.ID
}

func TestRegistrarVendaFluxoCompleto(t *testing.T) {
	vendaSvc, caixaSvc, _, produtoRepo := novoVendaService()
	ctx := context.Background()
	vendedorID := uuid.New()
	sessaoID := abrirSessao(t, caixaSvc, vendedorID)
	produto := produtoDeTeste(produtoRepo, 5, "100")

	resp, err := vendaSvc.Registrar(ctx, vendedorID, dto.RegistrarVendaRequest{
		SessaoCaixaID: sessaoID,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: produto.ID.String(), Quantidade: 2, Desconto: dec("0")},
		},
		Pagamentos: []dto.PagamentoRequest{
			{Metodo: "Dinheiro", Valor: dec("250")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Finalizada", resp.Status)
	assert.True(t, resp.Total.Equal(dec("200")))
	assert.True(t, resp.Troco.Equal(dec("50")))
	assert.Equal(t, 1, resp.NumeroVenda)

	// Stock went down and the movement ledger recorded it
	assert.Equal(t, 3, produto.Estoque)
	require.Len(t, produtoRepo.movimentos, 1)
	mov := produtoRepo.movimentos[0]
	assert.Equal(t, "venda", mov.Tipo)
	assert.Equal(t, -2, mov.Quantidade)
	assert.Equal(t, 5, mov.EstoqueAnterior)
	assert.Equal(t, 3, mov.EstoqueNovo)
}

func TestRegistrarVendaDesconto(t *testing.T) {
	vendaSvc, caixaSvc, _, produtoRepo := novoVendaService()
	vendedorID := uuid.New()
	sessaoID := abrirSessao(t, caixaSvc, vendedorID)
	produto := produtoDeTeste(produtoRepo, 1, "100")

	resp, err := vendaSvc.Registrar(context.Background(), vendedorID, dto.RegistrarVendaRequest{
		SessaoCaixaID: sessaoID,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: produto.ID.String(), Quantidade: 1, Desconto: dec("15")},
		},
		Pagamentos: []dto.PagamentoRequest{{Metodo: "pix", Valor: dec("85")}},
	})

	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("85")))
	assert.True(t, resp.Desconto.Equal(dec("15")))
	assert.True(t, resp.Troco.Equal(dec("0")))
}

func TestRegistrarVendaEstoqueInsuficiente(t *testing.T) {
	vendaSvc, caixaSvc, _, produtoRepo := novoVendaService()
	vendedorID := uuid.New()
	sessaoID := abrirSessao(t, caixaSvc, vendedorID)
	produto := produtoDeTeste(produtoRepo, 1, "100")

	_, err := vendaSvc.Registrar(context.Background(), vendedorID, dto.RegistrarVendaRequest{
		SessaoCaixaID: sessaoID,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: produto.ID.String(), Quantidade: 3, Desconto: dec("0")},
		},
		Pagamentos: []dto.PagamentoRequest{{Metodo: "dinheiro", Valor: dec("300")}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "estoque insuficiente")
	assert.Equal(t, 1, produto.Estoque)
}

func TestRegistrarVendaProdutoInativo(t *testing.T) {
	vendaSvc, caixaSvc, _, produtoRepo := novoVendaService()
	vendedorID := uuid.New()
	sessaoID := abrirSessao(t, caixaSvc, vendedorID)
	produto := produtoDeTeste(produtoRepo, 5, "100")
	produto.Ativo = false

	_, err := vendaSvc.Registrar(context.Background(), vendedorID, dto.RegistrarVendaRequest{
		SessaoCaixaID: sessaoID,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: produto.ID.String(), Quantidade: 1, Desconto: dec("0")},
		},
		Pagamentos: []dto.PagamentoRequest{{Metodo: "dinheiro", Valor: dec("100")}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "inativo")
}

func TestRegistrarVendaPagamentoInsuficiente(t *testing.T) {
	vendaSvc, caixaSvc, _, produtoRepo := novoVendaService()
	vendedorID := uuid.New()
	sessaoID := abrirSessao(t, caixaSvc, vendedorID)
	produto := produtoDeTeste(produtoRepo, 5, "100")

	_, err := vendaSvc.Registrar(context.Background(), vendedorID, dto.RegistrarVendaRequest{
		SessaoCaixaID: sessaoID,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: produto.ID.String(), Quantidade: 2, Desconto: dec("0")},
		},
		Pagamentos: []dto.PagamentoRequest{{Metodo: "dinheiro", Valor: dec("150")}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insuficiente")
	assert.Equal(t, 5, produto.Estoque)
}

func TestRegistrarVendaSessaoFechada(t *testing.T) {
	vendaSvc, caixaSvc, _, produtoRepo := novoVendaService()
	ctx := context.Background()
	vendedorID := uuid.New()
	sessaoID := abrirSessao(t, caixaSvc, vendedorID)
	produto := produtoDeTeste(produtoRepo, 5, "100")

	_, err := caixaSvc.Fechar(ctx, uuid.MustParse(sessaoID))
	require.NoError(t, err)

	_, err = vendaSvc.Registrar(ctx, vendedorID, dto.RegistrarVendaRequest{
		SessaoCaixaID: sessaoID,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: produto.ID.String(), Quantidade: 1, Desconto: dec("0")},
		},
		Pagamentos: []dto.PagamentoRequest{{Metodo: "dinheiro", Valor: dec("100")}},
	})

	require.Error(t, err)
}

func TestCancelarVendaRestauraEstoque(t *testing.T) {
	vendaSvc, caixaSvc, vendaRepo, produtoRepo := novoVendaService()
	ctx := context.Background()
	vendedorID := uuid.New()
	sessaoID := abrirSessao(t, caixaSvc, vendedorID)
	produto := produtoDeTeste(produtoRepo, 5, "100")

	resp, err := vendaSvc.Registrar(ctx, vendedorID, dto.RegistrarVendaRequest{
		SessaoCaixaID: sessaoID,
		Itens: []dto.ItemVendaRequest{
			{ProdutoID: produto.ID.String(), Quantidade: 2, Desconto: dec("0")},
		},
		Pagamentos: []dto.PagamentoRequest{{Metodo: "dinheiro", Valor: dec("200")}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, produto.Estoque)

	vendaID := uuid.MustParse(resp.ID)
	err = vendaSvc.Cancelar(ctx, vendaID, "cliente desistiu")
	require.NoError(t, err)

	// Stock back, row kept, reason recorded
	assert.Equal(t, 5, produto.Estoque)
	venda, err := vendaRepo.FindByID(ctx, vendaID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelada", venda.Status)
	require.NotNil(t, venda.MotivoCancelamento)
	assert.Equal(t, "cliente desistiu", *venda.MotivoCancelamento)

	// The reversal shows up in the stock ledger
	require.Len(t, produtoRepo.movimentos, 2)
	assert.Equal(t, "estorno_cancelamento", produtoRepo.movimentos[1].Tipo)
	assert.Equal(t, 2, produtoRepo.movimentos[1].Quantidade)

	// Cancelling twice is rejected and must not restore stock again
	err = vendaSvc.Cancelar(ctx, vendaID, "de novo")
	require.Error(t, err)
	assert.Equal(t, 5, produto.Estoque)
}
