package service

import (
	"testing"

	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func vendaComPagamentos(total decimal.Decimal, pagamentos ...model.VendaPagamento) model.Venda {
	return model.Venda{
		ID:         uuid.New(),
		Status:     "Finalizada",
		Total:      total,
		Pagamentos: pagamentos,
	}
}

func TestCalcularSaldoSessaoFormulaDinheiro(t *testing.T) {
	sessao := &model.SessaoCaixa{
		SaldoAbertura: dec("100"),
		Movimentos: []model.MovimentoCaixa{
			{Tipo: "suprimento", Valor: dec("50")},
			{Tipo: "sangria", Valor: dec("20")},
		},
	}
	vendas := []model.Venda{
		vendaComPagamentos(dec("150"), model.VendaPagamento{Metodo: "Dinheiro", Valor: dec("150")}),
	}

	saldo := CalcularSaldoSessao(sessao, vendas)

	assert.Equal(t, 1, saldo.QuantidadeVendas)
	assert.True(t, saldo.VendasDinheiro.Equal(dec("150")))
	assert.True(t, saldo.Suprimentos.Equal(dec("50")))
	assert.True(t, saldo.Sangrias.Equal(dec("20")))
	// 100 + 150 + 50 - 20
	assert.True(t, saldo.DinheiroEmCaixa.Equal(dec("280")))
}

func TestCalcularSaldoSessaoExcluiCanceladas(t *testing.T) {
	sessao := &model.SessaoCaixa{SaldoAbertura: dec("0")}

	cancelada := vendaComPagamentos(dec("999"), model.VendaPagamento{Metodo: "dinheiro", Valor: dec("999")})
	cancelada.Status = "Cancelada"

	vendas := []model.Venda{
		cancelada,
		vendaComPagamentos(dec("80"), model.VendaPagamento{Metodo: "dinheiro", Valor: dec("80")}),
	}

	saldo := CalcularSaldoSessao(sessao, vendas)

	assert.Equal(t, 1, saldo.QuantidadeVendas)
	assert.True(t, saldo.ValorTransacionado.Equal(dec("80")))
	assert.True(t, saldo.DinheiroEmCaixa.Equal(dec("80")))
}

func TestCalcularSaldoSessaoMesclaMetodosCaseInsensitive(t *testing.T) {
	sessao := &model.SessaoCaixa{SaldoAbertura: dec("0")}
	vendas := []model.Venda{
		vendaComPagamentos(dec("100"), model.VendaPagamento{Metodo: "Pix", Valor: dec("100")}),
		vendaComPagamentos(dec("60"), model.VendaPagamento{Metodo: " pix ", Valor: dec("60")}),
		vendaComPagamentos(dec("40"), model.VendaPagamento{Metodo: "DINHEIRO", Valor: dec("40")}),
	}

	saldo := CalcularSaldoSessao(sessao, vendas)

	require.Len(t, saldo.TotaisPorMetodo, 2)
	// dinheiro is pinned first even though Pix came first
	assert.Equal(t, "DINHEIRO", saldo.TotaisPorMetodo[0].Metodo)
	assert.True(t, saldo.TotaisPorMetodo[0].Valor.Equal(dec("40")))
	// Pix keeps the first spelling seen and sums both legs
	assert.Equal(t, "Pix", saldo.TotaisPorMetodo[1].Metodo)
	assert.True(t, saldo.TotaisPorMetodo[1].Valor.Equal(dec("160")))
}

func TestCalcularSaldoSessaoSemVendas(t *testing.T) {
	sessao := &model.SessaoCaixa{SaldoAbertura: dec("25.50")}

	saldo := CalcularSaldoSessao(sessao, nil)

	assert.Equal(t, 0, saldo.QuantidadeVendas)
	assert.Empty(t, saldo.TotaisPorMetodo)
	assert.True(t, saldo.DinheiroEmCaixa.Equal(dec("25.50")))
}

func TestCalcularSaldoSessaoPagamentoMisto(t *testing.T) {
	sessao := &model.SessaoCaixa{SaldoAbertura: dec("0")}
	vendas := []model.Venda{
		vendaComPagamentos(dec("300"),
			model.VendaPagamento{Metodo: "dinheiro", Valor: dec("100")},
			model.VendaPagamento{Metodo: "Cartão 3x", Valor: dec("200")},
		),
	}

	saldo := CalcularSaldoSessao(sessao, vendas)

	assert.True(t, saldo.ValorTransacionado.Equal(dec("300")))
	// Only the cash leg feeds the register figure
	assert.True(t, saldo.VendasDinheiro.Equal(dec("100")))
	assert.True(t, saldo.DinheiroEmCaixa.Equal(dec("100")))
}
