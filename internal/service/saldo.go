package service

// saldo.go — pure cash-session balance calculator.
// Every figure shown for a session (open or closed) is recomputed from the
// session's own sales and movements; no stored partial total is consulted.

import (
	"strings"

	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/shopspring/decimal"
)

const metodoDinheiro = "dinheiro"

// TotalMetodo is one aggregated payment method line. Metodo keeps the first
// spelling encountered in the session; aggregation merged case-insensitively.
type TotalMetodo struct {
	Metodo string
	Valor  decimal.Decimal
}

// SaldoSessao is the full reconciliation picture of one session.
type SaldoSessao struct {
	QuantidadeVendas   int
	ValorTransacionado decimal.Decimal
	VendasDinheiro     decimal.Decimal
	Suprimentos        decimal.Decimal
	Sangrias           decimal.Decimal
	DinheiroEmCaixa    decimal.Decimal
	TotaisPorMetodo    []TotalMetodo
}

func normalizarMetodo(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}

// CalcularSaldoSessao recomputes every session figure from scratch.
// Cancelled sales are excluded from all totals. Cash in register is
// saldo de abertura + vendas em dinheiro + suprimentos − sangrias.
func CalcularSaldoSessao(sessao *model.SessaoCaixa, vendas []model.Venda) SaldoSessao {
	saldo := SaldoSessao{
		ValorTransacionado: decimal.Zero,
		VendasDinheiro:     decimal.Zero,
		Suprimentos:        decimal.Zero,
		Sangrias:           decimal.Zero,
	}

	totais := make(map[string]decimal.Decimal)
	nomes := make(map[string]string)
	ordem := make([]string, 0, 4)

	for _, v := range vendas {
		if v.Status == "Cancelada" {
			continue
		}
		saldo.QuantidadeVendas++
		saldo.ValorTransacionado = saldo.ValorTransacionado.Add(v.Total)

		for _, p := range v.Pagamentos {
			chave := normalizarMetodo(p.Metodo)
			if chave == "" {
				continue
			}
			if _, visto := totais[chave]; !visto {
				nomes[chave] = strings.TrimSpace(p.Metodo)
				ordem = append(ordem, chave)
			}
			totais[chave] = totais[chave].Add(p.Valor)
		}
	}

	if dinheiro, ok := totais[metodoDinheiro]; ok {
		saldo.VendasDinheiro = dinheiro
	}

	for _, m := range sessao.Movimentos {
		switch m.Tipo {
		case "suprimento":
			saldo.Suprimentos = saldo.Suprimentos.Add(m.Valor)
		case "sangria":
			saldo.Sangrias = saldo.Sangrias.Add(m.Valor)
		}
	}

	saldo.DinheiroEmCaixa = sessao.SaldoAbertura.
		Add(saldo.VendasDinheiro).
		Add(saldo.Suprimentos).
		Sub(saldo.Sangrias)

	// Dinheiro first, then encounter order.
	if _, temDinheiro := totais[metodoDinheiro]; temDinheiro {
		saldo.TotaisPorMetodo = append(saldo.TotaisPorMetodo, TotalMetodo{
			Metodo: nomes[metodoDinheiro],
			Valor:  totais[metodoDinheiro],
		})
	}
	for _, chave := range ordem {
		if chave == metodoDinheiro {
			continue
		}
		saldo.TotaisPorMetodo = append(saldo.TotaisPorMetodo, TotalMetodo{
			Metodo: nomes[chave],
			Valor:  totais[chave],
		})
	}

	return saldo
}
