package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"
	"github.com/tiagok38-hash/iStorePro/internal/repository"
	"github.com/tiagok38-hash/iStorePro/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VendaService interface {
	Registrar(ctx context.Context, vendedorID uuid.UUID, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID, motivo string) error
	Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
	PorSessao(ctx context.Context, sessaoID uuid.UUID) ([]dto.VendaResponse, error)
}

type vendaService struct {
	repo        repository.VendaRepository
	caixa       CaixaService
	produtoRepo repository.ProdutoRepository
	dispatcher  *worker.Dispatcher
}

func NewVendaService(
	repo repository.VendaRepository,
	caixa CaixaService,
	produtoRepo repository.ProdutoRepository,
	dispatcher *worker.Dispatcher,
) VendaService {
	return &vendaService{
		repo:        repo,
		caixa:       caixa,
		produtoRepo: produtoRepo,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Full ACID flow:
//  1. Validate the cash session is open
//  2. For each item: fetch product, check stock, calc line subtotal
//  3. Validate total payments >= sale total
//  4. BEGIN TX: nextval numero, create venda+itens+pagamentos, decrement stock
//  5. COMMIT
//  6. (async) low-stock alert check per product sold

func (s *vendaService) Registrar(ctx context.Context, vendedorID uuid.UUID, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	sessaoID, err := uuid.Parse(req.SessaoCaixaID)
	if err != nil {
		return nil, fmt.Errorf("sessao_caixa_id inválido: %w", err)
	}
	if err := s.caixa.ValidarSessaoAberta(ctx, sessaoID); err != nil {
		return nil, err
	}

	type resolvedItem struct {
		produtoID uuid.UUID
		descricao string
		preco     decimal.Decimal
		qtd       int
		desconto  decimal.Decimal
		subtotal  decimal.Decimal
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero
	descontoTotal := decimal.Zero

	for _, item := range req.Itens {
		pid, err := uuid.Parse(item.ProdutoID)
		if err != nil {
			return nil, fmt.Errorf("produto_id inválido: %w", err)
		}
		p, err := s.produtoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("produto %s não encontrado", item.ProdutoID)
		}
		if !p.Ativo {
			return nil, fmt.Errorf("produto %s está inativo e não pode ser vendido", p.Descricao())
		}
		if p.Estoque < item.Quantidade {
			return nil, fmt.Errorf("estoque insuficiente para %s", p.Descricao())
		}
		lineSubtotal := p.Preco.Mul(decimal.NewFromInt(int64(item.Quantidade))).Sub(item.Desconto)
		subtotal = subtotal.Add(lineSubtotal)
		descontoTotal = descontoTotal.Add(item.Desconto)
		resolved = append(resolved, resolvedItem{
			produtoID: pid,
			descricao: p.Descricao(),
			preco:     p.Preco,
			qtd:       item.Quantidade,
			desconto:  item.Desconto,
			subtotal:  lineSubtotal,
		})
	}

	total := subtotal

	totalPagamentos := decimal.Zero
	for _, pg := range req.Pagamentos {
		totalPagamentos = totalPagamentos.Add(pg.Valor)
	}
	if totalPagamentos.LessThan(total) {
		return nil, errors.New("o valor total dos pagamentos é insuficiente")
	}
	troco := totalPagamentos.Sub(total)

	origem := req.Origem
	if origem == "" {
		origem = "PDV"
	}

	var venda model.Venda
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumeroVenda(ctx, tx)
		if err != nil {
			return err
		}

		venda = model.Venda{
			NumeroVenda:   numero,
			Status:        "Finalizada",
			ClienteNome:   req.ClienteNome,
			VendedorID:    vendedorID,
			SessaoCaixaID: &sessaoID,
			Origem:        origem,
			Subtotal:      subtotal,
			Desconto:      descontoTotal,
			Total:         total,
		}

		for _, r := range resolved {
			venda.Itens = append(venda.Itens, model.VendaItem{
				ProdutoID:     r.produtoID,
				Descricao:     r.descricao,
				Quantidade:    r.qtd,
				PrecoUnitario: r.preco,
				Desconto:      r.desconto,
				Subtotal:      r.subtotal,
			})
		}
		for _, pg := range req.Pagamentos {
			tipo := pg.Tipo
			if tipo == "" {
				tipo = "liquidado"
			}
			venda.Pagamentos = append(venda.Pagamentos, model.VendaPagamento{
				Metodo: pg.Metodo,
				Valor:  pg.Valor,
				Taxa:   pg.Taxa,
				Tipo:   tipo,
			})
		}

		if err := s.repo.Create(ctx, tx, &venda); err != nil {
			return err
		}

		for _, r := range resolved {
			antes := 0
			if p, err := s.produtoRepo.FindByID(ctx, r.produtoID); err == nil {
				antes = p.Estoque
			}
			if err := s.produtoRepo.UpdateEstoqueTx(tx, r.produtoID, -r.qtd); err != nil {
				return fmt.Errorf("erro ao baixar estoque de %s: %w", r.descricao, err)
			}
			ref := venda.ID
			mov := &model.MovimentoEstoque{
				ProdutoID:       r.produtoID,
				Tipo:            "venda",
				Quantidade:      -r.qtd,
				EstoqueAnterior: antes,
				EstoqueNovo:     antes - r.qtd,
				Motivo:          fmt.Sprintf("Venda #%d", numero),
				ReferenciaID:    &ref,
			}
			if err := s.produtoRepo.CreateMovimentoEstoqueTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Low-stock check runs async — the sale never waits on it
	if s.dispatcher != nil {
		for _, r := range resolved {
			_ = s.dispatcher.EnqueueAlertaEstoque(ctx, worker.AlertaEstoqueJobPayload{
				ProdutoID: r.produtoID.String(),
			})
		}
	}

	resp := vendaToResponse(&venda)
	resp.Troco = troco
	return resp, nil
}

// ── Cancelar ──────────────────────────────────────────────────────────────────
// Keeps the sale row, restores moved stock and records the reason. Cancelled
// sales stay out of every aggregate by status filtering, never by deletion.

func (s *vendaService) Cancelar(ctx context.Context, id uuid.UUID, motivo string) error {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("venda não encontrada")
	}
	if venda.Status == "Cancelada" {
		return errors.New("a venda já está cancelada")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range venda.Itens {
			antes := 0
			if p, err := s.produtoRepo.FindByID(ctx, item.ProdutoID); err == nil {
				antes = p.Estoque
			}
			if err := s.produtoRepo.UpdateEstoqueTx(tx, item.ProdutoID, item.Quantidade); err != nil {
				return err
			}
			ref := venda.ID
			mov := &model.MovimentoEstoque{
				ProdutoID:       item.ProdutoID,
				Tipo:            "estorno_cancelamento",
				Quantidade:      item.Quantidade,
				EstoqueAnterior: antes,
				EstoqueNovo:     antes + item.Quantidade,
				Motivo:          fmt.Sprintf("Cancelamento venda #%d — %s", venda.NumeroVenda, motivo),
				ReferenciaID:    &ref,
			}
			if err := s.produtoRepo.CreateMovimentoEstoqueTx(tx, mov); err != nil {
				return err
			}
		}
		return s.repo.UpdateStatusTx(tx, id, "Cancelada", &motivo)
	})
}

// ── Listar / PorSessao ────────────────────────────────────────────────────────

func (s *vendaService) Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	vendas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		data = append(data, *vendaToResponse(&vendas[i]))
	}
	return &dto.VendaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *vendaService) PorSessao(ctx context.Context, sessaoID uuid.UUID) ([]dto.VendaResponse, error) {
	vendas, err := s.repo.FindBySessao(ctx, sessaoID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		data = append(data, *vendaToResponse(&vendas[i]))
	}
	return data, nil
}

func vendaToResponse(v *model.Venda) *dto.VendaResponse {
	itens := make([]dto.ItemVendaResponse, 0, len(v.Itens))
	for _, item := range v.Itens {
		descricao := item.Descricao
		if descricao == "" && item.Produto != nil {
			descricao = item.Produto.Descricao()
		}
		itens = append(itens, dto.ItemVendaResponse{
			ProdutoID:     item.ProdutoID.String(),
			Descricao:     descricao,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			Desconto:      item.Desconto,
			Subtotal:      item.Subtotal,
		})
	}
	pagamentos := make([]dto.PagamentoResponse, 0, len(v.Pagamentos))
	for _, p := range v.Pagamentos {
		pagamentos = append(pagamentos, dto.PagamentoResponse{
			Metodo: p.Metodo, Valor: p.Valor, Taxa: p.Taxa, Tipo: p.Tipo,
		})
	}

	resp := &dto.VendaResponse{
		ID:                 v.ID.String(),
		NumeroVenda:        v.NumeroVenda,
		Status:             v.Status,
		ClienteNome:        v.ClienteNome,
		VendedorID:         v.VendedorID.String(),
		Origem:             v.Origem,
		Subtotal:           v.Subtotal,
		Desconto:           v.Desconto,
		Total:              v.Total,
		Troco:              decimal.Zero,
		Itens:              itens,
		Pagamentos:         pagamentos,
		MotivoCancelamento: v.MotivoCancelamento,
		CreatedAt:          v.CreatedAt.Format(time.RFC3339),
	}
	if v.SessaoCaixaID != nil {
		id := v.SessaoCaixaID.String()
		resp.SessaoCaixaID = &id
	}
	if v.Vendedor != nil {
		resp.VendedorNome = v.Vendedor.Nome
	}
	return resp
}
