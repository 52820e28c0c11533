package service

// In-memory repository stubs shared by the service tests. They honor the same
// contracts as the GORM implementations; DB() returns nil, which makes runTx
// execute the callback without a transaction.

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── CaixaRepository ───────────────────────────────────────────────────────────

type stubCaixaRepo struct {
	sessoes    map[uuid.UUID]*model.SessaoCaixa
	movimentos []model.MovimentoCaixa
	seq        int
}

func newStubCaixaRepo() *stubCaixaRepo {
	return &stubCaixaRepo{sessoes: make(map[uuid.UUID]*model.SessaoCaixa)}
}

func (r *stubCaixaRepo) CreateSessao(_ context.Context, s *model.SessaoCaixa) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessoes[s.ID] = s
	return nil
}

func (r *stubCaixaRepo) FindSessaoByID(_ context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	s, ok := r.sessoes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	s.Movimentos = nil
	for _, m := range r.movimentos {
		if m.SessaoCaixaID == id {
			s.Movimentos = append(s.Movimentos, m)
		}
	}
	return s, nil
}

func (r *stubCaixaRepo) FindSessaoAbertaPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.SessaoCaixa, error) {
	for _, s := range r.sessoes {
		if s.UsuarioID == usuarioID && s.Status == "aberto" {
			return s, nil
		}
	}
	return nil, nil
}

func (r *stubCaixaRepo) UpdateSessao(_ context.Context, s *model.SessaoCaixa) error {
	r.sessoes[s.ID] = s
	return nil
}

func (r *stubCaixaRepo) CreateMovimento(_ context.Context, m *model.MovimentoCaixa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubCaixaRepo) ListSessoes(_ context.Context, _, _ int) ([]model.SessaoCaixa, int64, error) {
	var out []model.SessaoCaixa
	for _, s := range r.sessoes {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubCaixaRepo) NextNumeroSessao(_ context.Context) (int, error) {
	r.seq++
	return r.seq, nil
}

// ── VendaRepository ───────────────────────────────────────────────────────────

type stubVendaRepo struct {
	vendas map[uuid.UUID]*model.Venda
	seq    int
}

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{vendas: make(map[uuid.UUID]*model.Venda)}
}

func (r *stubVendaRepo) DB() *gorm.DB { return nil }

func (r *stubVendaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venda) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	r.vendas[v.ID] = v
	return nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubVendaRepo) FindBySessao(_ context.Context, sessaoID uuid.UUID) ([]model.Venda, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		if v.SessaoCaixaID != nil && *v.SessaoCaixaID == sessaoID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVendaRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string, motivo *string) error {
	v, ok := r.vendas[id]
	if !ok {
		return errors.New("not found")
	}
	v.Status = status
	if motivo != nil {
		v.MotivoCancelamento = motivo
	}
	return nil
}

func (r *stubVendaRepo) NextNumeroVenda(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubVendaRepo) List(_ context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		if filter.Status != "" && filter.Status != "all" && v.Status != filter.Status {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

// ── ProdutoRepository ─────────────────────────────────────────────────────────

type stubProdutoRepo struct {
	produtos   map[uuid.UUID]*model.Produto
	movimentos []model.MovimentoEstoque
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) CreateTx(_ *gorm.DB, p *model.Produto) error {
	return r.Create(context.Background(), p)
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProdutoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Produto, error) {
	for _, p := range r.produtos {
		if p.CodigoBarras == barcode && p.Ativo {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProdutoRepo) FindByCompraID(_ context.Context, compraID uuid.UUID) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		if p.CompraID != nil && *p.CompraID == compraID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProdutoRepo) List(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) FindIdentidadesExistentes(_ context.Context, seriais, imeis []string) (apierror.Duplicados, error) {
	var dup apierror.Duplicados
	for _, p := range r.produtos {
		for _, s := range seriais {
			if p.NumeroSerie != "" && p.NumeroSerie == strings.TrimSpace(s) {
				dup.NumeroSerie = append(dup.NumeroSerie, s)
			}
		}
		for _, v := range imeis {
			v = strings.TrimSpace(v)
			if v != "" && (p.Imei1 == v || p.Imei2 == v) {
				dup.Imei1 = append(dup.Imei1, v)
			}
		}
	}
	return dup, nil
}

func (r *stubProdutoRepo) UpdateEstoqueTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.produtos[id]
	if !ok {
		return errors.New("not found")
	}
	p.Estoque += delta
	return nil
}

func (r *stubProdutoRepo) CreateMovimentoEstoqueTx(_ *gorm.DB, m *model.MovimentoEstoque) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, *m)
	return nil
}

// ── CompraRepository ──────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras map[uuid.UUID]*model.Compra
	seq     int
}

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{compras: make(map[uuid.UUID]*model.Compra)}
}

func (r *stubCompraRepo) Create(_ context.Context, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Itens {
		if c.Itens[i].ID == uuid.Nil {
			c.Itens[i].ID = uuid.New()
		}
		c.Itens[i].CompraID = c.ID
	}
	c.CreatedAt = time.Now()
	r.compras[c.ID] = c
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCompraRepo) List(_ context.Context, _, _ int) ([]model.Compra, int64, error) {
	var out []model.Compra
	for _, c := range r.compras {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) NextNumeroCompra(_ context.Context) (int, error) {
	r.seq++
	return r.seq, nil
}
