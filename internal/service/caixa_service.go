package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"
	"github.com/tiagok38-hash/iStorePro/internal/repository"

	"github.com/google/uuid"
)

type CaixaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error)
	Fechar(ctx context.Context, sessaoID uuid.UUID) (*dto.SessaoCaixaResponse, error)
	Reabrir(ctx context.Context, sessaoID uuid.UUID) (*dto.SessaoCaixaResponse, error)
	RegistrarMovimento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimentoCaixaRequest) (*dto.SessaoCaixaResponse, error)
	Resumo(ctx context.Context, sessaoID uuid.UUID) (*dto.ResumoCaixaResponse, error)
	SessaoAtiva(ctx context.Context, usuarioID uuid.UUID) (*dto.SessaoCaixaResponse, error)
	Listar(ctx context.Context, page, limit int) ([]dto.SessaoCaixaResponse, int64, error)
	// ValidarSessaoAberta is called by VendaService before attaching a sale.
	ValidarSessaoAberta(ctx context.Context, sessaoID uuid.UUID) error
}

type caixaService struct {
	repo      repository.CaixaRepository
	vendaRepo repository.VendaRepository
}

func NewCaixaService(repo repository.CaixaRepository, vendaRepo repository.VendaRepository) CaixaService {
	return &caixaService{repo: repo, vendaRepo: vendaRepo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *caixaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error) {
	// Guard: one open session per user
	if existente, err := s.repo.FindSessaoAbertaPorUsuario(ctx, usuarioID); err == nil && existente != nil {
		return nil, errors.New("já existe um caixa aberto para este usuário")
	}

	numero, err := s.repo.NextNumeroSessao(ctx)
	if err != nil {
		return nil, err
	}

	sessao := &model.SessaoCaixa{
		NumeroSessao:  numero,
		UsuarioID:     usuarioID,
		SaldoAbertura: req.SaldoAbertura,
		Status:        "aberto",
		AbertoEm:      time.Now(),
	}
	if err := s.repo.CreateSessao(ctx, sessao); err != nil {
		return nil, err
	}

	return sessaoToResponse(sessao), nil
}

// ── Fechar / Reabrir ──────────────────────────────────────────────────────────
// Sessions are never deleted; closing and reopening flip the status only.
// The balance figures are recomputed on demand, so no totals are persisted.

func (s *caixaService) Fechar(ctx context.Context, sessaoID uuid.UUID) (*dto.SessaoCaixaResponse, error) {
	sessao, err := s.repo.FindSessaoByID(ctx, sessaoID)
	if err != nil {
		return nil, errors.New("sessão de caixa não encontrada")
	}
	if sessao.Status != "aberto" {
		return nil, errors.New("a sessão já está fechada")
	}

	agora := time.Now()
	sessao.Status = "fechado"
	sessao.FechadoEm = &agora
	if err := s.repo.UpdateSessao(ctx, sessao); err != nil {
		return nil, err
	}
	return sessaoToResponse(sessao), nil
}

func (s *caixaService) Reabrir(ctx context.Context, sessaoID uuid.UUID) (*dto.SessaoCaixaResponse, error) {
	sessao, err := s.repo.FindSessaoByID(ctx, sessaoID)
	if err != nil {
		return nil, errors.New("sessão de caixa não encontrada")
	}
	if sessao.Status != "fechado" {
		return nil, errors.New("a sessão não está fechada")
	}
	// Reopen is blocked while the owner has another open session
	if aberta, err := s.repo.FindSessaoAbertaPorUsuario(ctx, sessao.UsuarioID); err == nil && aberta != nil {
		return nil, errors.New("o usuário já possui um caixa aberto")
	}

	sessao.Status = "aberto"
	sessao.FechadoEm = nil
	if err := s.repo.UpdateSessao(ctx, sessao); err != nil {
		return nil, err
	}
	return sessaoToResponse(sessao), nil
}

// ── RegistrarMovimento ────────────────────────────────────────────────────────
// Suprimento / sangria. Movements are immutable — no Update/Delete exists.

func (s *caixaService) RegistrarMovimento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimentoCaixaRequest) (*dto.SessaoCaixaResponse, error) {
	sessaoID, err := uuid.Parse(req.SessaoCaixaID)
	if err != nil {
		return nil, fmt.Errorf("sessao_caixa_id inválido: %w", err)
	}
	sessao, err := s.repo.FindSessaoByID(ctx, sessaoID)
	if err != nil {
		return nil, errors.New("sessão de caixa não encontrada")
	}
	if sessao.Status != "aberto" {
		return nil, errors.New("não há sessão de caixa aberta")
	}

	mov := &model.MovimentoCaixa{
		SessaoCaixaID: sessaoID,
		Tipo:          req.Tipo,
		Valor:         req.Valor,
		Motivo:        req.Motivo,
		UsuarioID:     usuarioID,
	}
	if err := s.repo.CreateMovimento(ctx, mov); err != nil {
		return nil, err
	}

	sessao, err = s.repo.FindSessaoByID(ctx, sessaoID)
	if err != nil {
		return nil, err
	}
	return sessaoToResponse(sessao), nil
}

// ── Resumo ────────────────────────────────────────────────────────────────────

func (s *caixaService) Resumo(ctx context.Context, sessaoID uuid.UUID) (*dto.ResumoCaixaResponse, error) {
	sessao, err := s.repo.FindSessaoByID(ctx, sessaoID)
	if err != nil {
		return nil, errors.New("sessão de caixa não encontrada")
	}
	vendas, err := s.vendaRepo.FindBySessao(ctx, sessaoID)
	if err != nil {
		return nil, err
	}

	saldo := CalcularSaldoSessao(sessao, vendas)

	totais := make([]dto.TotalMetodoResponse, 0, len(saldo.TotaisPorMetodo))
	for _, t := range saldo.TotaisPorMetodo {
		totais = append(totais, dto.TotalMetodoResponse{Metodo: t.Metodo, Valor: t.Valor})
	}

	return &dto.ResumoCaixaResponse{
		Sessao:             *sessaoToResponse(sessao),
		QuantidadeVendas:   saldo.QuantidadeVendas,
		ValorTransacionado: saldo.ValorTransacionado,
		VendasDinheiro:     saldo.VendasDinheiro,
		Suprimentos:        saldo.Suprimentos,
		Sangrias:           saldo.Sangrias,
		DinheiroEmCaixa:    saldo.DinheiroEmCaixa,
		TotaisPorMetodo:    totais,
	}, nil
}

// ── SessaoAtiva / Listar ──────────────────────────────────────────────────────

func (s *caixaService) SessaoAtiva(ctx context.Context, usuarioID uuid.UUID) (*dto.SessaoCaixaResponse, error) {
	sessao, err := s.repo.FindSessaoAbertaPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if sessao == nil {
		return nil, nil
	}
	return sessaoToResponse(sessao), nil
}

func (s *caixaService) Listar(ctx context.Context, page, limit int) ([]dto.SessaoCaixaResponse, int64, error) {
	sessoes, total, err := s.repo.ListSessoes(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.SessaoCaixaResponse, 0, len(sessoes))
	for i := range sessoes {
		resp = append(resp, *sessaoToResponse(&sessoes[i]))
	}
	return resp, total, nil
}

// ── ValidarSessaoAberta ───────────────────────────────────────────────────────

func (s *caixaService) ValidarSessaoAberta(ctx context.Context, sessaoID uuid.UUID) error {
	sessao, err := s.repo.FindSessaoByID(ctx, sessaoID)
	if err != nil {
		return errors.New("sessão de caixa não encontrada")
	}
	if sessao.Status != "aberto" {
		return errors.New("não há sessão de caixa aberta")
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func sessaoToResponse(s *model.SessaoCaixa) *dto.SessaoCaixaResponse {
	movs := make([]dto.MovimentoCaixaResponse, 0, len(s.Movimentos))
	for _, m := range s.Movimentos {
		movs = append(movs, dto.MovimentoCaixaResponse{
			ID:       m.ID.String(),
			Tipo:     m.Tipo,
			Valor:    m.Valor,
			Motivo:   m.Motivo,
			CriadoEm: m.CreatedAt.Format(time.RFC3339),
		})
	}

	resp := &dto.SessaoCaixaResponse{
		ID:            s.ID.String(),
		NumeroSessao:  s.NumeroSessao,
		UsuarioID:     s.UsuarioID.String(),
		SaldoAbertura: s.SaldoAbertura,
		Status:        s.Status,
		AbertoEm:      s.AbertoEm.Format(time.RFC3339),
		Movimentos:    movs,
	}
	if s.Usuario != nil {
		resp.UsuarioNome = s.Usuario.Nome
	}
	if s.FechadoEm != nil {
		t := s.FechadoEm.Format(time.RFC3339)
		resp.FechadoEm = &t
	}
	return resp
}
