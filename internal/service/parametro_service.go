package service

import (
	"context"

	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"
	"github.com/tiagok38-hash/iStorePro/internal/repository"
)

// ParametroService serves the launch-form lookup tables. Values are
// append-only: rows are referenced by name on products, so nothing is
// ever renamed or removed here.
type ParametroService interface {
	ListarCondicoes(ctx context.Context) ([]dto.ParametroResponse, error)
	CriarCondicao(ctx context.Context, req dto.ParametroRequest) (*dto.ParametroResponse, error)
	ListarLocais(ctx context.Context) ([]dto.ParametroResponse, error)
	CriarLocal(ctx context.Context, req dto.ParametroRequest) (*dto.ParametroResponse, error)
	ListarGarantias(ctx context.Context) ([]dto.ParametroResponse, error)
	CriarGarantia(ctx context.Context, req dto.ParametroRequest) (*dto.ParametroResponse, error)
}

type parametroService struct {
	repo repository.ParametroRepository
}

func NewParametroService(repo repository.ParametroRepository) ParametroService {
	return &parametroService{repo: repo}
}

func (s *parametroService) ListarCondicoes(ctx context.Context) ([]dto.ParametroResponse, error) {
	rows, err := s.repo.ListCondicoes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ParametroResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.ParametroResponse{ID: r.ID.String(), Nome: r.Nome}
	}
	return out, nil
}

func (s *parametroService) CriarCondicao(ctx context.Context, req dto.ParametroRequest) (*dto.ParametroResponse, error) {
	row := &model.CondicaoProduto{Nome: req.Nome}
	if err := s.repo.CreateCondicao(ctx, row); err != nil {
		return nil, err
	}
	return &dto.ParametroResponse{ID: row.ID.String(), Nome: row.Nome}, nil
}

func (s *parametroService) ListarLocais(ctx context.Context) ([]dto.ParametroResponse, error) {
	rows, err := s.repo.ListLocais(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ParametroResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.ParametroResponse{ID: r.ID.String(), Nome: r.Nome}
	}
	return out, nil
}

func (s *parametroService) CriarLocal(ctx context.Context, req dto.ParametroRequest) (*dto.ParametroResponse, error) {
	row := &model.LocalEstoque{Nome: req.Nome}
	if err := s.repo.CreateLocal(ctx, row); err != nil {
		return nil, err
	}
	return &dto.ParametroResponse{ID: row.ID.String(), Nome: row.Nome}, nil
}

func (s *parametroService) ListarGarantias(ctx context.Context) ([]dto.ParametroResponse, error) {
	rows, err := s.repo.ListGarantias(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ParametroResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.ParametroResponse{ID: r.ID.String(), Nome: r.Nome}
	}
	return out, nil
}

func (s *parametroService) CriarGarantia(ctx context.Context, req dto.ParametroRequest) (*dto.ParametroResponse, error) {
	row := &model.GarantiaParametro{Nome: req.Nome}
	if err := s.repo.CreateGarantia(ctx, row); err != nil {
		return nil, err
	}
	return &dto.ParametroResponse{ID: row.ID.String(), Nome: row.Nome}, nil
}
