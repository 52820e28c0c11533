package service

import (
	"context"
	"errors"
	"time"

	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"
	"github.com/tiagok38-hash/iStorePro/internal/repository"

	"github.com/google/uuid"
)

type ProdutoService interface {
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	ConsultarPreco(ctx context.Context, barcode string) (*dto.ConsultaPrecoResponse, error)
}

type produtoService struct {
	repo repository.ProdutoRepository
}

func NewProdutoService(repo repository.ProdutoRepository) ProdutoService {
	return &produtoService{repo: repo}
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		data = append(data, produtoToResponse(&produtos[i]))
	}
	return &dto.ProdutoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}
	resp := produtoToResponse(produto)
	return &resp, nil
}

// ConsultarPreco resolves a barcode to the public price payload. Identity and
// cost fields never leave this method.
func (s *produtoService) ConsultarPreco(ctx context.Context, barcode string) (*dto.ConsultaPrecoResponse, error) {
	produto, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}
	return &dto.ConsultaPrecoResponse{
		Descricao:         produto.Descricao(),
		Preco:             produto.Preco,
		PrecoAtacado:      produto.PrecoAtacado,
		EstoqueDisponivel: produto.Estoque,
		Categoria:         produto.Categoria,
	}, nil
}

func produtoToResponse(p *model.Produto) dto.ProdutoResponse {
	return dto.ProdutoResponse{
		ID:             p.ID.String(),
		Marca:          p.Marca,
		Categoria:      p.Categoria,
		Modelo:         p.Modelo,
		Cor:            p.Cor,
		NumeroSerie:    p.NumeroSerie,
		Imei1:          p.Imei1,
		Imei2:          p.Imei2,
		SaudeBateria:   p.SaudeBateria,
		Condicao:       p.Condicao,
		Garantia:       p.Garantia,
		LocalEstoque:   p.LocalEstoque,
		PrecoCusto:     p.PrecoCusto,
		CustoAdicional: p.CustoAdicional,
		Preco:          p.Preco,
		PrecoAtacado:   p.PrecoAtacado,
		Estoque:        p.Estoque,
		EstoqueMinimo:  p.EstoqueMinimo,
		CodigoBarras:   p.CodigoBarras,
		Origem:         p.Origem,
		Ativo:          p.Ativo,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}
