package repository

import (
	"context"

	"github.com/tiagok38-hash/iStorePro/internal/model"

	"gorm.io/gorm"
)

// ParametroRepository serves the lookup tables behind the stock-launch
// dropdowns (condições, locais de estoque, garantias).
type ParametroRepository interface {
	ListCondicoes(ctx context.Context) ([]model.CondicaoProduto, error)
	CreateCondicao(ctx context.Context, c *model.CondicaoProduto) error
	ListLocais(ctx context.Context) ([]model.LocalEstoque, error)
	CreateLocal(ctx context.Context, l *model.LocalEstoque) error
	ListGarantias(ctx context.Context) ([]model.GarantiaParametro, error)
	CreateGarantia(ctx context.Context, g *model.GarantiaParametro) error
}

type parametroRepo struct{ db *gorm.DB }

func NewParametroRepository(db *gorm.DB) ParametroRepository { return &parametroRepo{db: db} }

func (r *parametroRepo) ListCondicoes(ctx context.Context) ([]model.CondicaoProduto, error) {
	var out []model.CondicaoProduto
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&out).Error
	return out, err
}

func (r *parametroRepo) CreateCondicao(ctx context.Context, c *model.CondicaoProduto) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *parametroRepo) ListLocais(ctx context.Context) ([]model.LocalEstoque, error) {
	var out []model.LocalEstoque
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&out).Error
	return out, err
}

func (r *parametroRepo) CreateLocal(ctx context.Context, l *model.LocalEstoque) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *parametroRepo) ListGarantias(ctx context.Context) ([]model.GarantiaParametro, error) {
	var out []model.GarantiaParametro
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&out).Error
	return out, err
}

func (r *parametroRepo) CreateGarantia(ctx context.Context, g *model.GarantiaParametro) error {
	return r.db.WithContext(ctx).Create(g).Error
}
