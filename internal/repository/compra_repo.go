package repository

import (
	"context"

	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompraRepository interface {
	Create(ctx context.Context, c *model.Compra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error)
	List(ctx context.Context, page, limit int) ([]model.Compra, int64, error)
	NextNumeroCompra(ctx context.Context) (int, error)
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) Create(ctx context.Context, c *model.Compra) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).Preload("Itens").First(&c, id).Error
	return &c, err
}

func (r *compraRepo) List(ctx context.Context, page, limit int) ([]model.Compra, int64, error) {
	var compras []model.Compra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Compra{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Itens").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&compras).Error
	return compras, total, err
}

func (r *compraRepo) NextNumeroCompra(ctx context.Context) (int, error) {
	var num int
	err := r.db.WithContext(ctx).Raw("SELECT nextval('compras_numero_seq')").Scan(&num).Error
	return num, err
}
