package repository

import (
	"context"

	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	FindBySessao(ctx context.Context, sessaoID uuid.UUID) ([]model.Venda, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string, motivo *string) error
	NextNumeroVenda(ctx context.Context, tx *gorm.DB) (int, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).
		Preload("Itens.Produto").Preload("Pagamentos").Preload("Vendedor").
		First(&v, id).Error
	return &v, err
}

func (r *vendaRepo) FindBySessao(ctx context.Context, sessaoID uuid.UUID) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Pagamentos").
		Where("sessao_caixa_id = ?", sessaoID).
		Order("created_at ASC").
		Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string, motivo *string) error {
	updates := map[string]interface{}{"status": status}
	if motivo != nil {
		updates["motivo_cancelamento"] = *motivo
	}
	return tx.Model(&model.Venda{}).Where("id = ?", id).Updates(updates).Error
}

func (r *vendaRepo) NextNumeroVenda(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic sale number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('vendas_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venda{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SessaoID != "" {
		q = q.Where("sessao_caixa_id = ?", filter.SessaoID)
	}
	if filter.Data != "" {
		q = q.Where("DATE(created_at) = ?", filter.Data)
	} else if filter.SessaoID == "" {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Itens.Produto").Preload("Pagamentos").Preload("Vendedor").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vendas).Error

	return vendas, total, err
}
