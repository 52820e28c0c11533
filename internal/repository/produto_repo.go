package repository

import (
	"context"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	CreateTx(tx *gorm.DB, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Produto, error)
	FindByCompraID(ctx context.Context, compraID uuid.UUID) ([]model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error)
	Update(ctx context.Context, p *model.Produto) error

	// FindIdentidadesExistentes checks the given serial and IMEI values against
	// the whole products table and returns whatever is already taken, grouped
	// the way the launch conflict payload expects. IMEI values are matched
	// against BOTH imei1 and imei2 columns.
	FindIdentidadesExistentes(ctx context.Context, seriais, imeis []string) (apierror.Duplicados, error)

	// Used inside transactions — callers must pass the tx instance
	UpdateEstoqueTx(tx *gorm.DB, id uuid.UUID, delta int) error
	CreateMovimentoEstoqueTx(tx *gorm.DB, m *model.MovimentoEstoque) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) CreateTx(tx *gorm.DB, p *model.Produto) error {
	return tx.Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Where("codigo_barras = ? AND ativo = true", barcode).First(&p).Error
	return &p, err
}

func (r *produtoRepo) FindByCompraID(ctx context.Context, compraID uuid.UUID) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Where("compra_id = ?", compraID).Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var produtos []model.Produto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Produto{})

	// Ativo filter: "false" = inactive, "all" = everything, default = active
	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
		// no filter
	default:
		q = q.Where("ativo = true")
	}

	if filter.Busca != "" {
		like := "%" + filter.Busca + "%"
		q = q.Where(
			"marca ILIKE ? OR modelo ILIKE ? OR numero_serie ILIKE ? OR imei1 ILIKE ? OR imei2 ILIKE ? OR codigo_barras = ?",
			like, like, like, like, like, filter.Busca,
		)
	}
	if filter.Marca != "" {
		q = q.Where("marca = ?", filter.Marca)
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if filter.CompraID != "" {
		q = q.Where("compra_id = ?", filter.CompraID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("marca ASC, modelo ASC").Limit(filter.Limit).Offset(offset).Find(&produtos).Error
	return produtos, total, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) FindIdentidadesExistentes(ctx context.Context, seriais, imeis []string) (apierror.Duplicados, error) {
	var dup apierror.Duplicados

	if len(seriais) > 0 {
		var taken []string
		err := r.db.WithContext(ctx).Model(&model.Produto{}).
			Where("numero_serie IN ?", seriais).
			Pluck("numero_serie", &taken).Error
		if err != nil {
			return dup, err
		}
		dup.NumeroSerie = taken
	}

	if len(imeis) > 0 {
		// imei1 and imei2 share one namespace: a submitted value clashes no
		// matter which column already holds it.
		var taken1, taken2 []string
		if err := r.db.WithContext(ctx).Model(&model.Produto{}).
			Where("imei1 IN ? OR imei2 IN ?", imeis, imeis).
			Pluck("imei1", &taken1).Error; err != nil {
			return dup, err
		}
		if err := r.db.WithContext(ctx).Model(&model.Produto{}).
			Where("imei1 IN ? OR imei2 IN ?", imeis, imeis).
			Pluck("imei2", &taken2).Error; err != nil {
			return dup, err
		}
		submitted := make(map[string]bool, len(imeis))
		for _, v := range imeis {
			submitted[v] = true
		}
		for _, v := range append(taken1, taken2...) {
			if submitted[v] {
				dup.Imei1 = append(dup.Imei1, v)
			}
		}
	}

	return dup, nil
}

func (r *produtoRepo) UpdateEstoqueTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("estoque", gorm.Expr("estoque + ?", delta)).Error
}

func (r *produtoRepo) CreateMovimentoEstoqueTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
