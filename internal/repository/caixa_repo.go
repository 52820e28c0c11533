package repository

import (
	"context"

	"github.com/tiagok38-hash/iStorePro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	CreateSessao(ctx context.Context, s *model.SessaoCaixa) error
	FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error)
	// FindSessaoAbertaPorUsuario returns (nil, nil) when the user has no open session.
	FindSessaoAbertaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.SessaoCaixa, error)
	UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error
	CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error
	ListSessoes(ctx context.Context, page, limit int) ([]model.SessaoCaixa, int64, error)
	NextNumeroSessao(ctx context.Context) (int, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) CreateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *caixaRepo) FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).Preload("Movimentos").Preload("Usuario").First(&s, id).Error
	return &s, err
}

func (r *caixaRepo) FindSessaoAbertaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).Preload("Movimentos").
		Where("usuario_id = ? AND status = 'aberto'", usuarioID).
		First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *caixaRepo) UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *caixaRepo) CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) ListSessoes(ctx context.Context, page, limit int) ([]model.SessaoCaixa, int64, error) {
	var sessoes []model.SessaoCaixa
	var total int64

	q := r.db.WithContext(ctx).Model(&model.SessaoCaixa{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Movimentos").Preload("Usuario").
		Order("aberto_em DESC").
		Offset(offset).Limit(limit).
		Find(&sessoes).Error
	return sessoes, total, err
}

func (r *caixaRepo) NextNumeroSessao(ctx context.Context) (int, error) {
	// PostgreSQL sequence for atomic display numbers
	var num int
	err := r.db.WithContext(ctx).Raw("SELECT nextval('sessoes_caixa_numero_seq')").Scan(&num).Error
	return num, err
}
