package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimentoEstoque registra cada mudança de estoque de um produto.
// Criado automaticamente ao lançar compra, vender ou cancelar uma venda.
type MovimentoEstoque struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo           string    `gorm:"not null"` // "entrada_compra" | "venda" | "estorno_cancelamento" | "ajuste_manual"
	Quantidade     int       `gorm:"not null"` // positive = entrada, negative = saída
	EstoqueAnterior int      `gorm:"not null"`
	EstoqueNovo    int       `gorm:"not null"`
	Motivo         string
	ReferenciaID   *uuid.UUID `gorm:"type:uuid"` // venda_id or compra_id when applicable
	CreatedAt      time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

// TableName overrides GORM's default pluralization.
func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
