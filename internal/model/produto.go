package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a stock unit. In unique mode (IMEI/serial tracked) each row is a
// single device with Estoque=1; in bulk mode one row carries the whole
// quantity of a purchase item.
type Produto struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Marca     string    `gorm:"not null;index"`
	Categoria string    `gorm:"not null"`
	Modelo    string    `gorm:"not null;index"`
	Cor       string

	// Identity fields. Empty in bulk mode. IMEI1 and IMEI2 share a single
	// collision namespace: a value used in either field blocks both.
	NumeroSerie string `gorm:"index"`
	Imei1       string `gorm:"index"`
	Imei2       string `gorm:"index"`

	SaudeBateria int    `gorm:"not null;default:100"` // 0-100, only meaningful for Apple
	Condicao     string `gorm:"not null;default:'Novo'"`
	Garantia     string `gorm:"not null;default:'1 ano'"`
	LocalEstoque string `gorm:"not null;default:'Estoque Principal'"`

	PrecoCusto     decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	CustoAdicional decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Preco          decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PrecoAtacado   *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Estoque       int  `gorm:"not null;default:0"`
	EstoqueMinimo *int // nil = no low-stock alerting for this product

	CodigoBarras string     `gorm:"index"`
	CompraID     *uuid.UUID `gorm:"type:uuid;index"`
	CompraItemID *uuid.UUID `gorm:"type:uuid;index"`
	FornecedorID *uuid.UUID `gorm:"type:uuid"`

	// Origem: "Compra" | "Comprado de Cliente"
	Origem    string `gorm:"type:varchar(30);not null;default:'Compra'"`
	CriadoPor string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Descricao renders the catalog display name used on sale items and alerts.
func (p *Produto) Descricao() string {
	d := p.Marca + " " + p.Modelo
	if p.Cor != "" {
		d += " " + p.Cor
	}
	return d
}
