package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a purchase order. Launching it into stock creates Produto rows
// linked back through CompraItemID; the order itself is never mutated by the
// launch, so a partially launched order can be resumed at any time.
type Compra struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroCompra   int       `gorm:"uniqueIndex;not null"`
	FornecedorNome string
	FornecedorID   *uuid.UUID `gorm:"type:uuid"`
	// CompraDeCliente marks trade-in purchases; launched units carry
	// Origem="Comprado de Cliente".
	CompraDeCliente bool `gorm:"not null;default:false"`
	Observacoes     *string
	CriadoPor       string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Itens []CompraItem `gorm:"foreignKey:CompraID"`
}

// CompraItem is one line of a purchase order.
// TemImei decides the launch mode at the ORDER level: if every item of the
// order has TemImei=false the whole order launches in bulk mode, otherwise
// every remaining unit becomes its own draft row.
type CompraItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Marca     string    `gorm:"not null"`
	Categoria string    `gorm:"not null"`
	Modelo    string    `gorm:"not null"`
	Cor       string

	Quantidade             int             `gorm:"not null"`
	CustoUnitario          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CustoAdicionalUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TemImei                bool            `gorm:"not null;default:false"`

	// Optional per-item defaults; launch falls back to "Novo" / "1 ano" /
	// "Estoque Principal" when absent.
	Condicao     *string
	Garantia     *string
	LocalEstoque *string

	EstoqueMinimo *int
	CodigoBarras  *string
}

func (CompraItem) TableName() string { return "compra_itens" }
