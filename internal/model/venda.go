package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venda is a completed or pending sale.
// Status: "Finalizada" | "Pendente" | "Cancelada" | "Editada"
// Cancelled sales keep their rows; every financial aggregate must skip them.
type Venda struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroVenda        int       `gorm:"uniqueIndex;not null"`
	Status             string    `gorm:"type:varchar(20);not null;default:'Finalizada'"`
	ClienteNome        *string
	VendedorID         uuid.UUID       `gorm:"type:uuid;not null"`
	SessaoCaixaID      *uuid.UUID      `gorm:"type:uuid;index"`
	Origem             string          `gorm:"type:varchar(20);not null;default:'PDV'"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Desconto           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MotivoCancelamento *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Vendedor   *Usuario        `gorm:"foreignKey:VendedorID"`
	Itens      []VendaItem     `gorm:"foreignKey:VendaID"`
	Pagamentos []VendaPagamento `gorm:"foreignKey:VendaID"`
}

type VendaItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Descricao     string          `gorm:"not null"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Desconto      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (VendaItem) TableName() string { return "venda_itens" }

// VendaPagamento records one payment leg of a sale. Metodo is free text as
// entered at the register ("Dinheiro", "Pix", "Cartão 3x"...); aggregation
// normalizes it with trim + lowercase, and "dinheiro" is the privileged key
// that feeds the cash-in-register figure.
// Tipo: "liquidado" | "pendente"
type VendaPagamento struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Metodo  string          `gorm:"not null"`
	Valor   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Taxa    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Tipo    string          `gorm:"type:varchar(20);not null;default:'liquidado'"`
}

func (VendaPagamento) TableName() string { return "venda_pagamentos" }
