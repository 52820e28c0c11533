package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessaoCaixa represents the lifecycle of a cash register session.
// Status: "aberto" | "fechado"
// Sessions are never deleted; closing and reopening only flip the status.
type SessaoCaixa struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroSessao  int             `gorm:"uniqueIndex;not null"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaldoAbertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'aberto'"`
	AbertoEm      time.Time
	FechadoEm     *time.Time

	Usuario    *Usuario         `gorm:"foreignKey:UsuarioID"`
	Movimentos []MovimentoCaixa `gorm:"foreignKey:SessaoCaixaID"`
}

func (SessaoCaixa) TableName() string { return "sessoes_caixa" }

// MovimentoCaixa is an immutable event in the cash register ledger.
// Tipo: "suprimento" (cash in) | "sangria" (cash out)
// Movements are NEVER modified or deleted. Valor is always positive; the
// balance calculator applies the sign based on Tipo.
type MovimentoCaixa struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessaoCaixaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo          string          `gorm:"type:varchar(20);not null"`
	Valor         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Motivo        string          `gorm:"not null"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}

func (MovimentoCaixa) TableName() string { return "movimentos_caixa" }
