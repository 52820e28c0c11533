package model

import (
	"time"

	"github.com/google/uuid"
)

// Parameter tables backing the stock-launch dropdowns. Plain name lists,
// managed by administrators.

type CondicaoProduto struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (CondicaoProduto) TableName() string { return "condicoes_produto" }

type LocalEstoque struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (LocalEstoque) TableName() string { return "locais_estoque" }

type GarantiaParametro struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (GarantiaParametro) TableName() string { return "garantias" }
