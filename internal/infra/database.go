package infra

import (
	"fmt"

	"github.com/tiagok38-hash/iStorePro/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (sequences, partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Exposed
// separately so integration tests can migrate a fresh container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.SessaoCaixa{},
		&model.MovimentoCaixa{},
		&model.Produto{},
		&model.Venda{},
		&model.VendaItem{},
		&model.VendaPagamento{},
		&model.Compra{},
		&model.CompraItem{},
		&model.MovimentoEstoque{},
		&model.CondicaoProduto{},
		&model.LocalEstoque{},
		&model.GarantiaParametro{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle:
// the display-number sequences and the partial unique indexes on product
// identity fields (blank values must not collide).
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE SEQUENCE IF NOT EXISTS sessoes_caixa_numero_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS vendas_numero_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS compras_numero_seq START 1`,

		// Identity uniqueness backstop: enforced only for non-blank values.
		// The launch endpoint checks first to return a structured conflict,
		// but concurrent launches ultimately rely on these indexes.
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_produtos_numero_serie
		    ON produtos (numero_serie) WHERE numero_serie <> ''`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_produtos_imei1
		    ON produtos (imei1) WHERE imei1 <> ''`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_produtos_imei2
		    ON produtos (imei2) WHERE imei2 <> ''`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
