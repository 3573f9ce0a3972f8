package migration

import (
	"context"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes and constraints
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates PostgreSQL indexes for the sweeper and history queries
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	statements := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_users_expiring_suspensions",
			sql: `CREATE INDEX IF NOT EXISTS idx_users_expiring_suspensions
				ON users (suspended_until)
				WHERE is_suspended AND suspended_until IS NOT NULL`,
		},
		{
			name: "idx_currency_transactions_created_at_brin",
			sql: `CREATE INDEX IF NOT EXISTS idx_currency_transactions_created_at_brin
				ON currency_transactions USING BRIN (created_at)
				WITH (pages_per_range = 32)`,
		},
		{
			name: "idx_users_username_lower",
			sql: `CREATE INDEX IF NOT EXISTS idx_users_username_lower
				ON users (LOWER(username))`,
		},
	}

	for _, stmt := range statements {
		if err := m.db.WithContext(ctx).Exec(stmt.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": stmt.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreateLedgerGuards adds non-negative balance checks and a trigger that
// refuses UPDATE and DELETE on currency_transactions
func (m *AdvancedIndexManager) CreateLedgerGuards(ctx context.Context) error {
	m.logger.Info("Applying PostgreSQL ledger guards", nil)

	statements := []string{
		`DO $$ BEGIN
			ALTER TABLE currencies ADD CONSTRAINT chk_currencies_balance_non_negative
				CHECK (balance >= 0 AND locked_balance >= 0);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
		`CREATE OR REPLACE FUNCTION currency_transactions_append_only() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'currency_transactions is append-only';
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS trg_currency_transactions_append_only ON currency_transactions`,
		`CREATE TRIGGER trg_currency_transactions_append_only
			BEFORE UPDATE OR DELETE ON currency_transactions
			FOR EACH ROW EXECUTE FUNCTION currency_transactions_append_only()`,
	}

	for _, stmt := range statements {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.logger.Error("Failed to apply ledger guard", map[string]any{
				"error": err.Error(),
			})
			return err
		}
	}

	// Not critical; tuning only
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE currency_transactions SET (fillfactor = 100)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for currency_transactions", map[string]any{
			"error": err.Error(),
		})
	}

	m.logger.Info("PostgreSQL ledger guards applied successfully", nil)
	return nil
}
