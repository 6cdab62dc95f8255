package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"salesdesk/internal/model"
)

// GetMapping 없으면 nil, nil
func (s *Store) GetMapping(ctx context.Context, branchID string) (*model.ColumnMapping, error) {
	var m model.ColumnMapping
	err := s.db.QueryRowContext(ctx, `
		SELECT date_column, menu_name_column, quantity_column, price_column, total_column, transaction_id_column
		FROM column_mappings WHERE branch_id = ?
	`, branchID).Scan(&m.DateColumn, &m.MenuNameColumn, &m.QuantityColumn, &m.PriceColumn, &m.TotalColumn, &m.TransactionIDColumn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mapping: %w", err)
	}
	return &m, nil
}

// SaveMapping 지점 매핑 저장 (덮어쓰기)
func (s *Store) SaveMapping(ctx context.Context, branchID string, m model.ColumnMapping) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO column_mappings (branch_id, date_column, menu_name_column, quantity_column, price_column, total_column, transaction_id_column)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(branch_id) DO UPDATE SET
			date_column = excluded.date_column,
			menu_name_column = excluded.menu_name_column,
			quantity_column = excluded.quantity_column,
			price_column = excluded.price_column,
			total_column = excluded.total_column,
			transaction_id_column = excluded.transaction_id_column,
			updated_at = CURRENT_TIMESTAMP
	`, branchID, m.DateColumn, m.MenuNameColumn, m.QuantityColumn, m.PriceColumn, m.TotalColumn, m.TransactionIDColumn)
	if err != nil {
		return fmt.Errorf("failed to save mapping: %w", err)
	}
	return nil
}
