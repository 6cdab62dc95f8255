package store

import (
	"context"
	"fmt"

	"salesdesk/internal/model"
	"salesdesk/internal/parser"
)

// QuerySalesRange sold_at 이 [start, end] 인 기존 판매 키
func (s *Store) QuerySalesRange(ctx context.Context, branchID, start, end string) ([]model.ExistingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sold_at, menu_id FROM sales
		WHERE branch_id = ? AND sold_at BETWEEN ? AND ?
	`, branchID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales range: %w", err)
	}
	defer rows.Close()

	var out []model.ExistingRecord
	for rows.Next() {
		var rec model.ExistingRecord
		if err := rows.Scan(&rec.SoldAt, &rec.MenuID); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpsertSale (sold_at, menu_id, branch_id) 충돌 시 수량/금액을 덮어쓴다.
// sold_at 은 정규화된 형태로 저장된다.
func (s *Store) UpsertSale(ctx context.Context, rec model.SalesRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sales (sold_at, menu_id, branch_id, sales_count, price, total_sales, transaction_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sold_at, menu_id, branch_id) DO UPDATE SET
			sales_count = excluded.sales_count,
			price = excluded.price,
			total_sales = excluded.total_sales,
			transaction_id = excluded.transaction_id,
			updated_at = CURRENT_TIMESTAMP
	`,
		parser.NormalizeTimestamp(rec.SoldAt),
		rec.MenuID,
		rec.BranchID,
		rec.SalesCount,
		rec.Price,
		rec.TotalSales,
		rec.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert sale: %w", err)
	}
	return nil
}

// ListSales 기간 내 판매 기록 (판매시각 순)
func (s *Store) ListSales(ctx context.Context, branchID, start, end string) ([]model.SalesRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sold_at, menu_id, branch_id, sales_count, price, total_sales, transaction_id
		FROM sales
		WHERE branch_id = ? AND sold_at BETWEEN ? AND ?
		ORDER BY sold_at, menu_id
	`, branchID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	out := []model.SalesRecord{}
	for rows.Next() {
		var rec model.SalesRecord
		if err := rows.Scan(&rec.SoldAt, &rec.MenuID, &rec.BranchID, &rec.SalesCount, &rec.Price, &rec.TotalSales, &rec.TransactionID); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
