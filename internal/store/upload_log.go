package store

import (
	"context"
	"fmt"

	"salesdesk/internal/model"
)

// CreateUploadLog 업로드 이력 기록
func (s *Store) CreateUploadLog(ctx context.Context, log model.UploadLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO upload_logs (id, branch_id, filename, total_rows, valid_rows, inserted, updated, menus_created, error_count, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, log.ID, log.BranchID, log.Filename, log.TotalRows, log.ValidRows, log.Inserted, log.Updated,
		log.MenusCreated, log.ErrorCount, string(log.Status), log.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create upload log: %w", err)
	}
	return nil
}

// ListUploadLogs 최신순. branchID 가 비면 전체, limit 이 0 이하면 제한 없음.
func (s *Store) ListUploadLogs(ctx context.Context, branchID string, limit int) ([]model.UploadLog, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, branch_id, filename, total_rows, valid_rows, inserted, updated, menus_created, error_count, status, created_at
		FROM upload_logs
		WHERE ? = '' OR branch_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, branchID, branchID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload logs: %w", err)
	}
	defer rows.Close()

	logs := []model.UploadLog{}
	for rows.Next() {
		var l model.UploadLog
		var status string
		if err := rows.Scan(&l.ID, &l.BranchID, &l.Filename, &l.TotalRows, &l.ValidRows, &l.Inserted, &l.Updated,
			&l.MenusCreated, &l.ErrorCount, &status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload log: %w", err)
		}
		l.Status = model.UploadStatus(status)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
