package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/mattn/go-sqlite3"

	"salesdesk/internal/model"
)

// FindMenuByName 없으면 nil, nil
func (s *Store) FindMenuByName(ctx context.Context, branchID, name string) (*model.Menu, error) {
	var m model.Menu
	err := s.db.QueryRowContext(ctx, `
		SELECT menu_id, menu_name, price, branch_id FROM menus
		WHERE branch_id = ? AND menu_name = ?
	`, branchID, name).Scan(&m.MenuID, &m.MenuName, &m.Price, &m.BranchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find menu: %w", err)
	}
	return &m, nil
}

// CreateMenu (branch_id, menu_name) 가 이미 있으면 기존 메뉴를 돌려준다
func (s *Store) CreateMenu(ctx context.Context, menu model.Menu) (*model.Menu, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO menus (menu_id, menu_name, price, branch_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(branch_id, menu_name) DO NOTHING
	`, menu.MenuID, menu.MenuName, menu.Price, menu.BranchID)
	if isPrimaryKeyConflict(err) {
		return nil, false, fmt.Errorf("%w: %s", model.ErrMenuIDTaken, menu.MenuID)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create menu: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create menu: %w", err)
	}
	if n == 1 {
		created := menu
		return &created, true, nil
	}

	existing, err := s.FindMenuByName(ctx, menu.BranchID, menu.MenuName)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("menu %q vanished after conflict", menu.MenuName)
	}
	return existing, false, nil
}

func isPrimaryKeyConflict(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// GetMenuPrice 메뉴 가격
func (s *Store) GetMenuPrice(ctx context.Context, menuID string) (int, error) {
	var price int
	err := s.db.QueryRowContext(ctx, `SELECT price FROM menus WHERE menu_id = ?`, menuID).Scan(&price)
	if err != nil {
		return 0, fmt.Errorf("failed to get menu price: %w", err)
	}
	return price, nil
}

// NextMenuID 숫자 기준 최대 ID 다음 값. 자릿수가 긴 ID 가 더 크다 (M999 < M1000).
func (s *Store) NextMenuID(ctx context.Context) (string, error) {
	var last string
	err := s.db.QueryRowContext(ctx, `
		SELECT menu_id FROM menus
		WHERE menu_id GLOB 'M[0-9]*' AND substr(menu_id, 2) NOT GLOB '*[^0-9]*'
		ORDER BY length(menu_id) DESC, menu_id DESC
		LIMIT 1
	`).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return "M001", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query last menu id: %w", err)
	}

	n, err := strconv.Atoi(last[1:])
	if err != nil {
		return "", fmt.Errorf("failed to parse menu id %q: %w", last, err)
	}
	return fmt.Sprintf("M%03d", n+1), nil
}

// ListMenuIDsByName 지점 메뉴명 → 메뉴ID
func (s *Store) ListMenuIDsByName(ctx context.Context, branchID string) (map[string]string, error) {
	menus, err := s.ListMenus(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(menus))
	for _, m := range menus {
		out[m.MenuName] = m.MenuID
	}
	return out, nil
}

// ListMenus 지점 메뉴 목록
func (s *Store) ListMenus(ctx context.Context, branchID string) ([]model.Menu, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT menu_id, menu_name, price, branch_id FROM menus
		WHERE branch_id = ?
		ORDER BY length(menu_id), menu_id
	`, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	menus := []model.Menu{}
	for rows.Next() {
		var m model.Menu
		if err := rows.Scan(&m.MenuID, &m.MenuName, &m.Price, &m.BranchID); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}
