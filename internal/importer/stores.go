package importer

import (
	"context"

	"salesdesk/internal/model"
)

// MenuStore 메뉴 카탈로그 저장소
type MenuStore interface {
	// FindMenuByName 없으면 nil, nil
	FindMenuByName(ctx context.Context, branchID, name string) (*model.Menu, error)
	// CreateMenu (branch_id, menu_name) 이 이미 있으면 기존 메뉴와 false 를 돌려준다
	CreateMenu(ctx context.Context, menu model.Menu) (*model.Menu, bool, error)
	GetMenuPrice(ctx context.Context, menuID string) (int, error)
	NextMenuID(ctx context.Context) (string, error)
	// ListMenuIDsByName 지점 메뉴명 → 메뉴ID 스냅샷 (읽기 전용)
	ListMenuIDsByName(ctx context.Context, branchID string) (map[string]string, error)
	ListMenus(ctx context.Context, branchID string) ([]model.Menu, error)
}

// SalesStore 판매 기록 저장소
type SalesStore interface {
	// QuerySalesRange start/end 는 "YYYY-MM-DD HH:MM:SS" 이며 양 끝을 포함한다
	QuerySalesRange(ctx context.Context, branchID, start, end string) ([]model.ExistingRecord, error)
	// UpsertSale (sold_at, menu_id, branch_id) 충돌 시 갱신
	UpsertSale(ctx context.Context, rec model.SalesRecord) error
}

// MappingStore 지점별 확정 컬럼 매핑
type MappingStore interface {
	GetMapping(ctx context.Context, branchID string) (*model.ColumnMapping, error)
	SaveMapping(ctx context.Context, branchID string, m model.ColumnMapping) error
}

// UploadLogStore 업로드 이력
type UploadLogStore interface {
	CreateUploadLog(ctx context.Context, log model.UploadLog) error
	ListUploadLogs(ctx context.Context, branchID string, limit int) ([]model.UploadLog, error)
}

// Store 파이프라인이 쓰는 저장소 전체
type Store interface {
	MenuStore
	SalesStore
	MappingStore
	UploadLogStore
}
