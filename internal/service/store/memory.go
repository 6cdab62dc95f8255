package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"salesdesk/internal/model"
	"salesdesk/internal/parser"
)

// MemoryStore 메모리 저장소 (테스트, CLI 드라이런용)
type MemoryStore struct {
	menus    map[string]*model.Menu // menu_id → menu
	sales    map[string]model.SalesRecord
	mappings map[string]model.ColumnMapping
	logs     []model.UploadLog
	mu       sync.RWMutex

	upsertCalls int
	queryCalls  int
	writes      int
	failUpsert  map[int]error
	failQuery   error
}

// NewMemoryStore 생성
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		menus:      make(map[string]*model.Menu),
		sales:      make(map[string]model.SalesRecord),
		mappings:   make(map[string]model.ColumnMapping),
		failUpsert: make(map[int]error),
	}
}

// FailUpsertOn n 번째(1부터) UpsertSale 호출이 err 로 실패하게 한다
func (s *MemoryStore) FailUpsertOn(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUpsert[n] = err
}

// FailQueryWith 이후 모든 QuerySalesRange 호출이 err 로 실패
func (s *MemoryStore) FailQueryWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failQuery = err
}

// Writes 지금까지 성공한 쓰기 횟수 (메뉴 생성, 업서트, 매핑 저장, 이력)
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// QueryCalls QuerySalesRange 호출 횟수
func (s *MemoryStore) QueryCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryCalls
}

// AddMenu 시드 데이터용
func (s *MemoryStore) AddMenu(m model.Menu) {
	s.mu.Lock()
	defer s.mu.Unlock()
	menu := m
	s.menus[m.MenuID] = &menu
}

// FindMenuByName 없으면 nil, nil
func (s *MemoryStore) FindMenuByName(_ context.Context, branchID, name string) (*model.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(branchID, name), nil
}

func (s *MemoryStore) findLocked(branchID, name string) *model.Menu {
	for _, m := range s.menus {
		if m.BranchID == branchID && m.MenuName == name {
			menu := *m
			return &menu
		}
	}
	return nil
}

// CreateMenu 같은 지점에 같은 이름이 있으면 기존 메뉴를 돌려준다
func (s *MemoryStore) CreateMenu(_ context.Context, m model.Menu) (*model.Menu, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.findLocked(m.BranchID, m.MenuName); existing != nil {
		return existing, false, nil
	}
	if _, taken := s.menus[m.MenuID]; taken {
		return nil, false, fmt.Errorf("%w: %s", model.ErrMenuIDTaken, m.MenuID)
	}

	menu := m
	s.menus[m.MenuID] = &menu
	s.writes++
	out := menu
	return &out, true, nil
}

// GetMenuPrice 메뉴 가격
func (s *MemoryStore) GetMenuPrice(_ context.Context, menuID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.menus[menuID]
	if !ok {
		return 0, errors.New("menu not found")
	}
	return m.Price, nil
}

// NextMenuID 숫자 기준 최대 ID + 1
func (s *MemoryStore) NextMenuID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	highest := 0
	for id := range s.menus {
		if !strings.HasPrefix(id, "M") {
			continue
		}
		n, err := strconv.Atoi(id[1:])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("M%03d", highest+1), nil
}

// ListMenuIDsByName 지점 메뉴명 → 메뉴ID
func (s *MemoryStore) ListMenuIDsByName(_ context.Context, branchID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string)
	for _, m := range s.menus {
		if m.BranchID == branchID {
			out[m.MenuName] = m.MenuID
		}
	}
	return out, nil
}

// ListMenus 지점 메뉴 (메뉴ID 순)
func (s *MemoryStore) ListMenus(_ context.Context, branchID string) ([]model.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Menu, 0)
	for _, m := range s.menus {
		if m.BranchID == branchID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MenuID < out[j].MenuID })
	return out, nil
}

func saleKey(soldAt, menuID, branchID string) string {
	return parser.RecordKey(soldAt, menuID) + "_" + branchID
}

// QuerySalesRange 양 끝 포함
func (s *MemoryStore) QuerySalesRange(_ context.Context, branchID, start, end string) ([]model.ExistingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queryCalls++
	if s.failQuery != nil {
		return nil, s.failQuery
	}

	var out []model.ExistingRecord
	for _, rec := range s.sales {
		if rec.BranchID == branchID && rec.SoldAt >= start && rec.SoldAt <= end {
			out = append(out, model.ExistingRecord{SoldAt: rec.SoldAt, MenuID: rec.MenuID})
		}
	}
	return out, nil
}

// UpsertSale (sold_at, menu_id, branch_id) 기준 덮어쓰기. sold_at 은 정규화해 저장한다.
func (s *MemoryStore) UpsertSale(_ context.Context, rec model.SalesRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsertCalls++
	if err, ok := s.failUpsert[s.upsertCalls]; ok {
		return err
	}

	rec.SoldAt = parser.NormalizeTimestamp(rec.SoldAt)
	s.sales[saleKey(rec.SoldAt, rec.MenuID, rec.BranchID)] = rec
	s.writes++
	return nil
}

// Sales 저장된 판매 기록 전체 (판매시각, 메뉴ID 순)
func (s *MemoryStore) Sales() []model.SalesRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SalesRecord, 0, len(s.sales))
	for _, rec := range s.sales {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SoldAt != out[j].SoldAt {
			return out[i].SoldAt < out[j].SoldAt
		}
		return out[i].MenuID < out[j].MenuID
	})
	return out
}

// GetMapping 없으면 nil, nil
func (s *MemoryStore) GetMapping(_ context.Context, branchID string) (*model.ColumnMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.mappings[branchID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// SaveMapping 지점 매핑 저장
func (s *MemoryStore) SaveMapping(_ context.Context, branchID string, m model.ColumnMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[branchID] = m
	s.writes++
	return nil
}

// CreateUploadLog 이력 추가
func (s *MemoryStore) CreateUploadLog(_ context.Context, log model.UploadLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	s.writes++
	return nil
}

// ListUploadLogs 최신순
func (s *MemoryStore) ListUploadLogs(_ context.Context, branchID string, limit int) ([]model.UploadLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.UploadLog, 0)
	for i := len(s.logs) - 1; i >= 0; i-- {
		if branchID != "" && s.logs[i].BranchID != branchID {
			continue
		}
		out = append(out, s.logs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
