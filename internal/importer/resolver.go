package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"salesdesk/internal/model"
)

// menuCreateMu 다음 ID 발급과 생성 사이를 직렬화한다 (동시 업로드 간 ID 충돌 방지)
var menuCreateMu sync.Mutex

// MenuResolver 배치 단위 메뉴 find-or-create
// 같은 배치 안에서 한 번 해석된 메뉴명은 캐시에서 바로 돌려준다.
type MenuResolver struct {
	store    MenuStore
	branchID string
	byName   map[string]string
	prices   map[string]int
}

// NewMenuResolver 배치마다 하나씩 만든다
func NewMenuResolver(store MenuStore, branchID string) *MenuResolver {
	return &MenuResolver{
		store:    store,
		branchID: branchID,
		byName:   make(map[string]string),
		prices:   make(map[string]int),
	}
}

// Resolve 메뉴명을 메뉴ID 로 해석하고, 없으면 fallbackPrice 로 새로 만든다
func (r *MenuResolver) Resolve(ctx context.Context, name string, fallbackPrice int) (string, bool, error) {
	if id, ok := r.byName[name]; ok {
		return id, false, nil
	}

	menu, err := r.store.FindMenuByName(ctx, r.branchID, name)
	if err != nil {
		return "", false, fmt.Errorf("failed to find menu: %w", err)
	}
	if menu != nil {
		r.remember(menu)
		return menu.MenuID, false, nil
	}

	menu, created, err := r.create(ctx, name, fallbackPrice)
	if err != nil {
		return "", false, err
	}
	r.remember(menu)
	return menu.MenuID, created, nil
}

// maxIDAttempts 다른 프로세스가 같은 ID 를 먼저 쓴 경우 다시 발급받는 횟수
const maxIDAttempts = 5

func (r *MenuResolver) create(ctx context.Context, name string, price int) (*model.Menu, bool, error) {
	menuCreateMu.Lock()
	defer menuCreateMu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := r.store.NextMenuID(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("failed to allocate menu id: %w", err)
		}

		menu, created, err := r.store.CreateMenu(ctx, model.Menu{
			MenuID:   id,
			MenuName: name,
			Price:    price,
			BranchID: r.branchID,
		})
		if errors.Is(err, model.ErrMenuIDTaken) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to create menu: %w", err)
		}
		return menu, created, nil
	}
	return nil, false, fmt.Errorf("failed to create menu: %w", lastErr)
}

func (r *MenuResolver) remember(menu *model.Menu) {
	r.byName[menu.MenuName] = menu.MenuID
	r.prices[menu.MenuID] = menu.Price
}

// Price 메뉴에 저장된 가격. 배치 안에서 처음 보는 ID 만 저장소를 조회한다.
func (r *MenuResolver) Price(ctx context.Context, menuID string) (int, error) {
	if p, ok := r.prices[menuID]; ok {
		return p, nil
	}
	p, err := r.store.GetMenuPrice(ctx, menuID)
	if err != nil {
		return 0, fmt.Errorf("failed to get menu price: %w", err)
	}
	r.prices[menuID] = p
	return p, nil
}
