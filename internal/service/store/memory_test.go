package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"salesdesk/internal/model"
)

// TestNextMenuID 빈 카탈로그는 M001, M999 다음은 M1000
func TestNextMenuID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemoryStore()
	if id, _ := s.NextMenuID(ctx); id != "M001" {
		t.Fatalf("empty catalog got=%s want=M001", id)
	}

	s.AddMenu(model.Menu{MenuID: "M999", MenuName: "a", BranchID: "b1"})
	s.AddMenu(model.Menu{MenuID: "M010", MenuName: "b", BranchID: "b1"})
	if id, _ := s.NextMenuID(ctx); id != "M1000" {
		t.Fatalf("got=%s want=M1000", id)
	}
}

// TestCreateMenu_ReturnsExisting 같은 지점/이름은 한 번만 생성
func TestCreateMenu_ReturnsExisting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemoryStore()
	first, created, err := s.CreateMenu(ctx, model.Menu{MenuID: "M001", MenuName: "라떼", BranchID: "b1", Price: 4000})
	if err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}
	second, created, err := s.CreateMenu(ctx, model.Menu{MenuID: "M002", MenuName: "라떼", BranchID: "b1"})
	if err != nil || created {
		t.Fatalf("second create: created=%v err=%v", created, err)
	}
	if second.MenuID != first.MenuID || second.Price != 4000 {
		t.Fatalf("got=%+v want=%+v", second, first)
	}

	// 다른 지점은 별개 메뉴
	if _, created, _ := s.CreateMenu(ctx, model.Menu{MenuID: "M002", MenuName: "라떼", BranchID: "b2"}); !created {
		t.Fatalf("other branch should create")
	}
}

// TestUpsertSale_NormalizesKey ISO 표기와 정규 표기는 같은 행
func TestUpsertSale_NormalizesKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemoryStore()
	_ = s.UpsertSale(ctx, model.SalesRecord{SoldAt: "2025-01-02T14:30:25Z", MenuID: "M001", BranchID: "b1", SalesCount: 1})
	_ = s.UpsertSale(ctx, model.SalesRecord{SoldAt: "2025-01-02 14:30:25", MenuID: "M001", BranchID: "b1", SalesCount: 5})

	sales := s.Sales()
	if len(sales) != 1 || sales[0].SalesCount != 5 {
		t.Fatalf("sales=%+v", sales)
	}

	recs, err := s.QuerySalesRange(ctx, "b1", "2025-01-02 00:00:00", "2025-01-02 23:59:59")
	if err != nil || len(recs) != 1 {
		t.Fatalf("recs=%v err=%v", recs, err)
	}
	if recs, _ := s.QuerySalesRange(ctx, "b2", "2025-01-02 00:00:00", "2025-01-02 23:59:59"); len(recs) != 0 {
		t.Fatalf("other branch leaked: %v", recs)
	}
}

// TestFailUpsertOn n 번째 호출만 실패
func TestFailUpsertOn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemoryStore()
	boom := errors.New("boom")
	s.FailUpsertOn(2, boom)

	for i, ts := range []string{"2025-01-02 10:00:00", "2025-01-02 11:00:00", "2025-01-02 12:00:00"} {
		err := s.UpsertSale(ctx, model.SalesRecord{SoldAt: ts, MenuID: "M001", BranchID: "b1"})
		if (i == 1) != errors.Is(err, boom) {
			t.Fatalf("call %d err=%v", i+1, err)
		}
	}
	if got := len(s.Sales()); got != 2 {
		t.Fatalf("stored=%d want=2", got)
	}
}

// TestConcurrentCreateMenu 동시에 같은 이름을 만들어도 하나만 남는다
func TestConcurrentCreateMenu(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemoryStore()
	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, _, err := s.CreateMenu(ctx, model.Menu{MenuID: "M001", MenuName: "신메뉴", BranchID: "b1"})
			if err == nil {
				ids[i] = m.MenuID
			}
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		if id != "M001" {
			t.Fatalf("goroutine %d got=%q", i, id)
		}
	}
	if menus, _ := s.ListMenus(ctx, "b1"); len(menus) != 1 {
		t.Fatalf("menus=%v", menus)
	}
}

// TestUploadLogs_NewestFirst 지점 필터 + 최신순
func TestUploadLogs_NewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemoryStore()
	_ = s.CreateUploadLog(ctx, model.UploadLog{ID: "1", BranchID: "b1"})
	_ = s.CreateUploadLog(ctx, model.UploadLog{ID: "2", BranchID: "b2"})
	_ = s.CreateUploadLog(ctx, model.UploadLog{ID: "3", BranchID: "b1"})

	logs, _ := s.ListUploadLogs(ctx, "b1", 0)
	if len(logs) != 2 || logs[0].ID != "3" || logs[1].ID != "1" {
		t.Fatalf("logs=%+v", logs)
	}
	if logs, _ := s.ListUploadLogs(ctx, "", 1); len(logs) != 1 || logs[0].ID != "3" {
		t.Fatalf("limit logs=%+v", logs)
	}
}
