package importer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"salesdesk/internal/model"
	memstore "salesdesk/internal/service/store"
)

func TestMenuResolver_CachesWithinBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.NewMemoryStore()
	r := NewMenuResolver(st, "b1")

	id1, created1, err := r.Resolve(ctx, "신메뉴", 3000)
	if err != nil || !created1 || id1 != "M001" {
		t.Fatalf("first id=%s created=%v err=%v", id1, created1, err)
	}
	id2, created2, err := r.Resolve(ctx, "신메뉴", 9999)
	if err != nil || created2 || id2 != id1 {
		t.Fatalf("second id=%s created=%v err=%v", id2, created2, err)
	}

	price, err := r.Price(ctx, id1)
	if err != nil || price != 3000 {
		t.Fatalf("price=%d err=%v", price, err)
	}
	if st.Writes() != 1 {
		t.Fatalf("writes=%d want=1", st.Writes())
	}
}

func TestMenuResolver_FindsExisting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.NewMemoryStore()
	st.AddMenu(model.Menu{MenuID: "M007", MenuName: "라떼", BranchID: "b1", Price: 4000})

	id, created, err := NewMenuResolver(st, "b1").Resolve(ctx, "라떼", 0)
	if err != nil || created || id != "M007" {
		t.Fatalf("id=%s created=%v err=%v", id, created, err)
	}
	id, created, _ = NewMenuResolver(st, "b1").Resolve(ctx, "모카", 0)
	if !created || id != "M008" {
		t.Fatalf("next id=%s created=%v", id, created)
	}
}

func TestMenuResolver_ConcurrentBatchesShareOneMenu(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.NewMemoryStore()
	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, _, err := NewMenuResolver(st, "b1").Resolve(ctx, "한정메뉴", 0)
			if err != nil {
				t.Errorf("resolve: %v", err)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		if id != ids[0] {
			t.Fatalf("batch %d got=%s want=%s", i, id, ids[0])
		}
	}
	if menus, _ := st.ListMenus(ctx, "b1"); len(menus) != 1 {
		t.Fatalf("menus=%+v", menus)
	}
}

// staleIDStore 다른 프로세스가 먼저 발급한 상황: 첫 NextMenuID 가 이미 쓰인 ID 를 준다
type staleIDStore struct {
	*memstore.MemoryStore
	stale []string
}

func (s *staleIDStore) NextMenuID(ctx context.Context) (string, error) {
	if len(s.stale) > 0 {
		id := s.stale[0]
		s.stale = s.stale[1:]
		return id, nil
	}
	return s.MemoryStore.NextMenuID(ctx)
}

func TestMenuResolver_RetriesTakenMenuID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mem := memstore.NewMemoryStore()
	mem.AddMenu(model.Menu{MenuID: "M001", MenuName: "라떼", BranchID: "other", Price: 4000})
	st := &staleIDStore{MemoryStore: mem, stale: []string{"M001"}}

	id, created, err := NewMenuResolver(st, "b1").Resolve(ctx, "신메뉴", 3000)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !created || id != "M002" {
		t.Fatalf("id=%s created=%v want M002 created", id, created)
	}
}

func TestMenuResolver_GivesUpAfterRepeatedConflicts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mem := memstore.NewMemoryStore()
	mem.AddMenu(model.Menu{MenuID: "M001", MenuName: "라떼", BranchID: "other"})
	st := &staleIDStore{MemoryStore: mem, stale: []string{"M001", "M001", "M001", "M001", "M001"}}

	_, _, err := NewMenuResolver(st, "b1").Resolve(ctx, "신메뉴", 0)
	if !errors.Is(err, model.ErrMenuIDTaken) {
		t.Fatalf("want ErrMenuIDTaken, got %v", err)
	}
}
