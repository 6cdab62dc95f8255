package importer

import (
	"context"
	"testing"

	"salesdesk/internal/model"
	memstore "salesdesk/internal/service/store"
)

func TestCheckDuplicates_DryRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.NewMemoryStore()
	st.AddMenu(model.Menu{MenuID: "M001", MenuName: "라떼", BranchID: "b1", Price: 4000})
	_ = st.UpsertSale(ctx, model.SalesRecord{SoldAt: "2025-01-02T14:30:25.000+00:00", MenuID: "M001", BranchID: "b1", SalesCount: 1})
	writes := st.Writes()

	report, err := CheckDuplicates(ctx, st, st, "b1", []model.CanonicalSalesRow{
		validRow(2, "2025-01-02 14:30:25", "라떼", 1, nil),
	})
	if err != nil {
		t.Fatalf("CheckDuplicates: %v", err)
	}
	want := model.DuplicateReport{Total: 1, Duplicates: 1, NewRecords: 0}
	if report != want {
		t.Fatalf("got=%+v want=%+v", report, want)
	}
	if st.Writes() != writes {
		t.Fatalf("dry run wrote %d times", st.Writes()-writes)
	}
}

func TestCheckDuplicates_UnknownMenuIsAlwaysNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.NewMemoryStore()
	st.AddMenu(model.Menu{MenuID: "M001", MenuName: "라떼", BranchID: "b1"})
	_ = st.UpsertSale(ctx, model.SalesRecord{SoldAt: "2025-01-02 10:00:00", MenuID: "M001", BranchID: "b1"})

	report, err := CheckDuplicates(ctx, st, st, "b1", []model.CanonicalSalesRow{
		validRow(2, "2025-01-02 10:00:00", "라떼", 1, nil),
		validRow(3, "2025-01-02 10:00:00", "신메뉴", 1, nil),
		validRow(4, "2025-01-03 10:00:00", "라떼", 1, nil),
		{RowNo: 5, SoldAt: "2025-01-02 10:00:00", Error: "missing menu name"},
	})
	if err != nil {
		t.Fatalf("CheckDuplicates: %v", err)
	}
	want := model.DuplicateReport{Total: 3, Duplicates: 1, NewRecords: 2}
	if report != want {
		t.Fatalf("got=%+v want=%+v", report, want)
	}
	if menus, _ := st.ListMenus(ctx, "b1"); len(menus) != 1 {
		t.Fatalf("dry run created menus: %+v", menus)
	}
}

func TestCheckDuplicates_OtherBranchDoesNotCollide(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.NewMemoryStore()
	st.AddMenu(model.Menu{MenuID: "M001", MenuName: "라떼", BranchID: "b1"})
	st.AddMenu(model.Menu{MenuID: "M002", MenuName: "라떼", BranchID: "b2"})
	_ = st.UpsertSale(ctx, model.SalesRecord{SoldAt: "2025-01-02 10:00:00", MenuID: "M001", BranchID: "b1"})

	report, _ := CheckDuplicates(ctx, st, st, "b2", []model.CanonicalSalesRow{
		validRow(2, "2025-01-02 10:00:00", "라떼", 1, nil),
	})
	if report.Duplicates != 0 || report.NewRecords != 1 {
		t.Fatalf("report=%+v", report)
	}
}

func TestCheckDuplicates_Empty(t *testing.T) {
	t.Parallel()

	st := memstore.NewMemoryStore()
	report, err := CheckDuplicates(context.Background(), st, st, "b1", nil)
	if err != nil || report != (model.DuplicateReport{}) {
		t.Fatalf("report=%+v err=%v", report, err)
	}
	if st.QueryCalls() != 0 {
		t.Fatalf("query calls=%d", st.QueryCalls())
	}
}

func TestCheckDuplicates_NoDatesSkipsQuery(t *testing.T) {
	t.Parallel()

	st := memstore.NewMemoryStore()
	rows := []model.CanonicalSalesRow{
		{RowNo: 2, MenuName: "라떼", SalesCount: 1, IsValid: true},
		{RowNo: 3, MenuName: "모카", SalesCount: 1, IsValid: true},
	}
	report, err := CheckDuplicates(context.Background(), st, st, "b1", rows)
	if err != nil {
		t.Fatalf("CheckDuplicates: %v", err)
	}
	want := model.DuplicateReport{Total: 2, Duplicates: 0, NewRecords: 2}
	if report != want {
		t.Fatalf("got=%+v want=%+v", report, want)
	}
	if st.QueryCalls() != 0 {
		t.Fatalf("query calls=%d want=0", st.QueryCalls())
	}
}

func TestDateRange(t *testing.T) {
	t.Parallel()

	minDate, maxDate, ok := dateRange([]model.CanonicalSalesRow{
		{SoldAt: "2025-01-05 10:00:00"},
		{SoldAt: "2025-01-02T09:00:00Z"},
		{SoldAt: "2025-01-03"},
	})
	if !ok || minDate != "2025-01-02" || maxDate != "2025-01-05" {
		t.Fatalf("min=%s max=%s ok=%v", minDate, maxDate, ok)
	}
}

func TestCheckDuplicates_DateOnlyStoredValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.NewMemoryStore()
	st.AddMenu(model.Menu{MenuID: "M001", MenuName: "라떼", BranchID: "b1", Price: 4000})
	_ = st.UpsertSale(ctx, model.SalesRecord{SoldAt: "2025-01-02", MenuID: "M001", BranchID: "b1", SalesCount: 12})

	report, err := CheckDuplicates(ctx, st, st, "b1", []model.CanonicalSalesRow{
		validRow(2, "2025-01-02", "라떼", 12, nil),
		validRow(3, "2025-01-03", "라떼", 9, nil),
	})
	if err != nil {
		t.Fatalf("CheckDuplicates: %v", err)
	}
	want := model.DuplicateReport{Total: 2, Duplicates: 1, NewRecords: 1}
	if report != want {
		t.Fatalf("got=%+v want=%+v", report, want)
	}
}
