package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"salesdesk/internal/importer"
	"salesdesk/internal/model"
	"salesdesk/internal/parser"
	memstore "salesdesk/internal/service/store"
)

const posCSV = "판매시점,메뉴명,판매량\n" +
	"2025-01-02 10:00:00,아메리카노,2\n" +
	"2025-01-02 11:00:00,라떼,1\n"

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pos.csv")
	if err := os.WriteFile(path, []byte(posCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func qtyOverride() columnOverrides {
	qty := "판매량"
	date := "판매시점"
	return columnOverrides{parser.FieldQuantity: &qty, parser.FieldDate: &date}
}

func TestRunCheck_DoesNotWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.NewMemoryStore()
	saved := model.ColumnMapping{DateColumn: "일시", MenuNameColumn: "메뉴", QuantityColumn: "수량"}
	if err := st.SaveMapping(ctx, "b1", saved); err != nil {
		t.Fatalf("seed mapping: %v", err)
	}
	writes := st.Writes()
	coordinator := importer.NewCoordinator(st, parser.ReadOptions{}, zerolog.Nop())

	b, err := prepareBatch(ctx, coordinator, "b1", writeCSV(t), qtyOverride())
	if err != nil {
		t.Fatalf("prepareBatch: %v", err)
	}
	report, err := runCheck(ctx, coordinator, b)
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if want := (model.DuplicateReport{Total: 2, Duplicates: 0, NewRecords: 2}); report != want {
		t.Fatalf("report got=%+v want=%+v", report, want)
	}
	if st.Writes() != writes {
		t.Fatalf("check wrote %d times", st.Writes()-writes)
	}
	if got, _ := st.GetMapping(ctx, "b1"); got == nil || *got != saved {
		t.Fatalf("saved mapping changed: %+v", got)
	}
}

func TestRunCommit_SavesMapping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.NewMemoryStore()
	coordinator := importer.NewCoordinator(st, parser.ReadOptions{}, zerolog.Nop())

	b, err := prepareBatch(ctx, coordinator, "b1", writeCSV(t), qtyOverride())
	if err != nil {
		t.Fatalf("prepareBatch: %v", err)
	}
	result, err := runCommit(ctx, coordinator, b)
	if err != nil {
		t.Fatalf("runCommit: %v", err)
	}
	if !result.Success || result.Inserted != 2 || result.MenusCreated != 2 {
		t.Fatalf("result=%+v", result)
	}
	want := model.ColumnMapping{DateColumn: "판매시점", MenuNameColumn: "메뉴명", QuantityColumn: "판매량"}
	if got, _ := st.GetMapping(ctx, "b1"); got == nil || *got != want {
		t.Fatalf("mapping got=%+v want=%+v", got, want)
	}
}
