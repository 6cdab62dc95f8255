package parser

import (
	"errors"
	"testing"

	"salesdesk/internal/model"
)

func TestDetectMapping_Korean(t *testing.T) {
	t.Parallel()

	got := DetectMapping([]string{"판매일시", "메뉴명", "수량", "단가", "총액", "주문번호"})
	want := model.ColumnMapping{
		DateColumn:          "판매일시",
		MenuNameColumn:      "메뉴명",
		QuantityColumn:      "수량",
		PriceColumn:         "단가",
		TotalColumn:         "총액",
		TransactionIDColumn: "주문번호",
	}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestDetectMapping_English(t *testing.T) {
	t.Parallel()

	got := DetectMapping([]string{"Date", "Menu Item", "Qty", "Unit Price", "Total Amount", "Order ID"})
	want := model.ColumnMapping{
		DateColumn:          "Date",
		MenuNameColumn:      "Menu Item",
		QuantityColumn:      "Qty",
		PriceColumn:         "Unit Price",
		TotalColumn:         "Total Amount",
		TransactionIDColumn: "Order ID",
	}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestDetectMapping_MenuIDIsNeverMenuName(t *testing.T) {
	t.Parallel()

	got := DetectMapping([]string{"메뉴ID", "메뉴명"})
	if got.MenuNameColumn != "메뉴명" {
		t.Fatalf("menu name column=%q", got.MenuNameColumn)
	}
}

func TestDetectMapping_TotalPriceIsNeverPrice(t *testing.T) {
	t.Parallel()

	got := DetectMapping([]string{"총가격", "가격"})
	if got.PriceColumn != "가격" {
		t.Fatalf("price column=%q", got.PriceColumn)
	}
	if got.TotalColumn != "" {
		t.Fatalf("total column=%q", got.TotalColumn)
	}
}

func TestDetectMapping_FirstMatchPerCategoryWins(t *testing.T) {
	t.Parallel()

	got := DetectMapping([]string{"날짜", "일시", "수량"})
	if got.DateColumn != "날짜" {
		t.Fatalf("date column=%q", got.DateColumn)
	}
}

func TestDetectMapping_FallsThroughAssignedCategory(t *testing.T) {
	t.Parallel()

	// "Sold Quantity" 는 date 키워드(sold)에도 걸리지만 date 는 이미 배정됨
	got := DetectMapping([]string{"Date", "Sold Quantity", "Product"})
	if got.QuantityColumn != "Sold Quantity" {
		t.Fatalf("quantity column=%q", got.QuantityColumn)
	}
	if got.MenuNameColumn != "Product" {
		t.Fatalf("menu column=%q", got.MenuNameColumn)
	}
}

func TestDetectMapping_PriorityWithinHeader(t *testing.T) {
	t.Parallel()

	got := DetectMapping([]string{"Item Count", "Qty"})
	if got.MenuNameColumn != "Item Count" || got.QuantityColumn != "Qty" {
		t.Fatalf("got=%+v", got)
	}
}

func TestMergeMapping_PrefersSavedColumnsThatStillExist(t *testing.T) {
	t.Parallel()

	saved := &model.ColumnMapping{
		DateColumn:     "판매일시",
		MenuNameColumn: "품명",
		QuantityColumn: "판매수",
		PriceColumn:    "예전단가",
	}
	headers := []string{"판매일시", "품명", "판매수", "단가"}

	got := MergeMapping(saved, headers)
	if got.MenuNameColumn != "품명" || got.QuantityColumn != "판매수" {
		t.Fatalf("saved columns not reused: %+v", got)
	}
	if got.PriceColumn != "단가" {
		t.Fatalf("renamed column should fall back to detection, got=%q", got.PriceColumn)
	}
	if !IsComplete(got, headers) {
		t.Fatalf("expected complete: %+v", got)
	}
}

func TestMergeMapping_NilSaved(t *testing.T) {
	t.Parallel()

	headers := []string{"date", "menu", "qty"}
	if got := MergeMapping(nil, headers); got != DetectMapping(headers) {
		t.Fatalf("got=%+v", got)
	}
}

func TestValidateMapping(t *testing.T) {
	t.Parallel()

	headers := []string{"일시", "메뉴", "수량"}
	ok := model.ColumnMapping{DateColumn: "일시", MenuNameColumn: "메뉴", QuantityColumn: "수량"}
	if err := ValidateMapping(ok, headers); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	missingQty := model.ColumnMapping{DateColumn: "일시", MenuNameColumn: "메뉴"}
	if err := ValidateMapping(missingQty, headers); !errors.Is(err, ErrIncompleteMapping) {
		t.Fatalf("want ErrIncompleteMapping, got %v", err)
	}

	// 헤더에 없는 컬럼명은 미설정과 같다
	stale := model.ColumnMapping{DateColumn: "일시", MenuNameColumn: "메뉴", QuantityColumn: "Qty"}
	missing := MissingFields(stale, headers)
	if len(missing) != 1 || missing[0] != FieldQuantity {
		t.Fatalf("missing=%v", missing)
	}
}
