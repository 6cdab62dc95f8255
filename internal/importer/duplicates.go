package importer

import (
	"context"
	"fmt"

	"salesdesk/internal/model"
	"salesdesk/internal/parser"
)

// dateRange 유효 행들의 최소/최대 날짜. 날짜가 하나도 없으면 ok=false.
func dateRange(rows []model.CanonicalSalesRow) (minDate, maxDate string, ok bool) {
	for _, r := range rows {
		d := parser.DatePart(r.SoldAt)
		if d == "" {
			continue
		}
		if !ok || d < minDate {
			minDate = d
		}
		if !ok || d > maxDate {
			maxDate = d
		}
		ok = true
	}
	return minDate, maxDate, ok
}

// existingKeys 배치 날짜 범위의 기존 판매 키 집합을 한 번의 범위 조회로 만든다
func existingKeys(ctx context.Context, sales SalesStore, branchID string, rows []model.CanonicalSalesRow) (map[string]bool, error) {
	keys := make(map[string]bool)
	minDate, maxDate, ok := dateRange(rows)
	if !ok {
		return keys, nil
	}

	start, end := parser.DayRange(minDate, maxDate)
	records, err := sales.QuerySalesRange(ctx, branchID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing sales: %w", err)
	}
	for _, rec := range records {
		keys[parser.RecordKey(rec.SoldAt, rec.MenuID)] = true
	}
	return keys, nil
}

// CheckDuplicates 커밋 전 사전 점검. 저장소에 아무것도 쓰지 않는다.
// 아직 없는 메뉴를 가리키는 행은 충돌할 수 없으므로 항상 신규로 센다.
func CheckDuplicates(ctx context.Context, menus MenuStore, sales SalesStore, branchID string, rows []model.CanonicalSalesRow) (model.DuplicateReport, error) {
	valid := parser.ValidRows(rows)
	report := model.DuplicateReport{Total: len(valid)}
	if len(valid) == 0 {
		return report, nil
	}

	if _, _, ok := dateRange(valid); !ok {
		report.NewRecords = report.Total
		return report, nil
	}

	keys, err := existingKeys(ctx, sales, branchID, valid)
	if err != nil {
		return model.DuplicateReport{}, err
	}

	menuIDs, err := menus.ListMenuIDsByName(ctx, branchID)
	if err != nil {
		return model.DuplicateReport{}, fmt.Errorf("failed to list menus: %w", err)
	}

	for _, r := range valid {
		id, ok := menuIDs[r.MenuName]
		if ok && keys[parser.RecordKey(r.SoldAt, id)] {
			report.Duplicates++
		} else {
			report.NewRecords++
		}
	}
	return report, nil
}
