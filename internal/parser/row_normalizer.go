package parser

import (
	"strings"

	"salesdesk/internal/model"
)

// RowNormalizer 확정된 매핑으로 원본 행을 CanonicalSalesRow 로 변환
type RowNormalizer struct {
	mapping    model.ColumnMapping
	index      map[string]int
	knownMenus map[string]string
}

// NewRowNormalizer knownMenus 는 배치 처리 전에 한 번 떠 둔 메뉴명 스냅샷이다.
func NewRowNormalizer(headers []string, mapping model.ColumnMapping, knownMenus map[string]string) *RowNormalizer {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return &RowNormalizer{
		mapping:    mapping,
		index:      index,
		knownMenus: knownMenus,
	}
}

// cell 필드에 해당하는 셀 값 (매핑 없음/셀 없음 → "")
func (n *RowNormalizer) cell(row []string, f Field) string {
	col := Column(n.mapping, f)
	if col == "" {
		return ""
	}
	idx, ok := n.index[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Normalize 한 행을 정규화한다. 검증은 판매시각 → 메뉴명 → 수량 순으로 첫 실패만 기록한다.
func (n *RowNormalizer) Normalize(row []string, rowNo int) model.CanonicalSalesRow {
	out := model.CanonicalSalesRow{
		RowNo:         rowNo,
		SoldAt:        n.cell(row, FieldDate),
		MenuName:      n.cell(row, FieldMenuName),
		Price:         ParseOptionalAmount(n.cell(row, FieldPrice)),
		TotalSales:    ParseOptionalAmount(n.cell(row, FieldTotal)),
		TransactionID: n.cell(row, FieldTransactionID),
	}

	qty, qtyOK := ParseAmount(n.cell(row, FieldQuantity))
	if qtyOK {
		out.SalesCount = qty
	}

	if out.MenuName != "" {
		_, known := n.knownMenus[out.MenuName]
		out.IsNewMenu = !known
	}

	switch {
	case out.SoldAt == "":
		out.Error = ErrMsgMissingSoldAt
	case out.MenuName == "":
		out.Error = ErrMsgMissingMenuName
	case !qtyOK || qty <= 0:
		out.Error = ErrMsgInvalidQuantity
	default:
		out.IsValid = true
	}

	return out
}

// NormalizeRows 시트 전체를 정규화한다. 완전히 빈 행은 건너뛴다.
func NormalizeRows(sheet *Sheet, mapping model.ColumnMapping, knownMenus map[string]string) []model.CanonicalSalesRow {
	n := NewRowNormalizer(sheet.Headers, mapping, knownMenus)
	out := make([]model.CanonicalSalesRow, 0, len(sheet.Rows))
	for i, row := range sheet.Rows {
		if isBlankRow(row) {
			continue
		}
		out = append(out, n.Normalize(row, sheet.FirstDataRowNo()+i))
	}
	return out
}

// ValidRows is_valid 인 행만 추린다
func ValidRows(rows []model.CanonicalSalesRow) []model.CanonicalSalesRow {
	valid := make([]model.CanonicalSalesRow, 0, len(rows))
	for _, r := range rows {
		if r.IsValid {
			valid = append(valid, r)
		}
	}
	return valid
}

// NewMenuNames 신규 메뉴명 (중복 제거, 등장 순서 유지)
func NewMenuNames(rows []model.CanonicalSalesRow) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range rows {
		if r.IsValid && r.IsNewMenu && !seen[r.MenuName] {
			seen[r.MenuName] = true
			names = append(names, r.MenuName)
		}
	}
	return names
}
