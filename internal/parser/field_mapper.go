package parser

import (
	"fmt"
	"strings"

	"salesdesk/internal/model"
)

// fieldRule 필드 판별 규칙 (우선순위 순으로 평가)
type fieldRule struct {
	field    Field
	keywords []string
	excludes []string
}

func (r fieldRule) match(normalized string) bool {
	return ContainsAny(normalized, r.keywords) && !ContainsAny(normalized, r.excludes)
}

// fieldRules 헤더 키워드 규칙. 순서가 곧 우선순위이다.
// 키워드는 NormalizeColumnName 결과(소문자, 공백 제거)와 비교한다.
var fieldRules = []fieldRule{
	{field: FieldDate, keywords: []string{"일시", "날짜", "date", "sold", "time"}},
	{field: FieldMenuName, keywords: []string{"메뉴", "menu", "상품", "품목", "product", "item"}, excludes: []string{"id"}},
	{field: FieldQuantity, keywords: []string{"수량", "qty", "quantity", "count"}},
	{field: FieldPrice, keywords: []string{"단가", "price", "가격"}, excludes: []string{"총"}},
	{field: FieldTotal, keywords: []string{"총액", "total", "합계", "amount"}},
	{field: FieldTransactionID, keywords: []string{"거래", "주문", "transaction", "order", "receipt", "영수증"}},
}

// DetectMapping 헤더 키워드로 매핑을 추정한다
// 헤더마다 규칙을 우선순위대로 시험해 아직 비어 있는 첫 필드에 배정하며,
// 한 번 배정된 필드는 뒤에 오는 헤더가 덮어쓰지 않는다.
func DetectMapping(headers []string) model.ColumnMapping {
	var mapping model.ColumnMapping
	assigned := make(map[Field]bool, len(fieldRules))

	for _, header := range headers {
		normalized := NormalizeColumnName(header)
		if normalized == "" {
			continue
		}
		for _, rule := range fieldRules {
			if assigned[rule.field] || !rule.match(normalized) {
				continue
			}
			SetColumn(&mapping, rule.field, header)
			assigned[rule.field] = true
			break
		}
	}

	return mapping
}

// MergeMapping 지점에 저장된 매핑을 현재 헤더에 맞춰 재사용한다
// 저장된 컬럼명이 헤더에 그대로 존재하는 필드만 유지하고 나머지는 자동 추정값으로 채운다.
func MergeMapping(saved *model.ColumnMapping, headers []string) model.ColumnMapping {
	detected := DetectMapping(headers)
	if saved == nil {
		return detected
	}

	present := headerSet(headers)
	merged := detected
	for _, rule := range fieldRules {
		col := Column(*saved, rule.field)
		if col != "" && present[col] {
			SetColumn(&merged, rule.field, col)
		}
	}
	return merged
}

// MissingFields 필수 필드 중 비어 있거나 헤더에 없는 필드
func MissingFields(m model.ColumnMapping, headers []string) []Field {
	present := headerSet(headers)
	var missing []Field
	for _, f := range RequiredFields {
		col := Column(m, f)
		if col == "" || !present[col] {
			missing = append(missing, f)
		}
	}
	return missing
}

// IsComplete 필수 3개 필드가 모두 실제 헤더를 가리키는지
func IsComplete(m model.ColumnMapping, headers []string) bool {
	return len(MissingFields(m, headers)) == 0
}

// ValidateMapping 확정 전 검증. 불완전하면 ErrIncompleteMapping 을 감싼 오류를 반환한다.
func ValidateMapping(m model.ColumnMapping, headers []string) error {
	missing := MissingFields(m, headers)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	return fmt.Errorf("%w: missing %s", ErrIncompleteMapping, strings.Join(names, ", "))
}

func headerSet(headers []string) map[string]bool {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		if h != "" {
			set[h] = true
		}
	}
	return set
}
