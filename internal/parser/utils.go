package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName 헤더 비교용 정규화: 공백 제거 + 소문자
func NormalizeColumnName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
	name = whitespaceRe.ReplaceAllString(name, "")
	return strings.ToLower(name)
}

// CleanHeaders 헤더 원문 정리 (앞뒤 공백, BOM)
func CleanHeaders(row []string) []string {
	headers := make([]string, len(row))
	for i, col := range row {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}
	return headers
}

// ContainsAny 키워드 중 하나라도 포함하는지
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var amountReplacer = strings.NewReplacer(",", "", "₩", "", "원", "", " ", "", "\u00a0", "")

// ParseAmount 수량/금액 문자열을 정수로 변환
// "3,500" / "₩3,500" / "3500원" / "3.0" 을 허용하며 소수점 이하는 버린다.
func ParseAmount(value string) (int, bool) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(value))
	if cleaned == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	return int(d.IntPart()), true
}

// ParseOptionalAmount 값이 없거나 해석할 수 없으면 nil (0 과 구분)
func ParseOptionalAmount(value string) *int {
	n, ok := ParseAmount(value)
	if !ok {
		return nil
	}
	return &n
}

// isBlankRow 모든 셀이 비어 있는 행
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
