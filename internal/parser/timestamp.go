package parser

import (
	"regexp"
	"strings"
)

var (
	tzOffsetRe = regexp.MustCompile(`[+-]\d{2}:\d{2}$`)
	millisRe   = regexp.MustCompile(`\.\d{3}$`)
)

// NormalizeTimestamp 저장소 타임스탬프를 "YYYY-MM-DD HH:MM:SS" 형태로 정규화
// 입력 예: 2025-01-02T14:30:25.000+00:00 / 2025-01-02T14:30:25Z
// 이미 정규화된 값은 그대로 반환된다.
func NormalizeTimestamp(ts string) string {
	s := strings.Map(func(r rune) rune {
		if r == 'T' || r == 'Z' {
			return ' '
		}
		return r
	}, ts)
	s = strings.TrimSpace(s)
	s = tzOffsetRe.ReplaceAllString(s, "")
	s = millisRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// DatePart 정규화된 타임스탬프의 날짜 부분
func DatePart(ts string) string {
	s := NormalizeTimestamp(ts)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// RecordKey 중복 판정 키: 정규화된 판매시각 + "_" + 메뉴ID
func RecordKey(soldAt, menuID string) string {
	return NormalizeTimestamp(soldAt) + "_" + menuID
}

// DayRange from~to 일자의 판매시각을 모두 포함하는 문자열 범위 (양 끝 포함)
// 하한은 날짜만 저장된 값("2025-01-02")도 포함하도록 시각을 붙이지 않는다.
func DayRange(fromDate, toDate string) (start, end string) {
	return fromDate, toDate + " 23:59:59.999999"
}
