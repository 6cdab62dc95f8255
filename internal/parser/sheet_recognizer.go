package parser

// HeaderRecognition 헤더 행 판별 결과
type HeaderRecognition struct {
	SheetName   string  `json:"sheetName"`
	HeaderRowNo int     `json:"headerRowNo"` // 0 이면 찾지 못함
	Confidence  float64 `json:"confidence"`
	Complete    bool    `json:"complete"`
}

// SheetRecognizer 시트 상단 몇 행을 훑어 헤더 행을 찾는다
type SheetRecognizer struct {
	scanRows int
}

// NewSheetRecognizer scanRows 가 0 이하이면 기본값 10
func NewSheetRecognizer(scanRows int) *SheetRecognizer {
	if scanRows <= 0 {
		scanRows = 10
	}
	return &SheetRecognizer{scanRows: scanRows}
}

// Recognize 자동 매핑이 완전해지는 첫 행을 헤더로 본다.
// 완전한 행이 없으면 가장 많은 필드가 잡힌 행을 낮은 신뢰도로 돌려준다.
func (r *SheetRecognizer) Recognize(sheetName string, rows [][]string) HeaderRecognition {
	best := HeaderRecognition{SheetName: sheetName}

	limit := r.scanRows
	if limit > len(rows) {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		headers := CleanHeaders(rows[i])
		mapping := DetectMapping(headers)

		matched := 0
		for _, rule := range fieldRules {
			if Column(mapping, rule.field) != "" {
				matched++
			}
		}
		confidence := float64(matched) / float64(len(fieldRules))

		if IsComplete(mapping, headers) {
			return HeaderRecognition{
				SheetName:   sheetName,
				HeaderRowNo: i + 1,
				Confidence:  0.5 + confidence/2,
				Complete:    true,
			}
		}
		if matched > 0 && confidence/2 > best.Confidence {
			best.HeaderRowNo = i + 1
			best.Confidence = confidence / 2
		}
	}

	return best
}

// LocateHeader 헤더 행을 찾아 Sheet 로 자른다. 아무 필드도 잡히지 않으면 첫 행을 헤더로 쓴다.
func LocateHeader(sheetName string, rows [][]string, scanRows int) (*Sheet, HeaderRecognition, error) {
	if len(rows) == 0 {
		return nil, HeaderRecognition{SheetName: sheetName}, ErrNoHeaderRow
	}

	rec := NewSheetRecognizer(scanRows).Recognize(sheetName, rows)
	headerRowNo := rec.HeaderRowNo
	if headerRowNo == 0 {
		headerRowNo = 1
	}

	return &Sheet{
		Name:        sheetName,
		Headers:     CleanHeaders(rows[headerRowNo-1]),
		Rows:        rows[headerRowNo:],
		HeaderRowNo: headerRowNo,
	}, rec, nil
}
