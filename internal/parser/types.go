package parser

import (
	"errors"

	"salesdesk/internal/model"
)

// Field 매핑 대상 필드
type Field string

const (
	FieldDate          Field = "date"
	FieldMenuName      Field = "menu_name"
	FieldQuantity      Field = "quantity"
	FieldPrice         Field = "price"
	FieldTotal         Field = "total"
	FieldTransactionID Field = "transaction_id"
)

// RequiredFields 확정 가능한 매핑이 반드시 채워야 하는 필드
var RequiredFields = []Field{FieldDate, FieldMenuName, FieldQuantity}

var (
	ErrIncompleteMapping = errors.New("column mapping is incomplete")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoHeaderRow       = errors.New("no header row found")
	ErrTooManyRows       = errors.New("row limit exceeded")
)

// 행 검증 오류 메시지
const (
	ErrMsgMissingSoldAt   = "missing sale timestamp"
	ErrMsgMissingMenuName = "missing menu name"
	ErrMsgInvalidQuantity = "invalid quantity"
)

// Sheet 읽어 들인 시트 (헤더 + 데이터 행)
type Sheet struct {
	Name        string     `json:"name"`
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"-"`
	HeaderRowNo int        `json:"headerRowNo"` // 헤더가 위치한 행 번호 (1부터)
}

// FirstDataRowNo 첫 데이터 행의 행 번호
func (s *Sheet) FirstDataRowNo() int {
	return s.HeaderRowNo + 1
}

// Column 필드에 매핑된 컬럼명
func Column(m model.ColumnMapping, f Field) string {
	switch f {
	case FieldDate:
		return m.DateColumn
	case FieldMenuName:
		return m.MenuNameColumn
	case FieldQuantity:
		return m.QuantityColumn
	case FieldPrice:
		return m.PriceColumn
	case FieldTotal:
		return m.TotalColumn
	case FieldTransactionID:
		return m.TransactionIDColumn
	}
	return ""
}

// SetColumn 필드에 컬럼명을 지정
func SetColumn(m *model.ColumnMapping, f Field, column string) {
	switch f {
	case FieldDate:
		m.DateColumn = column
	case FieldMenuName:
		m.MenuNameColumn = column
	case FieldQuantity:
		m.QuantityColumn = column
	case FieldPrice:
		m.PriceColumn = column
	case FieldTotal:
		m.TotalColumn = column
	case FieldTransactionID:
		m.TransactionIDColumn = column
	}
}
