package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"salesdesk/internal/model"
	"salesdesk/internal/parser"
)

// columnOverrides 명령행에서 지정한 컬럼명. 빈 값은 자동 추정 유지.
type columnOverrides map[parser.Field]*string

var overrideFlags = []struct {
	field parser.Field
	name  string
	usage string
}{
	{parser.FieldDate, "date-col", "판매일시 컬럼"},
	{parser.FieldMenuName, "menu-col", "메뉴명 컬럼"},
	{parser.FieldQuantity, "qty-col", "수량 컬럼"},
	{parser.FieldPrice, "price-col", "단가 컬럼"},
	{parser.FieldTotal, "total-col", "합계 컬럼"},
	{parser.FieldTransactionID, "tx-col", "거래번호 컬럼"},
}

func (o *columnOverrides) bind(fs *pflag.FlagSet) {
	if *o == nil {
		*o = make(columnOverrides, len(overrideFlags))
	}
	for _, f := range overrideFlags {
		(*o)[f.field] = fs.String(f.name, "", f.usage)
	}
}

// apply 지정된 컬럼을 매핑에 덮어쓴다. 헤더에 없는 컬럼명은 오류.
func (o columnOverrides) apply(m model.ColumnMapping, headers []string) (model.ColumnMapping, error) {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	for _, f := range overrideFlags {
		v, ok := o[f.field]
		if !ok || v == nil {
			continue
		}
		col := strings.TrimSpace(*v)
		if col == "" {
			continue
		}
		if !present[col] {
			return m, fmt.Errorf("--%s: column %q not found (headers: %s)", f.name, col, strings.Join(headers, ", "))
		}
		parser.SetColumn(&m, f.field, col)
	}
	return m, nil
}
