package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"salesdesk/internal/importer"
	"salesdesk/internal/model"
	"salesdesk/internal/parser"
	"salesdesk/internal/util"
)

var mappingLabels = []struct {
	field parser.Field
	label string
}{
	{parser.FieldDate, "판매일시"},
	{parser.FieldMenuName, "메뉴명"},
	{parser.FieldQuantity, "수량"},
	{parser.FieldPrice, "단가"},
	{parser.FieldTotal, "합계"},
	{parser.FieldTransactionID, "거래번호"},
}

func printMapping(sheet *parser.Sheet, m model.ColumnMapping) {
	color.Cyan("\n시트 %q (헤더 %d행, 데이터 %d행)", sheet.Name, sheet.HeaderRowNo, len(sheet.Rows))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"필드", "컬럼"})
	for _, l := range mappingLabels {
		col := parser.Column(m, l.field)
		if col == "" {
			col = "-"
		}
		table.Append([]string{l.label, col})
	}
	table.Render()

	if missing := parser.MissingFields(m, sheet.Headers); len(missing) > 0 {
		color.Red("필수 컬럼 누락: %v", missing)
	}
}

func printInvalidRows(rows []model.CanonicalSalesRow) {
	var invalid [][]string
	for _, r := range rows {
		if !r.IsValid {
			invalid = append(invalid, []string{strconv.Itoa(r.RowNo), r.SoldAt, r.MenuName, r.Error})
		}
	}
	if len(invalid) == 0 {
		return
	}

	color.Yellow("\n제외되는 행 %d건", len(invalid))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"행", "판매일시", "메뉴", "사유"})
	table.AppendBulk(invalid)
	table.Render()
}

func printDuplicateReport(report model.DuplicateReport, prepared *importer.Prepared) {
	color.Cyan("\n중복 점검")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"항목", "건수"})
	table.Append([]string{"유효 행", strconv.Itoa(report.Total)})
	table.Append([]string{"기존과 중복", strconv.Itoa(report.Duplicates)})
	table.Append([]string{"신규", strconv.Itoa(report.NewRecords)})
	table.Append([]string{"제외 행", strconv.Itoa(prepared.InvalidCount)})
	table.Append([]string{"새 메뉴", strconv.Itoa(len(prepared.NewMenus))})
	table.Render()

	if len(prepared.NewMenus) > 0 {
		fmt.Printf("새 메뉴: %v\n", prepared.NewMenus)
	}
}

func printUploadResult(result model.UploadResult) {
	color.Cyan("\n적재 결과")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"항목", "건수"})
	table.Append([]string{"추가", util.FormatThousands(result.Inserted)})
	table.Append([]string{"갱신", util.FormatThousands(result.Updated)})
	table.Append([]string{"새 메뉴", util.FormatThousands(result.MenusCreated)})
	table.Append([]string{"실패", util.FormatThousands(len(result.Errors))})
	table.Render()

	for _, e := range result.Errors {
		color.Red("  %s", e)
	}
}
