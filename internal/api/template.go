package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var templateHeaders = []interface{}{"판매일시", "메뉴명", "수량", "단가", "합계", "주문번호"}

// DownloadTemplate 업로드 양식
// GET /api/templates/sales.xlsx
func (h *Handler) DownloadTemplate(c *gin.Context) {
	data, err := buildTemplate()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "template_failed", "양식을 만들지 못했습니다", nil)
		return
	}

	c.Header("Content-Disposition", contentDisposition("sales-template.xlsx", "매출업로드양식.xlsx"))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func buildTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "매출"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &templateHeaders); err != nil {
		return nil, err
	}
	example := []interface{}{"2025-01-02 14:30:25", "아메리카노", 2, 3500, 7000, "R-0001"}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2EFDA"}},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", style); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "F", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// contentDisposition ASCII 대체 이름 + RFC 5987 UTF-8 이름
func contentDisposition(asciiName, utf8Name string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", asciiName, url.PathEscape(utf8Name))
}
