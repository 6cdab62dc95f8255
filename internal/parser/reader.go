package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ReadOptions 시트 읽기 옵션
type ReadOptions struct {
	Encoding       string // auto | utf-8 | euc-kr
	HeaderScanRows int
	MaxRows        int // 0 이면 제한 없음
}

// ReadSheet 업로드 파일을 확장자에 따라 읽어 헤더가 잡힌 Sheet 로 돌려준다
func ReadSheet(filename string, r io.Reader, opts ReadOptions) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	var sheet *Sheet
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", ".tsv":
		sheet, err = readDelimited(data, opts)
	case ".xlsx", ".xlsm":
		sheet, err = readXLSX(data, opts)
	case ".xls":
		sheet, err = readXLS(data, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	sheet.Rows = trimTrailingBlankRows(sheet.Rows)
	if opts.MaxRows > 0 && len(sheet.Rows) > opts.MaxRows {
		return nil, fmt.Errorf("%w: %d rows (max %d)", ErrTooManyRows, len(sheet.Rows), opts.MaxRows)
	}
	return sheet, nil
}

func readDelimited(data []byte, opts ReadOptions) (*Sheet, error) {
	data, err := decodeText(data, opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	sheet, _, err := LocateHeader("csv", rows, opts.HeaderScanRows)
	return sheet, err
}

// decodeText BOM 제거 후 UTF-8 이 아니면 EUC-KR(CP949) 로 디코딩
func decodeText(data []byte, encoding string) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
		return data, nil
	case "euc-kr", "cp949":
	default:
		if utf8.Valid(data) {
			return data, nil
		}
	}

	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode euc-kr: %w", err)
	}
	return decoded, nil
}

// sniffDelimiter 첫 줄에서 가장 많이 나온 구분자 (기본 콤마)
func sniffDelimiter(data []byte) rune {
	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}

	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(firstLine, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// readXLSX 모든 시트 중 헤더가 완전하게 잡히는 첫 시트를 고른다
func readXLSX(data []byte, opts ReadOptions) (*Sheet, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer wb.Close()

	var fallback *Sheet
	var fallbackConfidence float64
	for _, name := range wb.GetSheetList() {
		rows, err := wb.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		sheet, rec, err := LocateHeader(name, rows, opts.HeaderScanRows)
		if err != nil {
			continue
		}
		if rec.Complete {
			return sheet, nil
		}
		if fallback == nil || rec.Confidence > fallbackConfidence {
			fallback, fallbackConfidence = sheet, rec.Confidence
		}
	}

	if fallback == nil {
		return nil, ErrNoHeaderRow
	}
	return fallback, nil
}

// readXLS xlsReader 는 파일 경로만 받으므로 임시 파일을 거친다
func readXLS(data []byte, opts ReadOptions) (*Sheet, error) {
	tmp, err := os.CreateTemp("", "salesdesk-*.xls")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmp.Close()

	book, err := xls.OpenFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}

	ws, err := book.GetSheet(0)
	if err != nil || ws == nil {
		return nil, ErrNoHeaderRow
	}

	var rows [][]string
	for _, xlsRow := range ws.GetRows() {
		cols := xlsRow.GetCols()
		values := make([]string, 0, len(cols))
		for _, col := range cols {
			values = append(values, col.GetString())
		}
		rows = append(rows, values)
	}

	sheet, _, err := LocateHeader("xls", rows, opts.HeaderScanRows)
	return sheet, err
}

func trimTrailingBlankRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isBlankRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}
