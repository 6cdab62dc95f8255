package model

// ColumnMapping 필드 → 엑셀/CSV 컬럼명 매핑
// 컬럼 순서가 바뀌어도 유지되도록 인덱스가 아닌 헤더 이름으로 저장한다.
type ColumnMapping struct {
	DateColumn          string `json:"dateColumn"`
	MenuNameColumn      string `json:"menuNameColumn"`
	QuantityColumn      string `json:"quantityColumn"`
	PriceColumn         string `json:"priceColumn,omitempty"`
	TotalColumn         string `json:"totalColumn,omitempty"`
	TransactionIDColumn string `json:"transactionIdColumn,omitempty"`
}

// CanonicalSalesRow 정규화된 판매 행 (파싱 1회당 생성, 커밋 후 폐기)
type CanonicalSalesRow struct {
	RowNo         int    `json:"rowNo"`  // 원본 파일의 행 번호 (1부터, 헤더 포함)
	SoldAt        string `json:"soldAt"` // 원문 그대로 (trim 만 적용)
	MenuName      string `json:"menuName"`
	SalesCount    int    `json:"salesCount"`
	Price         *int   `json:"price,omitempty"`
	TotalSales    *int   `json:"totalSales,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	IsValid       bool   `json:"isValid"`
	IsNewMenu     bool   `json:"isNewMenu"`
	Error         string `json:"error,omitempty"`
}

// Menu 메뉴(카탈로그) 항목
type Menu struct {
	MenuID   string `json:"menuId"` // M001, M002, ...
	MenuName string `json:"menuName"`
	Price    int    `json:"price"`
	BranchID string `json:"branchId"`
}

// SalesRecord 저장되는 판매 레코드
// (SoldAt, MenuID, BranchID) 가 유일키이다.
type SalesRecord struct {
	SoldAt        string `json:"soldAt"`
	MenuID        string `json:"menuId"`
	BranchID      string `json:"branchId"`
	SalesCount    int    `json:"salesCount"`
	Price         int    `json:"price"`
	TotalSales    int    `json:"totalSales"`
	TransactionID string `json:"transactionId,omitempty"`
}

// ExistingRecord 중복 판정용 기존 레코드 요약
type ExistingRecord struct {
	SoldAt string `json:"soldAt"`
	MenuID string `json:"menuId"`
}

// DuplicateReport 드라이런 결과 (저장소 변경 없음)
type DuplicateReport struct {
	Total      int `json:"total"`
	Duplicates int `json:"duplicates"`
	NewRecords int `json:"newRecords"`
}

// UploadResult 커밋 결과
type UploadResult struct {
	Success      bool     `json:"success"`
	Inserted     int      `json:"inserted"`
	Updated      int      `json:"updated"`
	MenusCreated int      `json:"menusCreated"`
	Errors       []string `json:"errors"`
}
