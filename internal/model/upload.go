package model

import "time"

// UploadStatus 업로드 처리 상태
type UploadStatus string

const (
	UploadStatusCompleted UploadStatus = "completed" // 전체 성공
	UploadStatusPartial   UploadStatus = "partial"   // 일부 행 저장 실패
	UploadStatusFailed    UploadStatus = "failed"    // 저장된 행 없음
)

// UploadLog 업로드 이력
type UploadLog struct {
	ID           string       `json:"id"`
	BranchID     string       `json:"branchId"`
	Filename     string       `json:"filename"`
	TotalRows    int          `json:"totalRows"`
	ValidRows    int          `json:"validRows"`
	Inserted     int          `json:"inserted"`
	Updated      int          `json:"updated"`
	MenusCreated int          `json:"menusCreated"`
	ErrorCount   int          `json:"errorCount"`
	Status       UploadStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// StatusOf 커밋 결과로부터 상태를 결정한다
func StatusOf(r UploadResult) UploadStatus {
	switch {
	case r.Success:
		return UploadStatusCompleted
	case r.Inserted+r.Updated > 0:
		return UploadStatusPartial
	default:
		return UploadStatusFailed
	}
}
