package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"salesdesk/internal/model"
	"salesdesk/internal/parser"
)

// Coordinator 업로드 → 매핑 확정 → 사전 점검 → 커밋 흐름을 묶는다
type Coordinator struct {
	store     Store
	committer *Committer
	readOpts  parser.ReadOptions
	logger    zerolog.Logger
}

// NewCoordinator 생성
func NewCoordinator(store Store, readOpts parser.ReadOptions, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		store:     store,
		committer: NewCommitter(store, store, logger),
		readOpts:  readOpts,
		logger:    logger,
	}
}

// Preview 업로드 직후 매핑 제안
type Preview struct {
	Sheet    *parser.Sheet       `json:"sheet"`
	Mapping  model.ColumnMapping `json:"mapping"`
	Complete bool                `json:"complete"`
}

// Prepared 매핑 확정 후 정규화된 배치
type Prepared struct {
	Rows         []model.CanonicalSalesRow `json:"rows"`
	ValidCount   int                       `json:"validCount"`
	InvalidCount int                       `json:"invalidCount"`
	NewMenus     []string                  `json:"newMenus"`
}

// ProgressEvent 커밋 진행 이벤트
type ProgressEvent struct {
	Type      string      `json:"type"` // start/row/done/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Preview 파일을 읽고 저장된 매핑을 자동 추정값 위에 덮어 제안한다
func (c *Coordinator) Preview(ctx context.Context, branchID, filename string, r io.Reader) (*Preview, error) {
	sheet, err := parser.ReadSheet(filename, r, c.readOpts)
	if err != nil {
		return nil, err
	}

	saved, err := c.store.GetMapping(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved mapping: %w", err)
	}

	mapping := parser.MergeMapping(saved, sheet.Headers)
	return &Preview{
		Sheet:    sheet,
		Mapping:  mapping,
		Complete: parser.IsComplete(mapping, sheet.Headers),
	}, nil
}

// ConfirmMapping PrepareRows 후 매핑을 지점 설정으로 저장한다
func (c *Coordinator) ConfirmMapping(ctx context.Context, branchID string, sheet *parser.Sheet, mapping model.ColumnMapping) (*Prepared, error) {
	prepared, err := c.PrepareRows(ctx, branchID, sheet, mapping)
	if err != nil {
		return nil, err
	}
	if err := c.SaveMapping(ctx, branchID, mapping); err != nil {
		return nil, err
	}
	return prepared, nil
}

// PrepareRows 매핑을 검증하고 행을 정규화한다. 저장소에 쓰지 않는다.
// 불완전한 매핑은 행을 하나도 해석하지 않고 거부한다.
func (c *Coordinator) PrepareRows(ctx context.Context, branchID string, sheet *parser.Sheet, mapping model.ColumnMapping) (*Prepared, error) {
	if err := parser.ValidateMapping(mapping, sheet.Headers); err != nil {
		return nil, err
	}

	known, err := c.store.ListMenuIDsByName(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	rows := parser.NormalizeRows(sheet, mapping, known)
	valid := len(parser.ValidRows(rows))
	return &Prepared{
		Rows:         rows,
		ValidCount:   valid,
		InvalidCount: len(rows) - valid,
		NewMenus:     parser.NewMenuNames(rows),
	}, nil
}

// SaveMapping 지점 매핑 저장
func (c *Coordinator) SaveMapping(ctx context.Context, branchID string, mapping model.ColumnMapping) error {
	if err := c.store.SaveMapping(ctx, branchID, mapping); err != nil {
		return fmt.Errorf("failed to save mapping: %w", err)
	}
	return nil
}

// CheckDuplicates 사전 점검
func (c *Coordinator) CheckDuplicates(ctx context.Context, branchID string, rows []model.CanonicalSalesRow) (model.DuplicateReport, error) {
	return CheckDuplicates(ctx, c.store, c.store, branchID, rows)
}

// Commit 커밋 후 업로드 이력을 남긴다. 이력 기록 실패는 결과에 영향을 주지 않는다.
func (c *Coordinator) Commit(ctx context.Context, branchID, filename string, rows []model.CanonicalSalesRow, onRow func(RowProgress)) (model.UploadResult, error) {
	result, err := c.committer.Commit(ctx, branchID, rows, onRow)
	if err != nil {
		return result, err
	}

	valid := len(parser.ValidRows(rows))
	entry := model.UploadLog{
		ID:           uuid.New().String(),
		BranchID:     branchID,
		Filename:     filename,
		TotalRows:    len(rows),
		ValidRows:    valid,
		Inserted:     result.Inserted,
		Updated:      result.Updated,
		MenusCreated: result.MenusCreated,
		ErrorCount:   len(result.Errors),
		Status:       model.StatusOf(result),
		CreatedAt:    time.Now(),
	}
	if err := c.store.CreateUploadLog(ctx, entry); err != nil {
		c.logger.Error().Err(err).Str("branch", branchID).Msg("failed to record upload log")
	}

	return result, nil
}

// CommitStream Commit 을 별도 고루틴에서 돌리고 진행 이벤트를 채널로 흘려보낸다
func (c *Coordinator) CommitStream(ctx context.Context, branchID, filename string, rows []model.CanonicalSalesRow) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)

		c.sendProgress(ctx, progressChan, ProgressEvent{
			Type:    "start",
			Message: "커밋 시작",
			Data: map[string]interface{}{
				"filename": filename,
				"rows":     len(parser.ValidRows(rows)),
			},
			Timestamp: time.Now(),
		})

		// 클라이언트 연결이 끊겨도 이미 시작한 배치는 끝까지 반영한다
		result, err := c.Commit(context.WithoutCancel(ctx), branchID, filename, rows, func(p RowProgress) {
			c.sendProgress(ctx, progressChan, ProgressEvent{
				Type:      "row",
				Message:   string(p.Action),
				Data:      p,
				Timestamp: time.Now(),
			})
		})
		if err != nil {
			c.sendProgress(ctx, progressChan, ProgressEvent{
				Type:      "error",
				Message:   fmt.Sprintf("커밋 실패: %v", err),
				Timestamp: time.Now(),
			})
			return
		}

		c.sendProgress(ctx, progressChan, ProgressEvent{
			Type:      "done",
			Message:   "커밋 완료",
			Data:      result,
			Timestamp: time.Now(),
		})
	}()

	return progressChan
}

// sendProgress 수신측이 떠나면(ctx 취소) 이벤트를 버린다
func (c *Coordinator) sendProgress(ctx context.Context, ch chan<- ProgressEvent, evt ProgressEvent) {
	select {
	case ch <- evt:
	case <-ctx.Done():
	}
}
