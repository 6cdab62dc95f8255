package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"salesdesk/internal/model"
	"salesdesk/internal/parser"
)

// RowAction 행 커밋 결과 구분
type RowAction string

const (
	ActionInsert RowAction = "insert"
	ActionUpdate RowAction = "update"
	ActionError  RowAction = "error"
)

// RowProgress 한 행 처리 후 보고되는 진행 상황
type RowProgress struct {
	RowNo     int       `json:"rowNo"`
	Processed int       `json:"processed"`
	Total     int       `json:"total"`
	Action    RowAction `json:"action"`
	MenuID    string    `json:"menuId,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Committer 유효 행을 업서트로 반영한다
type Committer struct {
	menus  MenuStore
	sales  SalesStore
	logger zerolog.Logger
}

// NewCommitter 생성
func NewCommitter(menus MenuStore, sales SalesStore, logger zerolog.Logger) *Committer {
	return &Committer{menus: menus, sales: sales, logger: logger}
}

// Commit 행을 문서 순서대로 하나씩 반영한다.
// 기존 키 스냅샷은 루프 전에 한 번만 만들고, 행 단위 실패는 Errors 에 쌓은 뒤 다음 행으로 넘어간다.
// 스냅샷 조회 자체가 실패하면 아무것도 쓰지 않고 오류를 돌려준다.
func (c *Committer) Commit(ctx context.Context, branchID string, rows []model.CanonicalSalesRow, onRow func(RowProgress)) (model.UploadResult, error) {
	valid := parser.ValidRows(rows)
	result := model.UploadResult{Errors: []string{}}

	keys, err := existingKeys(ctx, c.sales, branchID, valid)
	if err != nil {
		return result, err
	}

	resolver := NewMenuResolver(c.menus, branchID)
	for i, row := range valid {
		progress := RowProgress{RowNo: row.RowNo, Processed: i + 1, Total: len(valid)}

		action, menuID, err := c.commitRow(ctx, resolver, branchID, row, keys, &result)
		progress.MenuID = menuID
		if err != nil {
			msg := fmt.Sprintf("%s (%s): %v", row.MenuName, row.SoldAt, err)
			result.Errors = append(result.Errors, msg)
			c.logger.Warn().Str("branch", branchID).Int("row", row.RowNo).Err(err).Msg("sales row not committed")
			progress.Action = ActionError
			progress.Error = msg
		} else {
			progress.Action = action
		}

		if onRow != nil {
			onRow(progress)
		}
	}

	result.Success = len(result.Errors) == 0
	c.logger.Info().
		Str("branch", branchID).
		Int("rows", len(valid)).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("menus_created", result.MenusCreated).
		Int("errors", len(result.Errors)).
		Msg("sales batch committed")

	return result, nil
}

func (c *Committer) commitRow(ctx context.Context, resolver *MenuResolver, branchID string, row model.CanonicalSalesRow, keys map[string]bool, result *model.UploadResult) (RowAction, string, error) {
	fallbackPrice := 0
	if row.Price != nil {
		fallbackPrice = *row.Price
	}

	menuID, created, err := resolver.Resolve(ctx, row.MenuName, fallbackPrice)
	if err != nil {
		return ActionError, "", err
	}
	if created {
		result.MenusCreated++
	}

	price := fallbackPrice
	if row.Price == nil {
		if price, err = resolver.Price(ctx, menuID); err != nil {
			return ActionError, menuID, err
		}
	}

	total := price * row.SalesCount
	if row.TotalSales != nil {
		total = *row.TotalSales
	}

	action := ActionInsert
	if keys[parser.RecordKey(row.SoldAt, menuID)] {
		action = ActionUpdate
	}

	err = c.sales.UpsertSale(ctx, model.SalesRecord{
		SoldAt:        row.SoldAt,
		MenuID:        menuID,
		BranchID:      branchID,
		SalesCount:    row.SalesCount,
		Price:         price,
		TotalSales:    total,
		TransactionID: row.TransactionID,
	})
	if err != nil {
		return ActionError, menuID, fmt.Errorf("failed to upsert sale: %w", err)
	}

	if action == ActionUpdate {
		result.Updated++
	} else {
		result.Inserted++
	}
	return action, menuID, nil
}
