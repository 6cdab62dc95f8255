package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"salesdesk/internal/importer"
	"salesdesk/internal/model"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "매출을 적재한다 (같은 파일을 다시 올려도 결과가 같다)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := runCommit(ctx, s.coordinator, s.batch)
		if err != nil {
			return err
		}

		printUploadResult(result)
		if !result.Success {
			return fmt.Errorf("%d row(s) failed", len(result.Errors))
		}
		color.Green("적재 완료")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
}

// runCommit 매핑을 지점 설정으로 저장한 뒤 유효 행을 반영한다
func runCommit(ctx context.Context, coordinator *importer.Coordinator, b *batch) (model.UploadResult, error) {
	if err := coordinator.SaveMapping(ctx, b.branchID, b.mapping); err != nil {
		return model.UploadResult{}, err
	}

	total := b.prepared.ValidCount
	return coordinator.Commit(ctx, b.branchID, b.filename, b.prepared.Rows, func(p importer.RowProgress) {
		if verbose {
			fmt.Printf("[%d/%d] row %d %s %s\n", p.Processed, total, p.RowNo, p.Action, p.MenuID)
		}
	})
}
