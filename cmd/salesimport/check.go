package main

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"salesdesk/internal/importer"
	"salesdesk/internal/model"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "기존 매출과의 중복 여부를 점검한다 (저장 안 함)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := runCheck(ctx, s.coordinator, s.batch)
		if err != nil {
			return err
		}

		printDuplicateReport(report, s.batch.prepared)
		if report.Duplicates > 0 {
			color.Yellow("커밋하면 중복 %d건은 새 값으로 갱신됩니다.", report.Duplicates)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// runCheck 드라이런. 매핑도 저장하지 않는다.
func runCheck(ctx context.Context, coordinator *importer.Coordinator, b *batch) (model.DuplicateReport, error) {
	return coordinator.CheckDuplicates(ctx, b.branchID, b.prepared.Rows)
}
