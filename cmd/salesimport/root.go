package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"salesdesk/internal/config"
	"salesdesk/internal/importer"
	"salesdesk/internal/model"
	"salesdesk/internal/parser"
	"salesdesk/internal/store"
)

var (
	branchID  string
	inputFile string
	dbPath    string
	verbose   bool
	overrides columnOverrides
)

var rootCmd = &cobra.Command{
	Use:   "salesimport",
	Short: "매출 파일(CSV/Excel)을 로컬 SQLite 에 적재한다",
	Long: `서버를 띄우지 않고 매출 파일을 점검하거나 적재한다.

컬럼 매핑은 헤더 키워드로 자동 추정하고, 지점에 저장된 매핑이 있으면 우선한다.
--date-col 등의 옵션으로 개별 컬럼을 직접 지정할 수 있다.`,
	Example: `
  # 중복 여부만 점검 (저장 안 함)
  salesimport check --branch gangnam --file ./2024-05.xlsx

  # 적재
  salesimport commit --branch gangnam --file ./2024-05.csv --db ./data/salesdesk.db

  # 헤더 키워드가 맞지 않을 때 컬럼 직접 지정
  salesimport commit --branch gangnam --file ./pos.csv --date-col "거래시각" --qty-col "판매량"
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&branchID, "branch", "b", "", "지점 ID")
	pf.StringVarP(&inputFile, "file", "f", "", "매출 파일 경로 (.csv/.tsv/.txt/.xlsx/.xls)")
	pf.StringVar(&dbPath, "db", "", "SQLite 경로 (기본: 설정 파일의 데이터 디렉터리)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "상세 로그")
	overrides.bind(pf)

	_ = rootCmd.MarkPersistentFlagRequired("branch")
	_ = rootCmd.MarkPersistentFlagRequired("file")
}

// session 명령 하나가 쓰는 저장소와 정규화된 배치
type session struct {
	store       *store.Store
	coordinator *importer.Coordinator
	logger      zerolog.Logger
	batch       *batch
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession 설정과 저장소를 열고 파일을 읽어 행을 정규화한다. 매핑은 저장하지 않는다.
func openSession(ctx context.Context) (*session, error) {
	cfg, _, err := config.LoadConfigWithInfo()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)

	path := dbPath
	if path == "" {
		dir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return nil, err
		}
		path = cfg.DBPath(dir)
	}

	st, err := store.New(path)
	if err != nil {
		return nil, err
	}

	coordinator := importer.NewCoordinator(st, cfg.ReadOptions(), logger)
	b, err := prepareBatch(ctx, coordinator, branchID, inputFile, overrides)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &session{
		store:       st,
		coordinator: coordinator,
		logger:      logger,
		batch:       b,
	}, nil
}

// batch 파일 하나를 읽고 정규화한 결과
type batch struct {
	branchID string
	filename string
	sheet    *parser.Sheet
	mapping  model.ColumnMapping
	prepared *importer.Prepared
}

// prepareBatch 파일을 읽고 명령행 지정 컬럼을 덮어쓴 매핑으로 행을 정규화한다
func prepareBatch(ctx context.Context, coordinator *importer.Coordinator, branch, path string, ov columnOverrides) (*batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	preview, err := coordinator.Preview(ctx, branch, path, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mapping, err := ov.apply(preview.Mapping, preview.Sheet.Headers)
	if err != nil {
		return nil, err
	}
	printMapping(preview.Sheet, mapping)

	prepared, err := coordinator.PrepareRows(ctx, branch, preview.Sheet, mapping)
	if err != nil {
		return nil, err
	}
	printInvalidRows(prepared.Rows)

	return &batch{
		branchID: branch,
		filename: filepath.Base(path),
		sheet:    preview.Sheet,
		mapping:  mapping,
		prepared: prepared,
	}, nil
}

func newLogger(cfg *config.AppConfig) zerolog.Logger {
	level := cfg.LogLevel()
	if !verbose && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}
