package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"salesdesk/internal/config"
	"salesdesk/internal/server"
	"salesdesk/internal/util"
)

var (
	port    = flag.Int("port", 0, "서비스 포트 (config.toml 에 port 가 없을 때만 적용)")
	devMode = flag.Bool("dev", false, "개발 모드")
	dataDir = flag.String("dataDir", "", "데이터 디렉터리 (설정 파일 덮어쓰기)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  SalesDesk - 매장 매출 업로드 도구")
	fmt.Println("==========================================")

	// 설정 로드
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "설정 로드 실패, 기본 설정 사용: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 명령행 인자로 덮어쓰기
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logger := newLogger(cfg)

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create data dir")
	}
	fmt.Printf("데이터 디렉터리: %s\n", dir)

	srv, err := server.NewServer(cfg, dir, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}

	// 포트를 명시하지 않았다면 사용 중일 때 다음 포트로 넘어간다
	if !info.PortSpecified && *port == 0 {
		if free := util.FindAvailablePort(cfg.Server.Port, 20); free > 0 && free != cfg.Server.Port {
			logger.Warn().Int("busy", cfg.Server.Port).Int("port", free).Msg("port in use, falling back")
			cfg.Server.Port = free
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("서비스 시작, 포트 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		fmt.Printf("브라우저 여는 중: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("브라우저를 열 수 없습니다. 직접 접속하세요: %s\n", url)
		}
	} else {
		fmt.Printf("접속 주소: %s\n", url)
	}

	fmt.Println("\nCtrl+C 로 종료...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n서비스 종료 중...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
}

func newLogger(cfg *config.AppConfig) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.LogLevel())
	if cfg.Server.DevMode {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Str("app", "salesdesk").Logger()
}
