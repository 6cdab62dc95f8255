package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"salesdesk/internal/api"
	"salesdesk/internal/config"
	"salesdesk/internal/importer"
	"salesdesk/internal/store"
)

// Server HTTP 서버
type Server struct {
	router *gin.Engine
	store  *store.Store
	http   *http.Server
	logger zerolog.Logger
}

// NewServer 저장소를 열고 라우트를 구성한다
func NewServer(cfg *config.AppConfig, dataDir string, logger zerolog.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dbPath := cfg.DBPath(dataDir)
	sqliteStore, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info().Str("db", dbPath).Msg("database ready")

	coordinator := importer.NewCoordinator(sqliteStore, cfg.ReadOptions(), logger)
	handler := api.NewHandler(sqliteStore, coordinator, api.Options{
		MaxUploadBytes: cfg.MaxUploadBytes(),
		SessionTTL:     cfg.SessionTTL(),
	}, logger)

	s := &Server{
		router: gin.New(),
		store:  sqliteStore,
		logger: logger,
	}
	s.router.MaxMultipartMemory = cfg.MaxUploadBytes()
	s.setupRoutes(handler)

	return s, nil
}

func (s *Server) setupRoutes(handler *api.Handler) {
	s.router.Use(gin.Recovery(), api.RequestID(), api.AccessLog(s.logger), api.CORS())

	group := s.router.Group("/api")
	handler.RegisterRoutes(group)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorEnvelope{
			Error:     api.ErrorBody{Code: "not_found", Message: "요청한 경로가 없습니다"},
			RequestID: api.RequestIDFrom(c),
		})
	})
}

// Handler 테스트용
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 서버 시작. Shutdown 으로 정상 종료되면 nil.
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 진행 중인 요청(커밋 포함)을 기다린 뒤 DB 를 닫는다
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			return err
		}
	}
	return s.store.Close()
}

// GetStore 테스트용
func (s *Server) GetStore() *store.Store {
	return s.store
}
