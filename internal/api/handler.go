package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"salesdesk/internal/importer"
	"salesdesk/internal/model"
)

// Backend 핸들러가 쓰는 저장소
type Backend interface {
	importer.Store
	ListBranches(ctx context.Context) ([]string, error)
	ListSales(ctx context.Context, branchID, start, end string) ([]model.SalesRecord, error)
	Path() string
}

// Options 핸들러 설정
type Options struct {
	MaxUploadBytes int64
	SessionTTL     time.Duration
}

// Handler API 핸들러
type Handler struct {
	store       Backend
	coordinator *importer.Coordinator
	sessions    *uploadSessionStore
	opts        Options
	logger      zerolog.Logger
}

// NewHandler 생성
func NewHandler(store Backend, coordinator *importer.Coordinator, opts Options, logger zerolog.Logger) *Handler {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	return &Handler{
		store:       store,
		coordinator: coordinator,
		sessions:    newUploadSessionStore(),
		opts:        opts,
		logger:      logger,
	}
}

// RegisterRoutes 라우트 등록
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// 지점
	router.POST("/branches/:branchId/uploads", h.Upload)
	router.GET("/branches/:branchId/mapping", h.GetMapping)
	router.GET("/branches/:branchId/menus", h.ListMenus)
	router.GET("/branches/:branchId/sales", h.ListSales)

	// 업로드 세션
	router.GET("/uploads", h.ListUploads)
	router.POST("/uploads/:token/mapping", h.ConfirmMapping)
	router.GET("/uploads/:token/duplicates", h.CheckDuplicates)
	router.POST("/uploads/:token/commit", h.Commit)
	router.DELETE("/uploads/:token", h.CancelUpload)

	router.GET("/templates/sales.xlsx", h.DownloadTemplate)
}
