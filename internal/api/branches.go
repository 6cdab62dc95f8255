package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/parser"
)

// GetMapping 지점에 저장된 매핑
// GET /api/branches/:branchId/mapping
func (h *Handler) GetMapping(c *gin.Context) {
	m, err := h.store.GetMapping(c.Request.Context(), c.Param("branchId"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal", "매핑을 불러오지 못했습니다", nil)
		return
	}
	if m == nil {
		writeError(c, http.StatusNotFound, "mapping_not_found", "저장된 매핑이 없습니다", nil)
		return
	}
	c.JSON(http.StatusOK, m)
}

// ListMenus 지점 메뉴
// GET /api/branches/:branchId/menus
func (h *Handler) ListMenus(c *gin.Context) {
	menus, err := h.store.ListMenus(c.Request.Context(), c.Param("branchId"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal", "메뉴를 불러오지 못했습니다", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": menus, "total": len(menus)})
}

// ListSales 기간별 판매 기록. from/to 는 YYYY-MM-DD.
// GET /api/branches/:branchId/sales?from=&to=
func (h *Handler) ListSales(c *gin.Context) {
	from := c.Query("from")
	to := c.DefaultQuery("to", from)
	if from == "" {
		writeError(c, http.StatusBadRequest, "invalid_range", "from 파라미터가 필요합니다", nil)
		return
	}

	start, end := parser.DayRange(from, to)
	sales, err := h.store.ListSales(c.Request.Context(), c.Param("branchId"), start, end)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal", "판매 기록을 불러오지 못했습니다", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sales, "total": len(sales)})
}

// ListUploads 업로드 이력 (최신순)
// GET /api/uploads?branchId=&limit=
func (h *Handler) ListUploads(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		writeError(c, http.StatusBadRequest, "invalid_limit", "limit 은 0 이상의 정수여야 합니다", nil)
		return
	}

	logs, err := h.store.ListUploadLogs(c.Request.Context(), c.Query("branchId"), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal", "업로드 이력을 불러오지 못했습니다", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs, "total": len(logs)})
}
