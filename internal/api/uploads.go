package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salesdesk/internal/model"
	"salesdesk/internal/parser"
)

const sampleRowLimit = 5

// UploadResponse 업로드 직후 응답
type UploadResponse struct {
	Token       string              `json:"token"`
	Filename    string              `json:"filename"`
	Sheet       string              `json:"sheet"`
	HeaderRowNo int                 `json:"headerRowNo"`
	Headers     []string            `json:"headers"`
	Mapping     model.ColumnMapping `json:"mapping"`
	Complete    bool                `json:"complete"`
	RowCount    int                 `json:"rowCount"`
	SampleRows  [][]string          `json:"sampleRows"`
}

// Upload 파일을 받아 매핑 제안과 함께 세션을 연다
// POST /api/branches/:branchId/uploads
func (h *Handler) Upload(c *gin.Context) {
	branchID := strings.TrimSpace(c.Param("branchId"))
	if branchID == "" {
		writeError(c, http.StatusBadRequest, "invalid_branch", "지점 ID가 필요합니다", nil)
		return
	}

	if h.opts.MaxUploadBytes > 0 {
		// multipart 헤더 여유분 1MB
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes+1<<20)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(c, http.StatusRequestEntityTooLarge, "file_too_large", "파일이 너무 큽니다", nil)
			return
		}
		writeError(c, http.StatusBadRequest, "missing_file", "업로드 파일을 찾을 수 없습니다", nil)
		return
	}
	if h.opts.MaxUploadBytes > 0 && fileHeader.Size > h.opts.MaxUploadBytes {
		writeError(c, http.StatusRequestEntityTooLarge, "file_too_large", "파일이 너무 큽니다", gin.H{"maxBytes": h.opts.MaxUploadBytes})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "read_failed", "파일을 열 수 없습니다", nil)
		return
	}
	defer f.Close()

	preview, err := h.coordinator.Preview(c.Request.Context(), branchID, fileHeader.Filename, f)
	if err != nil {
		h.writeParseError(c, err)
		return
	}

	token := h.sessions.put(&uploadSession{
		branchID: branchID,
		filename: fileHeader.Filename,
		sheet:    preview.Sheet,
		mapping:  preview.Mapping,
	}, h.opts.SessionTTL)

	sample := preview.Sheet.Rows
	if len(sample) > sampleRowLimit {
		sample = sample[:sampleRowLimit]
	}

	h.logger.Info().
		Str("branch", branchID).
		Str("file", fileHeader.Filename).
		Int("rows", len(preview.Sheet.Rows)).
		Bool("complete", preview.Complete).
		Msg("upload received")

	c.JSON(http.StatusCreated, UploadResponse{
		Token:       token,
		Filename:    fileHeader.Filename,
		Sheet:       preview.Sheet.Name,
		HeaderRowNo: preview.Sheet.HeaderRowNo,
		Headers:     preview.Sheet.Headers,
		Mapping:     preview.Mapping,
		Complete:    preview.Complete,
		RowCount:    len(preview.Sheet.Rows),
		SampleRows:  sample,
	})
}

func (h *Handler) writeParseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, parser.ErrUnsupportedFormat):
		writeError(c, http.StatusBadRequest, "unsupported_format", "지원하지 않는 파일 형식입니다 (csv, xlsx, xls)", err.Error())
	case errors.Is(err, parser.ErrTooManyRows):
		writeError(c, http.StatusRequestEntityTooLarge, "too_many_rows", "행 수가 너무 많습니다", err.Error())
	case errors.Is(err, parser.ErrNoHeaderRow):
		writeError(c, http.StatusUnprocessableEntity, "no_header_row", "헤더 행을 찾을 수 없습니다", nil)
	default:
		h.logger.Error().Err(err).Str("request_id", RequestIDFrom(c)).Msg("failed to read upload")
		writeError(c, http.StatusUnprocessableEntity, "parse_failed", "파일을 읽을 수 없습니다", err.Error())
	}
}

// ConfirmMapping 매핑 확정 후 행 정규화 결과를 돌려준다
// POST /api/uploads/:token/mapping
func (h *Handler) ConfirmMapping(c *gin.Context) {
	token := c.Param("token")
	sess, ok := h.sessions.get(token)
	if !ok {
		writeError(c, http.StatusNotFound, "session_not_found", "업로드 세션이 없거나 만료되었습니다", nil)
		return
	}

	var mapping model.ColumnMapping
	if err := c.ShouldBindJSON(&mapping); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "잘못된 매핑 형식입니다", err.Error())
		return
	}

	prepared, err := h.coordinator.ConfirmMapping(c.Request.Context(), sess.branchID, sess.sheet, mapping)
	if err != nil {
		if errors.Is(err, parser.ErrIncompleteMapping) {
			writeError(c, http.StatusBadRequest, "incomplete_mapping", "날짜, 메뉴명, 수량 컬럼은 필수입니다",
				gin.H{"missing": parser.MissingFields(mapping, sess.sheet.Headers)})
			return
		}
		h.logger.Error().Err(err).Str("request_id", RequestIDFrom(c)).Msg("failed to confirm mapping")
		writeError(c, http.StatusInternalServerError, "internal", "매핑을 저장하지 못했습니다", nil)
		return
	}

	if !h.sessions.setPrepared(token, mapping, prepared) {
		writeError(c, http.StatusNotFound, "session_not_found", "업로드 세션이 없거나 만료되었습니다", nil)
		return
	}
	c.JSON(http.StatusOK, prepared)
}

// CheckDuplicates 커밋 전 중복 점검 (저장소 변경 없음)
// GET /api/uploads/:token/duplicates
func (h *Handler) CheckDuplicates(c *gin.Context) {
	sess, ok := h.sessions.get(c.Param("token"))
	if !ok {
		writeError(c, http.StatusNotFound, "session_not_found", "업로드 세션이 없거나 만료되었습니다", nil)
		return
	}
	if sess.prepared == nil {
		writeError(c, http.StatusConflict, "mapping_not_confirmed", "먼저 컬럼 매핑을 확정하세요", nil)
		return
	}

	report, err := h.coordinator.CheckDuplicates(c.Request.Context(), sess.branchID, sess.prepared.Rows)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", RequestIDFrom(c)).Msg("failed to check duplicates")
		writeError(c, http.StatusInternalServerError, "internal", "중복 점검에 실패했습니다", nil)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Commit 세션의 유효 행을 반영한다. 세션은 소모된다.
// POST /api/uploads/:token/commit[?stream=1]
func (h *Handler) Commit(c *gin.Context) {
	token := c.Param("token")
	sess, ok := h.sessions.get(token)
	if !ok {
		writeError(c, http.StatusNotFound, "session_not_found", "업로드 세션이 없거나 만료되었습니다", nil)
		return
	}
	if sess.prepared == nil {
		writeError(c, http.StatusConflict, "mapping_not_confirmed", "먼저 컬럼 매핑을 확정하세요", nil)
		return
	}
	if sess, ok = h.sessions.take(token); !ok {
		writeError(c, http.StatusNotFound, "session_not_found", "업로드 세션이 없거나 만료되었습니다", nil)
		return
	}

	if c.Query("stream") == "1" {
		h.commitStream(c, sess)
		return
	}

	result, err := h.coordinator.Commit(c.Request.Context(), sess.branchID, sess.filename, sess.prepared.Rows, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", RequestIDFrom(c)).Msg("commit failed")
		writeError(c, http.StatusInternalServerError, "commit_failed", "저장에 실패했습니다", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) commitStream(c *gin.Context, sess uploadSession) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		writeError(c, http.StatusInternalServerError, "stream_unsupported", "스트리밍을 지원하지 않습니다", nil)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	for event := range h.coordinator.CommitStream(c.Request.Context(), sess.branchID, sess.filename, sess.prepared.Rows) {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		flusher.Flush()
	}
}

// CancelUpload 세션 폐기
// DELETE /api/uploads/:token
func (h *Handler) CancelUpload(c *gin.Context) {
	if !h.sessions.delete(c.Param("token")) {
		writeError(c, http.StatusNotFound, "session_not_found", "업로드 세션이 없거나 만료되었습니다", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
