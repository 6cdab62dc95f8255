package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 시스템 상태
type StatusResponse struct {
	OK             bool     `json:"ok"`
	DBPath         string   `json:"dbPath"`
	Branches       []string `json:"branches"`
	ActiveSessions int      `json:"activeSessions"`
}

// GetStatus 시스템 상태
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	branches, err := h.store.ListBranches(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list branches")
		c.JSON(http.StatusOK, StatusResponse{OK: false, DBPath: h.store.Path(), Branches: []string{}})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		OK:             true,
		DBPath:         h.store.Path(),
		Branches:       branches,
		ActiveSessions: h.sessions.count(),
	})
}
