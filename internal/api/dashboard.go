package api

import (
	"net/http"

	"callsheet/internal/workspace"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Workspace *workspace.Workspace
}

func NewDashboardHandler(ws *workspace.Workspace) *DashboardHandler {
	return &DashboardHandler{Workspace: ws}
}

// GetWorkspace returns the whole snapshot plus per-status counts.
func (h *DashboardHandler) GetWorkspace(c *gin.Context) {
	snap := h.Workspace.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"fileName":  snap.FileName,
		"contacts":  snap.Contacts,
		"counts":    h.Workspace.Counts(),
		"importing": h.Workspace.Importing(),
	})
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Workspace.Counts())
}

func (h *DashboardHandler) ResetWorkspace(c *gin.Context) {
	h.Workspace.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "Workspace cleared"})
}
