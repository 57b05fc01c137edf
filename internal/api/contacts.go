package api

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"callsheet/internal/export"
	"callsheet/internal/importer"
	"callsheet/internal/models"
	"callsheet/internal/workspace"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	Workspace   *workspace.Workspace
	Logger      *zap.Logger
	MaxUploadMB int64
}

func NewContactHandler(ws *workspace.Workspace, logger *zap.Logger, maxUploadMB int64) *ContactHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &ContactHandler{Workspace: ws, Logger: logger, MaxUploadMB: maxUploadMB}
}

// GetContacts returns the filtered view. Query: status (default "all"), q.
func (h *ContactHandler) GetContacts(c *gin.Context) {
	status := c.DefaultQuery("status", workspace.FilterAll)
	if status != workspace.FilterAll && !models.Status(status).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
		return
	}

	c.JSON(http.StatusOK, h.Workspace.Filter(status, c.Query("q")))
}

type CreateContactRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone" binding:"required"`
	Remark string `json:"remark"`
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, ok := h.Workspace.AddManual(req.Name, req.Phone, req.Remark)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Phone number has no digits"})
		return
	}

	c.JSON(http.StatusCreated, contact)
}

type UpdateContactRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Remark *string `json:"remark"`
	Status *string `json:"status"`
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id := c.Param("id")
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := workspace.ContactPatch{Name: req.Name, Phone: req.Phone, Remark: req.Remark}
	if req.Status != nil {
		status, ok := models.LookupStatus(*req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
		patch.Status = &status
	}

	contact, ok := h.Workspace.Update(id, patch)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if !h.Workspace.Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Contact deleted"})
}

// DialContact returns the tel: URI the client opens to place the call.
func (h *ContactHandler) DialContact(c *gin.Context) {
	contact, ok := h.Workspace.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"uri": contact.DialURI(), "phone": contact.Phone})
}

// ImportContacts replaces the workspace with the contacts of an uploaded
// workbook (multipart field "file"). Only one import runs at a time.
func (h *ContactHandler) ImportContacts(c *gin.Context) {
	if !h.Workspace.BeginImport() {
		c.JSON(http.StatusConflict, gin.H{"error": "Another import is in progress"})
		return
	}
	defer h.Workspace.EndImport()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadMB<<20)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not found in request"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	rows, err := importer.DecodeWorkbook(bytes.NewReader(data))
	if err != nil {
		h.Logger.Warn("Workbook import failed",
			zap.String("file_name", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not read workbook"})
		return
	}

	contacts := importer.ImportRows(rows, nil)
	h.Workspace.Import(contacts, fileHeader.Filename)
	h.Logger.Info("Workbook imported",
		zap.String("file_name", fileHeader.Filename),
		zap.Int("rows", len(rows)),
		zap.Int("contacts", len(contacts)))

	c.JSON(http.StatusOK, gin.H{
		"status":   "Contacts imported",
		"fileName": fileHeader.Filename,
		"rows":     len(rows),
		"imported": len(contacts),
		"skipped":  len(rows) - len(contacts),
	})
}

func (h *ContactHandler) ExportContacts(c *gin.Context) {
	snap := h.Workspace.Snapshot()

	data, err := export.Workbook(snap.Contacts)
	if err != nil {
		h.Logger.Error("Failed to build export workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}

	name := strings.ReplaceAll(export.FileName(snap.FileName), `"`, "")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}
