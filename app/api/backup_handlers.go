package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/radio-guiones/app/backup"
)

func (h *Handler) APIDownloadBackup(c *gin.Context) {
	bundle, err := backup.Build(h.store)
	if err != nil {
		respondError(c, "download_backup", err)
		return
	}

	filename := fmt.Sprintf("backup-%s.json", h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.JSON(http.StatusOK, bundle)
}

// APIRestoreBackup overwrites the stored datasets with the uploaded bundle.
func (h *Handler) APIRestoreBackup(c *gin.Context) {
	var bundle backup.Bundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup: " + err.Error()})
		return
	}

	if err := backup.Restore(h.store, &bundle); err != nil {
		respondError(c, "restore_backup", err)
		return
	}

	slog.Info("Backup restored", "created_at", bundle.CreatedAt)
	c.JSON(http.StatusOK, gin.H{"restored": true, "createdAt": bundle.CreatedAt})
}

// APISyncBackup replaces local data with the published snapshot. The caller
// must pass ?confirm=true.
func (h *Handler) APISyncBackup(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sync overwrites local data; pass confirm=true"})
		return
	}

	bundle, err := h.syncer.Sync(c.Request.Context(), h.store)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, backup.ErrNoBackupURL) {
			status = http.StatusServiceUnavailable
		}
		slog.Error("Backup sync failed", "error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	slog.Info("Backup synchronized", "created_at", bundle.CreatedAt)
	c.JSON(http.StatusOK, gin.H{"synced": true, "createdAt": bundle.CreatedAt})
}
