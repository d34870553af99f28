package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/radio-guiones/app/records"
)

func (h *Handler) APIToggleWorkLog(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, active, err := h.payroll.Toggle(req.UserID, req.Role, req.Program, req.Date)
	if err != nil {
		respondError(c, "toggle_work_log", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": entry, "active": active})
}

// APIWorkLogSummary groups the logs of ?month= (YYYY-MM, current month by
// default) by user, program and role.
func (h *Handler) APIWorkLogSummary(c *gin.Context) {
	month := c.DefaultQuery("month", h.now().Format("2006-01"))

	summary, err := h.payroll.Summary(month)
	if err != nil {
		respondError(c, "work_log_summary", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": month, "users": summary})
}

func (h *Handler) APIUserWorkLogs(c *gin.Context) {
	userID := c.Param("userId")
	month := c.DefaultQuery("month", h.now().Format("2006-01"))

	logs, err := h.payroll.UserLogs(userID, month)
	if err != nil {
		respondError(c, "user_work_logs", err)
		return
	}
	total, err := h.payroll.Total(userID, month)
	if err != nil {
		respondError(c, "user_work_logs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "month": month, "logs": logs, "total": total})
}

func (h *Handler) APIGetPaymentConfig(c *gin.Context) {
	config, err := h.payroll.LoadConfig(c.Param("username"))
	if err != nil {
		respondError(c, "get_payment_config", err)
		return
	}

	c.JSON(http.StatusOK, config)
}

func (h *Handler) APIPutPaymentConfig(c *gin.Context) {
	username := c.Param("username")
	if _, err := h.users.Get(username); err != nil {
		respondError(c, "put_payment_config", err)
		return
	}

	var config records.PaymentConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.payroll.SaveConfig(username, config)
	if err != nil {
		respondError(c, "put_payment_config", err)
		return
	}

	c.JSON(http.StatusOK, saved)
}
