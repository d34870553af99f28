package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/radio-guiones/app/catalog"
	"github.com/lysyi3m/radio-guiones/app/guiones"
	"github.com/lysyi3m/radio-guiones/app/newsdesk"
	"github.com/lysyi3m/radio-guiones/app/parser"
	"github.com/lysyi3m/radio-guiones/app/payroll"
	"github.com/lysyi3m/radio-guiones/app/programs"
	"github.com/lysyi3m/radio-guiones/app/users"
)

func NewHandler(deps Deps) *Handler {
	return &Handler{
		store:    deps.Store,
		registry: deps.Registry,
		fichas:   deps.Fichas,
		scripts:  deps.Scripts,
		news:     deps.News,
		users:    deps.Users,
		catalog:  deps.Catalog,
		payroll:  deps.Payroll,
		syncer:   deps.Syncer,
		channel:  deps.Channel,
		now:      time.Now,
	}
}

func (h *Handler) GetIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     h.channel.Title,
		"version":     h.channel.Version,
		"description": "Content desk of the station: scripts, news, payroll and reports",
		"endpoints": map[string]string{
			"health":  "/health",
			"news":    "/news",
			"rss":     "/news/rss",
			"login":   "/login (POST)",
			"api":     "/api/...",
			"reports": "/api/reports/<monthly|repeated|detailed|one-year-ago|digest|balance>",
		},
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"programs":  h.registry.Count(),
	}

	if rows, err := h.scripts.All(); err == nil {
		health["scripts"] = len(rows)
	}
	if items, err := h.news.List(); err == nil {
		health["news"] = len(items)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetNews(c *gin.Context) {
	items, err := h.news.List()
	if err != nil {
		respondError(c, "list_news", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": items, "total": len(items)})
}

func (h *Handler) GetNewsRSS(c *gin.Context) {
	rss, err := h.news.RSS(h.channel)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func (h *Handler) PostLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, newUserView(user))
}

func (h *Handler) APIListPrograms(c *gin.Context) {
	list := h.registry.All()

	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		out = append(out, gin.H{
			"slug":      p.Slug,
			"name":      p.Name,
			"frequency": p.Frequency,
			"schedule":  p.Schedule,
			"aliases":   p.Aliases,
		})
	}

	c.JSON(http.StatusOK, gin.H{"programs": out, "total": len(out)})
}

func (h *Handler) APIGetCatalog(c *gin.Context) {
	current, err := h.catalog.Current()
	if err != nil {
		respondError(c, "get_catalog", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"programs": current.Programs()})
}

// APIGetRate answers the rate of a role. A failed lookup still answers 0,
// with the reason alongside.
func (h *Handler) APIGetRate(c *gin.Context) {
	program, role := c.Query("program"), c.Query("role")
	level := c.DefaultQuery("level", payroll.DefaultLevel)

	current, err := h.catalog.Current()
	if err != nil {
		respondError(c, "get_rate", err)
		return
	}

	rate, err := current.Lookup(program, role, level)
	response := gin.H{
		"program": program,
		"role":    role,
		"level":   level,
		"rate":    rate,
		"priced":  err == nil,
	}
	if err != nil {
		response["reason"] = err.Error()
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) APIListFichas(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		list, err := h.fichas.List()
		if err != nil {
			respondError(c, "list_fichas", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"fichas": list, "total": len(list)})
		return
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	list, err := h.fichas.On(day)
	if err != nil {
		respondError(c, "list_fichas", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "fichas": list, "total": len(list)})
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, operation string, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, parser.ErrNoRecords),
		errors.Is(err, guiones.ErrNothingRouted):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, guiones.ErrNotFound),
		errors.Is(err, guiones.ErrUnknownProgram),
		errors.Is(err, newsdesk.ErrNotFound),
		errors.Is(err, users.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, users.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, users.ErrProtected):
		status = http.StatusForbidden
	case errors.Is(err, guiones.ErrTitleRequired),
		errors.Is(err, guiones.ErrEmptyFind),
		errors.Is(err, guiones.ErrEmptyQuery),
		errors.Is(err, newsdesk.ErrTitleRequired),
		errors.Is(err, users.ErrUsernameRequired),
		errors.Is(err, users.ErrInvalidRole),
		errors.Is(err, users.ErrInvalidClass),
		errors.Is(err, payroll.ErrMissingField),
		errors.Is(err, payroll.ErrInvalidMonth),
		errors.Is(err, programs.ErrNoMatch),
		errors.Is(err, catalog.ErrAmbiguous):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "operation", operation, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + " must be a number"})
		return 0, false
	}
	return n, true
}

// textBody reads the raw text of an import request.
func textBody(c *gin.Context) (string, bool) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return "", false
	}
	return string(data), true
}
