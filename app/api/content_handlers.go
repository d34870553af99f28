package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/radio-guiones/app/guiones"
	"github.com/lysyi3m/radio-guiones/app/parser"
	"github.com/lysyi3m/radio-guiones/app/records"
)

func summarize[T any](result parser.Result[T]) importSummary {
	return importSummary{
		Imported:     len(result.Records),
		WithDefaults: result.WithDefaults,
		Skipped:      result.Skipped,
	}
}

func (h *Handler) APIImportScripts(c *gin.Context) {
	raw, ok := textBody(c)
	if !ok {
		return
	}

	report, err := h.scripts.Import(raw)
	if errors.Is(err, guiones.ErrNothingRouted) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "report": report})
		return
	}
	if err != nil {
		respondError(c, "import_scripts", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) APIImportNews(c *gin.Context) {
	raw, ok := textBody(c)
	if !ok {
		return
	}

	result, err := h.news.Import(raw)
	if err != nil {
		respondError(c, "import_news", err)
		return
	}

	c.JSON(http.StatusOK, summarize(result))
}

func (h *Handler) APIImportUsers(c *gin.Context) {
	raw, ok := textBody(c)
	if !ok {
		return
	}

	report, err := h.users.Import(raw)
	if err != nil {
		respondError(c, "import_users", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) APIImportCatalog(c *gin.Context) {
	raw, ok := textBody(c)
	if !ok {
		return
	}

	result, err := h.catalog.Import(raw)
	if err != nil {
		respondError(c, "import_catalog", err)
		return
	}

	c.JSON(http.StatusOK, summarize(result))
}

func (h *Handler) APIImportFichas(c *gin.Context) {
	raw, ok := textBody(c)
	if !ok {
		return
	}

	result, err := h.fichas.Import(raw)
	if err != nil {
		respondError(c, "import_fichas", err)
		return
	}

	c.JSON(http.StatusOK, summarize(result))
}

func (h *Handler) APIListScripts(c *gin.Context) {
	slug := c.Param("slug")

	list, err := h.scripts.List(slug)
	if err != nil {
		respondError(c, "list_scripts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"program": slug, "guiones": list, "total": len(list)})
}

func (h *Handler) APIAddScript(c *gin.Context) {
	var script records.Script
	if err := c.ShouldBindJSON(&script); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.scripts.Add(c.Param("slug"), script)
	if err != nil {
		respondError(c, "add_script", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) APIUpdateScript(c *gin.Context) {
	var script records.Script
	if err := c.ShouldBindJSON(&script); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.scripts.Update(c.Param("slug"), c.Param("id"), script)
	if err != nil {
		respondError(c, "update_script", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) APIDeleteScript(c *gin.Context) {
	if err := h.scripts.Delete(c.Param("slug"), c.Param("id")); err != nil {
		respondError(c, "delete_script", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) APIClearProgram(c *gin.Context) {
	slug := c.Param("slug")
	if err := h.scripts.ClearProgram(slug); err != nil {
		respondError(c, "clear_program", err)
		return
	}

	slog.Info("Program scripts cleared", "program", slug)
	c.Status(http.StatusNoContent)
}

func (h *Handler) APIPulir(c *gin.Context) {
	var req pulirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := h.scripts.Pulir(c.Param("slug"), req.Find, req.Replace)
	if err != nil {
		respondError(c, "pulir", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *Handler) APISearch(c *gin.Context) {
	query := c.Query("q")

	rows, err := h.scripts.Search(query)
	if err != nil {
		respondError(c, "search", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": rows, "total": len(rows)})
}

func (h *Handler) APISearchHistory(c *gin.Context) {
	entries, err := h.scripts.History()
	if err != nil {
		respondError(c, "search_history", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *Handler) APIAddNews(c *gin.Context) {
	var item records.NewsItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.news.Add(item)
	if err != nil {
		respondError(c, "add_news", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) APIDeleteNews(c *gin.Context) {
	if err := h.news.Delete(c.Param("id")); err != nil {
		respondError(c, "delete_news", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) APIListUsers(c *gin.Context) {
	list, err := h.users.List()
	if err != nil {
		respondError(c, "list_users", err)
		return
	}

	views := make([]UserView, 0, len(list))
	for _, u := range list {
		views = append(views, newUserView(u))
	}

	c.JSON(http.StatusOK, gin.H{"users": views, "total": len(views)})
}

func (h *Handler) APIAddUser(c *gin.Context) {
	var user records.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.users.Add(user)
	if err != nil {
		respondError(c, "add_user", err)
		return
	}

	c.JSON(http.StatusCreated, newUserView(created))
}

func (h *Handler) APIDeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Param("username")); err != nil {
		respondError(c, "delete_user", err)
		return
	}

	c.Status(http.StatusNoContent)
}
