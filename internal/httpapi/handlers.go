package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/binhtv97/wasted-item/internal/domain"
	"github.com/binhtv97/wasted-item/internal/report"
)

// Handler serves the on-demand report contract consumed by the web layer.
type Handler struct {
	svc    *report.Service
	csvDir string
	log    *zap.Logger
}

// NewRouter builds the gin engine with the export/save/healthz routes.
func NewRouter(svc *report.Service, csvDir string, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	h := &Handler{svc: svc, csvDir: csvDir, log: log}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/reports/export", h.export)
	r.GET("/api/reports/save", h.save)
	return r
}

// export streams the CSV back as a download. `variant=detailed` returns the
// raw-row export instead of the aggregated summary.
func (h *Handler) export(c *gin.Context) {
	kind, err := domain.ParsePeriodKind(c.DefaultQuery("period", "daily"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period"})
		return
	}

	var artifact domain.ReportArtifact
	if c.Query("variant") == "detailed" {
		artifact, err = h.svc.GenerateDetailed(c.Request.Context(), kind)
	} else {
		artifact, err = h.svc.Generate(c.Request.Context(), kind)
	}
	if err != nil {
		h.log.Error("export failed", zap.String("period", kind.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report generation failed"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+artifact.Filename)
	c.Data(http.StatusOK, "text/csv", []byte(artifact.Content))
}

// save persists the CSV under the configured folder and returns its path.
func (h *Handler) save(c *gin.Context) {
	kind, err := domain.ParsePeriodKind(c.DefaultQuery("period", "daily"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period"})
		return
	}

	dir := h.csvDir
	if folder := c.Query("folder"); folder != "" {
		dir = folder
	}
	path, err := h.svc.SaveToFolder(c.Request.Context(), kind, dir)
	if err != nil {
		h.log.Error("save failed", zap.String("period", kind.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}
