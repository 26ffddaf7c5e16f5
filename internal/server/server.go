package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/export"
	"github.com/smallbiznis/recibo/internal/observability"
	obslogger "github.com/smallbiznis/recibo/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/recibo/internal/observability/metrics"
	obstracing "github.com/smallbiznis/recibo/internal/observability/tracing"
	"github.com/smallbiznis/recibo/internal/printing"
	"github.com/smallbiznis/recibo/internal/receipt"
	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	"github.com/smallbiznis/recibo/internal/receipttemplate"
	templatedomain "github.com/smallbiznis/recibo/internal/receipttemplate/domain"
	"github.com/smallbiznis/recibo/internal/rendering"
	"github.com/smallbiznis/recibo/internal/settings"
	settingsdomain "github.com/smallbiznis/recibo/internal/settings/domain"
)

const shutdownTimeout = 10 * time.Second

var Module = fx.Module("http.server",
	receipt.Module,
	settings.Module,
	receipttemplate.Module,
	printing.Module,
	rendering.Module,
	export.Module,
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(cfg, obsCfg, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	receiptSvc  receiptdomain.Service
	settingsSvc settingsdomain.Service
	templateSvc templatedomain.Service
	renderSvc   *rendering.Service
	exportSvc   *export.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	ReceiptSvc  receiptdomain.Service
	SettingsSvc settingsdomain.Service
	TemplateSvc templatedomain.Service
	RenderSvc   *rendering.Service
	ExportSvc   *export.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("http.server"),
		receiptSvc:  p.ReceiptSvc,
		settingsSvc: p.SettingsSvc,
		templateSvc: p.TemplateSvc,
		renderSvc:   p.RenderSvc,
		exportSvc:   p.ExportSvc,
	}

	svc.registerAPIRoutes()
	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Receipts --------
	api.GET("/receipts", s.ListReceipts)
	api.POST("/receipts", s.CreateReceipt)
	api.GET("/receipts/next-number", s.NextReceiptNumber)
	api.GET("/receipts/export.xlsx", s.ExportReceipts)
	api.GET("/receipts/:id", s.GetReceiptByID)
	api.PUT("/receipts/:id", s.UpdateReceipt)
	api.PATCH("/receipts/:id/status", s.UpdateReceiptStatus)
	api.DELETE("/receipts/:id", s.DeleteReceipt)

	// -------- Documents --------
	api.GET("/receipts/:id/document", s.GetReceiptDocument)
	api.GET("/receipts/:id/preview", s.PreviewReceipt)
	api.GET("/receipts/:id/print", s.PrintReceipt)
	api.GET("/receipts/:id/pdf", s.DownloadReceiptPDF)
	api.POST("/receipts/:id/dispatch", s.DispatchReceipt)
	api.POST("/preview", s.PreviewDraft)

	// -------- Settings --------
	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.UpdateSettings)

	// -------- Templates --------
	api.GET("/templates", s.ListReceiptTemplates)
	api.POST("/templates", s.CreateReceiptTemplate)
	api.GET("/templates/:id", s.GetReceiptTemplateByID)
	api.PATCH("/templates/:id", s.UpdateReceiptTemplate)
	api.DELETE("/templates/:id", s.DeleteReceiptTemplate)
	api.POST("/templates/:id/default", s.SetDefaultReceiptTemplate)
	api.POST("/templates/:id/apply", s.ApplyReceiptTemplate)
}
