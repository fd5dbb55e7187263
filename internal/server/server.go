package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/velavancrackers/pos/internal/auth"
	authdomain "github.com/velavancrackers/pos/internal/auth/domain"
	"github.com/velavancrackers/pos/internal/billing"
	billingdomain "github.com/velavancrackers/pos/internal/billing/domain"
	"github.com/velavancrackers/pos/internal/config"
	"github.com/velavancrackers/pos/internal/dashboard"
	dashboarddomain "github.com/velavancrackers/pos/internal/dashboard/domain"
	obsmetrics "github.com/velavancrackers/pos/internal/observability/metrics"
	"github.com/velavancrackers/pos/internal/product"
	productdomain "github.com/velavancrackers/pos/internal/product/domain"
	"github.com/velavancrackers/pos/internal/providers/pdf"
	"github.com/velavancrackers/pos/internal/settings"
	settingsdomain "github.com/velavancrackers/pos/internal/settings/domain"
	"github.com/velavancrackers/pos/internal/uploads"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	uploads.Module,
	pdf.Module,
	auth.Module,
	product.Module,
	billing.Module,
	settings.Module,
	dashboard.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(m.GinMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	bills     billingdomain.Service
	products  productdomain.Service
	settings  settingsdomain.Service
	auth      authdomain.Service
	dashboard dashboarddomain.Service
	pdf       pdf.Provider
	uploads   *uploads.Store
	metrics   *obsmetrics.Metrics
	log       *zap.Logger
}

type ServerParams struct {
	fx.In

	Engine    *gin.Engine
	Config    config.Config
	Bills     billingdomain.Service
	Products  productdomain.Service
	Settings  settingsdomain.Service
	Auth      authdomain.Service
	Dashboard dashboarddomain.Service
	PDF       pdf.Provider
	Uploads   *uploads.Store
	Metrics   *obsmetrics.Metrics
	Log       *zap.Logger
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:    p.Engine,
		cfg:       p.Config,
		bills:     p.Bills,
		products:  p.Products,
		settings:  p.Settings,
		auth:      p.Auth,
		dashboard: p.Dashboard,
		pdf:       p.PDF,
		uploads:   p.Uploads,
		metrics:   p.Metrics,
		log:       p.Log.Named("server"),
	}

	s.registerAPIRoutes()
	s.registerStaticRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/login", s.Login)
	api.POST("/register", s.Register)
	api.PUT("/admin/credentials", s.UpdateCredentials)

	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.PUT("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)
	api.GET("/categories", s.ListCategories)

	api.POST("/bills", s.CreateBill)
	api.GET("/bills", s.ListBills)
	api.GET("/bills/:bill_no", s.GetBill)
	api.DELETE("/bills/:bill_no", s.DeleteBill)
	api.GET("/download-bill/:bill_no", s.DownloadBill)

	api.GET("/dashboard", s.Dashboard)
	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.UpdateSettings)
}

func (s *Server) registerStaticRoutes() {
	s.engine.Static("/uploads", s.uploads.Dir())

	s.engine.NoRoute(func(c *gin.Context) {
		if fileExists(s.cfg.PublicDir, c.Request.URL.Path) {
			c.File(filepath.Join(s.cfg.PublicDir, filepath.Clean(c.Request.URL.Path)))
			return
		}

		// SPA fallback
		c.File(filepath.Join(s.cfg.PublicDir, "index.html"))
	})
}

func fileExists(publicDir, reqPath string) bool {
	clean := filepath.Clean(reqPath)

	// prevent path traversal
	if clean == "." || clean == "/" || clean == ".." {
		return false
	}

	fullPath := filepath.Join(publicDir, clean)

	info, err := os.Stat(fullPath)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
