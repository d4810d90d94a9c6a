package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/XANi/shm2mqtt/entity"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	Logger     *zap.SugaredLogger
	ListenAddr string
	Registry   *entity.Registry
	Metrics    *Metrics
	Debug      bool
}

type WebBackend struct {
	l   *zap.SugaredLogger
	r   *gin.Engine
	cfg Config
}

func New(cfg Config) (*WebBackend, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	w := WebBackend{
		l:   cfg.Logger,
		cfg: cfg,
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(ginzap.Ginzap(w.l.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(w.l.Desugar(), true))
	r.GET("/health", w.Health)
	api := r.Group("/api/v1")
	api.GET("/device", w.Device)
	api.GET("/sensors", w.Sensors)
	api.GET("/sensors/:key", w.Sensor)
	api.PUT("/sensors/:key/enabled", w.SetEnabled)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	w.r = r
	return &w, nil
}

func (b *WebBackend) Handler() http.Handler {
	return b.r
}

// Run serves until ctx is cancelled
func (b *WebBackend) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              b.cfg.ListenAddr,
		Handler:           b.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			b.l.Warnf("error shutting down http server: %s", err)
		}
	}()
	b.l.Infof("listening on %s", b.cfg.ListenAddr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
