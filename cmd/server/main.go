package main

//	@title			ArtVault API
//	@version		1.0
//	@description	Content-addressed art asset catalog for game production.
//	@schemes		http https
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				API bearer token (e.g., "Bearer artvault")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helioworks/artvault/internal/bootstrap"
	"github.com/helioworks/artvault/internal/config"
	"github.com/helioworks/artvault/internal/modules/handler"
	"github.com/helioworks/artvault/internal/router"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)

	// init gin
	gin.SetMode(cfg.App.Env)

	// build handlers
	assetHandler := do.MustInvoke[*handler.AssetHandler](inj)
	tagHandler := do.MustInvoke[*handler.TagHandler](inj)
	projectHandler := do.MustInvoke[*handler.ProjectHandler](inj)
	routeHandler := do.MustInvoke[*handler.RouteHandler](inj)
	styleHandler := do.MustInvoke[*handler.StyleHandler](inj)

	engine := router.NewRouter(router.RouterDeps{
		Config:         cfg,
		Log:            log,
		AssetHandler:   assetHandler,
		TagHandler:     tagHandler,
		ProjectHandler: projectHandler,
		RouteHandler:   routeHandler,
		StyleHandler:   styleHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}

	if rdb := do.MustInvoke[*redis.Client](inj); rdb != nil {
		_ = rdb.Close()
	}
	if conn := do.MustInvoke[*amqp.Connection](inj); conn != nil {
		_ = conn.Close()
	}
	log.Sugar().Info("server exited")
}
