// Package main runs the outdoor advertising manager HTTP server with
// graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/painelout/backend/config"
	"github.com/painelout/backend/internal/anuncios"
	"github.com/painelout/backend/internal/auth"
	"github.com/painelout/backend/internal/middleware"
	"github.com/painelout/backend/internal/models"
	"github.com/painelout/backend/internal/outdoors"
	"github.com/painelout/backend/pkg/jsonstore"
	"github.com/painelout/backend/pkg/response"
	"github.com/painelout/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	usuariosCol := jsonstore.NewCollection[models.User](cfg.Store.DataDir, "usuarios.json", logger)
	outdoorsCol := jsonstore.NewCollection[models.Outdoor](cfg.Store.DataDir, "outdoors.json", logger)
	anunciosCol := jsonstore.NewCollection[models.Anuncio](cfg.Store.DataDir, "anuncios.json", logger)

	ctx := context.Background()

	var media storage.Media
	var localMedia *storage.Local
	var s3Media *storage.S3
	switch cfg.Media.Backend {
	case "s3":
		s3Media, err = storage.NewS3(ctx, storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			Bucket:               cfg.AWS.MediaBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}, logger)
		if err != nil {
			logger.Fatal("s3 media store", zap.Error(err))
		}
		media = s3Media
	default:
		localMedia, err = storage.NewLocal(cfg.Media.UploadDir, logger)
		if err != nil {
			logger.Fatal("local media store", zap.Error(err))
		}
		media = localMedia
	}

	authHandler := auth.NewHandler(auth.NewRepository(usuariosCol), logger)
	outdoorHandler := outdoors.NewHandler(outdoors.NewRepository(outdoorsCol, anunciosCol), logger)
	anuncioHandler := anuncios.NewHandler(anuncios.NewRepository(anunciosCol), media, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/clientes", authHandler.ListClientes)
		}

		// Outdoors
		api.POST("/outdoors", outdoorHandler.Create)
		api.GET("/outdoors", outdoorHandler.List)
		api.GET("/outdoors/meus", outdoorHandler.ListMeus)
		api.GET("/outdoors/:id", outdoorHandler.Get)
		api.PUT("/outdoors/:id", outdoorHandler.Update)
		api.DELETE("/outdoors/:id", outdoorHandler.Delete)

		// Links between outdoors and anúncios
		api.POST("/outdoors/:id/anuncios/:adId", outdoorHandler.Link)
		api.GET("/outdoors/:id/anuncios", outdoorHandler.ListAnuncios)
		api.PATCH("/outdoors/:id/anuncios/:adId/vinculado", outdoorHandler.PatchVinculado)
		api.DELETE("/outdoors/:id/anuncios/:adId", outdoorHandler.Unlink)
		api.PUT("/outdoors/:id/anuncios/ordem", outdoorHandler.Reorder)

		// Anúncios
		api.POST("/anuncios", anuncioHandler.Create)
		api.GET("/anuncios/meus", anuncioHandler.List)
		api.PATCH("/anuncios/:id", anuncioHandler.Update)
		api.DELETE("/anuncios/:id", anuncioHandler.Delete)
	}

	// Media: served from disk with the local backend, redirected to a
	// pre-signed URL with S3.
	if localMedia != nil {
		router.Static("/uploads", localMedia.Dir())
	} else {
		router.GET("/uploads/:filename", func(c *gin.Context) {
			url, err := s3Media.PresignGet(c.Request.Context(), c.Param("filename"))
			if err != nil {
				logger.Error("presign media", zap.Error(err), zap.String("arquivo", c.Param("filename")))
				response.NotFound(c, "Arquivo não encontrado")
				return
			}
			c.Redirect(http.StatusTemporaryRedirect, url)
		})
	}

	// Static web client.
	if cfg.Server.PublicDir != "" {
		fs := http.FileServer(http.Dir(cfg.Server.PublicDir))
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
				fs.ServeHTTP(c.Writer, c.Request)
				return
			}
			response.NotFound(c, "Rota não encontrada")
		})
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
