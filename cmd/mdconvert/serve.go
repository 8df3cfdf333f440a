// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdconvert/internal/convert"
	"github.com/pdiddy/mdconvert/internal/extras"
	"github.com/pdiddy/mdconvert/internal/history"
	"github.com/pdiddy/mdconvert/internal/secrets"
	"github.com/pdiddy/mdconvert/internal/server"
	"github.com/pdiddy/mdconvert/pkg/storage"
	"github.com/pdiddy/mdconvert/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive web converter",
	Long: `Serve starts the interactive app: upload files or point it at a
server-side folder, convert everything through markitdown, browse per-file
result tabs, and download all outputs as a ZIP. Optional markitdown extras
can be installed into the running environment from the UI.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default 8080)")
	serveCmd.Flags().String("host", "", "listen address (default 0.0.0.0)")
	serveCmd.Flags().String("mode", "", "gin mode: debug or release")

	rootCmd.AddCommand(serveCmd)
}

// appConfig assembles the interactive app settings from viper and flags.
func appConfig(cmd *cobra.Command) types.AppConfig {
	cfg := types.AppConfig{
		Converter: converterConfig(),
		Server: types.ServerConfig{
			Host:       viper.GetString("server.host"),
			Port:       viper.GetInt("server.port"),
			Mode:       viper.GetString("server.mode"),
			ScratchDir: viper.GetString("server.scratch_dir"),
		},
		Log: types.LogConfig{
			Level:      viper.GetString("log.level"),
			File:       viper.GetString("log.file"),
			MaxSizeMB:  viper.GetInt("log.max_size_mb"),
			MaxBackups: viper.GetInt("log.max_backups"),
		},
		Mirror: types.MirrorConfig{
			Backend:   types.MirrorBackend(viper.GetString("mirror.backend")),
			Path:      viper.GetString("mirror.path"),
			Endpoint:  viper.GetString("mirror.endpoint"),
			Bucket:    viper.GetString("mirror.bucket"),
			AccessKey: viper.GetString("mirror.access_key"),
			SecretKey: viper.GetString("mirror.secret_key"),
			UseSSL:    viper.GetBool("mirror.use_ssl"),
		},
		History: types.HistoryConfig{
			Path: viper.GetString("history.path"),
		},
	}

	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		cfg.Server.Mode = mode
	}
	return cfg
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig(cmd)

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := server.NewLogger(cfg.Log, cfg.Server.Mode)
	logger.Info("starting mdconvert server")

	converter, err := newConverter(cfg.Converter)
	if err != nil {
		return err
	}
	gw := convert.NewGateway(converter)

	// The exec backend re-probes the markitdown command after an extras
	// install; the container backend has nothing to re-probe.
	var prober extras.Prober
	if ec, ok := converter.(*convert.ExecConverter); ok {
		prober = ec
	}
	installer := extras.NewInstaller(cfg.Converter.Python, prober)

	var hist *history.Store
	if cfg.History.Path != "" {
		hist, err = history.Open(cfg.History.Path)
		if err != nil {
			// History is a convenience; the app runs without it.
			logger.WithError(err).Warn("run history disabled")
		} else {
			defer hist.Close()
		}
	}

	if cfg.Mirror.Backend == types.MirrorMinio && (cfg.Mirror.AccessKey == "" || cfg.Mirror.SecretKey == "") {
		keys, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		if cfg.Mirror.AccessKey == "" {
			cfg.Mirror.AccessKey = keys["minio-access-key"]
		}
		if cfg.Mirror.SecretKey == "" {
			cfg.Mirror.SecretKey = keys["minio-secret-key"]
		}
	}
	mirror, err := storage.New(cfg.Mirror)
	if err != nil {
		logger.WithError(err).Warn("output mirroring disabled")
		mirror = nil
	}

	handlers := server.NewHandlers(gw, installer, hist, mirror, cfg.Server.ScratchDir, logger)
	router := server.NewRouter(handlers, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
