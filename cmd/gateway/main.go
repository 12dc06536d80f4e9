// チャットボットAPIゲートウェイのエントリポイント。
// Bearer認証、入力検証、回答生成サービスの呼び出しと応答の整形を担当する。
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/devchat/internal/agent"
	"github.com/nao1215/devchat/internal/config"
	"github.com/nao1215/devchat/internal/gateway"
	"github.com/nao1215/devchat/internal/persona"
	"github.com/nao1215/devchat/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Gatewayサービスの起動に失敗: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logWriter, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	gin.DefaultWriter = logWriter
	gin.DefaultErrorWriter = logWriter

	p, err := persona.Load(cfg.Persona.File, cfg.Persona.Markdown)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := agent.New(ctx, cfg.Agent, p, logger)
	if err != nil {
		return fmt.Errorf("回答生成サービスの初期化に失敗: %w", err)
	}

	server := gateway.NewServer(gateway.OptionsFromConfig(cfg), a, logger)

	logger.Info("starting gateway",
		"addr", cfg.Addr(),
		"endpoint", fmt.Sprintf("http://%s/chat/messages", cfg.Addr()),
		"provider", cfg.Agent.Provider,
		"agent", p.Name,
		"agent_timeout", cfg.Agent.Timeout,
	)
	if err := server.Run(ctx); err != nil {
		return err
	}
	logger.Info("gateway stopped")
	return nil
}
