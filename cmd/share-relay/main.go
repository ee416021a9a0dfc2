// share-relay consumes queued share requests and records the handoff.
// Clipboard and messenger shares complete on the device; the relay
// gives every share a durable server-side trace.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gagyebu/internal/config"
	"gagyebu/internal/log"
	"gagyebu/internal/share"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	relayLog := logger.WithComponent(log.ComponentShare)

	relayLog.Info("Starting share-relay")

	cfg, err := config.Load()
	if err != nil {
		relayLog.Error("Failed to load configuration", log.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		relayLog.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		relayLog.Error("AMQP_URL is required for the relay")
		os.Exit(1)
	}

	client, err := share.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		relayLog.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	relayLog.Info("Consuming share requests",
		"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	err = client.Consume(ctx, func(msg *share.Message) error {
		if !msg.Target.Valid() {
			return fmt.Errorf("unknown share target %q", msg.Target)
		}
		relayLog.Info("Share request relayed",
			"message_id", msg.ID,
			log.FieldTarget, string(msg.Target),
			"url", msg.URL,
			log.FieldOperation, log.OpShare)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		relayLog.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	relayLog.Info("share-relay stopped gracefully")
}
