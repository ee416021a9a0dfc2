package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gagyebu/internal/auth"
	"gagyebu/internal/avatar"
	"gagyebu/internal/classify"
	"gagyebu/internal/config"
	"gagyebu/internal/core"
	"gagyebu/internal/dashboard"
	apphttp "gagyebu/internal/http"
	"gagyebu/internal/journal"
	"gagyebu/internal/ledger"
	"gagyebu/internal/log"
	"gagyebu/internal/registry"
	"gagyebu/internal/schedule"
	"gagyebu/internal/settings"
	"gagyebu/internal/share"
)

var rootCmd = &cobra.Command{
	Use:           "gagyebu",
	Short:         "가계부 personal finance and life journal server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Bool("demo", false, "Seed showcase data for local development")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	appLog := logger.WithComponent(log.ComponentApp)

	appLog.Info("Starting gagyebu server")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	sessions, err := auth.NewSessionStore(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("initialize session store: %w", err)
	}
	defer sessions.Close()

	// The share publisher is optional. Without a broker every share
	// still returns its payload to the caller; only the relay handoff
	// is skipped.
	var shareClient *share.Client
	if cfg.AMQPURL != "" {
		shareClient, err = share.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			appLog.Warn("AMQP connection failed, share relay disabled", log.FieldError, err)
			shareClient = nil
		} else {
			defer shareClient.Close()
			appLog.Info("AMQP client initialized",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		appLog.Info("AMQP disabled, no broker URL configured")
	}

	reg := registry.NewDefault()
	reg.SetDefaultBudget(cfg.DefaultBudget)

	led := ledger.NewStore(classify.New(nil))
	jrn := journal.NewStore()
	sch := schedule.NewStore()

	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		if err := seedShowcase(led, jrn, sch, reg); err != nil {
			return fmt.Errorf("seed showcase data: %w", err)
		}
		appLog.Info("Showcase data seeded")
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:         ":" + cfg.Port,
		Ledger:       led,
		Registry:     reg,
		Journal:      jrn,
		Schedule:     sch,
		Publisher:    share.NewPublisher(shareClient),
		Auth:         auth.NewService(sessions),
		Avatar:       avatar.NewFetcher(cfg.AvatarURL),
		Dashboard:    dashboard.NewService(led, jrn, reg.Budget),
		Settings:     settings.NewStore(),
		Logger:       logger,
		ShareBaseURL: cfg.ShareBaseURL,
		CacheSize:    cfg.CacheSize,
		CacheTTL:     cfg.CacheTTL,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLog.Info("Listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		appLog.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	appLog.Info("Server stopped gracefully")
	return nil
}

// seedShowcase loads a month of sample data so a fresh checkout has
// something to look at.
func seedShowcase(led *ledger.Store, jrn *journal.Store, sch *schedule.Store, reg *registry.Registry) error {
	reg.SeedShowcaseBudgets()

	today := core.Today()
	year, month := today.Year(), int(today.Month())

	txs := []ledger.Input{
		{Description: "월급", Amount: 3_000_000, Category: "급여", Date: core.NewDate(year, month, 1), Type: core.Income, PaymentMethod: "BankTransfer"},
		{Description: "스타벅스 아메리카노", Amount: 4_500, Date: core.NewDate(year, month, 3), Type: core.Expense, PaymentMethod: "CreditCard"},
		{Description: "지하철 교통카드 충전", Amount: 50_000, Date: core.NewDate(year, month, 5), Type: core.Expense, PaymentMethod: "DebitCard"},
		{Description: "쿠팡 생필품", Amount: 38_900, Date: core.NewDate(year, month, 8), Type: core.Expense, PaymentMethod: "CreditCard"},
		{Description: "CGV 영화", Amount: 15_000, Date: core.NewDate(year, month, 10), Type: core.Expense, PaymentMethod: "MobilePay"},
	}
	for _, in := range txs {
		if _, err := led.Add(in); err != nil {
			return err
		}
	}

	entries := []journal.Input{
		{UserID: 1, Date: core.NewDate(year, month, 3), Title: "한강 러닝", Content: "오늘은 5km를 달렸다. 날씨가 좋아서 기분 최고!", Mood: journal.MoodGood, Category: "운동", Tags: []string{"러닝", "한강"}},
		{UserID: 1, Date: core.NewDate(year, month, 7), Title: "집에서 파스타 만들기", Content: "알리오 올리오에 도전했는데 생각보다 잘 됐다.", Mood: journal.MoodGood, Category: "음식", Tags: []string{"요리"}},
	}
	for _, in := range entries {
		if _, err := jrn.Add(in); err != nil {
			return err
		}
	}

	events := []schedule.Input{
		{Date: core.NewDate(year, month, 15), Title: "팀 회의", Description: "월간 회의", Color: "blue", Author: "김민수"},
		{Date: core.NewDate(year, month, 20), Title: "치과 예약", Description: "정기 검진", Color: "red", Author: "김민수"},
	}
	for _, in := range events {
		if _, err := sch.Add(in); err != nil {
			return err
		}
	}
	return nil
}
