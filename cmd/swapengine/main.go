package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/config"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/swapengine"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func loadEnv() {
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))
}

func main() {
	loadEnv()

	mode := flag.String("mode", "quote", "quote | execute")
	poolID := flag.String("pool", "", "DeepBook pool object id")
	direction := flag.String("direction", string(deepbook.BaseToQuote), "baseToQuote | quoteToBase")
	amount := flag.String("amount", "", "amount in human units (e.g. 2.5)")
	slippage := flag.Float64("slippage", 1, "slippage tolerance in percent (e.g. 1 = 1%)")
	flag.Parse()

	if *poolID == "" {
		fmt.Println("missing -pool")
		os.Exit(2)
	}
	if *amount == "" {
		fmt.Println("missing -amount")
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	engine, err := swapengine.NewEngine(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to init swap engine")
	}
	defer engine.Close()

	pool, err := engine.FindPool(ctx, *poolID)
	if err != nil {
		logger.WithError(err).Fatal("pool lookup failed")
	}

	intent := &swapengine.SwapIntent{
		Pool:        pool,
		Direction:   deepbook.Direction(*direction),
		Amount:      *amount,
		SlippagePct: *slippage,
		RequestedAt: time.Now().UTC(),
	}

	switch *mode {
	case "quote":
		q, err := engine.GetQuote(ctx, intent)
		if err != nil {
			fmt.Println("quote failed:", err)
			os.Exit(1)
		}
		fmt.Printf("pool=%s direction=%s amount_in=%s estimated_out=%.8f rate=%.8f\n",
			q.PoolID, q.Direction, q.InputAmount, q.EstimatedOut, q.Rate)
	case "execute":
		res, err := engine.ExecuteSwap(ctx, intent)
		if err != nil {
			fmt.Println("execute failed:", err)
			os.Exit(1)
		}
		fmt.Printf("success=%v digest=%s duration=%s\n", res.Success, res.Digest, res.Duration)
	default:
		fmt.Println("invalid -mode (use quote|execute)")
		os.Exit(2)
	}
}
