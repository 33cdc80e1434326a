package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athscan/athscan-backend/internal/api"
	"github.com/athscan/athscan-backend/internal/coingecko"
	"github.com/athscan/athscan-backend/internal/config"
	"github.com/athscan/athscan-backend/internal/db"
	"github.com/athscan/athscan-backend/internal/httputil"
	"github.com/athscan/athscan-backend/internal/logger"
	"github.com/athscan/athscan-backend/internal/lookup"
	"github.com/athscan/athscan-backend/internal/models"
	"github.com/athscan/athscan-backend/internal/notifications"
	"github.com/athscan/athscan-backend/internal/repository"
)

const banner = `
╔══════════════════════════════════════╗
║     AthScan — Token ATH Checker      ║
║                                      ║
╚══════════════════════════════════════╝
`

func main() {
	serve := flag.Bool("serve", false, "run the REST API server instead of the interactive lookup")
	flag.Parse()

	fmt.Print(banner)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.LogLevel)

	client := coingecko.NewClient(cfg.CoinGeckoBaseURL, cfg.Platform,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	svc := lookup.NewService(client, cfg.Platform)

	if *serve {
		runServer(cfg, svc)
		return
	}

	runInteractive(cfg, svc)
}

// runInteractive is the prompt → fetch → prompt → fetch → print flow.
func runInteractive(cfg *config.Config, svc *lookup.Service) {
	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	address := promptLine(reader, fmt.Sprintf("Enter the %s contract address: ", cfg.Platform), "")
	normalized, err := svc.ValidateAddress(address)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: invalid contract address format entered.")
		os.Exit(1)
	}

	pool := connectHistory(cfg)
	if pool != nil {
		defer pool.Close()
	}

	fmt.Printf("\nFetching data for address: %s\n", normalized)

	token, err := svc.FetchToken(ctx, normalized)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", describeError(err, normalized))
		fmt.Println("\nCould not display results due to errors during data fetching.")
		return
	}

	fmt.Println()
	fmt.Println(lookup.FormatReport(token, nil, nil))

	prompt := fmt.Sprintf("\nEnter a date to check historical price (YYYY-MM-DD HH:MM:SS) [%s]: ", cfg.DefaultHistoryDate)
	dateInput := promptLine(reader, prompt, cfg.DefaultHistoryDate)

	quote, err := svc.FetchHistoricalPrice(ctx, token.CoinID, dateInput)
	if err != nil {
		if errors.Is(err, coingecko.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Warning: no price data available for %s on that date.\n", token.CoinID)
		} else {
			fmt.Fprintf(os.Stderr, "%s\n", describeError(err, normalized))
		}
		finishLookup(cfg, pool, token, nil, nil)
		return
	}

	var returnPct *float64
	if ret, err := lookup.ComputeReturn(token.ATHPriceUSD, quote.PriceUSD); err != nil {
		fmt.Fprintln(os.Stderr, "Error: historical price is zero, cannot calculate return.")
	} else {
		returnPct = &ret
	}

	fmt.Println()
	fmt.Println(lookup.FormatReport(token, quote, returnPct))

	finishLookup(cfg, pool, token, quote, returnPct)
	fmt.Println("\nDone.")
}

// runServer exposes the same lookups over HTTP until interrupted.
func runServer(cfg *config.Config, svc *lookup.Service) {
	cfg.Print()

	pool := connectHistory(cfg)
	if pool != nil {
		defer pool.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(svc, pool, cfg.APIPort, cfg.CORSAllowOrigin)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "[API] Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	fmt.Println("\nShutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "[API] Shutdown error: %v\n", err)
	}
	fmt.Println("Shutdown complete")
}

// connectHistory opens the lookup-history pool when enabled. A failed
// connection degrades to no persistence rather than aborting the lookup.
func connectHistory(cfg *config.Config) *pgxpool.Pool {
	if !cfg.HistoryEnabled {
		return nil
	}

	pool, err := db.Connect(cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] lookup history unavailable: %v\n", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] lookup history unavailable: %v\n", err)
		pool.Close()
		return nil
	}

	return pool
}

// finishLookup persists and announces a completed lookup, best effort.
func finishLookup(cfg *config.Config, pool *pgxpool.Pool, token *models.TokenRecord, quote *models.HistoricalQuote, returnPct *float64) {
	l := &models.Lookup{
		ContractAddress: token.ContractAddress,
		CoinID:          token.CoinID,
		Name:            token.Name,
		Symbol:          token.Symbol,
		ATHPriceUSD:     token.ATHPriceUSD,
		ATHDate:         token.ATHDate,
		ReturnPercent:   returnPct,
	}
	if quote != nil {
		l.HistoricalPriceUSD = &quote.PriceUSD
		l.HistoricalDate = &quote.QueryDate
	}

	if pool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := repository.NewLookupRepo(pool).Record(ctx, l); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] failed to persist lookup: %v\n", err)
		}
	}

	if cfg.WebhookURL != "" {
		notifications.NewSender(cfg.WebhookURL, cfg.BotName).NotifyLookup(l)
	}
}

func promptLine(reader *bufio.Reader, prompt, fallback string) string {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

// describeError turns lookup failures into the user-facing messages.
func describeError(err error, address string) string {
	var te *httputil.TransportError
	var se *coingecko.StatusError

	switch {
	case errors.Is(err, coingecko.ErrNotFound):
		return fmt.Sprintf("Error: coin not found on CoinGecko (404). Please check the contract address: %s", address)
	case errors.Is(err, coingecko.ErrMissingData):
		return fmt.Sprintf("Warning: %v", err)
	case errors.Is(err, lookup.ErrInvalidDate):
		return "Error: invalid date format. Please use YYYY-MM-DD HH:MM:SS."
	case errors.As(err, &te) && te.Timeout:
		return fmt.Sprintf("Error: request timed out connecting to CoinGecko. %v", err)
	case errors.As(err, &te):
		return fmt.Sprintf("Network Error: could not connect to CoinGecko. %v", err)
	case errors.As(err, &se):
		return fmt.Sprintf("HTTP Error: %v", err)
	default:
		return fmt.Sprintf("Error: an error occurred during the request: %v", err)
	}
}
