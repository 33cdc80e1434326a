package lookup_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/athscan/athscan-backend/internal/coingecko"
	"github.com/athscan/athscan-backend/internal/lookup"
)

func newService(srv *httptest.Server, platform string) *lookup.Service {
	client := coingecko.NewClient(srv.URL, platform, 5*time.Second)
	return lookup.NewService(client, platform)
}

func TestValidateAddress_Boundaries(t *testing.T) {
	svc := lookup.NewService(nil, "solana")

	cases := []struct {
		length int
		ok     bool
	}{
		{31, false},
		{32, true},
		{45, true},
		{46, false},
		{0, false},
	}
	for _, tc := range cases {
		addr := strings.Repeat("a", tc.length)
		_, err := svc.ValidateAddress(addr)
		if tc.ok && err != nil {
			t.Fatalf("length %d should be valid: %v", tc.length, err)
		}
		if !tc.ok && !errors.Is(err, lookup.ErrInvalidAddress) {
			t.Fatalf("length %d should be rejected, got %v", tc.length, err)
		}
	}
}

func TestValidateAddress_Normalizes(t *testing.T) {
	svc := lookup.NewService(nil, "solana")

	got, err := svc.ValidateAddress("  DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263  ")
	if err != nil {
		t.Fatalf("ValidateAddress: %v", err)
	}
	if got != "dezxaz8z7pnrnrjjz3wxborgixca6xjnb7yab1ppb263" {
		t.Fatalf("expected trimmed lowercase address, got %q", got)
	}
}

func TestValidateAddress_EthereumHexCheck(t *testing.T) {
	svc := lookup.NewService(nil, "ethereum")

	if _, err := svc.ValidateAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"); err != nil {
		t.Fatalf("valid hex address rejected: %v", err)
	}

	// Right length, not hex.
	_, err := svc.ValidateAddress("zzA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	if !errors.Is(err, lookup.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress for non-hex, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	for _, input := range []string{
		"2023-01-01 00:00:00",
		"2023-01-01T00:00:00",
		"2023-01-01",
	} {
		got, err := lookup.ParseDate(input)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", input, err)
		}
		want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %s", input, got)
		}
	}

	for _, input := range []string{"01/01/2023", "not a date", "2023-13-40"} {
		if _, err := lookup.ParseDate(input); !errors.Is(err, lookup.ErrInvalidDate) {
			t.Fatalf("ParseDate(%q) should fail with ErrInvalidDate, got %v", input, err)
		}
	}
}

func TestComputeReturn(t *testing.T) {
	got, err := lookup.ComputeReturn(2.5, 0.5)
	if err != nil {
		t.Fatalf("ComputeReturn: %v", err)
	}
	if got != 400.0 {
		t.Fatalf("expected 400.0, got %f", got)
	}

	if _, err := lookup.ComputeReturn(2.5, 0); !errors.Is(err, lookup.ErrZeroPrice) {
		t.Fatalf("expected ErrZeroPrice, got %v", err)
	}
	if _, err := lookup.ComputeReturn(0, 0); !errors.Is(err, lookup.ErrZeroPrice) {
		t.Fatalf("expected ErrZeroPrice for any ATH, got %v", err)
	}
}

func TestFetchToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "bonk", "name": "Bonk", "symbol": "bonk",
			"genesis_date": "2022-12-29",
			"market_data": {"ath": {"usd": 2.5}, "ath_date": {"usd": "2021-11-04T00:00:00.000Z"}}
		}`))
	}))
	defer srv.Close()

	svc := newService(srv, "solana")
	token, err := svc.FetchToken(context.Background(), "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")
	if err != nil {
		t.Fatalf("FetchToken: %v", err)
	}

	if token.Symbol != "BONK" {
		t.Fatalf("symbol should be uppercased, got %q", token.Symbol)
	}
	if token.ContractAddress != "dezxaz8z7pnrnrjjz3wxborgixca6xjnb7yab1ppb263" {
		t.Fatalf("address should be normalized, got %q", token.ContractAddress)
	}
	if token.CoinID != "bonk" {
		t.Fatalf("coin id: got %q", token.CoinID)
	}
}

func TestFetchToken_InvalidAddressSkipsNetwork(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := newService(srv, "solana")
	_, err := svc.FetchToken(context.Background(), "tooshort")
	if !errors.Is(err, lookup.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
	if called {
		t.Fatal("no network call should happen for an invalid address")
	}
}

func TestFetchToken_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	svc := newService(srv, "solana")
	_, err := svc.FetchToken(context.Background(), strings.Repeat("a", 40))
	if !errors.Is(err, coingecko.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchHistoricalPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"market_data":{"current_price":{"usd":0.5}}}`))
	}))
	defer srv.Close()

	svc := newService(srv, "solana")
	quote, err := svc.FetchHistoricalPrice(context.Background(), "bonk", "2023-01-01 00:00:00")
	if err != nil {
		t.Fatalf("FetchHistoricalPrice: %v", err)
	}
	if quote.PriceUSD != 0.5 {
		t.Fatalf("price: got %f", quote.PriceUSD)
	}
	if quote.QueryDate.Format("2006-01-02") != "2023-01-01" {
		t.Fatalf("query date: got %s", quote.QueryDate)
	}
}

func TestFetchHistoricalPrice_BadDate(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := newService(srv, "solana")
	_, err := svc.FetchHistoricalPrice(context.Background(), "bonk", "garbage")
	if !errors.Is(err, lookup.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if called {
		t.Fatal("no network call should happen for an unparseable date")
	}
}
