package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/athscan/athscan-backend/internal/httputil"
	"github.com/athscan/athscan-backend/internal/logger"
)

// historyDateLayout is the format CoinGecko's history endpoint requires.
const historyDateLayout = "02-01-2006"

var (
	// ErrNotFound means the provider has no coin for the given contract
	// address, or no price for the requested date.
	ErrNotFound = errors.New("coin not found")

	// ErrMissingData means the response decoded fine but a required
	// market-data field was absent.
	ErrMissingData = errors.New("required market data missing")
)

// StatusError is a non-404 HTTP error from the provider.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("coingecko returned status %d: %s", e.Status, e.Body)
}

// TokenData is the subset of the contract-lookup response we care about.
type TokenData struct {
	ID          string
	Name        string
	Symbol      string
	GenesisDate *time.Time
	ATHPriceUSD float64
	ATHDate     time.Time
}

type Client struct {
	baseURL    string
	platform   string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL, platform string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		platform:   platform,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.ForComponent("coingecko"),
	}
}

// TokenByContract fetches token metadata and ATH data for a contract address
// on the client's platform.
func (c *Client) TokenByContract(ctx context.Context, address string) (*TokenData, error) {
	endpoint := fmt.Sprintf("%s/coins/%s/contract/%s",
		c.baseURL, url.PathEscape(c.platform), url.PathEscape(address))

	c.log.Debug().Str("address", address).Msg("fetching token by contract")

	resp, err := httputil.Do(ctx, c.httpClient, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("contract lookup: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var data struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Symbol      string  `json:"symbol"`
		GenesisDate *string `json:"genesis_date"`
		MarketData  struct {
			ATH struct {
				USD *float64 `json:"usd"`
			} `json:"ath"`
			ATHDate struct {
				USD string `json:"usd"`
			} `json:"ath_date"`
		} `json:"market_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode contract response: %w", err)
	}

	if data.MarketData.ATH.USD == nil {
		c.log.Warn().Str("name", data.Name).Msg("ATH price absent in response")
		return nil, fmt.Errorf("ath price for %s: %w", data.Name, ErrMissingData)
	}
	athDate, err := time.Parse(time.RFC3339, data.MarketData.ATHDate.USD)
	if err != nil {
		return nil, fmt.Errorf("ath date for %s: %w", data.Name, ErrMissingData)
	}

	token := &TokenData{
		ID:          data.ID,
		Name:        data.Name,
		Symbol:      data.Symbol,
		ATHPriceUSD: *data.MarketData.ATH.USD,
		ATHDate:     athDate,
	}

	// Listing date is legitimately absent for many tokens; null and a
	// missing key both render as "no date" downstream.
	if data.GenesisDate != nil {
		if gd, err := time.Parse("2006-01-02", *data.GenesisDate); err == nil {
			token.GenesisDate = &gd
		} else {
			c.log.Warn().Str("genesis_date", *data.GenesisDate).Msg("unparseable listing date")
		}
	}

	return token, nil
}

// HistoricalPrice fetches the USD price of a coin on the given date.
func (c *Client) HistoricalPrice(ctx context.Context, coinID string, date time.Time) (float64, error) {
	endpoint := fmt.Sprintf("%s/coins/%s/history?date=%s",
		c.baseURL, url.PathEscape(coinID), date.Format(historyDateLayout))

	c.log.Debug().Str("coin", coinID).Str("date", date.Format(historyDateLayout)).
		Msg("fetching historical price")

	resp, err := httputil.Do(ctx, c.httpClient, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return 0, fmt.Errorf("history lookup: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return 0, err
	}

	var data struct {
		MarketData struct {
			CurrentPrice struct {
				USD *float64 `json:"usd"`
			} `json:"current_price"`
		} `json:"market_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("decode history response: %w", err)
	}

	if data.MarketData.CurrentPrice.USD == nil {
		return 0, fmt.Errorf("no price for %s on %s: %w",
			coinID, date.Format(historyDateLayout), ErrNotFound)
	}

	return *data.MarketData.CurrentPrice.USD, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{
			Status: resp.StatusCode,
			Body:   httputil.ReadLimited(resp.Body, 512),
		}
	}
	return nil
}
