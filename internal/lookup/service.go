package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/athscan/athscan-backend/internal/coingecko"
	"github.com/athscan/athscan-backend/internal/logger"
	"github.com/athscan/athscan-backend/internal/models"
)

const (
	minAddressLen = 32
	maxAddressLen = 45
)

var (
	ErrInvalidAddress = errors.New("invalid contract address format")
	ErrInvalidDate    = errors.New("invalid date format")

	// ErrZeroPrice means the historical price was zero, so a return
	// percentage cannot be computed.
	ErrZeroPrice = errors.New("historical price is zero")
)

// dateLayouts are the accepted historical-date input formats.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Service orchestrates token lookups against the price provider.
type Service struct {
	client   *coingecko.Client
	platform string
	log      zerolog.Logger
}

func NewService(client *coingecko.Client, platform string) *Service {
	return &Service{
		client:   client,
		platform: platform,
		log:      logger.ForComponent("lookup"),
	}
}

// ValidateAddress checks the contract-address format and returns the
// normalized (trimmed, lowercased) address. For the ethereum platform the
// address must additionally be a valid hex address.
func (s *Service) ValidateAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if len(addr) < minAddressLen || len(addr) > maxAddressLen {
		return "", fmt.Errorf("%w: length %d not in [%d,%d]",
			ErrInvalidAddress, len(addr), minAddressLen, maxAddressLen)
	}
	if s.platform == "ethereum" && !common.IsHexAddress(addr) {
		return "", fmt.Errorf("%w: not a hex address", ErrInvalidAddress)
	}
	return strings.ToLower(addr), nil
}

// FetchToken validates the address and fetches the token's metadata and
// all-time-high data.
func (s *Service) FetchToken(ctx context.Context, address string) (*models.TokenRecord, error) {
	normalized, err := s.ValidateAddress(address)
	if err != nil {
		return nil, err
	}

	data, err := s.client.TokenByContract(ctx, normalized)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("coin", data.ID).Float64("ath", data.ATHPriceUSD).Msg("token fetched")

	return &models.TokenRecord{
		Name:            data.Name,
		Symbol:          strings.ToUpper(data.Symbol),
		ATHPriceUSD:     data.ATHPriceUSD,
		ATHDate:         data.ATHDate,
		GenesisDate:     data.GenesisDate,
		ContractAddress: normalized,
		CoinID:          data.ID,
	}, nil
}

// FetchHistoricalPrice parses the user-supplied date and fetches the coin's
// USD price on that day.
func (s *Service) FetchHistoricalPrice(ctx context.Context, coinID, input string) (*models.HistoricalQuote, error) {
	date, err := ParseDate(input)
	if err != nil {
		return nil, err
	}

	price, err := s.client.HistoricalPrice(ctx, coinID, date)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("coin", coinID).Time("date", date).Float64("price", price).
		Msg("historical price fetched")

	return &models.HistoricalQuote{PriceUSD: price, QueryDate: date}, nil
}

// ParseDate accepts "YYYY-MM-DD HH:MM:SS", "YYYY-MM-DDTHH:MM:SS" or a bare
// "YYYY-MM-DD".
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD HH:MM:SS", ErrInvalidDate, input)
}

// ComputeReturn is the percentage gain from the historical price to the ATH.
func ComputeReturn(athPrice, historicalPrice float64) (float64, error) {
	if historicalPrice == 0 {
		return 0, ErrZeroPrice
	}
	return (athPrice/historicalPrice - 1) * 100, nil
}
