package lookup_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/athscan/athscan-backend/internal/lookup"
	"github.com/athscan/athscan-backend/internal/models"
)

func sampleToken() *models.TokenRecord {
	return &models.TokenRecord{
		Name:            "Bonk",
		Symbol:          "BONK",
		ATHPriceUSD:     2.5,
		ATHDate:         time.Date(2021, 11, 4, 0, 0, 0, 0, time.UTC),
		ContractAddress: "dezxaz8z7pnrnrjjz3wxborgixca6xjnb7yab1ppb263",
		CoinID:          "bonk",
	}
}

func TestFormatReport_ATHSection(t *testing.T) {
	out := lookup.FormatReport(sampleToken(), nil, nil)

	if !strings.Contains(out, "$2.50000000") {
		t.Fatalf("report should render ATH to 8 decimals:\n%s", out)
	}
	if !strings.Contains(out, "November 04, 2021 at 12:00:00 AM UTC") {
		t.Fatalf("report should render the ATH date:\n%s", out)
	}
	if !strings.Contains(out, "BONK") {
		t.Fatalf("report should contain the symbol:\n%s", out)
	}
	if strings.Contains(out, "Historical Price") {
		t.Fatalf("no historical section without a quote:\n%s", out)
	}
}

func TestFormatReport_MissingListingDate(t *testing.T) {
	out := lookup.FormatReport(sampleToken(), nil, nil)
	if !strings.Contains(out, "Listing Date:     N/A") {
		t.Fatalf("absent listing date should render as N/A:\n%s", out)
	}

	gd := time.Date(2022, 12, 29, 0, 0, 0, 0, time.UTC)
	token := sampleToken()
	token.GenesisDate = &gd
	out = lookup.FormatReport(token, nil, nil)
	if !strings.Contains(out, "December 29, 2022") {
		t.Fatalf("present listing date should be rendered:\n%s", out)
	}
}

func TestFormatReport_HistoricalSection(t *testing.T) {
	quote := &models.HistoricalQuote{
		PriceUSD:  0.5,
		QueryDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	ret := 400.0
	out := lookup.FormatReport(sampleToken(), quote, &ret)

	if !strings.Contains(out, "Historical Price (USD) on 2023-01-01: $0.50000000") {
		t.Fatalf("historical price line missing:\n%s", out)
	}
	if !strings.Contains(out, "Return from 2023-01-01 to ATH: 400.00%") {
		t.Fatalf("return line missing:\n%s", out)
	}
}

var priceRe = regexp.MustCompile(`ATH Price \(USD\):\s+\$([0-9]+\.[0-9]{8})`)

func TestFormatReport_PriceRoundTrips(t *testing.T) {
	for _, price := range []float64{2.5, 0.00001234, 69420.12345678} {
		token := sampleToken()
		token.ATHPriceUSD = price
		out := lookup.FormatReport(token, nil, nil)

		m := priceRe.FindStringSubmatch(out)
		if m == nil {
			t.Fatalf("no ATH price line in:\n%s", out)
		}
		parsed, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			t.Fatalf("parse %q: %v", m[1], err)
		}
		// Displayed value must recover the original to 8 decimal places.
		if diff := parsed - price; diff > 5e-9 || diff < -5e-9 {
			t.Fatalf("round trip lost precision: %v -> %v", price, parsed)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2021, 11, 4, 15, 30, 45, 0, time.UTC)
	got := lookup.FormatTimestamp(ts)
	if got != "November 04, 2021 at 03:30:45 PM UTC" {
		t.Fatalf("FormatTimestamp: got %q", got)
	}
}
