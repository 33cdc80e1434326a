package lookup

import (
	"fmt"
	"strings"
	"time"

	"github.com/athscan/athscan-backend/internal/models"
)

const (
	reportWidth     = 62
	timestampLayout = "January 02, 2006 at 03:04:05 PM MST"
)

// FormatTimestamp renders a provider timestamp the way the report shows
// dates, e.g. "November 04, 2021 at 12:00:00 AM UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// FormatReport renders the lookup result panel. quote and returnPct are
// optional; when present the historical comparison section is appended.
// Pure string building, no side effects.
func FormatReport(token *models.TokenRecord, quote *models.HistoricalQuote, returnPct *float64) string {
	var b strings.Builder

	rule := strings.Repeat("═", reportWidth)
	divider := "--------------------"

	genesis := "N/A"
	if token.GenesisDate != nil {
		genesis = FormatTimestamp(*token.GenesisDate)
	}

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "  Token Information: %s\n", token.Name)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Name:             %s\n", token.Name)
	fmt.Fprintf(&b, "Symbol:           %s\n", token.Symbol)
	fmt.Fprintf(&b, "Contract Address: %s\n", token.ContractAddress)
	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "ATH Price (USD):  $%.8f\n", token.ATHPriceUSD)
	fmt.Fprintf(&b, "ATH Date:         %s\n", FormatTimestamp(token.ATHDate))
	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "Listing Date:     %s (note: not blockchain creation date)\n", genesis)

	if quote != nil {
		day := quote.QueryDate.Format("2006-01-02")
		fmt.Fprintf(&b, "%s\n", divider)
		fmt.Fprintf(&b, "Historical Price (USD) on %s: $%.8f\n", day, quote.PriceUSD)
		if returnPct != nil {
			fmt.Fprintf(&b, "Return from %s to ATH: %.2f%%\n", day, *returnPct)
		}
	}

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "  Data from CoinGecko\n")
	fmt.Fprintf(&b, "%s", rule)

	return b.String()
}
