package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/components/systemprompt"
)

// CurrentDateProvider injects today's date so agents resolve relative
// dates like "next June" consistently.
func CurrentDateProvider() systemprompt.ContextProvider {
	return systemprompt.NewFuncProvider("Current Date", func() string {
		return time.Now().Format("Monday, January 2, 2006")
	})
}

// ColumnsProvider describes the queryable tables so SQL-writing agents
// only reference real columns.
func ColumnsProvider() systemprompt.ContextProvider {
	info := fmt.Sprintf(
		"Table '%s' columns: %s. The 'duration' column contains days.\nTable '%s' columns: cruise_id, starting_price.",
		catalog.CruisesTable, strings.Join(catalog.CruiseColumns, ", "), catalog.PricingTable,
	)
	return systemprompt.NewStaticProvider("Cruise Table Schema", info)
}

// StatsProvider summarizes the catalog so the root agent knows what the
// data can answer. Resolved lazily at prompt generation time.
func StatsProvider(store *catalog.Store) systemprompt.ContextProvider {
	return systemprompt.NewFuncProvider("Catalog Summary", func() string {
		stats, err := store.Stats(context.Background())
		if err != nil {
			return ""
		}
		return fmt.Sprintf(
			"The catalog holds %d cruises across %d destinations, priced from $%.0f to $%.0f per person.",
			stats.Cruises, stats.Destinations, stats.MinPrice, stats.MaxPrice,
		)
	})
}
