// Package tools names the logical tools the assistant calls and the client
// contract used to reach them through the tool gateway.
package tools

import (
	"context"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
)

// Logical tool names routed by the gateway.
const (
	GetCarByPlate          = "inventory.get_car_by_plate"
	SearchListings         = "inventory.search_listings"
	SearchListingsFiltered = "inventory.search_listings_filtered"
	GetFilterOptions       = "inventory.get_filter_options"
	CompareListings        = "inventory.compare_listings"
	GetVehicleRegistry     = "history.get_vehicle_registry_summary"
	GetMaintenanceHistory  = "history.get_maintenance_history"
	GetMarketPrice         = "pricing.get_market_price"
	GetMonthlySalesStats   = "boss.get_monthly_sales_stats"
)

// Caller invokes a tool and returns the masked provider body ({ok, data}).
// Errors are platform errors: NOT_FOUND for unknown tools, EXTERNAL for
// upstream failures.
type Caller interface {
	Call(ctx context.Context, tool string, args toolvalue.Value) (toolvalue.Value, error)
}

// Data extracts the provider's data field from a tool body.
func Data(body toolvalue.Value) toolvalue.Value {
	return body.Get("data")
}
