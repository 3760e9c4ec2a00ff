package assist

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
)

// FallbackPlate is used when a risk message carries no recognizable plate.
const FallbackPlate = "12가3456"

// Boundaries are Unicode-aware: a plate glued to Hangul on either side is not a plate.
var platePattern = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(\d{2,3}[가-힣]\d{4})(?:$|[^\p{L}\p{N}_])`)

// ExtractPlate returns the first Korean licence plate in message, or
// FallbackPlate.
func ExtractPlate(message string) string {
	if m := platePattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return FallbackPlate
}

// RiskBriefing composes the dealer-facing risk summary from the car,
// registry and maintenance records. Missing records yield the fallback
// sentence rather than an error.
func RiskBriefing(car, registry, maintenance toolvalue.Value) toolvalue.Value {
	var points []string
	if registry.Has("owner_changes") {
		points = append(points, fmt.Sprintf(ownerChangesFormat, registry.Get("owner_changes").Text()))
	}
	if registry.Get("lien").Truthy() {
		points = append(points, lienPoint)
	}
	if maintenance.Has("total_records") {
		points = append(points, fmt.Sprintf(maintenanceFormat, maintenance.Get("total_records").Text()))
	}

	summary := strings.Join(points, briefingPointSep)
	if summary == "" {
		summary = briefingFallback
	}

	return toolvalue.Pairs(
		"summary", summary,
		"disclosure_script", disclosureScript,
		"next_actions", nextActions,
		"car_snapshot", toolvalue.Pairs(
			"plate", car.Get("plate"),
			"model", car.Get("model"),
			"year", car.Get("year"),
			"km", car.Get("km"),
		),
	)
}
