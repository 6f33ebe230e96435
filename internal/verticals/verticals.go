package verticals

// Benchmark holds the per-vertical thresholds the metrics scorer compares
// against. A zero TypicalCAC/TypicalLTV pair means no ratio benchmark is
// available for the vertical and the scorer falls back to generic thresholds.
type Benchmark struct {
	Vertical            string
	HealthyMarginFloor  float64
	StrongMarginCeiling float64
	TypicalCAC          float64
	TypicalLTV          float64
	RevenueFloor        float64
	RevenueCeiling      float64
}

// MarginProfile describes the expected profitability band for a vertical.
type MarginProfile string

const (
	MarginThin    MarginProfile = "thin"    // 15-25% net margin
	MarginHealthy MarginProfile = "healthy" // 25-40% net margin
	MarginStrong  MarginProfile = "strong"  // 40-60% net margin
	MarginPremium MarginProfile = "premium" // 60%+ net margin
)

// Info is the catalog entry served to clients when they pick a vertical.
type Info struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Emoji             string        `json:"emoji"`
	ServiceModel      string        `json:"serviceModel"`
	MarginProfile     MarginProfile `json:"marginProfile"`
	ScalingConstraint string        `json:"scalingConstraint"`
}

var DefaultBenchmarks = map[string]Benchmark{
	"waste-management": {
		Vertical:            "waste-management",
		HealthyMarginFloor:  0.15,
		StrongMarginCeiling: 0.35,
		TypicalCAC:          67,
		TypicalLTV:          1300,
		RevenueFloor:        200000,
		RevenueCeiling:      2000000,
	},
	"personal-styling": {
		Vertical:            "personal-styling",
		HealthyMarginFloor:  0.40,
		StrongMarginCeiling: 0.60,
		TypicalCAC:          600,
		TypicalLTV:          10000,
		RevenueFloor:        150000,
		RevenueCeiling:      1000000,
	},
	"health-fitness": {
		Vertical:            "health-fitness",
		HealthyMarginFloor:  0.25,
		StrongMarginCeiling: 0.45,
		TypicalCAC:          700,
		TypicalLTV:          3400,
		RevenueFloor:        250000,
		RevenueCeiling:      3000000,
	},
	"hybrid-retail-service": {
		Vertical:            "hybrid-retail-service",
		HealthyMarginFloor:  0.15,
		StrongMarginCeiling: 0.35,
		RevenueFloor:        200000,
		RevenueCeiling:      2000000,
	},
	"hospitality-beverage": {
		Vertical:            "hospitality-beverage",
		HealthyMarginFloor:  0.15,
		StrongMarginCeiling: 0.35,
		RevenueFloor:        300000,
		RevenueCeiling:      3000000,
	},
	"professional-services": {
		Vertical:            "professional-services",
		HealthyMarginFloor:  0.40,
		StrongMarginCeiling: 0.60,
		RevenueFloor:        200000,
		RevenueCeiling:      2000000,
	},
	"beauty-services": {
		Vertical:            "beauty-services",
		HealthyMarginFloor:  0.25,
		StrongMarginCeiling: 0.45,
		TypicalCAC:          150,
		TypicalLTV:          2000,
		RevenueFloor:        250000,
		RevenueCeiling:      2500000,
	},
	"food-service": {
		Vertical:            "food-service",
		HealthyMarginFloor:  0.15,
		StrongMarginCeiling: 0.35,
		RevenueFloor:        500000,
		RevenueCeiling:      4000000,
	},
}

// BenchmarkFor returns the benchmark table for a vertical ID. The second
// return value is false for unknown or empty IDs; callers are expected to
// fall back to generic thresholds rather than a synthetic default.
func BenchmarkFor(vertical string) (Benchmark, bool) {
	b, ok := DefaultBenchmarks[vertical]
	return b, ok
}

var displayNames = map[string]string{
	"waste-management":      "Waste Management",
	"personal-styling":      "Personal Styling",
	"health-fitness":        "Health & Fitness",
	"hybrid-retail-service": "Hybrid Retail & Service",
	"hospitality-beverage":  "Hospitality & Beverage",
	"professional-services": "Professional Services",
	"beauty-services":       "Beauty Services",
	"food-service":          "Food Service",
}

// DisplayName maps a vertical ID to its human-readable name, or
// "Your Business" when the vertical is unknown or absent.
func DisplayName(vertical string) string {
	if name, ok := displayNames[vertical]; ok {
		return name
	}
	return "Your Business"
}

// Featured lists the verticals that ship with benchmark tables and example
// businesses, in catalog order.
var Featured = []Info{
	{
		ID:                "waste-management",
		Name:              "Waste Management",
		Description:       "Garbage collection, recycling, and disposal routes",
		Emoji:             "🚛",
		ServiceModel:      "recurring_subscription",
		MarginProfile:     MarginThin,
		ScalingConstraint: "efficiency",
	},
	{
		ID:                "personal-styling",
		Name:              "Personal Styling",
		Description:       "Personal styling and fashion consulting services",
		Emoji:             "👗",
		ServiceModel:      "retainer",
		MarginProfile:     MarginStrong,
		ScalingConstraint: "demand",
	},
	{
		ID:                "health-fitness",
		Name:              "Health & Fitness",
		Description:       "Gyms, studios, chiropractic, and wellness services",
		Emoji:             "💪",
		ServiceModel:      "appointment_based",
		MarginProfile:     MarginHealthy,
		ScalingConstraint: "demand",
	},
	{
		ID:                "hybrid-retail-service",
		Name:              "Hybrid Retail & Service",
		Description:       "Retail storefronts with a service revenue stream",
		Emoji:             "🏬",
		ServiceModel:      "hybrid",
		MarginProfile:     MarginThin,
		ScalingConstraint: "efficiency",
	},
	{
		ID:                "hospitality-beverage",
		Name:              "Hospitality & Beverage",
		Description:       "Bars, cafes, and beverage-led hospitality",
		Emoji:             "🍸",
		ServiceModel:      "multi_channel",
		MarginProfile:     MarginThin,
		ScalingConstraint: "pricing",
	},
	{
		ID:                "professional-services",
		Name:              "Professional Services",
		Description:       "Legal, accounting, consulting, and advisory firms",
		Emoji:             "💼",
		ServiceModel:      "project_based",
		MarginProfile:     MarginStrong,
		ScalingConstraint: "delivery",
	},
	{
		ID:                "beauty-services",
		Name:              "Beauty Services",
		Description:       "Salons, lash studios, and personal care chains",
		Emoji:             "💅",
		ServiceModel:      "appointment_based",
		MarginProfile:     MarginHealthy,
		ScalingConstraint: "delivery",
	},
	{
		ID:                "food-service",
		Name:              "Food Service",
		Description:       "Restaurants and multi-channel food businesses",
		Emoji:             "🍜",
		ServiceModel:      "multi_channel",
		MarginProfile:     MarginThin,
		ScalingConstraint: "efficiency",
	},
}
