package verticals

// ExampleBusiness pre-populates the calculator with a real-world profile
// so a visitor can explore a diagnosis without entering their own numbers.
type ExampleBusiness struct {
	Vertical    string  `json:"vertical"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Revenue     float64 `json:"revenue"`
	Margin      float64 `json:"margin"`
	CAC         float64 `json:"cac"`
	LTV         float64 `json:"ltv"`
}

var Examples = []ExampleBusiness{
	{
		Vertical:    "waste-management",
		Name:        "Garvey Disposal",
		Description: "Garbage collection and waste management service",
		Revenue:     642000,
		Margin:      -0.23,
		CAC:         67,
		LTV:         1300,
	},
	{
		Vertical:    "personal-styling",
		Name:        "AC Styles",
		Description: "Personal styling and fashion consulting services",
		Revenue:     309000,
		Margin:      0.42,
		CAC:         600,
		LTV:         10000,
	},
	{
		Vertical:    "health-fitness",
		Name:        "Kyo Chiropractic Chain",
		Description: "Multi-location chiropractic services",
		Revenue:     5200000,
		Margin:      0.23,
		CAC:         700,
		LTV:         3400,
	},
	{
		Vertical:    "beauty-services",
		Name:        "Amy Lash and Beauty",
		Description: "Eyelash extensions and beauty services chain",
		Revenue:     2300000,
		Margin:      0.28,
		CAC:         150,
		LTV:         2000,
	},
	{
		Vertical:    "food-service",
		Name:        "Basil & Co Thai Restaurant",
		Description: "Full-service Thai restaurant with multi-channel revenue",
		Revenue:     3500000,
		Margin:      0.19,
	},
}

// ExampleFor returns the example business for a vertical, if one exists.
func ExampleFor(vertical string) (ExampleBusiness, bool) {
	for _, ex := range Examples {
		if ex.Vertical == vertical {
			return ex, true
		}
	}
	return ExampleBusiness{}, false
}
