package recommendations

import "strings"

// MockResult returns a canned, hand-authored result for development and
// testing without incurring OpenAI cost. Camera requests get a dedicated
// fixture; everything else gets the laptop-oriented default echoing the
// caller's budget.
func MockResult(req Request) *Result {
	if strings.ToLower(req.ProductType) == "camera" {
		return cameraFixture()
	}
	return laptopFixture(req)
}

func cameraFixture() *Result {
	return &Result{
		Query: Query{
			DeviceType:      "camera",
			UseCase:         "photography",
			BudgetEUR:       500,
			ImportantParams: []string{"performance", "camera", "portability"},
		},
		Results: []DeviceResult{
			{
				DeviceName:   "Canon EOS M50 Mark II",
				Type:         "mirrorless camera",
				Price:        Price{Amount: float64Ptr(499), Currency: "EUR", PriceNote: "msrp"},
				OverBudgetBy: nil,
				Specs: Specs{
					GPU: "unknown",
					CPU: "DIGIC 8",
					Display: Display{
						SizeInches: float64Ptr(3),
						Resolution: "1920x1080",
						PanelType:  "unknown",
					},
					WeightKG:     float64Ptr(0.387),
					ThicknessMM:  float64Ptr(116.3),
					BatteryWH:    float64Ptr(10.4),
					ClaimedHours: float64Ptr(1),
					PortsNote:    "USB-C, HDMI",
					ReleaseYear:  intPtr(2020),
				},
				ParametersCheck: []ParameterCheck{
					{Name: "screen", Exists: "partial", Detail: stringPtr("3-inch display, 1080p resolution")},
					{Name: "portability", Exists: "true", Detail: stringPtr("lightweight and compact")},
					{Name: "battery", Exists: "partial", Detail: stringPtr("battery life claimed at 1 hour")},
				},
				Score:     85,
				WhyRanked: "Great performance for photography and very portable.",
			},
			{
				DeviceName:   "Sony Alpha a6100",
				Type:         "mirrorless camera",
				Price:        Price{Amount: float64Ptr(549), Currency: "EUR", PriceNote: "street"},
				OverBudgetBy: float64Ptr(49),
				Specs: Specs{
					GPU: "unknown",
					CPU: "BIONZ X",
					Display: Display{
						SizeInches: float64Ptr(3),
						Resolution: "1920x1080",
						PanelType:  "unknown",
					},
					WeightKG:     float64Ptr(0.396),
					ThicknessMM:  float64Ptr(66.9),
					BatteryWH:    float64Ptr(11.5),
					ClaimedHours: float64Ptr(1),
					PortsNote:    "USB-C, HDMI",
					ReleaseYear:  intPtr(2019),
				},
				ParametersCheck: []ParameterCheck{
					{Name: "screen", Exists: "partial", Detail: stringPtr("3-inch display, 1080p resolution")},
					{Name: "portability", Exists: "true", Detail: stringPtr("lightweight and compact")},
					{Name: "battery", Exists: "partial", Detail: stringPtr("battery life claimed at 1 hour")},
				},
				Score:     80,
				WhyRanked: "Excellent autofocus and image quality, but slightly over budget.",
			},
			{
				DeviceName:   "Nikon Z50",
				Type:         "mirrorless camera",
				Price:        Price{Amount: float64Ptr(599), Currency: "EUR", PriceNote: "street"},
				OverBudgetBy: float64Ptr(99),
				Specs: Specs{
					GPU: "unknown",
					CPU: "EXPEED 6",
					Display: Display{
						SizeInches: float64Ptr(3.2),
						Resolution: "1920x1080",
						PanelType:  "unknown",
					},
					WeightKG:     float64Ptr(0.396),
					ThicknessMM:  float64Ptr(73),
					BatteryWH:    float64Ptr(11.5),
					ClaimedHours: float64Ptr(1),
					PortsNote:    "USB-C, HDMI",
					ReleaseYear:  intPtr(2019),
				},
				ParametersCheck: []ParameterCheck{
					{Name: "screen", Exists: "partial", Detail: stringPtr("3.2-inch display, 1080p resolution")},
					{Name: "portability", Exists: "true", Detail: stringPtr("lightweight and compact")},
					{Name: "battery", Exists: "partial", Detail: stringPtr("battery life claimed at 1 hour")},
				},
				Score:     75,
				WhyRanked: "Good performance but exceeds budget significantly.",
			},
			{
				DeviceName:   "Fujifilm X-T200",
				Type:         "mirrorless camera",
				Price:        Price{Amount: float64Ptr(499), Currency: "EUR", PriceNote: "msrp"},
				OverBudgetBy: nil,
				Specs: Specs{
					GPU: "unknown",
					CPU: "X-Processor Pro",
					Display: Display{
						SizeInches: float64Ptr(3.5),
						Resolution: "1920x1080",
						PanelType:  "unknown",
					},
					WeightKG:     float64Ptr(0.332),
					ThicknessMM:  float64Ptr(83.7),
					BatteryWH:    float64Ptr(10.4),
					ClaimedHours: float64Ptr(1),
					PortsNote:    "USB-C, HDMI",
					ReleaseYear:  intPtr(2020),
				},
				ParametersCheck: []ParameterCheck{
					{Name: "screen", Exists: "partial", Detail: stringPtr("3.5-inch display, 1080p resolution")},
					{Name: "portability", Exists: "true", Detail: stringPtr("very lightweight")},
					{Name: "battery", Exists: "partial", Detail: stringPtr("battery life claimed at 1 hour")},
				},
				Score:     70,
				WhyRanked: "Lightweight and affordable, but performance is not as strong.",
			},
		},
		OverallConclusion: "The Canon EOS M50 Mark II is the best fit for photography within the budget, offering excellent performance, portability, and a good display for capturing high-quality images.",
	}
}

func laptopFixture(req Request) *Result {
	budget := float64Ptr(req.Budget)
	device := func(name, note string) DeviceResult {
		return DeviceResult{
			DeviceName: name,
			Type:       "laptop",
			Price:      Price{Amount: budget, Currency: "EUR", PriceNote: note},
			Specs: Specs{
				GPU:       "unknown",
				CPU:       "unknown",
				Display:   Display{Resolution: "unknown", PanelType: "unknown"},
				PortsNote: "unknown",
			},
		}
	}
	return &Result{
		Query: Query{
			DeviceType:      req.ProductType,
			UseCase:         req.UseCase(),
			BudgetEUR:       req.Budget,
			ImportantParams: req.Parameters,
		},
		Results: []DeviceResult{
			device("ASUS ROG Zephyrus G14", "msrp"),
			device("Razer Blade 15", "street"),
			device("MSI GS66 Stealth", "msrp"),
			device("Dell Alienware m15 R6", "street"),
		},
	}
}
