package news

import (
	"github.com/shopspring/decimal"
	"github.com/zappabad/investly/internal/market"
)

// Catalog holds the two event pools.
type Catalog struct {
	Scenarios map[AgeTier][]Event
	Hotshots  []Hotshot
}

// ScenariosFor returns the scenarios for tier, falling back to the
// advanced tier when tier has none.
func (c Catalog) ScenariosFor(tier AgeTier) []Event {
	if list := c.Scenarios[tier]; len(list) > 0 {
		return list
	}
	return c.Scenarios[TierAdvanced]
}

// UnknownRef records an impact key that is not part of the universe.
type UnknownRef struct {
	EventID string
	Kind    Kind
	Symbols []string
}

// Validate lists every event whose impact map references symbols missing
// from u. It never fails; callers decide whether the result is fatal.
func (c Catalog) Validate(u market.Universe) []UnknownRef {
	var refs []UnknownRef
	check := func(kind Kind, ev Event) {
		if unknown := UnknownSymbols(ev.Impact, u); len(unknown) > 0 {
			refs = append(refs, UnknownRef{EventID: ev.ID, Kind: kind, Symbols: unknown})
		}
	}
	for _, tier := range []AgeTier{TierLow, TierMid, TierHigh} {
		for _, ev := range c.Scenarios[tier] {
			check(KindScenario, ev)
		}
	}
	for _, h := range c.Hotshots {
		check(KindHotshot, h.Event)
	}
	return refs
}

// UnknownSymbols returns the impact keys absent from u, sorted.
func UnknownSymbols(im Impact, u market.Universe) []string {
	var out []string
	for _, sym := range im.Symbols() {
		if !u.Has(sym) {
			out = append(out, sym)
		}
	}
	return out
}

func impact(m map[string]float64) Impact {
	out := make(Impact, len(m))
	for sym, v := range m {
		out[sym] = decimal.NewFromFloat(v)
	}
	return out
}

// DefaultCatalog returns the built-in scenarios and daily hotshots.
func DefaultCatalog() Catalog {
	return Catalog{
		Scenarios: defaultScenarios(),
		Hotshots:  defaultHotshots(),
	}
}

func defaultScenarios() map[AgeTier][]Event {
	return map[AgeTier][]Event{
		TierLow: {
			{
				ID:          "low-1",
				Title:       "Theme Park Weekend",
				Description: "Families flock to the park for a special event.",
				Explanation: "Entertainment spending jumps when parks are busy, lifting related stocks.",
				Impact:      impact(map[string]float64{"DIS": 0.015, "KO": 0.006}),
			},
			{
				ID:          "low-2",
				Title:       "Rainy School Days",
				Description: "Bad weather reduces travel demand for a few days.",
				Explanation: "Rain dampens travel demand, which can hurt airlines while staples hold steady.",
				Impact:      impact(map[string]float64{"THYAO": -0.012, "KO": 0.003}),
			},
		},
		TierMid: {
			{
				ID:          "mid-1",
				Title:       "Tech Product Launch",
				Description: "A major phone launch boosts chip demand and app downloads.",
				Explanation: "Successful launches increase device and software demand, boosting big tech.",
				Impact:      impact(map[string]float64{"AAPL": 0.018, "MSFT": 0.01}),
			},
			{
				ID:          "mid-2",
				Title:       "Fuel Prices Dip",
				Description: "Lower jet fuel prices help airlines improve margins.",
				Explanation: "Cheaper fuel cuts airline costs, helping carriers and industrials tied to them.",
				Impact:      impact(map[string]float64{"THYAO": 0.012, "KOC": 0.004}),
			},
		},
		TierHigh: {
			{
				ID:          "high-1",
				Title:       "Interest Rate Cut",
				Description: "Central bank announces a surprise rate cut to spur growth.",
				Explanation: "Rate cuts lower borrowing costs and often lift equities, especially growth names.",
				Impact:      impact(map[string]float64{"KOC": 0.01, "AAPL": 0.008, "MSFT": 0.008}),
			},
			{
				ID:          "high-2",
				Title:       "Streaming Slowdown",
				Description: "Entertainment spending cools as budgets tighten.",
				Explanation: "Tighter budgets trim entertainment spend, pressuring media while staples hold value.",
				Impact:      impact(map[string]float64{"DIS": -0.01, "KO": -0.004}),
			},
		},
	}
}

func defaultHotshots() []Hotshot {
	return []Hotshot{
		{
			Event: Event{
				ID:          "low-1",
				Title:       "New Tourist Destinations",
				Description: "A major tourism agency (ETST) adds new, highly popular, and exclusive holiday packages to its portfolio.",
				Explanation: "Offering unique and desirable vacation spots makes the tourism agency more attractive than competitors, increasing bookings and revenue.",
				Impact: impact(map[string]float64{
					"KOC": 0.02, "THYAO": 0.05, "AAPL": 0.02, "MSFT": 0.02, "KO": 0.02, "DIS": 0.03, "PGSUS": 0.07,
					"TREN": 0.02, "INSA": 0.02, "INSD": 0.02, "ETST": 0.1, "MEDIA": 0.02, "ODL": 0.02, "KCS": 0.01,
				}),
			},
			Difficulty: DifficultyLow,
		},
		{
			Event: Event{
				ID:          "low-2",
				Title:       "E-commerce Delivery Speed",
				Description: "The e-commerce giant (TREN) announces that it will now deliver packages in major cities within 3 hours, free of charge.",
				Explanation: "Faster delivery is a massive competitive advantage. It encourages customers to switch from slower rivals, increasing TREN's market share and value.",
				Impact: impact(map[string]float64{
					"KOC": 0.03, "THYAO": 0.01, "AAPL": 0.04, "MSFT": 0.04, "KO": 0.02, "DIS": 0.02, "PGSUS": 0.01,
					"TREN": 0.1, "INSA": 0.01, "INSD": 0.03, "ETST": 0.02, "MEDIA": 0.05, "ODL": 0.06, "KCS": 0.02,
				}),
			},
			Difficulty: DifficultyLow,
		},
		{
			Event: Event{
				ID:          "low-3",
				Title:       "Infrastructure Project Delay",
				Description: "A critical segment of a major infrastructure project managed by INSA (Construction) is delayed for six months due to unforeseen geological issues.",
				Explanation: "Project delays lead to cost overruns and potential penalty fees, reducing the construction company's expected profit and causing the stock to drop.",
				Impact: impact(map[string]float64{
					"KOC": -0.03, "THYAO": -0.03, "AAPL": -0.01, "MSFT": -0.01, "KO": -0.02, "DIS": -0.02, "PGSUS": -0.04,
					"TREN": -0.02, "INSA": -0.1, "INSD": -0.02, "ETST": -0.05, "MEDIA": -0.02, "ODL": -0.01, "KCS": 0.01,
				}),
			},
			Difficulty: DifficultyLow,
		},
		{
			Event: Event{
				ID:          "low-4",
				Title:       "Electronics Store Closure",
				Description: "One of the largest electronics retail chains (MEDIA) is forced to close many of its physical stores due to high rent costs.",
				Explanation: "Closing profitable stores reduces the overall sales capacity and signals financial difficulties, which is negatively viewed by the market.",
				Impact: impact(map[string]float64{
					"KOC": -0.02, "THYAO": 0, "AAPL": 0.05, "MSFT": 0.05, "KO": -0.01, "DIS": 0, "PGSUS": 0.01,
					"TREN": 0.08, "INSA": 0, "INSD": 0.03, "ETST": 0, "MEDIA": -0.1, "ODL": 0.03, "KCS": 0.02,
				}),
			},
			Difficulty: DifficultyLow,
		},
		{
			Event: Event{
				ID:          "mid-1",
				Title:       "Jet Fuel Price Spike",
				Description: "Global jet fuel prices surge to a record high, significantly increasing operating costs for airlines.",
				Explanation: "Airlines like PGSUS have huge fuel expenses. When fuel costs rise dramatically, their profit margins shrink, and the stock price falls.",
				Impact: impact(map[string]float64{
					"KOC": -0.03, "THYAO": -0.08, "AAPL": -0.02, "MSFT": -0.02, "KO": -0.02, "DIS": -0.03, "PGSUS": -0.1,
					"TREN": -0.02, "INSA": -0.03, "INSD": -0.02, "ETST": -0.06, "MEDIA": -0.02, "ODL": -0.01, "KCS": -0.005,
				}),
			},
			Difficulty: DifficultyMid,
		},
		{
			Event: Event{
				ID:          "mid-2",
				Title:       "SaaS Platform Wins Global Contract",
				Description: "The marketing software giant (INSD) lands a major contract with a Fortune 500 company in the USA, expanding its international footprint.",
				Explanation: "Securing large international clients validates the technology and promises long-term, high-margin subscription revenue, driving the tech stock higher.",
				Impact: impact(map[string]float64{
					"KOC": 0.03, "THYAO": 0.01, "AAPL": 0.07, "MSFT": 0.07, "KO": 0.02, "DIS": 0.02, "PGSUS": 0.01,
					"TREN": 0.03, "INSA": 0.05, "INSD": 0.1, "ETST": 0.02, "MEDIA": 0.02, "ODL": 0.03, "KCS": 0.06,
				}),
			},
			Difficulty: DifficultyMid,
		},
		{
			Event: Event{
				ID:          "mid-3",
				Title:       "Fintech Fee Regulation",
				Description: "The government announces a new regulation that caps the transaction fees that digital payment processors (ODL) can charge merchants.",
				Explanation: "Lower fees mean less revenue for Fintech companies for every transaction processed, directly limiting their profit potential and causing the stock price to drop.",
				Impact: impact(map[string]float64{
					"KOC": -0.03, "THYAO": -0.02, "AAPL": -0.04, "MSFT": -0.04, "KO": 0, "DIS": -0.01, "PGSUS": -0.02,
					"TREN": 0.08, "INSA": -0.01, "INSD": -0.05, "ETST": -0.02, "MEDIA": -0.02, "ODL": -0.1, "KCS": 0.04,
				}),
			},
			Difficulty: DifficultyMid,
		},
		{
			Event: Event{
				ID:          "mid-4",
				Title:       "E-commerce Seller Fees Cut",
				Description: "TREN cuts the commission fees it charges third-party sellers on its platform by 5% to attract more merchants.",
				Explanation: "While margins initially drop, attracting more sellers leads to a wider product range and increased customer traffic, ultimately boosting transaction volume and long-term dominance.",
				Impact: impact(map[string]float64{
					"KOC": 0.03, "THYAO": 0.01, "AAPL": 0.05, "MSFT": 0.05, "KO": 0.02, "DIS": 0.02, "PGSUS": 0.01,
					"TREN": 0.1, "INSA": 0, "INSD": 0.04, "ETST": 0.02, "MEDIA": -0.06, "ODL": 0.03, "KCS": 0.02,
				}),
			},
			Difficulty: DifficultyMid,
		},
		{
			Event: Event{
				ID:          "high-1",
				Title:       "Unforeseen FX (Foreign Exchange) Strength",
				Description: "The Turkish Lira (TL) strengthens significantly and unexpectedly against the Euro and Dollar.",
				Explanation: "A strong TL benefits companies with large foreign currency debt (like some airlines - PGSUS) but can hurt the local competitiveness of import-reliant retailers (MEDIA).",
				Impact: impact(map[string]float64{
					"KOC": 0.05, "THYAO": 0.07, "AAPL": -0.04, "MSFT": -0.04, "KO": -0.02, "DIS": -0.02, "PGSUS": 0.1,
					"TREN": 0.03, "INSA": 0.02, "INSD": -0.05, "ETST": 0.06, "MEDIA": 0.08, "ODL": -0.03, "KCS": 0.03,
				}),
			},
			Difficulty: DifficultyHigh,
		},
		{
			Event: Event{
				ID:          "high-2",
				Title:       "Major Corporate Data Breach",
				Description: "A prominent Turkish bank suffers a massive data breach, highlighting the crucial need for advanced corporate cybersecurity solutions.",
				Explanation: "Fear of hacks and non-compliance drives up immediate demand for leading corporate cybersecurity providers (KCS), signaling massive new contract opportunities.",
				Impact: impact(map[string]float64{
					"KOC": 0.03, "THYAO": 0.02, "AAPL": 0.05, "MSFT": 0.05, "KO": 0.02, "DIS": 0.04, "PGSUS": 0.02,
					"TREN": 0.03, "INSA": 0.02, "INSD": 0.08, "ETST": 0.02, "MEDIA": 0.03, "ODL": 0.07, "KCS": 0.1,
				}),
			},
			Difficulty: DifficultyHigh,
		},
		{
			Event: Event{
				ID:          "high-3",
				Title:       "Infrastructure Privatization Announcement",
				Description: "The government announces a tender for the privatization of a major highway project, generating massive competition among construction groups.",
				Explanation: "News of huge government contracts (even if it's just a tender) signals future high-margin work for companies like INSA, boosting the sector outlook.",
				Impact: impact(map[string]float64{
					"KOC": 0.06, "THYAO": 0.03, "AAPL": 0.03, "MSFT": 0.03, "KO": 0.02, "DIS": 0.03, "PGSUS": 0.03,
					"TREN": 0.04, "INSA": 0.1, "INSD": 0.03, "ETST": 0.06, "MEDIA": 0.03, "ODL": 0.02, "KCS": 0.03,
				}),
			},
			Difficulty: DifficultyHigh,
		},
		{
			Event: Event{
				ID:          "high-4",
				Title:       "New Regulation Mandates Local Payment System",
				Description: "The government mandates that all domestic e-commerce transactions must use a locally certified payment infrastructure (ODL) to reduce reliance on foreign processors.",
				Explanation: "This creates sudden, mandatory demand for local Fintech solutions, directly benefiting firms like ODL, while increasing operational costs for platforms like TREN that rely on multiple systems.",
				Impact: impact(map[string]float64{
					"KOC": 0.04, "THYAO": 0.02, "AAPL": 0.04, "MSFT": 0.04, "KO": 0.03, "DIS": 0.03, "PGSUS": 0.02,
					"TREN": 0.08, "INSA": 0.02, "INSD": 0.05, "ETST": 0.03, "MEDIA": 0.04, "ODL": 0.1, "KCS": 0.07,
				}),
			},
			Difficulty: DifficultyHigh,
		},
	}
}
