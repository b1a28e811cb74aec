package market

import "github.com/shopspring/decimal"

func seed(symbol, name string, ex Exchange, sector string, price float64) Instrument {
	p := decimal.NewFromFloat(price)
	return Instrument{
		Symbol:        symbol,
		Name:          name,
		Market:        ex,
		Sector:        sector,
		BasePrice:     p,
		CurrentPrice:  p,
		ChangePercent: decimal.Zero,
	}
}

// DefaultInstruments returns the starter instrument set.
func DefaultInstruments() []Instrument {
	return []Instrument{
		seed("KOC", "Koc Holding", ExchangeBIST, "Conglomerate", 150),
		seed("THYAO", "Turkish Airlines", ExchangeBIST, "Airlines", 240),
		seed("AAPL", "Apple Inc.", ExchangeNASDAQ, "Technology", 180),
		seed("MSFT", "Microsoft", ExchangeNASDAQ, "Technology", 400),
		seed("KO", "Coca-Cola", ExchangeNYSE, "Consumer Staples", 60),
		seed("DIS", "Disney", ExchangeNYSE, "Entertainment", 90),

		// Daily hotshot names
		seed("PGSUS", "Pegasus Airlines", ExchangeBIST, "Airlines", 100),
		seed("TREN", "Trendyol", ExchangeBIST, "E-commerce", 80),
		seed("INSA", "Limak Insaat", ExchangeBIST, "Construction", 60),
		seed("INSD", "Insider", ExchangeGlobal, "SaaS / Tech", 120),
		seed("ETST", "Etstur", ExchangeBIST, "Tourism", 70),
		seed("MEDIA", "MediaMarkt", ExchangeBIST, "Electronics Retail", 50),
		seed("ODL", "OdeAl / Iyzico", ExchangeBIST, "Fintech / Payment Systems", 90),
		seed("KCS", "KocSistem", ExchangeBIST, "Cybersecurity / IT", 85),
	}
}

// DefaultUniverse returns a Universe built from DefaultInstruments.
func DefaultUniverse() Universe {
	return MustUniverse(DefaultInstruments())
}
