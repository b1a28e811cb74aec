package market

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownSymbol     = errors.New("unknown symbol")
	ErrDuplicateSymbol   = errors.New("duplicate symbol")
	ErrInvalidInstrument = errors.New("invalid instrument")
)

// Universe is an immutable point-in-time snapshot of all instruments,
// keyed by symbol. Iteration follows the order instruments were listed in.
//
// A Universe is never modified after construction, so snapshots can be
// shared freely between the turn controller, valuation and the display.
type Universe struct {
	bySymbol map[string]Instrument
	order    []string
}

// NewUniverse builds a Universe from the given instruments.
func NewUniverse(instruments []Instrument) (Universe, error) {
	u := Universe{
		bySymbol: make(map[string]Instrument, len(instruments)),
		order:    make([]string, 0, len(instruments)),
	}
	for _, inst := range instruments {
		if inst.Symbol == "" {
			return Universe{}, fmt.Errorf("%w: empty symbol", ErrInvalidInstrument)
		}
		if !inst.BasePrice.IsPositive() {
			return Universe{}, fmt.Errorf("%w: %s base price must be positive", ErrInvalidInstrument, inst.Symbol)
		}
		if inst.CurrentPrice.IsNegative() {
			return Universe{}, fmt.Errorf("%w: %s current price is negative", ErrInvalidInstrument, inst.Symbol)
		}
		if _, exists := u.bySymbol[inst.Symbol]; exists {
			return Universe{}, fmt.Errorf("%w: %s", ErrDuplicateSymbol, inst.Symbol)
		}
		u.bySymbol[inst.Symbol] = inst
		u.order = append(u.order, inst.Symbol)
	}
	return u, nil
}

// MustUniverse is like NewUniverse but panics on invalid input.
// Intended for static seed data.
func MustUniverse(instruments []Instrument) Universe {
	u, err := NewUniverse(instruments)
	if err != nil {
		panic(err)
	}
	return u
}

// Get returns the instrument for symbol.
func (u Universe) Get(symbol string) (Instrument, bool) {
	inst, ok := u.bySymbol[symbol]
	return inst, ok
}

// Has reports whether symbol is part of the universe.
func (u Universe) Has(symbol string) bool {
	_, ok := u.bySymbol[symbol]
	return ok
}

// Price returns the current price for symbol.
func (u Universe) Price(symbol string) (decimal.Decimal, error) {
	inst, ok := u.bySymbol[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	return inst.CurrentPrice, nil
}

// Len returns the number of instruments.
func (u Universe) Len() int {
	return len(u.order)
}

// Symbols returns all symbols in listing order.
func (u Universe) Symbols() []string {
	out := make([]string, len(u.order))
	copy(out, u.order)
	return out
}

// Instruments returns a copy of all instruments in listing order.
func (u Universe) Instruments() []Instrument {
	out := make([]Instrument, 0, len(u.order))
	for _, sym := range u.order {
		out = append(out, u.bySymbol[sym])
	}
	return out
}

// Map applies fn to every instrument and returns a new Universe with the
// results. The receiver is left untouched. fn must not change the symbol.
func (u Universe) Map(fn func(Instrument) Instrument) Universe {
	next := Universe{
		bySymbol: make(map[string]Instrument, len(u.order)),
		order:    u.order, // order is never written after construction
	}
	for _, sym := range u.order {
		inst := fn(u.bySymbol[sym])
		inst.Symbol = sym
		next.bySymbol[sym] = inst
	}
	return next
}

// MarshalJSON encodes the universe as an ordered list of instruments.
func (u Universe) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Instruments())
}
