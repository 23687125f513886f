package service

import (
	"math"

	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/pkg/apperror"
)

// CurrencyService converts amounts between the supported currencies using
// fixed configured rates. Rates are expressed as reference-currency units
// per one unit of the foreign currency, so the reference currency itself
// always has rate 1.
type CurrencyService struct {
	rates map[enum.Currency]float64
}

// NewCurrencyService creates a currency service with the given rates
// (reference-currency units per 1 USD / 1 EUR).
func NewCurrencyService(usdRate, eurRate float64) *CurrencyService {
	return &CurrencyService{
		rates: map[enum.Currency]float64{
			enum.CurrencyGEL: 1.0,
			enum.CurrencyUSD: usdRate,
			enum.CurrencyEUR: eurRate,
		},
	}
}

// Convert converts an amount in cents between two currencies, rounding to
// the nearest cent. Identity when the currencies match.
func (s *CurrencyService) Convert(amount int64, from, to enum.Currency) (int64, error) {
	if from == to {
		return amount, nil
	}

	fromRate, ok := s.rates[from]
	if !ok {
		return 0, apperror.NewValidationError("unsupported currency '%s'", from)
	}
	toRate, ok := s.rates[to]
	if !ok {
		return 0, apperror.NewValidationError("unsupported currency '%s'", to)
	}

	reference := float64(amount) * fromRate
	return int64(math.Round(reference / toRate)), nil
}

// ToReference converts an amount into the reference currency.
func (s *CurrencyService) ToReference(amount int64, from enum.Currency) (int64, error) {
	return s.Convert(amount, from, enum.ReferenceCurrency)
}

// FromReference converts a reference-currency amount into the target currency.
func (s *CurrencyService) FromReference(amount int64, to enum.Currency) (int64, error) {
	return s.Convert(amount, enum.ReferenceCurrency, to)
}
