package enum

// Currency is the closed set of currencies the system understands.
// All monetary state is persisted in the reference currency; the others
// exist only for quoting and payment input.
type Currency string

const (
	CurrencyGEL Currency = "GEL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// ReferenceCurrency is the currency every amount is stored in.
const ReferenceCurrency = CurrencyGEL

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyGEL, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}
