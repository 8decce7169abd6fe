package domain

// Currency is an ISO 4217 currency code.
type Currency string

// Supported currencies.
const (
	CurrencyARS Currency = "ARS" // Argentine Peso
	CurrencyAUD Currency = "AUD" // Australian Dollar
	CurrencyBOB Currency = "BOB" // Boliviano
	CurrencyBRL Currency = "BRL" // Brazilian Real
	CurrencyBYN Currency = "BYN" // Belarusian Ruble
	CurrencyCAD Currency = "CAD" // Canadian Dollar
	CurrencyCHF Currency = "CHF" // Swiss Franc
	CurrencyCLP Currency = "CLP" // Chilean Peso
	CurrencyCNY Currency = "CNY" // Chinese Yuan
	CurrencyCOP Currency = "COP" // Colombian Peso
	CurrencyCZK Currency = "CZK" // Czech Koruna
	CurrencyDKK Currency = "DKK" // Danish Krone
	CurrencyEUR Currency = "EUR" // Euro
	CurrencyGBP Currency = "GBP" // British Pound
	CurrencyHKD Currency = "HKD" // Hong Kong Dollar
	CurrencyILS Currency = "ILS" // Israeli New Shekel
	CurrencyINR Currency = "INR" // Indian Rupee
	CurrencyIRR Currency = "IRR" // Iranian Rial
	CurrencyJPY Currency = "JPY" // Japanese Yen
	CurrencyKRW Currency = "KRW" // South Korean Won
	CurrencyMXN Currency = "MXN" // Mexican Peso
	CurrencyPEN Currency = "PEN" // Peruvian Sol
	CurrencyPLN Currency = "PLN" // Polish Zloty
	CurrencyRUB Currency = "RUB" // Russian Ruble
	CurrencySEK Currency = "SEK" // Swedish Krona
	CurrencySGD Currency = "SGD" // Singapore Dollar
	CurrencyTRY Currency = "TRY" // Turkish Lira
	CurrencyUAH Currency = "UAH" // Ukrainian Hryvnia
	CurrencyUSD Currency = "USD" // United States Dollar
	CurrencyZAR Currency = "ZAR" // South African Rand
)

// Currencies lists every supported code in declaration order.
// Containment matching walks this slice, so order decides ties.
var Currencies = []Currency{ //nolint:gochecknoglobals // static code table
	CurrencyARS, CurrencyAUD, CurrencyBOB, CurrencyBRL, CurrencyBYN,
	CurrencyCAD, CurrencyCHF, CurrencyCLP, CurrencyCNY, CurrencyCOP,
	CurrencyCZK, CurrencyDKK, CurrencyEUR, CurrencyGBP, CurrencyHKD,
	CurrencyILS, CurrencyINR, CurrencyIRR, CurrencyJPY, CurrencyKRW,
	CurrencyMXN, CurrencyPEN, CurrencyPLN, CurrencyRUB, CurrencySEK,
	CurrencySGD, CurrencyTRY, CurrencyUAH, CurrencyUSD, CurrencyZAR,
}

// Valid reports whether c is a supported currency code.
func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}
