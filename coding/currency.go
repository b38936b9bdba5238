package coding

// Currency is an ISO-4217 alphabetic currency code.
type Currency string

// isoCurrencies is the supported ISO-4217 code table, alphabetically
// ordered so that code order matches the natural ordering of the codes.
var isoCurrencies = []Currency{
	"AED", "AFN", "ALL", "AMD", "ANG", "AOA", "ARS", "AUD", "AWG", "AZN",
	"BAM", "BBD", "BDT", "BGN", "BHD", "BIF", "BMD", "BND", "BOB", "BRL",
	"BSD", "BTN", "BWP", "BYN", "BZD",
	"CAD", "CDF", "CHF", "CLP", "CNY", "COP", "CRC", "CUP", "CVE", "CZK",
	"DJF", "DKK", "DOP", "DZD",
	"EGP", "ERN", "ETB", "EUR",
	"FJD", "FKP",
	"GBP", "GEL", "GHS", "GIP", "GMD", "GNF", "GTQ", "GYD",
	"HKD", "HNL", "HRK", "HTG", "HUF",
	"IDR", "ILS", "INR", "IQD", "IRR", "ISK",
	"JMD", "JOD", "JPY",
	"KES", "KGS", "KHR", "KMF", "KPW", "KRW", "KWD", "KYD", "KZT",
	"LAK", "LBP", "LKR", "LRD", "LSL", "LYD",
	"MAD", "MDL", "MGA", "MKD", "MMK", "MNT", "MOP", "MRU", "MUR", "MVR",
	"MWK", "MXN", "MYR", "MZN",
	"NAD", "NGN", "NIO", "NOK", "NPR", "NZD",
	"OMR",
	"PAB", "PEN", "PGK", "PHP", "PKR", "PLN", "PYG",
	"QAR",
	"RON", "RSD", "RUB", "RWF",
	"SAR", "SBD", "SCR", "SDG", "SEK", "SGD", "SHP", "SLE", "SOS", "SRD",
	"SSP", "STN", "SYP", "SZL",
	"THB", "TJS", "TMT", "TND", "TOP", "TRY", "TTD", "TWD", "TZS",
	"UAH", "UGX", "USD", "UYU", "UZS",
	"VES", "VND", "VUV",
	"WST",
	"XAF", "XCD", "XOF", "XPF",
	"YER",
	"ZAR", "ZMW", "ZWL",
}

var currencyCodes = func() map[Currency]int32 {
	m := make(map[Currency]int32, len(isoCurrencies))
	for i, c := range isoCurrencies {
		m[c] = int32(i)
	}
	return m
}()

// ISOCurrency codes Currency values by their index in the static ISO-4217
// table. Unrecognized currency codes cannot be encoded.
var ISOCurrency IntCoding = currencyCoding{}

type currencyCoding struct{}

func (currencyCoding) Code(v any) int32 {
	if v == nil {
		return NullInt32
	}
	var cur Currency
	switch c := v.(type) {
	case Currency:
		cur = c
	case string:
		cur = Currency(c)
	default:
		panic(encodeErr("currency", v))
	}
	code, ok := currencyCodes[cur]
	if !ok {
		panic(encodeErr("currency", v))
	}
	return code
}

func (currencyCoding) Value(code int32) any {
	if code == NullInt32 {
		return nil
	}
	if code < 0 || int(code) >= len(isoCurrencies) {
		return nil
	}
	return isoCurrencies[code]
}

// Ordered holds because the table is alphabetical: code order equals the
// natural ordering of ISO codes.
func (currencyCoding) Ordered() bool { return true }
