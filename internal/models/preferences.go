package models

// Поддерживаемые валюты отображения.
const (
	CurrencyUSD = "USD"
	CurrencyUAH = "UAH"
	CurrencyEUR = "EUR"
)

// Поддерживаемые языки интерфейса.
const (
	LanguageEN = "EN"
	LanguageUA = "UA"
)

// Option пункт выпадающего списка настроек.
type Option struct {
	Value string
	Label string
	Flag  string
}

// Currencies возвращает варианты валют в порядке отображения.
func Currencies() []Option {
	return []Option{
		{Value: CurrencyUSD, Label: CurrencyUSD, Flag: "🇺🇸"},
		{Value: CurrencyUAH, Label: CurrencyUAH, Flag: "🇺🇦"},
		{Value: CurrencyEUR, Label: CurrencyEUR, Flag: "🇪🇺"},
	}
}

// Languages возвращает варианты языков в порядке отображения.
func Languages() []Option {
	return []Option{
		{Value: LanguageEN, Label: LanguageEN, Flag: "🇬🇧"},
		{Value: LanguageUA, Label: LanguageUA, Flag: "🇺🇦"},
	}
}

// FlagFor возвращает флаг для значения настройки или пустую строку,
// если значение не из списка (сеттеры принимают любые строки).
func FlagFor(value string) string {
	for _, o := range append(Currencies(), Languages()...) {
		if o.Value == value {
			return o.Flag
		}
	}
	return ""
}
