// Package money formatea montos decimales para presentación (2 decimales).
// El cálculo nunca redondea; solo la presentación.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter aplica símbolo de moneda y separadores según el locale.
type Formatter struct {
	symbol  string
	group   string // separador de miles
	decimal string // separador decimal
}

// NewFormatter construye el formateador. Un locale inválido cae a en-US.
// Los separadores se toman del locale una sola vez; los montos se arman desde
// el texto exacto del decimal, sin pasar por float64.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	group, dec := separators(message.NewPrinter(tag))
	return &Formatter{symbol: symbol, group: group, decimal: dec}
}

// separators extrae los separadores de la muestra 1234.50 formateada por el locale.
func separators(p *message.Printer) (group, dec string) {
	sample := []rune(p.Sprint(number.Decimal(1234.5, number.Scale(2))))
	idx := func(r rune) int {
		for i, c := range sample {
			if c == r {
				return i
			}
		}
		return -1
	}
	one, two, four, five := idx('1'), idx('2'), idx('4'), idx('5')
	if one < 0 || two <= one || four < 0 || five <= four {
		return ",", "."
	}
	return string(sample[one+1 : two]), string(sample[four+1 : five])
}

// Amount redondea a 2 decimales (mitad hacia arriba) y agrega el símbolo.
// Ej: 21.978 → "$21.98", 1234.5 → "$1,234.50".
func (f *Formatter) Amount(v decimal.Decimal) string {
	s := v.Round(2).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + f.symbol + groupThousands(intPart, f.group) + f.decimal + frac
}

// groupThousands inserta sep cada tres dígitos desde la derecha.
func groupThousands(digits, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n/3)*len(sep))
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// Quantity muestra la cantidad tal como se capturó.
func (f *Formatter) Quantity(v decimal.Decimal) string {
	return v.String()
}

// Percent muestra una tasa (0.10) como porcentaje con un decimal: "10.0%".
func (f *Formatter) Percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
