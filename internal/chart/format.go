package chart

import (
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// PlainFormatter prints a value with two decimals.
func PlainFormatter(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// MoneyFormatter formats values in the given ISO 4217 currency, e.g. "$1,234.56".
// Unknown codes fall back to PlainFormatter.
func MoneyFormatter(code string) func(float64) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || money.GetCurrency(code) == nil {
		return PlainFormatter
	}
	return func(v float64) string {
		return money.NewFromFloat(v, code).Display()
	}
}

// TimeFormatter labels sample timestamps using the layout of r in loc.
func TimeFormatter(r NamedRange, loc *time.Location) func(Sample) string {
	if loc == nil {
		loc = time.Local
	}
	layout := r.TimeLayout()
	return func(s Sample) string {
		return s.Time.In(loc).Format(layout)
	}
}

// Change returns the relative change from the first to the last sample in
// percent, rounded to two places. An empty series or a zero first value
// reports zero.
func (s *Series) Change() decimal.Decimal {
	first := decimal.NewFromFloat(s.First().Value)
	if s.Empty() || first.IsZero() {
		return decimal.Zero
	}
	last := decimal.NewFromFloat(s.Last().Value)
	return last.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2)
}

// FormatChange renders a change percentage with an explicit sign, e.g. "+1.23%".
func FormatChange(d decimal.Decimal) string {
	sign := ""
	if d.IsPositive() {
		sign = "+"
	}
	return sign + d.StringFixed(2) + "%"
}
