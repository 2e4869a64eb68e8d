package listing

import (
	"strconv"
	"strings"

	"github.com/MixinNetwork/go-number"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders price as US dollars with digit grouping and at most
// two fraction digits, e.g. $1,250,000 or $1,234.5.
func FormatPrice(price float64) string {
	amount := number.FromFloat(price).Round(2).Persist()
	sign := ""
	if strings.HasPrefix(amount, "-") {
		sign, amount = "-", amount[1:]
	}
	integer, fraction, _ := strings.Cut(amount, ".")
	fraction = strings.TrimRight(fraction, "0")
	n, err := strconv.ParseInt(integer, 10, 64)
	if err != nil {
		return sign + "$" + amount
	}
	formatted := sign + "$" + printer.Sprintf("%d", n)
	if fraction != "" {
		formatted = formatted + "." + fraction
	}
	return formatted
}

func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
