// Package receipt renders orders as plain-text receipts for thermal
// printing and on-screen display.
package receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"petstore-pos/internal/model"
)

// lineWidth matches a 58mm thermal printer in the default font.
const lineWidth = 32

var printer = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount with Vietnamese digit grouping and the đồng
// sign, e.g. 120000 -> "120.000 đ". VND has no fractional unit.
func FormatVND(amount float64) string {
	return printer.Sprintf("%v đ", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// Render produces the complete receipt text for an order.
func Render(o *model.Order) string {
	var b strings.Builder

	b.WriteString(center("PET STORE") + "\n")
	b.WriteString(center(o.OrderNumber) + "\n")
	b.WriteString(center(o.CreatedAt.Format("02/01/2006 15:04:05")) + "\n")
	b.WriteString(rule() + "\n")

	for _, it := range o.Items {
		b.WriteString(split(fmt.Sprintf("%s x%d", it.Name, it.Quantity), FormatVND(it.Subtotal)) + "\n")
	}

	b.WriteString(rule() + "\n")
	b.WriteString(split("TỔNG CỘNG", FormatVND(o.Total)) + "\n")
	b.WriteString("\n")
	b.WriteString(center("Cảm ơn quý khách!") + "\n")
	b.WriteString(center("Hẹn gặp lại") + "\n")

	return b.String()
}

func rule() string {
	return strings.Repeat("-", lineWidth)
}

func center(s string) string {
	pad := lineWidth - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s
}

// split left-aligns the label and right-aligns the amount on one line,
// wrapping to two lines when they do not fit.
func split(left, right string) string {
	pad := lineWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		return left + "\n" + strings.Repeat(" ", lineWidth-utf8.RuneCountInString(right)) + right
	}
	return left + strings.Repeat(" ", pad) + right
}
