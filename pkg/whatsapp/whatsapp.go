// Package whatsapp builds click-to-chat links for the shop and its clients.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"barbershop/pkg/validator"
)

const countryCode = "55"

// NormalizePhone turns a Brazilian number into the international form used by
// api.whatsapp.com. An 11-digit mobile number loses the leading 9 after the area
// code, and the country code is added to numbers that only carry the area code.
func NormalizePhone(phone string) string {
	digits := validator.DigitsOnly(phone)

	if len(digits) == 11 && digits[2] == '9' {
		digits = digits[:2] + digits[3:]
	}

	if len(digits) <= 11 {
		digits = countryCode + digits
	}

	return digits
}

// ContactLink opens a chat with a client asking them to confirm their appointment.
func ContactLink(phone, clientName string) string {
	text := fmt.Sprintf("Olá, %s! Passando para confirmar seu agendamento.", clientName)
	return fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=%s", NormalizePhone(phone), url.QueryEscape(text))
}

// BookingDetails is what the client sends to the shop after booking.
type BookingDetails struct {
	ClientName string
	Services   []string
	Date       string
	Time       string
	Price      float64
	Payment    string
}

// ConfirmationLink opens a chat with the shop carrying the booking summary.
func ConfirmationLink(shopNumber string, d BookingDetails) string {
	var b strings.Builder
	b.WriteString("Olá! Gostaria de confirmar meu agendamento:\n")
	fmt.Fprintf(&b, "Nome: %s\n", d.ClientName)
	fmt.Fprintf(&b, "Serviço: %s\n", strings.Join(d.Services, " + "))
	fmt.Fprintf(&b, "Data: %s\n", formatDate(d.Date))
	fmt.Fprintf(&b, "Horário: %s\n", d.Time)
	fmt.Fprintf(&b, "Valor: R$ %s\n", FormatPrice(d.Price))
	fmt.Fprintf(&b, "Pagamento: %s", d.Payment)

	return fmt.Sprintf("https://wa.me/%s?text=%s", validator.DigitsOnly(shopNumber), url.QueryEscape(b.String()))
}

// FormatPrice renders a price with a decimal comma, e.g. 35.5 -> "35,50".
func FormatPrice(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}

// formatDate turns "2025-06-10" into "10/06/2025"; other values pass through.
func formatDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
