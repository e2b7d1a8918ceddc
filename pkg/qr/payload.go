package qr

import (
	"net/url"
	"strings"
)

// wifiEscaper quotes the characters the WIFI: scheme reserves.
var wifiEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
	`"`, `\"`,
)

// WiFiPayload formats wifi credentials as a WIFI: payload. security is
// WPA, WEP or nopass; an empty value defaults to WPA.
func WiFiPayload(ssid, password, security string, hidden bool) string {
	if security == "" {
		security = "WPA"
	}
	h := "false"
	if hidden {
		h = "true"
	}
	var b strings.Builder
	b.WriteString("WIFI:T:")
	b.WriteString(security)
	b.WriteString(";S:")
	b.WriteString(wifiEscaper.Replace(ssid))
	b.WriteString(";P:")
	b.WriteString(wifiEscaper.Replace(password))
	b.WriteString(";H:")
	b.WriteString(h)
	b.WriteString(";;")
	return b.String()
}

// URLPayload normalizes a web address, prefixing https:// when the
// scheme is missing.
func URLPayload(addr string) string {
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	return "https://" + addr
}

// EmailPayload formats a mailto: payload with optional subject and
// body query parameters.
func EmailPayload(address, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(address)
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if body != "" {
		q.Set("body", body)
	}
	if len(q) > 0 {
		b.WriteString("?")
		b.WriteString(q.Encode())
	}
	return b.String()
}

// PhonePayload formats a tel: payload, stripping everything but digits
// and a leading international prefix.
func PhonePayload(number string) string {
	var b strings.Builder
	b.WriteString("tel:")
	for _, r := range number {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SMSPayload formats an smsto: payload with an optional prefilled
// message.
func SMSPayload(number, message string) string {
	if message == "" {
		return "smsto:" + number
	}
	return "smsto:" + number + ":" + message
}

// GeoPayload formats a geo: payload from decimal coordinates, already
// rendered as strings by the caller.
func GeoPayload(lat, lon string) string {
	return "geo:" + lat + "," + lon
}

// VCard holds the fields of a minimal version 3.0 contact card. Empty
// optional fields are omitted from the payload.
type VCard struct {
	Name  string
	Phone string
	Email string
	Org   string
}

// Payload renders the card in vCard 3.0 form.
func (c VCard) Payload() string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\nVERSION:3.0\n")
	b.WriteString("FN:")
	b.WriteString(c.Name)
	b.WriteString("\n")
	if c.Phone != "" {
		b.WriteString("TEL:")
		b.WriteString(c.Phone)
		b.WriteString("\n")
	}
	if c.Email != "" {
		b.WriteString("EMAIL:")
		b.WriteString(c.Email)
		b.WriteString("\n")
	}
	if c.Org != "" {
		b.WriteString("ORG:")
		b.WriteString(c.Org)
		b.WriteString("\n")
	}
	b.WriteString("END:VCARD")
	return b.String()
}
