package service

import (
	"bytes"
	"fmt"
	"hotel/infras/mail"
	"hotel/internal/domains/notification/model"
	htmlTemplate "html/template"
	textTemplate "text/template"
)

var subjects = map[string]string{
	model.EventBookingCreated:   "Booking received - %s",
	model.EventBookingConfirmed: "Booking confirmed - %s",
	model.EventBookingCancelled: "Booking cancelled - %s",
}

var headlines = map[string]string{
	model.EventBookingCreated:   "We have received your booking. It is held for you while payment is completed.",
	model.EventBookingConfirmed: "Your payment went through and your stay is confirmed.",
	model.EventBookingCancelled: "Your booking has been cancelled.",
}

const textBody = `Hello {{.Event.GuestName}},

{{.Headline}}

Confirmation code: {{.Event.ConfirmationCode}}
Room: {{.Event.RoomType}}
Check-in: {{.Event.CheckIn}}
Check-out: {{.Event.CheckOut}} ({{.Event.Nights}} nights, {{.Event.GuestCount}} guests)

Nightly rate: ${{.Event.NightlyRate}}
Subtotal: ${{.Event.Subtotal}}
Taxes: ${{.Event.Taxes}}
Total: ${{.Event.Total}}
{{if .Event.SpecialRequests}}
Special requests: {{.Event.SpecialRequests}}
{{end}}
Keep your confirmation code to look up or cancel the booking.
`

const htmlBody = `<html><body style="font-family: sans-serif">
<p>Hello {{.Event.GuestName}},</p>
<p>{{.Headline}}</p>
<table cellpadding="4">
<tr><td>Confirmation code</td><td><strong>{{.Event.ConfirmationCode}}</strong></td></tr>
<tr><td>Room</td><td>{{.Event.RoomType}}</td></tr>
<tr><td>Check-in</td><td>{{.Event.CheckIn}}</td></tr>
<tr><td>Check-out</td><td>{{.Event.CheckOut}}</td></tr>
<tr><td>Nights</td><td>{{.Event.Nights}}</td></tr>
<tr><td>Guests</td><td>{{.Event.GuestCount}}</td></tr>
<tr><td>Subtotal</td><td>${{.Event.Subtotal}}</td></tr>
<tr><td>Taxes</td><td>${{.Event.Taxes}}</td></tr>
<tr><td><strong>Total</strong></td><td><strong>${{.Event.Total}}</strong></td></tr>
{{if .Event.SpecialRequests}}<tr><td>Special requests</td><td>{{.Event.SpecialRequests}}</td></tr>{{end}}
</table>
</body></html>
`

var (
	textTmpl = textTemplate.Must(textTemplate.New("text").Parse(textBody))
	htmlTmpl = htmlTemplate.Must(htmlTemplate.New("html").Parse(htmlBody))
)

type templateData struct {
	Event    model.BookingEvent
	Headline string
}

// Render builds the e-mail for a booking event.
func Render(event model.BookingEvent) (mail.Message, error) {
	subject, ok := subjects[event.Type]
	if !ok {
		return mail.Message{}, fmt.Errorf("unknown notification event %q", event.Type)
	}

	data := templateData{Event: event, Headline: headlines[event.Type]}

	var text, html bytes.Buffer

	if err := textTmpl.Execute(&text, data); err != nil {
		return mail.Message{}, fmt.Errorf("failed to render text body: %w", err)
	}

	if err := htmlTmpl.Execute(&html, data); err != nil {
		return mail.Message{}, fmt.Errorf("failed to render html body: %w", err)
	}

	return mail.Message{
		To:       event.Email,
		Subject:  fmt.Sprintf(subject, event.ConfirmationCode),
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
