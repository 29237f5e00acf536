// Package receipt renders payment receipts for paid bookings.
package receipt

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"turf-booking/internal/domain/booking"
)

type Receipt struct {
	Number      string
	FileName    string
	ContentType string
	Content     []byte
}

type Generator interface {
	Generate(ctx context.Context, b *booking.Booking) (*Receipt, error)
}

const receiptTemplate = `{{.AppName | upper}}
PAYMENT RECEIPT

Receipt Number: {{.Number}}
Issued: {{.Issued}}

CUSTOMER DETAILS
Name: {{.Booking.CustomerName}}
Email: {{.Booking.CustomerEmail}}
Phone: {{or .Booking.CustomerPhone "N/A"}}

BOOKING DETAILS
Turf: {{.Booking.TurfName}}
Sport: {{or .Booking.SportType "N/A"}}
Location: {{or .Booking.Location "N/A"}}
Date: {{.Booking.Date}}
Time: {{.Window}}
Duration: {{.Duration}} hours

PAYMENT DETAILS
Payment Method: {{.Method}}
Amount: {{.Amount}}
Status: PAID
Transaction ID: {{.TransactionID}}

This receipt is computer generated and does not require a signature.
Cancellation policy: 24 hours notice required for refund.
Thank you for choosing {{.AppName}}!
`

// TextGenerator renders a plain-text receipt.
type TextGenerator struct {
	appName string
	tmpl    *template.Template
	now     func() time.Time
}

func NewTextGenerator(appName string) *TextGenerator {
	tmpl := template.Must(template.New("receipt").
		Funcs(template.FuncMap{"upper": strings.ToUpper}).
		Parse(receiptTemplate))
	return &TextGenerator{appName: appName, tmpl: tmpl, now: time.Now}
}

type receiptView struct {
	AppName       string
	Number        string
	Issued        string
	Booking       *booking.Booking
	Window        string
	Duration      string
	Method        string
	Amount        string
	TransactionID string
}

func (g *TextGenerator) Generate(ctx context.Context, b *booking.Booking) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.PaymentStatus != booking.PaymentCompleted {
		return nil, fmt.Errorf("booking %s is not paid", b.ID)
	}

	view := receiptView{
		AppName:  g.appName,
		Number:   Number(b),
		Issued:   g.now().UTC().Format("2006-01-02 15:04 MST"),
		Booking:  b,
		Window:   window(b),
		Duration: formatHours(b.Duration),
		Amount:   fmt.Sprintf("INR %.2f", b.TotalAmount),
	}
	if b.PaymentMethod != nil {
		view.Method = strings.ToUpper(strings.ReplaceAll(string(*b.PaymentMethod), "_", " "))
	}
	if b.TransactionID != nil {
		view.TransactionID = *b.TransactionID
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	return &Receipt{
		Number:      view.Number,
		FileName:    fmt.Sprintf("receipt_%s.txt", strings.ToLower(view.Number)),
		ContentType: "text/plain; charset=utf-8",
		Content:     buf.Bytes(),
	}, nil
}

// Number is the last eight hex digits of the booking id, upper-cased.
func Number(b *booking.Booking) string {
	hex := strings.ReplaceAll(b.ID.String(), "-", "")
	return strings.ToUpper(hex[len(hex)-8:])
}

func window(b *booking.Booking) string {
	if b.BookingType == booking.TypeSlot {
		return b.TimeSlot
	}
	return b.StartTime + " - " + b.EndTime
}

func formatHours(h float64) string {
	s := fmt.Sprintf("%.2f", h)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
