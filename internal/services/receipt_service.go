package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"monametro/internal/repositories"
	"monametro/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders payment receipts as PDFs.
type ReceiptService struct {
	Payments  repositories.PaymentRepository
	Bookings  repositories.BookingRepository
	Users     repositories.UserRepository
	RequestID string
	Loader    func(int64) (receiptData, error)
}

type receiptTrip struct {
	Route     string
	Departure string
	Seats     int
}

type receiptData struct {
	PaymentID int64
	Reference string
	Method    string
	Amount    float64
	CreatedAt time.Time
	PayerName string
	Trips     []receiptTrip
}

func (s ReceiptService) GenerateReceipt(paymentID int64) ([]byte, string, error) {
	data, err := s.loadReceiptData(paymentID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("payment_id=%d", paymentID))
	return buildReceiptPDF(data)
}

func (s ReceiptService) loadReceiptData(paymentID int64) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(paymentID)
	}

	var out receiptData
	p, err := s.Payments.GetByID(paymentID)
	if err != nil {
		return out, err
	}
	out.PaymentID = p.PaymentID
	out.Reference = p.Reference
	out.Method = p.Method
	out.Amount = p.Amount
	out.CreatedAt = p.CreatedAt

	if u, err := s.Users.GetByID(p.UserID); err == nil {
		out.PayerName = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}

	bookings, err := s.Bookings.ListByPaymentID(paymentID)
	if err == nil {
		for _, b := range bookings {
			out.Trips = append(out.Trips, receiptTrip{
				Route:     b.StartLocation + " -> " + b.EndLocation,
				Departure: utils.FormatDateTime(b.DepartureTime),
				Seats:     b.Seats,
			})
		}
	}

	return out, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MONA METRO - PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No  : RCP-%d", d.PaymentID),
		fmt.Sprintf("Reference   : %s", safe(d.Reference, "-")),
		fmt.Sprintf("Date        : %s", d.CreatedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Paid by     : %s", safe(d.PayerName, "-")),
		fmt.Sprintf("Method      : %s", safe(d.Method, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if len(d.Trips) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Trips:")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		for i, t := range d.Trips {
			desc := fmt.Sprintf("%d) %s, departs %s, %d seat(s)", i+1, t.Route, t.Departure, t.Seats)
			pdf.MultiCell(0, 6, desc, "", "", false)
			pdf.Ln(1)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatDollars(d.Amount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This receipt confirms a simulated payment on the Mona Metro shuttle portal.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d.pdf", d.PaymentID)
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
