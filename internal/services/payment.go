package services

import (
	"fmt"
	"log"
	"os"

	"github.com/noralabs/nora-backend/internal/models"
	"github.com/noralabs/nora-backend/internal/storage"
)

// PaymentService generates checkout links for preliminary holds and sends
// payment reminders for appointments still awaiting payment.
type PaymentService struct {
	store  storage.Store
	sender MessageSender
}

// NewPaymentService creates a new payment service
func NewPaymentService(store storage.Store, sender MessageSender) *PaymentService {
	return &PaymentService{
		store:  store,
		sender: sender,
	}
}

// GeneratePaymentLink returns the checkout URL for a held slot.
// Stub for a Stripe/Cielo integration; replace with a real gateway call.
func (p *PaymentService) GeneratePaymentLink(leadID, date, timeOfDay string) string {
	base := os.Getenv("PAYMENT_GATEWAY_URL")
	if base == "" {
		base = "https://pagamento.gateway/checkout"
	}
	return fmt.Sprintf("%s?lead=%s&data=%s&hora=%s", base, leadID, date, timeOfDay)
}

// PackagesURL is where leads without a purchased package are sent
func PackagesURL() string {
	if url := os.Getenv("PACKAGES_URL"); url != "" {
		return url
	}
	return "https://seusite.com/pacotes"
}

// SendPaymentReminders re-sends the payment link for every appointment
// still pending payment
func (p *PaymentService) SendPaymentReminders() error {
	pending, err := p.store.GetAppointmentsByPaymentStatus(models.PaymentStatusPending)
	if err != nil {
		return fmt.Errorf("failed to list pending appointments: %w", err)
	}

	for _, appt := range pending {
		message := fmt.Sprintf(
			"⏰ Lembrete: sua reserva para %s às %s (%s) ainda aguarda pagamento.\n"+
				"Confirme aqui:\n%s",
			appt.Date, appt.Time, appt.Modality, appt.PaymentLink,
		)
		if err := p.sender.SendWhatsAppMessage(appt.Numero, message); err != nil {
			log.Printf("Failed to send payment reminder to %s: %v", appt.Numero, err)
			continue
		}
		log.Printf("Payment reminder sent to %s for %s %s", appt.Numero, appt.Date, appt.Time)
	}

	return nil
}
