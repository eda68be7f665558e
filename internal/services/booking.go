package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/noralabs/nora-backend/internal/models"
	"github.com/noralabs/nora-backend/internal/storage"
)

// Distance (km) up to which a Friday appointment can happen in person
const inPersonMaxDistanceKM = 150.0

// BookingService composes the eligibility gate, weekday policy, modality
// determination and slot reservation into a single booking decision.
type BookingService struct {
	store    storage.Store
	calendar *SlotCalendar
	payments *PaymentService
}

// NewBookingService creates a new booking service
func NewBookingService(store storage.Store, calendar *SlotCalendar, payments *PaymentService) *BookingService {
	return &BookingService{
		store:    store,
		calendar: calendar,
		payments: payments,
	}
}

// ProcessBooking runs one deterministic booking attempt:
//  1. the lead must have purchased a package
//  2. the date must parse as YYYY-MM-DD
//  3. only Monday, Tuesday and Friday are bookable
//  4. modality: in person on Fridays within 150km, otherwise remote
//  5. reserve the slot; on conflict suggest the next open time, or report
//     the date as fully booked
//
// The first failing check wins and the calendar is untouched until step 5.
// No retries: each call is a single attempt against current calendar state.
func (b *BookingService) ProcessBooking(ctx context.Context, phone, date, timeOfDay string, distanceKM float64) *models.BookingOutcome {
	// 1) Purchased package gate
	if !b.leadHasPackage(phone) {
		return &models.BookingOutcome{
			Kind: models.OutcomePurchaseRequired,
			Message: "🚫 Para agendar sua consulta, é necessário adquirir um de nossos pacotes.\n" +
				"Confira aqui: " + PackagesURL(),
		}
	}

	// 2) Date validity
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return &models.BookingOutcome{
			Kind:    models.OutcomeInvalidDate,
			Message: "Formato de data inválido. Use YYYY-MM-DD.",
		}
	}

	// 3) Weekday whitelist
	weekday := parsed.Weekday()
	if weekday != time.Monday && weekday != time.Tuesday && weekday != time.Friday {
		return &models.BookingOutcome{
			Kind:    models.OutcomeInvalidWeekday,
			Message: "Atendemos somente nas segundas, terças e sextas.",
		}
	}

	// 4) Modality, decided before we know whether the slot is free
	modality := models.ModalityRemote
	if weekday == time.Friday && distanceKM <= inPersonMaxDistanceKM {
		modality = models.ModalityInPerson
	}

	// 5) Reservation attempt
	if b.calendar.Reserve(date, timeOfDay) {
		link := b.payments.GeneratePaymentLink(phone, date, timeOfDay)
		b.recordHold(phone, date, timeOfDay, modality, link)
		return &models.BookingOutcome{
			Kind:        models.OutcomePreliminaryHold,
			Modality:    modality,
			PaymentLink: link,
			Date:        date,
			Time:        timeOfDay,
			Message: fmt.Sprintf(
				"✅ Reserva preliminar efetuada para %s às %s (%s).\n"+
					"Para confirmar, efetue o pagamento aqui:\n%s",
				date, timeOfDay, modality, link,
			),
		}
	}

	// Slot taken: offer the earliest remaining time on the same date
	if next, ok := b.calendar.NextAvailable(date); ok {
		return &models.BookingOutcome{
			Kind:          models.OutcomeAlternativeSuggested,
			Modality:      modality,
			SuggestedTime: next,
			Date:          date,
			Message:       fmt.Sprintf("⏳ %s já foi ocupado. Posso agendar para %s (%s)?", timeOfDay, next, modality),
		}
	}

	// Nothing left on that date
	return &models.BookingOutcome{
		Kind:    models.OutcomeNoAvailability,
		Date:    date,
		Message: fmt.Sprintf("❌ Não há mais horários disponíveis em %s. Deseja tentar outra data?", date),
	}
}

// leadHasPackage checks the lead store for a purchased package. A store
// failure or missing lead both read as not eligible.
func (b *BookingService) leadHasPackage(phone string) bool {
	lead, err := b.store.GetLeadByPhone(phone)
	if err != nil {
		log.Printf("Package check failed for %s: %v", phone, err)
		return false
	}
	return lead.HasPurchasedPackage()
}

// recordHold persists the preliminary hold so payment reminders can find
// it. The hold already exists on the calendar, so a storage failure only
// costs us the reminder, not the reservation.
func (b *BookingService) recordHold(phone, date, timeOfDay, modality, link string) {
	appt := &models.Appointment{
		Numero:        phone,
		Date:          date,
		Time:          timeOfDay,
		Modality:      modality,
		PaymentStatus: models.PaymentStatusPending,
		PaymentLink:   link,
	}
	if _, err := b.store.CreateAppointment(appt); err != nil {
		log.Printf("Failed to record appointment for %s: %v", phone, err)
	}
}
