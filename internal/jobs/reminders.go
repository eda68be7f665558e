package jobs

import (
	"log"
	"time"

	"github.com/noralabs/nora-backend/internal/services"
)

// ReminderJob re-sends payment links for appointments still awaiting
// payment, once a day at 10 AM
type ReminderJob struct {
	payments  *services.PaymentService
	isRunning bool
}

// NewReminderJob creates a new reminder job scheduler
func NewReminderJob(payments *services.PaymentService) *ReminderJob {
	return &ReminderJob{
		payments: payments,
	}
}

// Start begins the scheduled reminder loop
func (r *ReminderJob) Start() {
	if r.isRunning {
		log.Println("Reminder job already running")
		return
	}

	r.isRunning = true
	log.Println("Starting payment reminder job...")
	go r.schedulePaymentReminders()
}

// Stop halts the loop after its current sleep
func (r *ReminderJob) Stop() {
	r.isRunning = false
	log.Println("Stopping payment reminder job...")
}

func (r *ReminderJob) schedulePaymentReminders() {
	for r.isRunning {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		duration := next.Sub(now)
		log.Printf("Next payment reminder run in %v", duration)
		time.Sleep(duration)

		if !r.isRunning {
			break
		}

		if err := r.payments.SendPaymentReminders(); err != nil {
			log.Printf("Error sending payment reminders: %v", err)
		}
	}
}
