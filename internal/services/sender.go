package services

import "log"

// MessageSender delivers an outbound WhatsApp message to a lead. Delivery
// failures are logged by callers and never surfaced to the webhook sender.
type MessageSender interface {
	SendWhatsAppMessage(to, message string) error
}

// LogSender writes outbound messages to the log instead of delivering
// them. Used when no provider is configured (local development, tests).
type LogSender struct{}

func (LogSender) SendWhatsAppMessage(to, message string) error {
	log.Printf("📤 [no provider] WhatsApp to %s: %s", to, message)
	return nil
}
