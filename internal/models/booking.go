package models

import (
	"time"

	"gorm.io/gorm"
)

// OutcomeKind identifies the result of a booking attempt
type OutcomeKind string

// Booking outcome kinds (closed set)
const (
	OutcomePurchaseRequired     OutcomeKind = "erro_pacote"
	OutcomeInvalidDate          OutcomeKind = "data_invalida"
	OutcomeInvalidWeekday       OutcomeKind = "dia_invalido"
	OutcomePreliminaryHold      OutcomeKind = "preliminar"
	OutcomeAlternativeSuggested OutcomeKind = "sugestao"
	OutcomeNoAvailability       OutcomeKind = "indisponivel"
)

// Modality constants for appointments
const (
	ModalityInPerson = "presencial"
	ModalityRemote   = "online"
)

// BookingOutcome is the structured result of one booking attempt.
// Message is always set and user-ready; the other fields depend on Kind.
type BookingOutcome struct {
	Kind          OutcomeKind `json:"status"`
	Message       string      `json:"mensagem"`
	Modality      string      `json:"modalidade,omitempty"`
	PaymentLink   string      `json:"link_pagamento,omitempty"`
	SuggestedTime string      `json:"horario_sugerido,omitempty"`
	Date          string      `json:"data,omitempty"`
	Time          string      `json:"horario,omitempty"`
}

// Payment status constants for appointments
const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
)

// Appointment records a preliminary hold on a slot. Created when a
// reservation succeeds; payment confirmation flips PaymentStatus.
type Appointment struct {
	gorm.Model

	Numero        string `json:"numero" gorm:"index"` // lead phone
	Date          string `json:"date"`                // YYYY-MM-DD
	Time          string `json:"time"`                // HH:MM
	Modality      string `json:"modality"`            // "presencial" or "online"
	PaymentStatus string `json:"payment_status" gorm:"default:pending"`
	PaymentLink   string `json:"payment_link"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
}
