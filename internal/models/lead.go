package models

import (
	"strings"

	"gorm.io/gorm"
)

// Lead stage constants for the post-questionnaire pipeline
const (
	LeadStageInitial      = "inicial"
	LeadStageAwaitingForm = "aguardando_form"
	LeadStageProduct      = "produto"
	LeadStageFinalized    = "finalizado"
)

// Temperature constants (emotional temperature from profile analysis)
const (
	TemperaturaQuente = "quente"
	TemperaturaMorno  = "morno"
	TemperaturaFrio   = "frio"
)

// FlagSet stores named boolean markers extracted from the lead's messages
// (tentante, gestante, menopausa, etc.), serialized as JSON in the database.
type FlagSet map[string]bool

// Lead represents a prospective patient tracked through the qualification funnel
type Lead struct {
	// Using gorm.Model gives us ID (uint), CreatedAt, UpdatedAt, DeletedAt automatically
	gorm.Model

	Numero               string  `json:"numero" gorm:"uniqueIndex"` // WhatsApp number - unique
	Nome                 string  `json:"nome"`
	Flags                FlagSet `json:"flags" gorm:"serializer:json"`
	Score                int     `json:"score" gorm:"default:0"` // urgency score 0-100
	Temperatura          string  `json:"temperatura" gorm:"default:morno"`
	FormularioRespondido bool    `json:"formulario_respondido" gorm:"default:false"`
	ProdutoEscolhido     string  `json:"produto_escolhido"`
	Historico            string  `json:"historico"` // free text marker of prior interactions
	Etapa                string  `json:"etapa" gorm:"default:inicial"`
}

// HasPurchasedPackage reports whether the lead already acquired one of our
// packages. Scheduling is gated on this.
func (l *Lead) HasPurchasedPackage() bool {
	return strings.TrimSpace(l.ProdutoEscolhido) != ""
}

// HasPreviousInteraction reports whether the lead has any recorded history
func (l *Lead) HasPreviousInteraction() bool {
	return strings.TrimSpace(l.Historico) != ""
}

// HasFlag checks a single named marker
func (l *Lead) HasFlag(name string) bool {
	if l.Flags == nil {
		return false
	}
	return l.Flags[name]
}

// SetFlag marks a named marker on the lead
func (l *Lead) SetFlag(name string) {
	if l.Flags == nil {
		l.Flags = make(FlagSet)
	}
	l.Flags[name] = true
}
