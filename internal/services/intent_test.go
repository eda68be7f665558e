package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntentSchedule(t *testing.T) {
	cases := []string{
		"quero agendar uma consulta",
		"vocês têm disponibilidade na sexta?",
		"Posso marcar horário amanhã?",
		"AGENDAR",
	}
	for _, msg := range cases {
		assert.Equal(t, IntentSchedule, DetectIntent(msg), "message: %s", msg)
	}
}

func TestDetectIntentPrice(t *testing.T) {
	cases := []string{
		"quanto custa?",
		"qual o valor do atendimento",
		"me passa um orçamento por favor",
	}
	for _, msg := range cases {
		assert.Equal(t, IntentPrice, DetectIntent(msg), "message: %s", msg)
	}
}

func TestDetectIntentCancel(t *testing.T) {
	cases := []string{
		"preciso cancelar",
		"quero desmarcar minha visita",
		"não posso ir hoje",
	}
	for _, msg := range cases {
		assert.Equal(t, IntentCancel, DetectIntent(msg), "message: %s", msg)
	}
}

func TestDetectIntentNone(t *testing.T) {
	cases := []string{
		"",
		"bom dia!",
		"obrigado pela atenção",
	}
	for _, msg := range cases {
		assert.Equal(t, IntentNone, DetectIntent(msg), "message: %s", msg)
	}
}

func TestDetectIntentPriorityOrder(t *testing.T) {
	// Schedule keywords outrank price and cancel when both appear
	assert.Equal(t, IntentSchedule, DetectIntent("quero agendar mas antes me diga o preço"))
	assert.Equal(t, IntentSchedule, DetectIntent("cancelar não, prefiro marcar consulta"))
	// Price outranks cancel
	assert.Equal(t, IntentPrice, DetectIntent("qual o valor para cancelar?"))
}

func TestDetectIntentWholeWordsOnly(t *testing.T) {
	// Keywords embedded inside larger words must not match
	assert.Equal(t, IntentNone, DetectIntent("desagendarei tudo"))
	assert.Equal(t, IntentNone, DetectIntent("desmarcarei depois"))
}
