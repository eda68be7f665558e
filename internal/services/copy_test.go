package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noralabs/nora-backend/internal/models"
)

func TestGeneratePersonalizedCopyTone(t *testing.T) {
	lead := &models.Lead{Nome: "Ana", Temperatura: models.TemperaturaQuente}
	msg := GeneratePersonalizedCopy(lead, models.ProductThreeConsults)
	assert.Equal(t, "urgente e direto", msg.Tom)
	assert.Contains(t, msg.Texto, "Ana")

	lead.Temperatura = models.TemperaturaFrio
	msg = GeneratePersonalizedCopy(lead, models.ProductThreeConsults)
	assert.Equal(t, "suave e explicativo", msg.Tom)

	lead.Temperatura = "desconhecida"
	msg = GeneratePersonalizedCopy(lead, models.ProductThreeConsults)
	assert.Equal(t, "neutro", msg.Tom)
}

func TestGeneratePersonalizedCopyDefaults(t *testing.T) {
	// Missing name falls back to a generic salutation
	lead := &models.Lead{Temperatura: models.TemperaturaMorno}
	msg := GeneratePersonalizedCopy(lead, models.ProductSingleConsult)
	assert.Contains(t, msg.Texto, "Paciente")

	// Unknown product still produces a message
	msg = GeneratePersonalizedCopy(lead, "Pacote Inexistente")
	assert.Contains(t, msg.Texto, "Pacote Inexistente")
}

func TestGeneratePersonalizedCopyCTAFromPool(t *testing.T) {
	lead := &models.Lead{Nome: "Ana", Temperatura: models.TemperaturaMorno}
	msg := GeneratePersonalizedCopy(lead, models.ProductContinued)
	assert.Contains(t, ctaPool, msg.ChamadaParaAcao)
}

func TestGeneratePersonalizedCopyPerProduct(t *testing.T) {
	lead := &models.Lead{Nome: "Ana", Temperatura: models.TemperaturaMorno}
	seen := map[string]bool{}
	for _, produto := range []string{
		models.ProductThreeConsults,
		models.ProductChildPlan,
		models.ProductPrenatal,
		models.ProductContinued,
		models.ProductSingleConsult,
	} {
		msg := GeneratePersonalizedCopy(lead, produto)
		assert.NotEmpty(t, msg.Texto)
		assert.False(t, seen[msg.Texto], "each product needs distinct copy")
		seen[msg.Texto] = true
	}
}
