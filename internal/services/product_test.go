package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noralabs/nora-backend/internal/models"
	"github.com/noralabs/nora-backend/internal/storage"
)

func TestChooseProduct(t *testing.T) {
	tests := []struct {
		name     string
		lead     models.Lead
		expected string
	}{
		{
			name:     "ttc flag wins",
			lead:     models.Lead{Flags: models.FlagSet{"is_ttc": true}, Score: 10},
			expected: models.ProductThreeConsults,
		},
		{
			name:     "bad sperm flag wins",
			lead:     models.Lead{Flags: models.FlagSet{"bad_sperm": true}},
			expected: models.ProductThreeConsults,
		},
		{
			name:     "child plan",
			lead:     models.Lead{Flags: models.FlagSet{"is_child8": true}},
			expected: models.ProductChildPlan,
		},
		{
			name:     "prenatal",
			lead:     models.Lead{Flags: models.FlagSet{"is_gest": true}},
			expected: models.ProductPrenatal,
		},
		{
			name:     "menopausa alone does not change the tier",
			lead:     models.Lead{Flags: models.FlagSet{"menopausa": true}, Score: 10},
			expected: models.ProductSingleConsult,
		},
		{
			name:     "high score with history",
			lead:     models.Lead{Flags: models.FlagSet{}, Score: 80, Historico: "consulta em 2024"},
			expected: models.ProductContinued,
		},
		{
			name:     "high score without history falls through",
			lead:     models.Lead{Flags: models.FlagSet{}, Score: 80},
			expected: models.ProductSingleConsult,
		},
		{
			name:     "default",
			lead:     models.Lead{Flags: models.FlagSet{}, Score: 10},
			expected: models.ProductSingleConsult,
		},
		{
			name: "flag order beats score",
			lead: models.Lead{
				Flags:     models.FlagSet{"is_ttc": true, "is_gest": true},
				Score:     95,
				Historico: "sim",
			},
			expected: models.ProductThreeConsults,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			produto, criterios := ChooseProduct(&tc.lead)
			assert.Equal(t, tc.expected, produto)
			assert.NotEmpty(t, criterios)
		})
	}
}

// recordingSender captures outbound messages for assertions
type recordingSender struct {
	messages []string
	phones   []string
}

func (r *recordingSender) SendWhatsAppMessage(to, message string) error {
	r.phones = append(r.phones, to)
	r.messages = append(r.messages, message)
	return nil
}

func TestPipelineSendsQuestionnaireToNewLead(t *testing.T) {
	store := storage.NewMemoryStore()
	sender := &recordingSender{}
	pipeline := NewProductPipeline(store, MockLLMClient{}, sender)
	phone := "5511999990000"

	require.NoError(t, pipeline.ProcessMessage(context.Background(), phone, "olá, preciso de ajuda"))

	lead, err := store.GetLeadByPhone(phone)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStageAwaitingForm, lead.Etapa)
	assert.False(t, lead.FormularioRespondido)

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "forms.gle")
}

func TestPipelineNagsUntilFormConfirmed(t *testing.T) {
	store := storage.NewMemoryStore()
	sender := &recordingSender{}
	pipeline := NewProductPipeline(store, MockLLMClient{}, sender)
	ctx := context.Background()
	phone := "5511999990000"

	require.NoError(t, pipeline.ProcessMessage(ctx, phone, "olá"))
	require.NoError(t, pipeline.ProcessMessage(ctx, phone, "ainda não deu tempo"))

	lead, err := store.GetLeadByPhone(phone)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStageAwaitingForm, lead.Etapa)

	require.Len(t, sender.messages, 2)
	assert.Contains(t, sender.messages[1], "não consegui confirmar")
}

func TestPipelineFinalizesAfterFormConfirmation(t *testing.T) {
	store := storage.NewMemoryStore()
	sender := &recordingSender{}
	pipeline := NewProductPipeline(store, MockLLMClient{}, sender)
	ctx := context.Background()
	phone := "5511999990000"

	require.NoError(t, pipeline.ProcessMessage(ctx, phone, "olá"))
	require.NoError(t, pipeline.ProcessMessage(ctx, phone, "já preenchi o formulário"))

	lead, err := store.GetLeadByPhone(phone)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStageFinalized, lead.Etapa)
	assert.True(t, lead.FormularioRespondido)
	assert.Equal(t, models.ProductSingleConsult, lead.ProdutoEscolhido)

	// Questionnaire link, then the final copy
	require.Len(t, sender.messages, 2)
}

func TestPipelineFormSubmissionSetsFlagsAndScore(t *testing.T) {
	store := storage.NewMemoryStore()
	pipeline := NewProductPipeline(store, MockLLMClient{}, &recordingSender{})
	phone := "5511999990000"

	require.NoError(t, pipeline.ProcessFormSubmission(phone, FormResponses{
		Tentante:  "sim",
		Historico: "consulta anterior",
	}))

	lead, err := store.GetLeadByPhone(phone)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStageProduct, lead.Etapa)
	assert.True(t, lead.FormularioRespondido)
	assert.True(t, lead.HasFlag("tentante"))
	assert.False(t, lead.HasFlag("menopausa"))
	assert.Equal(t, 80, lead.Score)

	// Without the tentante answer the score is the lower band
	phone2 := "5511999990001"
	require.NoError(t, pipeline.ProcessFormSubmission(phone2, FormResponses{Menopausa: "sim"}))
	lead2, err := store.GetLeadByPhone(phone2)
	require.NoError(t, err)
	assert.Equal(t, 40, lead2.Score)
	assert.True(t, lead2.HasFlag("menopausa"))
}
