package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/noralabs/nora-backend/internal/models"
	"github.com/noralabs/nora-backend/internal/storage"
)

// Phrases that signal the lead already answered the questionnaire
var formAnsweredKeywords = []string{"preenchi", "respondi", "enviei o formulário", "já preenchi"}

// ChooseProduct decides the ideal product tier for a lead. Pure and total:
// the rules are checked in order, multiple flags can be true at once, and
// the first matching rule wins. Menopausa changes the copy downstream but
// not the tier.
func ChooseProduct(lead *models.Lead) (string, []string) {
	if lead.HasFlag("is_ttc") || lead.HasFlag("bad_sperm") {
		return models.ProductThreeConsults, []string{"is_ttc", "bad_sperm"}
	}

	if lead.HasFlag("is_child8") {
		return models.ProductChildPlan, []string{"is_child8"}
	}

	if lead.HasFlag("is_gest") {
		return models.ProductPrenatal, []string{"is_gest"}
	}

	if lead.Score >= 70 && lead.HasPreviousInteraction() {
		return models.ProductContinued, []string{"score ≥ 70", "com histórico"}
	}

	return models.ProductSingleConsult, []string{"score < 70", "ou sem histórico"}
}

// ProductPipeline drives the post-questionnaire funnel, a state machine
// keyed on lead.Etapa rather than the conversation session:
// inicial → aguardando_form → produto → finalizado.
type ProductPipeline struct {
	store  storage.Store
	llm    LLMClient
	sender MessageSender
}

// NewProductPipeline creates a new pipeline
func NewProductPipeline(store storage.Store, llm LLMClient, sender MessageSender) *ProductPipeline {
	return &ProductPipeline{
		store:  store,
		llm:    llm,
		sender: sender,
	}
}

// ProcessMessage advances a lead through the funnel from one inbound
// message
func (p *ProductPipeline) ProcessMessage(ctx context.Context, phone, text string) error {
	lead, err := p.store.GetLeadByPhone(phone)
	if err != nil {
		lead, err = p.store.CreateLead(phone)
		if err != nil {
			return fmt.Errorf("failed to create lead for %s: %w", phone, err)
		}
		log.Printf("👤 New lead created: %s", phone)
	}

	// Waiting on the questionnaire confirmation
	if lead.Etapa == models.LeadStageAwaitingForm {
		if !mentionsFormAnswered(text) {
			p.deliver(phone, "Ops, não consegui confirmar se você já respondeu. "+
				"Assim que preencher o formulário, me avisa aqui!")
			return nil
		}
		lead.FormularioRespondido = true
		lead.Etapa = models.LeadStageProduct
		if _, err := p.store.UpdateLead(lead); err != nil {
			return err
		}
		log.Printf("✅ Questionnaire confirmed for %s", phone)
	}

	// Not answered yet: analyse the profile and send the questionnaire link
	if !lead.FormularioRespondido {
		profile, err := p.llm.AnalyzeProfile(ctx, text)
		if err != nil || profile == nil {
			log.Printf("Profile analysis failed for %s, keeping defaults: %v", phone, err)
			profile = defaultProfile()
		}
		for flag := range profile.Flags {
			if profile.Flags[flag] {
				lead.SetFlag(flag)
			}
		}
		lead.Score = profile.Urgencia
		lead.Temperatura = profile.Temperatura

		link := fmt.Sprintf("https://forms.gle/%s", uuid.NewString()[:8])
		p.deliver(phone, fmt.Sprintf("Perfeito! Antes de continuar, responde esse formulário rapidinho? 💜\n%s", link))

		lead.Etapa = models.LeadStageAwaitingForm
		if _, err := p.store.UpdateLead(lead); err != nil {
			return err
		}
		log.Printf("📮 Questionnaire sent to %s", phone)
		return nil
	}

	// Product stage: decide, write the copy, send, finalize
	produto, criterios := ChooseProduct(lead)
	lead.ProdutoEscolhido = produto
	log.Printf("📦 Product chosen for %s: %s (criteria: %s)", phone, produto, strings.Join(criterios, ", "))

	copyText, err := p.llm.GenerateCopy(ctx, produto, lead.Temperatura, lead.Nome)
	if err != nil {
		log.Printf("Copy generation failed for %s, using template: %v", phone, err)
		msg := GeneratePersonalizedCopy(lead, produto)
		copyText = msg.Texto + "\n\n" + msg.ChamadaParaAcao
	}
	p.deliver(phone, copyText)

	lead.Etapa = models.LeadStageFinalized
	_, err = p.store.UpdateLead(lead)
	return err
}

// FormResponses is the questionnaire payload forwarded by the forms webhook
type FormResponses struct {
	Idade     string `json:"idade"`
	Tentante  string `json:"tentante"`
	Menopausa string `json:"menopausa"`
	Historico string `json:"historico"`
}

// ProcessFormSubmission records a submitted questionnaire on the lead and
// moves it to the product stage
func (p *ProductPipeline) ProcessFormSubmission(phone string, respostas FormResponses) error {
	lead, err := p.store.GetLeadByPhone(phone)
	if err != nil {
		lead, err = p.store.CreateLead(phone)
		if err != nil {
			return fmt.Errorf("failed to create lead for %s: %w", phone, err)
		}
	}

	lead.FormularioRespondido = true
	lead.Etapa = models.LeadStageProduct
	lead.Historico = respostas.Historico

	lead.Flags = models.FlagSet{}
	if respostas.Tentante == "sim" {
		lead.SetFlag("tentante")
	}
	if respostas.Menopausa == "sim" {
		lead.SetFlag("menopausa")
	}

	if lead.HasFlag("tentante") {
		lead.Score = 80
	} else {
		lead.Score = 40
	}

	log.Printf("📋 Questionnaire processed for %s", phone)
	_, err = p.store.UpdateLead(lead)
	return err
}

func (p *ProductPipeline) deliver(phone, message string) {
	if err := p.sender.SendWhatsAppMessage(phone, message); err != nil {
		log.Printf("Failed to deliver pipeline message to %s: %v", phone, err)
	}
}

func mentionsFormAnswered(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range formAnsweredKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
