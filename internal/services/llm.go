package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/noralabs/nora-backend/internal/models"
)

// System instruction for the conversational fallback
const noraSystemPrompt = "Você é a NORA, uma assistente empática e precisa. " +
	"Ajude os leads no processo de agendamento, escolha de produtos e esclarecimento de dúvidas, " +
	"sempre mantendo um tom humano, acolhedor e objetivo."

// Text returned to the lead when the generative model is unavailable
const llmErrorPlaceholder = "Desculpe, estou com dificuldades para responder agora. Pode tentar novamente em instantes?"

// ProfileAnalysis is the structured result of analysing a lead's message
type ProfileAnalysis struct {
	Flags       models.FlagSet `json:"flags"`
	Urgencia    int            `json:"urgencia"`    // 0-100
	Temperatura string         `json:"temperatura"` // quente, morno or frio
}

// LLMClient is the generative collaborator behind the dialog fallback and
// the product pipeline. Implementations must be safe for concurrent use.
type LLMClient interface {
	// GenerateReply answers free text given recent conversation history
	GenerateReply(ctx context.Context, history []models.Message, userMessage string) (string, error)
	// AnalyzeProfile extracts flags, urgency and emotional temperature
	AnalyzeProfile(ctx context.Context, message string) (*ProfileAnalysis, error)
	// GenerateCopy writes persuasive copy for a recommended product
	GenerateCopy(ctx context.Context, produto, temperatura, nome string) (string, error)
}

// GeminiClient implements LLMClient using Google's Gemini API
type GeminiClient struct {
	client  *genai.Client
	modelID string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		modelID: modelID,
	}, nil
}

// GenerateReply answers the user's message with the session history as chat context
func (g *GeminiClient) GenerateReply(ctx context.Context, history []models.Message, userMessage string) (string, error) {
	model := g.client.GenerativeModel(g.modelID)
	model.SystemInstruction = genai.NewUserContent(genai.Text(noraSystemPrompt))

	cs := model.StartChat()
	for _, msg := range history {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	return extractText(resp)
}

// AnalyzeProfile asks the model for flags, urgency and temperature as JSON.
// Any failure yields neutral defaults instead of an error so the pipeline
// never stalls on the model.
func (g *GeminiClient) AnalyzeProfile(ctx context.Context, message string) (*ProfileAnalysis, error) {
	prompt := fmt.Sprintf(`Você é um analista clínico. A partir de mensagens de pacientes, extraia:
- flags relevantes (tentante, gestante, menopausa, criança 8 anos, espermograma ruim)
- urgência (score de 0 a 100)
- temperatura emocional (quente, morno ou frio)
Responda em JSON com as chaves: flags, urgencia, temperatura.

Mensagem do paciente: %s`, message)

	model := g.client.GenerativeModel(g.modelID)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return defaultProfile(), nil
	}
	text, err := extractText(resp)
	if err != nil {
		return defaultProfile(), nil
	}

	var analysis ProfileAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return defaultProfile(), nil
	}
	if analysis.Flags == nil {
		analysis.Flags = models.FlagSet{}
	}
	if analysis.Temperatura == "" {
		analysis.Temperatura = models.TemperaturaMorno
	}
	return &analysis, nil
}

// GenerateCopy writes the persuasive product message for a lead
func (g *GeminiClient) GenerateCopy(ctx context.Context, produto, temperatura, nome string) (string, error) {
	prompt := fmt.Sprintf(`Paciente: %s
Temperatura emocional: %s
Produto recomendado: %s

Gere uma mensagem empática, clara e persuasiva em até 3 parágrafos,
explicando por que esse produto é ideal. Termine com uma chamada para ação.`,
		nome, temperatura, produto)

	model := g.client.GenerativeModel(g.modelID)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini copy generation failed: %w", err)
	}
	return extractText(resp)
}

func defaultProfile() *ProfileAnalysis {
	return &ProfileAnalysis{
		Flags:       models.FlagSet{},
		Urgencia:    0,
		Temperatura: models.TemperaturaMorno,
	}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("gemini returned empty content")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// MockLLMClient echoes deterministic responses for local development and
// tests (enable with MOCK_LLM=1)
type MockLLMClient struct{}

func (MockLLMClient) GenerateReply(_ context.Context, _ []models.Message, userMessage string) (string, error) {
	return fmt.Sprintf("[MOCK] mensagem: %s", userMessage), nil
}

func (MockLLMClient) AnalyzeProfile(_ context.Context, _ string) (*ProfileAnalysis, error) {
	return defaultProfile(), nil
}

func (MockLLMClient) GenerateCopy(_ context.Context, produto, _, nome string) (string, error) {
	return fmt.Sprintf("[MOCK] %s, nossa sugestão é: %s", nome, produto), nil
}
