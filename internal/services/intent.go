package services

import (
	"regexp"
	"strings"
)

// Intent is a coarse classification of user free text
type Intent string

const (
	IntentSchedule Intent = "agendar"
	IntentPrice    Intent = "preco"
	IntentCancel   Intent = "cancelar"
	IntentNone     Intent = "nenhuma"
)

// Keyword phrases per intent, Portuguese. Order matters: intents are tested
// in this sequence and the first one with a matching phrase wins.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentSchedule, []string{
		"agendar", "marcar", "consulta", "horário", "agenda", "agendamento", "reservar",
		"disponibilidade", "reserva de horário", "marcação", "agendar consulta", "marcar consulta",
		"reservar horário", "quero agendar", "posso agendar", "quando posso agendar",
		"tem horário", "você tem horário", "dia de atendimento", "data disponível",
		"marcar atendimento", "agendar atendimento", "liberação de horário", "marcar horário",
		"reservar consulta", "agenda aberta", "vaga de horário", "reserva de data",
		"agendar para", "marcar para", "abrir agenda",
	}},
	{IntentPrice, []string{
		"quanto custa", "preço", "valor", "quanto é", "custa", "tabela de preços",
		"preço consulta", "valor consulta", "custo", "quanto pago", "qual o valor",
		"qual o preço", "preço serviço", "valor serviço", "quanto sai", "taxa",
		"tarifa", "quanto cobra", "cobrança", "quanto vai custar", "preço total",
		"valor total", "valor final", "custo final", "orçamento", "estimativa de valor",
		"orçamento consulta", "valor da consulta", "preço da consulta", "quanto fica",
	}},
	{IntentCancel, []string{
		"cancelar", "desmarcar", "cancelamento", "cancelar consulta", "desmarcar consulta",
		"quero cancelar", "posso cancelar", "como cancelar", "cancelar agendamento",
		"desmarcar agendamento", "cancelar horário", "desmarcar horário",
		"cancelamento de consulta", "solicito cancelamento", "preciso cancelar",
		"desistir", "anular", "anular consulta", "remover agendamento",
		"remover consulta", "cancelamento imediato", "não posso ir", "não irei",
		"liberar vaga", "liberar horário", "cancelar reserva", "pedido de cancelamento",
		"encerrar agendamento", "abortar consulta", "cancelamento definitivo",
	}},
}

// One precompiled alternation per intent, built once at init
var intentMatchers []struct {
	intent Intent
	re     *regexp.Regexp
}

func init() {
	for _, entry := range intentKeywords {
		quoted := make([]string, len(entry.keywords))
		for i, kw := range entry.keywords {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		re := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
		intentMatchers = append(intentMatchers, struct {
			intent Intent
			re     *regexp.Regexp
		}{entry.intent, re})
	}
}

// DetectIntent maps free text to an intent by whole-word keyword matching.
// Returns IntentNone when nothing matches.
func DetectIntent(message string) Intent {
	text := strings.ToLower(message)
	for _, matcher := range intentMatchers {
		if matcher.re.MatchString(text) {
			return matcher.intent
		}
	}
	return IntentNone
}
