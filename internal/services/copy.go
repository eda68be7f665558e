package services

import (
	"fmt"
	"math/rand"

	"github.com/noralabs/nora-backend/internal/models"
)

// Tone of voice by emotional temperature
var copyTones = map[string]string{
	models.TemperaturaQuente: "urgente e direto",
	models.TemperaturaMorno:  "empático e assertivo",
	models.TemperaturaFrio:   "suave e explicativo",
}

var ctaPool = []string{
	"Clique aqui para agendar",
	"Me avise quando quiser seguir",
	"Queremos te ajudar, vamos nessa?",
}

// GeneratePersonalizedCopy builds the template-based persuasive message for
// a recommended product. Used directly and as the fallback when the
// generative copy fails.
func GeneratePersonalizedCopy(lead *models.Lead, produto string) models.CopyMessage {
	nome := lead.Nome
	if nome == "" {
		nome = "Paciente"
	}

	tom, ok := copyTones[lead.Temperatura]
	if !ok {
		tom = "neutro"
	}

	var texto string
	switch produto {
	case models.ProductThreeConsults:
		texto = fmt.Sprintf("%s, esse pacote é ideal para quem precisa de acompanhamento próximo e decisões rápidas. A gente vai te guiar com segurança em cada passo.", nome)
	case models.ProductChildPlan:
		texto = fmt.Sprintf("%s, esse plano cuida do acompanhamento completo da criança, focado em qualidade e cuidado contínuo.", nome)
	case models.ProductPrenatal:
		texto = fmt.Sprintf("%s, este pacote cobre as fases mais importantes da gestação com atenção especializada.", nome)
	case models.ProductContinued:
		texto = fmt.Sprintf("%s, você já teve contato com a gente antes. Com esse plano, garantimos consistência no cuidado e evolução segura.", nome)
	case models.ProductSingleConsult:
		texto = fmt.Sprintf("%s, podemos começar com uma consulta pontual para entender melhor sua situação e te orientar com precisão.", nome)
	default:
		texto = fmt.Sprintf("%s, nossa sugestão é seguir com: %s", nome, produto)
	}

	return models.CopyMessage{
		Texto:           texto,
		Tom:             tom,
		ChamadaParaAcao: ctaPool[rand.Intn(len(ctaPool))],
	}
}
