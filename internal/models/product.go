package models

// The five fixed product tiers recommended to leads
const (
	ProductThreeConsults = "Pacote 3 Consultas"
	ProductChildPlan     = "Plano Infantil"
	ProductPrenatal      = "Pacote Gestacional"
	ProductContinued     = "Plano Continuado"
	ProductSingleConsult = "Consulta Avulsa"
)

// Recommendation carries the chosen product tier plus the ordered decision
// criteria that selected it, for auditability of the rule table.
type Recommendation struct {
	Produto   string   `json:"produto"`
	Criterios []string `json:"criterios"`
}

// CopyMessage is the persuasive copy generated for a recommended product
type CopyMessage struct {
	Texto           string `json:"texto"`
	Tom             string `json:"tom"`
	ChamadaParaAcao string `json:"chamada_para_acao"`
}
