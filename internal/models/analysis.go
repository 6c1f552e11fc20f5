package models

import "time"

// RevenueHistory holds the trailing three months of revenue used for
// trend estimation by the scoring service.
type RevenueHistory struct {
	ThreeMonthsAgo float64 `json:"tres_meses_atras"`
	TwoMonthsAgo   float64 `json:"dois_meses_atras"`
	LastMonth      float64 `json:"mes_passado"`
}

// AnalysisDraft is the in-progress answer set for the analysis wizard.
// Dependent currency fields are pointers: nil until the user answers,
// and forced null on the wire whenever the governing boolean is false.
type AnalysisDraft struct {
	CompanyName string `json:"nome_empresa"`
	Email       string `json:"email"`

	Sector         string `json:"setor"`
	State          string `json:"estado"`
	ReferenceMonth int    `json:"mes_referencia"`
	ReferenceYear  int    `json:"ano_referencia"`

	EntryMethod string `json:"metodo_entrada"`

	RevenueHistory RevenueHistory `json:"receita_historico"`
	CurrentRevenue float64        `json:"receita_atual"`

	CostOfSales   float64 `json:"custo_vendas"`
	FixedExpenses float64 `json:"despesas_fixas"`

	CashOnHand         float64 `json:"caixa_bancos"`
	AccountsReceivable float64 `json:"contas_receber"`
	AccountsPayable    float64 `json:"contas_pagar"`

	HasInventory   bool     `json:"tem_estoque"`
	Inventory      *float64 `json:"estoque,omitempty"`
	HasDebt        bool     `json:"tem_dividas"`
	TotalDebt      *float64 `json:"dividas_totais,omitempty"`
	HasAssets      bool     `json:"tem_bens"`
	AssetsValue    *float64 `json:"bens_equipamentos,omitempty"`

	EmployeeCount int `json:"num_funcionarios"`

	// Optional referral partner captured from the landing page.
	ReferralPartner string `json:"ref_parceiro,omitempty"`
}

// NewAnalysisDraft builds a draft with the product defaults: the
// reference period is the calendar month before now, headcount starts
// at 1 and every currency field at zero.
func NewAnalysisDraft(now time.Time) *AnalysisDraft {
	month := int(now.Month()) - 1
	year := now.Year()
	if month == 0 {
		month = 12
		year--
	}
	return &AnalysisDraft{
		ReferenceMonth: month,
		ReferenceYear:  year,
		EntryMethod:    "manual",
		EmployeeCount:  1,
	}
}

// Payload assembles the wire payload for POST /api/v1/analise/nova,
// nulling each dependent field whose governing boolean is false even
// if a stale value is still present on the draft.
func (d *AnalysisDraft) Payload() map[string]interface{} {
	payload := map[string]interface{}{
		"nome_empresa":   d.CompanyName,
		"email":          d.Email,
		"setor":          d.Sector,
		"estado":         d.State,
		"mes_referencia": d.ReferenceMonth,
		"ano_referencia": d.ReferenceYear,
		"receita_historico": map[string]interface{}{
			"tres_meses_atras": d.RevenueHistory.ThreeMonthsAgo,
			"dois_meses_atras": d.RevenueHistory.TwoMonthsAgo,
			"mes_passado":      d.RevenueHistory.LastMonth,
		},
		"receita_atual":     d.CurrentRevenue,
		"custo_vendas":      d.CostOfSales,
		"despesas_fixas":    d.FixedExpenses,
		"caixa_bancos":      d.CashOnHand,
		"contas_receber":    d.AccountsReceivable,
		"contas_pagar":      d.AccountsPayable,
		"tem_estoque":       d.HasInventory,
		"estoque":           gatedAmount(d.HasInventory, d.Inventory),
		"tem_dividas":       d.HasDebt,
		"dividas_totais":    gatedAmount(d.HasDebt, d.TotalDebt),
		"tem_bens":          d.HasAssets,
		"bens_equipamentos": gatedAmount(d.HasAssets, d.AssetsValue),
		"num_funcionarios":  d.EmployeeCount,
	}
	if d.ReferralPartner != "" {
		payload["ref_parceiro"] = d.ReferralPartner
	}
	return payload
}

func gatedAmount(enabled bool, value *float64) interface{} {
	if !enabled || value == nil {
		return nil
	}
	return *value
}
