package models

import "time"

// PreOpeningDraft is the in-progress answer set for the pre-opening
// wizard. HasInventory and HasEmployees are pointers so "not answered
// yet" is distinguishable from an explicit "no".
type PreOpeningDraft struct {
	BusinessType string `json:"tipo_negocio"`

	HasInventory *bool `json:"tem_estoque"`

	Sector string `json:"setor"`

	State string `json:"estado"`
	City  string `json:"cidade,omitempty"`

	OpeningMonth int `json:"mes_abertura"`
	OpeningYear  int `json:"ano_abertura"`

	AvailableCapital float64 `json:"capital_disponivel"`

	PayrollDraw string `json:"prolabore"`

	HasEmployees  *bool  `json:"tem_funcionarios"`
	EmployeeRange string `json:"faixa_funcionarios,omitempty"`

	ExpectedRevenue float64 `json:"faturamento_esperado"`

	GuaranteedClients string `json:"clientes_garantidos"`

	Email string `json:"email,omitempty"`
}

// NewPreOpeningDraft builds a draft defaulting the opening forecast to
// the calendar month after now.
func NewPreOpeningDraft(now time.Time) *PreOpeningDraft {
	month := int(now.Month()) + 1
	year := now.Year()
	if month > 12 {
		month -= 12
		year++
	}
	return &PreOpeningDraft{
		OpeningMonth: month,
		OpeningYear:  year,
	}
}

// Payload assembles the wire payload for POST /api/v1/pre-abertura/nova.
// The inventory answer only travels when the business sells products,
// and the employee range only when the employee toggle is true.
func (d *PreOpeningDraft) Payload() map[string]interface{} {
	var inventory interface{}
	if d.BusinessType == BusinessTypeProduct && d.HasInventory != nil {
		inventory = *d.HasInventory
	}

	var employees interface{}
	var employeeRange interface{}
	if d.HasEmployees != nil {
		employees = *d.HasEmployees
		if *d.HasEmployees && d.EmployeeRange != "" {
			employeeRange = d.EmployeeRange
		}
	}

	return map[string]interface{}{
		"tipo_negocio":         d.BusinessType,
		"tem_estoque":          inventory,
		"setor":                d.Sector,
		"estado":               d.State,
		"cidade":               nullableString(d.City),
		"mes_abertura":         d.OpeningMonth,
		"ano_abertura":         d.OpeningYear,
		"capital_disponivel":   d.AvailableCapital,
		"prolabore":            d.PayrollDraw,
		"tem_funcionarios":     employees,
		"faixa_funcionarios":   employeeRange,
		"faturamento_esperado": d.ExpectedRevenue,
		"clientes_garantidos":  d.GuaranteedClients,
		"email":                nullableString(d.Email),
	}
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
