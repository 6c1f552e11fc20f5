package preopening

import (
	"leme-intake/internal/common/validation"
	"leme-intake/internal/models"
)

// ValidateStep checks only the fields introduced at the given step.
func ValidateStep(d *models.PreOpeningDraft, step Step) validation.Result {
	errs := validation.FieldErrors{}

	switch step {
	case StepBusinessType:
		if !models.ValidBusinessType(d.BusinessType) {
			errs["tipo_negocio"] = "Selecione o tipo de negócio"
		}
	case StepInventory:
		// Only product businesses ever see this question.
		if d.BusinessType == models.BusinessTypeProduct && d.HasInventory == nil {
			errs["tem_estoque"] = "Informe se terá estoque"
		}
	case StepSector:
		if !models.ValidSector(d.Sector) {
			errs["setor"] = "Selecione o setor"
		}
	case StepLocation:
		if !models.ValidState(d.State) {
			errs["estado"] = "Selecione o estado"
		}
	case StepOpeningForecast:
		// Month and year arrive prefilled with the next calendar month.
		if d.OpeningMonth < 1 || d.OpeningMonth > 12 {
			errs["mes_abertura"] = "Informe um mês válido"
		}
	case StepCapital:
		if d.AvailableCapital <= 0 {
			errs["capital_disponivel"] = "Informe o capital disponível"
		}
	case StepPayrollDraw:
		if !models.ValidPayrollDraw(d.PayrollDraw) {
			errs["prolabore"] = "Selecione uma opção"
		}
	case StepEmployees:
		if d.HasEmployees == nil {
			errs["tem_funcionarios"] = "Informe se terá funcionários"
		} else if *d.HasEmployees && !models.ValidEmployeeRange(d.EmployeeRange) {
			errs["faixa_funcionarios"] = "Selecione a faixa de funcionários"
		}
	case StepRevenueForecast:
		if d.ExpectedRevenue <= 0 {
			errs["faturamento_esperado"] = "Informe o faturamento esperado"
		}
	case StepClients:
		if !models.ValidGuaranteedClients(d.GuaranteedClients) {
			errs["clientes_garantidos"] = "Selecione uma opção"
		}
		if d.Email != "" && !validation.ValidEmail(d.Email) {
			errs["email"] = "Email inválido"
		}
	}

	return validation.NewResult(errs, nil)
}

// ValidateAll re-checks every step before submission. The inventory
// rule conditions on the business type internally, so running it for a
// service business is harmless.
func ValidateAll(d *models.PreOpeningDraft) validation.Result {
	result := validation.NewResult(validation.FieldErrors{}, nil)
	for step := StepBusinessType; step <= StepClients; step++ {
		result = result.Merge(ValidateStep(d, step))
	}
	return result
}
