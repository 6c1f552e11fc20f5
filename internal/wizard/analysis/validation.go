package analysis

import (
	"strings"

	"leme-intake/internal/common/validation"
	"leme-intake/internal/models"
)

// ValidateStep checks only the fields introduced at pos. Blocking
// errors stop advancement; alerts are advisory and never do. Both are
// fully replaced per pass.
func ValidateStep(d *models.AnalysisDraft, pos Position) validation.Result {
	switch pos.Step {
	case StepIdentification:
		return validateIdentification(d)
	case StepBasicInfo:
		return validateBasicInfo(d)
	case StepEntryMethod:
		return validation.NewResult(validation.FieldErrors{}, nil)
	case StepFinancials:
		return validateMicroStep(d, pos.Micro)
	}
	return validation.NewResult(validation.FieldErrors{}, nil)
}

// ValidateAll re-checks every blocking rule across the whole draft.
// It is the authoritative pass at submission time: a user can reach
// the last question with never-visited required fields after
// programmatic navigation.
func ValidateAll(d *models.AnalysisDraft) validation.Result {
	result := validateIdentification(d)
	result = result.Merge(validateBasicInfo(d))
	for micro := MicroRevenue; micro <= MicroHeadcount; micro++ {
		result = result.Merge(validateMicroStep(d, micro))
	}
	return result
}

func validateIdentification(d *models.AnalysisDraft) validation.Result {
	errs := validation.FieldErrors{}
	if len(strings.TrimSpace(d.CompanyName)) < 2 {
		errs["nome_empresa"] = "Nome da empresa é obrigatório"
	}
	if !validation.ValidEmail(d.Email) {
		errs["email"] = "Email inválido"
	}
	return validation.NewResult(errs, nil)
}

func validateBasicInfo(d *models.AnalysisDraft) validation.Result {
	errs := validation.FieldErrors{}
	if !models.ValidSector(d.Sector) {
		errs["setor"] = "Selecione o setor"
	}
	if !models.ValidState(d.State) {
		errs["estado"] = "Selecione o estado"
	}
	return validation.NewResult(errs, nil)
}

func validateMicroStep(d *models.AnalysisDraft, micro MicroStep) validation.Result {
	errs := validation.FieldErrors{}
	var alerts []string

	switch micro {
	case MicroRevenue:
		if d.CurrentRevenue <= 0 {
			errs["receita_atual"] = "Receita é obrigatória"
		}
	case MicroCosts:
		// Costs never block, they only warn.
		if d.CostOfSales > d.CurrentRevenue {
			alerts = append(alerts, "Custo maior que receita. Verifique os valores.")
		}
		if d.FixedExpenses > d.CurrentRevenue {
			alerts = append(alerts, "Despesas maiores que receita. Isso indica prejuízo.")
		}
	case MicroCash:
		// Cash, receivables and payables accept zero.
	case MicroInventory:
		if d.HasInventory && !positive(d.Inventory) {
			errs["estoque"] = "Informe o valor do estoque"
		}
	case MicroDebt:
		if d.HasDebt && !positive(d.TotalDebt) {
			errs["dividas_totais"] = "Informe o valor das dívidas"
		}
	case MicroAssets:
		if d.HasAssets && !positive(d.AssetsValue) {
			errs["bens_equipamentos"] = "Informe o valor dos bens"
		}
	case MicroHeadcount:
		if d.EmployeeCount < 1 {
			errs["num_funcionarios"] = "Mínimo 1 funcionário"
		}
	}

	return validation.NewResult(errs, alerts)
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}
