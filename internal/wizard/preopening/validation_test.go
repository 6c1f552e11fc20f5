package preopening

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leme-intake/internal/models"
)

func completeDraft() *models.PreOpeningDraft {
	yes := true
	d := models.NewPreOpeningDraft(testNow())
	d.BusinessType = models.BusinessTypeProduct
	d.HasInventory = &yes
	d.Sector = "comercio_varejo"
	d.State = "SP"
	d.City = "Campinas"
	d.AvailableCapital = 50000
	d.PayrollDraw = "sim"
	d.HasEmployees = &yes
	d.EmployeeRange = "1-2"
	d.ExpectedRevenue = 20000
	d.GuaranteedClients = "parcialmente"
	return d
}

func TestValidateStep(t *testing.T) {
	no := false

	tests := []struct {
		name      string
		step      Step
		mutate    func(d *models.PreOpeningDraft)
		wantField string
	}{
		{
			name:      "business type unanswered",
			step:      StepBusinessType,
			mutate:    func(d *models.PreOpeningDraft) { d.BusinessType = "" },
			wantField: "tipo_negocio",
		},
		{
			name:      "product without inventory answer",
			step:      StepInventory,
			mutate:    func(d *models.PreOpeningDraft) { d.HasInventory = nil },
			wantField: "tem_estoque",
		},
		{
			name: "service never blocks on inventory",
			step: StepInventory,
			mutate: func(d *models.PreOpeningDraft) {
				d.BusinessType = models.BusinessTypeService
				d.HasInventory = nil
			},
		},
		{
			name:      "sector outside enumeration",
			step:      StepSector,
			mutate:    func(d *models.PreOpeningDraft) { d.Sector = "outro" },
			wantField: "setor",
		},
		{
			name:      "state unanswered",
			step:      StepLocation,
			mutate:    func(d *models.PreOpeningDraft) { d.State = "" },
			wantField: "estado",
		},
		{
			name:   "city is optional",
			step:   StepLocation,
			mutate: func(d *models.PreOpeningDraft) { d.City = "" },
		},
		{
			name:   "opening forecast arrives prefilled",
			step:   StepOpeningForecast,
			mutate: func(d *models.PreOpeningDraft) {},
		},
		{
			name:      "capital zero",
			step:      StepCapital,
			mutate:    func(d *models.PreOpeningDraft) { d.AvailableCapital = 0 },
			wantField: "capital_disponivel",
		},
		{
			name:      "payroll draw unanswered",
			step:      StepPayrollDraw,
			mutate:    func(d *models.PreOpeningDraft) { d.PayrollDraw = "" },
			wantField: "prolabore",
		},
		{
			name:      "employees unanswered",
			step:      StepEmployees,
			mutate:    func(d *models.PreOpeningDraft) { d.HasEmployees = nil },
			wantField: "tem_funcionarios",
		},
		{
			name:      "employees yes without range",
			step:      StepEmployees,
			mutate:    func(d *models.PreOpeningDraft) { d.EmployeeRange = "" },
			wantField: "faixa_funcionarios",
		},
		{
			name: "employees no needs no range",
			step: StepEmployees,
			mutate: func(d *models.PreOpeningDraft) {
				d.HasEmployees = &no
				d.EmployeeRange = ""
			},
		},
		{
			name:      "expected revenue zero",
			step:      StepRevenueForecast,
			mutate:    func(d *models.PreOpeningDraft) { d.ExpectedRevenue = 0 },
			wantField: "faturamento_esperado",
		},
		{
			name:      "guaranteed clients unanswered",
			step:      StepClients,
			mutate:    func(d *models.PreOpeningDraft) { d.GuaranteedClients = "" },
			wantField: "clientes_garantidos",
		},
		{
			name:      "malformed optional email",
			step:      StepClients,
			mutate:    func(d *models.PreOpeningDraft) { d.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name:   "empty email is fine",
			step:   StepClients,
			mutate: func(d *models.PreOpeningDraft) { d.Email = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeDraft()
			tt.mutate(d)

			result := ValidateStep(d, tt.step)

			if tt.wantField == "" {
				assert.True(t, result.Valid, "errors: %v", result.Errors)
			} else {
				assert.False(t, result.Valid)
				assert.True(t, result.Errors.Has(tt.wantField), "expected error for %s, got %v", tt.wantField, result.Errors)
				assert.Len(t, result.Errors, 1, "a step only reports its own fields")
			}
		})
	}
}

func TestValidateAll(t *testing.T) {
	t.Run("complete draft passes", func(t *testing.T) {
		result := ValidateAll(completeDraft())
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})

	t.Run("empty draft reports every required field", func(t *testing.T) {
		result := ValidateAll(models.NewPreOpeningDraft(testNow()))
		assert.False(t, result.Valid)
		for _, field := range []string{"tipo_negocio", "setor", "estado", "capital_disponivel", "prolabore", "tem_funcionarios", "faturamento_esperado", "clientes_garantidos"} {
			assert.True(t, result.Errors.Has(field), "expected error for %s", field)
		}
	})

	t.Run("service draft needs no inventory answer", func(t *testing.T) {
		no := false
		d := completeDraft()
		d.BusinessType = models.BusinessTypeService
		d.HasInventory = nil
		d.HasEmployees = &no
		d.EmployeeRange = ""

		result := ValidateAll(d)
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})
}
