package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"leme-intake/internal/common/scoring"
	"leme-intake/internal/models"
	"leme-intake/internal/wizard/analysis"
	"leme-intake/internal/wizard/preopening"
)

// runner drives a wizard from the terminal. It is presentation only:
// every mutation goes through the engine's public operations.
type runner struct {
	in  *bufio.Scanner
	out io.Writer
}

func newRunner(in io.Reader, out io.Writer) *runner {
	return &runner{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (r *runner) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *runner) prompt(label string) string {
	r.printf("%s: ", label)
	if !r.in.Scan() {
		return ""
	}
	return strings.TrimSpace(r.in.Text())
}

func (r *runner) promptFloat(label string) float64 {
	for {
		raw := r.prompt(label + " (R$)")
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err == nil && v >= 0 {
			return v
		}
		r.printf("Valor inválido, tente novamente.\n")
	}
}

func (r *runner) promptInt(label string) int {
	for {
		raw := r.prompt(label)
		if raw == "" {
			return 0
		}
		v, err := strconv.Atoi(raw)
		if err == nil {
			return v
		}
		r.printf("Número inválido, tente novamente.\n")
	}
}

func (r *runner) promptBool(label string) bool {
	answer := strings.ToLower(r.prompt(label + " (s/n)"))
	return answer == "s" || answer == "sim"
}

func (r *runner) promptOption(label string, options []models.Option) string {
	r.printf("%s:\n", label)
	for i, opt := range options {
		r.printf("  %2d. %s\n", i+1, opt.Label)
	}
	for {
		idx := r.promptInt("Opção")
		if idx >= 1 && idx <= len(options) {
			return options[idx-1].Value
		}
		r.printf("Opção inválida, tente novamente.\n")
	}
}

func (r *runner) printErrors(errs map[string]string) {
	for field, msg := range errs {
		r.printf("  ✗ %s: %s\n", field, msg)
	}
}

func (r *runner) printAlerts(alerts []string) {
	for _, alert := range alerts {
		r.printf("  ⚠ %s\n", alert)
	}
}

// ==========================
// Analysis flow
// ==========================

func (r *runner) runAnalysis(ctx context.Context, w *analysis.Wizard) {
	set := func(name string, value interface{}) {
		_ = w.UpdateField(name, value)
	}

	for {
		pos := w.Position()
		r.printf("\n[%d%%]\n", w.Progress())

		switch pos.Step {
		case analysis.StepIdentification:
			set("nome_empresa", r.prompt("Nome da empresa"))
			set("email", r.prompt("Email"))
		case analysis.StepBasicInfo:
			set("setor", r.promptOption("Setor", models.Sectors))
			set("estado", r.promptOption("Estado", models.BrazilianStates))
		case analysis.StepFinancials:
			r.promptAnalysisMicro(w, pos.Micro, set)
		}

		if !w.Advance(ctx) {
			if msg := w.SubmitError(); msg != "" {
				r.printf("  ✗ %s\n", msg)
				continue
			}
			r.printErrors(w.Errors())
			continue
		}
		r.printAlerts(w.Alerts())

		if id := w.RecordID(); id != "" {
			r.printf("\nAnálise concluída! Resultado disponível em /resultado/%s\n", id)
			return
		}
	}
}

func (r *runner) promptAnalysisMicro(w *analysis.Wizard, micro analysis.MicroStep, set func(string, interface{})) {
	switch micro {
	case analysis.MicroRevenue:
		set("receita_atual", r.promptFloat("Receita do mês"))
		_ = w.UpdateRevenueHistory("mes_passado", r.promptFloat("Receita do mês passado"))
		_ = w.UpdateRevenueHistory("dois_meses_atras", r.promptFloat("Receita de dois meses atrás"))
		_ = w.UpdateRevenueHistory("tres_meses_atras", r.promptFloat("Receita de três meses atrás"))
	case analysis.MicroCosts:
		set("custo_vendas", r.promptFloat("Custo das vendas"))
		set("despesas_fixas", r.promptFloat("Despesas fixas"))
	case analysis.MicroCash:
		set("caixa_bancos", r.promptFloat("Caixa e bancos"))
		set("contas_receber", r.promptFloat("Contas a receber"))
		set("contas_pagar", r.promptFloat("Contas a pagar"))
	case analysis.MicroInventory:
		has := r.promptBool("Tem estoque?")
		set("tem_estoque", has)
		if has {
			set("estoque", r.promptFloat("Valor do estoque"))
		}
	case analysis.MicroDebt:
		has := r.promptBool("Tem dívidas?")
		set("tem_dividas", has)
		if has {
			set("dividas_totais", r.promptFloat("Valor das dívidas"))
		}
	case analysis.MicroAssets:
		has := r.promptBool("Tem bens e equipamentos?")
		set("tem_bens", has)
		if has {
			set("bens_equipamentos", r.promptFloat("Valor dos bens"))
		}
	case analysis.MicroHeadcount:
		set("num_funcionarios", r.promptInt("Número de funcionários"))
	}
}

// ==========================
// Pre-opening flow
// ==========================

func (r *runner) runPreOpening(ctx context.Context, w *preopening.Wizard) {
	set := func(name string, value interface{}) {
		_ = w.UpdateField(name, value)
	}

	for {
		r.printf("\n[%d%%]\n", w.Progress())

		switch w.Step() {
		case preopening.StepBusinessType:
			set("tipo_negocio", r.promptOption("Tipo de negócio", models.BusinessTypes))
		case preopening.StepInventory:
			set("tem_estoque", r.promptBool("Terá estoque?"))
		case preopening.StepSector:
			set("setor", r.promptOption("Setor", models.Sectors))
		case preopening.StepLocation:
			set("estado", r.promptOption("Estado", models.BrazilianStates))
			set("cidade", r.prompt("Cidade (opcional)"))
		case preopening.StepOpeningForecast:
			d := w.Draft()
			r.printf("Previsão de abertura: %s/%d\n", models.MonthNames[d.OpeningMonth], d.OpeningYear)
			if month := r.promptInt("Mês (Enter mantém)"); month > 0 {
				set("mes_abertura", month)
			}
		case preopening.StepCapital:
			set("capital_disponivel", r.promptFloat("Capital disponível"))
		case preopening.StepPayrollDraw:
			set("prolabore", r.promptOption("Vai precisar de pró-labore?", models.PayrollDrawOptions))
		case preopening.StepEmployees:
			has := r.promptBool("Terá funcionários?")
			set("tem_funcionarios", has)
			if has {
				set("faixa_funcionarios", r.promptOption("Quantos?", models.EmployeeRanges))
			}
		case preopening.StepRevenueForecast:
			set("faturamento_esperado", r.promptFloat("Faturamento mensal esperado"))
		case preopening.StepClients:
			set("clientes_garantidos", r.promptOption("Já tem clientes garantidos?", models.GuaranteedClientOptions))
			set("email", r.prompt("Email (opcional)"))
		}

		if !w.Advance(ctx) {
			if msg := w.SubmitError(); msg != "" {
				r.printf("  ✗ %s\n", msg)
				continue
			}
			r.printErrors(w.Errors())
			continue
		}

		if result := w.Result(); result != nil {
			r.printPreOpeningResult(result)
			return
		}
	}
}

func (r *runner) printPreOpeningResult(result *scoring.PreOpeningResult) {
	r.printf("\nAnálise pré-abertura concluída (%s)\n", result.ID)
	r.printf("Capital: informado R$ %.2f, recomendado R$ %.2f (%s)\n",
		result.CapitalComparison.Informed,
		result.CapitalComparison.Recommended,
		result.CapitalComparison.Status,
	)
	r.printf("Faturamento: esperado R$ %.2f, referência R$ %.2f (%s)\n",
		result.RevenueComparison.Expected,
		result.RevenueComparison.Reference,
		result.RevenueComparison.Status,
	)
	for _, alert := range result.Alerts {
		r.printf("  [%s] %s: %s\n", alert.Severity, alert.Title, alert.Text)
	}
	if len(result.Checklist30Days) > 0 {
		r.printf("Checklist dos primeiros 30 dias:\n")
		for _, item := range result.Checklist30Days {
			r.printf("  - %s\n", item.Text)
		}
	}
}
