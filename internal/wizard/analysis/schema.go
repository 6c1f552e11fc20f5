package analysis

import (
	"leme-intake/internal/common/validation"
	"leme-intake/internal/models"
)

// payloadSchema guards the assembled payload right before the network
// call, so a drifting draft-to-payload mapping fails loudly instead of
// coming back as a 422 from the scoring service.
var payloadSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"nome_empresa":   {Type: "string", MinLength: intPtr(2)},
		"email":          {Type: "string", MinLength: intPtr(5)},
		"setor":          {Type: "string", Enum: models.Values(models.Sectors)},
		"estado":         {Type: "string", Enum: models.Values(models.BrazilianStates)},
		"mes_referencia": {Type: "integer", Minimum: floatPtr(1), Maximum: floatPtr(12)},
		"ano_referencia": {Type: "integer", Minimum: floatPtr(2000)},
		"receita_historico": {
			Type: "object",
			Properties: map[string]validation.Property{
				"tres_meses_atras": {Type: "number", Minimum: floatPtr(0)},
				"dois_meses_atras": {Type: "number", Minimum: floatPtr(0)},
				"mes_passado":      {Type: "number", Minimum: floatPtr(0)},
			},
			Required: []string{"tres_meses_atras", "dois_meses_atras", "mes_passado"},
		},
		"receita_atual":     {Type: "number", Minimum: floatPtr(0)},
		"custo_vendas":      {Type: "number", Minimum: floatPtr(0)},
		"despesas_fixas":    {Type: "number", Minimum: floatPtr(0)},
		"caixa_bancos":      {Type: "number", Minimum: floatPtr(0)},
		"contas_receber":    {Type: "number", Minimum: floatPtr(0)},
		"contas_pagar":      {Type: "number", Minimum: floatPtr(0)},
		"tem_estoque":       {Type: "boolean"},
		"estoque":           {Type: "number", Nullable: true, Minimum: floatPtr(0)},
		"tem_dividas":       {Type: "boolean"},
		"dividas_totais":    {Type: "number", Nullable: true, Minimum: floatPtr(0)},
		"tem_bens":          {Type: "boolean"},
		"bens_equipamentos": {Type: "number", Nullable: true, Minimum: floatPtr(0)},
		"num_funcionarios":  {Type: "integer", Minimum: floatPtr(1)},
		"ref_parceiro":      {Type: "string"},
	},
	Required: []string{
		"nome_empresa", "email", "setor", "estado",
		"mes_referencia", "ano_referencia", "receita_historico",
		"receita_atual", "custo_vendas", "despesas_fixas",
		"caixa_bancos", "contas_receber", "contas_pagar",
		"tem_estoque", "tem_dividas", "tem_bens", "num_funcionarios",
	},
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
