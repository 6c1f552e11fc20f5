package preopening

import (
	"leme-intake/internal/common/validation"
	"leme-intake/internal/models"
)

// payloadSchema guards the assembled payload before the network call.
// Nullable fields mirror the dependent-field rules: the inventory
// answer only travels for product businesses and the employee range
// only when the employee toggle is on.
var payloadSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"tipo_negocio":         {Type: "string", Enum: models.Values(models.BusinessTypes)},
		"tem_estoque":          {Type: "boolean", Nullable: true},
		"setor":                {Type: "string", Enum: models.Values(models.Sectors)},
		"estado":               {Type: "string", Enum: models.Values(models.BrazilianStates)},
		"cidade":               {Type: "string", Nullable: true},
		"mes_abertura":         {Type: "integer", Minimum: floatPtr(1), Maximum: floatPtr(12)},
		"ano_abertura":         {Type: "integer", Minimum: floatPtr(2000)},
		"capital_disponivel":   {Type: "number", Minimum: floatPtr(0)},
		"prolabore":            {Type: "string", Enum: models.Values(models.PayrollDrawOptions)},
		"tem_funcionarios":     {Type: "boolean"},
		"faixa_funcionarios":   {Type: "string", Nullable: true, Enum: models.Values(models.EmployeeRanges)},
		"faturamento_esperado": {Type: "number", Minimum: floatPtr(0)},
		"clientes_garantidos":  {Type: "string", Enum: models.Values(models.GuaranteedClientOptions)},
		"email":                {Type: "string", Nullable: true},
	},
	Required: []string{
		"tipo_negocio", "setor", "estado", "mes_abertura", "ano_abertura",
		"capital_disponivel", "prolabore", "tem_funcionarios",
		"faturamento_esperado", "clientes_garantidos",
	},
}

func floatPtr(v float64) *float64 { return &v }
