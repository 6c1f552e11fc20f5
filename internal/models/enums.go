package models

// Option pairs a wire value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Sectors lists the 21 supported activity sectors (CNAE-based).
var Sectors = []Option{
	{Value: "comercio_varejo", Label: "Comércio Varejista"},
	{Value: "comercio_atacado", Label: "Comércio Atacadista"},
	{Value: "servicos", Label: "Serviços"},
	{Value: "industria", Label: "Indústria"},
	{Value: "tecnologia", Label: "Tecnologia"},
	{Value: "alimentacao", Label: "Alimentação e Bebidas"},
	{Value: "saude", Label: "Saúde"},
	{Value: "educacao", Label: "Educação"},
	{Value: "construcao", Label: "Construção Civil"},
	{Value: "agronegocio", Label: "Agronegócio"},
	{Value: "transporte", Label: "Transporte e Logística"},
	{Value: "hotelaria_turismo", Label: "Hotelaria e Turismo"},
	{Value: "imobiliario", Label: "Imobiliário"},
	{Value: "financeiro", Label: "Serviços Financeiros"},
	{Value: "comunicacao", Label: "Comunicação e Marketing"},
	{Value: "energia", Label: "Energia"},
	{Value: "textil", Label: "Têxtil e Vestuário"},
	{Value: "metalurgico", Label: "Metalúrgico"},
	{Value: "moveis", Label: "Móveis e Decoração"},
	{Value: "grafico", Label: "Gráfico e Editorial"},
	{Value: "reciclagem", Label: "Reciclagem e Meio Ambiente"},
}

// BrazilianStates lists the 27 federative units.
var BrazilianStates = []Option{
	{Value: "AC", Label: "Acre"},
	{Value: "AL", Label: "Alagoas"},
	{Value: "AP", Label: "Amapá"},
	{Value: "AM", Label: "Amazonas"},
	{Value: "BA", Label: "Bahia"},
	{Value: "CE", Label: "Ceará"},
	{Value: "DF", Label: "Distrito Federal"},
	{Value: "ES", Label: "Espírito Santo"},
	{Value: "GO", Label: "Goiás"},
	{Value: "MA", Label: "Maranhão"},
	{Value: "MT", Label: "Mato Grosso"},
	{Value: "MS", Label: "Mato Grosso do Sul"},
	{Value: "MG", Label: "Minas Gerais"},
	{Value: "PA", Label: "Pará"},
	{Value: "PB", Label: "Paraíba"},
	{Value: "PR", Label: "Paraná"},
	{Value: "PE", Label: "Pernambuco"},
	{Value: "PI", Label: "Piauí"},
	{Value: "RJ", Label: "Rio de Janeiro"},
	{Value: "RN", Label: "Rio Grande do Norte"},
	{Value: "RS", Label: "Rio Grande do Sul"},
	{Value: "RO", Label: "Rondônia"},
	{Value: "RR", Label: "Roraima"},
	{Value: "SC", Label: "Santa Catarina"},
	{Value: "SP", Label: "São Paulo"},
	{Value: "SE", Label: "Sergipe"},
	{Value: "TO", Label: "Tocantins"},
}

// MonthNames maps month ordinals (1-12) to labels.
var MonthNames = map[int]string{
	1:  "Janeiro",
	2:  "Fevereiro",
	3:  "Março",
	4:  "Abril",
	5:  "Maio",
	6:  "Junho",
	7:  "Julho",
	8:  "Agosto",
	9:  "Setembro",
	10: "Outubro",
	11: "Novembro",
	12: "Dezembro",
}

// Business types for the pre-opening flow.
const (
	BusinessTypeProduct = "produto"
	BusinessTypeService = "servico"
)

var BusinessTypes = []Option{
	{Value: BusinessTypeProduct, Label: "Produto"},
	{Value: BusinessTypeService, Label: "Serviço"},
}

// Owner-draw (pró-labore) options.
var PayrollDrawOptions = []Option{
	{Value: "sim", Label: "Sim, preciso desse dinheiro para viver"},
	{Value: "nao", Label: "Não, tenho outra fonte de renda"},
	{Value: "nao_sei", Label: "Ainda não sei"},
}

// Employee-range options for the pre-opening flow.
var EmployeeRanges = []Option{
	{Value: "1-2", Label: "1 a 2 funcionários"},
	{Value: "3-5", Label: "3 a 5 funcionários"},
	{Value: "6-10", Label: "6 a 10 funcionários"},
	{Value: "10+", Label: "Mais de 10 funcionários"},
}

// Guaranteed-client options for the pre-opening flow.
var GuaranteedClientOptions = []Option{
	{Value: "sim", Label: "Sim"},
	{Value: "parcialmente", Label: "Parcialmente"},
	{Value: "nao", Label: "Não"},
}

func containsValue(options []Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func ValidSector(v string) bool           { return containsValue(Sectors, v) }
func ValidState(v string) bool            { return containsValue(BrazilianStates, v) }
func ValidBusinessType(v string) bool     { return containsValue(BusinessTypes, v) }
func ValidPayrollDraw(v string) bool      { return containsValue(PayrollDrawOptions, v) }
func ValidEmployeeRange(v string) bool    { return containsValue(EmployeeRanges, v) }
func ValidGuaranteedClients(v string) bool { return containsValue(GuaranteedClientOptions, v) }

// Values extracts the wire values of an option list, for schema enums.
func Values(options []Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Value
	}
	return out
}
