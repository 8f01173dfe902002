package ai

import "strconv"

// standardSpecs are the non-measure AIs of the default table
var standardSpecs = []Spec{
	{Code: "00", Title: "SSCC", Length: Fixed(18), CharSet: Numeric, CheckDigit: true},
	{Code: "01", Title: "GTIN", Length: Fixed(14), CharSet: Numeric, CheckDigit: true},
	{Code: "02", Title: "CONTENT", Length: Fixed(14), CharSet: Numeric, CheckDigit: true},
	{Code: "03", Title: "MTO GTIN", Length: Fixed(14), CharSet: Numeric, CheckDigit: true},
	{Code: "10", Title: "BATCH/LOT", Length: Variable(20), CharSet: Alphanumeric},
	{Code: "11", Title: "PROD DATE", Length: Fixed(6), CharSet: Numeric, Decoder: Date},
	{Code: "12", Title: "DUE DATE", Length: Fixed(6), CharSet: Numeric, Decoder: Date},
	{Code: "13", Title: "PACK DATE", Length: Fixed(6), CharSet: Numeric, Decoder: Date},
	{Code: "15", Title: "BEST BEFORE", Length: Fixed(6), CharSet: Numeric, Decoder: Date},
	{Code: "16", Title: "SELL BY", Length: Fixed(6), CharSet: Numeric, Decoder: Date},
	{Code: "17", Title: "USE BY/EXPIRY", Length: Fixed(6), CharSet: Numeric, Decoder: Date},
	{Code: "20", Title: "VARIANT", Length: Fixed(2), CharSet: Numeric},
	{Code: "21", Title: "SERIAL", Length: Variable(20), CharSet: Alphanumeric},
	{Code: "22", Title: "CPV", Length: Variable(20), CharSet: Alphanumeric},
	{Code: "235", Title: "TPX", Length: Variable(28), CharSet: Alphanumeric},
	{Code: "240", Title: "ADDITIONAL ID", Length: Variable(30), CharSet: Alphanumeric},
	{Code: "241", Title: "CUST. PART No.", Length: Variable(30), CharSet: Alphanumeric},
	{Code: "242", Title: "MTO VARIANT", Length: Variable(6), CharSet: Numeric},
	{Code: "243", Title: "PCN", Length: Variable(20), CharSet: Alphanumeric},
	{Code: "250", Title: "SECONDARY SERIAL", Length: Variable(30), CharSet: Alphanumeric},
	{Code: "251", Title: "REF. TO SOURCE", Length: Variable(30), CharSet: Alphanumeric},
	{Code: "254", Title: "GLN EXTENSION COMPONENT", Length: Variable(20), CharSet: Alphanumeric},
	{Code: "30", Title: "VAR. COUNT", Length: Variable(8), CharSet: Numeric, Decoder: Integer},
	{Code: "37", Title: "COUNT", Length: Variable(8), CharSet: Numeric, Decoder: Integer},
	{Code: "400", Title: "ORDER NUMBER", Length: Variable(30), CharSet: Alphanumeric},
	{Code: "410", Title: "SHIP TO LOC", Length: Fixed(13), CharSet: Numeric, CheckDigit: true},
	{Code: "411", Title: "BILL TO", Length: Fixed(13), CharSet: Numeric, CheckDigit: true},
	{Code: "412", Title: "PURCHASE FROM", Length: Fixed(13), CharSet: Numeric, CheckDigit: true},
	{Code: "413", Title: "SHIP FOR LOC", Length: Fixed(13), CharSet: Numeric, CheckDigit: true},
	{Code: "414", Title: "LOC No.", Length: Fixed(13), CharSet: Numeric, CheckDigit: true},
	{Code: "415", Title: "PAY TO", Length: Fixed(13), CharSet: Numeric, CheckDigit: true},
	{Code: "416", Title: "PROD/SERV LOC", Length: Fixed(13), CharSet: Numeric, CheckDigit: true},
	{Code: "420", Title: "SHIP TO POST", Length: Variable(20), CharSet: Alphanumeric},
	{Code: "710", Title: "NHRN PZN", Length: Variable(20), CharSet: Alphanumeric},
}

// measureFamilies maps the three-digit prefix of each variable measure AI to
// its title. Every prefix expands to six AIs, one per decimal-place count.
var measureFamilies = []struct {
	prefix string
	title  string
}{
	{"310", "NET WEIGHT (kg)"},
	{"311", "LENGTH (m)"},
	{"312", "WIDTH (m)"},
	{"313", "HEIGHT (m)"},
	{"314", "AREA (m2)"},
	{"315", "NET VOLUME (l)"},
	{"316", "NET VOLUME (m3)"},
	{"320", "NET WEIGHT (lb)"},
	{"321", "LENGTH (in)"},
	{"322", "LENGTH (ft)"},
	{"323", "LENGTH (yd)"},
	{"324", "WIDTH (in)"},
	{"325", "WIDTH (ft)"},
	{"326", "WIDTH (yd)"},
	{"327", "HEIGHT (in)"},
	{"328", "HEIGHT (ft)"},
	{"329", "HEIGHT (yd)"},
	{"330", "GROSS WEIGHT (kg)"},
	{"331", "LENGTH (m), log"},
	{"332", "WIDTH (m), log"},
	{"333", "HEIGHT (m), log"},
	{"334", "AREA (m2), log"},
	{"335", "VOLUME (l), log"},
	{"336", "VOLUME (m3), log"},
}

// standardTable returns a fresh copy of the default table
func standardTable() []Spec {
	table := make([]Spec, 0, len(standardSpecs)+len(measureFamilies)*(MaxDecimalPlaces+1))
	table = append(table, standardSpecs...)
	for _, f := range measureFamilies {
		for d := 0; d <= MaxDecimalPlaces; d++ {
			table = append(table, Spec{
				Code:    f.prefix + strconv.Itoa(d),
				Title:   f.title,
				Length:  Fixed(6),
				CharSet: Numeric,
				Decoder: VariableMeasure,
			})
		}
	}
	return table
}
