package vehicle

// Demo defaults used when no brand or model is given on the command line.
const (
	DemoBrand = "AUDI"
	DemoModel = "TT RS"
)

// DemoSpecs returns the built-in specification set used in demo mode and
// as the terminal fallback when extraction yields nothing. The values
// describe the Audi TT RS (8S).
func DemoSpecs() SpecificationSet {
	return SpecificationSet{
		Year:         "2016-2023",
		Engine:       "2.5L TFSI",
		Power:        "394 HP",
		Torque:       "480 Nm",
		Weight:       "1450 kg",
		Acceleration: "3.7 s",
		TopSpeed:     "250 km/h",
	}
}
