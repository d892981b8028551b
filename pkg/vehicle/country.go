package vehicle

import "strings"

// CountryCode is a two-letter country identifier used to select a flag.
type CountryCode string

// Country codes with flag definitions.
const (
	CountryDE CountryCode = "DE"
	CountryAT CountryCode = "AT"
	CountryIT CountryCode = "IT"
	CountryFR CountryCode = "FR"
	CountryJP CountryCode = "JP"
	CountryUS CountryCode = "US"
	CountryGB CountryCode = "GB"
	CountryKR CountryCode = "KR"
	CountrySE CountryCode = "SE"
	CountryCZ CountryCode = "CZ"
	CountryRO CountryCode = "RO"
	CountryES CountryCode = "ES"
	CountryIN CountryCode = "IN"
	CountryCH CountryCode = "CH"
	CountryNL CountryCode = "NL"
	CountryBE CountryCode = "BE"
	CountryPL CountryCode = "PL"
	CountryRU CountryCode = "RU"
)

// brandCountries maps lowercase brand names to their country of origin.
// The table is never mutated after init.
var brandCountries = map[string]CountryCode{
	"audi":         CountryDE,
	"bmw":          CountryDE,
	"mercedes":     CountryDE,
	"mercedes-amg": CountryDE,
	"porsche":      CountryDE,
	"vw":           CountryDE,
	"volkswagen":   CountryDE,
	"opel":         CountryDE,

	"ferrari":     CountryIT,
	"lamborghini": CountryIT,
	"maserati":    CountryIT,
	"alfa romeo":  CountryIT,
	"fiat":        CountryIT,
	"pagani":      CountryIT,

	"renault": CountryFR,
	"peugeot": CountryFR,
	"citroen": CountryFR,
	"bugatti": CountryFR,
	"alpine":  CountryFR,

	"bentley":      CountryGB,
	"jaguar":       CountryGB,
	"land rover":   CountryGB,
	"aston martin": CountryGB,
	"mclaren":      CountryGB,
	"lotus":        CountryGB,
	"mini":         CountryGB,
	"rolls-royce":  CountryGB,

	"ford":      CountryUS,
	"chevrolet": CountryUS,
	"tesla":     CountryUS,
	"dodge":     CountryUS,
	"cadillac":  CountryUS,
	"chrysler":  CountryUS,
	"jeep":      CountryUS,
	"gmc":       CountryUS,

	"toyota":     CountryJP,
	"honda":      CountryJP,
	"nissan":     CountryJP,
	"mazda":      CountryJP,
	"subaru":     CountryJP,
	"mitsubishi": CountryJP,
	"lexus":      CountryJP,
	"suzuki":     CountryJP,

	"hyundai": CountryKR,
	"kia":     CountryKR,

	"volvo":      CountrySE,
	"koenigsegg": CountrySE,
	"saab":       CountrySE,

	"skoda": CountryCZ,
	"tatra": CountryCZ,

	"dacia": CountryRO,

	"seat":  CountryES,
	"cupra": CountryES,

	"tata":     CountryIN,
	"mahindra": CountryIN,
}

// CountryForBrand returns the country of origin for a car brand.
// Matching is case-insensitive over the trimmed brand name.
// Unknown brands default to DE.
func CountryForBrand(brand string) CountryCode {
	if c, ok := brandCountries[strings.ToLower(strings.TrimSpace(brand))]; ok {
		return c
	}
	return CountryDE
}
