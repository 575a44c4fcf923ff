package logic

// Continent names used in the continental breakdown.
const (
	ContinentEurope       = "Europe"
	ContinentSouthAmerica = "South America"
	ContinentNorthAmerica = "North America"
	ContinentAfrica       = "Africa"
	ContinentAsia         = "Asia"
	ContinentOceania      = "Oceania"
	ContinentOther        = "Other"
)

// Continent basis values for GoalsByContinent.
const (
	BasisHost = "host"
	BasisTeam = "team"
)

// defaultContinents maps country names, as they are spelled in the match and tournament
// tables, to a confederation-style continent. Keys are exact and case-sensitive. Teams and
// hosts share the table; co-hosted editions get their own key.
var defaultContinents = map[string]string{
	// South America
	"Brazil": ContinentSouthAmerica, "Argentina": ContinentSouthAmerica, "Uruguay": ContinentSouthAmerica,
	"Colombia": ContinentSouthAmerica, "Chile": ContinentSouthAmerica, "Paraguay": ContinentSouthAmerica,
	"Peru": ContinentSouthAmerica, "Ecuador": ContinentSouthAmerica, "Bolivia": ContinentSouthAmerica,
	"Venezuela": ContinentSouthAmerica,

	// Europe
	"Germany": ContinentEurope, "West Germany": ContinentEurope, "East Germany": ContinentEurope,
	"France": ContinentEurope, "Italy": ContinentEurope, "Spain": ContinentEurope, "England": ContinentEurope,
	"Netherlands": ContinentEurope, "Portugal": ContinentEurope, "Belgium": ContinentEurope,
	"Croatia": ContinentEurope, "Poland": ContinentEurope, "Sweden": ContinentEurope, "Switzerland": ContinentEurope,
	"Austria": ContinentEurope, "Hungary": ContinentEurope, "Czechoslovakia": ContinentEurope,
	"Czech Republic": ContinentEurope, "Slovakia": ContinentEurope, "Slovenia": ContinentEurope,
	"Yugoslavia": ContinentEurope, "Serbia and Montenegro": ContinentEurope, "Bosnia and Herzegovina": ContinentEurope,
	"Soviet Union": ContinentEurope, "Russia": ContinentEurope, "Ukraine": ContinentEurope,
	"Romania": ContinentEurope, "Bulgaria": ContinentEurope, "Greece": ContinentEurope,
	"Denmark": ContinentEurope, "Norway": ContinentEurope, "Ireland": ContinentEurope,
	"Republic of Ireland": ContinentEurope, "Northern Ireland": ContinentEurope,
	"Scotland": ContinentEurope, "Wales": ContinentEurope, "Turkey": ContinentEurope, "Serbia": ContinentEurope,
	"Iceland": ContinentEurope,

	// Africa
	"Cameroon": ContinentAfrica, "Nigeria": ContinentAfrica, "Senegal": ContinentAfrica, "Ghana": ContinentAfrica,
	"Morocco": ContinentAfrica, "Algeria": ContinentAfrica, "Egypt": ContinentAfrica, "South Africa": ContinentAfrica,
	"Tunisia": ContinentAfrica, "Ivory Coast": ContinentAfrica, "Zaire": ContinentAfrica, "Angola": ContinentAfrica,
	"Togo": ContinentAfrica,

	// Asia
	"South Korea": ContinentAsia, "Korea Republic": ContinentAsia, "Japan": ContinentAsia,
	"Saudi Arabia": ContinentAsia, "Iran": ContinentAsia, "China": ContinentAsia, "China PR": ContinentAsia,
	"North Korea": ContinentAsia, "Korea DPR": ContinentAsia, "Australia": ContinentAsia, "Qatar": ContinentAsia,
	"Iraq": ContinentAsia, "Kuwait": ContinentAsia, "United Arab Emirates": ContinentAsia,
	"Indonesia": ContinentAsia, "Dutch East Indies": ContinentAsia, "Israel": ContinentAsia,
	"Korea/Japan": ContinentAsia,

	// North/Central America & Caribbean
	"Mexico": ContinentNorthAmerica, "USA": ContinentNorthAmerica, "United States": ContinentNorthAmerica,
	"Costa Rica": ContinentNorthAmerica, "Honduras": ContinentNorthAmerica, "Jamaica": ContinentNorthAmerica,
	"Canada": ContinentNorthAmerica, "Cuba": ContinentNorthAmerica, "El Salvador": ContinentNorthAmerica,
	"Haiti": ContinentNorthAmerica, "Trinidad and Tobago": ContinentNorthAmerica, "Panama": ContinentNorthAmerica,
	"Canada/Mexico/USA": ContinentNorthAmerica,

	// Oceania
	"New Zealand": ContinentOceania,
}

// continentOf returns the continent for a country key, or "Other" when the key is unmapped.
func continentOf(table map[string]string, key string) string {
	if c, ok := table[key]; ok {
		return c
	}
	return ContinentOther
}
