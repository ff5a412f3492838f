package seeds

var Types = []string{
	"Optische / camera sensor",
	"Geluidsensor",
	"Klimaatsensor",
	"Chemiesensor",
	"Electriciteitssensor",
	"Vloeistof- en gasstroomsensor",
	"Positie- of verplaatsingsensor",
	"Druksensor",
	"Dichtheidssensor",
	"Temperatuursensor",
	"Aanwezigheid of nabijheidsensor",
}

var Themes = []string{
	"Energie",
	"Landbouw, visserij, voedselkwaliteit",
	"Transport",
	"Afval",
	"Bodem",
	"Geluid",
	"Klimaatverandering",
	"Lucht",
	"Natuur- en landschapsbeheer",
	"Water",
	"Veiligheid",
	"Ruimtelijke ordening",
	"Waterbeheer",
	"Luchtvaart",
	"Openbaar vervoer",
	"Rail- en wegverkeer",
	"Scheepvaart",
	"Bouwen en verbouwen",
	"Woningmarkt",
	"Gezondheidsrisico's",
	"Mobiliteit: auto",
	"Mobiliteit: fiets",
}

var Regions = []string{
	"Geheel Amsterdam",
	"Stadsdeel Centrum",
	"Stadsdeel Nieuw - West",
	"Stadsdeel Noord",
	"Stadsdeel Oost",
	"Stadsdeel West",
	"Stadsdeel Zuid",
	"Stadsdeel Zuidoost",
	"Weesp",
}

var LegalGrounds = []string{
	"Publieke taak",
	"Gerechtvaardigd belang",
	"Wettelijke verplichting",
	"Toestemming betrokkene(n)",
	"Uitvoering overeenkomst met betrokkene(n)",
	"Bescherming vitale belangen betrokkene(n) of van een andere natuurlijke persoon)",
}
