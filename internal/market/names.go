package market

import "sector-sim/internal/rng"

var (
	portPrefixes = []string{
		"Rigel", "Sigma", "Omega", "Alpha", "Beta", "Tau",
		"Nova", "Epsilon", "Orion", "Kappa", "Gamma",
	}
	portSuffixes = []string{
		"Tradeport", "Station", "Depot", "Exchange",
		"Market", "Outpost", "Harbor",
	}
	planetPrefixes = []string{"New", "Alpha", "Beta", "Gamma", "Delta", "Nova", "Terra", "Fort", "Sigma"}
	planetSuffixes = []string{"Prime", "Station", "Base", "Haven", "One", "II", "Harbor", "Reach"}
)

func randomName(r rng.Source, prefixes, suffixes []string) string {
	return rng.Pick(r, prefixes) + " " + rng.Pick(r, suffixes)
}
