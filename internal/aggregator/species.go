package aggregator

import (
	"strings"
	"unicode"

	"clinic-stats/internal/domain/entity"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type speciesKeywords struct {
	group    entity.SpeciesGroup
	keywords []string
}

// Checked in order; birds come before cats so "cacatua" is not read as "cat".
var speciesRules = []speciesKeywords{
	{
		group: entity.SpeciesDogs,
		keywords: []string{
			"perro", "perra", "dog", "canin", "cachorro", "labrador", "golden", "pastor",
			"bulldog", "poodle", "caniche", "chihuahua", "beagle", "husky", "schnauzer",
			"rottweiler", "dachshund", "salchicha", "terrier", "boxer", "doberman",
		},
	},
	{
		group: entity.SpeciesBirds,
		keywords: []string{
			"bird", "ave", "pajaro", "loro", "perico", "periquito", "canario", "cacatua",
			"agapornis", "guacamayo", "parrot", "parakeet", "canary", "cockatiel", "budgie",
			"paloma", "pigeon",
		},
	},
	{
		group: entity.SpeciesCats,
		keywords: []string{
			"gato", "gata", "cat", "felin", "michi", "siames", "persa", "bengal", "sphynx",
			"kitten",
		},
	},
}

// ClassifySpecies maps a free-text species to its canonical group by
// case and accent insensitive substring match. Anything unmatched is Exotic.
func ClassifySpecies(raw string) entity.SpeciesGroup {
	label := normalizeLabel(raw)
	if label == "" {
		return entity.SpeciesExotic
	}

	for _, rule := range speciesRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(label, keyword) {
				return rule.group
			}
		}
	}
	return entity.SpeciesExotic
}

// normalizeLabel strips accents and folds case. Transformers are stateful,
// so they are built per call.
func normalizeLabel(raw string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	label, _, err := transform.String(stripAccents, strings.TrimSpace(raw))
	if err != nil {
		label = strings.TrimSpace(raw)
	}
	return cases.Fold().String(label)
}
