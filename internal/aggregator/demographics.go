package aggregator

import (
	"math"

	"clinic-stats/internal/domain/entity"
)

// AgeBandOf places an age in years into its band. Bands are
// [0,1), [1,4), [4,8), [8,10] and (10,inf). Negative, NaN and infinite ages
// have no band.
func AgeBandOf(age float64) (entity.AgeBand, bool) {
	if math.IsNaN(age) || math.IsInf(age, 0) || age < 0 {
		return "", false
	}

	switch {
	case age < 1:
		return entity.AgeBandUnderOne, true
	case age < 4:
		return entity.AgeBandOneToThree, true
	case age < 8:
		return entity.AgeBandFourToSeven, true
	case age <= 10:
		return entity.AgeBandEightToTen, true
	default:
		return entity.AgeBandOverTen, true
	}
}

// AggregateDemographics builds the species and age band histograms.
// Missing or unusable ages are skipped, not counted as zero.
func AggregateDemographics(rows []entity.PetAppointmentRow) entity.DemographicStats {
	speciesCounts := make(map[entity.SpeciesGroup]int, len(entity.SpeciesGroups))
	bandCounts := make(map[entity.AgeBand]int, len(entity.AgeBands))
	skipped := 0

	for _, row := range rows {
		speciesCounts[ClassifySpecies(row.Species)]++

		if row.Age == nil {
			skipped++
			continue
		}
		band, ok := AgeBandOf(*row.Age)
		if !ok {
			skipped++
			continue
		}
		bandCounts[band]++
	}

	stats := entity.DemographicStats{
		Species:     make([]entity.SpeciesCount, 0, len(entity.SpeciesGroups)),
		AgeBands:    make([]entity.AgeBandCount, 0, len(entity.AgeBands)),
		SkippedAges: skipped,
	}
	for _, group := range entity.SpeciesGroups {
		stats.Species = append(stats.Species, entity.SpeciesCount{Species: group, Count: speciesCounts[group]})
	}
	for _, band := range entity.AgeBands {
		stats.AgeBands = append(stats.AgeBands, entity.AgeBandCount{Band: band, Count: bandCounts[band]})
	}
	return stats
}
