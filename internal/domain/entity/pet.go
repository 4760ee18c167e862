package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pet keeps species as free text exactly as typed at registration.
// Age is in years and may be fractional or missing.
type Pet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Species   string    `gorm:"type:varchar(100)" json:"species"`
	Age       *float64  `gorm:"type:numeric(5,2)" json:"age,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Pet) TableName() string {
	return "pets"
}

// SpeciesGroup is the canonical bucket a free-text species is classified into
type SpeciesGroup string

const (
	SpeciesDogs   SpeciesGroup = "dogs"
	SpeciesCats   SpeciesGroup = "cats"
	SpeciesBirds  SpeciesGroup = "birds"
	SpeciesExotic SpeciesGroup = "exotic"
)

// SpeciesGroups lists every bucket in display order
var SpeciesGroups = []SpeciesGroup{SpeciesDogs, SpeciesCats, SpeciesBirds, SpeciesExotic}

// AgeBand is a fixed age range in years
type AgeBand string

const (
	AgeBandUnderOne    AgeBand = "<1"
	AgeBandOneToThree  AgeBand = "1-3"
	AgeBandFourToSeven AgeBand = "4-7"
	AgeBandEightToTen  AgeBand = "8-10"
	AgeBandOverTen     AgeBand = ">10"
)

// AgeBands lists every band in ascending order
var AgeBands = []AgeBand{AgeBandUnderOne, AgeBandOneToThree, AgeBandFourToSeven, AgeBandEightToTen, AgeBandOverTen}
