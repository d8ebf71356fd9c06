// Package catalog holds the column contract shared by the catalog sources:
// header normalisation, row decoding and catalog assembly.
//
// Column names are trimmed and lower-cased. A legacy image_url column is
// read as img_url. The personality_description column is mandatory; every
// other column is optional and decoded leniently, since it is only used
// for display.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/logger"
)

// Canonical column names.
const (
	ColID                     = "id"
	ColSpecies                = "species"
	ColName                   = "name"
	ColBreed                  = "breed"
	ColAgeYears               = "age_years"
	ColSex                    = "sex"
	ColColor                  = "color"
	ColWeightKg               = "weight_kg"
	ColArrivalDate            = "arrival_date"
	ColVaccinated             = "vaccinated"
	ColMicrochipped           = "microchipped"
	ColEnergyLevel            = "energy_level"
	ColFriendlinessLevel      = "friendliness_level"
	ColPersonalityDescription = "personality_description"
	ColImageURL               = "img_url"

	legacyImageColumn = "image_url"
)

// Columns returns the canonical columns in write order.
func Columns() []string {
	return []string{
		ColID, ColSpecies, ColName, ColBreed, ColAgeYears, ColSex, ColColor,
		ColWeightKg, ColArrivalDate, ColVaccinated, ColMicrochipped,
		ColEnergyLevel, ColFriendlinessLevel, ColPersonalityDescription, ColImageURL,
	}
}

// Header maps canonical column names to positions in a row.
type Header struct {
	index map[string]int
}

// ParseHeader normalises raw column names. It fails with
// domain.ErrMissingDescriptionColumn when there is no description column
// and logs a warning when there is no image column.
func ParseHeader(location string, raw []string) (*Header, error) {
	h := &Header{index: make(map[string]int, len(raw))}
	for i, name := range raw {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if name == legacyImageColumn {
			name = ColImageURL
		}
		if _, dup := h.index[name]; !dup {
			h.index[name] = i
		}
	}

	if !h.Has(ColPersonalityDescription) {
		return nil, fmt.Errorf("%s: %w", location, domain.ErrMissingDescriptionColumn)
	}
	if !h.Has(ColImageURL) {
		logger.Warn("%s: no %s or %s column, animals will have no image", location, ColImageURL, legacyImageColumn)
	}
	return h, nil
}

// Has reports whether the column is present.
func (h *Header) Has(col string) bool {
	_, ok := h.index[col]
	return ok
}

// Decode converts one row. When there is no id column, fallbackID is used.
// Only the id must parse; other malformed values decode as zero values.
func (h *Header) Decode(row []string, fallbackID int64) (domain.Animal, error) {
	get := func(col string) string {
		i, ok := h.index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	id := fallbackID
	if h.Has(ColID) {
		parsed, err := parseID(get(ColID))
		if err != nil {
			return domain.Animal{}, fmt.Errorf("%w: id %q", domain.ErrInvalidInput, get(ColID))
		}
		id = parsed
	}

	return domain.Animal{
		ID:                     id,
		Species:                domain.ParseSpecies(get(ColSpecies)),
		Name:                   get(ColName),
		Breed:                  get(ColBreed),
		AgeYears:               parseFloat(get(ColAgeYears)),
		Sex:                    get(ColSex),
		Color:                  get(ColColor),
		WeightKg:               parseFloat(get(ColWeightKg)),
		ArrivalDate:            get(ColArrivalDate),
		Vaccinated:             parseBool(get(ColVaccinated)),
		Microchipped:           parseBool(get(ColMicrochipped)),
		EnergyLevel:            parseFloat(get(ColEnergyLevel)),
		FriendlinessLevel:      parseFloat(get(ColFriendlinessLevel)),
		PersonalityDescription: get(ColPersonalityDescription),
		ImageURL:               get(ColImageURL),
	}, nil
}

// Encode converts an animal to a row in Columns order.
func Encode(a domain.Animal) []string {
	return []string{
		strconv.FormatInt(a.ID, 10),
		a.Species.String(),
		a.Name,
		a.Breed,
		strconv.FormatFloat(a.AgeYears, 'f', -1, 64),
		a.Sex,
		a.Color,
		strconv.FormatFloat(a.WeightKg, 'f', -1, 64),
		a.ArrivalDate,
		strconv.FormatBool(a.Vaccinated),
		strconv.FormatBool(a.Microchipped),
		strconv.FormatFloat(a.EnergyLevel, 'f', -1, 64),
		strconv.FormatFloat(a.FriendlinessLevel, 'f', -1, 64),
		a.PersonalityDescription,
		a.ImageURL,
	}
}

// Assemble builds a catalog from decoded animals. Animals with a blank
// description cannot be embedded and are skipped with a warning.
func Assemble(location string, animals []domain.Animal) (*domain.Catalog, error) {
	kept := animals[:0:0]
	skipped := 0
	for _, a := range animals {
		if strings.TrimSpace(a.PersonalityDescription) == "" {
			skipped++
			continue
		}
		kept = append(kept, a)
	}
	if skipped > 0 {
		logger.Warn("%s: skipped %d animals with no personality description", location, skipped)
	}

	c, err := domain.NewCatalog(kept)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	logger.Debug("Loaded %d animals from %s", c.Len(), location)
	return c, nil
}

func parseID(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	// Spreadsheet exports sometimes write integer ids as 12.0
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int64(f), nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "t", "1", "yes", "y", "oui":
		return true
	}
	return false
}
