package partner

import (
	"context"

	"github.com/google/uuid"
)

// CountryRepository defines the interface for country persistence
type CountryRepository interface {
	// FindByID finds a country by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Country, error)

	// FindByCode finds a country by its ISO code (case-insensitive)
	FindByCode(ctx context.Context, code string) (*Country, error)

	// FindAll returns all countries
	FindAll(ctx context.Context) ([]Country, error)

	// Save creates or updates a country
	Save(ctx context.Context, country *Country) error
}

// CountryStateRepository defines the interface for state persistence
type CountryStateRepository interface {
	// FindByID finds a state by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CountryState, error)

	// FindByCode finds states by subdivision code within a country
	// (case-insensitive)
	FindByCode(ctx context.Context, countryID uuid.UUID, code string) ([]CountryState, error)

	// FindByCountry returns all states of a country
	FindByCountry(ctx context.Context, countryID uuid.UUID) ([]CountryState, error)

	// Save creates or updates a state
	Save(ctx context.Context, state *CountryState) error
}

// LanguageRepository defines the interface for language persistence
type LanguageRepository interface {
	// FindByID finds a language by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Language, error)

	// FindByCode finds a language by IETF tag (case-insensitive)
	FindByCode(ctx context.Context, code string) (*Language, error)

	// FindActive returns all active languages
	FindActive(ctx context.Context) ([]Language, error)

	// Save creates or updates a language
	Save(ctx context.Context, language *Language) error
}
