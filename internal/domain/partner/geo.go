package partner

import (
	"strings"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// Country represents a country master record. Code is the ISO 3166-1 alpha-2
// code and serves as the natural key for cross-system matching.
type Country struct {
	shared.BaseAggregateRoot
	Code string `gorm:"type:varchar(2);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Country) TableName() string {
	return "countries"
}

// NewCountry creates a new country
func NewCountry(code, name string) (*Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return nil, shared.NewDomainError("INVALID_COUNTRY_CODE", "Country code must be a 2-letter ISO code")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Country name cannot be empty")
	}

	return &Country{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
	}, nil
}

// CountryState represents a state/province of a country. Code is the ISO
// 3166-2 subdivision code without the country prefix.
type CountryState struct {
	shared.BaseAggregateRoot
	CountryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Code      string    `gorm:"type:varchar(10);not null"`
	Name      string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CountryState) TableName() string {
	return "country_states"
}

// NewCountryState creates a new state for a country
func NewCountryState(countryID uuid.UUID, code, name string) (*CountryState, error) {
	if countryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "Country ID cannot be empty")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_STATE_CODE", "State code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "State name cannot be empty")
	}

	return &CountryState{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CountryID:         countryID,
		Code:              code,
		Name:              name,
	}, nil
}

// Language represents an installed language. Code is an IETF language tag
// such as "en-US".
type Language struct {
	shared.BaseAggregateRoot
	Code   string `gorm:"type:varchar(10);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(100);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Language) TableName() string {
	return "languages"
}

// NewLanguage creates a new language
func NewLanguage(code, name string) (*Language, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_LANGUAGE_CODE", "Language code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Language name cannot be empty")
	}

	return &Language{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Active:            true,
	}, nil
}
