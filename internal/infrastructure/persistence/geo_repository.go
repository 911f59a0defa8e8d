package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/shopbridge/backend/internal/domain/partner"
	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCountryRepository implements CountryRepository using GORM
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindByID finds a country by its ID
func (r *GormCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Country, error) {
	var country partner.Country
	if err := r.db.WithContext(ctx).First(&country, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &country, nil
}

// FindByCode finds a country by its ISO code (case-insensitive)
func (r *GormCountryRepository) FindByCode(ctx context.Context, code string) (*partner.Country, error) {
	var country partner.Country
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&country).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &country, nil
}

// FindAll returns all countries
func (r *GormCountryRepository) FindAll(ctx context.Context) ([]partner.Country, error) {
	var countries []partner.Country
	if err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// Save creates or updates a country
func (r *GormCountryRepository) Save(ctx context.Context, country *partner.Country) error {
	return r.db.WithContext(ctx).Save(country).Error
}

// GormCountryStateRepository implements CountryStateRepository using GORM
type GormCountryStateRepository struct {
	db *gorm.DB
}

// NewGormCountryStateRepository creates a new GormCountryStateRepository
func NewGormCountryStateRepository(db *gorm.DB) *GormCountryStateRepository {
	return &GormCountryStateRepository{db: db}
}

// FindByID finds a state by its ID
func (r *GormCountryStateRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.CountryState, error) {
	var state partner.CountryState
	if err := r.db.WithContext(ctx).First(&state, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &state, nil
}

// FindByCode finds states by subdivision code within a country (case-insensitive)
func (r *GormCountryStateRepository) FindByCode(ctx context.Context, countryID uuid.UUID, code string) ([]partner.CountryState, error) {
	var states []partner.CountryState
	if err := r.db.WithContext(ctx).
		Where("country_id = ? AND code = ?", countryID, strings.ToUpper(strings.TrimSpace(code))).
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// FindByCountry returns all states of a country
func (r *GormCountryStateRepository) FindByCountry(ctx context.Context, countryID uuid.UUID) ([]partner.CountryState, error) {
	var states []partner.CountryState
	if err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("code ASC").
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// Save creates or updates a state
func (r *GormCountryStateRepository) Save(ctx context.Context, state *partner.CountryState) error {
	return r.db.WithContext(ctx).Save(state).Error
}

// GormLanguageRepository implements LanguageRepository using GORM
type GormLanguageRepository struct {
	db *gorm.DB
}

// NewGormLanguageRepository creates a new GormLanguageRepository
func NewGormLanguageRepository(db *gorm.DB) *GormLanguageRepository {
	return &GormLanguageRepository{db: db}
}

// FindByID finds a language by its ID
func (r *GormLanguageRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Language, error) {
	var lang partner.Language
	if err := r.db.WithContext(ctx).First(&lang, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lang, nil
}

// FindByCode finds a language by IETF tag (case-insensitive)
func (r *GormLanguageRepository) FindByCode(ctx context.Context, code string) (*partner.Language, error) {
	var lang partner.Language
	if err := r.db.WithContext(ctx).
		Where("LOWER(code) = LOWER(?)", strings.TrimSpace(code)).
		First(&lang).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lang, nil
}

// FindActive returns all active languages
func (r *GormLanguageRepository) FindActive(ctx context.Context) ([]partner.Language, error) {
	var languages []partner.Language
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("code ASC").
		Find(&languages).Error; err != nil {
		return nil, err
	}
	return languages, nil
}

// Save creates or updates a language
func (r *GormLanguageRepository) Save(ctx context.Context, language *partner.Language) error {
	return r.db.WithContext(ctx).Save(language).Error
}

var (
	_ partner.CountryRepository      = (*GormCountryRepository)(nil)
	_ partner.CountryStateRepository = (*GormCountryStateRepository)(nil)
	_ partner.LanguageRepository     = (*GormLanguageRepository)(nil)
)
