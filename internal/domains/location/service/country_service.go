package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/domains/location/repository"
)

type countryService struct {
	countries repository.CountryRepository
	addresses AddressReferenceChecker
	trees     *TreeCache
}

func NewCountryService(countries repository.CountryRepository, addresses AddressReferenceChecker, trees *TreeCache) CountryService {
	return &countryService{countries: countries, addresses: addresses, trees: trees}
}

type isoCheck struct {
	field string
	value any
	show  string
}

// checkIsoCodes báo DuplicateCountryCode trước khi chạm unique index
func (s *countryService) checkIsoCodes(ctx context.Context, req model.CountryCreateRequest, excludeID int64) error {
	var checks []isoCheck
	if req.NumericIsoCode != nil {
		checks = append(checks, isoCheck{repository.FieldNumericIsoCode, *req.NumericIsoCode, fmt.Sprint(*req.NumericIsoCode)})
	}
	if req.TwoLetterIsoCode != nil {
		checks = append(checks, isoCheck{repository.FieldTwoLetterIsoCode, *req.TwoLetterIsoCode, *req.TwoLetterIsoCode})
	}
	if req.ThreeLetterIsoCode != nil {
		checks = append(checks, isoCheck{repository.FieldThreeLetterIsoCode, *req.ThreeLetterIsoCode, *req.ThreeLetterIsoCode})
	}

	for _, c := range checks {
		exists, err := s.countries.IsoCodeExists(ctx, c.field, c.value, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return model.NewDuplicateCountryCode(c.field, c.show)
		}
	}
	return nil
}

func (s *countryService) Create(ctx context.Context, req model.CountryCreateRequest) (*model.Country, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkIsoCodes(ctx, req, 0); err != nil {
		return nil, err
	}

	country := &model.Country{}
	req.ApplyTo(country)
	if _, err := s.countries.Create(ctx, country); err != nil {
		return nil, err
	}

	log.Info().Int64("id", country.ID).Str("name", country.Name).Msg("country created")
	return country, nil
}

func (s *countryService) Update(ctx context.Context, id int64, req model.CountryCreateRequest) (*model.Country, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	country, err := s.countries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkIsoCodes(ctx, req, id); err != nil {
		return nil, err
	}

	req.ApplyTo(country)
	if err := s.countries.Update(ctx, country); err != nil {
		return nil, err
	}
	// cờ city/district enabled ảnh hưởng cách client render cây
	s.trees.Invalidate(ctx, id)
	return country, nil
}

func (s *countryService) Get(ctx context.Context, id int64) (*model.CountryResponse, error) {
	country, err := s.countries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.countries.CountProvinces(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.CountryResponse{Country: *country, StateOrProvinceCount: int(count)}, nil
}

func (s *countryService) List(ctx context.Context, req model.CountryQueryRequest) ([]model.CountryResponse, int64, error) {
	req.Normalize()
	return s.countries.List(ctx, req)
}

func (s *countryService) ListAll(ctx context.Context) ([]model.Country, error) {
	return s.countries.ListAll(ctx)
}

// Delete: country còn province hoặc còn address tham chiếu thì InUse.
func (s *countryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.countries.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.countries.CountProvinces(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.NewInUse("Country", id, "provinces")
	}

	if s.addresses != nil {
		used, err := s.addresses.IsCountryReferenced(ctx, id)
		if err != nil {
			return fmt.Errorf("check address references: %w", err)
		}
		if used {
			return model.NewInUse("Country", id, "addresses")
		}
	}

	if err := s.countries.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.trees.Invalidate(ctx, id)

	log.Info().Int64("id", id).Msg("country deleted")
	return nil
}
