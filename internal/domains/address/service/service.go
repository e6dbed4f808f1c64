package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"shop-backend/internal/domains/address/model"
	"shop-backend/internal/domains/address/repository"
	location "shop-backend/internal/domains/location/model"
	"shop-backend/pkg/logger"
)

// Service - user shipping addresses. userID luôn được truyền vào từ handler.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.AddressResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.AddressResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req model.AddressRequest) (*model.AddressResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req model.AddressRequest) (*model.AddressResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CountryLookup và ProvinceLookup được implement bởi location repositories
type CountryLookup interface {
	GetByID(ctx context.Context, id int64) (*location.Country, error)
}

type ProvinceLookup interface {
	GetByID(ctx context.Context, id int64) (*location.Province, error)
}

// TreeSource cung cấp snapshot cây (cache-backed) để resolve tên
type TreeSource interface {
	Snapshot(ctx context.Context, countryID int64) (*location.ProvinceTree, error)
}

type addressService struct {
	repo             repository.Repository
	countries        CountryLookup
	provinces        ProvinceLookup
	trees            TreeSource
	defaultCountryID int64
}

func NewAddressService(
	repo repository.Repository,
	countries CountryLookup,
	provinces ProvinceLookup,
	trees TreeSource,
	defaultCountryID int64,
) Service {
	return &addressService{
		repo:             repo,
		countries:        countries,
		provinces:        provinces,
		trees:            trees,
		defaultCountryID: defaultCountryID,
	}
}

func (s *addressService) List(ctx context.Context, userID uuid.UUID) ([]model.AddressResponse, error) {
	addrs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]model.AddressResponse, 0, len(addrs))
	snapshots := make(map[int64]*location.ProvinceTree)
	for i := range addrs {
		tree, ok := snapshots[addrs[i].CountryID]
		if !ok {
			tree = s.snapshot(ctx, addrs[i].CountryID)
			snapshots[addrs[i].CountryID] = tree
		}
		out = append(out, resolve(&addrs[i], tree))
	}
	return out, nil
}

func (s *addressService) Get(ctx context.Context, userID, id uuid.UUID) (*model.AddressResponse, error) {
	addr, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := resolve(addr, s.snapshot(ctx, addr.CountryID))
	return &resp, nil
}

func (s *addressService) Create(ctx context.Context, userID uuid.UUID, req model.AddressRequest) (*model.AddressResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	countryID, err := s.validateLocation(ctx, &req)
	if err != nil {
		return nil, err
	}

	addr := &model.Address{UserID: userID}
	apply(addr, countryID, req)
	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, err
	}

	logger.Info("Address created", map[string]interface{}{
		"address_id": addr.ID.String(),
		"user_id":    userID.String(),
		"is_default": addr.IsDefault,
	})
	resp := resolve(addr, s.snapshot(ctx, countryID))
	return &resp, nil
}

func (s *addressService) Update(ctx context.Context, userID, id uuid.UUID, req model.AddressRequest) (*model.AddressResponse, error) {
	addr, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	countryID, err := s.validateLocation(ctx, &req)
	if err != nil {
		return nil, err
	}

	apply(addr, countryID, req)
	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, err
	}
	resp := resolve(addr, s.snapshot(ctx, countryID))
	return &resp, nil
}

func (s *addressService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	logger.Info("Address deleted", map[string]interface{}{
		"address_id": id.String(),
		"user_id":    userID.String(),
	})
	return nil
}

// owned: address của user khác cũng trả về not found
func (s *addressService) owned(ctx context.Context, userID, id uuid.UUID) (*model.Address, error) {
	addr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, model.NewAddressNotFound()
	}
	return addr, nil
}

// validateLocation kiểm tra country, province (level default), city (con của province)
// và district (con của city, optional) với store. Trả về country id đã resolve.
func (s *addressService) validateLocation(ctx context.Context, req *model.AddressRequest) (int64, error) {
	countryID := req.CountryID
	if countryID == 0 {
		countryID = s.defaultCountryID
	}
	if _, err := s.countries.GetByID(ctx, countryID); err != nil {
		if errors.Is(err, location.ErrNotFound) {
			return 0, model.NewInvalidCountry(countryID)
		}
		return 0, fmt.Errorf("lookup country %d: %w", countryID, err)
	}

	province, err := s.lookup(ctx, req.StateOrProvinceID)
	if err != nil {
		return 0, err
	}
	if province == nil || province.CountryID != countryID || province.Level != location.LevelDefault {
		return 0, model.NewInvalidProvince(req.StateOrProvinceID)
	}

	city, err := s.lookup(ctx, req.CityID)
	if err != nil {
		return 0, err
	}
	if city == nil || city.Level != location.LevelCity || !city.HasParent(province.ID) {
		return 0, model.NewInvalidCity(req.CityID)
	}

	if req.DistrictID != nil {
		district, err := s.lookup(ctx, *req.DistrictID)
		if err != nil {
			return 0, err
		}
		if district == nil || district.Level != location.LevelDistrict || !district.HasParent(city.ID) {
			return 0, model.NewInvalidDistrict(*req.DistrictID)
		}
	}
	return countryID, nil
}

// lookup trả về nil, nil khi node không tồn tại
func (s *addressService) lookup(ctx context.Context, id int64) (*location.Province, error) {
	p, err := s.provinces.GetByID(ctx, id)
	if errors.Is(err, location.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup location %d: %w", id, err)
	}
	return p, nil
}

// snapshot lỗi thì vẫn trả address, chỉ thiếu tên
func (s *addressService) snapshot(ctx context.Context, countryID int64) *location.ProvinceTree {
	tree, err := s.trees.Snapshot(ctx, countryID)
	if err != nil {
		logger.Warn("Province tree unavailable, address names left empty", map[string]interface{}{
			"country_id": countryID,
			"error":      err.Error(),
		})
		return nil
	}
	return tree
}

func apply(addr *model.Address, countryID int64, req model.AddressRequest) {
	addr.CountryID = countryID
	addr.StateOrProvinceID = req.LocationID()
	addr.ContactName = req.ContactName
	addr.Phone = req.Phone
	addr.AddressLine1 = req.AddressLine1
	addr.AddressLine2 = req.AddressLine2
	addr.ZipCode = req.ZipCode
	addr.IsDefault = req.IsDefault
}

// resolve điền province/city/district theo chuỗi ancestors của node đã lưu
func resolve(addr *model.Address, tree *location.ProvinceTree) model.AddressResponse {
	resp := addr.ToResponse()
	if tree == nil {
		return resp
	}
	for _, n := range tree.Ancestors(addr.StateOrProvinceID) {
		id := n.ID
		switch n.Level {
		case location.LevelDefault:
			resp.ProvinceID, resp.ProvinceName = &id, n.Name
		case location.LevelCity:
			resp.CityID, resp.CityName = &id, n.Name
		case location.LevelDistrict:
			resp.DistrictID, resp.DistrictName = &id, n.Name
		}
	}
	return resp
}
