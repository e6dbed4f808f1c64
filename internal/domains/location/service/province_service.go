package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/domains/location/repository"
)

type provinceService struct {
	hierarchy
	countries repository.CountryRepository
	provinces repository.ProvinceRepository
	addresses AddressReferenceChecker
	trees     *TreeCache
	treeDepth int
}

// NewProvinceService - addresses có thể nil (chưa có address domain, vd: seed tool)
func NewProvinceService(
	countries repository.CountryRepository,
	provinces repository.ProvinceRepository,
	addresses AddressReferenceChecker,
	trees *TreeCache,
	defaultTreeDepth int,
) ProvinceService {
	return &provinceService{
		hierarchy: hierarchy{provinces: provinces},
		countries: countries,
		provinces: provinces,
		addresses: addresses,
		trees:     trees,
		treeDepth: defaultTreeDepth,
	}
}

func (s *provinceService) Create(ctx context.Context, countryID int64, req model.ProvinceCreateRequest) (*model.Province, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.countries.GetByID(ctx, countryID); err != nil {
		return nil, err
	}

	level, err := s.resolveLevel(ctx, countryID, req.ParentID)
	if err != nil {
		return nil, err
	}
	node := &model.Province{CountryID: countryID}
	if err := s.validateMutation(ctx, node, req.ParentID, req.Name, level); err != nil {
		return nil, err
	}

	node.ParentID = req.ParentID
	node.Name = req.Name
	node.Code = req.Code
	node.DisplayOrder = req.DisplayOrder
	node.IsPublished = req.IsPublished
	node.Level = level

	if _, err := s.provinces.Create(ctx, node); err != nil {
		return nil, err
	}
	s.trees.Invalidate(ctx, countryID)

	log.Info().
		Int64("id", node.ID).
		Int64("country_id", countryID).
		Str("level", level.String()).
		Msg("province created")
	return node, nil
}

func (s *provinceService) Update(ctx context.Context, id int64, req model.ProvinceCreateRequest) (*model.Province, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	node, err := s.provinces.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.countries.GetByID(ctx, node.CountryID); err != nil {
		return nil, err
	}
	if err := checkSelfParent(node, req.ParentID); err != nil {
		return nil, err
	}

	level, err := s.resolveLevel(ctx, node.CountryID, req.ParentID)
	if err != nil {
		return nil, err
	}
	if err := s.validateMutation(ctx, node, req.ParentID, req.Name, level); err != nil {
		return nil, err
	}

	node.ParentID = req.ParentID
	node.Name = req.Name
	node.Code = req.Code
	node.DisplayOrder = req.DisplayOrder
	node.IsPublished = req.IsPublished
	node.Level = level

	if err := s.provinces.Update(ctx, node); err != nil {
		return nil, err
	}
	s.trees.Invalidate(ctx, node.CountryID)
	return node, nil
}

// Delete chỉ soft delete khi không còn con và không address nào tham chiếu.
func (s *provinceService) Delete(ctx context.Context, id int64) error {
	node, err := s.provinces.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.provinces.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return model.NewInUse("Province", id, "children")
	}

	if s.addresses != nil {
		used, err := s.addresses.IsProvinceReferenced(ctx, id)
		if err != nil {
			return fmt.Errorf("check address references: %w", err)
		}
		if used {
			return model.NewInUse("Province", id, "addresses")
		}
	}

	if err := s.provinces.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.trees.Invalidate(ctx, node.CountryID)

	log.Info().Int64("id", id).Int64("country_id", node.CountryID).Msg("province deleted")
	return nil
}

func (s *provinceService) Get(ctx context.Context, id int64) (*model.ProvinceResponse, error) {
	return s.provinces.GetDetail(ctx, id)
}

func (s *provinceService) List(ctx context.Context, countryID int64, req model.ProvinceQueryRequest) ([]model.ProvinceResponse, int64, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	req.Normalize()
	if _, err := s.countries.GetByID(ctx, countryID); err != nil {
		return nil, 0, err
	}
	return s.provinces.List(ctx, countryID, req)
}

func (s *provinceService) ListByCountry(ctx context.Context, countryID int64) ([]model.Province, error) {
	return s.provinces.ListByCountry(ctx, countryID)
}

func (s *provinceService) Snapshot(ctx context.Context, countryID int64) (*model.ProvinceTree, error) {
	return s.trees.GetTree(ctx, countryID)
}

func (s *provinceService) GetTree(ctx context.Context, countryID int64, depth int) ([]*model.TreeNode, error) {
	if _, err := s.countries.GetByID(ctx, countryID); err != nil {
		return nil, err
	}
	tree, err := s.trees.GetTree(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if depth < 0 {
		depth = s.treeDepth
	}
	return tree.Render(depth), nil
}

func (s *provinceService) LocationLists(ctx context.Context, countryID int64) (*model.LocationLists, error) {
	if _, err := s.countries.GetByID(ctx, countryID); err != nil {
		return nil, err
	}
	tree, err := s.trees.GetTree(ctx, countryID)
	if err != nil {
		return nil, err
	}
	return &model.LocationLists{
		Provinces: tree.ByLevel(model.LevelProvince),
		Cities:    tree.ByLevel(model.LevelCity),
		Districts: tree.ByLevel(model.LevelDistrict),
	}, nil
}

func (s *provinceService) WarmTree(ctx context.Context, countryID int64) error {
	_, err := s.trees.Rebuild(ctx, countryID)
	return err
}

// WarmAllTrees rebuild snapshot cho mọi country chưa xóa, dừng ở lỗi đầu tiên.
func (s *provinceService) WarmAllTrees(ctx context.Context) (int, error) {
	countries, err := s.countries.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	for i, c := range countries {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := s.trees.Rebuild(ctx, c.ID); err != nil {
			return i, err
		}
	}
	return len(countries), nil
}
