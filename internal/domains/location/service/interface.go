package service

import (
	"context"

	"github.com/hibiken/asynq"

	"shop-backend/internal/domains/location/model"
)

// CountryService - business logic cho countries
type CountryService interface {
	Create(ctx context.Context, req model.CountryCreateRequest) (*model.Country, error)
	Update(ctx context.Context, id int64, req model.CountryCreateRequest) (*model.Country, error)
	Get(ctx context.Context, id int64) (*model.CountryResponse, error)
	List(ctx context.Context, req model.CountryQueryRequest) ([]model.CountryResponse, int64, error)
	ListAll(ctx context.Context) ([]model.Country, error)
	Delete(ctx context.Context, id int64) error
}

// ProvinceService - Hierarchy Store + tree reads
type ProvinceService interface {
	Create(ctx context.Context, countryID int64, req model.ProvinceCreateRequest) (*model.Province, error)
	Update(ctx context.Context, id int64, req model.ProvinceCreateRequest) (*model.Province, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.ProvinceResponse, error)
	List(ctx context.Context, countryID int64, req model.ProvinceQueryRequest) ([]model.ProvinceResponse, int64, error)
	ListByCountry(ctx context.Context, countryID int64) ([]model.Province, error)

	// GetTree render snapshot từ cache; depth <= 0 là toàn bộ cây
	GetTree(ctx context.Context, countryID int64, depth int) ([]*model.TreeNode, error)
	// Snapshot trả về ProvinceTree (cache-backed) cho consumer khác, vd: address
	Snapshot(ctx context.Context, countryID int64) (*model.ProvinceTree, error)
	LocationLists(ctx context.Context, countryID int64) (*model.LocationLists, error)

	WarmTree(ctx context.Context, countryID int64) error
	WarmAllTrees(ctx context.Context) (int, error)
}

// AddressReferenceChecker được implement bởi address repository.
// Location chỉ phụ thuộc interface này để tránh import vòng.
type AddressReferenceChecker interface {
	IsProvinceReferenced(ctx context.Context, provinceID int64) (bool, error)
	IsCountryReferenced(ctx context.Context, countryID int64) (bool, error)
}

// TaskEnqueuer là phần của *asynq.Client mà tree cache cần. nil = queue tắt.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
