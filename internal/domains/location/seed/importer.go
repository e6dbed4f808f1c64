package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/shared/metrics"
)

// ProvinceWriter là phần của ProvinceService mà importer cần.
// Mọi node đi qua cùng validation như API (level, sibling unique, ...).
type ProvinceWriter interface {
	Create(ctx context.Context, countryID int64, req model.ProvinceCreateRequest) (*model.Province, error)
	ListByCountry(ctx context.Context, countryID int64) ([]model.Province, error)
}

// Result tổng kết một lần import.
type Result struct {
	Created int
	Skipped int // đã tồn tại (cùng tên, cùng cha)
	Failed  int // lỗi validation hoặc nằm dưới node lỗi
	Errors  []error
}

func (r Result) Total() int { return r.Created + r.Skipped + r.Failed }

type Importer struct {
	provinces ProvinceWriter
	publish   bool
	// OnRow được gọi sau mỗi node (progress bar)
	OnRow func()
}

func NewImporter(provinces ProvinceWriter, publish bool) *Importer {
	return &Importer{provinces: provinces, publish: publish}
}

type siblingKey struct {
	parentID int64 // 0 = root
	name     string
}

// Import tạo cây regions dưới countryID. Node đã tồn tại được dùng lại
// nên chạy lại cùng file không tạo bản ghi trùng.
func (im *Importer) Import(ctx context.Context, countryID int64, regions []Region) (*Result, error) {
	existing, err := im.provinces.ListByCountry(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("list existing provinces: %w", err)
	}
	known := make(map[siblingKey]int64, len(existing))
	for _, p := range existing {
		known[keyOf(p.ParentID, p.Name)] = p.ID
	}

	res := &Result{}
	for _, r := range regions {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		im.importNode(ctx, countryID, nil, r, known, res)
	}

	log.Info().
		Int64("country_id", countryID).
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("Location seed finished")
	return res, nil
}

func (im *Importer) importNode(ctx context.Context, countryID int64, parentID *int64, r Region, known map[siblingKey]int64, res *Result) {
	key := keyOf(parentID, r.Name)

	id, ok := known[key]
	if ok {
		im.record(res, "skipped")
	} else {
		req := model.ProvinceCreateRequest{
			ParentID:     parentID,
			Name:         r.Name,
			DisplayOrder: r.DisplayOrder,
			IsPublished:  im.publish,
		}
		if r.Code != "" {
			code := r.Code
			req.Code = &code
		}

		p, err := im.provinces.Create(ctx, countryID, req)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", r.Name, err))
			im.record(res, "failed")
			// subtree không thể tạo khi cha lỗi
			for i := 0; i < Count(r.Children); i++ {
				im.record(res, "failed")
			}
			return
		}
		id = p.ID
		known[key] = id
		im.record(res, "created")
	}

	for _, child := range r.Children {
		im.importNode(ctx, countryID, &id, child, known, res)
	}
}

func (im *Importer) record(res *Result, outcome string) {
	switch outcome {
	case "created":
		res.Created++
	case "skipped":
		res.Skipped++
	default:
		res.Failed++
	}
	metrics.SeedRowsTotal.WithLabelValues(outcome).Inc()
	if im.OnRow != nil {
		im.OnRow()
	}
}

func keyOf(parentID *int64, name string) siblingKey {
	k := siblingKey{name: strings.TrimSpace(name)}
	if parentID != nil {
		k.parentID = *parentID
	}
	return k
}
