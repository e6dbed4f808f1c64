package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"shop-backend/internal/config"
	addressRepo "shop-backend/internal/domains/address/repository"
	"shop-backend/internal/domains/location/model"
	locationRepo "shop-backend/internal/domains/location/repository"
	locationService "shop-backend/internal/domains/location/service"
	"shop-backend/internal/domains/location/seed"
	infraCache "shop-backend/internal/infrastructure/cache"
)

type locationsOptions struct {
	file      string
	countryID int64
	dryRun    bool
	publish   bool
}

func newLocationsCmd() *cobra.Command {
	opts := &locationsOptions{}

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Import a province/city/district tree from a .yaml or .xlsx file",
		Example: `  seed locations --file regions.yaml --country 1
  seed locations --file regions.xlsx --country 1 --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocations(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "seed file (.yaml, .yml, .xlsx)")
	cmd.Flags().Int64Var(&opts.countryID, "country", 0, "target country id")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate against an in-memory store, write nothing")
	cmd.Flags().BoolVar(&opts.publish, "publish", true, "mark imported nodes as published")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runLocations(cmd *cobra.Command, opts *locationsOptions) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
	defer cancel()

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	regions, err := seed.ParseFile(opts.file, f)
	if err != nil {
		return err
	}
	total := seed.Count(regions)
	if total == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to import")
		return nil
	}

	var (
		provinces locationService.ProvinceService
		countryID = opts.countryID
		finish    func(context.Context) error
	)
	if opts.dryRun {
		provinces, countryID, err = dryRunProvinces(ctx)
	} else {
		if countryID <= 0 {
			return fmt.Errorf("--country is required unless --dry-run")
		}
		cfg, cfgErr := config.Load()
		if cfgErr != nil {
			return cfgErr
		}
		// memory cache chỉ sống trong process này, API sẽ không thấy invalidation
		if cfg.Cache.Driver != "redis" {
			return fmt.Errorf("seeding into Postgres requires CACHE_DRIVER=redis (got %q); use --dry-run to validate only", cfg.Cache.Driver)
		}
		var cleanup func()
		provinces, cleanup, err = dbProvinces(ctx, cfg)
		if cleanup != nil {
			defer cleanup()
		}
		finish = func(ctx context.Context) error {
			return provinces.WarmTree(ctx, countryID)
		}
	}
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("importing locations"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(cmd.ErrOrStderr())
		}),
	)

	im := seed.NewImporter(provinces, opts.publish)
	im.OnRow = func() { _ = bar.Add(1) }

	res, err := im.Import(ctx, countryID, regions)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	for _, e := range res.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ %v\n", e)
	}

	if finish != nil {
		if err := finish(ctx); err != nil {
			log.Warn().Err(err).Int64("country_id", countryID).Msg("warm province tree after seed failed")
		}
	}

	mode := "imported"
	if opts.dryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d created, %d skipped, %d failed\n",
		mode, res.Created, res.Skipped, res.Failed)

	if res.Failed > 0 {
		return fmt.Errorf("%d of %d locations failed", res.Failed, res.Total())
	}
	return nil
}

// dryRunProvinces chạy cùng service validation trên memory store
func dryRunProvinces(ctx context.Context) (locationService.ProvinceService, int64, error) {
	store := locationRepo.NewMemoryStore()
	countryID, err := store.Countries().Create(ctx, &model.Country{Name: "dry-run", IsPublished: true})
	if err != nil {
		return nil, 0, err
	}
	trees := locationService.NewTreeCache(infraCache.NewMemoryCache(), store.Provinces(), nil)
	return locationService.NewProvinceService(store.Countries(), store.Provinces(), nil, trees, 0), countryID, nil
}

// dbProvinces dùng Postgres thật. Tree cache không enqueue warm-up cho mỗi node;
// snapshot được rebuild một lần khi import xong (finish).
func dbProvinces(ctx context.Context, cfg *config.Config) (locationService.ProvinceService, func(), error) {
	db, err := connectDB(ctx)
	if err != nil {
		return nil, nil, err
	}

	c := infraCache.New(cfg)
	cleanup := func() {
		db.Close()
		if rc, ok := c.(*infraCache.RedisCache); ok {
			_ = rc.Close()
		}
	}

	countries := locationRepo.NewPostgresCountryRepository(db.Pool)
	provinceRepo := locationRepo.NewPostgresProvinceRepository(db.Pool)
	trees := locationService.NewTreeCache(c, provinceRepo, nil)
	svc := locationService.NewProvinceService(
		countries,
		provinceRepo,
		addressRepo.NewPostgresRepository(db.Pool),
		trees,
		cfg.Location.ProvinceTreeDepth,
	)
	return svc, cleanup, nil
}
