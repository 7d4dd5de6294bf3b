package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/report/model"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/repository"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"io"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	reportDirectory      = "reports"
	reportFileNameLayout = "revenue-20060102T150405Z.yaml"
)

type Report interface {
	RevenueByHotel(ctx context.Context) ([]model.HotelRevenue, error)
	Revenue(ctx context.Context) (dto.RevenueReport, error)
	// Export writes the revenue report to w as YAML.
	Export(ctx context.Context, w io.Writer) error
	// Upload stores the YAML report in the configured bucket and returns its key.
	Upload(ctx context.Context) (key string, err error)
}

type serviceImpl struct {
	repo  repository.Report
	cfg   *config.Config
	cache cache.RedisCache
	s3    s3.S3
	otel  otel.Otel
}

func New(repo repository.Report, cfg *config.Config, cache cache.RedisCache, s3 s3.S3, otel otel.Otel) Report {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		s3:    s3,
		otel:  otel,
	}
}

func (s *serviceImpl) RevenueByHotel(ctx context.Context) (rows []model.HotelRevenue, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RevenueByHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, constant.CacheKeyRevenueReport, &rows)
	if err == nil {
		log.Info().Str("cacheKey", constant.CacheKeyRevenueReport).Msg("cache hit for revenue report")

		return rows, nil
	}

	rows, err = s.repo.RevenueByHotel(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue by hotel")

		return nil, fmt.Errorf("failed to get revenue by hotel: %w", err)
	}

	if err := s.cache.Save(ctx, constant.CacheKeyRevenueReport, rows, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save revenue report to cache")
	}

	return rows, nil
}

func (s *serviceImpl) Revenue(ctx context.Context) (res dto.RevenueReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rows, err := s.RevenueByHotel(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(rows, timezone.Now())

	return res, nil
}

func (s *serviceImpl) render(ctx context.Context) ([]byte, error) {
	res, err := s.Revenue(ctx)
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(res)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode revenue report")

		return nil, fmt.Errorf("failed to encode revenue report: %w", err)
	}

	return data, nil
}

func (s *serviceImpl) Export(ctx context.Context, w io.Writer) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	data, err := s.render(ctx)
	if err != nil {
		return err
	}

	if _, err = w.Write(data); err != nil {
		log.Error().Err(err).Msg("failed to write revenue report")

		return fmt.Errorf("failed to write revenue report: %w", err)
	}

	return nil
}

func (s *serviceImpl) Upload(ctx context.Context) (key string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	data, err := s.render(ctx)
	if err != nil {
		return constant.Empty, err
	}

	fileName := timezone.Now().UTC().Format(reportFileNameLayout)

	key, err = s.s3.UploadFileBytes(ctx, constant.Empty, reportDirectory, fileName, constant.ContentTypeYAML, data)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to upload revenue report")

		return constant.Empty, fmt.Errorf("failed to upload revenue report: %w", err)
	}

	return key, nil
}
