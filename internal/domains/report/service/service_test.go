package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	reportMocks "hotel/internal/domains/report/mocks"
	"hotel/internal/domains/report/model"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/service"
	cacheMocks "hotel/shared/cache/mocks"
)

type reporter struct {
	svc   service.Report
	repo  *reportMocks.MockReport
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newReporter(t *testing.T) *reporter {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	r := &reporter{
		repo:  reportMocks.NewMockReport(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	r.svc = service.New(r.repo, cfg, r.cache, r.s3, mocks.NewOtel())

	return r
}

func revenue() []model.HotelRevenue {
	return []model.HotelRevenue{
		{HotelID: 1, HotelName: "Seaside Inn", TotalRevenue: decimal.RequireFromString("720")},
		{HotelID: 2, HotelName: "Mountain Lodge", TotalRevenue: decimal.RequireFromString("99.9")},
	}
}

func (r *reporter) expectMiss() {
	r.cache.EXPECT().Get(gomock.Any(), "report:revenue", gomock.Any()).Return(errors.New("cache miss"))
	r.repo.EXPECT().RevenueByHotel(gomock.Any()).Return(revenue(), nil)
	r.cache.EXPECT().Save(gomock.Any(), "report:revenue", gomock.Any(), 300).Return(nil)
}

func TestReportService_RevenueByHotel(t *testing.T) {
	t.Run("cache miss reads the store", func(t *testing.T) {
		r := newReporter(t)
		r.expectMiss()

		rows, err := r.svc.RevenueByHotel(context.Background())

		require.NoError(t, err)
		assert.Equal(t, revenue(), rows)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		r := newReporter(t)
		r.cache.EXPECT().Get(gomock.Any(), "report:revenue", gomock.Any()).Return(nil)

		_, err := r.svc.RevenueByHotel(context.Background())
		assert.NoError(t, err)
	})

	t.Run("store error", func(t *testing.T) {
		r := newReporter(t)
		r.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		r.repo.EXPECT().RevenueByHotel(gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := r.svc.RevenueByHotel(context.Background())
		assert.ErrorContains(t, err, "failed to get revenue by hotel")
	})
}

func TestReportService_Export(t *testing.T) {
	r := newReporter(t)
	r.expectMiss()

	var buf bytes.Buffer
	require.NoError(t, r.svc.Export(context.Background(), &buf))

	var doc dto.RevenueReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.NotEmpty(t, doc.GeneratedAt)
	require.Len(t, doc.Hotels, 2)
	assert.Equal(t, dto.HotelRevenue{HotelID: 1, HotelName: "Seaside Inn", TotalRevenue: "720.00"}, doc.Hotels[0])
	assert.Equal(t, "99.90", doc.Hotels[1].TotalRevenue)
	assert.Contains(t, buf.String(), "TotalRevenue:")
}

func TestReportService_Upload(t *testing.T) {
	t.Run("uploads yaml under reports", func(t *testing.T) {
		r := newReporter(t)
		r.expectMiss()

		r.s3.EXPECT().UploadFileBytes(gomock.Any(), "", "reports", gomock.Any(), "application/yaml", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, directory, fileName, _ string, data []byte) (string, error) {
				assert.True(t, strings.HasPrefix(fileName, "revenue-"))
				assert.True(t, strings.HasSuffix(fileName, ".yaml"))
				assert.Contains(t, string(data), "Seaside Inn")

				return directory + "/" + fileName, nil
			})

		key, err := r.svc.Upload(context.Background())

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "reports/revenue-"))
	})

	t.Run("upload error", func(t *testing.T) {
		r := newReporter(t)
		r.expectMiss()
		r.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("access denied"))

		_, err := r.svc.Upload(context.Background())
		assert.ErrorContains(t, err, "failed to upload revenue report")
	})
}
