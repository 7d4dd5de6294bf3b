package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"
	defaultRegion    = "auto"
)

var errNoBucket = errors.New("no bucket configured")

type S3 interface {
	// UploadFileBytes stores fileData under directory/fileName and returns the object key.
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (key string, err error)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (key string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if bucketName == "" {
		bucketName = svc.Config.External.S3.BucketName
	}

	if bucketName == "" {
		return constant.Empty, errNoBucket
	}

	scope.SetAttributes(map[string]any{
		otelAttrFileName: fileName,
		otelAttrBucket:   bucketName,
	})

	objectKey := path.Join(directory, fileName)
	fileReader := bytes.NewReader(fileData)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          fileReader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileReader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", bucketName).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	log.Info().Str("bucket", bucketName).Str("key", objectKey).Msg("uploaded file to S3")

	return objectKey, nil
}

func New(config *config.Config, otel otel.Otel) (S3, error) {
	s3Cfg := config.External.S3

	region := s3Cfg.Region
	if region == "" {
		region = defaultRegion
	}

	options := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(region),
	}

	if s3Cfg.AccessKey != "" {
		options = append(options, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3Cfg.AccessKey, s3Cfg.SecretKey, ""),
		))
	}

	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), options...)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")

		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}, nil
}
