package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrKey     = "object_key"
	otelAttrBucket  = "bucket"
	otelAttrPrivate = "private"
	otelAttrSize    = "size"

	cachePublic  = "public, max-age=31536000, immutable"
	cachePrivate = "private, no-store"

	defaultRegion     = "auto"
	defaultPresignTTL = 15 * time.Minute
)

// Object is a file written under Directory in the configured bucket. Private objects are
// only reachable through a presigned link, which Put returns in place of the public URL.
type Object struct {
	Directory   string
	Name        string
	ContentType string
	Body        io.Reader
	Private     bool
}

func (o Object) Key() string {
	return path.Join(o.Directory, o.Name)
}

type S3 interface {
	Put(ctx context.Context, obj Object) (url string, err error)
	Delete(ctx context.Context, directory, name string) error
}

type s3Impl struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	public  string
	ttl     time.Duration
	otel    otel.Otel
}

func (svc *s3Impl) Put(ctx context.Context, obj Object) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Put")
	defer scope.Finish(&err)

	if obj.Body == nil || obj.Name == constant.Empty {
		return constant.Empty, fmt.Errorf("object %q has no content", obj.Key())
	}

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read object: %w", err)
	}

	contentType := obj.ContentType
	if contentType == constant.Empty {
		contentType = http.DetectContentType(data)
	}

	cacheControl := cachePublic
	if obj.Private {
		cacheControl = cachePrivate
	}

	key := obj.Key()

	scope.SetAttributes(map[string]any{
		otelAttrKey:     key,
		otelAttrBucket:  svc.bucket,
		otelAttrPrivate: obj.Private,
		otelAttrSize:    len(data),
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String(cacheControl),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to put %s: %w", key, err)
	}

	if !obj.Private {
		return svc.publicURL(key), nil
	}

	signed, err := svc.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(svc.ttl))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to presign %s: %w", key, err)
	}

	return signed.URL, nil
}

func (svc *s3Impl) Delete(ctx context.Context, directory, name string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.Finish(&err)

	key := path.Join(directory, name)

	scope.SetAttributes(map[string]any{
		otelAttrKey:    key,
		otelAttrBucket: svc.bucket,
	})

	if _, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func (svc *s3Impl) publicURL(key string) string {
	return strings.TrimRight(svc.public, "/") + "/" + key
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	conf := cfg.External.S3

	region := conf.Region
	if region == constant.Empty {
		region = defaultRegion
	}

	ttl := conf.PresignTTL
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}

	// Without a CDN domain objects are served path style from the API endpoint.
	public := conf.PublicDomain
	if public == constant.Empty {
		public = strings.TrimRight(conf.APIEndpoint, "/") + "/" + conf.BucketName
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load object storage configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if conf.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(conf.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  conf.BucketName,
		public:  public,
		ttl:     ttl,
		otel:    otel,
	}
}
