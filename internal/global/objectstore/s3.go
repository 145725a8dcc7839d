// Package objectstore 把文件上传到 S3 兼容的对象存储
package objectstore

import (
	"context"
	"io"
	"path"
	"strings"

	"activity-signup/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

type Store struct {
	bucket   string
	prefix   string
	uploader *manager.Uploader
}

// Enabled 配置了 bucket 才启用
func Enabled(cfg config.S3) bool {
	return cfg.Bucket != ""
}

func New(ctx context.Context, cfg config.S3) (*Store, error) {
	if !Enabled(cfg) {
		return nil, errors.New("s3 bucket is not configured")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Store{
		bucket:   cfg.Bucket,
		prefix:   strings.Trim(cfg.Prefix, "/"),
		uploader: manager.NewUploader(client),
	}, nil
}

// Key 拼接前缀后的对象 key
func (s *Store) Key(name string) string {
	return strings.TrimLeft(path.Join(s.prefix, name), "/")
}

// Upload 分片上传，返回对象 key
func (s *Store) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	key := s.Key(name)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload s3://%s/%s", s.bucket, key)
	}
	return key, nil
}
