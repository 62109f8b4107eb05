// Package storage opens and saves index files that live either on the local
// filesystem or in S3 (s3://bucket/key).
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-lookup/src/s3"
)

const s3Scheme = "s3://"

type Location struct {
	Bucket string
	Key    string
	Path   string
}

func (l Location) IsS3() bool {
	return l.Bucket != ""
}

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Key
	}
	return l.Path
}

func ParseLocation(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("empty location")
	}
	if !strings.HasPrefix(raw, s3Scheme) {
		return Location{Path: raw}, nil
	}
	bucket, key, _ := strings.Cut(strings.TrimPrefix(raw, s3Scheme), "/")
	if bucket == "" || key == "" {
		return Location{}, fmt.Errorf("invalid S3 location %q, expected s3://bucket/key", raw)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// Store resolves locations. The S3 client is created on first use so that
// purely local runs never touch the AWS credential chain.
type Store struct {
	region   string
	sugar    *zap.SugaredLogger
	s3Client *s3.Client
}

func NewStore(region string, sugar *zap.SugaredLogger) *Store {
	return &Store{
		region: region,
		sugar:  sugar,
	}
}

func (s *Store) bucketClient(ctx context.Context) (*s3.Client, error) {
	if s.s3Client != nil {
		return s.s3Client, nil
	}
	var opts []func(*config.LoadOptions) error
	if s.region != "" {
		opts = append(opts, config.WithRegion(s.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	s.s3Client = s3.NewClient(cfg)
	return s.s3Client, nil
}

func (s *Store) Open(ctx context.Context, raw string) (io.ReadCloser, error) {
	location, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}
	if !location.IsS3() {
		s.sugar.Infof("Opening local file %s", location.Path)
		return os.Open(location.Path)
	}
	client, err := s.bucketClient(ctx)
	if err != nil {
		return nil, err
	}
	s.sugar.Infof("Downloading s3://%s/%s", location.Bucket, location.Key)
	return client.GetFile(ctx, location.Bucket, location.Key)
}

func (s *Store) Save(ctx context.Context, raw string, reader io.Reader) error {
	location, err := ParseLocation(raw)
	if err != nil {
		return err
	}
	if !location.IsS3() {
		s.sugar.Infof("Writing local file %s", location.Path)
		if dir := filepath.Dir(location.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f, err := os.Create(location.Path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, reader); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	client, err := s.bucketClient(ctx)
	if err != nil {
		return err
	}
	s.sugar.Infof("Uploading s3://%s/%s", location.Bucket, location.Key)
	return client.PutFile(ctx, reader, location.Bucket, location.Key)
}
