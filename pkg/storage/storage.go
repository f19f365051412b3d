// Package storage opens row-source URIs as byte streams. Plain paths and
// file:// URIs read from the local filesystem; s3:// URIs read from any
// S3-compatible object store through the MinIO client.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Opener resolves a URI to a readable byte stream. The returned reader is
// lazy where the backend allows it; callers own closing it.
type Opener interface {
	Open(ctx context.Context, rawURI string) (io.ReadCloser, error)
}

type opener struct {
	conf Config
	log  *zap.Logger
}

func NewOpener(conf Config, log *zap.Logger) Opener {
	return &opener{conf: conf, log: log.With(zap.String("component", "storage"))}
}

func (o *opener) Open(ctx context.Context, rawURI string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse uri %s: %w", rawURI, err)
	}

	switch u.Scheme {
	case "", "file":
		return o.openFile(u)
	case "s3":
		return o.openObject(ctx, u)
	default:
		return nil, fmt.Errorf("unsupported uri scheme %q in %s", u.Scheme, rawURI)
	}
}

func (o *opener) openFile(u *url.URL) (io.ReadCloser, error) {
	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return f, nil
}

// openObject streams s3://{bucket}/{key} from the configured endpoint. The
// MinIO object reader pulls chunks on demand, so consumption stays
// backpressured end to end.
func (o *opener) openObject(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	if o.conf.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is not configured, cannot open %s", u)
	}

	client, err := minio.New(o.conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.conf.AccessKey, o.conf.SecretKey, ""),
		Secure: o.conf.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	object, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s: %w", bucket, key, err)
	}

	o.log.Debug("opened object stream", zap.String("bucket", bucket), zap.String("key", key))
	return object, nil
}
