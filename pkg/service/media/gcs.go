package media

import (
	"context"
	"errors"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// GCS stores blobs in a Google Cloud Storage bucket. The object name is
// `<prefix>/<uuid>.<ext>` and doubles as the PublicID; the URL points at the
// public stor.googleapis.com endpoint.
type GCS struct {
	client  *storage.Client
	bucket  string
	prefix  string
	formats []string
}

var _ Store = &GCS{}

type GCSOption func(*GCS)

// WithPrefix sets the object-name prefix (the fixed target folder).
func WithPrefix(prefix string) GCSOption {
	return func(g *GCS) {
		g.prefix = prefix
	}
}

// WithFormats restricts the accepted image formats. Names must come from
// the supported set; unknown names are ignored by detection.
func WithFormats(formats []string) GCSOption {
	return func(g *GCS) {
		if len(formats) > 0 {
			g.formats = formats
		}
	}
}

func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("media bucket is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	g := &GCS{
		client:  client,
		bucket:  bucket,
		prefix:  "memories",
		formats: DefaultFormats(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GCS) Store(ctx context.Context, blob []byte) (*Object, error) {
	format, contentType, err := detectFormat(blob, g.formats)
	if err != nil {
		return nil, err
	}

	name := path.Join(g.prefix, fmt.Sprintf("%s.%s", uuid.New().String(), extensions[format]))

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(blob); err != nil {
		return nil, goerr.Wrap(ErrUpload, "failed to write blob",
			goerr.V("bucket", g.bucket), goerr.V("object", name), goerr.V("cause", err.Error()))
	}
	if err := w.Close(); err != nil {
		return nil, goerr.Wrap(ErrUpload, "failed to finalize blob",
			goerr.V("bucket", g.bucket), goerr.V("object", name), goerr.V("cause", err.Error()))
	}

	return &Object{
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, name),
		PublicID: name,
	}, nil
}

func (g *GCS) Remove(ctx context.Context, publicID string) error {
	if publicID == "" {
		return goerr.Wrap(ErrDelete, "public ID is empty")
	}

	if err := g.client.Bucket(g.bucket).Object(publicID).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return goerr.Wrap(ErrDelete, "blob does not exist",
				goerr.V("bucket", g.bucket), goerr.V("object", publicID))
		}
		return goerr.Wrap(ErrDelete, "failed to delete blob",
			goerr.V("bucket", g.bucket), goerr.V("object", publicID), goerr.V("cause", err.Error()))
	}

	return nil
}

func (g *GCS) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
