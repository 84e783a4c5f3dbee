package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/keepsake-app/keepsake/pkg/service/media"
	"github.com/keepsake-app/keepsake/pkg/utils/logging"
)

// Media holds CLI flags for media store configuration
type Media struct {
	backend string
	bucket  string
	prefix  string
}

// Flags returns CLI flags for media store configuration
func (m *Media) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "media-backend",
			Usage:       "Media store backend type (gcs or memory)",
			Value:       "gcs",
			Sources:     cli.EnvVars("KEEPSAKE_MEDIA_BACKEND"),
			Destination: &m.backend,
		},
		&cli.StringFlag{
			Name:        "media-bucket",
			Usage:       "GCS bucket for image blobs (required when using gcs backend)",
			Sources:     cli.EnvVars("KEEPSAKE_MEDIA_BUCKET"),
			Destination: &m.bucket,
		},
		&cli.StringFlag{
			Name:        "media-prefix",
			Usage:       "Object name prefix inside the bucket",
			Value:       "memories",
			Sources:     cli.EnvVars("KEEPSAKE_MEDIA_PREFIX"),
			Destination: &m.prefix,
		},
	}
}

// Backend returns the configured backend type
func (m *Media) Backend() string {
	return m.backend
}

// Configure initializes and returns a media store based on the configured
// backend, restricted to the formats allowed by the policy.
func (m *Media) Configure(ctx context.Context, policy *Policy) (media.Store, error) {
	switch m.backend {
	case "gcs":
		if m.bucket == "" {
			return nil, goerr.New("media-bucket is required when using gcs backend")
		}
		store, err := media.NewGCS(ctx, m.bucket,
			media.WithPrefix(m.prefix),
			media.WithFormats(policy.Formats),
		)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize gcs media store")
		}
		logging.Default().Info("Using GCS media store",
			"bucket", m.bucket,
			"prefix", m.prefix,
		)
		return store, nil

	case "memory":
		logging.Default().Info("Using in-memory media store (development mode)")
		return media.NewMemory(), nil

	default:
		return nil, goerr.New("invalid media backend", goerr.V("backend", m.backend))
	}
}
