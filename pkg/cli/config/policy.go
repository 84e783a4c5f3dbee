package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/keepsake-app/keepsake/pkg/service/media"
)

// Policy is the optional TOML media policy. It bounds upload size and
// restricts the accepted image formats.
//
//	max_upload_mb = 10
//	formats = ["jpg", "jpeg", "png", "gif"]
type Policy struct {
	MaxUploadMB int64    `toml:"max_upload_mb"`
	Formats     []string `toml:"formats"`
}

// DefaultPolicy returns the policy used when no file is given.
func DefaultPolicy() *Policy {
	return &Policy{
		MaxUploadMB: 10,
		Formats:     media.DefaultFormats(),
	}
}

// MaxUploadSize returns the upload cap in bytes.
func (p *Policy) MaxUploadSize() int64 {
	return p.MaxUploadMB << 20
}

// Validate checks the policy fields.
func (p *Policy) Validate() error {
	if p.MaxUploadMB <= 0 {
		return goerr.New("max_upload_mb must be positive", goerr.V("max_upload_mb", p.MaxUploadMB))
	}
	if len(p.Formats) == 0 {
		return goerr.New("formats must not be empty")
	}
	for _, f := range p.Formats {
		if !media.ValidFormat(f) {
			return goerr.New("unknown image format in policy", goerr.V("format", f))
		}
	}
	return nil
}

// LoadPolicy reads a TOML policy file. Fields omitted in the file keep
// their default values.
func LoadPolicy(path string) (*Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read media policy", goerr.V("path", path))
	}
	if err := toml.Unmarshal(data, policy); err != nil {
		return nil, goerr.Wrap(err, "failed to parse media policy", goerr.V("path", path))
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return policy, nil
}
