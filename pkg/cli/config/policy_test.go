package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/keepsake-app/keepsake/pkg/cli/config"
)

func writePolicyFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadPolicy(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		policy, err := config.LoadPolicy("")
		gt.NoError(t, err).Required()
		gt.Number(t, policy.MaxUploadMB).Equal(10)
		gt.Array(t, policy.Formats).Equal([]string{"jpg", "jpeg", "png", "gif"})
		gt.Number(t, policy.MaxUploadSize()).Equal(10 << 20)
	})

	t.Run("file overrides fields", func(t *testing.T) {
		path := writePolicyFile(t, "max_upload_mb = 5\nformats = [\"png\"]\n")
		policy, err := config.LoadPolicy(path)
		gt.NoError(t, err).Required()
		gt.Number(t, policy.MaxUploadMB).Equal(5)
		gt.Array(t, policy.Formats).Equal([]string{"png"})
	})

	t.Run("omitted fields keep defaults", func(t *testing.T) {
		path := writePolicyFile(t, "max_upload_mb = 2\n")
		policy, err := config.LoadPolicy(path)
		gt.NoError(t, err).Required()
		gt.Number(t, policy.MaxUploadMB).Equal(2)
		gt.Array(t, policy.Formats).Equal([]string{"jpg", "jpeg", "png", "gif"})
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		path := writePolicyFile(t, "formats = [\"bmp\"]\n")
		_, err := config.LoadPolicy(path)
		gt.Error(t, err)
	})

	t.Run("non-positive size rejected", func(t *testing.T) {
		path := writePolicyFile(t, "max_upload_mb = 0\nformats = [\"png\"]\n")
		_, err := config.LoadPolicy(path)
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadPolicy(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Error(t, err)
	})
}
