package model

import (
	"time"

	"github.com/keepsake-app/keepsake/pkg/domain/types"
)

// Memory represents a single record pairing descriptive metadata with one
// stored image. ImageURL and ImagePublicID always refer to the same blob:
// they are set and replaced together, never independently. ImagePublicID is
// the opaque handle used only to delete the blob from the media host.
type Memory struct {
	ID            types.MemoryID
	Title         string
	Date          time.Time
	Description   string
	ImageURL      string
	ImagePublicID string
	Special       string // optional freeform tag
	CreatedAt     time.Time
}

// SetImage replaces the image reference pair atomically.
func (m *Memory) SetImage(url, publicID string) {
	m.ImageURL = url
	m.ImagePublicID = publicID
}
