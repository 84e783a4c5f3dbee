package media

import "context"

// Object is the reference a successful upload returns. URL is the publicly
// resolvable location of the blob; PublicID is the opaque handle used only
// to delete the blob later.
type Object struct {
	URL      string
	PublicID string
}

// Store is the media host contract: upload a blob and get back its
// reference, or delete a blob by its public ID. Implementations must reject
// blobs that do not decode as one of the allowed image formats before any
// network write happens.
type Store interface {
	Store(ctx context.Context, blob []byte) (*Object, error)
	Remove(ctx context.Context, publicID string) error
}
