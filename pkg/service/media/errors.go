package media

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrUpload covers transport failures while storing a blob.
	ErrUpload = goerr.New("media upload failed")

	// ErrDelete covers any failure to remove a blob by its public ID.
	ErrDelete = goerr.New("media delete failed")

	// ErrUnsupportedFormat is returned when the blob does not decode as an
	// allowed image format. The check runs before any network write.
	ErrUnsupportedFormat = goerr.New("unsupported image format")
)
