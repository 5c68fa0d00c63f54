package interfaces

import "context"

// Uploader stores a blob and returns an opaque HTTPS URL, which is kept
// verbatim on the profile.
type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error)
}
