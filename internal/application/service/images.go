package service

import "context"

// ImageProvider re-hosts a source image and returns the delivery URL used as
// the post's featured image.
type ImageProvider interface {
	Attach(ctx context.Context, srcURL string, publicID string) (string, error)
}
