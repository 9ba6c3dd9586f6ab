// Package blob abstracts storage of uploaded file content. The default
// implementation is an in-memory mock; an S3-compatible backend can be
// swapped in through configuration.
package blob

import "context"

// Store persists raw file content under opaque keys. Deleting a key
// releases the underlying bytes.
type Store interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// URLSigner is implemented by stores that can mint a directly resolvable
// URL for a key (e.g. a presigned S3 GET). The transport layer falls back
// to streaming through the API when the store cannot sign URLs.
type URLSigner interface {
	SignedGetURL(ctx context.Context, key string) (string, error)
}
