package ports

import (
	"context"
	"encoding/json"
	"io"
)

// Requester is a generic request-executing client for the notes service API.
// Implementations map HTTP failure statuses onto the internal/errors
// taxonomy; 401 responses surface as unauthorized errors. All methods honor
// context cancellation.
type Requester interface {
	Get(ctx context.Context, endpoint string) (json.RawMessage, error)
	Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
	Put(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
	Delete(ctx context.Context, endpoint string) (json.RawMessage, error)

	// UploadFile sends contents as a multipart/form-data file field.
	UploadFile(ctx context.Context, endpoint, field, filename string, contents io.Reader) (json.RawMessage, error)
}
