package driven

import "context"

// Publisher uploads an output file to shared storage.
type Publisher interface {
	// Publish uploads the file at localPath under key and returns its location.
	Publish(ctx context.Context, localPath, key string) (string, error)
}
