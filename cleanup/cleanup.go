// Package cleanup rewrites a raw transcript for clarity via a
// chat-completion API. It never adds or removes information; the model is
// instructed to only reorganize.
package cleanup

import "context"

type Cleaner interface {
	Name() string
	// Clean returns a rewritten version of text. No retries.
	Clean(ctx context.Context, text string) (string, error)
}
