package backup

import (
	"context"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// File is a backup handed over by the user: a name, the size and content
// type when the source knows them, and the bytes.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

var jsonMediaTypes = map[string]bool{
	"application/json": true,
	"text/json":        true,
}

// ParseFile checks the declared metadata, reads at most the size ceiling and
// runs ParseContent. Without a declared content type the bytes are sniffed and
// anything that is not text is refused.
func (c *Codec) ParseFile(ctx context.Context, f *File) (*Result, error) {
	if f == nil || f.Reader == nil {
		return nil, newError(KindNoFile)
	}
	if f.Size > c.maxSize {
		return nil, newError(KindTooLarge)
	}

	declared := strings.ToLower(strings.TrimSpace(f.ContentType))
	if declared != "" {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err != nil || !jsonMediaTypes[mediaType] {
			return nil, newError(KindNotJSONFile)
		}
	}

	content, err := io.ReadAll(io.LimitReader(&contextReader{ctx: ctx, r: f.Reader}, c.maxSize+1))
	if err != nil {
		return nil, newError(KindUnreadable).wrap(err)
	}

	if declared == "" && len(content) > 0 && !looksLikeText(content) {
		return nil, newError(KindNotJSONFile)
	}

	return c.ParseContent(content)
}

func looksLikeText(content []byte) bool {
	for mt := mimetype.Detect(content); mt != nil; mt = mt.Parent() {
		if mt.Is("application/json") || mt.Is("text/plain") {
			return true
		}
	}
	return false
}

// contextReader stops a slow read once the context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
