package media

import (
	"io"
	"mime/multipart"
)

// Upload is a single uploaded file handle. The pipeline resolves its
// content in the background, after the originating HTTP handler has
// returned, so implementations must keep the content readable until the
// batch's release callback runs.
type Upload interface {
	// Name returns the client-provided filename. May be empty.
	Name() string

	// Open returns a reader over the upload content.
	Open() (io.ReadCloser, error)
}

// MultipartUpload adapts a multipart form file to the Upload interface.
type MultipartUpload struct {
	Header *multipart.FileHeader
}

func (u MultipartUpload) Name() string {
	return u.Header.Filename
}

func (u MultipartUpload) Open() (io.ReadCloser, error) {
	return u.Header.Open()
}
