package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

type uploadMediaResponse struct {
	Result  bool  `json:"result"`
	MediaID int64 `json:"media_id"`
}

// UploadMedia uploads one file as a multipart request and returns the
// media id assigned by the server. The content lands in the blob store
// asynchronously; the id is usable in CreateTweet right away.
func (c *Client) UploadMedia(filename string, content io.Reader) (int64, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return 0, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return 0, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/medias", &buf)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}

	var result uploadMediaResponse
	if err := parseResponse(resp, &result); err != nil {
		return 0, err
	}
	return result.MediaID, nil
}

// UploadMediaFile uploads the file at the given path.
func (c *Client) UploadMediaFile(path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return c.UploadMedia(filepath.Base(path), file)
}
