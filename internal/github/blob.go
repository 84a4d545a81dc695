package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

type blobResponse struct {
	SHA      string `json:"sha"`
	NodeID   string `json:"node_id"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// BlobContent dereferences a tree entry's content locator and returns
// the decoded source text. The API wraps its base64 output at a fixed
// column width, so embedded newlines are stripped before decoding.
// Invalid UTF-8 sequences are replaced rather than rejected.
func (c *Client) BlobContent(ctx context.Context, blobURL string) (string, error) {
	var blob blobResponse
	if err := c.getJSON(ctx, blobURL, &blob); err != nil {
		return "", fmt.Errorf("failed to fetch blob %s: %w", blobURL, err)
	}
	if blob.Encoding != "base64" {
		return "", fmt.Errorf("blob %s has unexpected encoding %q", blobURL, blob.Encoding)
	}

	raw := strings.ReplaceAll(blob.Content, "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode blob %s: %w", blobURL, err)
	}
	return strings.ToValidUTF8(string(decoded), string(utf8.RuneError)), nil
}
