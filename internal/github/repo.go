package github

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// TreeEntry is one Solidity source blob in a repository's file tree.
type TreeEntry struct {
	// Path is the file's path relative to the repository root and keys
	// the compiler input; two files with the same bare name in
	// different directories stay distinct.
	Path string
	// Name is the last path segment, carried for reporting.
	Name string
	// BlobURL dereferences to the file's content.
	BlobURL string
}

type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"tree"`
}

// DefaultBranch resolves the repository's default branch name. Any
// failure, including a success response without the branch field, is a
// not-found condition for the caller to skip on.
func (c *Client) DefaultBranch(ctx context.Context, owner string, repo string) (string, error) {
	var meta struct {
		DefaultBranch string `json:"default_branch"`
	}
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
	if err := c.getJSON(ctx, url, &meta); err != nil {
		return "", fmt.Errorf("%s/%s: %w: %w", owner, repo, ErrBranchNotFound, err)
	}
	if meta.DefaultBranch == "" {
		return "", fmt.Errorf("%s/%s: %w", owner, repo, ErrBranchNotFound)
	}
	return meta.DefaultBranch, nil
}

// ListTree lists the branch's full file tree and keeps Solidity source
// blobs. Directory entries and non-Solidity files are filtered out.
func (c *Client) ListTree(ctx context.Context, owner string, repo string, branch string) ([]TreeEntry, error) {
	var tr treeResponse
	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", c.baseURL, owner, repo, branch)
	if err := c.getJSON(ctx, url, &tr); err != nil {
		return nil, fmt.Errorf("failed to list tree of %s/%s@%s: %w", owner, repo, branch, err)
	}

	var entries []TreeEntry
	for _, e := range tr.Tree {
		if e.Type != "blob" || !strings.HasSuffix(e.Path, ".sol") {
			continue
		}
		entries = append(entries, TreeEntry{
			Path:    e.Path,
			Name:    path.Base(e.Path),
			BlobURL: e.URL,
		})
	}
	return entries, nil
}
