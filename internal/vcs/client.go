// Package vcs provides the GitHub-backed version-control capability:
// feature branches, committed files, and pull requests for the simulated
// code-review workflow.
package vcs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"
)

// Client wraps the GitHub API for a single repository.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

// PullRequest describes a pull request opened by the client.
type PullRequest struct {
	// Number is the repository-local pull request number.
	Number int
	// URL is the web URL of the pull request.
	URL string
}

// NewClient creates a GitHub client for owner/repo authenticated with token.
func NewClient(token, owner, repo string) *Client {
	return &Client{
		gh:    github.NewClient(nil).WithAuthToken(token),
		owner: owner,
		repo:  repo,
	}
}

// RepoURL returns the web URL of the configured repository.
func (c *Client) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", c.owner, c.repo)
}

// PullRequestURL returns the web URL for a pull request number.
func (c *Client) PullRequestURL(number int) string {
	return fmt.Sprintf("%s/pull/%d", c.RepoURL(), number)
}

// CreateBranch creates a new branch from the head of base.
// A branch that already exists is treated as a no-op, not a failure.
func (c *Client) CreateBranch(ctx context.Context, name, base string) error {
	baseRef, _, err := c.gh.Git.GetRef(ctx, c.owner, c.repo, "refs/heads/"+base)
	if err != nil {
		return fmt.Errorf("get base branch %s: %w", base, err)
	}

	_, resp, err := c.gh.Git.CreateRef(ctx, c.owner, c.repo, &github.Reference{
		Ref:    github.Ptr("refs/heads/" + name),
		Object: &github.GitObject{SHA: baseRef.Object.SHA},
	})
	if err != nil {
		// 422 means the ref already exists; reuse it.
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			return nil
		}
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	return nil
}

// CreateOrUpdateFile commits content to path on branch, creating the file
// if it doesn't exist and updating it otherwise.
func (c *Client) CreateOrUpdateFile(ctx context.Context, path, content, message, branch string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: []byte(content),
		Branch:  github.Ptr(branch),
	}

	// An existing file must be updated with its current blob SHA.
	existing, _, resp, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path,
		&github.RepositoryContentGetOptions{Ref: branch})
	if err == nil && existing != nil {
		opts.SHA = existing.SHA
	} else if resp == nil || resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("get contents %s: %w", path, err)
	}

	if opts.SHA != nil {
		_, _, err = c.gh.Repositories.UpdateFile(ctx, c.owner, c.repo, path, opts)
	} else {
		_, _, err = c.gh.Repositories.CreateFile(ctx, c.owner, c.repo, path, opts)
	}
	if err != nil {
		return fmt.Errorf("commit %s to %s: %w", path, branch, err)
	}
	return nil
}

// CreatePullRequest opens a pull request from head into base.
func (c *Client) CreatePullRequest(ctx context.Context, title, body, head, base string) (PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Create(ctx, c.owner, c.repo, &github.NewPullRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
		Head:  github.Ptr(head),
		Base:  github.Ptr(base),
	})
	if err != nil {
		return PullRequest{}, fmt.Errorf("create pull request: %w", err)
	}

	out := PullRequest{Number: pr.GetNumber(), URL: pr.GetHTMLURL()}
	if out.URL == "" {
		out.URL = c.PullRequestURL(out.Number)
	}
	return out, nil
}
