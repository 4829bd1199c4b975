package vcs

import "testing"

func TestPullRequestURL(t *testing.T) {
	c := NewClient("", "standuplabs", "demo-project")

	if got := c.RepoURL(); got != "https://github.com/standuplabs/demo-project" {
		t.Errorf("unexpected repo URL: %s", got)
	}
	if got := c.PullRequestURL(42); got != "https://github.com/standuplabs/demo-project/pull/42" {
		t.Errorf("unexpected PR URL: %s", got)
	}
}
