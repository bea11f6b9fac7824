package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitSpec describes one commit to create in a test repository.
type CommitSpec struct {
	Message string
	Author  string
	Email   string
	When    time.Time
}

// RepoBuilder creates real git repositories with fully controlled commit
// metadata, so walker and report tests run against actual object stores.
type RepoBuilder struct {
	Dir  string
	repo *git.Repository
	seq  int
}

// NewRepoBuilder initializes an empty repository at dir.
func NewRepoBuilder(dir string) (*RepoBuilder, error) {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return nil, err
	}
	return &RepoBuilder{Dir: dir, repo: repo}, nil
}

// Commit writes a uniquely named file, stages it, and commits it with the
// given author identity and timestamp (used for both author and committer
// time).
func (b *RepoBuilder) Commit(spec CommitSpec) (string, error) {
	b.seq++
	name := fmt.Sprintf("file_%03d.txt", b.seq)
	path := filepath.Join(b.Dir, name)
	if err := os.WriteFile(path, []byte(spec.Message+"\n"), 0644); err != nil {
		return "", err
	}

	wt, err := b.repo.Worktree()
	if err != nil {
		return "", err
	}
	if _, err := wt.Add(name); err != nil {
		return "", err
	}

	sig := &object.Signature{
		Name:  spec.Author,
		Email: spec.Email,
		When:  spec.When,
	}
	hash, err := wt.Commit(spec.Message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// Branch creates a new branch at the current HEAD and checks it out.
func (b *RepoBuilder) Branch(name string) error {
	wt, err := b.repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
}

// Checkout switches to an existing branch.
func (b *RepoBuilder) Checkout(name string) error {
	wt, err := b.repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
}
