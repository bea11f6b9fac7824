package walker

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gitspan/gitspan/internal/core/model"
	"github.com/gitspan/gitspan/internal/util"
)

// RepositoryOpenError means the path does not resolve to a git repository.
type RepositoryOpenError struct {
	Path string
	Err  error
}

func (e *RepositoryOpenError) Error() string {
	return fmt.Sprintf("failed to open repository %s: %v", e.Path, e.Err)
}

func (e *RepositoryOpenError) Unwrap() error { return e.Err }

// BranchEnumerationError means the local branch references could not be read.
type BranchEnumerationError struct {
	Path string
	Err  error
}

func (e *BranchEnumerationError) Error() string {
	return fmt.Sprintf("failed to enumerate branches of %s: %v", e.Path, e.Err)
}

func (e *BranchEnumerationError) Unwrap() error { return e.Err }

// BranchResolutionError means a branch reference could not be peeled to a
// commit.
type BranchResolutionError struct {
	Path   string
	Branch string
	Err    error
}

func (e *BranchResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve branch %s of %s to a commit: %v", e.Branch, e.Path, e.Err)
}

func (e *BranchResolutionError) Unwrap() error { return e.Err }

// AncestryWalkError means the traversal failed mid-walk, e.g. on a corrupt
// object. The whole repository walk is aborted; nothing is skipped.
type AncestryWalkError struct {
	Path   string
	Branch string
	Err    error
}

func (e *AncestryWalkError) Error() string {
	return fmt.Sprintf("ancestry walk of branch %s in %s failed: %v", e.Branch, e.Path, e.Err)
}

func (e *AncestryWalkError) Unwrap() error { return e.Err }

// Walker enumerates every local branch of one repository and walks the full
// ancestry reachable from each branch tip.
type Walker struct {
	path string
}

func New(path string) *Walker {
	return &Walker{path: path}
}

// Walk visits every commit reachable from every local branch tip, once per
// branch, and passes each record to visit. A commit on two branches is
// visited twice, tagged with each branch name; no deduplication happens
// here. Any error, from the repository, a branch, the traversal, or visit
// itself, aborts the walk immediately.
func (w *Walker) Walk(visit func(model.CommitRecord) error) error {
	repo, err := git.PlainOpen(w.path)
	if err != nil {
		return &RepositoryOpenError{Path: w.path, Err: err}
	}

	branches, err := repo.Branches()
	if err != nil {
		return &BranchEnumerationError{Path: w.path, Err: err}
	}
	defer branches.Close()

	branchCount := 0
	commitCount := 0

	err = branches.ForEach(func(ref *plumbing.Reference) error {
		branchCount++
		name := ref.Name().Short()
		if name == "" {
			name = model.NoBranch
		}

		tip, err := repo.CommitObject(ref.Hash())
		if err != nil {
			return &BranchResolutionError{Path: w.path, Branch: name, Err: err}
		}

		iter := object.NewCommitPreorderIter(tip, nil, nil)
		defer iter.Close()

		err = iter.ForEach(func(c *object.Commit) error {
			commitCount++
			rec := model.NewCommitRecord(
				w.path,
				name,
				c.Hash.String(),
				c.Author.String(),
				c.Message,
				c.Committer.When.Unix(),
			)
			if err := visit(rec); err != nil {
				return &visitError{err: err}
			}
			return nil
		})
		if err != nil {
			if _, ok := err.(*visitError); ok {
				return err
			}
			return &AncestryWalkError{Path: w.path, Branch: name, Err: err}
		}
		return nil
	})
	if err != nil {
		if ve, ok := err.(*visitError); ok {
			return ve.err
		}
		return err
	}

	util.LogDebugf("Walked %s: %d branches, %d commit visits", w.path, branchCount, commitCount)
	return nil
}

// visitError marks errors raised by the visitor so they are not re-wrapped
// as traversal failures.
type visitError struct {
	err error
}

func (e *visitError) Error() string { return e.err.Error() }

func (e *visitError) Unwrap() error { return e.err }
