package watch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/gitspan/gitspan/internal/core/model"
	"github.com/gitspan/gitspan/internal/util"
)

// RepoWatcher reports filesystem changes to the refs of a set of local
// repositories: HEAD, packed-refs, and anything under .git/refs.
type RepoWatcher struct {
	watcher *fsnotify.Watcher
	repos   []string
	events  chan model.RepoEvent
}

func NewRepoWatcher(repos []string) (*RepoWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	rw := &RepoWatcher{
		watcher: watcher,
		repos:   repos,
		events:  make(chan model.RepoEvent, 100),
	}

	for _, repo := range repos {
		if err := rw.addRepo(repo); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go rw.processEvents()

	return rw, nil
}

// addRepo watches the repository's .git directory and every directory under
// .git/refs. New branch files land in already-watched directories, so ref
// creation is observed without re-walking.
func (rw *RepoWatcher) addRepo(repo string) error {
	gitDir := filepath.Join(repo, ".git")
	if err := rw.watcher.Add(gitDir); err != nil {
		return err
	}

	refsDir := filepath.Join(gitDir, "refs")
	return filepath.Walk(refsDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return rw.watcher.Add(p)
		}
		return nil
	})
}

func (rw *RepoWatcher) processEvents() {
	for {
		select {
		case event, ok := <-rw.watcher.Events:
			if !ok {
				return
			}

			// Branch namespaces (refs/heads/feature/) can appear after the
			// watcher starts; they must join the watch set or tip moves
			// inside them go unseen.
			if event.Op.Has(fsnotify.Create) {
				rw.watchNewRefDirs(event.Name)
			}

			if !isRefChange(event.Name) {
				continue
			}

			rw.events <- model.RepoEvent{
				Repository: rw.repoFor(event.Name),
				Path:       event.Name,
				Operation:  event.Op.String(),
			}

		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			// Log the error but keep watching
			util.LogError("Repository watch error: " + err.Error())
		}
	}
}

// watchNewRefDirs adds a freshly created directory under .git/refs, and any
// directories nested inside it, to the watch set.
func (rw *RepoWatcher) watchNewRefDirs(path string) {
	if !isRefChange(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if err := rw.watcher.Add(p); err != nil {
				util.LogError("Repository watch error: " + err.Error())
			}
		}
		return nil
	})
}

// isRefChange keeps only events that can move a branch tip.
func isRefChange(path string) bool {
	base := filepath.Base(path)
	if base == "HEAD" || base == "packed-refs" {
		return true
	}
	sep := string(filepath.Separator)
	return strings.Contains(path, sep+"refs"+sep)
}

func (rw *RepoWatcher) repoFor(path string) string {
	for _, repo := range rw.repos {
		if strings.HasPrefix(path, repo+string(filepath.Separator)) || path == repo {
			return repo
		}
	}
	return ""
}

func (rw *RepoWatcher) Events() <-chan model.RepoEvent {
	return rw.events
}

func (rw *RepoWatcher) Close() error {
	return rw.watcher.Close()
}
