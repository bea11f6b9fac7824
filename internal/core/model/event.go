package model

// RepoEvent is a filesystem change attributed to a watched repository.
type RepoEvent struct {
	Repository string
	Path       string
	Operation  string
}
