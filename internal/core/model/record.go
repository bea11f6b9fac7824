package model

import "strings"

// Sentinel values used when a commit or branch is missing a field. They are
// resolved once, at record construction, so the formatters never have to
// special-case absent data.
const (
	NoBranch  = "No branch"
	NoSummary = "No summary"
	NoMessage = "No message"
)

// CommitRecord is one report entry for a (repository, branch, commit)
// triple. The same commit appears once per branch it is reachable from, and
// once per repository path it exists in. Records are immutable after
// construction.
type CommitRecord struct {
	Repository string
	Branch     string
	Hash       string
	Author     string
	Summary    string
	Message    string
	Timestamp  int64 // committer time, seconds since epoch
}

// NewCommitRecord builds a record, substituting sentinels for an
// unresolvable branch name and for an empty commit message.
func NewCommitRecord(repository, branch, hash, author, message string, timestamp int64) CommitRecord {
	if branch == "" {
		branch = NoBranch
	}

	summary := summaryLine(message)
	if message == "" {
		message = NoMessage
	}

	return CommitRecord{
		Repository: repository,
		Branch:     branch,
		Hash:       hash,
		Author:     author,
		Summary:    summary,
		Message:    message,
		Timestamp:  timestamp,
	}
}

// summaryLine extracts the first non-blank line of a commit message,
// skipping leading blank lines the way git derives a commit summary.
func summaryLine(message string) string {
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return NoSummary
}
