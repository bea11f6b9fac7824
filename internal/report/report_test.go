package report

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitspan/gitspan/internal/data/walker"
	"github.com/gitspan/gitspan/internal/presentation/formatter"
	"github.com/gitspan/gitspan/internal/testing/fixtures"
	"github.com/gitspan/gitspan/internal/util"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String(), runErr
}

// twoInterleavedRepos builds two repositories whose commit timestamps
// interleave: repo1 holds T1 and T3, repo2 holds T2 and T4.
func twoInterleavedRepos(t *testing.T) (string, string, []time.Time) {
	t.Helper()

	t1 := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(1 * time.Hour)
	t3 := t1.Add(2 * time.Hour)
	t4 := t1.Add(23 * time.Hour)

	repo1 := t.TempDir()
	b1, err := fixtures.NewRepoBuilder(repo1)
	require.NoError(t, err)
	_, err = b1.Commit(fixtures.CommitSpec{Message: "r1 first", Author: "Alice", Email: "a@x.com", When: t1})
	require.NoError(t, err)
	_, err = b1.Commit(fixtures.CommitSpec{Message: "r1 second", Author: "Alice", Email: "a@x.com", When: t3})
	require.NoError(t, err)

	repo2 := t.TempDir()
	b2, err := fixtures.NewRepoBuilder(repo2)
	require.NoError(t, err)
	_, err = b2.Commit(fixtures.CommitSpec{Message: "r2 first", Author: "Bob", Email: "b@y.com", When: t2})
	require.NoError(t, err)
	_, err = b2.Commit(fixtures.CommitSpec{Message: "r2 second", Author: "Bob", Email: "b@y.com", When: t4})
	require.NoError(t, err)

	return repo1, repo2, []time.Time{t1, t2, t3, t4}
}

func TestReporterEndToEndFlat(t *testing.T) {
	require.NoError(t, util.InitializeTimeProvider("UTC"))
	repo1, repo2, times := twoInterleavedRepos(t)

	r := New(&Config{
		Repositories: []string{repo1, repo2},
		Format:       "flat",
	})

	out, err := captureStdout(t, r.Run)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	wantSummaries := []string{"r1 first", "r2 first", "r1 second", "r2 second"}
	for i, line := range lines {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 6, "line %d: %q", i, line)

		assert.Equal(t, times[i].Format("2006-01-02 15:04:05"), fields[0])
		assert.Equal(t, "master", fields[2])
		assert.Equal(t, wantSummaries[i], fields[4])
	}

	assert.Equal(t, repo1, strings.Split(lines[0], "\t")[1])
	assert.Equal(t, repo2, strings.Split(lines[1], "\t")[1])
}

func TestReporterEndToEndDaily(t *testing.T) {
	require.NoError(t, util.InitializeTimeProvider("UTC"))
	repo1, repo2, _ := twoInterleavedRepos(t)

	r := New(&Config{
		Repositories: []string{repo1, repo2},
		Format:       "daily",
	})

	out, err := captureStdout(t, r.Run)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	// T1..T3 fall on the first day, T4 on the next.
	assert.Equal(t, "2024-01-15", lines[0])
	assert.Equal(t, "2024-01-16", lines[4])
	for _, i := range []int{1, 2, 3, 5} {
		assert.True(t, strings.HasPrefix(lines[i], "\t\t"), "line %d: %q", i, lines[i])
	}
}

func TestReporterUntilBoundaryInclusive(t *testing.T) {
	repo1, repo2, times := twoInterleavedRepos(t)

	r := New(&Config{
		Repositories: []string{repo1, repo2},
		Until:        times[1].Format(time.RFC3339),
		Format:       "flat",
	})

	records, err := r.Collect()
	require.NoError(t, err)

	// The commit exactly at until (T2) is kept.
	require.Len(t, records, 2)
	assert.Equal(t, times[0].Unix(), records[0].Timestamp)
	assert.Equal(t, times[1].Unix(), records[1].Timestamp)
}

func TestReporterAuthorFilter(t *testing.T) {
	repo1, repo2, _ := twoInterleavedRepos(t)

	tests := []struct {
		name   string
		author string
		want   int
	}{
		{"absent filter keeps all", "", 4},
		{"name substring", "Bob", 2},
		{"email substring", "a@x.com", 2},
		{"no match", "Carol", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&Config{
				Repositories: []string{repo1, repo2},
				Author:       tt.author,
				Format:       "flat",
			})
			records, err := r.Collect()
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestReporterUnknownFormatProducesNoOutput(t *testing.T) {
	repo1, _, _ := twoInterleavedRepos(t)

	r := New(&Config{
		Repositories: []string{repo1},
		Format:       "json",
	})

	out, err := captureStdout(t, r.Run)
	require.Error(t, err)

	var unknownErr *formatter.UnknownFormatError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "json", unknownErr.Format)
	assert.Empty(t, out)
}

func TestReporterInvalidDateAborts(t *testing.T) {
	repo1, _, _ := twoInterleavedRepos(t)

	r := New(&Config{
		Repositories: []string{repo1},
		Since:        "not-a-date",
		Format:       "flat",
	})

	_, err := r.Collect()
	require.Error(t, err)

	var invalidErr *InvalidDateFormatError
	assert.True(t, errors.As(err, &invalidErr))
}

func TestReporterBadRepositoryAbortsWholeRun(t *testing.T) {
	repo1, _, _ := twoInterleavedRepos(t)
	notARepo := t.TempDir()

	r := New(&Config{
		Repositories: []string{repo1, notARepo},
		Format:       "flat",
	})

	_, err := r.Collect()
	require.Error(t, err)

	var openErr *walker.RepositoryOpenError
	require.True(t, errors.As(err, &openErr))
	assert.Equal(t, notARepo, openErr.Path)
}

func TestReporterIdempotent(t *testing.T) {
	require.NoError(t, util.InitializeTimeProvider("UTC"))
	repo1, repo2, _ := twoInterleavedRepos(t)

	run := func() string {
		r := New(&Config{
			Repositories: []string{repo1, repo2},
			Format:       "flat",
		})
		out, err := captureStdout(t, r.Run)
		require.NoError(t, err)
		return out
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
