package report

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/gitspan/gitspan/internal/core/model"
	"github.com/gitspan/gitspan/internal/data/aggregator"
	"github.com/gitspan/gitspan/internal/data/walker"
	"github.com/gitspan/gitspan/internal/presentation/formatter"
	"github.com/gitspan/gitspan/internal/util"
)

type Config struct {
	Repositories []string
	Since        string
	Until        string
	Format       string
	Author       string
	Timezone     string
	Concurrency  int
}

// Reporter runs the full pipeline: parse the time window, walk every
// repository, filter during the walk, merge and sort, then render.
type Reporter struct {
	config *Config
}

func New(config *Config) *Reporter {
	if config.Concurrency == 0 {
		config.Concurrency = runtime.NumCPU()
	}
	return &Reporter{config: config}
}

// Run produces the report on stdout. Every stage failure is fatal: one bad
// repository, branch, or date aborts the whole run with no partial report.
func (r *Reporter) Run() error {
	startTime := time.Now()
	util.LogInfo("Generating commit history report...")

	// Validate the render mode before doing any repository work, so an
	// unknown format never produces partial output.
	f, err := formatter.New(r.config.Format)
	if err != nil {
		return err
	}

	records, err := r.Collect()
	if err != nil {
		return err
	}

	outputStart := time.Now()
	err = f.Format(records)
	util.LogDebug(fmt.Sprintf("Rendering duration: %v", time.Since(outputStart)))

	util.LogDebug(fmt.Sprintf("Total duration: %v", time.Since(startTime)))
	return err
}

// Collect walks all configured repositories and returns the filtered,
// chronologically sorted record collection.
func (r *Reporter) Collect() ([]model.CommitRecord, error) {
	parseStart := time.Now()
	timeRange, err := ParseTimeRange(r.config.Since, r.config.Until)
	if err != nil {
		return nil, err
	}
	flt := model.Filter{Range: timeRange, Author: r.config.Author}
	util.LogDebug(fmt.Sprintf("Phase 1 - Time range parsing duration: %v", time.Since(parseStart)))

	walkStart := time.Now()
	batches, err := r.walkAll(flt)
	if err != nil {
		return nil, err
	}
	util.LogDebug(fmt.Sprintf("Phase 2 - Repository walk duration: %v", time.Since(walkStart)))

	aggStart := time.Now()
	records := aggregator.Aggregate(batches)
	util.LogDebug(fmt.Sprintf("Phase 3 - Aggregation duration: %v, total records: %d",
		time.Since(aggStart), len(records)))

	util.LogInfof("Collected %d commit records from %d repositories",
		len(records), len(r.config.Repositories))
	return records, nil
}

// walkAll walks every repository with bounded concurrency. Each walk owns
// its repository handle and its own batch slot; results only meet at the
// WaitGroup barrier, after which batches are concatenated in argument order
// so equal-timestamp ties resolve exactly as a sequential walk would.
func (r *Reporter) walkAll(flt model.Filter) ([][]model.CommitRecord, error) {
	repos := r.config.Repositories
	batches := make([][]model.CommitRecord, len(repos))
	errs := make([]error, len(repos))

	util.LogDebug(fmt.Sprintf("Start walking %d repositories, concurrency: %d",
		len(repos), r.config.Concurrency))

	semaphore := make(chan struct{}, r.config.Concurrency)
	var wg sync.WaitGroup

	for i, path := range repos {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			walkStart := time.Now()
			var kept []model.CommitRecord
			err := walker.New(path).Walk(func(rec model.CommitRecord) error {
				if flt.Keep(rec) {
					kept = append(kept, rec)
				}
				return nil
			})

			if err != nil {
				util.LogDebug(fmt.Sprintf("Repository walk failed: %s, duration %v - %v",
					path, time.Since(walkStart), err))
				errs[i] = err
				return
			}

			util.LogDebug(fmt.Sprintf("Repository walk finished: %s, duration %v, kept %d records",
				path, time.Since(walkStart), len(kept)))
			batches[i] = kept
		}(i, path)
	}

	wg.Wait()

	// Surface the failure of the earliest repository argument, matching the
	// abort order of a sequential run.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return batches, nil
}
