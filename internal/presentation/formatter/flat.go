package formatter

import (
	"fmt"
	"time"

	"github.com/gitspan/gitspan/internal/core/model"
	"github.com/gitspan/gitspan/internal/util"
)

// FlatFormatter emits one tab-separated line per record: date-time,
// repository, branch, commit hash, summary, author.
type FlatFormatter struct{}

func NewFlatFormatter() *FlatFormatter {
	return &FlatFormatter{}
}

func (f *FlatFormatter) Format(records []model.CommitRecord) error {
	tp := util.GetTimeProvider()

	for _, rec := range records {
		when := tp.Format(time.Unix(rec.Timestamp, 0), "2006-01-02 15:04:05")
		fmt.Printf("%s\t%s\t%s\t%s\t%s\t%s\n",
			when, rec.Repository, rec.Branch, rec.Hash, rec.Summary, rec.Author)
	}

	return nil
}
