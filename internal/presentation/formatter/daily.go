package formatter

import (
	"fmt"
	"time"

	"github.com/gitspan/gitspan/internal/core/model"
	"github.com/gitspan/gitspan/internal/util"
)

// DailyFormatter groups records under calendar-date headers. The input is
// already globally time-sorted, so grouping is a single linear pass over
// contiguous runs; records are never re-sorted here.
type DailyFormatter struct{}

func NewDailyFormatter() *DailyFormatter {
	return &DailyFormatter{}
}

func (f *DailyFormatter) Format(records []model.CommitRecord) error {
	tp := util.GetTimeProvider()

	currentDay := ""
	for _, rec := range records {
		when := time.Unix(rec.Timestamp, 0)

		day := tp.Format(when, "2006-01-02")
		if day != currentDay {
			fmt.Println(day)
			currentDay = day
		}

		fmt.Printf("\t\t%s\t%s\t%s\t%s\t%s\n",
			tp.Format(when, "15:04:05"), rec.Repository, rec.Branch, rec.Summary, rec.Author)
	}

	return nil
}
