package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/queuectl/queuectl/job"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
}

func renderJobs(jobs []*job.Job) {
	tw := newTable()
	defer tw.Flush()
	fmt.Fprintln(tw, "ID\tSTATE\tATTEMPTS\tMAX_RETRIES\tNEXT_RETRY_AT\tERROR")
	for _, j := range jobs {
		next := ""
		if j.NextRetryAt != nil {
			next = j.NextRetryAt.Format("2006-01-02T15:04:05Z07:00")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			j.Id, j.State, j.Attempts, j.MaxRetries, next, j.ErrorMessage)
	}
}
