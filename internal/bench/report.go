package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
)

// WriteTable prints results as an aligned table.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "N\tlog10(N)\theight\tinsert total\tsearch mean\tdelete mean\tdigest\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%.2f\t%d\t%s\t%s\t%s\t%016x\t\n",
			r.N, math.Log10(float64(r.N)), r.Height, r.Insert, r.Search, r.Delete, r.Digest)
	}
	return tw.Flush()
}

// WriteCSV writes one row per result with timings in seconds, suitable for
// plotting against log10(N).
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"n", "log10_n", "height", "insert_s", "search_s", "delete_s"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.N),
			strconv.FormatFloat(math.Log10(float64(r.N)), 'f', 4, 64),
			strconv.Itoa(r.Height),
			strconv.FormatFloat(r.Insert.Seconds(), 'g', -1, 64),
			strconv.FormatFloat(r.Search.Seconds(), 'g', -1, 64),
			strconv.FormatFloat(r.Delete.Seconds(), 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
