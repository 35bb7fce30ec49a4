package metrics

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Format selects how snapshots are written.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

const reportTimeLayout = "2006-01-02 15:04:05.000"

// writeSnapshot renders one snapshot as a single line.
func writeSnapshot(w io.Writer, format Format, snapshot PercentileSnapshot) error {
	if format == FormatJSON {
		line, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(snapshot)
		if err != nil {
			return err
		}

		_, err = w.Write(append(line, '\n'))

		return err
	}

	_, err := fmt.Fprintf(w,
		"%s Txn Execute Time(P50:%dms, P80:%dms, P95:%dms, P99:%dms, P999:%dms, Max:%dms), %d Row/s\n",
		snapshot.At.Format(reportTimeLayout),
		snapshot.P50, snapshot.P80, snapshot.P95, snapshot.P99, snapshot.P999, snapshot.Max,
		snapshot.RowsPerSecond,
	)

	return err
}
