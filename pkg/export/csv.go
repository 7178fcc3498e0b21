package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"sparc/entities"
)

// WriteCSV writes a header row then one row per entry. Fields containing the
// delimiter, a quote or a line break are quoted with inner quotes doubled.
func WriteCSV(w io.Writer, entries []entities.TimeEntry, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(Row(e, loc)); err != nil {
			return fmt.Errorf("write csv row %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses a file produced by WriteCSV, header included.
func ReadCSV(r io.Reader) ([][]string, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}
