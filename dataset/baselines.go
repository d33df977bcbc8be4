package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Baseline is one encounter's row of the externally computed severity-of-illness scores.
type Baseline struct {
	Died   bool
	PIM2   float64
	PRISM3 float64
}

// BaselineColumns names the header columns of the score table.
type BaselineColumns struct {
	Outcome string
	PIM2    string
	PRISM3  string
}

// DefaultBaselineColumns matches the table produced by the upstream scoring stage.
var DefaultBaselineColumns = BaselineColumns{
	Outcome: "Death",
	PIM2:    "PIM2",
	PRISM3:  "PRISM3",
}

// LoadBaselines reads the baseline score CSV, one row per encounter. The header must contain the
// three named columns; extra columns are ignored.
func LoadBaselines(path string, cols BaselineColumns) ([]Baseline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open baseline table %q", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read header of %q", path)
	}

	idx := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	oc, pc, rc := idx(cols.Outcome), idx(cols.PIM2), idx(cols.PRISM3)
	if oc < 0 || pc < 0 || rc < 0 {
		return nil, errors.Errorf("%q is missing one of the columns %q, %q, %q (header: %v)",
			path, cols.Outcome, cols.PIM2, cols.PRISM3, header)
	}

	var rows []Baseline
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "Failed to read %q at line %d", path, line)
		}

		outcome, err := strconv.ParseFloat(rec[oc], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad outcome value at line %d of %q", line, path)
		}

		pim2, err := strconv.ParseFloat(rec[pc], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad PIM2 value at line %d of %q", line, path)
		}

		prism3, err := strconv.ParseFloat(rec[rc], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad PRISM3 value at line %d of %q", line, path)
		}

		rows = append(rows, Baseline{
			Died:   outcome >= 0.5,
			PIM2:   pim2,
			PRISM3: prism3,
		})
	}

	if len(rows) == 0 {
		return nil, errors.Errorf("%q has no data rows", path)
	}

	return rows, nil
}
