package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadBaselines(t *testing.T) {
	path := writeCSV(t, "ID,Death,PIM2,PRISM3\n"+
		"a,0,0.01,0.02\n"+
		"b,1,0.70,0.65\n"+
		"c,0,0.05,0.10\n")

	rows, err := LoadBaselines(path, DefaultBaselineColumns)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.False(t, rows[0].Died)
	require.True(t, rows[1].Died)
	require.Equal(t, 0.70, rows[1].PIM2)
	require.Equal(t, 0.10, rows[2].PRISM3)
}

func TestLoadBaselinesHeaderCaseInsensitive(t *testing.T) {
	path := writeCSV(t, "death, pim2, prism3\n0,0.1,0.2\n")

	rows, err := LoadBaselines(path, DefaultBaselineColumns)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 0.1, rows[0].PIM2)
}

func TestLoadBaselinesErrors(t *testing.T) {
	_, err := LoadBaselines(filepath.Join(t.TempDir(), "nope.csv"), DefaultBaselineColumns)
	require.Error(t, err)

	// missing the PRISM3 column
	path := writeCSV(t, "Death,PIM2\n0,0.1\n")
	_, err = LoadBaselines(path, DefaultBaselineColumns)
	require.Error(t, err)
	require.Contains(t, err.Error(), "PRISM3")

	// unparseable score
	path = writeCSV(t, "Death,PIM2,PRISM3\n0,not-a-number,0.2\n")
	_, err = LoadBaselines(path, DefaultBaselineColumns)
	require.Error(t, err)

	// header only
	path = writeCSV(t, "Death,PIM2,PRISM3\n")
	_, err = LoadBaselines(path, DefaultBaselineColumns)
	require.Error(t, err)
}
