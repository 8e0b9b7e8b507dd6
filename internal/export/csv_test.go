package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gonodal/internal/curve"
	"github.com/alexiusacademia/gonodal/internal/nodal"
	"github.com/alexiusacademia/gonodal/internal/notice"
	"github.com/alexiusacademia/gonodal/internal/vlp"
)

func readAll(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteReport(t *testing.T) {
	r := &nodal.Report{
		IPR: curve.Curve{{Rate: 0, Pressure: 3000}, {Rate: 500, Pressure: 1800.5}},
		VLP: curve.Curve{{Rate: 0, Pressure: 2200}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, r))

	rows := readAll(t, buf.Bytes())
	assert.Equal(t, [][]string{
		{"curve", "rate_stb_d", "pressure_psi"},
		{"ipr", "0", "3000"},
		{"ipr", "500", "1800.5"},
		{"vlp", "0", "2200"},
	}, rows)
}

func TestWriteSweep(t *testing.T) {
	run := &nodal.SensitivityRun{
		Parameter: nodal.TubingID,
		IPR:       curve.Curve{{Rate: 0, Pressure: 3000}},
		Results: []nodal.SweepResult{
			{
				Value:          2.441,
				VLP:            curve.Curve{{Rate: 0, Pressure: 2000}, {Rate: 100, Pressure: 2050}},
				OperatingPoint: nodal.OperatingPoint{Rate: 420, Pressure: 1900},
				Stats:          vlp.Stats{Solves: 100, Iterations: 310, NonConverged: 1},
				Warnings:       notice.List{{Code: notice.NonConvergence}},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSweep(&buf, run))
	rows := readAll(t, buf.Bytes())
	require.Len(t, rows, 2)
	assert.Equal(t, "tubing-id_in", rows[0][0])
	assert.Equal(t, []string{"2.441", "420", "1900", "100", "310", "1", "1"}, rows[1])

	buf.Reset()
	require.NoError(t, WriteSweepCurves(&buf, run))
	rows = readAll(t, buf.Bytes())
	assert.Len(t, rows, 1+1+2)
	assert.Equal(t, []string{"vlp", "2.441", "100", "2050"}, rows[3])
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "curves.csv")
	err := SaveFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("a,b\n"))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))

	boom := errors.New("boom")
	err = SaveFile(filepath.Join(t.TempDir(), "x.csv"), func(io.Writer) error { return boom })
	assert.True(t, errors.Is(err, boom))
}
