package export

import (
	"bytes"
	"errors"
	"testing"

	"energy-insights/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, "", []model.Record{
		{"name": "Alpha", "kwh": 12.34, "price": fp(0.25), "count": 2},
		{"name": "Beta"},
	}, testColumns)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "kwh", "price", "count"}, rows[0])
	assert.Equal(t, "Alpha", rows[1][0])
	assert.Equal(t, "Beta", rows[2][0])

	raw, err := f.GetCellValue(DefaultSheet, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "12.3", raw)

	blank, err := f.GetCellValue(DefaultSheet, "B3")
	require.NoError(t, err)
	assert.Empty(t, blank)
}

func TestWriteXLSXRejectsBadColumns(t *testing.T) {
	err := WriteXLSX(&bytes.Buffer{}, "x", nil, nil)
	assert.True(t, errors.Is(err, model.ErrPrecondition))
}
