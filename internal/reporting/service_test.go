package reporting

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/branchreport/internal/config"
	"github.com/cleared-dev/branchreport/internal/export"
	"github.com/cleared-dev/branchreport/internal/importer"
	"github.com/cleared-dev/branchreport/internal/ledger"
	"github.com/cleared-dev/branchreport/internal/report"
)

const header = "ردیف,تاریخ,زمان,کد شعبه,نام شعبه,شماره سند,شماره رسید,شماره چک,شرح,برداشت,واریز,مانده,یادداشت\n"

const branchCSV = header +
	"1,2024-01-01,09:00,112,مرکزی,1,,,انتقال از شعبه,,\"1,100\",\"10,000\",\n" +
	"2,2024-01-01,09:05,112,مرکزی,2,,,کارمزد انتقال,50,,\"9,950\",\n" +
	"3,2024-01-01,09:07,112,مرکزی,3,,,انتقال از,,oops,,\n" +
	"جمع کل,,,,,,,,,,,,\n"

func newService(t *testing.T) *Service {
	t.Helper()
	ec, err := config.Default().Engine()
	require.NoError(t, err)
	engine, err := report.New(ec)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(engine, importer.DefaultRegistry(), logger)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branch.csv")
	writeFile(t, path, branchCSV)

	out, err := newService(t).Generate(path)
	require.NoError(t, err)

	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, 5, out.Rows)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, 4, out.Skipped[0].Row)

	rep := out.Report
	assert.Equal(t, 2, rep.Dropped)
	assert.Equal(t, [][]string{
		{"تاریخ", "کارت به کارت", "کارمزد", "برداشت روز", "فروش", "مالیات"},
		{"2024/01/01", "1,100.00", "50.00", "0.00", "1,000.00", "100.00"},
		{"1 روز", "1,100.00", "50.00", "0.00", "1,000.00", "100.00"},
	}, rep.Table())
}

func TestGenerate_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"ردیف", "تاریخ", "زمان", "کد شعبه", "نام شعبه", "شماره سند", "شماره رسید", "شماره چک", "شرح", "برداشت", "واریز", "مانده", "یادداشت"},
		{1, "1403/01/05", "09:00", 112, "مرکزی", 1, "", "", "انتقال از کارت", "", 2200, 10000, ""},
		{2, "1403/01/06", "09:00", 112, "مرکزی", 2, "", "", "انتقال وجه", 700, "", 9300, ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "branch.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := newService(t).Generate(path)
	require.NoError(t, err)

	table := out.Report.Table()
	require.Len(t, table, 4)
	assert.Equal(t, []string{"1403/01/05", "2,200.00", "0.00", "0.00", "2,000.00", "200.00"}, table[1])
	assert.Equal(t, []string{"1403/01/06", "0.00", "0.00", "700.00", "0.00", "0.00"}, table[2])
	assert.Equal(t, []string{"2 روز", "2,200.00", "0.00", "700.00", "2,000.00", "200.00"}, table[3])
}

func TestGenerate_XLSXDateCells(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"ردیف", "تاریخ", "زمان", "کد شعبه", "نام شعبه", "شماره سند", "شماره رسید", "شماره چک", "شرح", "برداشت", "واریز", "مانده", "یادداشت"},
		{1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "09:00", 112, "مرکزی", 1, "", "", "انتقال از شعبه", "", 1100, 10000, ""},
		{2, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "09:05", 112, "مرکزی", 2, "", "", "کارمزد انتقال", 50, "", 9950, ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "branch.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := newService(t).Generate(path)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Report.Dropped, "only the header has no date")

	table := out.Report.Table()
	require.Len(t, table, 3)
	assert.Equal(t, []string{"2024/01/01", "1,100.00", "50.00", "0.00", "1,000.00", "100.00"}, table[1])
	assert.Equal(t, []string{"1 روز", "1,100.00", "50.00", "0.00", "1,000.00", "100.00"}, table[2])
}

func TestGenerate_WrongShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branch.csv")
	writeFile(t, path, "date,description,amount\n2024-01-01,انتقال از,100\n")

	_, err := newService(t).Generate(path)
	assert.ErrorIs(t, err, ledger.ErrUnmappedColumns)
}

func TestGenerate_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "branch.pdf")
	writeFile(t, path, "%PDF")

	_, err := newService(t).Generate(path)
	assert.Error(t, err)
}

func TestGenerate_Missing(t *testing.T) {
	_, err := newService(t).Generate(filepath.Join(t.TempDir(), "ghost.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite(t *testing.T) {
	svc := newService(t)
	src := filepath.Join(t.TempDir(), "branch.csv")
	writeFile(t, src, branchCSV)
	out, err := svc.Generate(src)
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "nested", "report.csv")
	require.NoError(t, svc.Write(out.Report, &export.CSVWriter{}, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	var want bytes.Buffer
	require.NoError(t, (&export.CSVWriter{}).Write(&want, out.Report))
	assert.Equal(t, want.String(), string(data))
}

func TestBatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "import", "day1.csv"), branchCSV)
	writeFile(t, filepath.Join(root, "import", "broken.csv"), "a,b\n")

	results, err := newService(t).Batch(root, &export.CSVWriter{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	byName := map[string]BatchResult{}
	for _, r := range results {
		byName[filepath.Base(r.Source)] = r
	}

	assert.ErrorIs(t, byName["broken.csv"].Err, ledger.ErrUnmappedColumns)
	_, err = os.Stat(filepath.Join(root, "import", "broken.csv"))
	assert.NoError(t, err, "failed source stays in import/")

	ok := byName["day1.csv"]
	require.NoError(t, ok.Err)
	assert.Equal(t, filepath.Join(root, "exports", "day1-csv-report.csv"), ok.Output)
	_, err = os.Stat(ok.Output)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "import", "processed", "day1.csv"))
	assert.NoError(t, err)
}

func TestBatch_SameNameDifferentFormat(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "import", "a.csv"), branchCSV)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range [][]any{
		{1, "2024/01/02", "09:00", 112, "مرکزی", 1, "", "", "انتقال از شعبه", "", 2200, 10000, "x"},
	} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(filepath.Join(root, "import", "a.xlsx")))
	require.NoError(t, f.Close())

	results, err := newService(t).Batch(root, &export.CSVWriter{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	outputs := map[string]bool{}
	for _, r := range results {
		require.NoError(t, r.Err, r.Source)
		outputs[r.Output] = true
	}
	assert.Len(t, outputs, 2)

	csvReport, err := os.ReadFile(filepath.Join(root, "exports", "a-csv-report.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csvReport), "2024/01/01")

	xlsxReport, err := os.ReadFile(filepath.Join(root, "exports", "a-xlsx-report.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(xlsxReport), "2024/01/02")
}

func TestReportName(t *testing.T) {
	assert.Equal(t, "a-csv-report.xlsx", reportName("a.csv", "xlsx"))
	assert.Equal(t, "a-xlsx-report.xlsx", reportName("a.XLSX", "xlsx"))
	assert.Equal(t, "day.1-csv-report.csv", reportName("day.1.csv", "csv"))
	assert.Equal(t, "ledger-report.csv", reportName("ledger", "csv"))
}

func TestBatch_Empty(t *testing.T) {
	results, err := newService(t).Batch(t.TempDir(), &export.CSVWriter{})
	require.NoError(t, err)
	assert.Empty(t, results)
}
