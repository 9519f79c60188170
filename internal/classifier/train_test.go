package classifier_test

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"linkguard/internal/classifier"
	"linkguard/internal/features"
	"linkguard/pkg/domain"
	"linkguard/pkg/logger"
	"linkguard/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// writeCSV renders records with csv.Writer so column names such as
// "total_of," are quoted.
func writeCSV(t *testing.T, records [][]string) string {
	t.Helper()

	var b strings.Builder
	w := csv.NewWriter(&b)
	require.NoError(t, w.WriteAll(records))

	return b.String()
}

// datasetHeader is the layout of the public phishing URL datasets: a url
// column, the feature columns and the status column.
func datasetHeader() []string {
	return append(append([]string{"url"}, features.Columns()...), classifier.TargetColumn)
}

// dataset renders a labelled CSV with n rows of each class.
func dataset(t *testing.T, n int) string {
	t.Helper()

	cols := features.Columns()
	records := [][]string{datasetHeader()}

	add := func(u string, status domain.Label) {
		record := []string{u}
		for _, v := range features.Extract(u).Values(cols) {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		records = append(records, append(record, string(status)))
	}

	for i := range n {
		add(fmt.Sprintf("https://www.site%d.com/", i), domain.LabelLegitimate)
		add(fmt.Sprintf("http://10.0.%d.%d/secure-login_update/acc-verify.php?user=a&session=b&token=c%%20d", i/200, i%200), domain.LabelPhishing)
	}

	return writeCSV(t, records)
}

// row is a dataset record with every feature set to v.
func row(v string, status domain.Label) []string {
	record := []string{"http://example.com"}
	for range features.Columns() {
		record = append(record, v)
	}

	return append(record, string(status))
}

func TestDataset_QuotesCommaColumn(t *testing.T) {
	data := dataset(t, 1)

	require.Contains(t, data, `"total_of,"`)
	require.NotContains(t, data, "total_of,,")
}

func TestTrain(t *testing.T) {
	ctx := context.Background()

	a, report, err := classifier.Train(ctx, strings.NewReader(dataset(t, 50)), classifier.TrainOptions{Lambda: 1e-2, Epochs: 50})
	require.NoError(t, err)
	require.NoError(t, a.Validate())
	require.Equal(t, features.Columns(), a.Columns)
	require.Equal(t, classifier.DefaultClasses, a.Classes)

	require.Equal(t, 20, report.TestSamples)
	require.Equal(t, 80, report.TrainSamples)
	require.GreaterOrEqual(t, report.Accuracy, 0.9)
	require.Contains(t, report.Classes, domain.LabelPhishing)
	require.Contains(t, report.Classes, domain.LabelLegitimate)

	label, err := a.Predict(features.Extract("http://172.16.4.4/paypal-secure_login/verify.php?acc=1&id=2&x=%41"))
	require.NoError(t, err)
	require.Equal(t, domain.LabelPhishing, label)

	label, err = a.Predict(features.Extract("https://www.golang.com/"))
	require.NoError(t, err)
	require.Equal(t, domain.LabelLegitimate, label)
}

func TestTrain_Deterministic(t *testing.T) {
	ctx := context.Background()
	data := dataset(t, 20)

	a, _, err := classifier.Train(ctx, strings.NewReader(data), classifier.TrainOptions{})
	require.NoError(t, err)
	b, _, err := classifier.Train(ctx, strings.NewReader(data), classifier.TrainOptions{})
	require.NoError(t, err)

	require.Equal(t, a.Model, b.Model)
	require.Equal(t, a.Scaler, b.Scaler)
}

func TestTrain_ScalesOnlyNonBinaryColumns(t *testing.T) {
	a, _, err := classifier.Train(context.Background(), strings.NewReader(dataset(t, 10)), classifier.TrainOptions{})
	require.NoError(t, err)

	require.Len(t, a.Scaler.Columns, len(features.Columns())-2)
	require.NotContains(t, a.Scaler.Columns, features.IP)
	require.NotContains(t, a.Scaler.Columns, features.HTTPSToken)
}

func TestTrain_QuotedCommaHeader(t *testing.T) {
	header := datasetHeader()
	require.Contains(t, header, "total_of,")

	records := [][]string{header}
	for range 5 {
		records = append(records, row("0", domain.LabelLegitimate), row("9", domain.LabelPhishing))
	}

	a, report, err := classifier.Train(context.Background(), strings.NewReader(writeCSV(t, records)), classifier.TrainOptions{})
	require.NoError(t, err)
	require.Equal(t, 2, report.TestSamples)
	require.Contains(t, a.Scaler.Columns, "total_of,")
}

func TestTrain_InvalidDataset(t *testing.T) {
	ctx := context.Background()
	header := datasetHeader()

	tests := map[string]string{
		"empty":          "",
		"missing status": writeCSV(t, [][]string{header[:len(header)-1]}),
		"missing column": "url_length,status\n1,phishing\n",
		"bad number":     writeCSV(t, [][]string{header, row("x", domain.LabelPhishing)}),
		"too few rows":   writeCSV(t, [][]string{header, row("1", domain.LabelPhishing)}),
		"single class": writeCSV(t, [][]string{
			header,
			row("1", domain.LabelPhishing),
			row("2", domain.LabelPhishing),
			row("3", domain.LabelPhishing),
		}),
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := classifier.Train(ctx, strings.NewReader(data), classifier.TrainOptions{})
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}

func TestLoadOrTrain(t *testing.T) {
	ctx := context.Background()

	t.Run("loads existing artifact", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, ipArtifact(t).Save(dir))

		a, err := classifier.LoadOrTrain(ctx, classifier.LoadOptions{Dir: dir})
		require.NoError(t, err)
		require.NotNil(t, a)
	})

	t.Run("missing artifact without training", func(t *testing.T) {
		_, err := classifier.LoadOrTrain(ctx, classifier.LoadOptions{Dir: t.TempDir()})
		require.ErrorIs(t, err, serrors.ErrUnavailable)
	})

	t.Run("trains and saves missing artifact", func(t *testing.T) {
		root := t.TempDir()
		datasetPath := filepath.Join(root, "dataset.csv")
		require.NoError(t, os.WriteFile(datasetPath, []byte(dataset(t, 20)), 0o600))
		dir := filepath.Join(root, "model")

		a, err := classifier.LoadOrTrain(ctx, classifier.LoadOptions{
			Dir:            dir,
			DatasetPath:    datasetPath,
			TrainIfMissing: true,
		})
		require.NoError(t, err)
		require.NotNil(t, a)
		require.True(t, classifier.Exists(dir))
	})

	t.Run("training failure is unavailable", func(t *testing.T) {
		_, err := classifier.LoadOrTrain(ctx, classifier.LoadOptions{
			Dir:            t.TempDir(),
			DatasetPath:    filepath.Join(t.TempDir(), "missing.csv"),
			TrainIfMissing: true,
		})
		require.ErrorIs(t, err, serrors.ErrUnavailable)
	})
}
