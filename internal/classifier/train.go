package classifier

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"linkguard/internal/features"
	"linkguard/internal/svm"
	"linkguard/pkg/domain"
	"linkguard/pkg/logger"
	"linkguard/pkg/serrors"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// TargetColumn holds the label of each dataset row.
const TargetColumn = "status"

// TrainOptions tune Train.
type TrainOptions struct {
	// TestRatio is the share of rows held out for evaluation. Defaults to 0.2.
	TestRatio float64
	// Seed drives the split and the trainer. Defaults to 42.
	Seed uint64
	// Lambda and Epochs are passed to the SVM trainer.
	Lambda float64
	Epochs int
}

func (o TrainOptions) withDefaults() TrainOptions {
	if o.TestRatio <= 0 || o.TestRatio >= 1 {
		o.TestRatio = 0.2
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	if o.Lambda <= 0 {
		o.Lambda = 1e-4
	}
	if o.Epochs <= 0 {
		o.Epochs = 20
	}

	return o
}

// ClassReport holds the held-out metrics of one label.
type ClassReport struct {
	Precision float64
	Recall    float64
	Support   int
}

// Report summarizes a training run.
type Report struct {
	TrainSamples int
	TestSamples  int
	Accuracy     float64
	Classes      map[domain.Label]ClassReport
}

type sample struct {
	values   []float64
	phishing bool
}

// Train fits a new artifact from a labelled CSV dataset. The header must name
// every feature column and the status column; other columns are ignored.
// Rows whose status is "phishing" are the positive class.
func Train(ctx context.Context, r io.Reader, opts TrainOptions) (*Artifact, Report, error) {
	opts = opts.withDefaults()
	cols := features.Columns()

	samples, err := readDataset(r, cols)
	if err != nil {
		return nil, Report{}, err
	}
	if len(samples) < 2 {
		return nil, Report{}, serrors.With(serrors.ErrBadRequest, "dataset needs at least 2 rows, got %d", len(samples))
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed)) //nolint: gosec
	rng.Shuffle(len(samples), func(i, j int) { samples[i], samples[j] = samples[j], samples[i] })

	testSize := int(math.Ceil(opts.TestRatio * float64(len(samples))))
	if testSize >= len(samples) {
		testSize = len(samples) - 1
	}
	test, train := samples[:testSize], samples[testSize:]

	rows := make([][]float64, len(train))
	for i, s := range train {
		rows[i] = s.values
	}

	var scaled []string
	for _, c := range cols {
		if !features.IsBinary(c) {
			scaled = append(scaled, c)
		}
	}

	scaler, err := FitScaler(cols, rows, scaled)
	if err != nil {
		return nil, Report{}, err
	}

	xs := make([]svm.Vector, len(train))
	ys := make([]bool, len(train))
	for i, s := range train {
		xs[i] = svm.Dense(scaler.Transform(cols, s.values))
		ys[i] = s.phishing
	}

	if err := ctx.Err(); err != nil {
		return nil, Report{}, err
	}

	model, err := svm.Train(xs, ys, len(cols), svm.Options{
		Lambda:   opts.Lambda,
		Epochs:   opts.Epochs,
		Seed:     opts.Seed,
		Balanced: true,
	})
	if err != nil {
		return nil, Report{}, serrors.Wrap(serrors.ErrBadRequest, err, "could not train model")
	}

	a := &Artifact{Model: model, Scaler: scaler, Columns: cols, Classes: DefaultClasses}
	report := evaluate(a, test)
	report.TrainSamples = len(train)

	logger.Get(ctx).Info("trained phishing model",
		zap.Int("train", report.TrainSamples),
		zap.Int("test", report.TestSamples),
		zap.Float64("accuracy", report.Accuracy),
	)

	return a, report, nil
}

// TrainFile is Train reading the dataset from path.
func TrainFile(ctx context.Context, path string, opts TrainOptions) (*Artifact, Report, error) {
	f, err := os.Open(path) //nolint: gosec
	if err != nil {
		return nil, Report{}, fmt.Errorf("could not open dataset: %w", err)
	}
	defer f.Close() //nolint: errcheck

	return Train(ctx, f, opts)
}

func readDataset(r io.Reader, cols []string) ([]sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read dataset header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := columnIndex(header)
	positions := make([]int, len(cols))
	for i, c := range cols {
		p, ok := index[c]
		if !ok {
			return nil, serrors.With(serrors.ErrBadRequest, "dataset is missing column %q", c)
		}
		positions[i] = p
	}
	target, ok := index[TargetColumn]
	if !ok {
		return nil, serrors.With(serrors.ErrBadRequest, "dataset is missing column %q", TargetColumn)
	}

	var samples []sample
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read dataset line %d", line)
		}

		s := sample{values: make([]float64, len(cols))}
		for i, p := range positions {
			if p >= len(record) {
				return nil, serrors.With(serrors.ErrBadRequest, "dataset line %d has %d fields", line, len(record))
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(record[p]), 64)
			if err != nil {
				return nil, serrors.Wrap(serrors.ErrBadRequest, err, "dataset line %d column %q", line, cols[i])
			}
			s.values[i] = v
		}
		if target >= len(record) {
			return nil, serrors.With(serrors.ErrBadRequest, "dataset line %d has %d fields", line, len(record))
		}
		s.phishing = strings.TrimSpace(record[target]) == string(domain.LabelPhishing)

		samples = append(samples, s)
	}

	return samples, nil
}

func evaluate(a *Artifact, test []sample) Report {
	type counts struct{ tp, fp, fn, support int }
	perClass := map[domain.Label]*counts{
		a.Classes.Negative: {},
		a.Classes.Positive: {},
	}

	var correct int
	for _, s := range test {
		predicted := a.Classes.Negative
		if a.Model.Predict(svm.Dense(a.Scaler.Transform(a.Columns, s.values))) {
			predicted = a.Classes.Positive
		}
		actual := a.Classes.Negative
		if s.phishing {
			actual = a.Classes.Positive
		}

		perClass[actual].support++
		if predicted == actual {
			correct++
			perClass[actual].tp++
		} else {
			perClass[predicted].fp++
			perClass[actual].fn++
		}
	}

	report := Report{TestSamples: len(test), Classes: make(map[domain.Label]ClassReport, len(perClass))}
	if len(test) > 0 {
		report.Accuracy = float64(correct) / float64(len(test))
	}
	for label, c := range perClass {
		report.Classes[label] = ClassReport{
			Precision: ratio(c.tp, c.tp+c.fp),
			Recall:    ratio(c.tp, c.tp+c.fn),
			Support:   c.support,
		}
	}

	return report
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}

	return float64(a) / float64(b)
}

// LoadOptions configure LoadOrTrain.
type LoadOptions struct {
	// Dir holds the artifact files.
	Dir string
	// DatasetPath is the labelled CSV used when the artifact is missing.
	DatasetPath string
	// TrainIfMissing enables training when Dir has no artifact.
	TrainIfMissing bool
	Train          TrainOptions
}

// LoadOrTrain loads the artifact from opts.Dir. When it is missing and
// training is enabled with a dataset, a new artifact is trained and saved.
// Otherwise the load error, of kind ErrUnavailable, is returned.
func LoadOrTrain(ctx context.Context, opts LoadOptions) (*Artifact, error) {
	a, err := Load(opts.Dir)
	if err == nil {
		return a, nil
	}

	if !opts.TrainIfMissing || opts.DatasetPath == "" || Exists(opts.Dir) {
		return nil, err
	}

	logger.Get(ctx).Warn("phishing model missing, training a new one",
		zap.String("dir", opts.Dir), zap.String("dataset", opts.DatasetPath))

	a, _, trainErr := TrainFile(ctx, opts.DatasetPath, opts.Train)
	if trainErr != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, trainErr, "model unavailable")
	}

	if saveErr := a.Save(opts.Dir); saveErr != nil {
		logger.Get(ctx).Error("could not save trained phishing model", zap.Error(saveErr))
	}

	return a, nil
}
