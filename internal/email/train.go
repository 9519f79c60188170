package email

import (
	"context"
	"fmt"
	"io"
	"linkguard/internal/svm"
	"linkguard/pkg/domain"
	"linkguard/pkg/logger"
	"linkguard/pkg/serrors"
	"math"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// Example is one labelled training email.
type Example struct {
	Subject string
	Body    string
	Label   domain.EmailCategory
}

// Text joins subject and body the way emails are classified.
func (e Example) Text() string {
	return e.Subject + "\n\n" + e.Body
}

// ReadExamples decodes a JSON array of {"subject", "body", "label"} objects.
// Unknown keys are skipped and null values read as empty strings.
func ReadExamples(r io.Reader) ([]Example, error) {
	d := jx.Decode(r, 64*1024)

	var out []Example
	err := d.Arr(func(d *jx.Decoder) error {
		var e Example
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var dst *string
			switch key {
			case "subject":
				dst = &e.Subject
			case "body":
				dst = &e.Body
			case "label":
				var label string
				if err := readString(d, &label); err != nil {
					return err
				}
				e.Label = domain.EmailCategory(label)

				return nil
			default:
				return d.Skip() //nolint: wrapcheck
			}

			return readString(d, dst)
		}); err != nil {
			return err //nolint: wrapcheck
		}
		out = append(out, e)

		return nil
	})
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not decode email examples")
	}

	return out, nil
}

// ReadExamplesFile is ReadExamples reading from path.
func ReadExamplesFile(path string) ([]Example, error) {
	f, err := os.Open(path) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not open email dataset: %w", err)
	}
	defer f.Close() //nolint: errcheck

	return ReadExamples(f)
}

func readString(d *jx.Decoder, dst *string) error {
	if d.Next() == jx.Null {
		return d.Null() //nolint: wrapcheck
	}
	s, err := d.Str()
	if err != nil {
		return err //nolint: wrapcheck
	}
	*dst = s

	return nil
}

// TrainOptions tune Train.
type TrainOptions struct {
	// TestRatio is the share of each category held out for evaluation. Defaults to 0.2.
	TestRatio float64
	// Seed drives the split and the trainers. Defaults to 42.
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

// Report summarizes a training run.
type Report struct {
	TrainSamples int
	TestSamples  int
	// Accuracy on the held-out set, 0 when nothing was held out.
	Accuracy float64
}

// Train fits a categorizer on examples with a stratified, seeded split.
// Examples without a label are ignored.
func Train(ctx context.Context, examples []Example, opts TrainOptions) (*Model, Report, error) {
	opts = opts.withDefaults()

	byLabel := make(map[domain.EmailCategory][]Example)
	for _, e := range examples {
		if e.Label == "" {
			continue
		}
		byLabel[e.Label] = append(byLabel[e.Label], e)
	}
	if len(byLabel) < 2 {
		return nil, Report{}, serrors.With(serrors.ErrBadRequest, "need at least 2 labelled categories, got %d", len(byLabel))
	}

	categories := make([]domain.EmailCategory, 0, len(byLabel))
	for c := range byLabel {
		categories = append(categories, c)
	}
	slices.Sort(categories)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed)) //nolint: gosec
	var train, test []Example
	for _, c := range categories {
		group := byLabel[c]
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })

		n := int(math.Ceil(opts.TestRatio * float64(len(group))))
		if n >= len(group) {
			n = len(group) - 1
		}
		test = append(test, group[:n]...)
		train = append(train, group[n:]...)
	}

	docs := make([][]string, len(train))
	for i, e := range train {
		docs[i] = Preprocess(StripHTML(e.Text()))
	}
	vectorizer := FitVectorizer(docs)
	if vectorizer.Dim() == 0 {
		return nil, Report{}, serrors.With(serrors.ErrBadRequest, "training emails contain no usable tokens")
	}

	xs := make([]svm.Vector, len(train))
	for i, doc := range docs {
		xs[i] = vectorizer.Transform(doc)
	}

	m := &Model{Vectorizer: vectorizer, Categories: categories, Models: make([]svm.Model, len(categories))}
	for ci, c := range categories {
		if err := ctx.Err(); err != nil {
			return nil, Report{}, err
		}

		ys := make([]bool, len(train))
		for i, e := range train {
			ys[i] = e.Label == c
		}

		cm, err := svm.Train(xs, ys, vectorizer.Dim(), svm.Options{
			Lambda:   opts.Lambda,
			Epochs:   opts.Epochs,
			Seed:     opts.Seed + uint64(ci), //nolint: gosec
			Balanced: true,
		})
		if err != nil {
			return nil, Report{}, serrors.Wrap(serrors.ErrBadRequest, err, "could not train category %q", c)
		}
		m.Models[ci] = cm
	}

	report := Report{TrainSamples: len(train), TestSamples: len(test)}
	if len(test) > 0 {
		var correct int
		for _, e := range test {
			if m.Predict(e.Text()) == e.Label {
				correct++
			}
		}
		report.Accuracy = float64(correct) / float64(len(test))
	}

	logger.Get(ctx).Info("trained email model",
		zap.Int("train", report.TrainSamples),
		zap.Int("test", report.TestSamples),
		zap.Int("categories", len(categories)),
		zap.Int("vocabulary", vectorizer.Dim()),
		zap.Float64("accuracy", report.Accuracy),
	)

	return m, report, nil
}
