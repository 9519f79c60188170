// Package phishing implements the URL decision policy: a registrable domain
// found in the allow-list is legitimate, every other URL is labelled by the
// trained classifier.
package phishing

import (
	"context"
	"errors"
	"linkguard/internal/allowlist"
	"linkguard/internal/classifier"
	"linkguard/internal/config"
	"linkguard/internal/features"
	"linkguard/pkg/domain"
	"linkguard/pkg/logger"
	"linkguard/pkg/metrics"
	"linkguard/pkg/serrors"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "linkguard/internal/phishing"

// Loader produces the classifier on first use. A failed load is retried on
// the next decision that needs the classifier.
type Loader func(ctx context.Context) (Predictor, error)

// ArtifactLoader returns a Loader reading (or training) a classifier artifact.
func ArtifactLoader(opts classifier.LoadOptions) Loader {
	return func(ctx context.Context) (Predictor, error) {
		a, err := classifier.LoadOrTrain(ctx, opts)
		if err != nil {
			return nil, err
		}

		return a, nil
	}
}

// Options configure the decision service.
type Options struct {
	// BatchConcurrency bounds the number of URLs of a batch decided at once.
	BatchConcurrency int
	// Model locates the classifier artifact.
	Model classifier.LoadOptions
	// AllowListPath is the reference list file. Empty disables the allow-list.
	AllowListPath string
	// AllowList tunes how the reference list is read.
	AllowList allowlist.Options
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		BatchConcurrency: cfg.Phishing.BatchConcurrency,
		Model: classifier.LoadOptions{
			Dir:            cfg.Phishing.ModelDir,
			DatasetPath:    cfg.Phishing.DatasetPath,
			TrainIfMissing: cfg.Phishing.TrainIfMissing,
		},
		AllowListPath: cfg.Phishing.AllowListPath,
		AllowList:     allowlist.Options{TopN: cfg.Phishing.AllowListTopN},
	}
}

// Result is the outcome of one URL of a batch. Verdict.URL is always set.
type Result struct {
	Verdict domain.Verdict
	Err     error
}

// Service owns the allow-list and the lazily loaded classifier. It is safe
// for concurrent use.
type Service struct {
	allow *allowlist.Set
	load  Loader
	opts  Options

	mu        sync.Mutex
	predictor atomic.Pointer[Predictor]

	tracer    trace.Tracer
	decisions metric.Int64Counter
	failures  metric.Int64Counter
	duration  metric.Float64Histogram
}

// New creates a Service. allow may be nil, in which case every URL goes to
// the classifier.
func New(allow *allowlist.Set, load Loader, opts Options) (*Service, error) {
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = 1
	}

	meter := otel.Meter(instrumentationName)
	decisions, err := meter.Int64Counter(metrics.DecisionCount,
		metric.WithDescription("Number of URL decisions by label and source."))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}
	failures, err := meter.Int64Counter(metrics.DecisionFailures,
		metric.WithDescription("Number of URL decisions that failed."))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}
	duration, err := metrics.LatencyHistogram(meter, metrics.DecisionDuration, "Time spent deciding a single URL.")
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &Service{
		allow:     allow,
		load:      load,
		opts:      opts,
		tracer:    otel.Tracer(instrumentationName),
		decisions: decisions,
		failures:  failures,
		duration:  duration,
	}, nil
}

// NewFromOptions loads the allow-list from opts and creates a Service whose
// classifier is read from opts.Model on first use.
func NewFromOptions(ctx context.Context, opts Options) (*Service, error) {
	var allow *allowlist.Set
	if opts.AllowListPath != "" {
		allow = allowlist.Load(ctx, opts.AllowListPath, opts.AllowList)
	} else {
		logger.Warn(ctx, "no allow-list configured, running in classifier-only mode")
	}

	return New(allow, ArtifactLoader(opts.Model), opts)
}

// Decide runs the decision policy on rawURL. The classifier is neither loaded
// nor invoked for allow-listed domains. URLs without a hostname skip the
// allow-list. Hosts without a registrable domain (IP literals, single-label
// names) are looked up by hostname, matching how such entries were loaded.
func (s *Service) Decide(ctx context.Context, rawURL string) (domain.Verdict, error) {
	ctx, span := s.tracer.Start(ctx, "phishing.Decide", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	start := time.Now()

	verdict := domain.Verdict{URL: rawURL, Domain: allowlist.RegisteredDomain(rawURL)}
	span.SetAttributes(attribute.String("url.registered_domain", verdict.Domain))

	if key := allowlist.Key(rawURL); key != "" && s.allow.Contains(key) {
		verdict.Domain = key
		verdict.Label = domain.LabelLegitimate
		verdict.Source = domain.VerdictSourceAllowList
		s.record(ctx, start, verdict, nil)

		return verdict, nil
	}

	label, err := s.predict(ctx, rawURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.record(ctx, start, verdict, err)

		return verdict, err
	}

	verdict.Label = label
	verdict.Source = domain.VerdictSourceModel
	s.record(ctx, start, verdict, nil)

	return verdict, nil
}

// PredictPhishing classifies rawURL with the classifier only. It fails with
// an ErrUnavailable error when no classifier can be loaded.
func (s *Service) PredictPhishing(ctx context.Context, rawURL string) (domain.Label, error) {
	ctx, span := s.tracer.Start(ctx, "phishing.PredictPhishing", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	label, err := s.predict(ctx, rawURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return label, err
}

// DecideAll decides each URL independently with bounded concurrency. A
// failing URL never aborts the batch; its error is reported in its Result.
func (s *Service) DecideAll(ctx context.Context, rawURLs []string) []Result {
	results := make([]Result, len(rawURLs))

	var g errgroup.Group
	g.SetLimit(s.opts.BatchConcurrency)
	for i, u := range rawURLs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Verdict: domain.Verdict{URL: u}, Err: err}

				return nil
			}
			v, err := s.Decide(ctx, u)
			results[i] = Result{Verdict: v, Err: err}

			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Ready loads the classifier if it is not loaded yet.
func (s *Service) Ready(ctx context.Context) error {
	_, err := s.classifier(ctx)

	return err
}

func (s *Service) predict(ctx context.Context, rawURL string) (domain.Label, error) {
	p, err := s.classifier(ctx)
	if err != nil {
		return "", err
	}

	label, err := p.Predict(features.Extract(rawURL))
	if err != nil {
		return "", serrors.Wrap(serrors.ErrInternal, err, "could not classify url")
	}

	return label, nil
}

func (s *Service) classifier(ctx context.Context) (Predictor, error) {
	if p := s.predictor.Load(); p != nil {
		return *p, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.predictor.Load(); p != nil {
		return *p, nil
	}

	if s.load == nil {
		return nil, serrors.With(serrors.ErrUnavailable, "model unavailable")
	}

	p, err := s.load(ctx)
	if err != nil {
		logger.Error(ctx, "could not load phishing model", zap.Error(err))
		if !errors.Is(err, serrors.ErrUnavailable) {
			err = serrors.Wrap(serrors.ErrUnavailable, err, "model unavailable")
		}

		return nil, err
	}
	if p == nil {
		return nil, serrors.With(serrors.ErrUnavailable, "model unavailable")
	}

	s.predictor.Store(&p)
	logger.Info(ctx, "phishing model loaded")

	return p, nil
}

func (s *Service) record(ctx context.Context, start time.Time, v domain.Verdict, err error) {
	s.duration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		s.failures.Add(ctx, 1)

		return
	}
	s.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("label", string(v.Label)),
		attribute.String("source", string(v.Source)),
	))
}
