package phishing

import (
	"context"
	"linkguard/internal/features"
	"linkguard/pkg/domain"
)

//go:generate mockgen -package mockphishing -source=interface.go -destination=mock/mockphishing.go *

// Predictor classifies an extracted feature vector. *classifier.Artifact
// implements it.
type Predictor interface {
	Predict(vec features.Vector) (domain.Label, error)
}

// Decider runs the decision policy. *Service implements it.
type Decider interface {
	// Decide returns the verdict for a single URL.
	Decide(ctx context.Context, rawURL string) (domain.Verdict, error)
	// DecideAll decides every URL independently, one result per URL in input order.
	DecideAll(ctx context.Context, rawURLs []string) []Result
	// PredictPhishing runs the classifier only, bypassing the allow-list.
	PredictPhishing(ctx context.Context, rawURL string) (domain.Label, error)
}
