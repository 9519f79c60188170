package domain

// Label is the public outcome of a phishing decision.
type Label string

const (
	// LabelLegitimate marks a URL considered safe.
	LabelLegitimate Label = "legitimate"
	// LabelPhishing marks a URL considered malicious.
	LabelPhishing Label = "phishing"
)

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	return l == LabelLegitimate || l == LabelPhishing
}

// VerdictSource tells which part of the decision policy produced a label.
type VerdictSource string

const (
	// VerdictSourceAllowList means the registrable domain was found in the
	// allow-list and the classifier was not consulted.
	VerdictSourceAllowList VerdictSource = "allowlist"
	// VerdictSourceModel means the label comes from the trained classifier.
	VerdictSourceModel VerdictSource = "model"
)

// Verdict is the result of running the decision policy on a single URL.
type Verdict struct {
	// URL is the URL exactly as it was classified.
	URL string `json:"url"`
	// Domain is the registrable domain (eTLD+1) of the URL, empty if it has none.
	Domain string `json:"domain,omitempty"`
	// Label is the final decision.
	Label Label `json:"label"`
	// Source is the component that produced Label.
	Source VerdictSource `json:"source"`
}
