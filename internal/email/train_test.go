package email_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"linkguard/internal/email"
	"linkguard/pkg/domain"
	"linkguard/pkg/logger"
	"linkguard/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func examples() []email.Example {
	spam := []string{"win free money", "claim your free prize", "cheap pills discount offer", "you won lottery money", "free casino bonus"}
	important := []string{"project deadline tomorrow", "meeting agenda attached", "quarterly report review", "contract signature required", "budget approval meeting"}
	inbox := []string{"weekly newsletter digest", "friends shared photos", "community forum digest", "your weekly summary", "newsletter recipes digest"}

	var out []email.Example
	for i := range 4 {
		for j := range spam {
			out = append(out,
				email.Example{Subject: spam[j], Body: fmt.Sprintf("<p>Click now, %s %d!</p>", spam[(j+i)%len(spam)], i), Label: domain.EmailCategorySpam},
				email.Example{Subject: important[j], Body: fmt.Sprintf("Hi team, %s. Regards", important[(j+i)%len(important)]), Label: domain.EmailCategoryImportant},
				email.Example{Subject: inbox[j], Body: fmt.Sprintf("Hello, here is the %s", inbox[(j+i)%len(inbox)]), Label: domain.EmailCategoryInbox},
			)
		}
	}

	return out
}

func trainModel(t *testing.T) *email.Model {
	t.Helper()

	m, report, err := email.Train(context.Background(), examples(), email.TrainOptions{Lambda: 1e-2, Epochs: 50})
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	require.Equal(t, 12, report.TestSamples)
	require.Equal(t, 48, report.TrainSamples)
	require.GreaterOrEqual(t, report.Accuracy, 0.8)

	return m
}

func TestTrainAndPredict(t *testing.T) {
	m := trainModel(t)

	require.Equal(t, []domain.EmailCategory{
		domain.EmailCategoryImportant, domain.EmailCategoryInbox, domain.EmailCategorySpam,
	}, m.Categories)

	require.Equal(t, domain.EmailCategorySpam, m.Predict("<b>Win</b> a FREE prize and money!"))
	require.Equal(t, domain.EmailCategoryImportant, m.Predict("Subject: project meeting\n\nThe deadline for the report is tomorrow"))
	require.Equal(t, domain.EmailCategoryInbox, m.Predict("Your weekly newsletter digest is here"))

	require.Empty(t, m.Classify(nil))
	require.Len(t, m.Classify([]string{"free money", "meeting agenda"}), 2)
}

func TestTrain_DefaultOptionsHoldOutEachCategory(t *testing.T) {
	_, report, err := email.Train(context.Background(), examples(), email.TrainOptions{})
	require.NoError(t, err)

	// 20 examples per category, ceil(0.2 * 20) of each held out
	require.Equal(t, 12, report.TestSamples)
	require.Equal(t, 48, report.TrainSamples)
	require.Positive(t, report.Accuracy)
}

func TestTrain_NeedsTwoCategories(t *testing.T) {
	_, _, err := email.Train(context.Background(), []email.Example{
		{Subject: "a", Body: "free money", Label: domain.EmailCategorySpam},
		{Subject: "b", Body: "no label"},
	}, email.TrainOptions{})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestTrain_NoTokens(t *testing.T) {
	_, _, err := email.Train(context.Background(), []email.Example{
		{Body: "!!! ... ?", Label: domain.EmailCategorySpam},
		{Body: "the a of", Label: domain.EmailCategoryInbox},
	}, email.TrainOptions{})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestSaveLoad(t *testing.T) {
	m := trainModel(t)
	path := filepath.Join(t.TempDir(), "model", "email_model.json")

	require.NoError(t, m.Save(path))

	loaded, err := email.Load(path)
	require.NoError(t, err)
	require.Equal(t, m.Categories, loaded.Categories)

	for _, text := range []string{"free money prize", "project deadline", "weekly digest"} {
		require.Equal(t, m.Predict(text), loaded.Predict(text), text)
	}
}

func TestLoad_Unavailable(t *testing.T) {
	dir := t.TempDir()

	_, err := email.Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, serrors.ErrUnavailable)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"categories":["Spam"]}`), 0o600))
	_, err = email.Load(bad)
	require.ErrorIs(t, err, serrors.ErrUnavailable)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte(`{`), 0o600))
	_, err = email.Load(corrupt)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestReadExamples(t *testing.T) {
	in := `[
		{"subject": "Hi", "body": "<p>Free money</p>", "label": "Spam", "id": 7, "meta": {"x": [1, 2]}},
		{"subject": null, "body": "Meeting at noon", "label": "Important"},
		{"body": "no subject"}
	]`

	got, err := email.ReadExamples(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []email.Example{
		{Subject: "Hi", Body: "<p>Free money</p>", Label: domain.EmailCategorySpam},
		{Body: "Meeting at noon", Label: domain.EmailCategoryImportant},
		{Body: "no subject"},
	}, got)
	require.Equal(t, "Hi\n\n<p>Free money</p>", got[0].Text())

	_, err = email.ReadExamples(strings.NewReader(`{"subject": "not an array"}`))
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = email.ReadExamples(strings.NewReader(`[{"subject": 1}]`))
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestReadExamplesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"subject":"s","body":"b","label":"Inbox"}]`), 0o600))

	got, err := email.ReadExamplesFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = email.ReadExamplesFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
