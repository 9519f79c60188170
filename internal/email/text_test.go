package email_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"linkguard/internal/email"
)

func TestStripHTML(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"document": {
			in: `<html><head><style>p{color:red}</style><script>alert(1)</script><title>T</title></head>` +
				`<body><p>Hello <b>bold</b> world</p><div>Second</div></body></html>`,
			want: "T Hello bold world Second",
		},
		"plain text": {
			in:   "  just   text\n here ",
			want: "just text here",
		},
		"entities": {
			in:   "<p>Fish &amp; chips</p>",
			want: "Fish & chips",
		},
		"empty": {
			in:   "",
			want: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, email.StripHTML(tt.in))
		})
	}
}

func TestFold(t *testing.T) {
	require.Equal(t, "cafe creme", email.Fold("Café CRÈME"))
	require.Equal(t, "strasse", email.Fold("STRASSE"))
	require.Equal(t, "", email.Fold(""))
}

func TestPreprocess(t *testing.T) {
	in := "Hello World! Visit https://example.com/x?y=1 or mail me at John.Doe@Example.com on 2024-01-15, " +
		"call 5551234567. Café costs 42 euros."

	require.Equal(t, []string{
		"hello", "world", "visit", email.TokenURL, "mail", email.TokenEmail, email.TokenDate,
		"call", email.TokenPhone, "cafe", "costs", email.TokenNum, "euros",
	}, email.Preprocess(in))
}

func TestPreprocess_DropsShortAndStopWords(t *testing.T) {
	require.Empty(t, email.Preprocess("a I the and of to x y z"))
	require.Equal(t, []string{"ok"}, email.Preprocess("ok!!! ... ,,,"))
}
