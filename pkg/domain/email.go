package domain

// EmailCategory is a label assigned to an email by the email categorizer.
// The set of categories is defined by the training data, the ones below are
// the defaults used by the bundled dataset.
type EmailCategory string

const (
	EmailCategoryImportant EmailCategory = "Important"
	EmailCategorySpam      EmailCategory = "Spam"
	EmailCategoryInbox     EmailCategory = "Inbox"
)
