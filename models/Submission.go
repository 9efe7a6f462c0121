package models

import "time"

// Review statuses an operator can assign to a submission. Any status may be
// changed to any other status.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the recognized review statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// BankAccount is one foreign account reported on a filing. USDValue is always
// derived from MaxValue and Currency; it is never entered directly.
type BankAccount struct {
	ID              string  `json:"id" bson:"id"`
	Type            string  `json:"type" bson:"type"`
	Currency        string  `json:"currency" bson:"currency"`
	AccountNumber   string  `json:"accountNumber" bson:"accountNumber"`
	MaxValue        float64 `json:"maxValue" bson:"maxValue"`
	USDValue        float64 `json:"usdValue" bson:"usdValue"`
	InstitutionName string  `json:"institutionName" bson:"institutionName"`
	MailingAddress  string  `json:"mailingAddress" bson:"mailingAddress"`
}

// Submission is a finalized filing record awaiting operator review.
type Submission struct {
	ID          string        `json:"id" bson:"_id"`
	CompanyName string        `json:"companyName" bson:"companyName"`
	Accounts    []BankAccount `json:"accounts" bson:"accounts"`
	SubmittedAt time.Time     `json:"submittedAt" bson:"submittedAt"`
	Status      string        `json:"status" bson:"status"`
}
