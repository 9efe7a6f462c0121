package models

import "time"

// FormState is the filer's in-progress form: a company plus one or more
// accounts. It only exists in memory and in saved drafts.
type FormState struct {
	CompanyName string        `json:"companyName" bson:"companyName"`
	Accounts    []BankAccount `json:"accounts" bson:"accounts"`
}

// Draft is a saved form snapshot retrievable by its resume code. Text fields
// are stored exactly as entered; transliteration happens at submit time.
type Draft struct {
	ID          string        `json:"id" bson:"_id"`
	ResumeCode  string        `json:"resumeCode" bson:"resumeCode"`
	CompanyName string        `json:"companyName" bson:"companyName"`
	Accounts    []BankAccount `json:"accounts" bson:"accounts"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}

// Form returns the draft's contents as form state for the resuming client.
func (d Draft) Form() FormState {
	return FormState{CompanyName: d.CompanyName, Accounts: d.Accounts}
}
