package models

import "time"

// User is an operator account for the review console. The email doubles as
// the document id, so a duplicate registration fails on insert.
type User struct {
	ID       string    `json:"id" bson:"_id"`
	Name     string    `json:"name" bson:"name"`
	Email    string    `json:"email" bson:"email"`
	Password string    `json:"password,omitempty" bson:"password"`
	Disabled bool      `json:"disabled" bson:"disabled"`
	Created  time.Time `json:"created" bson:"created"`
}
