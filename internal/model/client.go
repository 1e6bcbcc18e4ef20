package model

import "time"

// Client represents a hotel guest record as stored in the `clients`
// table. Identity is immutable once created; the contact fields
// (email, phone) may be updated later. Email is unique across the
// table. The json tags follow the public API contract used by the
// handlers.
//
// Fields:
//  ID        – primary key identifier of the client.
//  FirstName – given name of the guest.
//  LastName  – family name of the guest.
//  Email     – unique email address.
//  Phone     – contact phone number.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Client struct {
	ID        uint64    `json:"id"`         // clients.id
	FirstName string    `json:"first_name"` // clients.first_name
	LastName  string    `json:"last_name"`  // clients.last_name
	Email     string    `json:"email"`      // clients.email
	Phone     string    `json:"phone"`      // clients.phone
	CreatedAt time.Time `json:"created_at"` // clients.created_at
	UpdatedAt time.Time `json:"updated_at"` // clients.updated_at
}
