package models

import "github.com/shopspring/decimal"

// SessionUser is the authenticated identity together with its mutable
// financial and notification state. Only the ledger writes Balance,
// Transactions and the read flag of Messages.
type SessionUser struct {
	ID           string            `json:"id"`
	Handle       string            `json:"handle"`
	Name         string            `json:"name"`
	Country      string            `json:"country"`
	Rank         string            `json:"rank"`
	Balance      decimal.Decimal   `json:"balance"`
	AvatarColor  string            `json:"avatarColor"`
	Bio          string            `json:"bio"`
	Transactions []Transaction     `json:"transactions"`
	Messages     []Message         `json:"messages"`
	Documents    []Document        `json:"documents"`
	Policies     []InsurancePolicy `json:"policies"`
	Parcels      []Parcel          `json:"parcels"`
	Utilities    []UtilityContract `json:"utilities"`
}

// Clone returns a copy that shares no slices with u.
func (u SessionUser) Clone() SessionUser {
	c := u
	c.Transactions = cloneSlice(u.Transactions)
	c.Messages = cloneSlice(u.Messages)
	c.Documents = cloneSlice(u.Documents)
	c.Policies = cloneSlice(u.Policies)
	c.Parcels = cloneSlice(u.Parcels)
	c.Utilities = cloneSlice(u.Utilities)
	return c
}

// every element type held by SessionUser is a flat value, so a slice copy is deep
func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Profile is the public view of a leader used by the ranking board
type Profile struct {
	ID          string          `json:"id"`
	Handle      string          `json:"handle"`
	Name        string          `json:"name"`
	Country     string          `json:"country"`
	Rank        string          `json:"rank"`
	Balance     decimal.Decimal `json:"balance"`
	AvatarColor string          `json:"avatarColor"`
}

func (u SessionUser) Profile() Profile {
	return Profile{
		ID:          u.ID,
		Handle:      u.Handle,
		Name:        u.Name,
		Country:     u.Country,
		Rank:        u.Rank,
		Balance:     u.Balance,
		AvatarColor: u.AvatarColor,
	}
}
