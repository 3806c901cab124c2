package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransportRoute is a purchasable ticket line. Type "Bus" marks bus lines,
// every other type is a train.
type TransportRoute struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Price       decimal.Decimal `json:"price"`
}

func (r TransportRoute) IsBus() bool {
	return r.Type == "Bus"
}

// Quote is the current price of a listed company
type Quote struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Change    string          `json:"change"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ServiceType string

const (
	ServicePublic    ServiceType = "PUBLIC"
	ServiceBank      ServiceType = "BANK"
	ServiceTransport ServiceType = "TRANSPORT"
	ServiceUtility   ServiceType = "UTILITY"
	ServicePhone     ServiceType = "PHONE"
)

type ServiceCategory struct {
	Title string      `json:"title"`
	Type  ServiceType `json:"type"`
	Items []string    `json:"items"`
}

// CountryService groups the public services offered by one member country
type CountryService struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Emoji       string            `json:"emoji"`
	Description string            `json:"description"`
	Services    []ServiceCategory `json:"services"`
}

// ChatMessage is one line of the social channel
type ChatMessage struct {
	ID   string `json:"id"`
	User string `json:"user"`
	Text string `json:"text"`
	Time string `json:"time"`
	Type string `json:"type"` // system or user
}
