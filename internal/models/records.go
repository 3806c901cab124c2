package models

import "github.com/shopspring/decimal"

// Message is an inbox notification. Read only ever goes from false to true.
type Message struct {
	ID      string `json:"id"`
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Preview string `json:"preview"`
	Date    string `json:"date"`
	Read    bool   `json:"read"`
	IsLegal bool   `json:"isLegal"`
}

type Document struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"` // ID, HEALTH, DRIVING
	Number string `json:"number"`
	Expiry string `json:"expiry"`
}

type InsurancePolicy struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Type   string `json:"type"` // VIDA, AUTO, HOGAR
	Status string `json:"status"`
	Expiry string `json:"expiry"`
}

type Parcel struct {
	ID          string `json:"id"`
	Tracking    string `json:"tracking"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type UtilityContract struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"` // LUZ, GAS, SIM
	Provider    string          `json:"provider"`
	Status      string          `json:"status"`
	Details     string          `json:"details"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
}
