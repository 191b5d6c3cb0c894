package api

import "time"

type Export struct {
	ExportDate   time.Time     `json:"exportDate"`
	Members      []Member      `json:"members"`
	Commissions  []Commission  `json:"commissions"`
	Events       []Event       `json:"events"`
	Cotisations  []Cotisation  `json:"cotisations"`
	Transactions []Transaction `json:"transactions"`
}

type ArchiveRequest struct {
	Code string `json:"code" validate:"required"`
}

type ArchiveResponse struct {
	Export Export `json:"export"`
}

type ResetRequest struct {
	Code string `json:"code" validate:"required"`
}

type ResetResponse struct{}

type UpdateSecurityCodesRequest struct {
	ArchiveCode string `json:"archiveCode" validate:"required,min=4,max=64"`
	ResetCode   string `json:"resetCode" validate:"required,min=4,max=64"`
}

type UpdateSecurityCodesResponse struct{}
