// Package dto defines data transfer objects for the records feature's HTTP transport layer.
package dto

// CreateRecordReq represents the request body for POST /records.
// Field constraints are enforced by the domain validation rules, which
// report every violation at once rather than failing on the first tag.
type CreateRecordReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
	Phone string `json:"phone"`
}
