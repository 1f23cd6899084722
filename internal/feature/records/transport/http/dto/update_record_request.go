package dto

// UpdateRecordReq represents the request body for PUT /records/:id.
// Fields left out of the JSON body stay nil and keep their stored values;
// supplied fields, including empty strings, are merged and re-validated.
type UpdateRecordReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Age   *int    `json:"age"`
	Phone *string `json:"phone"`
}
