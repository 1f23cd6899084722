package dto

// ListRecordsResponse is the paginated envelope for GET /records.
type ListRecordsResponse struct {
	Items       []RecordItem `json:"items"`
	Page        int          `json:"page"`
	PageSize    int          `json:"pageSize"`
	TotalCount  int64        `json:"totalCount"`
	TotalPages  int          `json:"totalPages"`
	HasPrevious bool         `json:"hasPrevious"`
	HasNext     bool         `json:"hasNext"`
}

// NewListRecordsResponse assembles the envelope, deriving the page count
// and navigation flags from the total.
func NewListRecordsResponse(items []RecordItem, page, pageSize int, total int64) ListRecordsResponse {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return ListRecordsResponse{
		Items:       items,
		Page:        page,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}
