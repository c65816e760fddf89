package request

type CreateTableRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateTableRequest is a patch body: absent fields leave the column alone.
type UpdateTableRequest struct {
	Name     *string `json:"name,omitempty"`
	Occupied *bool   `json:"occupied,omitempty"`
}
