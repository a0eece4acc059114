package transport

// TaskCreateRequest is the creation payload. Title is required,
// description optional.
type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskUpdateRequest is the partial-update payload. Nil pointers mark
// fields that were absent from the request body.
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (r TaskUpdateRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Completed == nil
}
