package dto

// StartBatchRequest opens a batch session under the given tag.
type StartBatchRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// BatchSessionResponse reports the currently active batch, if any.
type BatchSessionResponse struct {
	Tag    string `json:"tag,omitempty"`
	Active bool   `json:"active"`
}

// ConnectivityResponse reports the merged store connectivity state.
type ConnectivityResponse struct {
	State string `json:"state"`
}
