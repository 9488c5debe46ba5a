package types

type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse carries the machine-checkable reason in Error.
type ErrorResponse struct {
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}
