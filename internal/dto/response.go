package dto

// Response is the envelope every API endpoint returns.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK builds a success envelope.
func OK(message string, data any) Response {
	return Response{Status: true, Message: message, Data: data}
}

// Fail builds a failure envelope. Data is always null on failure.
func Fail(message string) Response {
	return Response{Status: false, Message: message, Data: nil}
}
