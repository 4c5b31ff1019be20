package dto

// Response is the envelope of every successful API response.
// @Description Standard success envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKWithMessage wraps data in a success envelope with a message.
func OKWithMessage(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}
