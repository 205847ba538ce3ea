package models

// Envelope is the uniform response shape for every read and mutation.
// Status duplicates the HTTP status so form-action style clients can branch
// on the body alone.
type Envelope struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int64      `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func OK(message string, data interface{}) Envelope {
	return Envelope{Status: 200, Success: true, Message: message, Data: data}
}

func OKCount(message string, data interface{}, count int64) Envelope {
	return Envelope{Status: 200, Success: true, Message: message, Data: data, Count: &count}
}

func Created(message string, data interface{}) Envelope {
	return Envelope{Status: 201, Success: true, Message: message, Data: data}
}

func Fail(status int, message string, err string) Envelope {
	return Envelope{Status: status, Success: false, Message: message, Error: err}
}
