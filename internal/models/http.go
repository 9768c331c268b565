package models

// FetchRequest is the transport-neutral HTTP request contract shared by the
// built-in client and the subprocess transport.
type FetchRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// FetchResponse carries the upstream status code and raw body. Status mapping
// to protocol errors is the caller's concern, not the transport's.
type FetchResponse struct {
	StatusCode int
	Body       []byte
}
