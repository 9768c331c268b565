package models

// TxRequest is an unsigned transaction skeleton. Ownership passes entirely to
// the caller, which is responsible for signing and broadcasting.
type TxRequest struct {
	To      string `json:"to"`
	Value   string `json:"value"`
	Data    string `json:"data"`
	ChainID string `json:"chainId,omitempty"`
}
