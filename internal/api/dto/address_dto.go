package dto

// DeleteAddressRequest identifies the address book position to remove.
type DeleteAddressRequest struct {
	Index int `json:"index"`
}
