// Package wsbridge forwards control transfers over a websocket so a
// programmer attached to one machine can be driven from another.
package wsbridge

// DefaultURL is where the client dials when no name is given.
const DefaultURL = "ws://localhost:8765/inlretro"

// maxLength bounds one control transfer's response.
const maxLength = 254

type request struct {
	Request uint8  `json:"r"`
	Value   uint16 `json:"v"`
	Index   uint16 `json:"i"`
	Length  int    `json:"n"`
}

type response struct {
	Data  []byte `json:"d,omitempty"`
	N     int    `json:"n"`
	Error string `json:"e,omitempty"`
	// Gone reports that the device was disconnected.
	Gone bool `json:"g,omitempty"`
}
