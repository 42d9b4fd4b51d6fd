package epp

// CommandExtension is the command <extension> slot. Implemented by
// ExtconCreate, ExtconUpdate, ExtdomTrade and RgpUpdate.
type CommandExtension interface {
	commandExtension()
}

type ExtconCreate struct {
	ExtconData
}

type ExtconUpdate struct {
	ExtconData
}

// ExtdomTrade moves a domain to a new registrant inside a transfer.
type ExtdomTrade struct {
	NewRegistrant string       `json:"newRegistrant,omitempty"`
	NewAuthInfo   *NewAuthInfo `json:"newAuthInfo,omitempty"`
}

type NewAuthInfo struct {
	Pw string `json:"pw,omitempty"`
}

// RgpUpdate requests a restore of a domain in redemption. RestoreOp is
// "request" or "report".
type RgpUpdate struct {
	RestoreOp string `json:"restoreOp,omitempty"`
}

func (*ExtconCreate) commandExtension() {}
func (*ExtconUpdate) commandExtension() {}
func (*ExtdomTrade) commandExtension()  {}
func (*RgpUpdate) commandExtension()    {}
