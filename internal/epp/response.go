package epp

import "time"

// Response is a server reply.
type Response struct {
	Result    *Result           `json:"result,omitempty"`
	MsgQ      *MsgQ             `json:"msgQ,omitempty"`
	ResData   *ResData          `json:"resData,omitempty"`
	Extension ResponseExtension `json:"-"`
	ClTRID    string            `json:"clTRID,omitempty"`
	SvTRID    string            `json:"svTRID,omitempty"`
}

// Succeeded reports a result code in the 1xxx range.
func (r *Response) Succeeded() bool {
	return r != nil && r.Result != nil && r.Result.Code >= 1000 && r.Result.Code < 2000
}

// Kind reports the populated resData member ("domain:chkData"), else the
// extension element name, else "result".
func (r *Response) Kind() string {
	if r == nil {
		return ""
	}
	if k := r.ResData.Kind(); k != "" {
		return k
	}
	if !emptyExtension(r.Extension) {
		if mt, ok := Schema().Lookup(r.Extension); ok {
			return mt.Name.String()
		}
	}
	if r.Result != nil {
		return "result"
	}
	return ""
}

// Result carries the outcome code and its human-readable messages keyed by
// language.
type Result struct {
	Code     int               `json:"code"`
	Msgs     map[string]string `json:"msgs,omitempty"`
	ExtValue *ExtValue         `json:"extValue,omitempty"`
}

// ExtValue is the .it extended reason: a registry reason code and its
// localized text.
type ExtValue struct {
	ReasonCode *int              `json:"reasonCode,omitempty"`
	Reasons    map[string]string `json:"reasons,omitempty"`
}

// MsgQ describes the poll queue: its size and the head message.
type MsgQ struct {
	Count int               `json:"count"`
	ID    string            `json:"id,omitempty"`
	QDate *time.Time        `json:"qDate,omitempty"`
	Msgs  map[string]string `json:"msgs,omitempty"`
}
