package epp

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// Variant is the JSON form of an extension slot: the element name of the
// populated variant and its data.
type Variant struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

var commandExtensions = map[string]func() CommandExtension{
	"extcon:create": func() CommandExtension { return &ExtconCreate{} },
	"extcon:update": func() CommandExtension { return &ExtconUpdate{} },
	"extdom:trade":  func() CommandExtension { return &ExtdomTrade{} },
	"rgp:update":    func() CommandExtension { return &RgpUpdate{} },
}

var responseExtensions = map[string]func() ResponseExtension{
	"extepp:passwdReminder":              func() ResponseExtension { return &PasswdReminder{} },
	"extdom:dnsErrorMsgData":             func() ResponseExtension { return &DnsErrorMsgData{} },
	"extdom:dnsWarningMsgData":           func() ResponseExtension { return &DnsWarningMsgData{} },
	"extdom:chgStatusMsgData":            func() ResponseExtension { return &ChgStatusMsgData{} },
	"extdom:simpleMsgData":               func() ResponseExtension { return &SimpleMsgData{} },
	"extcon:infData":                     func() ResponseExtension { return &ExtconInfData{} },
	"extdom:infData":                     func() ResponseExtension { return &ExtdomInfData{} },
	"rgp:infData":                        func() ResponseExtension { return &RgpInfData{} },
	"extdom:infNsToValidateData":         func() ResponseExtension { return &InfNsToValidateData{} },
	"extepp:creditMsgData":               func() ResponseExtension { return &CreditMsgData{} },
	"extepp:wrongNamespaceReminder":      func() ResponseExtension { return &WrongNamespaceReminder{} },
	"extdom:delayedDebitAndRefundMsgData": func() ResponseExtension { return &DelayedDebitAndRefundMsgData{} },
}

func (c Command) MarshalJSON() ([]byte, error) {
	type plain Command
	ext, err := toVariant(c.Extension)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		Extension *Variant `json:"extension,omitempty"`
	}{plain(c), ext})
}

func (c *Command) UnmarshalJSON(data []byte) error {
	type plain Command
	var aux struct {
		plain
		Extension *Variant `json:"extension,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Command(aux.plain)
	if aux.Extension == nil {
		return nil
	}
	factory, ok := commandExtensions[aux.Extension.Kind]
	if !ok {
		return fmt.Errorf("epp: unknown command extension %q", aux.Extension.Kind)
	}
	ext := factory()
	if err := json.Unmarshal(aux.Extension.Data, ext); err != nil {
		return fmt.Errorf("epp: command extension %s: %w", aux.Extension.Kind, err)
	}
	c.Extension = ext
	return nil
}

func (r Response) MarshalJSON() ([]byte, error) {
	type plain Response
	ext, err := toVariant(r.Extension)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		Extension *Variant `json:"extension,omitempty"`
	}{plain(r), ext})
}

func (r *Response) UnmarshalJSON(data []byte) error {
	type plain Response
	var aux struct {
		plain
		Extension *Variant `json:"extension,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Response(aux.plain)
	if aux.Extension == nil {
		return nil
	}
	factory, ok := responseExtensions[aux.Extension.Kind]
	if !ok {
		return fmt.Errorf("epp: unknown response extension %q", aux.Extension.Kind)
	}
	ext := factory()
	if err := json.Unmarshal(aux.Extension.Data, ext); err != nil {
		return fmt.Errorf("epp: response extension %s: %w", aux.Extension.Kind, err)
	}
	r.Extension = ext
	return nil
}

// toVariant wraps a populated extension slot. The kind is the variant's
// registered element name.
func toVariant(ext any) (*Variant, error) {
	if emptyExtension(ext) {
		return nil, nil
	}
	mt, ok := Schema().Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("epp: %T is not a registered extension", ext)
	}
	data, err := json.Marshal(ext)
	if err != nil {
		return nil, err
	}
	return &Variant{Kind: mt.Name.String(), Data: data}, nil
}

// emptyExtension reports whether an extension slot holds nothing, including
// a typed nil pointer.
func emptyExtension(ext any) bool {
	if ext == nil {
		return true
	}
	v := reflect.ValueOf(ext)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// MarshalMessage renders m as indented JSON.
func MarshalMessage(m *Message) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// UnmarshalMessage reads the JSON form of a message.
func UnmarshalMessage(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("epp: decode json message: %w", err)
	}
	return &m, nil
}
