package epp

import "time"

// Message is the <epp> document root. One member is populated per document.
type Message struct {
	Hello    *Hello    `json:"hello,omitempty"`
	Greeting *Greeting `json:"greeting,omitempty"`
	Command  *Command  `json:"command,omitempty"`
	Response *Response `json:"response,omitempty"`
}

// Kind reports the populated member: hello, greeting, command or response.
// An empty message reports "".
func (m *Message) Kind() string {
	switch {
	case m == nil:
		return ""
	case m.Command != nil:
		return "command"
	case m.Response != nil:
		return "response"
	case m.Greeting != nil:
		return "greeting"
	case m.Hello != nil:
		return "hello"
	}
	return ""
}

// Detail reports the kind with the populated operation appended, such as
// "command/domain:check" or "response/domain:chkData".
func (m *Message) Detail() string {
	switch {
	case m == nil:
		return ""
	case m.Command != nil:
		if k := m.Command.Kind(); k != "" {
			return "command/" + k
		}
	case m.Response != nil:
		if k := m.Response.Kind(); k != "" {
			return "response/" + k
		}
	}
	return m.Kind()
}

type Hello struct{}

// Greeting is the server answer to hello and to connection setup.
type Greeting struct {
	SvID    string     `json:"svID,omitempty"`
	SvDate  *time.Time `json:"svDate,omitempty"`
	SvcMenu *SvcMenu   `json:"svcMenu,omitempty"`
}

type SvcMenu struct {
	Versions []string `json:"versions,omitempty"`
	Langs    []string `json:"langs,omitempty"`
	ObjURIs  []string `json:"objURIs,omitempty"`
	ExtURIs  []string `json:"extURIs,omitempty"`
}
