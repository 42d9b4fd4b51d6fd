package epp

// Default object URIs announced at login.
var DefaultObjURIs = []string{NSContact, NSDomain}

// Default extension URIs announced at login.
var DefaultExtURIs = []string{NSExtEPP, NSExtCon, NSExtDom, NSRGP}

func NewHello() *Message {
	return &Message{Hello: &Hello{}}
}

// NewLogin builds a login command announcing the standard object and
// extension services.
func NewLogin(clID, pw, version, lang, clTRID string) *Message {
	return &Message{Command: &Command{
		Login: &Login{
			ClID:    clID,
			Pw:      pw,
			Options: &LoginOptions{Version: version, Lang: lang},
			Svcs: &Services{
				ObjURIs: append([]string(nil), DefaultObjURIs...),
				ExtURIs: append([]string(nil), DefaultExtURIs...),
			},
		},
		ClTRID: clTRID,
	}}
}

func NewLogout(clTRID string) *Message {
	return &Message{Command: &Command{Logout: &Logout{}, ClTRID: clTRID}}
}

// NewPoll builds a poll request, or an acknowledgement when msgID is set.
func NewPoll(msgID, clTRID string) *Message {
	poll := &Poll{Op: "req"}
	if msgID != "" {
		poll = &Poll{Op: "ack", MsgID: msgID}
	}
	return &Message{Command: &Command{Poll: poll, ClTRID: clTRID}}
}

func NewDomainCheck(clTRID string, names ...string) *Message {
	return &Message{Command: &Command{
		Check:  &Check{Domain: &DomainCheck{Names: names}},
		ClTRID: clTRID,
	}}
}

func NewContactCheck(clTRID string, ids ...string) *Message {
	return &Message{Command: &Command{
		Check:  &Check{Contact: &ContactCheck{IDs: ids}},
		ClTRID: clTRID,
	}}
}

// NewDomainCreate returns a domain create for a registration period in years.
func NewDomainCreate(name string, years int) *DomainCreate {
	return &DomainCreate{
		Name:       name,
		Period:     Ptr(years),
		PeriodUnit: "y",
	}
}
