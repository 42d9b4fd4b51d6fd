package epp

// Command is a client request. One verb is populated; Extension carries at
// most one registry extension.
type Command struct {
	Login     *Login           `json:"login,omitempty"`
	Logout    *Logout          `json:"logout,omitempty"`
	Poll      *Poll            `json:"poll,omitempty"`
	Check     *Check           `json:"check,omitempty"`
	Info      *Info            `json:"info,omitempty"`
	Create    *Create          `json:"create,omitempty"`
	Update    *Update          `json:"update,omitempty"`
	Delete    *Delete          `json:"delete,omitempty"`
	Transfer  *Transfer        `json:"transfer,omitempty"`
	Extension CommandExtension `json:"-"`
	ClTRID    string           `json:"clTRID,omitempty"`
}

// Kind reports the populated verb, qualified with its object type when the
// verb has one ("domain:check", "contact:create", "login").
func (c *Command) Kind() string {
	switch {
	case c == nil:
		return ""
	case c.Login != nil:
		return "login"
	case c.Logout != nil:
		return "logout"
	case c.Poll != nil:
		return "poll"
	case c.Check != nil:
		return objectKind("check", c.Check.Contact != nil, c.Check.Domain != nil)
	case c.Info != nil:
		return objectKind("info", c.Info.Contact != nil, c.Info.Domain != nil)
	case c.Create != nil:
		return objectKind("create", c.Create.Contact != nil, c.Create.Domain != nil)
	case c.Update != nil:
		return objectKind("update", c.Update.Contact != nil, c.Update.Domain != nil)
	case c.Delete != nil:
		return objectKind("delete", c.Delete.Contact != nil, c.Delete.Domain != nil)
	case c.Transfer != nil:
		return objectKind("transfer", false, c.Transfer.Domain != nil)
	}
	return ""
}

func objectKind(verb string, contact, domain bool) string {
	switch {
	case domain:
		return PrefixDomain + ":" + verb
	case contact:
		return PrefixContact + ":" + verb
	}
	return verb
}

type Login struct {
	ClID    string        `json:"clID,omitempty"`
	Pw      string        `json:"pw,omitempty"`
	NewPW   string        `json:"newPW,omitempty"`
	Options *LoginOptions `json:"options,omitempty"`
	Svcs    *Services     `json:"svcs,omitempty"`
}

type LoginOptions struct {
	Version string `json:"version,omitempty"`
	Lang    string `json:"lang,omitempty"`
}

type Services struct {
	ObjURIs []string `json:"objURIs,omitempty"`
	ExtURIs []string `json:"extURIs,omitempty"`
}

type Logout struct{}

// Poll requests (op="req") or acknowledges (op="ack") a queued message.
type Poll struct {
	Op    string `json:"op,omitempty"`
	MsgID string `json:"msgID,omitempty"`
}

type Check struct {
	Contact *ContactCheck `json:"contact,omitempty"`
	Domain  *DomainCheck  `json:"domain,omitempty"`
}

type ContactCheck struct {
	IDs []string `json:"ids,omitempty"`
}

type DomainCheck struct {
	Names []string `json:"names,omitempty"`
}

type Info struct {
	Contact *ContactInfo `json:"contact,omitempty"`
	Domain  *DomainInfo  `json:"domain,omitempty"`
}

type ContactInfo struct {
	ID       string           `json:"id,omitempty"`
	AuthInfo *ContactAuthInfo `json:"authInfo,omitempty"`
}

// DomainInfo asks for a domain. Hosts filters the returned host data
// ("all", "del", "sub", "none").
type DomainInfo struct {
	Name     string          `json:"name,omitempty"`
	Hosts    string          `json:"hosts,omitempty"`
	AuthInfo *DomainAuthInfo `json:"authInfo,omitempty"`
}

type Create struct {
	Contact *ContactCreate `json:"contact,omitempty"`
	Domain  *DomainCreate  `json:"domain,omitempty"`
}

type ContactCreate struct {
	ID string `json:"id,omitempty"`
	ContactFields
	AuthInfo *ContactAuthInfo `json:"authInfo,omitempty"`
}

type DomainCreate struct {
	Name       string          `json:"name,omitempty"`
	Period     *int            `json:"period,omitempty"`
	PeriodUnit string          `json:"periodUnit,omitempty"`
	NS         []HostAttr      `json:"ns,omitempty"`
	Registrant string          `json:"registrant,omitempty"`
	Contacts   []ContactRef    `json:"contacts,omitempty"`
	AuthInfo   *DomainAuthInfo `json:"authInfo,omitempty"`
}

type Update struct {
	Contact *ContactUpdate `json:"contact,omitempty"`
	Domain  *DomainUpdate  `json:"domain,omitempty"`
}

type ContactUpdate struct {
	ID  string            `json:"id,omitempty"`
	Add *ContactStatusSet `json:"add,omitempty"`
	Rem *ContactStatusSet `json:"rem,omitempty"`
	Chg *ContactChange    `json:"chg,omitempty"`
}

// ContactStatusSet is the body of contact:add and contact:rem.
type ContactStatusSet struct {
	Statuses []ContactStatus `json:"statuses,omitempty"`
}

type ContactChange struct {
	ContactFields
	AuthInfo *ContactAuthInfo `json:"authInfo,omitempty"`
}

type DomainUpdate struct {
	Name string           `json:"name,omitempty"`
	Add  *DomainChangeSet `json:"add,omitempty"`
	Rem  *DomainChangeSet `json:"rem,omitempty"`
	Chg  *DomainChange    `json:"chg,omitempty"`
}

// DomainChangeSet is the body of domain:add and domain:rem.
type DomainChangeSet struct {
	NS       []HostAttr     `json:"ns,omitempty"`
	Contacts []ContactRef   `json:"contacts,omitempty"`
	Statuses []DomainStatus `json:"statuses,omitempty"`
}

type DomainChange struct {
	Registrant string          `json:"registrant,omitempty"`
	AuthInfo   *DomainAuthInfo `json:"authInfo,omitempty"`
}

type Delete struct {
	Contact *ContactDelete `json:"contact,omitempty"`
	Domain  *DomainDelete  `json:"domain,omitempty"`
}

type ContactDelete struct {
	ID string `json:"id,omitempty"`
}

type DomainDelete struct {
	Name string `json:"name,omitempty"`
}

// Transfer carries op: request, query, approve, reject or cancel.
type Transfer struct {
	Op     string          `json:"op,omitempty"`
	Domain *DomainTransfer `json:"domain,omitempty"`
}

type DomainTransfer struct {
	Name     string          `json:"name,omitempty"`
	AuthInfo *DomainAuthInfo `json:"authInfo,omitempty"`
}
