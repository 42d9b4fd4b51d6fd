package epp

// HostAttr is a name server with optional glue addresses.
type HostAttr struct {
	HostName  string     `json:"hostName,omitempty"`
	HostAddrs []HostAddr `json:"hostAddrs,omitempty"`
}

// HostAddr is one glue address. IP is "v4" or "v6".
type HostAddr struct {
	IP      string `json:"ip,omitempty"`
	Address string `json:"address,omitempty"`
}

// ContactRef links a contact handle to a domain in a role such as admin or
// tech.
type ContactRef struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
}

type DomainAuthInfo struct {
	Pw string `json:"pw,omitempty"`
}

type ContactAuthInfo struct {
	Pw string `json:"pw,omitempty"`
}

type PostalInfo struct {
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
	Org  string `json:"org,omitempty"`
	Addr *Addr  `json:"addr,omitempty"`
}

type Addr struct {
	Street []string `json:"street,omitempty"`
	City   string   `json:"city,omitempty"`
	SP     string   `json:"sp,omitempty"`
	PC     string   `json:"pc,omitempty"`
	CC     string   `json:"cc,omitempty"`
}

// ContactFields is the contact data shared by create, chg and infData.
type ContactFields struct {
	PostalInfo *PostalInfo `json:"postalInfo,omitempty"`
	Voice      string      `json:"voice,omitempty"`
	VoiceX     string      `json:"voiceX,omitempty"`
	Fax        string      `json:"fax,omitempty"`
	Email      string      `json:"email,omitempty"`
}

// StatusValue is an object status: the status token in S, an optional
// free-text reason and its language.
type StatusValue struct {
	S    string `json:"s,omitempty"`
	Lang string `json:"lang,omitempty"`
	Text string `json:"text,omitempty"`
}

type ContactStatus struct {
	StatusValue
}

type DomainStatus struct {
	StatusValue
}

// Registrant is the .it registrant profile carried by extcon.
type Registrant struct {
	NationalityCode string `json:"nationalityCode,omitempty"`
	EntityType      *int   `json:"entityType,omitempty"`
	RegCode         string `json:"regCode,omitempty"`
}

// ExtconData is shared by extcon:create, extcon:update and extcon:infData.
type ExtconData struct {
	ConsentForPublishing *bool       `json:"consentForPublishing,omitempty"`
	Registrant           *Registrant `json:"registrant,omitempty"`
}

// Ptr returns a pointer to v. Handy for optional scalar fields.
func Ptr[T any](v T) *T { return &v }

