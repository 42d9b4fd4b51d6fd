package epp

import "time"

// ResData holds the object-specific response payload. Members are
// independent; a well-formed response populates one.
type ResData struct {
	ContactChkData *ContactChkData `json:"contactChkData,omitempty"`
	ContactCreData *ContactCreData `json:"contactCreData,omitempty"`
	ContactInfData *ContactInfData `json:"contactInfData,omitempty"`
	DomainChkData  *DomainChkData  `json:"domainChkData,omitempty"`
	DomainCreData  *DomainCreData  `json:"domainCreData,omitempty"`
	DomainInfData  *DomainInfData  `json:"domainInfData,omitempty"`
	DomainTrnData  *DomainTrnData  `json:"domainTrnData,omitempty"`
}

// Kind reports the element name of the first populated member.
func (d *ResData) Kind() string {
	switch {
	case d == nil:
		return ""
	case d.ContactChkData != nil:
		return "contact:chkData"
	case d.ContactCreData != nil:
		return "contact:creData"
	case d.ContactInfData != nil:
		return "contact:infData"
	case d.DomainChkData != nil:
		return "domain:chkData"
	case d.DomainCreData != nil:
		return "domain:creData"
	case d.DomainInfData != nil:
		return "domain:infData"
	case d.DomainTrnData != nil:
		return "domain:trnData"
	}
	return ""
}

type ContactChkData struct {
	CDs []ContactCD `json:"cds,omitempty"`
}

// ContactCD is one contact check result.
type ContactCD struct {
	ID      string            `json:"id,omitempty"`
	Avail   bool              `json:"avail"`
	Reasons map[string]string `json:"reasons,omitempty"`
}

type DomainChkData struct {
	CDs []DomainCD `json:"cds,omitempty"`
}

// DomainCD is one domain check result. Reasons explains an unavailable name.
type DomainCD struct {
	Name    string            `json:"name,omitempty"`
	Avail   bool              `json:"avail"`
	Reasons map[string]string `json:"reasons,omitempty"`
}

type ContactCreData struct {
	ID     string     `json:"id,omitempty"`
	CrDate *time.Time `json:"crDate,omitempty"`
}

type ContactInfData struct {
	ID       string          `json:"id,omitempty"`
	ROID     string          `json:"roid,omitempty"`
	Statuses []ContactStatus `json:"statuses,omitempty"`
	ContactFields
	ClID     string           `json:"clID,omitempty"`
	CrID     string           `json:"crID,omitempty"`
	CrDate   *time.Time       `json:"crDate,omitempty"`
	UpID     string           `json:"upID,omitempty"`
	UpDate   *time.Time       `json:"upDate,omitempty"`
	AuthInfo *ContactAuthInfo `json:"authInfo,omitempty"`
}

type DomainCreData struct {
	Name   string     `json:"name,omitempty"`
	CrDate *time.Time `json:"crDate,omitempty"`
	ExDate *time.Time `json:"exDate,omitempty"`
}

type DomainInfData struct {
	Name       string          `json:"name,omitempty"`
	ROID       string          `json:"roid,omitempty"`
	Statuses   []DomainStatus  `json:"statuses,omitempty"`
	Registrant string          `json:"registrant,omitempty"`
	Contacts   []ContactRef    `json:"contacts,omitempty"`
	NS         []HostAttr      `json:"ns,omitempty"`
	ClID       string          `json:"clID,omitempty"`
	CrID       string          `json:"crID,omitempty"`
	CrDate     *time.Time      `json:"crDate,omitempty"`
	UpID       string          `json:"upID,omitempty"`
	UpDate     *time.Time      `json:"upDate,omitempty"`
	ExDate     *time.Time      `json:"exDate,omitempty"`
	TrDate     *time.Time      `json:"trDate,omitempty"`
	AuthInfo   *DomainAuthInfo `json:"authInfo,omitempty"`
}

type DomainTrnData struct {
	Name     string     `json:"name,omitempty"`
	TrStatus string     `json:"trStatus,omitempty"`
	ReID     string     `json:"reID,omitempty"`
	ReDate   *time.Time `json:"reDate,omitempty"`
	AcID     string     `json:"acID,omitempty"`
	AcDate   *time.Time `json:"acDate,omitempty"`
	ExDate   *time.Time `json:"exDate,omitempty"`
}
