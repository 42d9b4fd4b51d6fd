package epp

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResponseExtension is the response <extension> slot.
type ResponseExtension interface {
	responseExtension()
}

// PasswdReminder warns that the login password expires on ExDate.
type PasswdReminder struct {
	ExDate *time.Time `json:"exDate,omitempty"`
}

// DnsReport is the DNS check report shared by dnsErrorMsgData and
// dnsWarningData.
type DnsReport struct {
	Version        string          `json:"version,omitempty"`
	Domain         string          `json:"domain,omitempty"`
	Status         string          `json:"status,omitempty"`
	ValidationID   string          `json:"validationId,omitempty"`
	ValidationDate *time.Time      `json:"validationDate,omitempty"`
	Nameservers    []DnsNameserver `json:"nameservers,omitempty"`
	Tests          []DnsTest       `json:"tests,omitempty"`
	Queries        []DnsQuery      `json:"queries,omitempty"`
}

type DnsNameserver struct {
	Name      string       `json:"name,omitempty"`
	Addresses []DnsAddress `json:"addresses,omitempty"`
}

type DnsAddress struct {
	Type    string `json:"type,omitempty"`
	Address string `json:"address,omitempty"`
}

// DnsTest is one named check and its per-nameserver outcome.
type DnsTest struct {
	Status      string              `json:"status,omitempty"`
	Name        string              `json:"name,omitempty"`
	Skipped     string              `json:"skipped,omitempty"`
	Nameservers []DnsTestNameserver `json:"nameservers,omitempty"`
}

type DnsTestNameserver struct {
	Status  string          `json:"status,omitempty"`
	Name    string          `json:"name,omitempty"`
	Details []DnsTestDetail `json:"details,omitempty"`
}

type DnsTestDetail struct {
	QueryID string `json:"queryId,omitempty"`
	Text    string `json:"text,omitempty"`
}

type DnsQuery struct {
	ID          string `json:"id,omitempty"`
	QueryFor    string `json:"queryFor,omitempty"`
	Type        string `json:"type,omitempty"`
	Destination string `json:"destination,omitempty"`
	Result      string `json:"result,omitempty"`
}

type DnsErrorMsgData struct {
	DnsReport
}

type DnsWarningData struct {
	DnsReport
}

type DnsWarningMsgData struct {
	ChgStatus *ChgStatusMsgData `json:"chgStatus,omitempty"`
	Warning   *DnsWarningData   `json:"warning,omitempty"`
}

// ChgStatusMsgData notifies a status change. Each target status keeps the
// element name and namespace it was sent with.
type ChgStatusMsgData struct {
	Name           string         `json:"name,omitempty"`
	TargetStatuses []TargetStatus `json:"targetStatuses,omitempty"`
}

// TargetStatus is a status element of any name in any namespace, such as
// domain:status or rgp:rgpStatus.
type TargetStatus struct {
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	StatusValue
}

type SimpleMsgData struct {
	Name string `json:"name,omitempty"`
}

type RgpInfData struct {
	Statuses []RgpStatus `json:"statuses,omitempty"`
}

type RgpStatus struct {
	StatusValue
}

type ExtconInfData struct {
	ExtconData
}

type ExtdomInfData struct {
	OwnStatuses []OwnStatus `json:"ownStatuses,omitempty"`
}

type OwnStatus struct {
	StatusValue
}

// InfNsToValidateData lists name servers still awaiting DNS validation.
type InfNsToValidateData struct {
	NsToValidate []HostAttr `json:"nsToValidate,omitempty"`
}

// CreditMsgData reports the registrar's remaining credit.
type CreditMsgData struct {
	Credit decimal.Decimal `json:"credit"`
}

type WrongNamespaceReminder struct {
	Infos []WrongNamespaceInfo `json:"infos,omitempty"`
}

type WrongNamespaceInfo struct {
	WrongNamespace string `json:"wrongNamespace,omitempty"`
	RightNamespace string `json:"rightNamespace,omitempty"`
}

type DelayedDebitAndRefundMsgData struct {
	Name      string          `json:"name,omitempty"`
	DebitDate *time.Time      `json:"debitDate,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

func (*PasswdReminder) responseExtension()               {}
func (*DnsErrorMsgData) responseExtension()              {}
func (*DnsWarningMsgData) responseExtension()            {}
func (*ChgStatusMsgData) responseExtension()             {}
func (*SimpleMsgData) responseExtension()                {}
func (*ExtconInfData) responseExtension()                {}
func (*ExtdomInfData) responseExtension()                {}
func (*RgpInfData) responseExtension()                   {}
func (*InfNsToValidateData) responseExtension()          {}
func (*CreditMsgData) responseExtension()                {}
func (*WrongNamespaceReminder) responseExtension()       {}
func (*DelayedDebitAndRefundMsgData) responseExtension() {}
