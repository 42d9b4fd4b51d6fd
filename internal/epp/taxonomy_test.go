package epp

import (
	"testing"

	"github.com/danmuck/eppwire/internal/testutil/testlog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postal() *PostalInfo {
	return &PostalInfo{
		Type: "loc",
		Name: "Mario Rossi",
		Org:  "ACME S.p.A.",
		Addr: &Addr{
			Street: []string{"Via Roma 1", "Scala B"},
			City:   "Pisa",
			SP:     "PI",
			PC:     "56100",
			CC:     "IT",
		},
	}
}

func nameservers() []HostAttr {
	return []HostAttr{
		{HostName: "ns1.example.it", HostAddrs: []HostAddr{{IP: "v4", Address: "192.0.2.1"}, {IP: "v6", Address: "2001:db8::1"}}},
		{HostName: "ns2.other.it"},
	}
}

func TestCommandRoundTrips(t *testing.T) {
	testlog.Start(t)
	cases := map[string]*Command{
		"login": {
			Login: &Login{
				ClID:    "ACME-REG",
				Pw:      "secret",
				NewPW:   "secret2",
				Options: &LoginOptions{Version: "1.0", Lang: "it"},
				Svcs:    &Services{ObjURIs: DefaultObjURIs, ExtURIs: DefaultExtURIs},
			},
			ClTRID: "T-1",
		},
		"logout":   {Logout: &Logout{}, ClTRID: "T-2"},
		"poll req": {Poll: &Poll{Op: "req"}},
		"poll ack": {Poll: &Poll{Op: "ack", MsgID: "42"}},
		"contact check": {
			Check: &Check{Contact: &ContactCheck{IDs: []string{"C1", "C2", "C3"}}},
		},
		"domain check": {
			Check: &Check{Domain: &DomainCheck{Names: []string{"b.it", "a.it"}}},
		},
		"contact info": {
			Info: &Info{Contact: &ContactInfo{ID: "C1", AuthInfo: &ContactAuthInfo{Pw: "x"}}},
		},
		"domain info": {
			Info: &Info{Domain: &DomainInfo{Name: "example.it", Hosts: "all", AuthInfo: &DomainAuthInfo{Pw: "y"}}},
		},
		"contact create": {
			Create: &Create{Contact: &ContactCreate{
				ID: "C1",
				ContactFields: ContactFields{
					PostalInfo: postal(),
					Voice:      "+39.0501234567",
					VoiceX:     "22",
					Fax:        "+39.0507654321",
					Email:      "mario@example.it",
				},
				AuthInfo: &ContactAuthInfo{Pw: "pw"},
			}},
			Extension: &ExtconCreate{ExtconData{
				ConsentForPublishing: Ptr(true),
				Registrant:           &Registrant{NationalityCode: "IT", EntityType: Ptr(1), RegCode: "RSSMRA80A01G702Q"},
			}},
		},
		"domain create": {
			Create: &Create{Domain: &DomainCreate{
				Name:       "example.it",
				Period:     Ptr(2),
				PeriodUnit: "y",
				NS:         nameservers(),
				Registrant: "C1",
				Contacts:   []ContactRef{{Type: "admin", ID: "C2"}, {Type: "tech", ID: "C3"}},
				AuthInfo:   &DomainAuthInfo{Pw: "pw"},
			}},
		},
		"contact update": {
			Update: &Update{Contact: &ContactUpdate{
				ID:  "C1",
				Add: &ContactStatusSet{Statuses: []ContactStatus{{StatusValue{S: "clientDeleteProhibited"}}}},
				Rem: &ContactStatusSet{Statuses: []ContactStatus{{StatusValue{S: "clientUpdateProhibited", Lang: "en", Text: "done"}}}},
				Chg: &ContactChange{ContactFields: ContactFields{Email: "new@example.it"}, AuthInfo: &ContactAuthInfo{Pw: "n"}},
			}},
			Extension: &ExtconUpdate{ExtconData{ConsentForPublishing: Ptr(false)}},
		},
		"domain update": {
			Update: &Update{Domain: &DomainUpdate{
				Name: "example.it",
				Add:  &DomainChangeSet{NS: nameservers(), Statuses: []DomainStatus{{StatusValue{S: "clientHold"}}}},
				Rem:  &DomainChangeSet{Contacts: []ContactRef{{Type: "tech", ID: "C3"}}},
				Chg:  &DomainChange{Registrant: "C9", AuthInfo: &DomainAuthInfo{Pw: "z"}},
			}},
		},
		"domain restore": {
			Update:    &Update{Domain: &DomainUpdate{Name: "example.it"}},
			Extension: &RgpUpdate{RestoreOp: "request"},
		},
		"contact delete": {Delete: &Delete{Contact: &ContactDelete{ID: "C1"}}},
		"domain delete":  {Delete: &Delete{Domain: &DomainDelete{Name: "example.it"}}},
		"domain transfer trade": {
			Transfer: &Transfer{Op: "request", Domain: &DomainTransfer{Name: "example.it", AuthInfo: &DomainAuthInfo{Pw: "old"}}},
			Extension: &ExtdomTrade{
				NewRegistrant: "C7",
				NewAuthInfo:   &NewAuthInfo{Pw: "fresh"},
			},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, command(c))
		})
	}
}

func TestCommandElementNames(t *testing.T) {
	testlog.Start(t)
	m := command(&Command{Update: &Update{Domain: &DomainUpdate{
		Name: "example.it",
		Add:  &DomainChangeSet{Statuses: []DomainStatus{{StatusValue{S: "clientHold"}}}},
		Rem:  &DomainChangeSet{Statuses: []DomainStatus{{StatusValue{S: "clientHold"}}}},
		Chg:  &DomainChange{Registrant: "C9"},
	}}})
	_, out := roundTrip(t, m)
	assert.Contains(t, out, "<domain:add>")
	assert.Contains(t, out, "<domain:rem>")
	assert.Contains(t, out, "<domain:chg>")

	m = command(&Command{Update: &Update{Contact: &ContactUpdate{
		ID:  "C1",
		Chg: &ContactChange{ContactFields: ContactFields{Voice: "+39.1", VoiceX: "9"}},
	}}})
	_, out = roundTrip(t, m)
	assert.Contains(t, out, "<contact:chg>")
	assert.Contains(t, out, `<contact:voice x="9">+39.1</contact:voice>`)
}

func TestDomainCreateDefaults(t *testing.T) {
	testlog.Start(t)
	create := NewDomainCreate("example.it", 1)
	assert.Equal(t, "y", create.PeriodUnit)
	_, out := roundTrip(t, command(&Command{Create: &Create{Domain: create}}))
	assert.Contains(t, out, `<domain:period unit="y">1</domain:period>`)
}

func TestResponseRoundTrips(t *testing.T) {
	testlog.Start(t)
	cases := map[string]*Response{
		"result with ext value": {
			Result: &Result{
				Code: 2308,
				Msgs: map[string]string{"en": "Data management policy violation"},
				ExtValue: &ExtValue{
					ReasonCode: Ptr(8004),
					Reasons:    map[string]string{"en": "Registrant is not eligible", "it": "Registrante non idoneo"},
				},
			},
		},
		"message queue": {
			Result: &Result{Code: 1301, Msgs: map[string]string{"en": "Command completed successfully; ack to dequeue"}},
			MsgQ:   &MsgQ{Count: 5, ID: "12", QDate: at(t, "2024-05-01T10:00:00+02:00"), Msgs: map[string]string{"en": "Credit low"}},
			Extension: &CreditMsgData{
				Credit: decimal.RequireFromString("1500.75"),
			},
		},
		"contact chkData": {
			ResData: &ResData{ContactChkData: &ContactChkData{CDs: []ContactCD{
				{ID: "C1", Avail: true},
				{ID: "C2", Avail: false, Reasons: map[string]string{"en": "In use"}},
			}}},
		},
		"contact creData": {
			ResData: &ResData{ContactCreData: &ContactCreData{ID: "C1", CrDate: at(t, "2024-01-02T03:04:05Z")}},
		},
		"contact infData": {
			ResData: &ResData{ContactInfData: &ContactInfData{
				ID:       "C1",
				ROID:     "C1-ITNIC",
				Statuses: []ContactStatus{{StatusValue{S: "ok", Lang: "en"}}, {StatusValue{S: "linked"}}},
				ContactFields: ContactFields{
					PostalInfo: postal(),
					Voice:      "+39.0501234567",
					Email:      "mario@example.it",
				},
				ClID:     "ACME-REG",
				CrID:     "ACME-REG",
				CrDate:   at(t, "2020-01-01T00:00:00Z"),
				UpID:     "ACME-REG",
				UpDate:   at(t, "2024-02-03T04:05:06.789Z"),
				AuthInfo: &ContactAuthInfo{Pw: "pw"},
			}},
			Extension: &ExtconInfData{ExtconData{
				ConsentForPublishing: Ptr(true),
				Registrant:           &Registrant{NationalityCode: "IT", EntityType: Ptr(2), RegCode: "01234567890"},
			}},
		},
		"domain chkData": {
			ResData: &ResData{DomainChkData: &DomainChkData{CDs: []DomainCD{
				{Name: "free.it", Avail: true},
				{Name: "taken.it", Reasons: map[string]string{"en": "In use"}},
			}}},
		},
		"domain creData": {
			ResData: &ResData{DomainCreData: &DomainCreData{
				Name:   "example.it",
				CrDate: at(t, "2024-01-01T00:00:00Z"),
				ExDate: at(t, "2026-01-01T00:00:00Z"),
			}},
		},
		"domain infData": {
			ResData: &ResData{DomainInfData: &DomainInfData{
				Name:       "example.it",
				ROID:       "D1-ITNIC",
				Statuses:   []DomainStatus{{StatusValue{S: "ok"}}},
				Registrant: "C1",
				Contacts:   []ContactRef{{Type: "admin", ID: "C2"}},
				NS:         nameservers(),
				ClID:       "ACME-REG",
				CrDate:     at(t, "2020-01-01T00:00:00Z"),
				ExDate:     at(t, "2026-01-01T00:00:00Z"),
				AuthInfo:   &DomainAuthInfo{Pw: "pw"},
			}},
			Extension: &ExtdomInfData{OwnStatuses: []OwnStatus{{StatusValue{S: "inactive/dnsHold"}}}},
		},
		"domain trnData": {
			ResData: &ResData{DomainTrnData: &DomainTrnData{
				Name:     "example.it",
				TrStatus: "pending",
				ReID:     "NEW-REG",
				ReDate:   at(t, "2024-03-01T00:00:00Z"),
				AcID:     "ACME-REG",
				AcDate:   at(t, "2024-03-06T00:00:00Z"),
			}},
		},
		"passwd reminder": {
			Extension: &PasswdReminder{ExDate: at(t, "2024-12-31T23:59:59+01:00")},
		},
		"dns error": {
			Extension: &DnsErrorMsgData{dnsReport(t)},
		},
		"dns warning": {
			Extension: &DnsWarningMsgData{
				ChgStatus: chgStatus(),
				Warning:   &DnsWarningData{dnsReport(t)},
			},
		},
		"chg status": {
			Extension: chgStatus(),
		},
		"simple msg": {
			Extension: &SimpleMsgData{Name: "example.it"},
		},
		"rgp infData": {
			Extension: &RgpInfData{Statuses: []RgpStatus{{StatusValue{S: "redemptionPeriod"}}}},
		},
		"ns to validate": {
			Extension: &InfNsToValidateData{NsToValidate: nameservers()},
		},
		"wrong namespace": {
			Extension: &WrongNamespaceReminder{Infos: []WrongNamespaceInfo{
				{WrongNamespace: "http://www.nic.it/ITNIC-EPP/extepp-1.0", RightNamespace: NSExtEPP},
				{WrongNamespace: "http://www.nic.it/ITNIC-EPP/extdom-1.0", RightNamespace: NSExtDom},
			}},
		},
		"delayed debit": {
			Extension: &DelayedDebitAndRefundMsgData{
				Name:      "example.it",
				DebitDate: at(t, "2024-04-01T00:00:00Z"),
				Amount:    decimal.RequireFromString("-4.5"),
			},
		},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, response(r))
		})
	}
}

func dnsReport(t *testing.T) DnsReport {
	return DnsReport{
		Version:        "2.0",
		Domain:         "example.it",
		Status:         "FAILED",
		ValidationID:   "V-1",
		ValidationDate: at(t, "2024-06-01T09:00:00Z"),
		Nameservers: []DnsNameserver{
			{Name: "ns1.example.it.", Addresses: []DnsAddress{{Type: "IPv4", Address: "192.0.2.1"}}},
		},
		Tests: []DnsTest{
			{Status: "SUCCEEDED", Name: "NameserversResolvableTest"},
			{Status: "FAILED", Name: "SOAMasterCompareTest", Skipped: "false", Nameservers: []DnsTestNameserver{
				{Status: "FAILED", Name: "ns1.example.it.", Details: []DnsTestDetail{{QueryID: "q1", Text: "serial mismatch"}}},
			}},
		},
		Queries: []DnsQuery{
			{ID: "q1", QueryFor: "example.it.", Type: "SOA", Destination: "ns1.example.it.", Result: "NOERROR"},
		},
	}
}

func chgStatus() *ChgStatusMsgData {
	return &ChgStatusMsgData{
		Name: "example.it",
		TargetStatuses: []TargetStatus{
			{Name: "status", Namespace: PrefixDomain, StatusValue: StatusValue{S: "ok", Lang: "en"}},
			{Name: "rgpStatus", Namespace: PrefixRGP, StatusValue: StatusValue{S: "redemptionPeriod"}},
			{Name: "ownStatus", Namespace: PrefixExtDom, StatusValue: StatusValue{S: "inactive/bankruptcy"}},
		},
	}
}

func TestGreetingAndHelloRoundTrip(t *testing.T) {
	testlog.Start(t)
	roundTrip(t, NewHello())
	roundTrip(t, &Message{Greeting: &Greeting{
		SvID:   "ITNIC EPP Server",
		SvDate: at(t, "2024-05-01T10:00:00.5+02:00"),
		SvcMenu: &SvcMenu{
			Versions: []string{"1.0"},
			Langs:    []string{"en", "it"},
			ObjURIs:  DefaultObjURIs,
			ExtURIs:  DefaultExtURIs,
		},
	}})
}

func TestChgStatusKeepsTargetNamespaces(t *testing.T) {
	testlog.Start(t)
	got, out := roundTrip(t, response(&Response{Extension: chgStatus()}))
	assert.Contains(t, out, `<domain:status s="ok" lang="en"/>`)
	assert.Contains(t, out, `<rgp:rgpStatus s="redemptionPeriod"/>`)
	data, ok := got.Response.Extension.(*ChgStatusMsgData)
	require.True(t, ok)
	require.Len(t, data.TargetStatuses, 3)
	assert.Equal(t, PrefixExtDom, data.TargetStatuses[2].Namespace)
}
