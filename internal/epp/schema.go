package epp

import (
	"sync"

	"github.com/danmuck/eppwire/internal/protocol"
)

var (
	schemaOnce sync.Once
	schema     *protocol.Registry
)

// Schema returns the compiled EPP registry. The first call compiles every
// declaration below and panics on an inconsistent one.
func Schema() *protocol.Registry {
	schemaOnce.Do(func() {
		r := protocol.NewRegistry(Namespaces(), nil)
		if err := r.Register(Definitions()...); err != nil {
			panic(err)
		}
		schema = r.MustCompile()
	})
	return schema
}

// Definitions returns every message declaration of the taxonomy.
func Definitions() []protocol.MessageDef {
	var defs []protocol.MessageDef
	defs = append(defs, rootDefs()...)
	defs = append(defs, sharedDefs()...)
	defs = append(defs, commandDefs()...)
	defs = append(defs, commandExtensionDefs()...)
	defs = append(defs, responseDefs()...)
	defs = append(defs, resDataDefs()...)
	defs = append(defs, responseExtensionDefs()...)
	return defs
}

func rootDefs() []protocol.MessageDef {
	return []protocol.MessageDef{
		protocol.Message(Message{}, "epp",
			protocol.Child("Hello"),
			protocol.Child("Greeting"),
			protocol.Child("Command"),
			protocol.Child("Response"),
		),
		protocol.Message(Hello{}, "hello"),
		protocol.Message(Greeting{}, "greeting",
			protocol.Text("SvID", "svID"),
			protocol.Text("SvDate", "svDate"),
			protocol.Child("SvcMenu"),
		),
		protocol.Message(SvcMenu{}, "svcMenu",
			protocol.Text("Versions", "version"),
			protocol.Text("Langs", "lang"),
			protocol.Text("ObjURIs", "objURI"),
			protocol.Text("ExtURIs", "extURI").In("svcExtension"),
		),
	}
}

func statusBindings() []protocol.Binding {
	return []protocol.Binding{
		protocol.Attr("S", "s"),
		protocol.Attr("Lang", "lang"),
		protocol.Content("Text"),
	}
}

func contactFieldBindings() []protocol.Binding {
	return []protocol.Binding{
		protocol.Child("PostalInfo"),
		protocol.Text("Voice", "voice"),
		protocol.Attr("VoiceX", "x").In("voice"),
		protocol.Text("Fax", "fax"),
		protocol.Text("Email", "email"),
	}
}

func extconBindings() []protocol.Binding {
	return []protocol.Binding{
		protocol.Text("ConsentForPublishing", "consentForPublishing").Using(protocol.TransformTrueLiteral),
		protocol.Child("Registrant"),
	}
}

func dnsReportBindings() []protocol.Binding {
	return []protocol.Binding{
		protocol.Attr("Version", "version"),
		protocol.Text("Domain", "domain"),
		protocol.Text("Status", "status"),
		protocol.Text("ValidationID", "validationId"),
		protocol.Text("ValidationDate", "validationDate"),
		protocol.Child("Nameservers"),
		protocol.Child("Tests"),
		protocol.Child("Queries"),
	}
}

func join(head []protocol.Binding, rest ...protocol.Binding) []protocol.Binding {
	out := make([]protocol.Binding, 0, len(head)+len(rest))
	out = append(out, head...)
	return append(out, rest...)
}

func sharedDefs() []protocol.MessageDef {
	return []protocol.MessageDef{
		protocol.Message(HostAttr{}, "domain:hostAttr",
			protocol.Text("HostName", "hostName"),
			protocol.Child("HostAddrs"),
		),
		protocol.Message(HostAddr{}, "domain:hostAddr",
			protocol.Attr("IP", "ip"),
			protocol.Content("Address"),
		),
		protocol.Message(ContactRef{}, "domain:contact",
			protocol.Attr("Type", "type"),
			protocol.Content("ID"),
		),
		protocol.Message(DomainAuthInfo{}, "domain:authInfo",
			protocol.Text("Pw", "pw"),
		),
		protocol.Message(ContactAuthInfo{}, "contact:authInfo",
			protocol.Text("Pw", "pw"),
		),
		protocol.Message(PostalInfo{}, "contact:postalInfo",
			protocol.Attr("Type", "type"),
			protocol.Text("Name", "name"),
			protocol.Text("Org", "org"),
			protocol.Child("Addr"),
		),
		protocol.Message(Addr{}, "contact:addr",
			protocol.Text("Street", "street"),
			protocol.Text("City", "city"),
			protocol.Text("SP", "sp"),
			protocol.Text("PC", "pc"),
			protocol.Text("CC", "cc"),
		),
		protocol.Message(ContactStatus{}, "contact:status", statusBindings()...),
		protocol.Message(DomainStatus{}, "domain:status", statusBindings()...),
		protocol.Message(Registrant{}, "extcon:registrant",
			protocol.Text("NationalityCode", "nationalityCode"),
			protocol.Text("EntityType", "entityType"),
			protocol.Text("RegCode", "regCode"),
		),
	}
}

func commandDefs() []protocol.MessageDef {
	return []protocol.MessageDef{
		protocol.Message(Command{}, "command",
			protocol.Child("Login"),
			protocol.Child("Logout"),
			protocol.Child("Poll"),
			protocol.Child("Check"),
			protocol.Child("Info"),
			protocol.Child("Create"),
			protocol.Child("Update"),
			protocol.Child("Delete"),
			protocol.Child("Transfer"),
			protocol.OneOf("Extension", ExtconCreate{}, ExtconUpdate{}, ExtdomTrade{}, RgpUpdate{}).In("extension"),
			protocol.Text("ClTRID", "clTRID"),
		),
		protocol.Message(Login{}, "login",
			protocol.Text("ClID", "clID"),
			protocol.Text("Pw", "pw"),
			protocol.Text("NewPW", "newPW"),
			protocol.Child("Options"),
			protocol.Child("Svcs"),
		),
		protocol.Message(LoginOptions{}, "options",
			protocol.Text("Version", "version"),
			protocol.Text("Lang", "lang"),
		),
		protocol.Message(Services{}, "svcs",
			protocol.Text("ObjURIs", "objURI"),
			protocol.Text("ExtURIs", "extURI").In("svcExtension"),
		),
		protocol.Message(Logout{}, "logout"),
		protocol.Message(Poll{}, "poll",
			protocol.Attr("Op", "op"),
			protocol.Attr("MsgID", "msgID"),
		),

		protocol.Message(Check{}, "check", protocol.Child("Contact"), protocol.Child("Domain")),
		protocol.Message(ContactCheck{}, "contact:check", protocol.Text("IDs", "id")),
		protocol.Message(DomainCheck{}, "domain:check", protocol.Text("Names", "name")),

		protocol.Message(Info{}, "info", protocol.Child("Contact"), protocol.Child("Domain")),
		protocol.Message(ContactInfo{}, "contact:info",
			protocol.Text("ID", "id"),
			protocol.Child("AuthInfo"),
		),
		protocol.Message(DomainInfo{}, "domain:info",
			protocol.Text("Name", "name"),
			protocol.Attr("Hosts", "hosts").In("name"),
			protocol.Child("AuthInfo"),
		),

		protocol.Message(Create{}, "create", protocol.Child("Contact"), protocol.Child("Domain")),
		protocol.Message(ContactCreate{}, "contact:create",
			join([]protocol.Binding{protocol.Text("ID", "id")},
				append(contactFieldBindings(), protocol.Child("AuthInfo"))...)...,
		),
		protocol.Message(DomainCreate{}, "domain:create",
			protocol.Text("Name", "name"),
			protocol.Text("Period", "period"),
			protocol.Attr("PeriodUnit", "unit").In("period"),
			protocol.Child("NS").In("ns"),
			protocol.Text("Registrant", "registrant"),
			protocol.Child("Contacts"),
			protocol.Child("AuthInfo"),
		),

		protocol.Message(Update{}, "update", protocol.Child("Contact"), protocol.Child("Domain")),
		protocol.Message(ContactUpdate{}, "contact:update",
			protocol.Text("ID", "id"),
			protocol.Child("Add"),
			protocol.Child("Rem").Named("contact:rem"),
			protocol.Child("Chg"),
		),
		protocol.Message(ContactStatusSet{}, "contact:add", protocol.Child("Statuses")),
		protocol.Message(ContactChange{}, "contact:chg",
			join(contactFieldBindings(), protocol.Child("AuthInfo"))...,
		),
		protocol.Message(DomainUpdate{}, "domain:update",
			protocol.Text("Name", "name"),
			protocol.Child("Add"),
			protocol.Child("Rem").Named("domain:rem"),
			protocol.Child("Chg"),
		),
		protocol.Message(DomainChangeSet{}, "domain:add",
			protocol.Child("NS").In("ns"),
			protocol.Child("Contacts"),
			protocol.Child("Statuses"),
		),
		protocol.Message(DomainChange{}, "domain:chg",
			protocol.Text("Registrant", "registrant"),
			protocol.Child("AuthInfo"),
		),

		protocol.Message(Delete{}, "delete", protocol.Child("Contact"), protocol.Child("Domain")),
		protocol.Message(ContactDelete{}, "contact:delete", protocol.Text("ID", "id")),
		protocol.Message(DomainDelete{}, "domain:delete", protocol.Text("Name", "name")),

		protocol.Message(Transfer{}, "transfer",
			protocol.Attr("Op", "op"),
			protocol.Child("Domain"),
		),
		protocol.Message(DomainTransfer{}, "domain:transfer",
			protocol.Text("Name", "name"),
			protocol.Child("AuthInfo"),
		),
	}
}

func commandExtensionDefs() []protocol.MessageDef {
	return []protocol.MessageDef{
		protocol.Message(ExtconCreate{}, "extcon:create", extconBindings()...),
		protocol.Message(ExtconUpdate{}, "extcon:update", extconBindings()...),
		protocol.Message(ExtdomTrade{}, "extdom:trade",
			protocol.Text("NewRegistrant", "newRegistrant").In("transferTrade"),
			protocol.Child("NewAuthInfo").In("transferTrade"),
		),
		protocol.Message(NewAuthInfo{}, "extdom:newAuthInfo", protocol.Text("Pw", "pw")),
		protocol.Message(RgpUpdate{}, "rgp:update",
			protocol.Attr("RestoreOp", "op").In("restore"),
		),
	}
}

func responseDefs() []protocol.MessageDef {
	return []protocol.MessageDef{
		protocol.Message(Response{}, "response",
			protocol.Child("Result"),
			protocol.Child("MsgQ"),
			protocol.Child("ResData"),
			protocol.OneOf("Extension",
				PasswdReminder{},
				DnsErrorMsgData{},
				DnsWarningMsgData{},
				ChgStatusMsgData{},
				SimpleMsgData{},
				ExtconInfData{},
				ExtdomInfData{},
				RgpInfData{},
				InfNsToValidateData{},
				CreditMsgData{},
				WrongNamespaceReminder{},
				DelayedDebitAndRefundMsgData{},
			).In("extension"),
			protocol.Text("ClTRID", "clTRID").In("trID"),
			protocol.Text("SvTRID", "svTRID").In("trID"),
		),
		protocol.Message(Result{}, "result",
			protocol.Attr("Code", "code"),
			protocol.Keyed("Msgs", "msg", "lang"),
			protocol.Child("ExtValue"),
		),
		protocol.Message(ExtValue{}, "extValue",
			protocol.Text("ReasonCode", "extepp:reasonCode").In("value"),
			protocol.Keyed("Reasons", "reason", "lang"),
		),
		protocol.Message(MsgQ{}, "msgQ",
			protocol.Attr("Count", "count"),
			protocol.Attr("ID", "id"),
			protocol.Text("QDate", "qDate"),
			protocol.Keyed("Msgs", "msg", "lang"),
		),
	}
}

func resDataDefs() []protocol.MessageDef {
	return []protocol.MessageDef{
		protocol.Message(ResData{}, "resData",
			protocol.Child("ContactChkData"),
			protocol.Child("ContactCreData"),
			protocol.Child("ContactInfData"),
			protocol.Child("DomainChkData"),
			protocol.Child("DomainCreData"),
			protocol.Child("DomainInfData"),
			protocol.Child("DomainTrnData"),
		),
		protocol.Message(ContactChkData{}, "contact:chkData", protocol.Child("CDs")),
		protocol.Message(ContactCD{}, "contact:cd",
			protocol.Text("ID", "id"),
			protocol.Attr("Avail", "avail").In("id").Using(protocol.TransformTrueLiteral),
			protocol.Keyed("Reasons", "reason", "lang"),
		),
		protocol.Message(DomainChkData{}, "domain:chkData", protocol.Child("CDs")),
		protocol.Message(DomainCD{}, "domain:cd",
			protocol.Text("Name", "name"),
			protocol.Attr("Avail", "avail").In("name").Using(protocol.TransformTrueLiteral),
			protocol.Keyed("Reasons", "reason", "lang"),
		),
		protocol.Message(ContactCreData{}, "contact:creData",
			protocol.Text("ID", "id"),
			protocol.Text("CrDate", "crDate"),
		),
		protocol.Message(ContactInfData{}, "contact:infData",
			join([]protocol.Binding{
				protocol.Text("ID", "id"),
				protocol.Text("ROID", "roid"),
				protocol.Child("Statuses"),
			}, append(contactFieldBindings(),
				protocol.Text("ClID", "clID"),
				protocol.Text("CrID", "crID"),
				protocol.Text("CrDate", "crDate"),
				protocol.Text("UpID", "upID"),
				protocol.Text("UpDate", "upDate"),
				protocol.Child("AuthInfo"),
			)...)...,
		),
		protocol.Message(DomainCreData{}, "domain:creData",
			protocol.Text("Name", "name"),
			protocol.Text("CrDate", "crDate"),
			protocol.Text("ExDate", "exDate"),
		),
		protocol.Message(DomainInfData{}, "domain:infData",
			protocol.Text("Name", "name"),
			protocol.Text("ROID", "roid"),
			protocol.Child("Statuses"),
			protocol.Text("Registrant", "registrant"),
			protocol.Child("Contacts"),
			protocol.Child("NS").In("ns"),
			protocol.Text("ClID", "clID"),
			protocol.Text("CrID", "crID"),
			protocol.Text("CrDate", "crDate"),
			protocol.Text("UpID", "upID"),
			protocol.Text("UpDate", "upDate"),
			protocol.Text("ExDate", "exDate"),
			protocol.Text("TrDate", "trDate"),
			protocol.Child("AuthInfo"),
		),
		protocol.Message(DomainTrnData{}, "domain:trnData",
			protocol.Text("Name", "name"),
			protocol.Text("TrStatus", "trStatus"),
			protocol.Text("ReID", "reID"),
			protocol.Text("ReDate", "reDate"),
			protocol.Text("AcID", "acID"),
			protocol.Text("AcDate", "acDate"),
			protocol.Text("ExDate", "exDate"),
		),
	}
}

func responseExtensionDefs() []protocol.MessageDef {
	return []protocol.MessageDef{
		protocol.Message(PasswdReminder{}, "extepp:passwdReminder", protocol.Text("ExDate", "exDate")),
		protocol.Message(DnsErrorMsgData{}, "extdom:dnsErrorMsgData", dnsReportBindings()...),
		protocol.Message(DnsWarningData{}, "extdom:dnsWarningData", dnsReportBindings()...),
		protocol.Message(DnsWarningMsgData{}, "extdom:dnsWarningMsgData",
			protocol.Child("ChgStatus"),
			protocol.Child("Warning"),
		),
		protocol.Message(DnsNameserver{}, "extdom:nameserver",
			protocol.Attr("Name", "name"),
			protocol.Child("Addresses"),
		),
		protocol.Message(DnsAddress{}, "extdom:address",
			protocol.Attr("Type", "type"),
			protocol.Content("Address"),
		),
		protocol.Message(DnsTest{}, "extdom:test",
			protocol.Attr("Status", "status"),
			protocol.Attr("Name", "name"),
			protocol.Attr("Skipped", "skipped"),
			protocol.Child("Nameservers"),
		),
		protocol.Message(DnsTestNameserver{}, "extdom:nameserver",
			protocol.Attr("Status", "status"),
			protocol.Attr("Name", "name"),
			protocol.Child("Details"),
		),
		protocol.Message(DnsTestDetail{}, "extdom:detail",
			protocol.Attr("QueryID", "queryId"),
			protocol.Content("Text"),
		),
		protocol.Message(DnsQuery{}, "extdom:query",
			protocol.Attr("ID", "id"),
			protocol.Text("QueryFor", "queryFor"),
			protocol.Text("Type", "type"),
			protocol.Text("Destination", "destination"),
			protocol.Text("Result", "result"),
		),
		protocol.Message(ChgStatusMsgData{}, "extdom:chgStatusMsgData",
			protocol.Text("Name", "name"),
			protocol.AnyChild("TargetStatuses").In("targetStatus"),
		),
		protocol.Message(TargetStatus{}, protocol.Wildcard,
			join([]protocol.Binding{protocol.Self("Name"), protocol.NamespaceOf("Namespace")}, statusBindings()...)...,
		),
		protocol.Message(SimpleMsgData{}, "extdom:simpleMsgData", protocol.Text("Name", "name")),
		protocol.Message(RgpInfData{}, "rgp:infData", protocol.Child("Statuses")),
		protocol.Message(RgpStatus{}, "rgp:rgpStatus", statusBindings()...),
		protocol.Message(ExtconInfData{}, "extcon:infData", extconBindings()...),
		protocol.Message(ExtdomInfData{}, "extdom:infData", protocol.Child("OwnStatuses")),
		protocol.Message(OwnStatus{}, "extdom:ownStatus", statusBindings()...),
		protocol.Message(InfNsToValidateData{}, "extdom:infNsToValidateData",
			protocol.Child("NsToValidate").In("nsToValidate"),
		),
		protocol.Message(CreditMsgData{}, "extepp:creditMsgData", protocol.Text("Credit", "credit")),
		protocol.Message(WrongNamespaceReminder{}, "extepp:wrongNamespaceReminder", protocol.Child("Infos")),
		protocol.Message(WrongNamespaceInfo{}, "extepp:wrongNamespaceInfo",
			protocol.Text("WrongNamespace", "wrongNamespace"),
			protocol.Text("RightNamespace", "rightNamespace"),
		),
		protocol.Message(DelayedDebitAndRefundMsgData{}, "extdom:delayedDebitAndRefundMsgData",
			protocol.Text("Name", "name"),
			protocol.Text("DebitDate", "debitDate"),
			protocol.Text("Amount", "amount"),
		),
	}
}
