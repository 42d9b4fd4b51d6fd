package epp

import (
	"testing"

	"github.com/danmuck/eppwire/internal/testutil/testlog"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionJSONEnvelope(t *testing.T) {
	testlog.Start(t)
	m := command(&Command{
		Update:    &Update{Domain: &DomainUpdate{Name: "example.it"}},
		Extension: &RgpUpdate{RestoreOp: "request"},
		ClTRID:    "T-9",
	})
	data, err := MarshalMessage(m)
	require.NoError(t, err)

	var raw struct {
		Command struct {
			Extension Variant `json:"extension"`
		} `json:"command"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "rgp:update", raw.Command.Extension.Kind)
	assert.JSONEq(t, `{"restoreOp":"request"}`, string(raw.Command.Extension.Data))

	back, err := UnmarshalMessage(data)
	require.NoError(t, err)
	ext, ok := back.Command.Extension.(*RgpUpdate)
	require.True(t, ok)
	assert.Equal(t, "request", ext.RestoreOp)
	assert.Equal(t, "T-9", back.Command.ClTRID)
}

func TestTypedNilExtensionOmittedFromJSON(t *testing.T) {
	testlog.Start(t)
	var rgp *RgpUpdate
	data, err := MarshalMessage(command(&Command{Logout: &Logout{}, Extension: rgp}))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "extension")

	var dns *DnsErrorMsgData
	data, err = MarshalMessage(response(&Response{Result: &Result{Code: 1000}, Extension: dns}))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "extension")

	back, err := UnmarshalMessage(data)
	require.NoError(t, err)
	assert.Nil(t, back.Response.Extension)
}

func TestResponseJSONFeedsEncoder(t *testing.T) {
	testlog.Start(t)
	in := `{
	  "response": {
	    "result": {"code": 1000, "msgs": {"en": "ok"}},
	    "extension": {"kind": "extepp:creditMsgData", "data": {"credit": "42.10"}},
	    "clTRID": "A", "svTRID": "B"
	  }
	}`
	m, err := UnmarshalMessage([]byte(in))
	require.NoError(t, err)
	credit, ok := m.Response.Extension.(*CreditMsgData)
	require.True(t, ok)
	assert.True(t, credit.Credit.Equal(decimal.RequireFromString("42.1")))

	out, err := Encode(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<extepp:credit>42.1</extepp:credit>")
}

func TestUnknownExtensionKindRejected(t *testing.T) {
	testlog.Start(t)
	_, err := UnmarshalMessage([]byte(`{"command":{"extension":{"kind":"extdom:nope","data":{}}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extdom:nope")

	_, err = UnmarshalMessage([]byte(`{"response":{"extension":{"kind":"rgp:update","data":{}}}}`))
	require.Error(t, err)
}

func TestMalformedJSONRejected(t *testing.T) {
	testlog.Start(t)
	_, err := UnmarshalMessage([]byte(`{"command":`))
	require.Error(t, err)
}
