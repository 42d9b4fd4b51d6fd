package epp

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip encodes m, decodes the bytes and requires the decoded message to
// equal m. Absent and empty containers compare equal through the JSON view.
func roundTrip(t *testing.T, m *Message) (*Message, string) {
	t.Helper()
	out, err := Encode(m)
	require.NoError(t, err)
	got, err := Decode(out)
	require.NoError(t, err, "%s", out)

	want, err := MarshalMessage(m)
	require.NoError(t, err)
	have, err := MarshalMessage(got)
	require.NoError(t, err)
	if !assert.JSONEq(t, string(want), string(have)) {
		t.Logf("xml:\n%s\nwant:\n%s\ngot:\n%s", out, spew.Sdump(m), spew.Sdump(got))
	}
	return got, string(out)
}

func at(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return &v
}

func command(c *Command) *Message { return &Message{Command: c} }

func response(r *Response) *Message {
	if r.Result == nil {
		r.Result = &Result{Code: 1000, Msgs: map[string]string{"en": "Command completed successfully"}}
	}
	if r.ClTRID == "" {
		r.ClTRID = "ABC-12345"
		r.SvTRID = "54321-XYZ"
	}
	return &Message{Response: r}
}
