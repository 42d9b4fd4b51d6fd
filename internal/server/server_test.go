package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/eppwire/internal/config"
	"github.com/danmuck/eppwire/internal/epp"
	"github.com/danmuck/eppwire/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const checkResponse = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0" xmlns:domain="urn:ietf:params:xml:ns:domain-1.0">
  <response>
    <result code="1000"><msg lang="en">Command completed successfully</msg></result>
    <resData>
      <domain:chkData>
        <domain:cd><domain:name avail="true">free.it</domain:name></domain:cd>
      </domain:chkData>
    </resData>
    <trID><clTRID>ABC-1</clTRID><svTRID>SRV-1</svTRID></trID>
  </response>
</epp>`

func newGateway(t *testing.T, validate bool) *Gateway {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	cfg := config.Default().Gateway
	cfg.Validate = validate
	g := New(cfg)
	g.RegisterRoutes()
	return g
}

func serve(g *Gateway, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	g.HTTPRouter().ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	g := newGateway(t, false)
	rr := serve(g, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "eppwire", body["gateway"])
}

func TestDecodeRoute(t *testing.T) {
	g := newGateway(t, false)
	rr := serve(g, http.MethodPost, "/v1/decode", checkResponse)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "response/domain:chkData", rr.Header().Get("X-EPP-Kind"))

	msg, err := epp.UnmarshalMessage(rr.Body.Bytes())
	require.NoError(t, err)
	require.NotNil(t, msg.Response)
	cds := msg.Response.ResData.DomainChkData.CDs
	require.Len(t, cds, 1)
	assert.True(t, cds[0].Avail)
	assert.Equal(t, "SRV-1", msg.Response.SvTRID)
}

func TestDecodeRouteReportsErrorClass(t *testing.T) {
	g := newGateway(t, false)
	cases := map[string]string{
		"parse":  "<epp><response>",
		"format": strings.Replace(checkResponse, `code="1000"`, `code="many"`, 1),
	}
	for class, body := range cases {
		rr := serve(g, http.MethodPost, "/v1/decode", body)
		require.Equal(t, http.StatusBadRequest, rr.Code, class)
		var reply map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
		assert.Equal(t, class, reply["class"])
		assert.NotEmpty(t, reply["error"])
	}
}

func TestEncodeRoute(t *testing.T) {
	g := newGateway(t, false)
	data, err := epp.MarshalMessage(epp.NewDomainCheck("T-1", "example.it"))
	require.NoError(t, err)

	rr := serve(g, http.MethodPost, "/v1/encode", string(data))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rr.Body.String(), "<domain:name>example.it</domain:name>")
	assert.Contains(t, rr.Body.String(), "<clTRID>T-1</clTRID>")
}

func TestEncodeRouteValidation(t *testing.T) {
	g := newGateway(t, true)
	data, err := epp.MarshalMessage(epp.NewLogin("ACME", "", "1.0", "en", "T-1"))
	require.NoError(t, err)

	rr := serve(g, http.MethodPost, "/v1/encode", string(data))
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "validate")

	rr = serve(g, http.MethodPost, "/v1/encode?validate=false", string(data))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = serve(g, http.MethodPost, "/v1/encode", "{not json")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"json"`)
}

func TestSchemaRoute(t *testing.T) {
	g := newGateway(t, false)
	rr := serve(g, http.MethodGet, "/v1/schema", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var desc struct {
		Namespaces []map[string]any `json:"namespaces"`
		Types      []map[string]any `json:"types"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &desc))
	assert.Len(t, desc.Namespaces, len(epp.Namespaces().All()))
	assert.Equal(t, len(epp.Definitions()), len(desc.Types))

	rr = serve(g, http.MethodGet, "/v1/schema?format=yaml", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Contains(t, doc, "types")
}

func TestMetricsRoute(t *testing.T) {
	g := newGateway(t, false)
	serve(g, http.MethodPost, "/v1/decode", checkResponse)
	rr := serve(g, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "eppwire_codec_messages_total")
}
