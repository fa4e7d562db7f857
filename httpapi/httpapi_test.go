package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arithmeticGrammar = `
E -> E + T
E -> T
T -> T * F
T -> F
F -> n
`

func post(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleBuild_ValidGrammarReturnsTable(t *testing.T) {
	rec := post(t, Router(), "/build", buildRequest{Grammar: arithmeticGrammar, Flavor: "lr1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Message)
	assert.NotEmpty(t, resp.Data)
}

func TestHandleBuild_UnknownFlavorIsBadRequest(t *testing.T) {
	rec := post(t, Router(), "/build", buildRequest{Grammar: arithmeticGrammar, Flavor: "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBuild_MalformedGrammarIsBadRequest(t *testing.T) {
	rec := post(t, Router(), "/build", buildRequest{Grammar: "not a grammar", Flavor: "slr"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleParse_AcceptedInputReturnsDerivation(t *testing.T) {
	rec := post(t, Router(), "/parse", parseRequest{Grammar: arithmeticGrammar, Flavor: "lr1", Input: "n+n*n"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string        `json:"message"`
		Data    parseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Accepted)
	assert.NotEmpty(t, resp.Data.Derivation)
}

func TestHandleParse_RejectedInputReportsNotAccepted(t *testing.T) {
	rec := post(t, Router(), "/parse", parseRequest{Grammar: arithmeticGrammar, Flavor: "lr1", Input: "n+"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data parseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Accepted)
}

func TestHandleParse_AmbiguousGrammarIsUnprocessable(t *testing.T) {
	ambiguous := "E -> E + E\nE -> n\n"
	rec := post(t, Router(), "/parse", parseRequest{Grammar: ambiguous, Flavor: "lr1", Input: "n+n"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
