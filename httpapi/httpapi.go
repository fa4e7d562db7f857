// Package httpapi exposes table construction and parsing over HTTP. It
// follows the teacher's server package in outline — a chi router, a JSON
// envelope on every response, a uuid correlation id attached to each
// request for logging — but carries none of its auth, session, or
// persistence machinery: this domain has no user accounts, and per spec
// §6 the core itself persists nothing, so there is nothing here worth
// protecting or storing across requests.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dorsalfin/sturgeon/gramtext"
	"github.com/dorsalfin/sturgeon/parse"
)

// envelope is the JSON shape returned by every endpoint, mirroring the
// teacher's jsonOK/jsonErr split between a payload and a user-facing
// message.
type envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Router builds the mux serving the API: POST /build and POST /parse.
func Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/build", handleBuild)
	r.Post("/parse", handleParse)
	return r
}

// buildRequest is the body of POST /build: a grammar in gramtext's
// "HEAD -> SYM SYM ..." form plus the requested item-set flavor.
type buildRequest struct {
	Grammar string `json:"grammar"`
	Flavor  string `json:"flavor"`
}

type buildResponse struct {
	Table string `json:"table"`
}

func handleBuild(w http.ResponseWriter, req *http.Request) {
	cid := uuid.New()

	var body buildRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeErr(w, cid, http.StatusBadRequest, "malformed request body")
		return
	}

	flavor, err := parseFlavor(body.Flavor)
	if err != nil {
		writeErr(w, cid, http.StatusBadRequest, err.Error())
		return
	}

	reader := gramtext.New()
	prods, initNonterm, err := reader.Read(strings.NewReader(body.Grammar))
	if err != nil {
		writeErr(w, cid, http.StatusBadRequest, err.Error())
		return
	}

	table, err := parse.Build(flavor, initNonterm, prods, reader.Names())
	if err != nil {
		log.Printf("[%s] build rejected: %v", cid, err)
		writeErr(w, cid, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeOK(w, cid, buildResponse{Table: table.String()})
}

// parseRequest is the body of POST /parse: a grammar plus an input string
// to run the driver against. Rebuilding the table per request keeps the
// service stateless; internal/tablecache is the layer that would avoid
// the rebuild cost for a CLI caller reusing the same grammar repeatedly.
type parseRequest struct {
	Grammar string `json:"grammar"`
	Flavor  string `json:"flavor"`
	Input   string `json:"input"`
}

type parseResponse struct {
	Accepted   bool       `json:"accepted"`
	Derivation [][]string `json:"derivation,omitempty"`
}

func handleParse(w http.ResponseWriter, req *http.Request) {
	cid := uuid.New()

	var body parseRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeErr(w, cid, http.StatusBadRequest, "malformed request body")
		return
	}

	flavor, err := parseFlavor(body.Flavor)
	if err != nil {
		writeErr(w, cid, http.StatusBadRequest, err.Error())
		return
	}

	reader := gramtext.New()
	prods, initNonterm, err := reader.Read(strings.NewReader(body.Grammar))
	if err != nil {
		writeErr(w, cid, http.StatusBadRequest, err.Error())
		return
	}

	table, err := parse.Build(flavor, initNonterm, prods, reader.Names())
	if err != nil {
		log.Printf("[%s] build rejected: %v", cid, err)
		writeErr(w, cid, http.StatusUnprocessableEntity, err.Error())
		return
	}

	deriv, err := table.Parse([]byte(body.Input))
	if err != nil {
		log.Printf("[%s] parse rejected: %v", cid, err)
		writeOK(w, cid, parseResponse{Accepted: false})
		return
	}

	names := reader.Names()
	rendered := make([][]string, len(deriv))
	for i, form := range deriv {
		row := make([]string, len(form))
		for j, sym := range form {
			row[j] = sym.String(names)
		}
		rendered[i] = row
	}

	writeOK(w, cid, parseResponse{Accepted: true, Derivation: rendered})
}

func writeOK(w http.ResponseWriter, cid uuid.UUID, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Correlation-Id", cid.String())
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(envelope{Message: "ok", Data: data})
}

func writeErr(w http.ResponseWriter, cid uuid.UUID, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Correlation-Id", cid.String())
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Message: msg})
}

func parseFlavor(s string) (parse.Flavor, error) {
	switch s {
	case "", "lr1", "canonical-lr1":
		return parse.CanonicalLR1, nil
	case "slr", "slr1":
		return parse.SLR, nil
	default:
		return 0, errUnknownFlavor(s)
	}
}

type errUnknownFlavor string

func (e errUnknownFlavor) Error() string {
	return "unknown flavor " + string(e) + ": want \"slr\" or \"lr1\""
}
