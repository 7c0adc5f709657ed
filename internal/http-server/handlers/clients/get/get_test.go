package get

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

type stubGetter struct {
	clients map[string]*api.ClientResponse
	search  string
	err     error
}

func (s *stubGetter) GetClient(_ context.Context, id string) (*api.ClientResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.clients[id]
	if !ok {
		return nil, fmt.Errorf("postgres.GetClient: %w", response.ErrNotFound)
	}
	return c, nil
}

func (s *stubGetter) ListClients(_ context.Context, search string) ([]*api.ClientResponse, error) {
	s.search = search
	if s.err != nil {
		return nil, s.err
	}
	list := make([]*api.ClientResponse, 0, len(s.clients))
	for _, c := range s.clients {
		list = append(list, c)
	}
	return list, nil
}

func serve(t *testing.T, g ClientGetter, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	router.Get("/clients", New(log, g))
	router.Get("/clients/{id}", New(log, g))

	rw := httptest.NewRecorder()
	router.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, target, nil))

	var resp Response
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body %q: %v", rw.Body.String(), err)
	}
	return rw, resp
}

func newStub() *stubGetter {
	return &stubGetter{clients: map[string]*api.ClientResponse{
		"cl-1": {ID: "cl-1", Name: "Ana", WhatsApp: "+5215512345678"},
	}}
}

func TestNew_ByID(t *testing.T) {
	rw, resp := serve(t, newStub(), "/clients/cl-1")

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	if resp.Client == nil || resp.Client.Name != "Ana" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestNew_List(t *testing.T) {
	g := newStub()
	rw, resp := serve(t, g, "/clients?search=ana")

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	if g.search != "ana" {
		t.Fatalf("search = %q, want ana", g.search)
	}
	if len(resp.Clients) != 1 {
		t.Fatalf("expected one client, got %+v", resp.Clients)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		code   response.ErrCode
	}{
		{"unknown id", "/clients/missing", nil, http.StatusNotFound, response.NOT_FOUND},
		{"storage failure", "/clients", fmt.Errorf("postgres.ListClients: connection refused"), http.StatusInternalServerError, response.FAILED_REQUEST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newStub()
			g.err = tt.err
			rw, resp := serve(t, g, tt.target)

			if rw.Code != tt.status {
				t.Fatalf("status = %d, want %d", rw.Code, tt.status)
			}
			if resp.Code != string(tt.code) {
				t.Fatalf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}
