package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Defaults: layout.DefaultOptions(),
		Cache:    cache.NewMemoryCache(),
		Store:    store.NewMemoryStore(),
	})
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sampleRequest() map[string]any {
	return map[string]any{
		"graph": map[string]any{
			"nodes": []map[string]any{{"id": "a"}, {"id": "b"}, {"id": "c"}},
			"edges": []map[string]any{
				{"source": "a", "target": "b"},
				{"source": "a", "target": "c"},
			},
		},
	}
}

func TestHealthz(t *testing.T) {
	r := testServer(t).Router()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestComputeLayout(t *testing.T) {
	r := testServer(t).Router()
	rec := postJSON(t, r, "/api/layouts", sampleRequest())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp computeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Cached {
		t.Error("first compute should not be cached")
	}
	if resp.ID != "" {
		t.Error("non-persisted compute should not return an id")
	}
	if len(resp.Result.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(resp.Result.Positions))
	}
}

func TestComputeUsesCache(t *testing.T) {
	r := testServer(t).Router()

	first := postJSON(t, r, "/api/layouts", sampleRequest())
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	second := postJSON(t, r, "/api/layouts", sampleRequest())
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}

	var resp computeResponse
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Cached {
		t.Error("identical request should hit the cache")
	}

	// Changing options must bypass the cached entry.
	req := sampleRequest()
	req["options"] = map[string]any{"direction": "LR"}
	third := postJSON(t, r, "/api/layouts", req)
	if third.Code != http.StatusOK {
		t.Fatalf("third status = %d, body %s", third.Code, third.Body)
	}
	resp = computeResponse{}
	if err := json.Unmarshal(third.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Cached {
		t.Error("different options should miss the cache")
	}
}

func TestPersistAndFetch(t *testing.T) {
	r := testServer(t).Router()

	req := sampleRequest()
	req["persist"] = true
	req["name"] = "pipeline"
	rec := postJSON(t, r, "/api/layouts", req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp computeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID == "" {
		t.Fatal("persisted compute should return an id")
	}

	get := httptest.NewRequest(http.MethodGet, "/api/layouts/"+resp.ID, nil)
	getRec := httptest.NewRecorder()
	r.ServeHTTP(getRec, get)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d", getRec.Code)
	}
	var doc store.StoredLayout
	if err := json.Unmarshal(getRec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Name != "pipeline" || len(doc.Graph.Nodes) != 3 {
		t.Errorf("stored document = %+v", doc)
	}
}

func TestDeleteLayout(t *testing.T) {
	r := testServer(t).Router()

	req := sampleRequest()
	req["persist"] = true
	rec := postJSON(t, r, "/api/layouts", req)
	var resp computeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/layouts/"+resp.ID, nil)
	delRec := httptest.NewRecorder()
	r.ServeHTTP(delRec, del)
	if delRec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", delRec.Code)
	}

	get := httptest.NewRequest(http.MethodGet, "/api/layouts/"+resp.ID, nil)
	getRec := httptest.NewRecorder()
	r.ServeHTTP(getRec, get)
	if getRec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", getRec.Code)
	}
}

func TestNotFoundErrors(t *testing.T) {
	r := testServer(t).Router()

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/layouts/missing", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", method, rec.Code)
			continue
		}
		var body errorBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.Error.Code != "LAYOUT_NOT_FOUND" {
			t.Errorf("%s error code = %s, want LAYOUT_NOT_FOUND", method, body.Error.Code)
		}
	}
}

func TestComputeValidationErrors(t *testing.T) {
	r := testServer(t).Router()

	req := sampleRequest()
	req["options"] = map[string]any{"direction": "sideways"}
	rec := postJSON(t, r, "/api/layouts", req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != "INVALID_DIRECTION" {
		t.Errorf("error code = %s, want INVALID_DIRECTION", body.Error.Code)
	}
}

func TestComputeMalformedBody(t *testing.T) {
	r := testServer(t).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/layouts", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
