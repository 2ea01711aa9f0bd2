package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/spokechart/spoke/pkg/chart"
	"github.com/spokechart/spoke/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	srv := httptest.NewServer(New(runner, log.NewWithOptions(io.Discard, log.Options{})).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func writeTestCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	csv := "species,sepal,petal,stem\n" +
		"setosa,5.1,1.4,2.0\n" +
		"setosa,4.9,1.5,2.1\n" +
		"virginica,6.3,6.0,4.9\n" +
		"virginica,5.8,5.1,4.4\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestChartEndpoint(t *testing.T) {
	srv := newTestServer(t)
	input := writeTestCSV(t)

	resp := postJSON(t, srv.URL+"/v1/charts",
		fmt.Sprintf(`{"input": %q, "label_column": "species", "ordering": "cluster"}`, input))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q", got)
	}
	if resp.Header.Get("X-Chart-Hash") == "" {
		t.Error("missing X-Chart-Hash header")
	}
	if got := resp.Header.Get("X-Cache"); got != "hit" && got != "miss" {
		t.Errorf("X-Cache = %q", got)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	c, err := chart.Unmarshal(data)
	if err != nil {
		t.Fatalf("response is not a valid chart: %v", err)
	}
	if len(c.Anchors) != 3 {
		t.Errorf("anchors = %d, want 3", len(c.Anchors))
	}
	if len(c.Points) != 4 {
		t.Errorf("points = %d, want 4", len(c.Points))
	}
}

func TestArtifactEndpoint(t *testing.T) {
	srv := newTestServer(t)
	input := writeTestCSV(t)

	resp := postJSON(t, srv.URL+"/v1/artifacts/dot",
		fmt.Sprintf(`{"input": %q, "ordering": "none"}`, input))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "text/vnd.graphviz" {
		t.Errorf("content type = %q", got)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "layout=neato") {
		t.Error("dot output missing pinned layout")
	}
}

func TestArtifactUnknownFormat(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/artifacts/pdf", `{"input": "data.csv"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["code"] != "INVALID_FORMAT" {
		t.Errorf("code = %q, want INVALID_FORMAT", body["code"])
	}
}

func TestChartMissingInput(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/charts", `{}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestChartMissingFile(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/charts", `{"input": "/nonexistent/data.csv"}`)

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestChartMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/charts", `{"input": `)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestChartUnknownField(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/charts", `{"input": "data.csv", "bogus": true}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
