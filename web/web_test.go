package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mtraver/inflammation/inflammation"
	"github.com/mtraver/inflammation/load"
)

func newTestServer(t *testing.T, zeroMax inflammation.ZeroMaxPolicy) *Server {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"small.csv": "1,2,3\n4,5,6\n7,8,9\n",
		"zero.csv":  "0,0\n1,2\n",
		"bad.csv":   "1,2\n3,spam\n",
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return NewServer(dir, load.NewCached(time.Minute), zeroMax)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestDatasets(t *testing.T) {
	w := get(t, newTestServer(t, inflammation.ZeroMaxAsZero), "/datasets")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}

	var got []string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(got, []string{"bad", "small", "zero"}); diff != "" {
		t.Errorf("Unexpected result (-got +want):\n%s", diff)
	}
}

func TestStats(t *testing.T) {
	w := get(t, newTestServer(t, inflammation.ZeroMaxAsZero), "/stats?dataset=small")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type %q, want application/json", ct)
	}

	var got statsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := statsResponse{
		Dataset: "small",
		Days: []inflammation.DaySummary{
			{Day: 0, Mean: 4, Min: 1, Max: 7, StdDev: 2.44949},
			{Day: 1, Mean: 5, Min: 2, Max: 8, StdDev: 2.44949},
			{Day: 2, Mean: 6, Min: 3, Max: 9, StdDev: 2.44949},
		},
	}
	if diff := cmp.Diff(got, want, cmpopts.EquateApprox(0, 0.0001)); diff != "" {
		t.Errorf("Unexpected result (-got +want):\n%s", diff)
	}
}

func TestNormalised(t *testing.T) {
	w := get(t, newTestServer(t, inflammation.ZeroMaxAsZero), "/normalised?dataset=zero")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", w.Code, w.Body)
	}

	var got normalisedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := normalisedResponse{
		Dataset: "zero",
		Rows:    [][]float64{{0, 0}, {0.5, 1}},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Unexpected result (-got +want):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name    string
		zeroMax inflammation.ZeroMaxPolicy
		target  string
		want    int
	}{
		{"missing_dataset", inflammation.ZeroMaxAsZero, "/stats", http.StatusBadRequest},
		{"bad_name", inflammation.ZeroMaxAsZero, "/stats?dataset=..", http.StatusBadRequest},
		{"unknown_dataset", inflammation.ZeroMaxAsZero, "/stats?dataset=large", http.StatusNotFound},
		{"malformed_csv", inflammation.ZeroMaxAsZero, "/stats?dataset=bad", http.StatusInternalServerError},
		{"zero_max", inflammation.ZeroMaxError, "/normalised?dataset=zero", http.StatusUnprocessableEntity},
		{"unknown_path", inflammation.ZeroMaxAsZero, "/foo", http.StatusNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := get(t, newTestServer(t, c.zeroMax), c.target)
			if w.Code != c.want {
				t.Errorf("status %d, want %d", w.Code, c.want)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, inflammation.ZeroMaxAsZero)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stats?dataset=small", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status %d, want 405", w.Code)
	}
}
