package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/james-see/grids2midi/pkg/converter"
	"github.com/james-see/grids2midi/pkg/converter/devices"
	"github.com/james-see/grids2midi/pkg/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	for _, path := range []string{"/health", "/api/v1/health"} {
		w := do(t, http.MethodGet, path, nil, "")
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "grids2midi") {
			t.Errorf("GET %s body = %s", path, w.Body)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, http.MethodOptions, "/api/v1/pattern", nil, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("OPTIONS = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestGetPattern(t *testing.T) {
	w := do(t, http.MethodGet, "/api/v1/pattern?x=0&y=0&density=255,255,255&bars=2", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /pattern = %d: %s", w.Code, w.Body)
	}

	var got PatternJSON
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Bars != 2 || len(got.Steps) != 64 {
		t.Errorf("bars %d, %d steps, want 2 and 64", got.Bars, len(got.Steps))
	}
	if len(got.Grid) != 3 || !strings.HasPrefix(got.Grid[0], "BD ") {
		t.Errorf("Grid = %q", got.Grid)
	}
	if !got.Steps[0].Triggers[0] {
		t.Error("step 0 has no kick at full density")
	}
}

func TestGetPatternErrors(t *testing.T) {
	tests := []string{
		"/api/v1/pattern?x=256",
		"/api/v1/pattern?density=1,2",
		"/api/v1/pattern?mode=random",
		"/api/v1/pattern?bars=0",
		"/api/v1/pattern?bpm=5",
	}
	for _, target := range tests {
		if w := do(t, http.MethodGet, target, nil, ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", target, w.Code)
		}
	}
}

func TestRenderMIDI(t *testing.T) {
	body := []byte(`{"name": "api", "bpm": 100, "density": [255, 0, 0], "bars": 1}`)
	w := do(t, http.MethodPost, "/api/v1/render/midi?device=rd6", body, "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("POST /render/midi = %d: %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "audio/midi" {
		t.Errorf("Content-Type = %q", ct)
	}

	p, err := converter.NewMIDIConverter().ParseMIDI(w.Body.Bytes(), devices.NewRD6())
	if err != nil {
		t.Fatalf("ParseMIDI() error = %v", err)
	}
	if p.Name != "api" || p.Tempo < 99.9 || p.Tempo > 100.1 {
		t.Errorf("name %q tempo %v", p.Name, p.Tempo)
	}
	for i, s := range p.Steps {
		if s.Triggers&0b110 != 0 {
			t.Errorf("step %d fired a lane at density 0: %03b", i, s.Triggers)
		}
	}

	bad := do(t, http.MethodPost, "/api/v1/render/midi?device=td3", body, "application/json")
	if bad.Code != http.StatusBadRequest {
		t.Errorf("unknown device = %d, want 400", bad.Code)
	}
	bad = do(t, http.MethodPost, "/api/v1/render/midi", []byte(`{"bpm": "fast"}`), "application/json")
	if bad.Code != http.StatusBadRequest {
		t.Errorf("bad body = %d, want 400", bad.Code)
	}
}

func TestBarsLimit(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"render midi", "/api/v1/render/midi", `{"bars": 17}`},
		{"render midi overflow", "/api/v1/render/midi", `{"bars": 288230376151711745}`},
		{"settings syx", "/api/v1/settings/syx", `{"bars": 100000}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, http.MethodPost, tt.path, []byte(tt.body), "application/json")
			if w.Code != http.StatusBadRequest {
				t.Errorf("POST %s = %d, want 400", tt.path, w.Code)
			}
		})
	}

	w := do(t, http.MethodGet, "/api/v1/pattern?bars=17", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("GET /pattern?bars=17 = %d, want 400", w.Code)
	}
}

func TestRenderWAV(t *testing.T) {
	w := do(t, http.MethodPost, "/api/v1/render/wav", []byte(`{"shape": "sine", "pitch": 69, "seconds": 0.05}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("POST /render/wav = %d: %s", w.Code, w.Body)
	}
	data := w.Body.Bytes()
	if string(data[:4]) != "RIFF" {
		t.Errorf("body starts with %q, want RIFF", data[:4])
	}
	if got := (len(data) - 44) / 2; got != 2000 {
		t.Errorf("%d samples, want 2000", got)
	}

	tests := []string{
		`{"shape": "saw"}`,
		`{"seconds": 60}`,
		`{"pitch": 200}`,
	}
	for _, body := range tests {
		if w := do(t, http.MethodPost, "/api/v1/render/wav", []byte(body), "application/json"); w.Code != http.StatusBadRequest {
			t.Errorf("POST %s = %d, want 400", body, w.Code)
		}
	}
}

func TestGetEuclidean(t *testing.T) {
	w := do(t, http.MethodGet, "/api/v1/euclidean?length=8&density=12", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /euclidean = %d: %s", w.Code, w.Body)
	}
	var got struct {
		Hits int    `json:"hits"`
		Bits string `json:"bits"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Bits) != 8 || strings.Count(got.Bits, "x") != got.Hits {
		t.Errorf("bits %q with %d hits", got.Bits, got.Hits)
	}

	for _, q := range []string{"length=0&density=1", "length=8&density=32", "density=3"} {
		if w := do(t, http.MethodGet, "/api/v1/euclidean?"+q, nil, ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET /euclidean?%s = %d, want 400", q, w.Code)
		}
	}
}

func TestSettingsSyx(t *testing.T) {
	w := do(t, http.MethodPost, "/api/v1/settings/syx", []byte(`{"mode": "euclidean", "swing": true}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("POST /settings/syx = %d: %s", w.Code, w.Body)
	}
	img, err := converter.NewSyxConverter().ParseSyx(w.Body.Bytes())
	if err != nil {
		t.Fatalf("ParseSyx() error = %v", err)
	}
	if !img.Options.Swing || img.Options.OutputMode.String() != "euclidean" {
		t.Errorf("options = %+v", img.Options)
	}
}

func TestListings(t *testing.T) {
	tests := []struct {
		path string
		key  string
	}{
		{"/api/v1/devices", "rd6"},
		{"/api/v1/formats", "\"image\""},
		{"/api/v1/shapes", "nes-noise-short"},
	}
	for _, tt := range tests {
		w := do(t, http.MethodGet, tt.path, nil, "")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), tt.key) {
			t.Errorf("GET %s = %d %s, want %q", tt.path, w.Code, w.Body, tt.key)
		}
	}
}

func upload(t *testing.T, target, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(content)
	mw.Close()
	return do(t, http.MethodPost, target, body.Bytes(), mw.FormDataContentType())
}

func TestConvert(t *testing.T) {
	w := upload(t, "/api/v1/convert?to=syx", "grids.bin", store.Encode(store.Default()))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /convert = %d: %s", w.Code, w.Body)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "grids.syx") {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !converter.IsSettingsSyx(w.Body.Bytes()) {
		t.Error("response is not a settings dump")
	}

	w = upload(t, "/api/v1/convert?to=midi", "beat.seq", []byte("BD x...x...\n"))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /convert seq -> midi = %d: %s", w.Code, w.Body)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("MThd")) {
		t.Error("response is not a MIDI file")
	}

	if w := upload(t, "/api/v1/convert?to=image", "beat.seq", []byte("BD x...")); w.Code != http.StatusBadRequest {
		t.Errorf("unsupported conversion = %d, want 400", w.Code)
	}
	if w := do(t, http.MethodPost, "/api/v1/convert?to=midi", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing file = %d, want 400", w.Code)
	}
}
