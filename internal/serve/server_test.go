package serve

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/react-three/create/internal/project"
	"github.com/react-three/create/internal/remote"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Test plan for Server:
// 1. NewServer wires its dependencies
// 2. Health endpoint returns healthy status
// 3. Callback exchanges the code, generates and redirects to the repository
// 4. Callback rejects bad input and maps upstream failures
// 5. Generate endpoints return a zip archive and a file map
// 6. Metrics and CORS are served
// 7. Request files are only fetched from configured https hosts

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(ex TokenExchanger, pub ProjectPublisher, fetcher map[string][]byte, origins ...string) *server {
	s := NewServer(Config{
		Exchanger:      ex,
		Publisher:      pub,
		Fetcher:        staticFetcher(fetcher),
		AllowedOrigins: origins,
		Logger:         zerolog.Nop(),
	}).(*server)
	s.randomName = func() string { return "react-three-tiny-fox" }
	return s
}

func encodeState(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(data)
}

func serve(s *server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func hasPath(path string) any {
	return mock.MatchedBy(func(files project.FileMap) bool {
		_, ok := files[path]
		return ok
	})
}

func TestNewServer(t *testing.T) {
	// Test: NewServer creates server with dependencies
	ex := new(mockExchanger)
	pub := new(mockPublisher)

	srv := NewServer(Config{Exchanger: ex, Publisher: pub, Logger: zerolog.Nop()})

	s, ok := srv.(*server)
	require.True(t, ok)
	assert.Equal(t, ex, s.exchanger)
	assert.Equal(t, pub, s.publisher)
	assert.NotNil(t, s.generator)
	assert.NotNil(t, s.metrics)
	assert.NotNil(t, s.router)
}

func TestServer_HandleHealth(t *testing.T) {
	// Test: Health endpoint returns healthy status
	s := newTestServer(nil, nil, nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	_, err := time.Parse(time.RFC3339, body["time"])
	assert.NoError(t, err)
}

func TestServer_HandleCallback(t *testing.T) {
	tests := []struct {
		name     string
		state    map[string]any
		wantName string
		wantPath string
	}{
		{
			// Test: The chosen name becomes the repository name
			name:     "named project",
			state:    map[string]any{"name": "my-scene", "drei": true},
			wantName: "my-scene",
			wantPath: "src/app.tsx",
		},
		{
			// Test: A random name is picked when none is given
			name:     "unnamed project",
			state:    map[string]any{"language": "javascript"},
			wantName: "react-three-tiny-fox",
			wantPath: "src/app.jsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := new(mockExchanger)
			ex.On("Exchange", mock.Anything, "code-123").Return("tok", nil)
			pub := new(mockPublisher)
			pub.On("Publish", mock.Anything, tt.wantName, hasPath(tt.wantPath), "tok").
				Return("https://github.com/octo/"+tt.wantName, nil)
			s := newTestServer(ex, pub, nil)

			q := url.Values{"code": {"code-123"}, "state": {encodeState(t, tt.state)}}
			rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/github/callback?"+q.Encode(), nil))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "https://github.com/octo/"+tt.wantName, rec.Header().Get("Location"))
			ex.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestServer_HandleCallback_Errors(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte(`{"name":"demo"}`))

	tests := []struct {
		name       string
		query      url.Values
		setup      func(ex *mockExchanger, pub *mockPublisher)
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing code",
			query:      url.Values{"state": {valid}},
			wantStatus: http.StatusBadRequest,
			wantError:  "code and state are required",
		},
		{
			name:       "state is not base64",
			query:      url.Values{"code": {"c"}, "state": {"!!!"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request parameters",
		},
		{
			name:       "state fails validation",
			query:      url.Values{"code": {"c"}, "state": {base64.StdEncoding.EncodeToString([]byte(`{"language":"rust"}`))}},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request parameters",
		},
		{
			name:       "state carries remote files",
			query:      url.Values{"code": {"c"}, "state": {base64.StdEncoding.EncodeToString([]byte(`{"name":"demo","files":{"meta.txt":{"type":"remote","url":"http://169.254.169.254/latest/meta-data/"}}}`))}},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request parameters",
		},
		{
			name:       "state carries injections",
			query:      url.Values{"code": {"c"}, "state": {base64.StdEncoding.EncodeToString([]byte(`{"name":"demo","injections":[{"location":"scene","code":"<Evil />"}]}`))}},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request parameters",
		},
		{
			name:  "code exchange fails",
			query: url.Values{"code": {"c"}, "state": {valid}},
			setup: func(ex *mockExchanger, pub *mockPublisher) {
				ex.On("Exchange", mock.Anything, "c").Return("", errors.New("bad_verification_code"))
			},
			wantStatus: http.StatusBadGateway,
			wantError:  "failed to authenticate with github",
		},
		{
			name:  "publish fails",
			query: url.Values{"code": {"c"}, "state": {valid}},
			setup: func(ex *mockExchanger, pub *mockPublisher) {
				ex.On("Exchange", mock.Anything, "c").Return("tok", nil)
				pub.On("Publish", mock.Anything, "demo", mock.Anything, "tok").Return("", errors.New("name already exists"))
			},
			wantStatus: http.StatusBadGateway,
			wantError:  "failed to publish project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := new(mockExchanger)
			pub := new(mockPublisher)
			if tt.setup != nil {
				tt.setup(ex, pub)
			}
			s := newTestServer(ex, pub, nil)

			rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/github/callback?"+tt.query.Encode(), nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
			ex.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestDecodeState(t *testing.T) {
	doc := []byte(`{"name":"demo","xr":true,"language":"javascript"}`)
	std := base64.StdEncoding.EncodeToString(doc)

	tests := []struct {
		name  string
		state string
	}{
		{name: "standard encoding", state: std},
		{name: "percent encoded", state: url.QueryEscape(std)},
		{name: "url safe encoding", state: base64.URLEncoding.EncodeToString(doc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := decodeState(tt.state)
			require.NoError(t, err)
			assert.Equal(t, "demo", opts.Name)
			assert.Equal(t, project.SlotEnabled, opts.XR.State)
			assert.Equal(t, project.LanguageJavaScript, opts.Language)
		})
	}

	// Test: Content beyond the form choices is refused
	for _, doc := range []string{
		`{"name":"demo","dependencies":{"left-pad":"^1.0.0"}}`,
		`{"name":"demo","replacements":[{"search":"App","replace":"Evil"}]}`,
		`{"name":"demo","files":{"notes.txt":{"type":"text","content":"x"}}}`,
	} {
		_, err := decodeState(base64.StdEncoding.EncodeToString([]byte(doc)))
		assert.ErrorIs(t, err, errStateFields, doc)
	}
}

func TestServer_HandleGenerateZip(t *testing.T) {
	// Test: The archive holds the project under a folder named after it
	s := newTestServer(nil, nil, map[string][]byte{"https://cdn/model.glb": []byte("glTF")})
	s.remoteHosts = hostSet([]string{"cdn"})
	body := `{"name":"My Scene","files":{"public/model.glb":{"type":"remote","url":"https://cdn/model.glb"}}}`

	rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code, "spaces are not allowed in project names")

	body = `{"name":"my-scene","files":{"public/model.glb":{"type":"remote","url":"https://cdn/model.glb"}}}`
	rec = serve(s, httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="my-scene.zip"`, rec.Header().Get("Content-Disposition"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	entries := map[string]*zip.File{}
	for _, f := range zr.File {
		entries[f.Name] = f
	}
	assert.Contains(t, entries, "my-scene/package.json")
	assert.Contains(t, entries, "my-scene/src/app.tsx")
	require.Contains(t, entries, "my-scene/public/model.glb")

	rc, err := entries["my-scene/public/model.glb"].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "glTF", string(data))
}

func TestServer_HandleGenerateZip_FetchFailure(t *testing.T) {
	// Test: Remote files that cannot be fetched fail the download
	s := newTestServer(nil, nil, nil)
	s.remoteHosts = hostSet([]string{"cdn"})
	body := `{"files":{"public/model.glb":{"type":"remote","url":"https://cdn/missing.glb"}}}`

	rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to build archive", resp.Error)
	assert.Contains(t, resp.Details, "public/model.glb")
}

func TestServer_HandleGenerateFiles(t *testing.T) {
	s := newTestServer(nil, nil, nil)

	rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/v1/generate/files", strings.NewReader(`{"name":"demo","leva":true}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var files project.FileMap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	app, ok := files.Text("src/app.tsx")
	require.True(t, ok)
	assert.Contains(t, app, "<Leva collapsed />")
	pkg, ok := files.Text("package.json")
	require.True(t, ok)
	assert.Contains(t, pkg, `"name": "demo"`)
}

func TestServer_GenerateBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"name":`},
		{name: "bad slot", body: `{"drei":"yes"}`},
		{name: "bad dependency range", body: `{"dependencies":{"three":"banana"}}`},
		{name: "unknown injection location", body: `{"injections":[{"location":"footer","code":"x"}]}`},
	}

	for _, tt := range tests {
		for _, path := range []string{"/api/v1/generate", "/api/v1/generate/files"} {
			t.Run(tt.name+" "+path, func(t *testing.T) {
				s := newTestServer(nil, nil, nil)
				rec := serve(s, httptest.NewRequest(http.MethodPost, path, strings.NewReader(tt.body)))
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	}
}

func TestServer_RemoteFileSources(t *testing.T) {
	var hits atomic.Int32
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("secret"))
	}))
	defer internal.Close()
	internalURL, err := url.Parse(internal.URL)
	require.NoError(t, err)

	tests := []struct {
		name    string
		hosts   []string
		files   string
		details string
	}{
		{
			// Test: Hosts that were not configured are never contacted
			name:    "host not allowed",
			files:   `{"leak.txt":{"type":"remote","url":"` + internal.URL + `/secret"}}`,
			details: "is not an allowed source",
		},
		{
			// Test: Allowed hosts are still only fetched over https
			name:    "plain http",
			hosts:   []string{internalURL.Host},
			files:   `{"leak.txt":{"type":"remote","url":"` + internal.URL + `/secret"}}`,
			details: "is not an allowed source",
		},
		{
			name:    "path leaves the project",
			files:   `{"../../evil.sh":{"type":"text","content":"echo"}}`,
			details: "path escapes the target directory",
		},
		{
			name:    "absolute path",
			files:   `{"/etc/profile":{"type":"text","content":"echo"}}`,
			details: "path escapes the target directory",
		},
	}

	for _, tt := range tests {
		for _, path := range []string{"/api/v1/generate", "/api/v1/generate/files"} {
			t.Run(tt.name+" "+path, func(t *testing.T) {
				s := NewServer(Config{
					Fetcher:     remote.New(zerolog.Nop(), remote.WithoutRedirects()),
					RemoteHosts: tt.hosts,
					Logger:      zerolog.Nop(),
				}).(*server)

				body := `{"name":"demo","files":` + tt.files + `}`
				rec := serve(s, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "invalid request parameters", resp.Error)
				assert.Contains(t, resp.Details, tt.details)
			})
		}
	}
	assert.Zero(t, hits.Load())
}

func TestServer_CheckFiles(t *testing.T) {
	s := &server{remoteHosts: hostSet([]string{" CDN.example.com ", ""})}

	// Test: Host matching ignores case and surrounding space
	assert.NoError(t, s.checkFiles(project.FileMap{
		"public/model.glb": project.RemoteFile("https://cdn.example.com/model.glb"),
		"src/extra.ts":     project.TextFile("export {}"),
	}))
	assert.Error(t, s.checkFiles(project.FileMap{"a.glb": project.RemoteFile("https://cdn.example.com:8443/a.glb")}))
	assert.Error(t, s.checkFiles(project.FileMap{"a.glb": project.RemoteFile("https://other.example.com/a.glb")}))
	assert.Len(t, s.remoteHosts, 1)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(nil, nil, nil)
	serve(s, httptest.NewRequest(http.MethodPost, "/api/v1/generate/files", strings.NewReader(`{}`)))

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `react_three_generations_total{format="files",result="ok"} 1`)
	assert.Contains(t, out, `react_three_http_requests_total{method="POST",route="/api/v1/generate/files",status="200"} 1`)
	assert.Contains(t, out, "go_goroutines")
}

func TestServer_CORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{name: "any origin", origin: "https://example.com", want: "*"},
		{name: "listed origin", origins: []string{"https://react-three.org"}, origin: "https://react-three.org", want: "https://react-three.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(nil, nil, nil, tt.origins...)
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			rec := serve(s, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestServer_Start(t *testing.T) {
	// Test: Start returns once the context is cancelled
	s := newTestServer(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx, 0) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRandomName(t *testing.T) {
	name := RandomName()
	assert.True(t, strings.HasPrefix(name, "react-three-"))
	assert.Len(t, strings.Split(name, "-"), 4)
	assert.Equal(t, "react-three-app.zip", archiveName("!!!"))
	assert.Equal(t, "my-scene.zip", archiveName("My Scene"))
}
