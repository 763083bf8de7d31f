package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

type e2eSuite struct {
	public  httpClient
	admin   httpClient
	baseURL string
	email   string
	pass    string
}

func TestE2E_SiteLifecycle(t *testing.T) {
	suite := newE2ESuite(t)

	t.Run("bootstrap and login", suite.testBootstrap)
	t.Run("edit content", suite.testEditContent)
	t.Run("public pages", suite.testPublicPages)
	t.Run("bookings", suite.testBookings)
	t.Run("logout", suite.testLogout)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "e2e.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	engine := SetupRouter(gdb, config.AppConfig{
		SessionSecret:  "e2e-session-secret",
		GinMode:        gin.TestMode,
		CreateUserHash: "e2e-bootstrap",
		SiteName:       "Sparkle Co",
		UploadDir:      t.TempDir(),
	}, nil)

	return &e2eSuite{
		public:  newLocalClient(engine, false),
		admin:   newLocalClient(engine, true),
		baseURL: "http://example.test",
		email:   "owner@sparkle.test",
		pass:    "e2e-password",
	}
}

func (s *e2eSuite) testBootstrap(t *testing.T) {
	resp := s.mustRequestJSON(t, s.public, http.MethodPost, "/api/v1/cpl/create-user", map[string]any{
		"email": s.email, "password": s.pass, "hash": "e2e-bootstrap",
	})
	expectStatus(t, resp, http.StatusOK)

	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/admin/login", map[string]any{
		"email": s.email, "password": s.pass,
	})
	expectStatus(t, resp, http.StatusOK)

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/api/site", nil, nil)
	var site struct {
		Success bool `json:"success"`
		Data    struct {
			SiteName string `json:"siteName"`
			User     string `json:"user"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &site)
	if !site.Success || site.Data.SiteName != "Sparkle Co" || site.Data.User != s.email {
		t.Fatalf("unexpected site data: %+v", site)
	}
}

func (s *e2eSuite) testEditContent(t *testing.T) {
	resp := s.uploadTestImage(t)
	var upload struct {
		Data struct {
			File string `json:"file"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &upload)
	if upload.Data.File == "" {
		t.Fatal("expected uploaded file url")
	}
	resp = s.mustRequest(t, s.public, http.MethodGet, upload.Data.File, nil, nil)
	expectStatus(t, resp, http.StatusOK)

	media := map[string]any{"file": upload.Data.File, "fileId": "img-1", "thumbnail": upload.Data.File}

	steps := []struct {
		method string
		path   string
		body   map[string]any
		status int
	}{
		{http.MethodPut, "/admin/api/homepage/sections/hero", map[string]any{"title": "Spotless homes", "background": media}, http.StatusOK},
		{http.MethodPut, "/admin/api/about", map[string]any{"title": "Family run since 2009"}, http.StatusOK},
		{http.MethodPut, "/admin/api/others-content", map[string]any{
			"announcement":   "Now booking for June",
			"termsOfService": "Be **nice**.",
			"socialLinks":    []map[string]any{{"platform": "github", "url": "https://github.com/sparkle"}},
		}, http.StatusOK},
		{http.MethodPost, "/admin/api/products", map[string]any{"name": "Deep Clean", "price": 12000, "featured": true, "images": []any{media}}, http.StatusCreated},
		{http.MethodPost, "/admin/api/products", map[string]any{"name": "", "price": -1}, http.StatusBadRequest},
		{http.MethodPost, "/admin/api/blogs", map[string]any{"title": "Five tips", "content": "Start *early*.", "published": true}, http.StatusCreated},
		{http.MethodPost, "/admin/api/pages", map[string]any{"title": "Our Services"}, http.StatusCreated},
		{http.MethodPut, "/admin/api/pages/1/sections", map[string]any{"sections": []map[string]any{
			{"id": "hero", "type": "header-banner", "data": map[string]any{"title": "What we do"}},
			{"id": "media", "type": "bottom-media", "data": map[string]any{
				"mediaType": "video",
				"media":     map[string]any{"file": "https://youtu.be/dQw4w9WgXcQ"},
			}},
		}}, http.StatusOK},
		{http.MethodPatch, "/admin/api/pages/1", map[string]any{"isPublished": true}, http.StatusOK},
	}

	for _, step := range steps {
		resp := s.mustRequestJSON(t, s.admin, step.method, step.path, step.body)
		if resp.StatusCode != step.status {
			t.Fatalf("%s %s: expected %d, got %d: %s", step.method, step.path, step.status, resp.StatusCode, readBody(t, resp))
		}
		resp.Body.Close()
	}
}

func (s *e2eSuite) testPublicPages(t *testing.T) {
	checkHTML := func(name, path, expect string, code int) {
		t.Helper()
		resp := s.mustRequest(t, s.public, http.MethodGet, path, nil, nil)
		defer resp.Body.Close()
		if resp.StatusCode != code {
			t.Fatalf("%s: expected status %d, got %d", name, code, resp.StatusCode)
		}
		body := readBody(t, resp)
		if expect != "" && !strings.Contains(body, expect) {
			t.Fatalf("%s: response does not contain %q", name, expect)
		}
	}

	checkHTML("home", "/", "Spotless homes", http.StatusOK)
	checkHTML("home featured", "/", "120.00", http.StatusOK)
	checkHTML("announcement", "/", "Now booking for June", http.StatusOK)
	checkHTML("about", "/about", "Family run since 2009", http.StatusOK)
	checkHTML("products", "/products", "Deep Clean", http.StatusOK)
	checkHTML("blog list", "/blog", "Five tips", http.StatusOK)
	checkHTML("blog post", "/blog/five-tips", "<em>early</em>", http.StatusOK)
	checkHTML("terms", "/terms", "<strong>nice</strong>", http.StatusOK)
	checkHTML("custom page", "/our-services", "What we do", http.StatusOK)
	checkHTML("video embed", "/our-services", "youtube-nocookie.com/embed/dQw4w9WgXcQ", http.StatusOK)
	checkHTML("missing page", "/nowhere", "Page not found", http.StatusNotFound)

	resp := s.mustRequest(t, s.public, http.MethodGet, "/api/blogs", nil, nil)
	var blogs struct {
		Success    bool             `json:"success"`
		Blogs      []map[string]any `json:"blogs"`
		Pagination map[string]int   `json:"pagination"`
	}
	decodeJSON(t, resp, &blogs)
	if !blogs.Success || len(blogs.Blogs) != 1 || blogs.Pagination["pages"] != 1 {
		t.Fatalf("unexpected blogs listing: %+v", blogs)
	}
}

func (s *e2eSuite) testBookings(t *testing.T) {
	resp := s.mustRequestJSON(t, s.public, http.MethodPost, "/api/contact", map[string]any{
		"name":          "Dana",
		"email":         "dana@example.com",
		"service":       "Deep Clean",
		"preferredDate": "2026-06-01",
		"message":       "Two bedrooms <script>alert(1)</script>",
	})
	var created struct {
		Data struct {
			ID      uint   `json:"id"`
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &created)
	if created.Data.Status != "new" || strings.Contains(created.Data.Message, "<script>") {
		t.Fatalf("unexpected booking: %+v", created.Data)
	}
	id := strconv.FormatUint(uint64(created.Data.ID), 10)

	resp = s.mustRequestJSON(t, s.admin, http.MethodPatch, "/admin/api/bookings/"+id, map[string]any{"status": "Contacted"})
	expectStatus(t, resp, http.StatusOK)

	resp = s.mustRequest(t, s.public, http.MethodDelete, "/api/delete-booking?id="+id, nil, nil)
	expectStatus(t, resp, http.StatusUnauthorized)

	resp = s.mustRequest(t, s.admin, http.MethodDelete, "/api/delete-booking?id="+id, nil, nil)
	var deleted struct {
		Success  bool             `json:"success"`
		Bookings []map[string]any `json:"bookings"`
	}
	decodeJSON(t, resp, &deleted)
	if !deleted.Success || len(deleted.Bookings) != 0 {
		t.Fatalf("unexpected delete response: %+v", deleted)
	}
}

func (s *e2eSuite) testLogout(t *testing.T) {
	resp := s.mustRequest(t, s.admin, http.MethodPost, "/admin/logout", nil, nil)
	expectStatus(t, resp, http.StatusOK)

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/api/pages", nil, nil)
	expectStatus(t, resp, http.StatusUnauthorized)
}

func (s *e2eSuite) uploadTestImage(t *testing.T) *http.Response {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, "file", "test.png"))
	partHeader.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(buf.Bytes()); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	headers := map[string]string{
		"Content-Type": writer.FormDataContentType(),
	}
	return s.mustRequest(t, s.admin, http.MethodPost, "/admin/api/uploads", body, headers)
}

func (s *e2eSuite) mustRequest(t *testing.T, client httpClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func (s *e2eSuite) mustRequestJSON(t *testing.T, client httpClient, method, path string, payload map[string]any) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	headers := map[string]string{"Content-Type": "application/json"}
	return s.mustRequest(t, client, method, path, bytes.NewReader(data), headers)
}

func expectStatus(t *testing.T, resp *http.Response, code int) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != code {
		t.Fatalf("expected status %d, got %d: %s", code, resp.StatusCode, readBody(t, resp))
	}
}

func decodeJSON(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("failed to decode json: %v\nbody=%s", err, body)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(data)
}
