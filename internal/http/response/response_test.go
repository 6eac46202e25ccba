package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	c, rec := newTestContext(t)
	Success(c, "success", gin.H{"id": 1})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["message"] != "success" {
		t.Fatalf("envelope wrong: %#v", body)
	}
	if _, ok := body["data"]; !ok {
		t.Fatal("success with data must carry data")
	}
}

func TestErrorEnvelopeMatchesSuccessShape(t *testing.T) {
	c, rec := newTestContext(t)
	c.Set("request_id", "req-123")
	NotFound(c, "product not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["message"] != "product not found" {
		t.Fatalf("envelope wrong: %#v", body)
	}
	// correlation lives in the X-Request-ID header, never in the body
	if _, ok := body["data"]; ok {
		t.Fatalf("failure envelope must omit data, got %#v", body["data"])
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(0, 0, 25)
	if p.Page != 1 || p.PageSize != 10 || p.TotalPage != 3 {
		t.Fatalf("normalized pagination wrong: %#v", p)
	}
	p = NewPagination(2, 10, 30)
	if p.TotalPage != 3 {
		t.Fatalf("total_page = %d, want 3", p.TotalPage)
	}
}
