package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"mock-interview/internal/catalog"
	"mock-interview/internal/resume"
	"mock-interview/internal/session"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) ExtractText(string, io.Reader) (string, error) {
	return s.text, s.err
}

func newTestServer(t *testing.T, cat *catalog.Catalog, ex resume.Extractor) http.Handler {
	t.Helper()
	if cat == nil {
		var err error
		cat, err = catalog.Default()
		if err != nil {
			t.Fatalf("default catalog: %v", err)
		}
	}
	store := session.NewStore(0)
	t.Cleanup(store.Close)
	a := NewAPI(zap.NewNop(), cat, store, ex, 10<<20)
	return NewRouter(a, "")
}

func uploadResume(t *testing.T, h http.Handler, contents []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", "resume.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(contents); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func mustUpload(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := uploadResume(t, h, []byte("%PDF-stub"))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rr.Code, rr.Body.String())
	}
	var resp uploadResponse
	decode(t, rr, &resp)
	if !resp.Success || resp.SessionID == "" {
		t.Fatalf("bad upload response: %+v", resp)
	}
	return resp.SessionID
}

func TestRolesEndpoint(t *testing.T) {
	h := newTestServer(t, nil, stubExtractor{})

	req := httptest.NewRequest(http.MethodGet, "/api/roles", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var roles map[string]catalog.Role
	decode(t, rr, &roles)
	if len(roles) != 10 {
		t.Fatalf("expected 10 roles, got %d", len(roles))
	}
	if roles["backend-developer"].Name != "Backend Developer" {
		t.Fatalf("backend-developer = %+v", roles["backend-developer"])
	}
}

func TestUploadResponseShape(t *testing.T) {
	text := strings.Repeat("r", 300)
	h := newTestServer(t, nil, stubExtractor{text: text})

	rr := uploadResume(t, h, []byte("%PDF-stub"))
	var resp uploadResponse
	decode(t, rr, &resp)

	if resp.Message != "Resume uploaded successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if want := strings.Repeat("r", 200) + "..."; resp.ResumePreview != want {
		t.Errorf("preview = %q (len %d)", resp.ResumePreview, len(resp.ResumePreview))
	}
}

func TestUploadMissingFile(t *testing.T) {
	h := newTestServer(t, nil, stubExtractor{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("unrelated", "value")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp errorResponse
	decode(t, rr, &resp)
	if resp.Error != "No resume file uploaded." {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestUploadRejectsCorruptPDF(t *testing.T) {
	// Real parser: the magic-byte check fires before any conversion tooling.
	h := newTestServer(t, nil, resume.NewParser())

	rr := uploadResume(t, h, []byte("certainly not a pdf"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var resp errorResponse
	decode(t, rr, &resp)
	if !strings.Contains(resp.Error, "valid PDF") {
		t.Fatalf("error %q should mention a valid PDF", resp.Error)
	}
}

func TestUploadExtractionFailure(t *testing.T) {
	h := newTestServer(t, nil, stubExtractor{err: io.ErrUnexpectedEOF})

	rr := uploadResume(t, h, []byte("%PDF-stub"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp errorResponse
	decode(t, rr, &resp)
	if resp.Error != "Failed to upload resume due to an unexpected error." {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestInterviewFlow(t *testing.T) {
	h := newTestServer(t, nil, stubExtractor{text: "Experienced with APIs and databases"})
	id := mustUpload(t, h)

	rr := postJSON(t, h, "/api/start-interview", startInterviewRequest{SessionID: id, RoleKey: "backend-developer"})
	if rr.Code != http.StatusOK {
		t.Fatalf("start status = %d, body %s", rr.Code, rr.Body.String())
	}
	var start startInterviewResponse
	decode(t, rr, &start)
	if start.RoleName != "Backend Developer" || start.SessionID != id {
		t.Fatalf("start response: %+v", start)
	}
	if want := "Discuss the principles of designing RESTful APIs and common authentication methods."; start.Question != want {
		t.Fatalf("first question = %q, want %q", start.Question, want)
	}

	// The six-entry bank yields question numbers 2..6, then fallback.
	for want := 2; want <= 6; want++ {
		rr := postJSON(t, h, "/api/submit-answer", submitAnswerRequest{SessionID: id, UserAnswer: "my answer"})
		if rr.Code != http.StatusOK {
			t.Fatalf("submit %d status = %d", want, rr.Code)
		}
		var ans submitAnswerResponse
		decode(t, rr, &ans)
		if num, ok := ans.QuestionNumber.(float64); !ok || int(num) != want {
			t.Fatalf("questionNumber = %v, want %d", ans.QuestionNumber, want)
		}
		if ans.NextQuestion == "" {
			t.Fatal("empty next question")
		}
	}

	for i := 0; i < 2; i++ {
		rr := postJSON(t, h, "/api/submit-answer", submitAnswerRequest{SessionID: id, UserAnswer: "another answer"})
		var ans submitAnswerResponse
		decode(t, rr, &ans)
		if ans.QuestionNumber != "AI-generated" {
			t.Fatalf("exhausted bank: questionNumber = %v, want AI-generated", ans.QuestionNumber)
		}
	}

	rr = postJSON(t, h, "/api/get-feedback", feedbackRequest{SessionID: id})
	if rr.Code != http.StatusOK {
		t.Fatalf("feedback status = %d", rr.Code)
	}
	var fb feedbackResponse
	decode(t, rr, &fb)
	if !fb.Success || fb.RoleName != "Backend Developer" {
		t.Fatalf("feedback response: %+v", fb)
	}
	// 1 opening + 5 bank + 2 fallback questions were asked.
	if fb.TotalQuestions != 8 {
		t.Errorf("totalQuestions = %d, want 8", fb.TotalQuestions)
	}
	if !strings.Contains(fb.Feedback, "Overall Performance Score:") {
		t.Errorf("feedback report missing score section:\n%s", fb.Feedback)
	}
	if !strings.Contains(fb.Feedback, "APIs") {
		t.Errorf("feedback report missing matched skill:\n%s", fb.Feedback)
	}
	if fb.SessionData.FileName != "resume.pdf" {
		t.Errorf("sessionData.fileName = %q", fb.SessionData.FileName)
	}
	if fb.SessionData.UploadTime.IsZero() {
		t.Error("sessionData.uploadTime not set")
	}

	// Feedback is read-only: answers are still accepted afterwards.
	rr = postJSON(t, h, "/api/submit-answer", submitAnswerRequest{SessionID: id, UserAnswer: "late answer"})
	if rr.Code != http.StatusOK {
		t.Fatalf("post-feedback submit status = %d", rr.Code)
	}
}

func TestFallbackOpeningForRoleWithoutBank(t *testing.T) {
	yaml := `roles:
  - key: platform-engineer
    name: Platform Engineer
    skills: [Kubernetes, Terraform, observability]
`
	path := filepath.Join(t.TempDir(), "roles.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	h := newTestServer(t, cat, stubExtractor{text: "resume"})
	id := mustUpload(t, h)

	rr := postJSON(t, h, "/api/start-interview", startInterviewRequest{SessionID: id, RoleKey: "platform-engineer"})
	var start startInterviewResponse
	decode(t, rr, &start)
	if !strings.Contains(start.Question, "Kubernetes, Terraform, observability") {
		t.Fatalf("expected generated opening question, got %q", start.Question)
	}

	rr = postJSON(t, h, "/api/submit-answer", submitAnswerRequest{SessionID: id, UserAnswer: "answer"})
	var ans submitAnswerResponse
	decode(t, rr, &ans)
	if ans.QuestionNumber != "AI-generated" {
		t.Fatalf("questionNumber = %v, want AI-generated", ans.QuestionNumber)
	}
}

func TestStartInterviewInvalidRole(t *testing.T) {
	h := newTestServer(t, nil, stubExtractor{text: "resume"})
	id := mustUpload(t, h)

	rr := postJSON(t, h, "/api/start-interview", startInterviewRequest{SessionID: id, RoleKey: "pastry-chef"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp errorResponse
	decode(t, rr, &resp)
	if resp.Error != "Invalid role selected" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestSubmitAnswerWithoutRole(t *testing.T) {
	h := newTestServer(t, nil, stubExtractor{text: "resume"})
	id := mustUpload(t, h)

	rr := postJSON(t, h, "/api/submit-answer", submitAnswerRequest{SessionID: id, UserAnswer: "hello"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp errorResponse
	decode(t, rr, &resp)
	if resp.Error != "No role selected for this session" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestUnknownSessionID(t *testing.T) {
	h := newTestServer(t, nil, stubExtractor{})

	paths := map[string]any{
		"/api/start-interview": startInterviewRequest{SessionID: "nope", RoleKey: "backend-developer"},
		"/api/submit-answer":   submitAnswerRequest{SessionID: "nope", UserAnswer: "a"},
		"/api/get-feedback":    feedbackRequest{SessionID: "nope"},
	}
	for path, body := range paths {
		rr := postJSON(t, h, path, body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", path, rr.Code)
			continue
		}
		var resp errorResponse
		decode(t, rr, &resp)
		if resp.Error != "Invalid session ID" {
			t.Errorf("%s: error = %q", path, resp.Error)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, nil, stubExtractor{})

	req := httptest.NewRequest(http.MethodGet, "/api/submit-answer", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/roles", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, nil, stubExtractor{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}
