package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	apperrors "github.com/kbukum/oasisdoc/errors"
	"github.com/kbukum/oasisdoc/internal/api"
	"github.com/kbukum/oasisdoc/oasis"
	"github.com/kbukum/oasisdoc/transcription"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	transcripts []string
	upload      transcription.Request
	audio       string
	result      *oasis.TranscriptionResult
	err         error
}

func (f *fakeService) GenerateDocumentation(_ context.Context, transcript string) *oasis.Result {
	f.transcripts = append(f.transcripts, transcript)
	return &oasis.Result{
		Elements: map[string]map[string]any{"M1800": nil},
		Errors:   map[string]string{},
		Status:   map[string]oasis.Status{"M1800": oasis.StatusInsufficient},
	}
}

func (f *fakeService) Transcribe(_ context.Context, req transcription.Request) (*oasis.TranscriptionResult, error) {
	f.upload = req
	if req.Audio != nil {
		b, _ := io.ReadAll(req.Audio)
		f.audio = string(b)
	}
	return f.result, f.err
}

func (f *fakeService) Elements() []oasis.Element {
	return []oasis.Element{{ID: "M1800", Name: "Grooming"}, {ID: "vitals", Name: "Vital Signs"}}
}

func newRouter(svc api.Service) *gin.Engine {
	r := gin.New()
	api.NewHandler(svc, nil).Register(r)
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) apperrors.ErrorCode {
	t.Helper()
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body.Error == nil {
		t.Fatalf("not an error envelope: %v (%s)", err, rr.Body.String())
	}
	return body.Error.Code
}

func audioUpload(t *testing.T, filename, contentType, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte(content))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/transcribe", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// ---------------------------------------------------------------------------
// POST /generate_documentation
// ---------------------------------------------------------------------------

func TestGenerateDocumentation(t *testing.T) {
	svc := &fakeService{}
	rr := do(newRouter(svc), httptest.NewRequest(http.MethodPost, "/generate_documentation",
		strings.NewReader(`{"transcript":"Patient says they feel dizzy."}`)))

	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s", rr.Code, rr.Body.String())
	}
	var body struct {
		Data oasis.Result `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if _, ok := body.Data.Elements["M1800"]; !ok {
		t.Errorf("M1800 missing from elements: %s", rr.Body.String())
	}
	if diff := cmp.Diff([]string{"Patient says they feel dizzy."}, svc.transcripts); diff != "" {
		t.Errorf("transcripts (-want +got):\n%s", diff)
	}
}

func TestGenerateDocumentation_EmptyTranscriptAccepted(t *testing.T) {
	svc := &fakeService{}
	rr := do(newRouter(svc), httptest.NewRequest(http.MethodPost, "/generate_documentation",
		strings.NewReader(`{"transcript":""}`)))

	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s", rr.Code, rr.Body.String())
	}
	if len(svc.transcripts) != 1 || svc.transcripts[0] != "" {
		t.Errorf("transcripts = %q", svc.transcripts)
	}
}

func TestGenerateDocumentation_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want apperrors.ErrorCode
	}{
		{"missing field", `{}`, apperrors.ErrCodeMissingField},
		{"null field", `{"transcript":null}`, apperrors.ErrCodeMissingField},
		{"not json", `transcript please`, apperrors.ErrCodeInvalidInput},
		{"wrong type", `{"transcript":42}`, apperrors.ErrCodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{}
			rr := do(newRouter(svc), httptest.NewRequest(http.MethodPost, "/generate_documentation", strings.NewReader(tc.body)))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("code = %d", rr.Code)
			}
			if got := errorCode(t, rr); got != tc.want {
				t.Errorf("code = %s, want %s", got, tc.want)
			}
			if len(svc.transcripts) != 0 {
				t.Error("pipeline must not run on a bad request")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// POST /transcribe
// ---------------------------------------------------------------------------

func TestTranscribe(t *testing.T) {
	svc := &fakeService{result: &oasis.TranscriptionResult{
		Transcript:  "Clinician examined patient. Patient says they feel dizzy.",
		Diarization: oasis.Diarization{Clinician: "Clinician examined patient.", Patient: "Patient says they feel dizzy."},
	}}
	rr := do(newRouter(svc), audioUpload(t, "visit.wav", "audio/wav", "RIFF"))

	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s", rr.Code, rr.Body.String())
	}
	var body struct {
		Data oasis.TranscriptionResult `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*svc.result, body.Data); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}
	if svc.upload.FileName != "visit.wav" || svc.upload.ContentType != "audio/wav" || svc.audio != "RIFF" {
		t.Errorf("unexpected upload %+v audio=%q", svc.upload, svc.audio)
	}
}

func TestTranscribe_Rejections(t *testing.T) {
	t.Run("non audio content type", func(t *testing.T) {
		rr := do(newRouter(&fakeService{}), audioUpload(t, "notes.txt", "text/plain", "hello"))
		if rr.Code != http.StatusBadRequest || errorCode(t, rr) != apperrors.ErrCodeInvalidFormat {
			t.Errorf("code = %d body=%s", rr.Code, rr.Body.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/transcribe", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		rr := do(newRouter(&fakeService{}), req)
		if rr.Code != http.StatusBadRequest || errorCode(t, rr) != apperrors.ErrCodeMissingField {
			t.Errorf("code = %d body=%s", rr.Code, rr.Body.String())
		}
	})
}

func TestTranscribe_Failure(t *testing.T) {
	svc := &fakeService{err: apperrors.TranscriptionFailed(io.ErrUnexpectedEOF)}
	rr := do(newRouter(svc), audioUpload(t, "visit.mp3", "audio/mpeg", "ID3"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rr.Code)
	}
	if got := errorCode(t, rr); got != apperrors.ErrCodeTranscriptionFailed {
		t.Errorf("code = %s", got)
	}
}

// ---------------------------------------------------------------------------
// GET /elements
// ---------------------------------------------------------------------------

func TestElements(t *testing.T) {
	rr := do(newRouter(&fakeService{}), httptest.NewRequest(http.MethodGet, "/elements", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d", rr.Code)
	}
	var body struct {
		Data []oasis.Element `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	ids := make([]string, 0, len(body.Data))
	for _, el := range body.Data {
		ids = append(ids, el.ID)
	}
	if diff := cmp.Diff([]string{"M1800", "vitals"}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
}
