package handlers

import (
	"context"
	"html/template"
	"log"
	"net/http"

	"github.com/policywise/policywise/internal/api"
	"github.com/policywise/policywise/internal/domain"
)

type DocumentLister interface {
	ListDocuments(ctx context.Context) ([]*domain.Document, error)
}

// PagesHandler serves the health endpoint and the browser pages.
type PagesHandler struct {
	docs    DocumentLister
	service string
	version string
}

func NewPagesHandler(docs DocumentLister, service, version string) *PagesHandler {
	return &PagesHandler{docs: docs, service: service, version: version}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Health reports liveness without probing dependencies.
func (h *PagesHandler) Health(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.service,
		Version: h.version,
	})
}

var documentsTemplate = template.Must(template.New("documents").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Uploaded Documents</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.5rem; text-align: left; }
th { background: #f0f0f0; }
</style>
</head>
<body>
<h1>Uploaded Documents</h1>
<table>
<tr><th>ID</th><th>Title</th><th>Type</th><th>Path</th><th>Created</th></tr>
{{range .}}
<tr>
<td>{{.ID}}</td>
<td>{{.Title}}</td>
<td>{{.Source}}</td>
<td>{{.FilePath}}</td>
<td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td>
</tr>
{{else}}
<tr><td colspan="5">No documents uploaded yet.</td></tr>
{{end}}
</table>
</body>
</html>`))

// Documents renders the document inventory as an HTML table.
func (h *PagesHandler) Documents(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docs.ListDocuments(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := documentsTemplate.Execute(w, docs); err != nil {
		// Headers are already written; log and leave the response as is.
		log.Printf("documents page: template render failed: %v", err)
	}
}

const uploadFormPage = `<!DOCTYPE html>
<html>
<head>
<title>Upload Document</title>
<style>
body { font-family: sans-serif; margin: 2rem; max-width: 40rem; }
label { display: block; margin-top: 1rem; }
#result { margin-top: 1rem; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Upload Document</h1>
<form id="upload-form">
<label>PDF file <input type="file" name="file" accept=".pdf" required></label>
<label>Document type
<select name="doc_type">
<option value="policy">policy</option>
<option value="regulation">regulation</option>
</select>
</label>
<button type="submit">Upload</button>
</form>
<div id="result"></div>
<script>
document.getElementById('upload-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const form = new FormData(e.target);
  const result = document.getElementById('result');
  result.textContent = 'Uploading...';
  try {
    const resp = await fetch('/upload', { method: 'POST', body: form });
    const body = await resp.json();
    result.textContent = resp.ok
      ? 'Uploaded: ' + body.document_id
      : 'Error: ' + (body.error || resp.status);
  } catch (err) {
    result.textContent = 'Error: ' + err;
  }
});
</script>
</body>
</html>`

// UploadForm serves the browser upload page.
func (h *PagesHandler) UploadForm(w http.ResponseWriter, r *http.Request) {
	api.HTML(w, http.StatusOK, uploadFormPage)
}

const askPage = `<!DOCTYPE html>
<html>
<head>
<title>Ask a Question</title>
<style>
body { font-family: sans-serif; margin: 2rem; max-width: 40rem; }
textarea { width: 100%; height: 5rem; }
label { display: block; margin-top: 1rem; }
#answer { margin-top: 1rem; white-space: pre-wrap; border: 1px solid #ccc; padding: 1rem; min-height: 3rem; }
</style>
</head>
<body>
<h1>Ask a Question</h1>
<form id="ask-form">
<label>Question <textarea name="question" required></textarea></label>
<label>Restrict to
<select name="source">
<option value="">all documents</option>
<option value="policy">policy</option>
<option value="regulation">regulation</option>
</select>
</label>
<button type="submit">Ask</button>
</form>
<div id="answer"></div>
<script>
document.getElementById('ask-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const form = new FormData(e.target);
  const answer = document.getElementById('answer');
  answer.textContent = 'Thinking...';
  const payload = {
    question: form.get('question'),
    source: form.get('source') || null
  };
  try {
    const resp = await fetch('/query', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(payload)
    });
    const body = await resp.json();
    answer.textContent = resp.ok ? body.answer : 'Error: ' + (body.error || resp.status);
  } catch (err) {
    answer.textContent = 'Error: ' + err;
  }
});
</script>
</body>
</html>`

// Ask serves the browser question page.
func (h *PagesHandler) Ask(w http.ResponseWriter, r *http.Request) {
	api.HTML(w, http.StatusOK, askPage)
}
