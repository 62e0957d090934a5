package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	appdraft "github.com/bryanwahyu/contractlens/internal/application/drafting"
	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
	"github.com/bryanwahyu/contractlens/internal/middleware"
)

// POST /templates/
// Form: file (PDF), name (optional, defaults to the file name)
func (r *Router) handleTemplateExtract(w http.ResponseWriter, req *http.Request) error {
	if err := r.parseMultipart(w, req); err != nil {
		return err
	}
	files := req.MultipartForm.File["file"]
	if len(files) != 1 {
		return badRequest("exactly one PDF file is required")
	}
	fh := files[0]
	if err := middleware.ValidatePDFFilename(fh.Filename); err != nil {
		return badRequest("%s", err.Error())
	}

	name := middleware.SanitizeString(req.FormValue("name"))
	if name == "" {
		name = appdraft.NameFromFile(fh.Filename)
	}

	upload, err := readUpload(fh)
	if err != nil {
		return err
	}
	ex := r.extractor.ExtractAll(req.Context(), []domain.Upload{upload})[0]
	if ex.Err != nil {
		return badRequest("Could not extract text from %s: %v", fh.Filename, ex.Err)
	}

	tpl, err := r.drafting.ExtractTemplate(req.Context(), name, ex.Text)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, tpl)
}

// GET /templates/{name}/placeholders
func (r *Router) handlePlaceholders(w http.ResponseWriter, req *http.Request) error {
	name := chi.URLParam(req, "name")
	ph, err := r.drafting.Placeholders(req.Context(), name)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"name": name, "placeholders": ph})
}

// POST /templates/{name}/generate
// Body: {"values": {"Placeholder": "value"}, "use_llm": false}
func (r *Router) handleGenerate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Values map[string]string `json:"values"`
		UseLLM bool              `json:"use_llm"`
	}
	if err := r.decodeJSON(w, req, &body); err != nil {
		return err
	}
	out, err := r.drafting.Generate(req.Context(), chi.URLParam(req, "name"), body.Values, body.UseLLM)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"generated_contract": out})
}

// POST /contracts/modify
// Body: {"contract": "...", "request": "..."} or {"contract": "...", "requests": ["...", "..."]}
func (r *Router) handleModify(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Contract string   `json:"contract"`
		Request  string   `json:"request"`
		Requests []string `json:"requests"`
	}
	if err := r.decodeJSON(w, req, &body); err != nil {
		return err
	}

	var (
		out string
		err error
	)
	if len(body.Requests) > 0 {
		out, err = r.drafting.BatchModify(req.Context(), body.Contract, body.Requests)
	} else {
		out, err = r.drafting.Modify(req.Context(), body.Contract, body.Request)
	}
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"modified_contract": out})
}

// POST /contracts/sections
func (r *Router) handleSections(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Contract string `json:"contract"`
	}
	if err := r.decodeJSON(w, req, &body); err != nil {
		return err
	}
	summary, err := r.drafting.Sections(req.Context(), body.Contract)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// POST /contracts/style
// Body: {"text": "...", "instructions": "..."}; responds with an HTML document
func (r *Router) handleStyle(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text         string `json:"text"`
		Instructions string `json:"instructions"`
	}
	if err := r.decodeJSON(w, req, &body); err != nil {
		return err
	}
	html, err := r.drafting.Style(req.Context(), body.Text, body.Instructions)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = w.Write([]byte(html))
	return err
}
