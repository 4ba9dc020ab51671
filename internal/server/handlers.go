package server

import (
	"crypto/subtle"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/render"
)

const draftKey = "jobform.draft"

const (
	// TokenField is the hidden form input carrying the draft's form token.
	TokenField = "_csrf"
	// TokenHeader carries the form token for script and API clients. Responses
	// set it too.
	TokenHeader = "X-CSRF-Token"

	sourcePicker = "picker"
)

// Form actions posted by the page's buttons.
const (
	actionSave         = "save"
	actionCancel       = "cancel"
	actionDeleteResume = "delete-resume"
)

// resumeResponse is the JSON body of the drop zone endpoints.
type resumeResponse struct {
	FileName string `json:"fileName"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) withDraft(c *gin.Context) {
	id, _ := c.Cookie(DraftCookie)
	draft, created := s.drafts.Resolve(id)
	if created && id != "" {
		s.log.Debug("draft expired or unknown, starting a new one", "previous", id)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(DraftCookie, draft.ID, int(s.drafts.TTL().Seconds()), "/", "", s.options.SecureCookies, true)
	c.Header(TokenHeader, draft.Token)
	c.Set(draftKey, draft)
	c.Next()
}

func draftFrom(c *gin.Context) *Draft {
	return c.MustGet(draftKey).(*Draft)
}

// validToken checks the form token from the header or, once the body is
// parsed, the hidden form field.
func validToken(c *gin.Context, draft *Draft) bool {
	token := c.GetHeader(TokenHeader)
	if token == "" {
		token = c.Request.PostForm.Get(TokenField)
	}
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(draft.Token)) == 1
}

func (s *Server) forbidPage(c *gin.Context, draft *Draft) {
	s.log.Warn("form token missing or stale", "draft", draft.ID, "path", c.Request.URL.Path)
	c.String(http.StatusForbidden, "This form has expired. Reload the page and try again.")
}

func (s *Server) forbidJSON(c *gin.Context, draft *Draft) {
	s.log.Warn("form token missing or stale", "draft", draft.ID, "path", c.Request.URL.Path)
	c.JSON(http.StatusForbidden, gin.H{"error": "This form has expired. Reload the page and try again."})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "drafts": s.drafts.Len()})
}

func (s *Server) openAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", s.options.Contract)
}

func (s *Server) showForm(c *gin.Context) {
	var page render.Page
	_ = draftFrom(c).Do(func(form *application.Form) error {
		page = render.PageFromForm(form)
		return nil
	})
	s.renderPage(c, http.StatusOK, page)
}

func (s *Server) postForm(c *gin.Context) {
	draft := draftFrom(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	if err := parseForm(c.Request); err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			s.log.Warn("unreadable form post", "draft", draft.ID, "error", err)
			c.String(http.StatusBadRequest, "unreadable form: %v", err)
			return
		}
		if !validToken(c, draft) {
			s.forbidPage(c, draft)
			return
		}
		var page render.Page
		_ = draft.Do(func(form *application.Form) error {
			rejectOversize(form, application.SourcePicker)
			page = render.PageFromForm(form)
			return nil
		})
		s.renderPage(c, http.StatusRequestEntityTooLarge, page)
		return
	}
	if c.Request.MultipartForm != nil {
		defer c.Request.MultipartForm.RemoveAll()
	}
	if !validToken(c, draft) {
		s.forbidPage(c, draft)
		return
	}

	var (
		page   render.Page
		status = http.StatusOK
	)
	err := draft.Do(func(form *application.Form) error {
		s.applyFields(c, draft, form)

		pickerRejected := false
		if header := resumeHeader(c.Request); header != nil {
			candidate, err := application.CandidateFromFileHeader(header)
			if err != nil {
				return err
			}
			accepted, err := form.Attach(application.SourcePicker, candidate)
			if err != nil {
				return err
			}
			pickerRejected = !accepted
		}

		switch c.Request.PostForm.Get("action") {
		case actionSave:
			if pickerRejected {
				// Submitting would replace the resume error and send the
				// previously attached file.
				s.log.Info("save held back, picked resume was rejected", "draft", draft.ID)
				status = http.StatusUnprocessableEntity
				break
			}
			outcome, err := form.Submit(c.Request.Context(), s.submitter)
			if err != nil {
				s.log.Error("application submission failed", "draft", draft.ID, "error", err)
			}
			switch outcome.Status {
			case application.StatusSubmitted:
				s.log.Info("application submitted", "draft", draft.ID, "receipt", outcome.Receipt.ID)
			case application.StatusInvalid, application.StatusRejected:
				status = http.StatusUnprocessableEntity
			}
		case actionCancel:
			form.Cancel()
		case actionDeleteResume:
			form.DeleteResume()
		}

		page = render.PageFromForm(form)
		return nil
	})
	if err != nil {
		s.log.Error("resume intake failed", "draft", draft.ID, "error", err)
		c.String(http.StatusInternalServerError, "could not read the uploaded file")
		return
	}
	s.renderPage(c, status, page)
}

func (s *Server) applyFields(c *gin.Context, draft *Draft, form *application.Form) {
	for _, name := range application.TextFields() {
		values, ok := c.Request.PostForm[name]
		if !ok || len(values) == 0 {
			continue
		}
		if err := form.SetField(name, values[0]); err != nil {
			s.log.Warn("ignoring field", "draft", draft.ID, "field", name, "error", err)
		}
	}
}

func (s *Server) dropResume(c *gin.Context) {
	draft := draftFrom(c)
	source := application.SourceDrop
	if c.Query("source") == sourcePicker {
		source = application.SourcePicker
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	if err := parseForm(c.Request); err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
			return
		}
		if !validToken(c, draft) {
			s.forbidJSON(c, draft)
			return
		}
		var resp resumeResponse
		_ = draft.Do(func(form *application.Form) error {
			rejectOversize(form, source)
			resp = resumeStatus(form)
			return nil
		})
		c.JSON(http.StatusRequestEntityTooLarge, resp)
		return
	}
	if c.Request.MultipartForm != nil {
		defer c.Request.MultipartForm.RemoveAll()
	}
	if !validToken(c, draft) {
		s.forbidJSON(c, draft)
		return
	}

	header := resumeHeader(c.Request)
	if header == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a resume file part is required"})
		return
	}
	candidate, err := application.CandidateFromFileHeader(header)
	if err != nil {
		s.log.Error("resume intake failed", "draft", draft.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read the uploaded file"})
		return
	}

	var (
		resp     resumeResponse
		accepted bool
	)
	err = draft.Do(func(form *application.Form) error {
		var attachErr error
		accepted, attachErr = form.Attach(source, candidate)
		resp = resumeStatus(form)
		return attachErr
	})
	if err != nil {
		s.log.Error("resume intake failed", "draft", draft.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read the uploaded file"})
		return
	}
	if !accepted {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) deleteResume(c *gin.Context) {
	draft := draftFrom(c)
	if !validToken(c, draft) {
		s.forbidJSON(c, draft)
		return
	}

	var resp resumeResponse
	_ = draft.Do(func(form *application.Form) error {
		form.DeleteResume()
		resp = resumeStatus(form)
		return nil
	})
	c.JSON(http.StatusOK, resp)
}

func (s *Server) renderPage(c *gin.Context, status int, page render.Page) {
	renderer, err := s.pickRenderer(c)
	if err != nil {
		s.log.Error("no renderer", "error", err)
		c.String(http.StatusInternalServerError, "no renderer available")
		return
	}

	out, err := renderer.Render(c.Request.Context(), page, render.RenderOptions{
		Action:       "/",
		ResumeAction: "/resume",
		Title:        s.options.Title,
		Intro:        s.options.Intro,
		Theme:        s.options.Theme,
		AssetBase:    "/runtime",
		Hidden:       render.MergeHiddenFields(nil, render.CSRFToken(TokenField, draftFrom(c).Token)),
	})
	if err != nil {
		s.log.Error("render failed", "renderer", renderer.Name(), "error", err)
		c.String(http.StatusInternalServerError, "could not render the form")
		return
	}
	c.Data(status, renderer.ContentType(), out)
}

func (s *Server) pickRenderer(c *gin.Context) (render.Renderer, error) {
	if c.Query("format") == jsonRenderer {
		return s.renderers.Get(jsonRenderer)
	}
	return s.renderers.Negotiate(c.GetHeader("Accept"), htmlRenderer)
}

func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxMultipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// resumeHeader returns the uploaded resume, or nil when the part is missing
// or the picker was left empty.
func resumeHeader(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[application.FieldResume]
	if len(headers) == 0 {
		return nil
	}
	header := headers[0]
	if header.Filename == "" && header.Size == 0 {
		return nil
	}
	return header
}

// rejectOversize records a size rejection for an upload whose body exceeded
// the request limit before it could be read.
func rejectOversize(form *application.Form, source application.Source) {
	_, _ = form.Attach(source, application.Candidate{
		Name:      "upload",
		MediaType: application.ContentTypePDF,
		Size:      application.MaxResumeSizeBytes + 1,
	})
}

func resumeStatus(form *application.Form) resumeResponse {
	return resumeResponse{
		FileName: form.ResumeFileName(),
		Error:    form.Errors().Get(application.FieldResume),
	}
}
