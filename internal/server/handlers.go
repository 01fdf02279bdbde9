package server

import (
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/i18n"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

const maxMemory = 32 << 20

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.page(w, http.StatusOK, "index", map[string]any{
		"handles": s.Definitions().Handles(),
		"lang":    s.env.Config.Form.Lang,
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (definition.Definition, bool) {
	handle := chi.URLParam(r, "handle")
	def, ok := s.Definitions().Get(handle)
	if !ok {
		http.NotFound(w, r)
		return definition.Definition{}, false
	}
	return def, true
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	token, err := s.csrfToken(w, r)
	if err != nil {
		s.fail(w, "csrf token", err)
		return
	}

	opts := []form.Option{
		form.WithAction(r.URL.Path),
		form.WithAntiForgery(session.CSRF{FieldName: session.DefaultTokenField, Token: token}),
	}
	if flash := s.pullFlash(w, r); flash != nil {
		opts = append(opts, form.WithOldInput(flash.OldInput))
		if bag := flash.Errors.Bag(def.Handle); bag != nil {
			opts = append(opts, form.WithErrors(bag))
		}
	}

	f, err := s.env.Build(def, opts...)
	if err != nil {
		s.fail(w, "build form", err)
		return
	}
	markup, err := f.Render()
	if err != nil {
		s.fail(w, "render form", err)
		return
	}
	s.page(w, http.StatusOK, "form", map[string]any{
		"title":     def.Handle,
		"lang":      f.Lang(),
		"form":      string(markup),
		"scripts":   string(f.Scripts()),
		"submitted": r.URL.Query().Get("submitted") == "1",
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	cookie, err := r.Cookie(s.csrfCookie)
	expected := session.CSRF{}
	if err == nil {
		expected.Token = cookie.Value
	}
	if !expected.Verify(r.PostForm.Get(session.DefaultTokenField)) {
		s.logger.Warn("csrf mismatch", zap.String("form", def.Handle))
		http.Error(w, "invalid anti-forgery token", http.StatusForbidden)
		return
	}

	f, err := s.env.Build(def)
	if err != nil {
		s.fail(w, "build form", err)
		return
	}
	input := session.OldInputFromValues(r.PostForm, session.DefaultTokenField, render.MethodFieldName, form.SubmitName)
	result := validation.Validate(f, input)
	if result.Valid {
		s.logger.Info("submission accepted", zap.String("form", def.Handle), zap.Strings("fields", keys(input)))
		http.Redirect(w, r, r.URL.Path+"?submitted=1", http.StatusSeeOther)
		return
	}

	for _, field := range f.Fields() {
		if field.Type == form.TypePassword {
			delete(input, field.Name)
		}
	}
	flash := &session.Flash{OldInput: input, Errors: session.ErrorBags{}}
	flash.Errors.Put(def.Handle, result.Bag())

	id, err := session.NewToken(16)
	if err != nil {
		s.fail(w, "flash id", err)
		return
	}
	if err := s.flash.Put(r.Context(), id, flash, s.ttl); err != nil {
		s.fail(w, "store flash", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Info("submission rejected", zap.String("form", def.Handle), zap.Int("issues", len(result.Issues)))
	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

// csrfToken reuses the token cookie or issues a new one.
func (s *Server) csrfToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(s.csrfCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	token, err := session.NewToken(32)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.csrfCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

func (s *Server) pullFlash(w http.ResponseWriter, r *http.Request) *session.Flash {
	cookie, err := r.Cookie(FlashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: FlashCookie, Value: "", Path: "/", MaxAge: -1})
	flash, err := s.flash.Pull(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, session.ErrFlashNotFound) {
			s.logger.Warn("flash pull failed", zap.Error(err))
		}
		return nil
	}
	return flash
}

func (s *Server) page(w http.ResponseWriter, status int, name string, data map[string]any) {
	lang, _ := data["lang"].(string)
	var translator i18n.Translator
	if s.env.Translator != nil {
		translator = s.env.Translator
	}
	for key, fn := range i18n.TemplateFuncs(translator, lang, nil) {
		data[key] = fn
	}
	out, err := s.pages.RenderTemplate(name, data)
	if err != nil {
		s.fail(w, "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(out))
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.logger.Error(what, zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func keys(input session.OldInput) []string {
	out := make([]string, 0, len(input))
	for k := range input {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
