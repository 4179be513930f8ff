package http

import (
	"net/http"

	"go.uber.org/zap"
)

// PageHandler serves the static pages: home, about, and the contact form.
type PageHandler struct {
	// Renderer writes the HTML pages.
	Renderer *Renderer
	// Log records contact-form submissions.
	Log *zap.Logger
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, "index.html", nil)
}

// About handles GET /about.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, "about.html", nil)
}

// ContactForm handles GET /contact.
func (h *PageHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, "contact.html", nil)
}

// Contact handles POST /contact. Submissions are logged and discarded; the
// form re-renders with a success message.
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	h.Log.Info("contact form submission",
		zap.String("name", r.FormValue("name")),
		zap.String("email", r.FormValue("email")),
		zap.String("subject", r.FormValue("subject")),
		zap.String("message", r.FormValue("message")),
	)

	h.Renderer.Render(w, r, "contact.html", map[string]any{
		"Success": "Your message has been sent!",
	})
}
