package web

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var files embed.FS

// Templates parses the embedded admin page templates. Panics on a broken
// embed, which only happens at build time.
func Templates() *template.Template {
	return template.Must(template.New("admin").ParseFS(files, "templates/*.tmpl"))
}

// ModalData drives the delete-confirmation modal. The modal is stateless:
// it renders nothing unless Open is set, and Count only feeds the
// pluralized message.
type ModalData struct {
	Open  bool
	Count int
}

type SignInData struct {
	Error    string
	Redirect string
}

type HomeData struct {
	Email string
	// BookingIDs is the JSON-encoded selection carried through the
	// confirm step into the delete form's hidden field.
	BookingIDs string
	Modal      ModalData
}

// RenderModal writes the confirmation modal partial on its own, used by
// fragment responses and tests.
func RenderModal(w io.Writer, data ModalData) error {
	return Templates().ExecuteTemplate(w, "confirm_modal", data)
}
