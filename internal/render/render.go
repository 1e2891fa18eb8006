// Package render executes the embedded HTML templates. Every page template
// defines a "content" block which layout.html drops into the shared shell.
package render

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"

	"yatube/web"
)

type Renderer struct {
	fs fs.FS
}

func New() *Renderer {
	sub, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		panic(err)
	}
	return &Renderer{fs: sub}
}

// String renders the named page to markup. Feed handlers use this to cache
// the result before writing it out.
func (rn *Renderer) String(name string, data any) (string, error) {
	t, err := template.ParseFS(rn.fs, "layout.html", "post_list.html", name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Fragment renders a named block from post_list.html on its own, without the
// page shell. The index cache stores this fragment so that cached markup never
// carries another viewer's nav.
func (rn *Renderer) Fragment(name string, data any) (string, error) {
	t, err := template.ParseFS(rn.fs, "post_list.html")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (rn *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	return rn.RenderStatus(w, http.StatusOK, name, data)
}

func (rn *Renderer) RenderStatus(w http.ResponseWriter, status int, name string, data any) error {
	out, err := rn.String(name, data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write([]byte(out))
	return err
}
