package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/url"

	"datapreview/domain/dataset"
	"datapreview/domain/preview"
	"datapreview/internal/i18n"
)

//go:embed templates/*.html static
var embeddedFiles embed.FS

// Renderer turns preview view models into HTML for one language
type Renderer struct {
	templates *template.Template
	loc       *i18n.Localizer
}

// FileEntry is one row of the index page
type FileEntry struct {
	File    dataset.File
	Binding preview.Binding
}

// BindingData is the client-side shape of a binding
type BindingData struct {
	FileID      string `json:"fileId"`
	ModalTarget string `json:"modalTarget"`
	ContainerID string `json:"containerId"`
	FragmentURL string `json:"fragmentUrl"`
	StreamURL   string `json:"streamUrl"`
}

// IndexData feeds the file list page
type IndexData struct {
	Files    []FileEntry
	Bindings []BindingData
}

// StatisticsData feeds the statistics page
type StatisticsData struct {
	FileID  string
	Title   string
	Message string
	View    preview.View
}

// NewRenderer parses the embedded templates
func NewRenderer(loc *i18n.Localizer) (*Renderer, error) {
	funcMap := template.FuncMap{
		"t":             func(key string) string { return loc.T(i18n.Key(key)) },
		"label":         func(f preview.Field) string { return loc.T(i18n.FieldLabel(f)) },
		"fieldKey":      func(f preview.Field) string { return f.Key() },
		"fields":        preview.Fields,
		"exportPath":    preview.ExportPath,
		"exportFormats": func() []string { return preview.ExportFormats },
		"lang":          func() string { return loc.Tag().String() },
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		templates: templates,
		loc:       loc,
	}, nil
}

// StaticFS exposes the embedded browser scripts
func StaticFS() fs.FS {
	sub, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Localizer returns the language the renderer writes in
func (r *Renderer) Localizer() *i18n.Localizer {
	return r.loc
}

// Loading renders the loading indicator
func (r *Renderer) Loading() (template.HTML, error) {
	return r.fragment("loading", nil)
}

// ErrorPanel renders message inside an alert, escaped
func (r *Renderer) ErrorPanel(message string) (template.HTML, error) {
	return r.fragment("error_panel", message)
}

// Preview renders the optional stats panel followed by the data table
func (r *Renderer) Preview(resp *preview.Response) (template.HTML, error) {
	return r.fragment("preview", preview.NewView(resp))
}

// LoadFailedMessage is the generic text shown when a preview cannot be loaded
func (r *Renderer) LoadFailedMessage() string {
	return r.loc.T(i18n.LoadFailed)
}

// IndexPage renders the file list with one preview trigger per file
func (r *Renderer) IndexPage(files []dataset.File) ([]byte, error) {
	ids := make([]string, len(files))
	for i, f := range files {
		ids[i] = f.ID
	}
	table, err := preview.NewBindingTable(ids...)
	if err != nil {
		return nil, err
	}

	data := IndexData{}
	for i, b := range table.All() {
		data.Files = append(data.Files, FileEntry{File: files[i], Binding: b})
		data.Bindings = append(data.Bindings, BindingData{
			FileID:      b.FileID,
			ModalTarget: b.ModalTarget(),
			ContainerID: b.ContainerID,
			FragmentURL: FragmentURL(b.FileID),
			StreamURL:   StreamURL(b.FileID),
		})
	}
	return r.page("index", data)
}

// StatisticsPage renders the statistics table of one file
func (r *Renderer) StatisticsPage(data StatisticsData) ([]byte, error) {
	return r.page("statistics", data)
}

func (r *Renderer) fragment(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[Render] Template error for %s: %v", name, err)
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) page(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[Render] Template error for %s: %v (data %T)", name, err, data)
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// FragmentURL is the route serving the final preview content of a file
func FragmentURL(fileID string) string {
	return "/ui/preview/" + url.PathEscape(fileID)
}

// StreamURL is the route streaming every container replacement of a file
func StreamURL(fileID string) string {
	return FragmentURL(fileID) + "/stream"
}
