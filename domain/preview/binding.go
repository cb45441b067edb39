package preview

import (
	"net/url"
	"strings"

	"datapreview/internal/errors"
)

const (
	modalPrefix     = "previewModal"
	containerPrefix = "previewContent"
)

// Binding ties a file to the dialog that previews it and the element
// receiving the rendered content
type Binding struct {
	FileID      string
	ModalID     string
	ContainerID string
}

// NewBinding derives the dialog and container ids for fileID
func NewBinding(fileID string) Binding {
	return Binding{
		FileID:      fileID,
		ModalID:     modalPrefix + fileID,
		ContainerID: containerPrefix + fileID,
	}
}

// ModalTarget is the value of the trigger's data-bs-target attribute
func (b Binding) ModalTarget() string {
	return "#" + b.ModalID
}

// ContainerSelector selects the content container
func (b Binding) ContainerSelector() string {
	return "#" + b.ContainerID
}

// BindingTable is the explicit list of triggers a page wires up
type BindingTable struct {
	bindings []Binding
	byFile   map[string]int
}

// NewBindingTable builds a table for the given file ids, in order
func NewBindingTable(fileIDs ...string) (*BindingTable, error) {
	t := &BindingTable{byFile: make(map[string]int, len(fileIDs))}
	for _, id := range fileIDs {
		if err := t.Add(NewBinding(id)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add appends a binding; ids must be non-empty and unique
func (t *BindingTable) Add(b Binding) error {
	if b.FileID == "" {
		return errors.InvalidInput("binding has an empty file id")
	}
	if _, dup := t.byFile[b.FileID]; dup {
		return errors.InvalidInput("duplicate binding for file " + b.FileID)
	}
	t.byFile[b.FileID] = len(t.bindings)
	t.bindings = append(t.bindings, b)
	return nil
}

// Lookup returns the binding for fileID
func (t *BindingTable) Lookup(fileID string) (Binding, bool) {
	i, ok := t.byFile[fileID]
	if !ok {
		return Binding{}, false
	}
	return t.bindings[i], true
}

// All returns the bindings in insertion order
func (t *BindingTable) All() []Binding {
	return append([]Binding(nil), t.bindings...)
}

// Len returns the number of bindings
func (t *BindingTable) Len() int {
	return len(t.bindings)
}

// ParseModalTarget extracts the file id from a data-bs-target value such as
// "#previewModal42". ok is false when the target is not a preview dialog.
func ParseModalTarget(target string) (fileID string, ok bool) {
	if !strings.Contains(target, modalPrefix) {
		return "", false
	}
	fileID = strings.Replace(target, "#"+modalPrefix, "", 1)
	if fileID == "" || fileID == target {
		return "", false
	}
	return fileID, true
}

// ExportFormats lists the formats the export endpoint understands
var ExportFormats = []string{"csv", "json", "excel"}

// ExportPath builds the export link of a file. The link is only ever handed
// to the browser; this service never fetches it.
func ExportPath(fileID, format string) string {
	p := "/export/" + url.PathEscape(fileID) + "/"
	if format == "" || format == "csv" {
		return p
	}
	return p + "?format=" + url.QueryEscape(format)
}
