package render

import (
	"io"
	"log"

	"datapreview/domain/preview"
	"datapreview/internal/errors"

	"github.com/PuerkitoBio/goquery"
)

// DiscoveredBinding is a trigger found in a page, with whether its container exists
type DiscoveredBinding struct {
	preview.Binding
	HasContainer bool
}

// DiscoverBindings scans a page for preview triggers, the elements opening a
// preview dialog. Triggers for other dialogs are ignored. A trigger whose
// container is absent is still reported; it can never display anything.
func DiscoverBindings(r io.Reader) ([]DiscoveredBinding, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.InvalidInput("unreadable page: " + err.Error())
	}

	var found []DiscoveredBinding
	seen := make(map[string]bool)
	doc.Find(`[data-bs-toggle="modal"]`).Each(func(_ int, s *goquery.Selection) {
		target, _ := s.Attr("data-bs-target")
		fileID, ok := preview.ParseModalTarget(target)
		if !ok || seen[fileID] {
			return
		}
		seen[fileID] = true

		b := preview.NewBinding(fileID)
		hasContainer := doc.Find("[id]").FilterFunction(func(_ int, el *goquery.Selection) bool {
			id, _ := el.Attr("id")
			return id == b.ContainerID
		}).Length() > 0
		if !hasContainer {
			log.Printf("[Bindings] Trigger %s has no container %s", target, b.ContainerID)
		}
		found = append(found, DiscoveredBinding{Binding: b, HasContainer: hasContainer})
	})

	return found, nil
}
