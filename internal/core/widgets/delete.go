package widgets

import (
	"strings"

	"github.com/bizfindr/bizfindr/internal/core/page"
)

const defaultDeleteName = "this item"

// DeleteTrigger builds a button that opens the delete confirmation for one
// record.
func DeleteTrigger(id, name string) *page.Element {
	opts := []page.Option{
		page.WithClass("btn btn-sm btn-outline-danger"),
		page.WithAttr("data-bs-toggle", "modal"),
		page.WithAttr("data-bs-target", "#"+page.IDConfirmDelete),
		page.WithAttr("data-id", id),
		page.WithText("Delete"),
	}
	if name != "" {
		opts = append(opts, page.WithAttr("data-name", name))
	}
	return page.New("button", opts...)
}

// ConfirmDelete prepares the delete dialog for trigger: the first "/0" in the
// form action becomes "/<data-id>" and the item name is shown in the dialog.
// It reports whether the dialog form was found.
func ConfirmDelete(doc *page.Document, trigger *page.Element) bool {
	form := doc.ByID(page.IDDeleteForm)
	if form == nil || trigger == nil {
		return false
	}

	id, _ := doc.Attr(trigger, "data-id")
	name, _ := doc.Attr(trigger, "data-name")
	if name == "" {
		name = defaultDeleteName
	}

	action, _ := doc.Attr(form, page.AttrAction)
	doc.SetAttr(form, page.AttrAction, strings.Replace(action, "/0", "/"+id, 1))

	if label := doc.ByID(page.IDDeleteItemName); label != nil {
		doc.SetText(label, name)
	}
	return true
}
