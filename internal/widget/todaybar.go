// Package widget renders the today bar into an HTML document: a labeled
// date input bound to the stored manual today value. The mount point is
// looked up by id; a page without one is a valid no-op.
package widget

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/structhr/structhr/internal/today"
)

// Element ids forming the page contract.
const (
	MountPointID = "today-bar"
	InputID      = "today-input"
)

// TodayBar injects a date input bound to the today store and broadcasts a
// change notification on every user-driven change. It has two states,
// unmounted and mounted; the transition is one-way and happens at most
// once per instance.
type TodayBar struct {
	store    *today.Store
	notifier *today.Notifier
	mounted  bool
}

// NewTodayBar creates an unmounted bar over the given store and notifier.
func NewTodayBar(store *today.Store, notifier *today.Notifier) *TodayBar {
	return &TodayBar{store: store, notifier: notifier}
}

// Mounted reports whether the bar has been rendered into a document.
func (b *TodayBar) Mounted() bool {
	return b.mounted
}

// Mount renders the input into the document's mount point, pre-populated
// with the stored value (empty when absent). A missing mount point is not
// an error: the bar stays unmounted and the document is left untouched.
// Returns whether the bar is mounted after the call.
func (b *TodayBar) Mount(ctx context.Context, doc *html.Node) (bool, error) {
	if b.mounted {
		return true, nil
	}

	container := FindByID(doc, MountPointID)
	if container == nil {
		return false, nil
	}

	value, _, err := b.store.GetToday(ctx)
	if err != nil {
		return false, fmt.Errorf("read stored today: %w", err)
	}

	label := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Label,
		Data:     "label",
		Attr:     []html.Attribute{{Key: "for", Val: InputID}},
	}
	label.AppendChild(&html.Node{Type: html.TextNode, Data: "Today: "})

	input := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Input,
		Data:     "input",
		Attr: []html.Attribute{
			{Key: "type", Val: "date"},
			{Key: "id", Val: InputID},
			{Key: "value", Val: value},
		},
	}

	container.AppendChild(label)
	container.AppendChild(input)

	b.mounted = true
	return true, nil
}

// HandleChange processes a user-driven change of the input: the raw value
// is written through the store, then exactly one change notification is
// broadcast. Calling it on an unmounted bar is an error.
func (b *TodayBar) HandleChange(ctx context.Context, value string) error {
	if !b.mounted {
		return fmt.Errorf("today bar is not mounted")
	}

	if err := b.store.SetToday(ctx, value); err != nil {
		return err
	}

	if b.notifier != nil {
		b.notifier.Broadcast()
	}
	return nil
}

// FindByID walks the node tree depth-first and returns the first element
// whose id attribute equals id, or nil.
func FindByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Parse parses an HTML document from r.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}

// Render writes the document back as HTML.
func Render(w io.Writer, doc *html.Node) error {
	return html.Render(w, doc)
}
