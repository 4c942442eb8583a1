package modal

import (
	"errors"
	"fmt"

	"github.com/viccjiang/hexadmin/internal/modules/catalog"
)

var (
	ErrClosed       = errors.New("modal: dialog is closed")
	ErrUnknownField = errors.New("modal: unknown field")
	ErrSlotRange    = errors.New("modal: image slot out of range")
)

// ScrollLocker receives the page-scroll side effect of the dialog.
type ScrollLocker interface {
	LockScroll()
	UnlockScroll()
}

// ConfirmFunc receives the mode and a private copy of the draft.
type ConfirmFunc func(mode catalog.Mode, d catalog.Draft)

// Dialog is the product editing dialog. It is driven by its owner through
// Open, Cancel and Confirm; it never learns what the owner did with a
// confirmed draft.
type Dialog struct {
	open   bool
	mode   catalog.Mode
	draft  catalog.Draft
	scroll ScrollLocker
}

func New(scroll ScrollLocker) *Dialog {
	return &Dialog{mode: catalog.ModeCreate, draft: catalog.EmptyDraft(), scroll: scroll}
}

func (d *Dialog) IsOpen() bool       { return d.open }
func (d *Dialog) Mode() catalog.Mode { return d.mode }

// Draft returns a copy of the working draft.
func (d *Dialog) Draft() catalog.Draft { return d.draft.Clone() }

// Title is the heading for the current mode.
func (d *Dialog) Title() string {
	switch d.mode {
	case catalog.ModeCreate:
		return "New product"
	case catalog.ModeEdit:
		return "Edit product"
	case catalog.ModeDelete:
		return "Delete product"
	}
	return ""
}

// Open enters the given mode. A nil seed starts from the empty sentinel.
// Opening an already open dialog replaces its mode and draft.
func (d *Dialog) Open(mode catalog.Mode, seed *catalog.Draft) {
	d.mode = mode
	if seed != nil {
		d.draft = seed.Clone()
	} else {
		d.draft = catalog.EmptyDraft()
	}
	if !d.open && d.scroll != nil {
		d.scroll.LockScroll()
	}
	d.open = true
}

// Cancel discards the draft and closes.
func (d *Dialog) Cancel() {
	d.close()
}

// Confirm hands the draft to fn, then closes and resets whatever fn did.
func (d *Dialog) Confirm(fn ConfirmFunc) error {
	if !d.open {
		return ErrClosed
	}
	mode, draft := d.mode, d.draft.Clone()
	defer d.close()
	if fn != nil {
		fn(mode, draft)
	}
	return nil
}

func (d *Dialog) close() {
	wasOpen := d.open
	d.open = false
	d.draft = catalog.EmptyDraft()
	if wasOpen && d.scroll != nil {
		d.scroll.UnlockScroll()
	}
}

// SetField overwrites one text field of the draft by its form name.
func (d *Dialog) SetField(name, value string) error {
	if !d.open {
		return ErrClosed
	}
	switch name {
	case "title":
		d.draft.Title = value
	case "category":
		d.draft.Category = value
	case "unit":
		d.draft.Unit = value
	case "origin_price":
		d.draft.OriginPrice = value
	case "price":
		d.draft.Price = value
	case "description":
		d.draft.Description = value
	case "content":
		d.draft.Content = value
	case "imageUrl":
		d.draft.ImageURL = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// SetEnabled is the checkbox toggle.
func (d *Dialog) SetEnabled(on bool) error {
	if !d.open {
		return ErrClosed
	}
	d.draft.IsEnabled = on
	return nil
}

// AddImage appends an empty secondary image slot.
func (d *Dialog) AddImage() error {
	if !d.open {
		return ErrClosed
	}
	d.draft.ImagesURL = append(d.draft.ImagesURL, "")
	return nil
}

// AppendImage appends a filled slot, used after an upload.
func (d *Dialog) AppendImage(url string) error {
	if err := d.AddImage(); err != nil {
		return err
	}
	return d.SetImage(len(d.draft.ImagesURL)-1, url)
}

func (d *Dialog) SetImage(i int, url string) error {
	if !d.open {
		return ErrClosed
	}
	if i < 0 || i >= len(d.draft.ImagesURL) {
		return ErrSlotRange
	}
	d.draft.ImagesURL[i] = url
	return nil
}

// RemoveImage drops slot i; later slots shift down in order.
func (d *Dialog) RemoveImage(i int) error {
	if !d.open {
		return ErrClosed
	}
	imgs := d.draft.ImagesURL
	if i < 0 || i >= len(imgs) {
		return ErrSlotRange
	}
	out := make([]string, 0, len(imgs)-1)
	out = append(out, imgs[:i]...)
	out = append(out, imgs[i+1:]...)
	d.draft.ImagesURL = out
	return nil
}
