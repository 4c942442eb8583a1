package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/viccjiang/hexadmin/internal/console"
	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/internal/http/middleware"
	"github.com/viccjiang/hexadmin/internal/http/render"
	"github.com/viccjiang/hexadmin/internal/http/validation"
	"github.com/viccjiang/hexadmin/internal/modules/catalog"
	"github.com/viccjiang/hexadmin/internal/modules/modal"
	"github.com/viccjiang/hexadmin/internal/shared/apperr"
	"github.com/viccjiang/hexadmin/pkg/view"
)

type openInput struct {
	Mode string `form:"mode" binding:"required,oneof=create edit delete"`
	ID   string `form:"id"`
}

// draftInput is the dialog form as posted; every field is optional here
// because the form is also posted for image slot actions.
type draftInput struct {
	Title       string   `form:"title"`
	Category    string   `form:"category"`
	Unit        string   `form:"unit"`
	OriginPrice string   `form:"origin_price"`
	Price       string   `form:"price"`
	Description string   `form:"description"`
	Content     string   `form:"content"`
	ImageURL    string   `form:"imageUrl"`
	ImagesURL   []string `form:"imagesUrl"`
	IsEnabled   string   `form:"is_enabled"`
}

// draftRules are the required inputs of the dialog form. Prices are also
// checked as numbers with min 0 in checkDraft. Unit and the text areas are
// optional.
type draftRules struct {
	Title       string `form:"title" binding:"required"`
	Category    string `form:"category" binding:"required"`
	OriginPrice string `form:"origin_price" binding:"required"`
	Price       string `form:"price" binding:"required"`
}

type DialogHandler struct {
	Flash *flash.Codec
	Log   *slog.Logger
}

func NewDialogHandler(f *flash.Codec, log *slog.Logger) *DialogHandler {
	return &DialogHandler{Flash: f, Log: log}
}

func (h *DialogHandler) Open(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}

	var in openInput
	if err := c.ShouldBind(&in); err != nil {
		render.RedirectWithFlash(c, h.Flash, "/", view.FlashWarning, "Unknown dialog action.")
		return
	}
	mode, _ := catalog.ParseMode(in.Mode)

	var seed *catalog.Draft
	if mode != catalog.ModeCreate {
		p, found := ws.Catalog.Find(in.ID)
		if !found {
			render.RedirectWithFlash(c, h.Flash, "/", view.FlashWarning, "That product is no longer in the list.")
			return
		}
		d := catalog.DraftFromProduct(p)
		seed = &d
	}

	ws.Page.DialogErrors = nil
	ws.Dialog.Open(mode, seed)
	c.Redirect(http.StatusSeeOther, "/")
}

// Submit applies the posted fields to the draft, then runs the action the
// pressed button names.
func (h *DialogHandler) Submit(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	if !ws.Dialog.IsOpen() {
		render.RedirectWithFlash(c, h.Flash, "/", view.FlashWarning, "The dialog is no longer open.")
		return
	}

	action := c.PostForm("action")
	if action != "cancel" {
		if err := syncDraft(c, ws.Dialog); err != nil {
			middleware.Fail(c, err)
			return
		}
	}

	switch {
	case action == "cancel":
		ws.Dialog.Cancel()
		ws.Page.DialogErrors = nil

	case action == "add_image":
		_ = ws.Dialog.AddImage()

	case strings.HasPrefix(action, "remove_image:"):
		i, err := strconv.Atoi(strings.TrimPrefix(action, "remove_image:"))
		if err == nil {
			err = ws.Dialog.RemoveImage(i)
		}
		if err != nil {
			h.Log.LogAttrs(c.Request.Context(), slog.LevelWarn, "dialog_bad_slot",
				slog.String("action", action), slog.Any("err", err))
		}

	case action == "confirm":
		h.confirm(c, ws)
		return

	case action == "sync", action == "":
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *DialogHandler) confirm(c *gin.Context, ws *console.Workspace) {
	if ws.Dialog.Mode() != catalog.ModeDelete {
		if errs := checkDraft(ws.Dialog.Draft()); len(errs) > 0 {
			ws.Page.DialogErrors = errs
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
	}
	ws.Page.DialogErrors = nil

	var res catalog.Result
	err := ws.Dialog.Confirm(func(mode catalog.Mode, d catalog.Draft) {
		res = ws.Catalog.Apply(c.Request.Context(), ws.Session.Session(), mode, d)
	})
	if errors.Is(err, modal.ErrClosed) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	kind := view.FlashSuccess
	if !res.OK {
		kind = view.FlashError
	}
	render.RedirectWithFlash(c, h.Flash, "/", kind, res.Message)
}

// syncDraft copies the posted fields into an open create or edit dialog.
// A delete dialog has no inputs, so nothing is copied.
func syncDraft(c *gin.Context, d *modal.Dialog) error {
	if d.Mode() == catalog.ModeDelete {
		return nil
	}
	var in draftInput
	if err := c.ShouldBind(&in); err != nil {
		return apperr.InvalidErr("The form could not be read.", nil)
	}

	fields := map[string]string{
		"title":        in.Title,
		"category":     in.Category,
		"unit":         in.Unit,
		"origin_price": in.OriginPrice,
		"price":        in.Price,
		"description":  in.Description,
		"content":      in.Content,
		"imageUrl":     in.ImageURL,
	}
	for name, v := range fields {
		if err := d.SetField(name, v); err != nil {
			return err
		}
	}
	if err := d.SetEnabled(in.IsEnabled != ""); err != nil {
		return err
	}

	// Posted slots replace the current ones in order.
	current := d.Draft().ImagesURL
	for i := range current {
		if i < len(in.ImagesURL) {
			if err := d.SetImage(i, in.ImagesURL[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkDraft(d catalog.Draft) validation.FieldErrors {
	rules := draftRules{
		Title:       d.Title,
		Category:    d.Category,
		OriginPrice: d.OriginPrice,
		Price:       d.Price,
	}
	errs := validation.FieldErrors{}
	if err := binding.Validator.ValidateStruct(&rules); err != nil {
		errs = validation.FromBindError(err, &rules)
	}
	for name, v := range map[string]string{"origin_price": d.OriginPrice, "price": d.Price} {
		if _, bad := errs[name]; bad {
			continue
		}
		f, err := catalog.ParsePrice(v)
		switch {
		case err != nil:
			errs[name] = "Must be a number."
		case f < 0:
			errs[name] = "Must be at least 0."
		}
	}
	return errs
}
