package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/internal/http/middleware"
	"github.com/viccjiang/hexadmin/internal/http/render"
	"github.com/viccjiang/hexadmin/internal/storage"
	"github.com/viccjiang/hexadmin/pkg/view"
)

const defaultMaxUpload = 5 << 20

type UploadHandler struct {
	Flash    *flash.Codec
	Storage  storage.Storage
	Log      *slog.Logger
	MaxBytes int64
}

func NewUploadHandler(f *flash.Codec, s storage.Storage, log *slog.Logger, maxBytes int64) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	return &UploadHandler{Flash: f, Storage: s, Log: log, MaxBytes: maxBytes}
}

// Image stores one uploaded file and puts its URL into the open dialog,
// either as the main image or as a new secondary slot.
func (h *UploadHandler) Image(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	if !ws.Dialog.IsOpen() {
		render.RedirectWithFlash(c, h.Flash, "/", view.FlashWarning, "The dialog is no longer open.")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes+(1<<20))
	if err := syncDraft(c, ws.Dialog); err != nil {
		middleware.Fail(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		render.RedirectWithFlash(c, h.Flash, "/", view.FlashWarning, "Choose an image to upload.")
		return
	}
	if fh.Size > h.MaxBytes {
		render.RedirectWithFlash(c, h.Flash, "/", view.FlashError, "Upload failed: the image is too large.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	res, err := h.Storage.Put(ctx, f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if errors.Is(err, storage.ErrUnsupportedType) {
		render.RedirectWithFlash(c, h.Flash, "/", view.FlashError, "Upload failed: only png, jpeg, webp and gif images are accepted.")
		return
	}
	if err != nil {
		h.Log.LogAttrs(ctx, slog.LevelError, "image_upload_failed", slog.Any("err", err))
		render.RedirectWithFlash(c, h.Flash, "/", view.FlashError, "Upload failed: Unknown error")
		return
	}

	if c.PostForm("target") == "primary" {
		err = ws.Dialog.SetField("imageUrl", res.URL)
	} else {
		err = ws.Dialog.AppendImage(res.URL)
	}
	if err != nil {
		if derr := h.Storage.Delete(ctx, res.Key); derr != nil {
			h.Log.LogAttrs(ctx, slog.LevelWarn, "image_orphaned", slog.String("key", res.Key), slog.Any("err", derr))
		}
		middleware.Fail(c, err)
		return
	}

	h.Log.LogAttrs(ctx, slog.LevelInfo, "image_uploaded",
		slog.String("key", res.Key),
		slog.Int64("bytes", fh.Size),
	)
	c.Redirect(http.StatusSeeOther, "/")
}
