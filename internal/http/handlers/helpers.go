package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/console"
	"github.com/viccjiang/hexadmin/internal/http/middleware"
	"github.com/viccjiang/hexadmin/internal/modules/catalog"
	"github.com/viccjiang/hexadmin/pkg/view"
)

var errNoWorkspace = errors.New("handlers: request has no workspace")

func currentWorkspace(c *gin.Context) (*console.Workspace, bool) {
	ws, ok := middleware.CurrentWorkspace(c)
	if !ok {
		middleware.Fail(c, errNoWorkspace)
	}
	return ws, ok
}

func consolePage(ws *console.Workspace, uploads bool) view.ConsolePage {
	page := view.ConsolePage{
		Authenticated:  ws.Session.Authenticated(),
		ScrollLocked:   ws.Page.ScrollLocked,
		Login:          view.LoginForm{Username: ws.Session.Credentials().Username},
		UploadsEnabled: uploads,
	}
	if !page.Authenticated {
		return page
	}

	products := ws.Catalog.Products()
	page.Products = make([]view.ProductRow, 0, len(products))
	for _, p := range products {
		page.Products = append(page.Products, productRow(p))
	}

	if ws.Dialog.IsOpen() {
		page.Dialog = view.Dialog{
			Open:   true,
			Mode:   string(ws.Dialog.Mode()),
			Title:  ws.Dialog.Title(),
			Draft:  draftForm(ws.Dialog.Draft()),
			Errors: ws.Page.DialogErrors,
		}
	}
	return page
}

func productRow(p catalog.Product) view.ProductRow {
	return view.ProductRow{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Unit:        p.Unit,
		OriginPrice: p.OriginPrice,
		Price:       p.Price,
		Enabled:     p.IsEnabled,
		Description: p.Description,
		Content:     p.Content,
		ImageURL:    p.ImageURL,
		ImagesURL:   p.ImagesURL,
	}
}

func draftForm(d catalog.Draft) view.DraftForm {
	return view.DraftForm{
		ID:          d.ID,
		Title:       d.Title,
		Category:    d.Category,
		Unit:        d.Unit,
		OriginPrice: d.OriginPrice,
		Price:       d.Price,
		IsEnabled:   d.IsEnabled,
		Description: d.Description,
		Content:     d.Content,
		ImageURL:    d.ImageURL,
		ImagesURL:   d.ImagesURL,
	}
}
