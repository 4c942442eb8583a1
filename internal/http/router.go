package apphttp

import (
	"html/template"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/console"
	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/internal/http/handlers"
	"github.com/viccjiang/hexadmin/internal/http/middleware"
	"github.com/viccjiang/hexadmin/internal/http/wscookie"
	"github.com/viccjiang/hexadmin/internal/storage"
)

type Deps struct {
	Log          *slog.Logger
	Templates    *template.Template
	Registry     *console.Registry
	Flash        *flash.Codec
	Workspace    *wscookie.Codec
	SecureCookie bool

	// Storage is nil when uploads are off. LocalDir/LocalURLPrefix are set
	// when the local driver's files must be served by this process.
	Storage        storage.Storage
	LocalDir       string
	LocalURLPrefix string
	MaxUpload      int64
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(d.Templates)
	r.MaxMultipartMemory = 8 << 20

	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.ErrorHandler(d.Log),
		middleware.Recovery(d.Log),
	)

	r.GET("/healthz", handlers.Healthz)
	if d.LocalDir != "" && d.LocalURLPrefix != "" {
		r.Static(d.LocalURLPrefix, d.LocalDir)
	}

	page := r.Group("/",
		middleware.FlashMiddleware(d.Flash, d.Log),
		middleware.Workspace(middleware.WorkspaceCfg{
			Registry:     d.Registry,
			Cookie:       d.Workspace,
			SecureCookie: d.SecureCookie,
		}),
	)

	consoleH := handlers.NewConsoleHandler(d.Storage != nil)
	authH := handlers.NewAuthHandler(d.Flash, d.SecureCookie)
	page.GET("/", consoleH.Index)
	page.POST("/login", authH.Login)
	page.POST("/logout", authH.Logout)

	dialogH := handlers.NewDialogHandler(d.Flash, d.Log)
	dialog := page.Group("/dialog", middleware.RequireSignedIn(d.Flash))
	dialog.POST("/open", dialogH.Open)
	dialog.POST("", dialogH.Submit)
	if d.Storage != nil {
		uploadH := handlers.NewUploadHandler(d.Flash, d.Storage, d.Log, d.MaxUpload)
		dialog.POST("/images/upload", uploadH.Image)
	}

	return r
}
