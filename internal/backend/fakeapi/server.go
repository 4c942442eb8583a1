// Package fakeapi is an in-process stand-in for the product backend: it
// serves the sign-in, session check and admin product endpoints the console
// talks to.
package fakeapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Config struct {
	APIPath      string
	Username     string
	PasswordHash []byte
	Secret       []byte
	TokenTTL     time.Duration
	Now          func() time.Time
	// AllowOrigins enables CORS for browser clients served from these origins.
	AllowOrigins []string
}

type Server struct {
	cfg    Config
	store  Store
	log    *slog.Logger
	tokens *issuer
}

func NewServer(cfg Config, store Store, log *slog.Logger) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	cfg.APIPath = strings.Trim(cfg.APIPath, "/")
	return &Server{
		cfg:   cfg,
		store: store,
		log:   log,
		tokens: &issuer{
			username: cfg.Username,
			hash:     cfg.PasswordHash,
			secret:   cfg.Secret,
			ttl:      cfg.TokenTTL,
			now:      cfg.Now,
		},
	}
}

type signInInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type productData struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	OriginPrice *float64 `json:"origin_price"`
	Price       *float64 `json:"price"`
	IsEnabled   int      `json:"is_enabled"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	ImageURL    string   `json:"imageUrl"`
	ImagesURL   []string `json:"imagesUrl"`
}

type productEnvelope struct {
	Data *productData `json:"data"`
}

func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	if len(s.cfg.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: s.cfg.AllowOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.POST("/admin/signin", s.signIn)
	r.POST("/api/user/check", s.check)

	admin := r.Group("/api/:path/admin", s.requirePath, s.requireToken)
	admin.GET("/products", s.list)
	admin.POST("/product", s.create)
	admin.PUT("/product/:id", s.update)
	admin.DELETE("/product/:id", s.remove)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "找不到路徑"})
	})
	return r
}

func (s *Server) signIn(c *gin.Context) {
	var in signInInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "登入失敗", "error": gin.H{"code": "auth/invalid-input"}})
		return
	}
	tok, exp, err := s.tokens.signIn(in.Username, in.Password)
	if err != nil {
		s.log.Info("mock_signin_rejected", slog.String("username", in.Username))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "登入失敗", "error": gin.H{"code": "auth/wrong-password"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "登入成功",
		"uid":     s.cfg.Username,
		"token":   tok,
		"expired": exp.UnixMilli(),
	})
}

func (s *Server) check(c *gin.Context) {
	uid, err := s.tokens.verify(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "請重新登入"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "uid": uid})
}

func (s *Server) requirePath(c *gin.Context) {
	if c.Param("path") != s.cfg.APIPath {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "找不到路徑"})
		return
	}
	c.Next()
}

func (s *Server) requireToken(c *gin.Context) {
	if _, err := s.tokens.verify(c.GetHeader("Authorization")); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "驗證錯誤, 請重新登入"})
		return
	}
	c.Next()
}

func (s *Server) list(c *gin.Context) {
	items, err := s.store.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"products":   items,
		"pagination": gin.H{"total_pages": 1, "current_page": 1, "has_pre": false, "has_next": false},
	})
}

func (s *Server) create(c *gin.Context) {
	p, ok := s.bindProduct(c)
	if !ok {
		return
	}
	if _, err := s.store.Create(c.Request.Context(), p); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "已建立產品"})
}

func (s *Server) update(c *gin.Context) {
	p, ok := s.bindProduct(c)
	if !ok {
		return
	}
	if err := s.store.Update(c.Request.Context(), c.Param("id"), p); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "已更新產品"})
}

func (s *Server) remove(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "已刪除產品"})
}

// bindProduct reads {data: {...}} and reports missing fields the way the
// real backend does: a list of messages.
func (s *Server) bindProduct(c *gin.Context) (Product, bool) {
	var env productEnvelope
	if err := c.ShouldBindJSON(&env); err != nil || env.Data == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "資料格式錯誤"})
		return Product{}, false
	}
	d := env.Data

	var missing []string
	for _, f := range []struct {
		name  string
		empty bool
	}{
		{"title", d.Title == ""},
		{"category", d.Category == ""},
		{"unit", d.Unit == ""},
		{"origin_price", d.OriginPrice == nil},
		{"price", d.Price == nil},
	} {
		if f.empty {
			missing = append(missing, f.name+" 屬性不得為空")
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": missing})
		return Product{}, false
	}

	return Product{
		Title:       d.Title,
		Category:    d.Category,
		Unit:        d.Unit,
		OriginPrice: *d.OriginPrice,
		Price:       *d.Price,
		IsEnabled:   d.IsEnabled,
		Description: d.Description,
		Content:     d.Content,
		ImageURL:    d.ImageURL,
		ImagesURL:   d.ImagesURL,
	}, true
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "找不到產品"})
		return
	}
	s.log.Error("mock_store_failed", slog.Any("err", err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "伺服器錯誤"})
}
