// Command seedproducts signs in to a backend and creates products from a
// JSON file (or a small built-in set).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"

	"github.com/viccjiang/hexadmin/internal/backend"
	"github.com/viccjiang/hexadmin/internal/modules/catalog"
)

type seedItem struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	OriginPrice any      `json:"origin_price"`
	Price       any      `json:"price"`
	IsEnabled   any      `json:"is_enabled"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	ImageURL    string   `json:"imageUrl"`
	ImagesURL   []string `json:"imagesUrl"`
}

func main() {
	_ = godotenv.Load()

	base := flag.String("base", os.Getenv("API_BASE"), "backend base URL")
	path := flag.String("path", os.Getenv("API_PATH"), "API path segment")
	user := flag.String("user", os.Getenv("SEED_USERNAME"), "admin username")
	pass := flag.String("password", os.Getenv("SEED_PASSWORD"), "admin password")
	file := flag.String("file", "", "JSON array of products (default: built-in samples)")
	dryRun := flag.Bool("dry-run", false, "only print the payloads, don't send")
	flag.Parse()

	items := builtin()
	if *file != "" {
		b, err := os.ReadFile(*file)
		if err != nil {
			fail("read %s: %v", *file, err)
		}
		items = nil
		if err := jsoniter.Unmarshal(b, &items); err != nil {
			fail("parse %s: %v", *file, err)
		}
	}

	payloads := make([]backend.ProductPayload, 0, len(items))
	for i, it := range items {
		p, err := catalog.ToPayload(it.draft())
		if err != nil {
			fail("item %d (%q): %v", i, it.Title, err)
		}
		payloads = append(payloads, p)
	}

	if *dryRun {
		out, _ := jsoniter.MarshalIndent(payloads, "", "  ")
		fmt.Println(string(out))
		fmt.Println("\n[DRY RUN] Not sending requests")
		return
	}

	client, err := backend.NewClient(backend.Config{BaseURL: *base, APIPath: *path, Timeout: 30 * time.Second})
	if err != nil {
		fail("%v", err)
	}

	ctx := context.Background()
	res, err := client.SignIn(ctx, backend.Credentials{Username: *user, Password: *pass})
	if err != nil {
		fail("sign in: %s", backend.MessageOf(err))
	}
	sess := &backend.Session{}
	sess.Set(res.Token, res.Expires)

	created := 0
	for _, p := range payloads {
		if err := client.CreateProduct(ctx, sess, p); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", p.Title, backend.MessageOf(err))
			continue
		}
		created++
		fmt.Printf("✓ %s\n", p.Title)
	}
	fmt.Printf("\n%d/%d products created\n", created, len(payloads))
	if created < len(payloads) {
		os.Exit(1)
	}
}

func (it seedItem) draft() catalog.Draft {
	images := it.ImagesURL
	if images == nil {
		images = []string{}
	}
	return catalog.Draft{
		Title:       it.Title,
		Category:    it.Category,
		Unit:        it.Unit,
		OriginPrice: cast.ToString(it.OriginPrice),
		Price:       cast.ToString(it.Price),
		IsEnabled:   cast.ToBool(it.IsEnabled),
		Description: it.Description,
		Content:     it.Content,
		ImageURL:    it.ImageURL,
		ImagesURL:   images,
	}
}

func builtin() []seedItem {
	return []seedItem{
		{Title: "Dong ding oolong", Category: "tea", Unit: "box", OriginPrice: 900, Price: 750, IsEnabled: 1},
		{Title: "Oriental beauty", Category: "tea", Unit: "box", OriginPrice: "1500", Price: "1350", IsEnabled: true},
		{Title: "Cast iron kettle", Category: "teaware", Unit: "piece", OriginPrice: 3200, Price: 2800, IsEnabled: 0},
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
