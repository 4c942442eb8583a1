package view

// LoginForm never carries the password back into the page.
type LoginForm struct {
	Username string
}

type ProductRow struct {
	ID          string
	Title       string
	Category    string
	Unit        string
	OriginPrice float64
	Price       float64
	Enabled     bool
	Description string
	Content     string
	ImageURL    string
	ImagesURL   []string
}

type DraftForm struct {
	ID          string
	Title       string
	Category    string
	Unit        string
	OriginPrice string
	Price       string
	IsEnabled   bool
	Description string
	Content     string
	ImageURL    string
	ImagesURL   []string
}

type Dialog struct {
	Open   bool
	Mode   string
	Title  string
	Draft  DraftForm
	Errors map[string]string
}

func (d Dialog) IsDelete() bool { return d.Mode == "delete" }

type ConsolePage struct {
	Flash         *Flash
	RequestID     string
	Authenticated bool
	ScrollLocked  bool

	Login       LoginForm
	LoginErrors map[string]string

	Products []ProductRow
	Selected *ProductRow
	Dialog   Dialog

	UploadsEnabled bool
}

type ErrorPage struct {
	Status    int
	Title     string
	Message   string
	RequestID string
	Flash     *Flash
}
