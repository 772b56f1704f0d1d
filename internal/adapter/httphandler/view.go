package httphandler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// View models. Product text comes from an untrusted external source;
// html/template escapes it on insertion.
type (
	productVM struct {
		Key      string
		Title    string
		Category string
		Image    string
		Price    string
	}

	gridVM struct {
		Results  string
		Products []productVM
	}

	cartEntryVM struct {
		Key       string
		Title     string
		Image     string
		UnitPrice string
		Qty       int
		Subtotal  string
	}

	cartVM struct {
		Entries []cartEntryVM
		Total   string
	}

	wishlistVM struct {
		Products []productVM
	}

	pageVM struct {
		Grid       gridVM
		Cart       cartVM
		Wishlist   wishlistVM
		Categories []string
		State      domain.FilterState
		CartCount  int
		WishCount  int
	}
)

// A Renderer is the view synchronizer: it subscribes to store refresh
// hooks and keeps pre-rendered grid, cart and wishlist fragments that
// the fragment routes serve as-is.
type Renderer struct {
	mu       sync.Mutex
	tmpl     *template.Template
	catalog  port.CatalogViewer
	cart     port.CartOperator
	wishlist port.WishlistOperator

	grid      []byte
	cartPanel []byte
	wishPanel []byte
}

func NewRenderer(
	catalog port.CatalogViewer,
	cart port.CartOperator,
	wishlist port.WishlistOperator,
) (*Renderer, error) {
	const op = "NewRenderer"

	tmpl, err := template.ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r := &Renderer{
		tmpl:     tmpl,
		catalog:  catalog,
		cart:     cart,
		wishlist: wishlist,
	}
	r.RefreshCatalog()
	r.RefreshCart()
	r.RefreshWishlist()
	return r, nil
}

func RegisterViews(mux *http.ServeMux, r *Renderer) {
	mux.HandleFunc("GET /{$}", r.GetPage)
	mux.HandleFunc("GET /v1/storefront/grid", r.GetGrid)
	mux.HandleFunc("GET /v1/storefront/cart", r.GetCartPanel)
	mux.HandleFunc("GET /v1/storefront/wishlist", r.GetWishlistPanel)
}

func (r *Renderer) RefreshCatalog() {
	r.render(&r.grid, "grid", r.gridModel())
}

func (r *Renderer) RefreshCart() {
	r.render(&r.cartPanel, "cart", r.cartModel())
}

func (r *Renderer) RefreshWishlist() {
	r.render(&r.wishPanel, "wishlist", r.wishlistModel())
}

func (r *Renderer) GetPage(w http.ResponseWriter, req *http.Request) {
	const op = "Renderer.GetPage"

	model := pageVM{
		Grid:       r.gridModel(),
		Cart:       r.cartModel(),
		Wishlist:   r.wishlistModel(),
		Categories: r.catalog.Categories(),
		State:      r.catalog.State(),
		CartCount:  r.cart.Count(),
		WishCount:  r.wishlist.Count(),
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", model); err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		slog.Error("failed to render page", "op", op, "err", err)
		return
	}
	r.writeHTML(w, buf.Bytes())
}

func (r *Renderer) GetGrid(w http.ResponseWriter, req *http.Request) {
	r.serveFragment(w, &r.grid)
}

func (r *Renderer) GetCartPanel(w http.ResponseWriter, req *http.Request) {
	r.serveFragment(w, &r.cartPanel)
}

func (r *Renderer) GetWishlistPanel(w http.ResponseWriter, req *http.Request) {
	r.serveFragment(w, &r.wishPanel)
}

func (r *Renderer) serveFragment(w http.ResponseWriter, src *[]byte) {
	r.mu.Lock()
	body := *src
	r.mu.Unlock()
	r.writeHTML(w, body)
}

func (r *Renderer) writeHTML(w http.ResponseWriter, body []byte) {
	const op = "Renderer.writeHTML"

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func (r *Renderer) render(dst *[]byte, name string, model any) {
	const op = "Renderer.render"

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, model); err != nil {
		slog.Error("failed to render fragment", "op", op, "name", name, "err", err)
		return
	}

	r.mu.Lock()
	*dst = buf.Bytes()
	r.mu.Unlock()
}

func (r *Renderer) gridModel() gridVM {
	view := r.catalog.View()
	vm := gridVM{
		Results:  fmt.Sprintf("%d products found", len(view)),
		Products: make([]productVM, 0, len(view)),
	}
	for _, p := range view {
		vm.Products = append(vm.Products, toProductVM(p))
	}
	return vm
}

func (r *Renderer) cartModel() cartVM {
	es := r.cart.Entries()
	vm := cartVM{
		Entries: make([]cartEntryVM, 0, len(es)),
		Total:   fmtPrice(r.cart.Total()),
	}
	for _, e := range es {
		vm.Entries = append(vm.Entries, cartEntryVM{
			Key:       e.Product.Key(),
			Title:     e.Product.Title,
			Image:     e.Product.Image,
			UnitPrice: fmtPrice(e.Product.Price),
			Qty:       e.Quantity,
			Subtotal:  fmtPrice(e.Product.Price * float64(e.Quantity)),
		})
	}
	return vm
}

func (r *Renderer) wishlistModel() wishlistVM {
	ps := r.wishlist.Products()
	vm := wishlistVM{Products: make([]productVM, 0, len(ps))}
	for _, p := range ps {
		vm.Products = append(vm.Products, toProductVM(p))
	}
	return vm
}

func toProductVM(p domain.Product) productVM {
	return productVM{
		Key:      p.Key(),
		Title:    p.Title,
		Category: p.Category,
		Image:    p.Image,
		Price:    fmtPrice(p.Price),
	}
}

// Fixed-format price display, no multi-currency handling.
func fmtPrice(v float64) string {
	return fmt.Sprintf("%.2f AZN", v)
}
