package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/maurofranchi/gamegear/internal/domain"
	"github.com/maurofranchi/gamegear/internal/usecase"
)

// Server is the presentation adapter: a JSON API over the session engine.
// Session state travels in a signed cookie, so every request rebuilds the
// aggregate, applies one operation and persists the new snapshot.
type Server struct {
	mux     *http.ServeMux
	catalog *usecase.CatalogUC
}

func New(catalog *usecase.CatalogUC) http.Handler {
	s := &Server{catalog: catalog, mux: http.NewServeMux()}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/products", s.handleProducts)
	s.mux.HandleFunc("/api/products/", s.handleProductByID)
	s.mux.HandleFunc("/api/categories", s.handleCategories)

	s.mux.HandleFunc("/api/cart", s.handleCart)
	s.mux.HandleFunc("/api/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("/api/cart/remove", s.handleCartRemove)

	s.mux.HandleFunc("/api/wishlist", s.handleWishlist)
	s.mux.HandleFunc("/api/wishlist/toggle", s.handleWishlistToggle)

	s.mux.HandleFunc("/admin/export/xlsx", s.handleExportXLSX)
}

func (s *Server) session(r *http.Request) *usecase.Session {
	sess := usecase.Restore(s.catalog.Catalog(), toSnapshot(readSession(r)))
	sess.Subscribe(func(snap usecase.Snapshot) {
		log.Debug().
			Int("cart_items", snap.Cart.ItemCount()).
			Int("wishlist", len(snap.Wishlist)).
			Msg("session transition")
	})
	return sess
}

func (s *Server) save(w http.ResponseWriter, sess *usecase.Session) {
	writeSession(w, toPayload(sess.Snapshot()))
}

type productDTO struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	DiscountPercent int      `json:"discountPercent"`
	DiscountedPrice string   `json:"discountedPrice"`
	Category        string   `json:"category"`
	Rating          float64  `json:"rating"`
	Reviews         int      `json:"reviews"`
	Specs           []string `json:"specs"`
	Stock           int      `json:"stock"`
	Availability    string   `json:"availability"`
	IsNew           bool     `json:"isNew"`
	Image           string   `json:"image"`
	Wishlisted      bool     `json:"wishlisted"`
}

func newProductDTO(p domain.Product, sess *usecase.Session) productDTO {
	return productDTO{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		DiscountedPrice: domain.FormatPrice(p.DiscountedUnitPrice()),
		Category:        string(p.Category),
		Rating:          p.Rating,
		Reviews:         p.Reviews,
		Specs:           p.Specs,
		Stock:           p.Stock,
		Availability:    string(p.Availability()),
		IsNew:           p.IsNew,
		Image:           p.Image,
		Wishlisted:      sess.IsWishlisted(p.ID),
	}
}

type cartLineDTO struct {
	Product   productDTO `json:"product"`
	Quantity  int        `json:"quantity"`
	LineTotal string     `json:"lineTotal"`
}

type cartDTO struct {
	Lines     []cartLineDTO `json:"lines"`
	ItemCount int           `json:"itemCount"`
	Subtotal  string        `json:"subtotal"`
}

func newCartDTO(sess *usecase.Session) cartDTO {
	lines := sess.CartLines()
	dto := cartDTO{
		Lines:     make([]cartLineDTO, 0, len(lines)),
		ItemCount: sess.CartItemCount(),
		Subtotal:  domain.FormatPrice(sess.CartSubtotal()),
	}
	for _, l := range lines {
		dto.Lines = append(dto.Lines, cartLineDTO{
			Product:   newProductDTO(l.Product, sess),
			Quantity:  l.Quantity,
			LineTotal: domain.FormatPrice(l.LineTotal),
		})
	}
	return dto
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(r)
	qv := r.URL.Query()
	if qv.Has("category") || qv.Has("q") || qv.Has("sort") {
		sess.SetFilter(domain.FilterState{
			Category:    qv.Get("category"),
			SearchQuery: qv.Get("q"),
			SortKey:     domain.SortKey(qv.Get("sort")),
		})
	}
	view := sess.View()
	out := make([]productDTO, 0, len(view))
	for _, p := range view {
		out = append(out, newProductDTO(p, sess))
	}
	s.save(w, sess)
	writeJSON(w, http.StatusOK, map[string]any{
		"products": out,
		"total":    len(out),
		"filter":   sess.Snapshot().Filter,
	})
}

func (s *Server) handleProductByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/api/products/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := s.catalog.Get(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, newProductDTO(p, s.session(r)))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.catalog.Categories()})
}

type cartRequest struct {
	ProductID int `json:"productId"`
	Delta     int `json:"delta"`
}

func decodeCartRequest(w http.ResponseWriter, r *http.Request) (cartRequest, bool) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, newCartDTO(s.session(r)))
	case http.MethodPost:
		req, ok := decodeCartRequest(w, r)
		if !ok {
			return
		}
		sess := s.session(r)
		if err := sess.AddItem(req.ProductID); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				writeJSON(w, http.StatusNotFound, map[string]any{"error": "not_found"})
			case errors.Is(err, domain.ErrOutOfStock):
				writeJSON(w, http.StatusConflict, map[string]any{"error": "out_of_stock"})
			default:
				log.Error().Err(err).Int("product_id", req.ProductID).Msg("add item")
				http.Error(w, "internal", http.StatusInternalServerError)
			}
			return
		}
		s.save(w, sess)
		writeJSON(w, http.StatusOK, newCartDTO(sess))
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	req, ok := decodeCartRequest(w, r)
	if !ok {
		return
	}
	sess := s.session(r)
	sess.UpdateQuantity(req.ProductID, req.Delta)
	s.save(w, sess)
	writeJSON(w, http.StatusOK, newCartDTO(sess))
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	req, ok := decodeCartRequest(w, r)
	if !ok {
		return
	}
	sess := s.session(r)
	sess.RemoveItem(req.ProductID)
	s.save(w, sess)
	writeJSON(w, http.StatusOK, newCartDTO(sess))
}

func (s *Server) handleWishlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(r)
	writeJSON(w, http.StatusOK, map[string]any{"wishlist": sess.Snapshot().Wishlist.IDs()})
}

func (s *Server) handleWishlistToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	req, ok := decodeCartRequest(w, r)
	if !ok {
		return
	}
	sess := s.session(r)
	in := sess.ToggleWishlist(req.ProductID)
	s.save(w, sess)
	writeJSON(w, http.StatusOK, map[string]any{"productId": req.ProductID, "wishlisted": in})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
