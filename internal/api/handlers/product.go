package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campusbay/backend/internal/api/middleware"
	"github.com/campusbay/backend/internal/assets"
	"github.com/campusbay/backend/internal/domain"
	"github.com/campusbay/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxMultipartMemory bounds the whole multipart body: the 5 MiB image plus
// headroom for the text fields.
const maxMultipartMemory = assets.MaxUploadSize + 1<<20

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductResponse is the public listing view. The seller's email is
// deliberately absent here and present only in the detail view.
type ProductResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Price        int64     `json:"price"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Condition    string    `json:"condition"`
	Campus       string    `json:"campus"`
	ImageURL     *string   `json:"imageUrl"`
	IsSold       bool      `json:"isSold"`
	CreatedAt    time.Time `json:"createdAt"`
	SellerName   string    `json:"sellerName,omitempty"`
	SellerCampus string    `json:"sellerCampus,omitempty"`
	SellerMajor  string    `json:"sellerMajor,omitempty"`
}

// ProductDetailResponse joins the full seller profile, including email.
type ProductDetailResponse struct {
	ProductResponse
	SellerID    string `json:"sellerId"`
	SellerEmail string `json:"sellerEmail"`
	SellerYear  string `json:"sellerYear,omitempty"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Price:       p.Price,
		Category:    p.Category,
		Description: p.Description,
		Condition:   p.Condition,
		Campus:      p.Campus,
		ImageURL:    p.ImageURL,
		IsSold:      p.IsSold,
		CreatedAt:   p.CreatedAt,
	}
	if p.Seller != nil {
		resp.SellerName = p.Seller.Name
		resp.SellerCampus = p.Seller.Campus
		resp.SellerMajor = p.Seller.Major
	}
	return resp
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Campus:   r.URL.Query().Get("campus"),
		Search:   r.URL.Query().Get("search"),
	}

	products, err := h.productService.List(r.Context(), filter)
	if err != nil {
		serviceError(w, err)
		return
	}

	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	jsonResponse(w, http.StatusOK, resp)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}

	resp := ProductDetailResponse{ProductResponse: toProductResponse(product)}
	if product.Seller != nil {
		resp.SellerID = product.Seller.ID.String()
		resp.SellerEmail = product.Seller.Email
		resp.SellerYear = product.Seller.Year
	}
	jsonResponse(w, http.StatusOK, resp)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	input, image, ok := parseProductForm(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Create(r.Context(), userID, input, image)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]any{
		"id":       product.ID.String(),
		"imageUrl": product.ImageURL,
	})
}

func (h *ProductHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	products, err := h.productService.ListMine(r.Context(), userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	jsonResponse(w, http.StatusOK, resp)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}

	input, image, ok := parseProductForm(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Update(r.Context(), userID, id, input, image)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"imageUrl": product.ImageURL,
	})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.productService.Delete(r.Context(), userID, id); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ProductHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.productService.MarkSold(r.Context(), userID, id); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// parseProductForm reads the multipart listing fields and the optional image.
// On failure it writes the error response and returns ok=false.
func parseProductForm(w http.ResponseWriter, r *http.Request) (service.ProductInput, *assets.Upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartMemory)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return service.ProductInput{}, nil, false
	}

	input := service.ProductInput{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Condition:   r.FormValue("condition"),
		Campus:      r.FormValue("campus"),
	}
	if raw := r.FormValue("price"); raw != "" {
		if price, err := strconv.ParseInt(raw, 10, 64); err == nil {
			input.Price = price
			input.PriceValid = true
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		// No image field is fine; listings may be text-only.
		return input, nil, true
	}

	upload := &assets.Upload{
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
	return input, upload, true
}
