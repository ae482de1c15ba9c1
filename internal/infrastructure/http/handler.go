package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	appCart "github.com/yavorskyi/shopcore/internal/application/cart"
	appCatalog "github.com/yavorskyi/shopcore/internal/application/catalog"
	appOrder "github.com/yavorskyi/shopcore/internal/application/order"
	domainCart "github.com/yavorskyi/shopcore/internal/domain/cart"
	domainCatalog "github.com/yavorskyi/shopcore/internal/domain/catalog"
	domainDelivery "github.com/yavorskyi/shopcore/internal/domain/delivery"
	domainOrder "github.com/yavorskyi/shopcore/internal/domain/order"
	domainPayment "github.com/yavorskyi/shopcore/internal/domain/payment"
	"github.com/yavorskyi/shopcore/internal/infrastructure/memory"
	"github.com/yavorskyi/shopcore/internal/observability"
)

type Handler struct {
	catalogService *appCatalog.Service
	cartService    *appCart.Service
	orderService   *appOrder.Service

	log observability.Logger
	tel observability.Observability
}

const componentHTTPHandler = "http_server"

func NewHandler(catalogSvc *appCatalog.Service, cartSvc *appCart.Service, orderSvc *appOrder.Service,
	tel observability.Observability,
) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Handler{
		catalogService: catalogSvc,
		cartService:    cartSvc,
		orderService:   orderSvc,
		log:            tel.Logger().With(observability.F("component", componentHTTPHandler)),
		tel:            tel,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	h.handle(mux, http.MethodPost, "/catalog/products", h.handleAddProduct)
	h.handle(mux, http.MethodGet, "/catalog/products", h.handleListProducts)
	h.handle(mux, http.MethodGet, "/catalog/products/{id}", h.handleGetProduct)
	h.handle(mux, http.MethodDelete, "/catalog/products/{id}", h.handleRemoveProduct)
	h.handle(mux, http.MethodPut, "/catalog/products/{id}/stock", h.handleSetStock)
	h.handle(mux, http.MethodPut, "/catalog/sort", h.handleSetSort)
	h.handle(mux, http.MethodGet, "/catalog/filters", h.handleDescribeFilters)
	h.handle(mux, http.MethodPost, "/catalog/filters", h.handleAddFilter)
	h.handle(mux, http.MethodDelete, "/catalog/filters", h.handleRemoveFilters)

	h.handle(mux, http.MethodPost, "/carts", h.handleCreateCart)
	h.handle(mux, http.MethodGet, "/carts/{id}", h.handleCartReport)
	h.handle(mux, http.MethodPost, "/carts/{id}/items", h.handleCartAddItem)
	h.handle(mux, http.MethodPut, "/carts/{id}/items/{productID}", h.handleCartChangeQuantity)
	h.handle(mux, http.MethodDelete, "/carts/{id}/items/{productID}", h.handleCartRemoveItem)

	h.handle(mux, http.MethodPost, "/orders", h.handleCreateOrder)
	h.handle(mux, http.MethodGet, "/orders", h.handleListOrders)
	h.handle(mux, http.MethodGet, "/orders/{id}", h.handleGetOrder)
	h.handle(mux, http.MethodPost, "/orders/{id}/pay", h.handleStartPayment)

	h.handle(mux, http.MethodGet, "/health", h.handleHealth)

	return mux
}

// handle registers a route with the middleware chain:
// Trace → ObservabilityMiddleware (request logger + metrics) → Access log → Handler.
func (h *Handler) handle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	mux.HandleFunc(method+" "+route, func(w http.ResponseWriter, r *http.Request) {
		// Stable route template for low-cardinality labels.
		ctx := contextWithRoute(r.Context(), method+" "+route)
		r = r.WithContext(ctx)

		wrapped := withTrace(
			ObservabilityMiddleware(
				h.log,
				func(r *http.Request) string { return r.Header.Get(headerRequestID) },
				h.tel,
			)(
				withAccessLog(h.log)(handler),
			),
		)
		wrapped.ServeHTTP(w, r)
	})
}

type productResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	Image       string `json:"image,omitempty"`
}

func toProductResponse(p *domainCatalog.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price.String(),
		Description: p.Description,
		Brand:       p.Brand,
		Category:    p.Category,
		Stock:       p.Stock,
		Image:       p.Image,
	}
}

type addProductRequest struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	Image       string `json:"image"`
}

func (h *Handler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("price must be a decimal string"))
		return
	}

	product, err := h.catalogService.AddProduct(r.Context(), appCatalog.AddProductInput{
		Title:       req.Title,
		Price:       price,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.Products(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.RemoveProduct(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setStockRequest struct {
	Stock int `json:"stock"`
}

func (h *Handler) handleSetStock(w http.ResponseWriter, r *http.Request) {
	var req setStockRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.catalogService.SetStock(r.Context(), r.PathValue("id"), req.Stock); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setSortRequest struct {
	Strategy string `json:"strategy"`
}

func (h *Handler) handleSetSort(w http.ResponseWriter, r *http.Request) {
	var req setSortRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch req.Strategy {
	case "price":
		h.catalogService.SetSortStrategy(domainCatalog.SortByPrice())
	case "title":
		h.catalogService.SetSortStrategy(domainCatalog.SortByTitle())
	case "":
		h.catalogService.SetSortStrategy(nil)
	default:
		writeError(w, http.StatusBadRequest, errors.New("unknown sort strategy"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDescribeFilters(w http.ResponseWriter, r *http.Request) {
	filter := h.catalogService.Filter()
	if filter == nil {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	desc := filter.Describe()
	if desc == nil {
		desc = []string{}
	}
	writeJSON(w, http.StatusOK, desc)
}

type filterRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (h *Handler) handleAddFilter(w http.ResponseWriter, r *http.Request) {
	filter := h.catalogService.Filter()
	if filter == nil {
		writeError(w, http.StatusBadRequest, errors.New("filtering is disabled"))
		return
	}

	var req filterRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch domainCatalog.FilterKind(req.Kind) {
	case domainCatalog.FilterBrand:
		filter.AddBrand(req.Value)
	case domainCatalog.FilterCategory:
		filter.AddCategory(req.Value)
	case domainCatalog.FilterMinPrice, domainCatalog.FilterMaxPrice:
		if req.Value == "" {
			filter.SetPriceBound(domainCatalog.FilterKind(req.Kind), nil)
			break
		}
		bound, err := decimal.NewFromString(req.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("price bound must be a decimal string"))
			return
		}
		filter.SetPriceBound(domainCatalog.FilterKind(req.Kind), &bound)
	default:
		writeError(w, http.StatusBadRequest, errors.New("unknown filter kind"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRemoveFilters drops criteria by query: no kind clears everything,
// a kind without value clears that kind, kind+value removes one entry.
func (h *Handler) handleRemoveFilters(w http.ResponseWriter, r *http.Request) {
	filter := h.catalogService.Filter()
	if filter == nil {
		writeError(w, http.StatusBadRequest, errors.New("filtering is disabled"))
		return
	}

	kind := r.URL.Query().Get("kind")
	value := r.URL.Query().Get("value")
	switch {
	case kind == "":
		filter.ClearAll()
	case value == "":
		filter.Clear(domainCatalog.FilterKind(kind))
	default:
		filter.Remove(domainCatalog.FilterKind(kind), value)
	}
	w.WriteHeader(http.StatusNoContent)
}

type createCartResponse struct {
	CartID string `json:"cart_id"`
}

func (h *Handler) handleCreateCart(w http.ResponseWriter, r *http.Request) {
	id := h.cartService.Create(r.Context())
	writeJSON(w, http.StatusCreated, createCartResponse{CartID: id})
}

type cartReportResponse struct {
	Lines []string `json:"lines"`
	Total string   `json:"total"`
}

func (h *Handler) handleCartReport(w http.ResponseWriter, r *http.Request) {
	cartID := r.PathValue("id")
	lines, err := h.cartService.Report(r.Context(), cartID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	c, err := h.cartService.Get(r.Context(), cartID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartReportResponse{
		Lines: lines,
		Total: c.TotalPrice().String(),
	})
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) handleCartAddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.cartService.AddProduct(r.Context(), r.PathValue("id"), req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) handleCartChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req changeQuantityRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.cartService.ChangeQuantity(r.Context(), r.PathValue("id"), r.PathValue("productID"), req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCartRemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.RemoveProduct(r.Context(), r.PathValue("id"), r.PathValue("productID")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createOrderRequest struct {
	CartID         string `json:"cart_id"`
	Email          string `json:"email"`
	PaymentMethod  string `json:"payment_method"`
	DeliveryMethod string `json:"delivery_method"`
	CardNumber     string `json:"card_number"`
	Address        string `json:"address"`
}

type orderResponse struct {
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Total    string `json:"total"`
	Payment  string `json:"payment"`
	Delivery string `json:"delivery"`
	Address  string `json:"address,omitempty"`
}

func toOrderResponse(o *domainOrder.Order) orderResponse {
	return orderResponse{
		OrderID:  o.ID,
		Status:   o.Status(),
		Total:    o.TotalPrice().String(),
		Payment:  o.PaymentMethod(),
		Delivery: o.DeliveryMethod(),
		Address:  o.Address(),
	}
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := h.cartService.Get(r.Context(), req.CartID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), appOrder.CreateOrderInput{
		Cart:           c,
		Email:          req.Email,
		PaymentMethod:  domainPayment.Method(req.PaymentMethod),
		DeliveryMethod: domainDelivery.Method(req.DeliveryMethod),
		CardNumber:     req.CardNumber,
		Address:        req.Address,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.Orders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) handleStartPayment(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if err := h.orderService.StartPayment(r.Context(), orderID); err != nil {
		writeDomainError(w, err)
		return
	}
	order, err := h.orderService.Get(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	_ = ctx
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainCatalog.ErrNotFound),
		errors.Is(err, domainOrder.ErrNotFound),
		errors.Is(err, memory.ErrCartNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domainCatalog.ErrTitleRequired),
		errors.Is(err, domainCatalog.ErrBrandRequired),
		errors.Is(err, domainCatalog.ErrCategoryRequired),
		errors.Is(err, domainCatalog.ErrNegativePrice),
		errors.Is(err, domainCatalog.ErrNegativeStock),
		errors.Is(err, domainCart.ErrQuantityExceeded),
		errors.Is(err, domainCart.ErrInvalidQuantity),
		errors.Is(err, domainCart.ErrEmpty),
		errors.Is(err, domainOrder.ErrEmptyCart),
		errors.Is(err, appOrder.ErrEmailRequired),
		errors.Is(err, domainPayment.ErrUnknownMethod),
		errors.Is(err, domainDelivery.ErrUnknownMethod):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
