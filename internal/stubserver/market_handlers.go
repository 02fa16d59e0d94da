package stubserver

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"vendeya/internal/domain/entity"
	"vendeya/pkg/errors"
	"vendeya/pkg/response"
)

func (s *Server) handleListProducts(c echo.Context) error {
	search := strings.ToLower(c.QueryParam("busqueda"))
	categoryID, _ := strconv.Atoi(c.QueryParam("categoria_id"))
	sellerID, _ := strconv.Atoi(c.QueryParam("vendedor_id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	products := []entity.Product{}
	for _, product := range s.products {
		if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
			continue
		}
		if categoryID > 0 && product.CategoryID != categoryID {
			continue
		}
		if sellerID > 0 && product.SellerID != sellerID {
			continue
		}
		products = append(products, *product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return response.JSON(c, products)
}

func (s *Server) handleGetProduct(c echo.Context) error {
	id, _ := strconv.Atoi(c.QueryParam("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return response.Error(c, errors.NotFound("Producto", nil))
	}
	return response.JSON(c, product)
}

func (s *Server) productForm(c echo.Context) (*entity.Product, error) {
	price, err := strconv.ParseFloat(c.FormValue("precio"), 64)
	if err != nil || price <= 0 {
		return nil, errors.BadRequest("El precio debe ser mayor que cero", err)
	}
	stock, err := strconv.Atoi(c.FormValue("stock"))
	if err != nil || stock < 0 {
		return nil, errors.BadRequest("El stock no puede ser negativo", err)
	}
	name := strings.TrimSpace(c.FormValue("nombre"))
	if name == "" {
		return nil, errors.BadRequest("El nombre es obligatorio", nil)
	}
	categoryID, _ := strconv.Atoi(c.FormValue("categoria_id"))

	product := &entity.Product{
		Name:        name,
		Description: c.FormValue("descripcion"),
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
	}

	if file, err := c.FormFile("imagen"); err == nil {
		src, err := file.Open()
		if err != nil {
			return nil, errors.Internal("No se pudo leer la imagen", err)
		}
		defer src.Close()
		if _, err := io.Copy(io.Discard, src); err != nil {
			return nil, errors.Internal("No se pudo leer la imagen", err)
		}
		product.Image = "/uploads/" + file.Filename
	}
	return product, nil
}

func (s *Server) handleCreateProduct(c echo.Context) error {
	userID := currentUser(c)

	s.mu.Lock()
	acc := s.accounts[userID]
	s.mu.Unlock()
	if acc == nil || !acc.user.IsSeller() {
		return response.Error(c, errors.Forbidden("Solo los vendedores pueden publicar productos", nil))
	}

	product, err := s.productForm(c)
	if err != nil {
		return response.Error(c, err)
	}

	s.mu.Lock()
	product.ID = s.id()
	product.SellerID = userID
	product.SellerName = acc.user.Name
	product.CreatedAt = time.Now()
	s.products[product.ID] = product
	s.mu.Unlock()

	return response.Created(c, product)
}

func (s *Server) handleUpdateProduct(c echo.Context) error {
	userID := currentUser(c)
	id, _ := strconv.Atoi(c.FormValue("id"))

	updated, err := s.productForm(c)
	if err != nil {
		return response.Error(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return response.Error(c, errors.NotFound("Producto", nil))
	}
	if product.SellerID != userID {
		return response.Error(c, errors.Forbidden("No autorizado para editar este producto", nil))
	}

	product.Name = updated.Name
	product.Description = updated.Description
	product.Price = updated.Price
	product.Stock = updated.Stock
	product.CategoryID = updated.CategoryID
	if updated.Image != "" {
		product.Image = updated.Image
	}
	return response.JSON(c, product)
}

func (s *Server) handleDeleteProduct(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		ID int `json:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[req.ID]
	if !ok {
		return response.Error(c, errors.NotFound("Producto", nil))
	}
	if product.SellerID != userID {
		return response.Error(c, errors.Forbidden("No autorizado para eliminar este producto", nil))
	}
	delete(s.products, req.ID)
	return response.JSON(c, echo.Map{"eliminado": true})
}

func (s *Server) handleListCategories(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories := make([]entity.Category, len(s.categories))
	copy(categories, s.categories)
	return response.JSON(c, categories)
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		Name     string `json:"nombre"`
		ParentID int    `json:"padre_id"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}
	if strings.TrimSpace(req.Name) == "" {
		return response.Error(c, errors.BadRequest("El nombre es obligatorio", nil))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[userID]
	if acc == nil || !acc.user.IsAdmin() {
		return response.Error(c, errors.Forbidden("Solo un administrador puede crear categorías", nil))
	}
	category := entity.Category{ID: s.id(), Name: strings.TrimSpace(req.Name), ParentID: req.ParentID}
	s.categories = append(s.categories, category)
	return response.Created(c, category)
}

func (s *Server) handleListCart(c echo.Context) error {
	userID := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entity.CartItem, len(s.carts[userID]))
	copy(items, s.carts[userID])
	return response.JSON(c, items)
}

func (s *Server) handleAddToCart(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		ProductID int `json:"producto_id"`
		Quantity  int `json:"cantidad"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}
	if req.Quantity < 1 {
		return response.Error(c, errors.BadRequest("La cantidad debe ser al menos 1", nil))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[req.ProductID]
	if !ok {
		return response.Error(c, errors.NotFound("Producto", nil))
	}

	for i := range s.carts[userID] {
		if s.carts[userID][i].ProductID == req.ProductID {
			s.carts[userID][i].Quantity += req.Quantity
			return response.JSON(c, echo.Map{"agregado": true})
		}
	}
	s.carts[userID] = append(s.carts[userID], entity.CartItem{
		ID:         s.id(),
		ProductID:  product.ID,
		Name:       product.Name,
		Image:      product.Image,
		UnitPrice:  product.Price,
		Quantity:   req.Quantity,
		SellerName: product.SellerName,
	})
	return response.JSON(c, echo.Map{"agregado": true})
}

func (s *Server) handleUpdateCartItem(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		ItemID   int `json:"item_id"`
		Quantity int `json:"cantidad"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.carts[userID] {
		if s.carts[userID][i].ID == req.ItemID {
			if req.Quantity <= 0 {
				s.carts[userID] = append(s.carts[userID][:i], s.carts[userID][i+1:]...)
			} else {
				s.carts[userID][i].Quantity = req.Quantity
			}
			return response.JSON(c, echo.Map{"actualizado": true})
		}
	}
	return response.Error(c, errors.NotFound("Artículo del carrito", nil))
}

func (s *Server) handleRemoveCartItem(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		ItemID int `json:"item_id"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.carts[userID] {
		if s.carts[userID][i].ID == req.ItemID {
			s.carts[userID] = append(s.carts[userID][:i], s.carts[userID][i+1:]...)
			return response.JSON(c, echo.Map{"eliminado": true})
		}
	}
	return response.Error(c, errors.NotFound("Artículo del carrito", nil))
}

func (s *Server) handleEmptyCart(c echo.Context) error {
	userID := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = nil
	return response.JSON(c, echo.Map{"vaciado": true})
}

func (s *Server) handleCreateOrder(c echo.Context) error {
	userID := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.carts[userID]
	if len(cart) == 0 {
		return response.Error(c, errors.BadRequest("El carrito está vacío", nil))
	}

	o := &order{
		id:      s.id(),
		buyerID: userID,
		created: time.Now(),
		status:  entity.StatusPending,
		sellers: make(map[int]bool),
	}
	total := 0.0
	for _, item := range cart {
		o.items = append(o.items, entity.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
		total += item.Subtotal()
		if product, ok := s.products[item.ProductID]; ok {
			o.sellers[product.SellerID] = true
		}
		if s.purchases[userID] == nil {
			s.purchases[userID] = make(map[int]bool)
		}
		s.purchases[userID][item.ProductID] = true
	}
	s.orders = append(s.orders, o)
	s.carts[userID] = nil

	return response.Created(c, entity.Order{
		ID:        o.id,
		CreatedAt: o.created,
		Status:    o.status,
		Total:     total,
		Items:     o.items,
	})
}

func (s *Server) handleListOrders(c echo.Context) error {
	userID := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	orders := []entity.Order{}
	for _, o := range s.orders {
		if o.buyerID != userID {
			continue
		}
		total := 0.0
		for _, item := range o.items {
			total += item.UnitPrice * float64(item.Quantity)
		}
		orders = append(orders, entity.Order{
			ID:        o.id,
			CreatedAt: o.created,
			Status:    o.status,
			Total:     total,
			Items:     o.items,
		})
	}
	return response.JSON(c, orders)
}

func (s *Server) handleListSellerOrders(c echo.Context) error {
	userID := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	orders := []entity.SellerOrder{}
	for _, o := range s.orders {
		if !o.sellers[userID] {
			continue
		}
		buyer := ""
		if acc, ok := s.accounts[o.buyerID]; ok {
			buyer = acc.user.Name
		}
		orders = append(orders, entity.SellerOrder{
			ID:        o.id,
			BuyerName: buyer,
			CreatedAt: o.created,
			Status:    o.status,
			Items:     o.items,
		})
	}
	return response.JSON(c, orders)
}

func (s *Server) handleUpdateOrderStatus(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		OrderID int                `json:"pedido_id"`
		Status  entity.OrderStatus `json:"estado"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}
	if !req.Status.Valid() {
		return response.Error(c, errors.BadRequest("Estado no válido", nil))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.id != req.OrderID {
			continue
		}
		if !o.sellers[userID] {
			return response.Error(c, errors.Forbidden("No autorizado para gestionar este pedido", nil))
		}
		if o.status.Terminal() {
			return response.Error(c, errors.BadRequest("El pedido ya no admite cambios de estado", nil))
		}
		o.status = req.Status
		return response.JSON(c, echo.Map{"actualizado": true})
	}
	return response.Error(c, errors.NotFound("Pedido", nil))
}
