// Package stubserver is an in-memory implementation of the VendeYa
// backend contract, used as a local development backend and as the
// counterpart of the end-to-end tests. It mirrors the production wire
// convention: success responses are the payload directly,
// failures carry {"error": string} with a non-2xx status.
package stubserver

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"vendeya/internal/domain/entity"
	"vendeya/pkg/errors"
	"vendeya/pkg/response"
)

type account struct {
	user     entity.User
	password string
}

type conversation struct {
	id       int
	userA    int
	userB    int
	updated  time.Time
	messages []entity.Message
}

type order struct {
	id      int
	buyerID int
	created time.Time
	status  entity.OrderStatus
	items   []entity.OrderItem
	sellers map[int]bool
}

type Server struct {
	echo     *echo.Echo
	validate *validator.Validate

	mu            sync.Mutex
	nextID        int
	accounts      map[int]*account
	emails        map[string]int
	tokens        map[string]int
	products      map[int]*entity.Product
	categories    []entity.Category
	carts         map[int][]entity.CartItem
	orders        []*order
	conversations []*conversation
	ratings       map[int][]entity.Rating
	purchases     map[int]map[int]bool
}

func New() *Server {
	s := &Server{
		echo:      echo.New(),
		validate:  validator.New(),
		accounts:  make(map[int]*account),
		emails:    make(map[string]int),
		tokens:    make(map[string]int),
		products:  make(map[int]*entity.Product),
		carts:     make(map[int][]entity.CartItem),
		ratings:   make(map[int][]entity.Rating),
		purchases: make(map[int]map[int]bool),
	}
	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.POST("/auth/registro", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	api.GET("/productos/listar", s.handleListProducts)
	api.GET("/productos/obtener", s.handleGetProduct)
	api.POST("/productos/crear", s.handleCreateProduct, s.requireAuth)
	api.POST("/productos/actualizar", s.handleUpdateProduct, s.requireAuth)
	api.POST("/productos/eliminar", s.handleDeleteProduct, s.requireAuth)

	api.GET("/categorias/listar", s.handleListCategories)
	api.POST("/categorias/crear", s.handleCreateCategory, s.requireAuth)

	api.GET("/carrito/listar", s.handleListCart, s.requireAuth)
	api.POST("/carrito/agregar", s.handleAddToCart, s.requireAuth)
	api.POST("/carrito/actualizar", s.handleUpdateCartItem, s.requireAuth)
	api.POST("/carrito/eliminar", s.handleRemoveCartItem, s.requireAuth)
	api.POST("/carrito/vaciar", s.handleEmptyCart, s.requireAuth)

	api.POST("/pedidos/crear", s.handleCreateOrder, s.requireAuth)
	api.GET("/pedidos/listar", s.handleListOrders, s.requireAuth)
	api.GET("/pedidos/listar_vendedor", s.handleListSellerOrders, s.requireAuth)
	api.POST("/pedidos/actualizar_estado", s.handleUpdateOrderStatus, s.requireAuth)

	api.GET("/mensajes/listar_conversaciones", s.handleListConversations, s.requireAuth)
	api.GET("/mensajes/obtener_mensajes", s.handleGetMessages, s.requireAuth)
	api.POST("/mensajes/iniciar_conversacion", s.handleStartConversation, s.requireAuth)
	api.POST("/mensajes/enviar_mensaje", s.handleSendMessage, s.requireAuth)
	api.POST("/mensajes/marcar_leidos", s.handleMarkRead, s.requireAuth)
	api.GET("/mensajes/no_leidos", s.handleUnreadCount, s.requireAuth)
	api.GET("/mensajes/buscar_usuarios", s.handleSearchUsers, s.requireAuth)

	api.GET("/valoraciones/listar", s.handleListRatings)
	api.POST("/valoraciones/crear", s.handleCreateRating, s.requireAuth)
	api.PUT("/valoraciones/actualizar", s.handleUpdateRating, s.requireAuth)
	api.POST("/valoraciones/eliminar", s.handleDeleteRating, s.requireAuth)
	api.GET("/valoraciones/verificar", s.handleVerifyRating, s.requireAuth)
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return response.Error(c, errors.Unauthorized("Sesión no iniciada", nil))
		}
		s.mu.Lock()
		userID, ok := s.tokens[strings.TrimPrefix(header, "Bearer ")]
		s.mu.Unlock()
		if !ok {
			return response.Error(c, errors.Unauthorized("Token no válido", nil))
		}
		c.Set("userID", userID)
		return next(c)
	}
}

func currentUser(c echo.Context) int {
	id, _ := c.Get("userID").(int)
	return id
}

// id allocates the next identifier. Callers hold s.mu.
func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

type registerRequest struct {
	Name     string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"rol"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}
	if err := s.validate.Struct(req); err != nil {
		return response.Error(c, err)
	}

	role := req.Role
	if role == "" {
		role = entity.RoleCustomer
	}

	s.mu.Lock()
	if _, exists := s.emails[req.Email]; exists {
		s.mu.Unlock()
		return response.Error(c, errors.BadRequest("El email ya está registrado", nil))
	}
	acc := &account{
		user: entity.User{
			ID:    s.id(),
			Name:  req.Name,
			Email: req.Email,
			Role:  role,
		},
		password: req.Password,
	}
	s.accounts[acc.user.ID] = acc
	s.emails[req.Email] = acc.user.ID
	token := uuid.NewString()
	s.tokens[token] = acc.user.ID
	s.mu.Unlock()

	return response.Created(c, echo.Map{"usuario": acc.user, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}
	if err := s.validate.Struct(req); err != nil {
		return response.Error(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.emails[req.Email]
	if !ok || s.accounts[userID].password != req.Password {
		return response.Error(c, errors.Unauthorized("Credenciales incorrectas", nil))
	}
	token := uuid.NewString()
	s.tokens[token] = userID

	return response.JSON(c, echo.Map{"usuario": s.accounts[userID].user, "token": token})
}

func (s *Server) handleSearchUsers(c echo.Context) error {
	term := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	self := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	users := []entity.User{}
	if term == "" {
		return response.JSON(c, users)
	}
	for _, acc := range s.accounts {
		if acc.user.ID == self {
			continue
		}
		if strings.Contains(strings.ToLower(acc.user.Name), term) ||
			strings.Contains(strings.ToLower(acc.user.Email), term) {
			users = append(users, acc.user)
		}
	}
	return response.JSON(c, users)
}
