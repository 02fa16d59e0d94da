package cli

import (
	adapter "vendeya/internal/adapter/repository"
	"vendeya/internal/infrastructure/localstorage"
	"vendeya/internal/infrastructure/rest"
	"vendeya/internal/usecase"
	"vendeya/pkg/config"
)

// App wires the full client: configuration, durable local storage, the
// REST gateway and every store/coordinator the commands render.
type App struct {
	Config       *config.Config
	Session      *usecase.SessionUseCase
	Cart         *usecase.CartUseCase
	Messaging    *usecase.MessagingUseCase
	Ratings      *usecase.RatingUseCase
	SellerOrders *usecase.SellerOrderUseCase
	Orders       *usecase.OrderUseCase
	Catalog      *usecase.ProductUseCase
	Categories   *usecase.CategoryUseCase
}

func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	storage, err := localstorage.Open(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	// The token source is late-bound: the session store both feeds the
	// gateway and is built on top of it.
	var session *usecase.SessionUseCase
	client := rest.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, func() string {
		if session == nil {
			return ""
		}
		return session.Token()
	})

	session = usecase.NewSessionUseCase(adapter.NewRestAuthRepository(client), storage)
	cart := usecase.NewCartUseCase(adapter.NewRestCartRepository(client), session)
	orderRepo := adapter.NewRestOrderRepository(client)

	return &App{
		Config:       cfg,
		Session:      session,
		Cart:         cart,
		Messaging:    usecase.NewMessagingUseCase(adapter.NewRestMessageRepository(client), session),
		Ratings:      usecase.NewRatingUseCase(adapter.NewRestRatingRepository(client), session),
		SellerOrders: usecase.NewSellerOrderUseCase(orderRepo),
		Orders:       usecase.NewOrderUseCase(orderRepo, cart),
		Catalog:      usecase.NewProductUseCase(adapter.NewRestProductRepository(client), session),
		Categories:   usecase.NewCategoryUseCase(adapter.NewRestCategoryRepository(client)),
	}, nil
}
