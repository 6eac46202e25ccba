package provider

import (
	"github.com/minikart-next/minikart/internal/cache"
	"github.com/minikart-next/minikart/internal/cart"
	"github.com/minikart-next/minikart/internal/checkout"
	"github.com/minikart-next/minikart/internal/config"
	"github.com/minikart-next/minikart/internal/events"
	"github.com/minikart-next/minikart/internal/logger"
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/payment/braintree"
	"github.com/minikart-next/minikart/internal/queue"
	"github.com/minikart-next/minikart/internal/repository"
	"github.com/minikart-next/minikart/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Publisher   *events.Publisher
	Gateway     *braintree.Client

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	OrderRepo    repository.OrderRepository

	// Services
	AuthService      *service.AuthService
	CategoryService  *service.CategoryService
	ProductService   *service.ProductService
	OrderService     *service.OrderService
	DashboardService *service.DashboardService

	// Cart and checkout
	CartStore *cart.Store
	Checkout  *checkout.Workflow
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Publisher:   events.NewPublisher(&cfg.Kafka),
	}

	c.initRepositories()
	c.initServices()
	c.initCheckout()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.QueueClient, c.Publisher)
	c.DashboardService = service.NewDashboardService(c.UserRepo, c.ProductRepo, c.OrderRepo)
}

func (c *Container) initCheckout() {
	var storage cart.Storage
	if cache.Enabled() {
		storage = cart.NewRedisStorage()
	} else {
		logger.Warnw("cart_storage_fallback_memory")
		storage = cart.NewMemoryStorage()
	}
	c.CartStore = cart.NewStore(storage)

	gateway, err := braintree.NewClient(braintree.Config{
		Sandbox:    c.Config.Payment.Braintree.Sandbox,
		MerchantID: c.Config.Payment.Braintree.MerchantID,
		PublicKey:  c.Config.Payment.Braintree.PublicKey,
		PrivateKey: c.Config.Payment.Braintree.PrivateKey,
		APIBaseURL: c.Config.Payment.Braintree.APIBaseURL,
		TimeoutMS:  c.Config.Payment.Braintree.TimeoutMS,
	})
	if err != nil {
		logger.Errorw("provider_init_gateway_failed", "error", err)
		panic(err)
	}
	c.Gateway = gateway

	c.Checkout = checkout.NewWorkflow(c.CartStore, c.AuthService, c.OrderService, gateway, nil)
}
