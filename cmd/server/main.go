package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tirthomj/Ticket-Management-system/config"
	"github.com/tirthomj/Ticket-Management-system/internal/cache"
	"github.com/tirthomj/Ticket-Management-system/internal/database"
	"github.com/tirthomj/Ticket-Management-system/internal/handler"
	"github.com/tirthomj/Ticket-Management-system/internal/idgen"
	"github.com/tirthomj/Ticket-Management-system/internal/ledger"
	"github.com/tirthomj/Ticket-Management-system/internal/queue"
	"github.com/tirthomj/Ticket-Management-system/internal/service"
	"github.com/tirthomj/Ticket-Management-system/internal/storage"
	"github.com/tirthomj/Ticket-Management-system/internal/worker"
	"github.com/tirthomj/Ticket-Management-system/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	var store storage.Store
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		pool, err := database.InitDatabase(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer pool.Close()
		store = storage.NewPGStore(pool)
	case config.StoreBackendFile:
		store = storage.NewFileStore(cfg.FileStore)
	default:
		log.Fatalf("Unknown store backend: %s", cfg.StoreBackend)
	}

	shows, err := store.LoadShows(ctx)
	if err != nil {
		log.Fatalf("Failed to load shows: %v", err)
	}
	tickets, err := store.LoadTickets(ctx)
	if err != nil {
		log.Fatalf("Failed to load tickets: %v", err)
	}
	users, err := store.LoadUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to load users: %v", err)
	}

	showLedger := ledger.NewShowLedger(shows)
	ticketLedger := ledger.NewTicketLedger(tickets)

	var seatInventory cache.RedisSeatInventoryManager
	var eventQueue queue.BookingQueue
	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to initialize redis: %v", err)
		}
		defer rdb.Close()

		seatInventory = cache.NewRedisSeatInventoryManager(rdb)
		for _, show := range showLedger.Snapshot() {
			if err := seatInventory.WarmUpShow(ctx, show.ID, show.Seats, show.BookedSeats()); err != nil {
				log.Fatalf("Failed to warm up seat inventory for show %d: %v", show.ID, err)
			}
		}

		eventQueue, err = queue.NewRedisStreamBookingQueue(rdb, "", nil)
		if err != nil {
			log.Fatalf("Failed to initialize booking queue: %v", err)
		}
		auditWorker := worker.NewAuditWorker(eventQueue, logger.WithComponent("audit"))
		if err := auditWorker.Start(ctx); err != nil {
			log.Fatalf("Failed to start audit worker: %v", err)
		}
	}

	bookingService := service.NewBookingService(showLedger, ticketLedger, store, idgen.New(), seatInventory, eventQueue)
	userService := service.NewUserService(users, store)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	handler.NewShowHandler(bookingService).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router)
	handler.NewUserHandler(userService).RegisterRoutes(router)

	if err := router.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
