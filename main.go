package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/pawprintlabs/petcare-portal/booking"
	"github.com/pawprintlabs/petcare-portal/controllers"
	"github.com/pawprintlabs/petcare-portal/cron"
	"github.com/pawprintlabs/petcare-portal/db"
	"github.com/pawprintlabs/petcare-portal/redis"
	"github.com/pawprintlabs/petcare-portal/repository"
	"github.com/pawprintlabs/petcare-portal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close(conn)

	if err := db.Migrate(conn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	rdb, err := redis.New(os.Getenv("REDIS_ADDR"))
	if err != nil {
		log.Fatal(err)
	}
	cache := redis.NewCache(rdb)

	appointments := repository.NewAppointmentRepository(conn)
	pets := repository.NewPetRepository(conn)
	vets := repository.NewVetRepository(conn)
	orders := repository.NewOrderRepository(conn)

	svc := booking.NewService(appointments, pets, vets, orders, cache)

	// An unverifiable payment is worse than no payment endpoint at all.
	reconciler, err := booking.NewReconciler(os.Getenv("PAYMENT_SIGNING_SECRET"), appointments, orders, cache)
	if err != nil {
		log.Fatal("Refusing to start: ", err)
	}

	auth := controllers.NewAuthController(conn)
	appointmentCtl := controllers.NewAppointmentController(svc)
	petCtl := controllers.NewPetController(svc)
	vetCtl := controllers.NewVetController(svc)
	paymentCtl := controllers.NewPaymentController(svc, reconciler)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Pet care portal is running")
	})

	routes.SetupAuthRoutes(app, auth)
	routes.SetupPortalRoutes(app, petCtl, vetCtl)
	routes.SetupAppointmentRoutes(app, appointmentCtl, vetCtl)
	routes.SetupPaymentRoutes(app, paymentCtl)

	cron.StartReminders(conn)

	log.Fatal(app.Listen(":8000"))
}
