package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"flowershop/cmd"
	"flowershop/internal/adapters/out/postgres/imagerepo"
	"flowershop/internal/adapters/out/postgres/notificationrepo"
	"flowershop/internal/adapters/out/postgres/orderrepo"
	"flowershop/internal/adapters/out/postgres/productrepo"
	"flowershop/internal/adapters/out/postgres/userrolerepo"
	redisout "flowershop/internal/adapters/out/redis"
	"flowershop/internal/adapters/out/runware"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	redisClient := connectRedis(configs, logger)
	generator := runware.NewClient(configs.ImageAPIBaseURL, configs.ImageAPIKey)

	root := cmd.NewCompositionRoot(configs, gormDB, redisClient, generator, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		RedisAddr:     goDotEnvVariable("REDIS_ADDR"),
		RedisPassword: goDotEnvVariable("REDIS_PASSWORD"),

		JWTSecret: goDotEnvVariable("JWT_SECRET"),

		PaymentBaseURL:       goDotEnvVariable("PAYMENT_BASE_URL"),
		PaymentAPIKey:        goDotEnvVariable("PAYMENT_API_KEY"),
		PaymentWebhookSecret: goDotEnvVariable("PAYMENT_WEBHOOK_SECRET"),

		ImageAPIBaseURL: goDotEnvVariable("IMAGE_API_BASE_URL"),
		ImageAPIKey:     goDotEnvVariable("IMAGE_API_KEY"),
	}

	if raw := goDotEnvVariable("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid REDIS_DB value %q: %v", raw, err)
		}
		config.RedisDB = db
	}

	return config
}

func goDotEnvVariable(key string) string {
	_ = godotenv.Load(".env")
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&productrepo.ProductDTO{},
		&imagerepo.ImageDTO{},
		&notificationrepo.NotificationDTO{},
		&userrolerepo.UserRoleDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

// connectRedis returns nil when no address is configured; the composition
// root then runs the catalog without a cache.
func connectRedis(configs cmd.Config, logger *slog.Logger) *redislib.Client {
	if configs.RedisAddr == "" {
		return nil
	}

	client, err := redisout.Connect(configs.RedisAddr, configs.RedisPassword, configs.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	logger.Info("Catalog cache enabled", "addr", configs.RedisAddr)
	return client
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e, root.CreateAuthMiddleware())

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
