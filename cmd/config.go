package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	PaymentBaseURL       string
	PaymentAPIKey        string
	PaymentWebhookSecret string

	ImageAPIBaseURL string
	ImageAPIKey     string
}
