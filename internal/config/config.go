package config

import "github.com/spf13/viper"

// Config carries every runtime setting the application needs. It is loaded
// once in main and passed into the composition root so no other package
// reads the environment directly.
type Config struct {
	Env  string
	Port string

	// DatabaseURL is a Postgres DSN. When empty the server falls back to a
	// local sqlite file, which is what the test suite uses as well.
	DatabaseURL string

	// UseFirestore switches the storage port to the Firestore adapter.
	// Exactly one backend is active per process.
	UseFirestore           bool
	FirebaseServiceAccount string

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	// StorageBucketURL is a gocloud.dev bucket URL (e.g. gs://boutique-media).
	// When empty, uploads go to UploadDir and are served at /uploads.
	StorageBucketURL string
	StoragePublicURL string
	UploadDir        string

	RabbitMQURL string
}

// Load reads configuration from the environment with sane defaults.
func Load() *Config {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("USE_FIRESTORE", false)
	viper.SetDefault("FIREBASE_SERVICE_ACCOUNT", "")
	viper.SetDefault("JWT_SECRET", "dev_secret_change_me")
	viper.SetDefault("ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("STORAGE_BUCKET_URL", "")
	viper.SetDefault("STORAGE_PUBLIC_URL", "")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return &Config{
		Env:                    viper.GetString("APP_ENV"),
		Port:                   viper.GetString("APP_PORT"),
		DatabaseURL:            viper.GetString("DATABASE_URL"),
		UseFirestore:           viper.GetBool("USE_FIRESTORE"),
		FirebaseServiceAccount: viper.GetString("FIREBASE_SERVICE_ACCOUNT"),
		JWTSecret:              viper.GetString("JWT_SECRET"),
		AdminEmail:             viper.GetString("ADMIN_EMAIL"),
		AdminPasswordHash:      viper.GetString("ADMIN_PASSWORD_HASH"),
		StorageBucketURL:       viper.GetString("STORAGE_BUCKET_URL"),
		StoragePublicURL:       viper.GetString("STORAGE_PUBLIC_URL"),
		UploadDir:              viper.GetString("UPLOAD_DIR"),
		RabbitMQURL:            viper.GetString("RABBITMQ_URL"),
	}
}
