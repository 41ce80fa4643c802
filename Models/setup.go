package Models

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the configured backend and returns the account store the rest
// of the system is wired against. DB_DIALECT=memory skips the database
// entirely and keeps everything in process memory.
func Connect() AccountStore {
	var store AccountStore

	switch os.Getenv("DB_DIALECT") {
	case "memory":
		log.Println("No database configured, using in-memory account store")
		store = NewMemoryAccountStore()
	case "mysql":
		dsn := os.Getenv("DB_DSN")
		connection, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to mysql: %v", err)
		}
		DB = connection
		store = NewGormAccountStore(DB)
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "database.db"
		}
		connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to open sqlite database: %v", err)
		}
		DB = connection
		store = NewGormAccountStore(DB)
	}

	if DB != nil {
		if err := DB.AutoMigrate(&User{}, &CampaignLog{}); err != nil {
			log.Println(err)
		}
	}

	bootstrapAdmin(store)
	return store
}

// bootstrapAdmin seeds the default administrator on first start so the panel
// is reachable before any users exist.
func bootstrapAdmin(store AccountStore) {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	if _, err := store.GetByUsername(username); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
		log.Println("ADMIN_PASSWORD not set, default admin created with password 'admin'")
	}

	passwordByte, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Failed to hash admin password:", err)
		return
	}

	admin := User{
		Username:  username,
		Password:  passwordByte,
		Role:      RoleAdmin,
		Signature: "<p>Saludos,<br><strong>" + username + "</strong><br>Administrador</p>",
	}
	admin.SetSMTPSettings(SMTPConfig{Port: "587"})

	if err := store.Create(&admin); err != nil {
		log.Println("Failed to create default admin:", err)
		return
	}
	log.Println("Default admin initialized:", username)
}
