package api

import (
	"log"

	"github.com/einkreativername/brightmiss/config"
	"github.com/einkreativername/brightmiss/infra/queue"
	"github.com/einkreativername/brightmiss/internal/api/rest/handlers"
	"github.com/einkreativername/brightmiss/internal/domain"
	"github.com/einkreativername/brightmiss/internal/helper"
	"github.com/einkreativername/brightmiss/internal/repository"
	"github.com/einkreativername/brightmiss/internal/services"
	"github.com/einkreativername/brightmiss/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260831

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.InviteToken{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	seedAdmin(db, cfg)

	// release before Listen; a deferred unlock would never run
	if err := db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error; err != nil {
		log.Printf("migration unlock error: %v", err)
	}

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	var uploadHandler *handlers.UploadHandler
	if cfg.CloudinaryURL != "" {
		cld, err := cloudinary.New()
		if err != nil {
			log.Fatalf("cloudinary init error: %v", err)
		}
		uploadHandler = handlers.NewUploadHandler(cloudinary.NewCloudinaryUploader(cld))
	} else {
		log.Println("CLOUDINARY_URL not set - upload routes disabled")
	}

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Service ----------
	userSvc := services.NewUserService(
		userRepo,
		profileRepo,
		inviteRepo,
		auditRepo,
		kafkaProducer,
		authHelper,
		cfg.BaseURL,
	)

	// ---------- Handler ----------
	userHandler := handlers.NewUserHandler(userSvc, authHelper)
	userHandler.SetupRoutes(app, uploadHandler)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func seedAdmin(db *gorm.DB, cfg config.Config) {
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set - skip admin seed")
		return
	}

	var existing domain.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("admin seed lookup error: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("admin seed hash error: %v", err)
		return
	}

	hashStr := string(hash)
	admin := &domain.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: &hashStr,
		Role:         domain.RoleAdmin,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Profile{
			UserID:    admin.ID,
			FirstName: "Admin",
			LastName:  "User",
		}).Error
	})
	if err != nil {
		log.Printf("admin seed error: %v", err)
		return
	}
	log.Println("admin user created:", admin.Email)
}
