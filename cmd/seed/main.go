package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"travia/internal/config"
	"travia/internal/database"
	"travia/internal/domain"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Schedule{},
		&domain.Booking{},
		&domain.Testimonial{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	seedAdmin(db)

	log.Println("Cleaning old catalog data...")
	db.Exec("DELETE FROM testimonials")
	db.Exec("DELETE FROM schedules")

	seedSchedules(db)
	seedTestimonials(db)

	log.Println("Seed complete")
}

func seedAdmin(db *gorm.DB) {
	email := envOrDefault("ADMIN_EMAIL", "admin@travia.id")
	password := envOrDefault("ADMIN_PASSWORD", "admin12345")

	var existing domain.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Admin user already exists:", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash admin password:", err)
	}

	admin := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Travia Admin",
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("create admin:", err)
	}
	log.Println("Created admin user:", email)
}

func seedSchedules(db *gorm.DB) {
	schedules := []domain.Schedule{
		{RouteFrom: "Surabaya", RouteTo: "Denpasar", RouteVia: "Banyuwangi", PickupTime: "19:00", Price: 350000, Category: "Executive"},
		{RouteFrom: "Malang", RouteTo: "Denpasar", RouteVia: "Banyuwangi", PickupTime: "18:00", Price: 375000, Category: "Executive"},
		{RouteFrom: "Surabaya", RouteTo: "Jakarta", PickupTime: "16:00", Price: 450000, Category: "Executive"},
		{RouteFrom: "Surabaya", RouteTo: "Jogja", PickupTime: "21:00", Price: 250000, Category: "Regular"},
		{RouteFrom: "Surabaya", RouteTo: "Solo", PickupTime: "21:00", Price: 225000, Category: "Regular"},
		{RouteFrom: "Malang", RouteTo: "Surabaya", PickupTime: "07:00", Price: 100000, Category: "Regular"},
		{RouteFrom: "Malang", RouteTo: "Surabaya", PickupTime: "15:00", Price: 100000, Category: "Regular"},
		{RouteFrom: "Banyuwangi", RouteTo: "Surabaya", PickupTime: "08:00", Price: 175000, Category: "Regular"},
		{RouteFrom: "Surabaya", RouteTo: "Blitar", RouteVia: "Kediri", PickupTime: "09:00", Price: 150000, Category: "Regular"},
		{RouteFrom: "Surabaya", RouteTo: "Jember", RouteVia: "Lumajang", PickupTime: "10:00", Price: 165000, Category: "Regular"},
		{RouteFrom: "Madiun", RouteTo: "Surabaya", RouteVia: "Ponorogo", PickupTime: "06:00", Price: 135000, Category: "Regular"},
		{RouteFrom: "Trenggalek", RouteTo: "Surabaya", PickupTime: "06:30", Price: 140000, Category: "Regular"},
	}

	for i := range schedules {
		schedules[i].ID = uuid.NewString()
		schedules[i].IsActive = true
	}

	if err := db.Create(&schedules).Error; err != nil {
		log.Fatal("seed schedules:", err)
	}
	log.Printf("Seeded %d schedules", len(schedules))
}

func seedTestimonials(db *gorm.DB) {
	testimonials := []domain.Testimonial{
		{Name: "Budi Santoso", Role: "Pelanggan Rutin", Content: "Berangkat tepat waktu, sopirnya ramah. Langganan tiap bulan ke Denpasar.", Rating: 5, DisplayOrder: 1},
		{Name: "Siti Rahma", Role: "Mahasiswa", Content: "Dijemput di depan kos, harga bersahabat. Recommended buat anak rantau.", Rating: 5, DisplayOrder: 2},
		{Name: "Andi Wijaya", Role: "Karyawan", Content: "Mobil bersih dan nyaman, AC dingin. Perjalanan Surabaya-Jakarta lancar.", Rating: 4, DisplayOrder: 3},
		{Name: "Dewi Lestari", Role: "Ibu Rumah Tangga", Content: "Aman buat perjalanan sama anak-anak. Pembayaran online juga gampang.", Rating: 5, DisplayOrder: 4},
	}

	for i := range testimonials {
		testimonials[i].ID = uuid.NewString()
		testimonials[i].IsActive = true
	}

	if err := db.Create(&testimonials).Error; err != nil {
		log.Fatal("seed testimonials:", err)
	}
	log.Printf("Seeded %d testimonials", len(testimonials))
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
