package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wahyusaputra/motorshop-backend/internal/config"
	"github.com/wahyusaputra/motorshop-backend/internal/db"
	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/repository"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.User{}, &model.Motor{}, &model.Transaction{}, &model.Delivery{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := seedOwner(ctx, gdb); err != nil {
		return err
	}
	return seedMotors(ctx, gdb)
}

func seedOwner(ctx context.Context, gdb *gorm.DB) error {
	users := repository.NewUserRepository(gdb)

	email := strings.ToLower(strings.TrimSpace(os.Getenv("OWNER_EMAIL")))
	if email == "" {
		email = "owner@motorshop.local"
	}
	password := os.Getenv("OWNER_PASSWORD")
	if password == "" {
		password = "owner12345"
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		log.Printf("owner %s already exists; skipping", email)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup owner: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}
	hashed := string(hash)
	owner := &model.User{
		Email:    email,
		Password: &hashed,
		Name:     "Pemilik Toko",
		Role:     model.RoleOwner,
	}
	if err := users.Create(ctx, owner); err != nil {
		return fmt.Errorf("create owner: %w", err)
	}
	log.Printf("seeded owner account %s", email)
	return nil
}

func seedMotors(ctx context.Context, gdb *gorm.DB) error {
	motors := repository.NewMotorRepository(gdb)

	count, err := motors.Count(ctx)
	if err != nil {
		return fmt.Errorf("count motors: %w", err)
	}
	if count > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("motors already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	samples := buildSeedMotors()
	for i := range samples {
		if err := motors.Create(ctx, &samples[i]); err != nil {
			return fmt.Errorf("create motor %q: %w", samples[i].Name, err)
		}
	}
	log.Printf("seeded %d motors", len(samples))
	return nil
}

func buildSeedMotors() []model.Motor {
	desc := func(s string) *string { return &s }
	return []model.Motor{
		{Name: "Honda Beat Street", Brand: "Honda", Model: "Beat Street", Year: 2024, Price: 18_500_000, Stock: 12, Description: desc("Skutik harian irit dengan rangka eSAF dan panel digital.")},
		{Name: "Honda Vario 160", Brand: "Honda", Model: "Vario 160", Year: 2024, Price: 27_000_000, Stock: 8, Description: desc("Mesin 160cc eSP+, ABS pada tipe tertinggi.")},
		{Name: "Honda PCX 160", Brand: "Honda", Model: "PCX 160", Year: 2023, Price: 33_500_000, Stock: 5, Description: desc("Skutik premium dengan Honda Smart Key dan ruang bagasi luas.")},
		{Name: "Yamaha NMAX 155", Brand: "Yamaha", Model: "NMAX 155", Year: 2024, Price: 32_000_000, Stock: 6, Description: desc("VVA 155cc, koneksi Y-Connect, rem ABS.")},
		{Name: "Yamaha Aerox 155", Brand: "Yamaha", Model: "Aerox 155", Year: 2023, Price: 27_500_000, Stock: 9, Description: desc("Desain sporty dengan mesin VVA dan mode berkendara.")},
		{Name: "Yamaha XSR 155", Brand: "Yamaha", Model: "XSR 155", Year: 2023, Price: 38_000_000, Stock: 3, Description: desc("Sport heritage, kopling assist dan slipper.")},
		{Name: "Suzuki GSX-R150", Brand: "Suzuki", Model: "GSX-R150", Year: 2023, Price: 36_500_000, Stock: 4, Description: desc("Full fairing 150cc DOHC, keyless ignition.")},
		{Name: "Kawasaki Ninja 250", Brand: "Kawasaki", Model: "Ninja 250", Year: 2024, Price: 67_000_000, Stock: 2, Description: desc("Twin cylinder 250cc untuk pemakaian sport touring.")},
		{Name: "Vespa Sprint S 150", Brand: "Vespa", Model: "Sprint S 150", Year: 2024, Price: 62_000_000, Stock: 2, Description: desc("I-get 150cc, bodi klasik baja monokok.")},
	}
}
