// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/biloop252/suuqsade-backend/internal/domain/cart"
	"github.com/biloop252/suuqsade-backend/internal/domain/delivery"
	"github.com/biloop252/suuqsade-backend/internal/domain/discount"
	"github.com/biloop252/suuqsade-backend/internal/domain/order"
	"github.com/biloop252/suuqsade-backend/internal/domain/product"
	"github.com/biloop252/suuqsade-backend/internal/domain/user"
	"github.com/biloop252/suuqsade-backend/internal/domain/vendor"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// User domain
		&user.User{},
		&user.Address{},

		// Vendor domain
		&vendor.Vendor{},

		// Product domain
		&product.Category{},
		&product.Brand{},
		&product.Product{},
		&product.ProductVariant{},
		&product.ProductImage{},

		// Discount domain
		&discount.Discount{},
		&discount.Scope{},
		&discount.Usage{},

		// Cart domain
		&cart.CartItem{},

		// Delivery domain
		&delivery.Zone{},
		&delivery.PickupLocation{},
		&delivery.Rate{},

		// Order domain
		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
		&order.Delivery{},
		&order.StatusHistory{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_addresses_user_type ON addresses(user_id, type)",
		"CREATE INDEX IF NOT EXISTS idx_addresses_user_default ON addresses(user_id, is_default)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_vendor_active ON products(vendor_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_product_variants_product_active ON product_variants(product_id, is_active)",

		// Discount indexes
		"CREATE INDEX IF NOT EXISTS idx_discounts_active_window ON discounts(is_active, status, start_date, end_date)",
		"CREATE INDEX IF NOT EXISTS idx_discounts_global_code ON discounts(is_global, code)",
		"CREATE INDEX IF NOT EXISTS idx_discount_scopes_discount ON discount_scopes(discount_id)",
		"CREATE INDEX IF NOT EXISTS idx_discount_usages_discount_user ON discount_usages(discount_id, user_id)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user_product ON cart_items(user_id, product_id)",

		// Delivery indexes
		"CREATE INDEX IF NOT EXISTS idx_delivery_zones_dest ON delivery_zones(country, city)",
		"CREATE INDEX IF NOT EXISTS idx_delivery_rates_lane ON delivery_rates(pickup_city, delivery_city, price)",
		"CREATE INDEX IF NOT EXISTS idx_pickup_locations_vendor ON pickup_locations(vendor_id, is_active)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_vendor ON order_items(vendor_id)",
		"CREATE INDEX IF NOT EXISTS idx_payments_order_id ON payments(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_histories_order ON order_status_histories(order_id, created_at)",
	}

	successCount := 0
	failCount := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := m.seedDeliveryZones(); err != nil {
		return fmt.Errorf("failed to seed delivery zones: %w", err)
	}
	if err := m.seedWelcomeDiscount(); err != nil {
		return fmt.Errorf("failed to seed welcome discount: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedCategories() error {
	categories := []product.Category{
		{Name: "Electronics", Slug: "electronics", SortOrder: 1, IsActive: true},
		{Name: "Clothing", Slug: "clothing", SortOrder: 2, IsActive: true},
		{Name: "Home & Garden", Slug: "home-garden", SortOrder: 3, IsActive: true},
		{Name: "Books", Slug: "books", SortOrder: 4, IsActive: true},
	}

	for _, category := range categories {
		var existing product.Category
		if err := m.db.Where("slug = ?", category.Slug).First(&existing).Error; err != nil {
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			log.Printf("✅ Created category: %s", category.Name)
		}
	}
	return nil
}

func (m *Migration) seedAdminUser() error {
	var existing user.User
	if err := m.db.Where("email = ?", "admin@suuqsade.com").First(&existing).Error; err == nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin12345"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := user.User{
		Email:     "admin@suuqsade.com",
		Password:  string(hashedPassword),
		FirstName: "Admin",
		LastName:  "User",
		IsActive:  true,
		IsAdmin:   true,
	}
	if err := m.db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin@suuqsade.com")
	return nil
}

func (m *Migration) seedDeliveryZones() error {
	zones := []delivery.Zone{
		{Country: "US", City: "New York", IsActive: true},
		{Country: "US", City: "Los Angeles", IsActive: true},
		{Country: "US", City: "Chicago", IsActive: true},
	}

	for _, zone := range zones {
		var existing delivery.Zone
		if err := m.db.Where("country = ? AND city = ?", zone.Country, zone.City).First(&existing).Error; err != nil {
			if err := m.db.Create(&zone).Error; err != nil {
				return err
			}
			log.Printf("✅ Created delivery zone: %s, %s", zone.City, zone.Country)
		}
	}
	return nil
}

func (m *Migration) seedWelcomeDiscount() error {
	code := "WELCOME10"
	var existing discount.Discount
	if err := m.db.Where("code = ?", code).First(&existing).Error; err == nil {
		return nil
	}

	now := time.Now().UTC()
	welcome := discount.Discount{
		Name:               "Welcome 10% off",
		Code:               &code,
		Type:               discount.TypePercentage,
		Value:              10,
		MinimumOrderAmount: 2000,
		Status:             discount.StatusActive,
		IsActive:           true,
		IsGlobal:           true,
		StartDate:          now,
	}
	if err := m.db.Create(&welcome).Error; err != nil {
		return err
	}

	log.Printf("✅ Created welcome coupon: %s", code)
	return nil
}
