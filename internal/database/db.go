package database

import (
	"fmt"

	"kitchenops/internal/models"
	"kitchenops/internal/store"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // Postgres dialect
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

var DB *gorm.DB

// InitDB initializes the database connection. Driver is "sqlite3" or
// "postgres"; the DSN is a file path or a connection string respectively.
func InitDB(driver, dsn string) error {
	var err error
	DB, err = gorm.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("open %s database: %w", driver, err)
	}
	return Migrate(DB)
}

// Migrate creates or updates the schema for every tracked table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Org{},
		&models.Location{},
		&models.Station{},
		&models.MenuItem{},
		&models.Ingredient{},
		&models.Supplier{},
		&models.IngredientSupplier{},
		&models.RecipeLine{},
		&models.InventoryLevel{},
		&models.DemandForecast{},
		&models.PrepPlan{},
		&models.PrepPlanLine{},
		&models.Order{},
		&models.OrderItem{},
		&models.Ticket{},
		&models.StationSLA{},
		&models.RestockRecommendation{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderLine{},
		&models.Alert{},
		&models.WasteEvent{},
	).Error
}

// Seed loads a dataset into an empty database. A database that already holds
// an org is considered seeded and is left untouched.
func Seed(db *gorm.DB, data *store.Dataset) error {
	var count int
	if err := db.Model(&models.Org{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	rows := make([]interface{}, 0)
	for i := range data.Orgs {
		rows = append(rows, &data.Orgs[i])
	}
	for i := range data.Locations {
		rows = append(rows, &data.Locations[i])
	}
	for i := range data.Stations {
		rows = append(rows, &data.Stations[i])
	}
	for i := range data.MenuItems {
		rows = append(rows, &data.MenuItems[i])
	}
	for i := range data.Ingredients {
		rows = append(rows, &data.Ingredients[i])
	}
	for i := range data.Suppliers {
		rows = append(rows, &data.Suppliers[i])
	}
	for i := range data.SupplierPrices {
		rows = append(rows, &data.SupplierPrices[i])
	}
	for i := range data.RecipeLines {
		rows = append(rows, &data.RecipeLines[i])
	}
	for i := range data.Inventory {
		rows = append(rows, &data.Inventory[i])
	}
	for i := range data.Forecasts {
		rows = append(rows, &data.Forecasts[i])
	}
	for i := range data.Orders {
		rows = append(rows, &data.Orders[i])
	}
	for i := range data.OrderItems {
		rows = append(rows, &data.OrderItems[i])
	}
	for i := range data.Tickets {
		rows = append(rows, &data.Tickets[i])
	}
	for i := range data.SLATargets {
		rows = append(rows, &data.SLATargets[i])
	}
	for i := range data.Restocks {
		rows = append(rows, &data.Restocks[i])
	}
	for i := range data.Plans {
		rows = append(rows, &data.Plans[i])
	}
	for i := range data.PlanLines {
		rows = append(rows, &data.PlanLines[i])
	}
	for i := range data.Alerts {
		rows = append(rows, &data.Alerts[i])
	}
	for i := range data.Waste {
		rows = append(rows, &data.Waste[i])
	}
	for _, row := range rows {
		if err := tx.Create(row).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
