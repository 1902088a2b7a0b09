// Package seed loads demo barbershops from YAML fixtures.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/barbershop"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/loyalty"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

// ErrAlreadySeeded is returned by Apply when the slug is taken.
var ErrAlreadySeeded = errors.New("barbershop already exists")

type Fixture struct {
	Barbershop Barbershop    `yaml:"barbershop"`
	Barbers    []Barber      `yaml:"barbers"`
	Categories []Category    `yaml:"categories"`
	Services   []Service     `yaml:"services"`
	Clients    []Client      `yaml:"clients"`
	Loyalty    []LoyaltyPlan `yaml:"loyalty_plans"`
	Packages   []Package     `yaml:"packages"`
}

type Barbershop struct {
	OwnerID     string `yaml:"owner_id"`
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Address     string `yaml:"address"`
	Phone       string `yaml:"phone"`
	Email       string `yaml:"email"`
	Timezone    string `yaml:"timezone"`
	OpeningTime string `yaml:"opening_time"`
	ClosingTime string `yaml:"closing_time"`
	WorkDays    string `yaml:"work_days"`
}

type Barber struct {
	Name       string `yaml:"name"`
	Phone      string `yaml:"phone"`
	Commission string `yaml:"commission_rate"`
	WorkStart  string `yaml:"work_start_time"`
	WorkEnd    string `yaml:"work_end_time"`
	WorkDays   string `yaml:"work_days"`
}

type Category struct {
	Name      string `yaml:"name"`
	SortOrder int    `yaml:"sort_order"`
}

type Service struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Price    string `yaml:"price"`
	Duration int    `yaml:"duration"`
	IsCombo  bool   `yaml:"is_combo"`
}

type Client struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
	Email string `yaml:"email"`
}

type LoyaltyPlan struct {
	Name              string `yaml:"name"`
	PointsPerCurrency int    `yaml:"points_per_currency"`
	RewardThreshold   int    `yaml:"reward_threshold"`
	RewardValue       string `yaml:"reward_value"`
	RewardType        string `yaml:"reward_type"`
}

type Package struct {
	Name         string `yaml:"name"`
	Price        string `yaml:"price"`
	Sessions     int    `yaml:"sessions"`
	ValidityDays int    `yaml:"validity_days"`
}

func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if f.Barbershop.OwnerID == "" {
		return nil, errors.New("barbershop.owner_id is required")
	}
	if !barbershop.ValidSlug(f.Barbershop.Slug) {
		return nil, fmt.Errorf("invalid slug %q", f.Barbershop.Slug)
	}
	if f.Barbershop.Timezone != "" && !timezone.IsValid(f.Barbershop.Timezone) {
		return nil, fmt.Errorf("invalid timezone %q", f.Barbershop.Timezone)
	}
	for _, p := range f.Loyalty {
		if !loyalty.ValidRewardType(p.RewardType) {
			return nil, fmt.Errorf("loyalty plan %q: invalid reward type %q", p.Name, p.RewardType)
		}
	}
	return &f, nil
}

// Apply inserts the fixture in one transaction and returns the new
// barbershop.
func Apply(ctx context.Context, db *gorm.DB, f *Fixture) (*models.Barbershop, error) {
	var shop *models.Barbershop

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Barbershop{}).
			Where("slug = ? OR owner_id = ?", f.Barbershop.Slug, f.Barbershop.OwnerID).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrAlreadySeeded
		}

		shop = barbershop.NewForOwner(f.Barbershop.OwnerID, "", f.Barbershop.Slug)
		b := f.Barbershop
		shop.Name = firstNonEmpty(b.Name, shop.Name)
		shop.Description = b.Description
		shop.Address = b.Address
		shop.Phone = validators.NormalizePhone(b.Phone)
		shop.Email = validators.NormalizeEmail(b.Email)
		shop.Timezone = firstNonEmpty(b.Timezone, shop.Timezone)
		shop.OpeningTime = firstNonEmpty(b.OpeningTime, shop.OpeningTime)
		shop.ClosingTime = firstNonEmpty(b.ClosingTime, shop.ClosingTime)
		shop.WorkDays = firstNonEmpty(b.WorkDays, shop.WorkDays)
		if err := tx.Create(shop).Error; err != nil {
			return err
		}

		for _, fb := range f.Barbers {
			rate, err := amount(fb.Commission, models.DefaultCommissionRate)
			if err != nil {
				return fmt.Errorf("barber %q: %w", fb.Name, err)
			}
			barber := models.Barber{
				BarbershopID:   shop.ID,
				Name:           fb.Name,
				Phone:          validators.NormalizePhone(fb.Phone),
				CommissionRate: rate,
				IsActive:       true,
				WorkStartTime:  fb.WorkStart,
				WorkEndTime:    fb.WorkEnd,
				WorkDays:       fb.WorkDays,
			}
			if err := tx.Create(&barber).Error; err != nil {
				return err
			}
		}

		categories := map[string]string{}
		for _, fc := range f.Categories {
			category := models.ServiceCategory{
				BarbershopID: shop.ID,
				Name:         fc.Name,
				SortOrder:    fc.SortOrder,
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			categories[fc.Name] = category.ID
		}

		for _, fs := range f.Services {
			price, err := amount(fs.Price, decimal.Zero)
			if err != nil {
				return fmt.Errorf("service %q: %w", fs.Name, err)
			}
			if fs.Duration <= 0 {
				return fmt.Errorf("service %q: duration must be positive", fs.Name)
			}
			service := models.Service{
				BarbershopID: shop.ID,
				Name:         fs.Name,
				Price:        price,
				Duration:     fs.Duration,
				IsCombo:      fs.IsCombo,
				IsActive:     true,
			}
			if fs.Category != "" {
				id, ok := categories[fs.Category]
				if !ok {
					return fmt.Errorf("service %q: unknown category %q", fs.Name, fs.Category)
				}
				service.CategoryID = &id
			}
			if err := tx.Omit("Category").Create(&service).Error; err != nil {
				return err
			}
		}

		for _, fc := range f.Clients {
			client := models.Client{
				BarbershopID: shop.ID,
				Name:         fc.Name,
				Phone:        validators.NormalizePhone(fc.Phone),
				Email:        validators.NormalizeEmail(fc.Email),
			}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
		}

		for _, fp := range f.Loyalty {
			value, err := amount(fp.RewardValue, decimal.Zero)
			if err != nil {
				return fmt.Errorf("loyalty plan %q: %w", fp.Name, err)
			}
			plan := models.LoyaltyPlan{
				BarbershopID:      shop.ID,
				Name:              fp.Name,
				PointsPerCurrency: fp.PointsPerCurrency,
				RewardThreshold:   fp.RewardThreshold,
				RewardValue:       value,
				RewardType:        fp.RewardType,
				IsActive:          true,
			}
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
		}

		for _, fp := range f.Packages {
			price, err := amount(fp.Price, decimal.Zero)
			if err != nil {
				return fmt.Errorf("package %q: %w", fp.Name, err)
			}
			pkg := models.SubscriptionPackage{
				BarbershopID: shop.ID,
				Name:         fp.Name,
				Price:        price,
				Sessions:     fp.Sessions,
				ValidityDays: fp.ValidityDays,
				IsActive:     true,
			}
			if err := tx.Create(&pkg).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}

func amount(s string, def decimal.Decimal) (decimal.Decimal, error) {
	if s == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
