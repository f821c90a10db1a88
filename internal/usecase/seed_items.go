package usecase

import (
	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 開発用のサンプル商品
func sampleItems() []model.Item {
	return []model.Item{
		{
			Name:        "Wireless Headphones",
			Description: "Premium noise-canceling wireless headphones with 30-hour battery life",
			Price:       decimal.RequireFromString("199.99"),
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
			Category:    model.CategoryElectronics,
			Stock:       50,
		},
		{
			Name:        "Smart Watch",
			Description: "Fitness tracking smartwatch with heart rate monitor and GPS",
			Price:       decimal.RequireFromString("299.99"),
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
			Category:    model.CategoryElectronics,
			Stock:       75,
		},
		{
			Name:        "Designer Backpack",
			Description: "Stylish and functional laptop backpack with multiple compartments",
			Price:       decimal.RequireFromString("89.99"),
			Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500",
			Category:    model.CategoryFashion,
			Stock:       100,
		},
		{
			Name:        "Coffee Maker",
			Description: "Programmable coffee maker with thermal carafe and auto-brew feature",
			Price:       decimal.RequireFromString("79.99"),
			Image:       "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6?w=500",
			Category:    model.CategoryHome,
			Stock:       60,
		},
		{
			Name:        "Yoga Mat",
			Description: "Extra thick non-slip yoga mat with carrying strap",
			Price:       decimal.RequireFromString("34.99"),
			Image:       "https://images.unsplash.com/photo-1592432678016-e910b452f9a2?w=500",
			Category:    model.CategorySports,
			Stock:       120,
		},
		{
			Name:        "Bestseller Novel",
			Description: "Latest fiction bestseller - thrilling mystery novel",
			Price:       decimal.RequireFromString("24.99"),
			Image:       "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=500",
			Category:    model.CategoryBooks,
			Stock:       200,
		},
		{
			Name:        "Skincare Set",
			Description: "Complete skincare routine set with cleanser, toner, and moisturizer",
			Price:       decimal.RequireFromString("59.99"),
			Image:       "https://images.unsplash.com/photo-1556228578-0d85b1a4d571?w=500",
			Category:    model.CategoryBeauty,
			Stock:       80,
		},
		{
			Name:        "Bluetooth Speaker",
			Description: "Portable waterproof Bluetooth speaker with 360 degree sound",
			Price:       decimal.RequireFromString("49.99"),
			Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500",
			Category:    model.CategoryElectronics,
			Stock:       90,
		},
	}
}
