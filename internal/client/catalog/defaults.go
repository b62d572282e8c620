package catalog

import "github.com/hfdstore/storefront/internal/models"

// Built-in storefront content, used until the backend catalog loads
// and as the reset target for admin edits.

var defaultBanner = models.BannerContent{
	Text: "✨ Free Shipping on orders above ₹2,999 | Use code ETHNIC20 for 20% off ✨",
}

var defaultHero = models.HeroContent{
	Badge:           "✨ New Wedding Collection 2024",
	HeadlineLine1:   "Celebrate Your",
	HeadlineLine2:   "Indian Heritage",
	Description:     "Discover exquisite ethnic wear handcrafted with love. From traditional sarees to contemporary lehengas, find your perfect festive outfit.",
	ImageURL:        "https://images.unsplash.com/photo-1583391733956-6c78276477e2?w=600&h=750&fit=crop",
	CTAPrimary:      "Shop Collection",
	CTASecondary:    "View Lookbook",
	TrendingLabel:   "🔥 Trending Now",
	TrendingSubtext: "Bridal Lehengas",
}

var defaultHeadings = models.HeadingsContent{
	BestsellingTitle:    "Bestselling Collection",
	BestsellingSubtitle: "Our most loved pieces chosen by thousands of happy customers",
	CategoriesTitle:     "Shop by Category",
	CategoriesSubtitle:  "Explore our curated collection of traditional and contemporary Indian wear",
}

var defaultCategories = []models.Category{
	{ID: "sarees", Name: "Sarees"},
	{ID: "lehengas", Name: "Lehengas"},
	{ID: "kurtis", Name: "Kurtis"},
	{ID: "gowns", Name: "Gowns"},
	{ID: "mens", Name: "Men's Ethnic"},
	{ID: "kids", Name: "Kids' Wear"},
}

var defaultProducts = []models.Product{
	{
		ID:           "1",
		Name:         "Banarasi Silk Saree",
		Price:        8999,
		Image:        "https://images.unsplash.com/photo-1610030469983-98e550d6193c?w=400&h=500&fit=crop",
		Category:     "sarees",
		IsBestseller: true,
		Sizes:        []string{"Free Size"},
	},
	{
		ID:            "2",
		Name:          "Bridal Lehenga Choli",
		Price:         24999,
		OriginalPrice: 32999,
		Image:         "https://images.unsplash.com/photo-1583391733956-6c78276477e2?w=400&h=500&fit=crop",
		Category:      "lehengas",
		IsNew:         true,
		Sizes:         []string{"S", "M", "L", "XL"},
	},
	{
		ID:       "3",
		Name:     "Embroidered Anarkali Kurti",
		Price:    3499,
		Image:    "https://images.unsplash.com/photo-1594633312681-425c7b97ccd1?w=400&h=500&fit=crop",
		Category: "kurtis",
		Sizes:    []string{"S", "M", "L", "XL", "XXL"},
	},
	{
		ID:           "4",
		Name:         "Georgette Party Gown",
		Price:        6999,
		Image:        "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=400&h=500&fit=crop",
		Category:     "gowns",
		IsBestseller: true,
		Sizes:        []string{"S", "M", "L"},
	},
	{
		ID:       "5",
		Name:     "Men's Silk Kurta Set",
		Price:    4599,
		Image:    "https://images.unsplash.com/photo-1622122201714-77da0ca8e5d2?w=400&h=500&fit=crop",
		Category: "mens",
		Sizes:    []string{"M", "L", "XL", "XXL"},
	},
	{
		ID:            "6",
		Name:          "Kids' Festive Sherwani",
		Price:         2999,
		OriginalPrice: 3999,
		Image:         "https://images.unsplash.com/photo-1503919545889-aef636e10ad4?w=400&h=500&fit=crop",
		Category:      "kids",
		IsNew:         true,
		Sizes:         []string{"2-3Y", "4-5Y", "6-7Y"},
	},
}

// DefaultProducts returns a copy of the built-in catalog.
func DefaultProducts() []models.Product {
	out := make([]models.Product, len(defaultProducts))
	copy(out, defaultProducts)
	return out
}
