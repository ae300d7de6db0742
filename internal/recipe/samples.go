package recipe

import "recipebox/internal/model"

// SampleRecipes returns the built-in recipes shown when the API has nothing
// to show or cannot be reached. Each call returns fresh slices.
func SampleRecipes() []model.Recipe {
	return []model.Recipe{
		{
			ID:          1,
			Title:       "Creamy Garlic Pasta",
			Description: "Silky parmesan garlic sauce tossed with al dente linguine and fresh herbs.",
			Category:    "dinner",
			Categories:  []string{},
			Duration:    "25 mins",
			Difficulty:  "Easy",
			Diet:        "vegetarian",
			Cuisine:     "italian",
			Image:       "https://images.unsplash.com/photo-1467003909585-2f8a72700288?auto=format&fit=crop&w=1200&q=80",
			Tags:        []string{"One-pot", "Comfort"},
			Steps: []string{
				"Cook linguine until al dente.",
				"Saute garlic in butter and olive oil.",
				"Add cream and parmesan, then toss pasta.",
				"Finish with herbs and pepper.",
			},
		},
		{
			ID:          2,
			Title:       "Berry Yogurt Bowl",
			Description: "Greek yogurt topped with fresh berries, toasted oats, and honey.",
			Category:    "breakfast",
			Categories:  []string{},
			Duration:    "10 mins",
			Difficulty:  "Easy",
			Diet:        "vegetarian",
			Cuisine:     "indian",
			Image:       "https://images.unsplash.com/photo-1505253758473-96b7015fcd40?auto=format&fit=crop&w=1200&q=80",
			Tags:        []string{"Healthy", "No-cook"},
			Steps: []string{
				"Spoon yogurt into a bowl.",
				"Add berries and toasted oats.",
				"Drizzle honey and serve.",
			},
		},
		{
			ID:          3,
			Title:       "Spiced Chickpea Wrap",
			Description: "Roasted chickpeas, crunchy veg, and tahini yogurt in a soft wrap.",
			Category:    "lunch",
			Categories:  []string{},
			Duration:    "20 mins",
			Difficulty:  "Medium",
			Diet:        "vegetarian",
			Cuisine:     "asian",
			Image:       "https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=1200&q=80",
			Tags:        []string{"Vegetarian", "Meal-prep"},
			Steps: []string{
				"Roast chickpeas with spices.",
				"Mix tahini with yogurt and lemon.",
				"Layer veggies and chickpeas on wrap.",
				"Drizzle sauce and fold.",
			},
		},
		{
			ID:          4,
			Title:       "Lemon Drizzle Cake",
			Description: "Soft loaf cake soaked with a bright, tangy lemon syrup glaze.",
			Category:    "dessert",
			Categories:  []string{},
			Duration:    "1 hr",
			Difficulty:  "Medium",
			Diet:        "vegetarian",
			Cuisine:     "indian",
			Image:       "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?auto=format&fit=crop&w=1200&q=80",
			Tags:        []string{"Baked", "Sweet"},
			Steps: []string{
				"Cream butter and sugar, add eggs.",
				"Fold in flour and lemon zest, bake.",
				"Pour lemon syrup over warm cake.",
				"Cool before slicing.",
			},
		},
		{
			ID:          5,
			Title:       "Citrus Iced Tea",
			Description: "Black tea shaken with orange and lemon, lightly sweetened and chilled.",
			Category:    "drinks",
			Categories:  []string{},
			Duration:    "15 mins",
			Difficulty:  "Easy",
			Diet:        "vegetarian",
			Cuisine:     "asian",
			Image:       "https://images.unsplash.com/photo-1497534446932-c925b458314e?auto=format&fit=crop&w=1200&q=80",
			Tags:        []string{"Cold", "Batch"},
			Steps: []string{
				"Brew black tea and cool.",
				"Add citrus juice and sweetener.",
				"Serve over ice with slices.",
			},
		},
		{
			ID:          6,
			Title:       "Roasted Veggie Quinoa",
			Description: "Nutty quinoa with roasted seasonal veggies and lemon dressing.",
			Category:    "dinner",
			Categories:  []string{},
			Duration:    "35 mins",
			Difficulty:  "Easy",
			Diet:        "vegetarian",
			Cuisine:     "italian",
			Image:       "https://images.unsplash.com/photo-1467003909585-2f8a72700288?auto=format&fit=crop&w=1200&q=80",
			Tags:        []string{"Gluten-free", "Prep"},
			Steps: []string{
				"Roast chopped vegetables with olive oil.",
				"Simmer quinoa until fluffy.",
				"Toss quinoa with roasted veg and dressing.",
				"Finish with herbs and feta (optional).",
			},
		},
	}
}
