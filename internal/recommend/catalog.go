package recommend

import "github.com/pageza/smartcanteen/backend/internal/types"

// DefaultCatalog is the built-in canteen menu used when no catalog has been
// imported. Sugar, protein and carbs are grams, sodium is milligrams.
func DefaultCatalog() []types.FoodItem {
	return []types.FoodItem{
		{ID: 101, Name: "Margherita Pizza", Description: "Fresh mozzarella, basil & tomato sauce", Image: "🍕", Price: 250, Calories: 650, Sugar: 8, Protein: 15, Sodium: 1200, Carbs: 80},
		{ID: 102, Name: "Fresh Green Salad", Description: "Mixed greens with house dressing", Image: "🥗", Price: 180, Calories: 150, Sugar: 2, Protein: 5, Sodium: 150, Carbs: 10},
		{ID: 103, Name: "Gourmet Burger", Description: "Beef patty with cheese & veggies", Image: "🍔", Price: 220, Calories: 850, Sugar: 12, Protein: 35, Sodium: 1500, Carbs: 60},
		{ID: 104, Name: "Ramen Noodles", Description: "Authentic Japanese noodle soup", Image: "🍜", Price: 280, Calories: 550, Sugar: 4, Protein: 20, Sodium: 1800, Carbs: 70},
		{ID: 105, Name: "Falafel Wrap", Description: "Crispy falafel with tahini sauce", Image: "🥙", Price: 200, Calories: 420, Sugar: 3, Protein: 12, Sodium: 800, Carbs: 50},
		{ID: 106, Name: "Sushi Platter", Description: "Assorted sushi with wasabi", Image: "🍱", Price: 320, Calories: 350, Sugar: 5, Protein: 18, Sodium: 900, Carbs: 45},
		{ID: 107, Name: "Spicy Tacos", Description: "Seasoned meat with fresh toppings", Image: "🌮", Price: 190, Calories: 480, Sugar: 2, Protein: 22, Sodium: 1100, Carbs: 40},
		{ID: 108, Name: "Chocolate Cake", Description: "Rich & decadent chocolate delight", Image: "🍰", Price: 150, Calories: 520, Sugar: 45, Protein: 6, Sodium: 300, Carbs: 65},
		{ID: 109, Name: "Grilled Salmon", Description: "Lean protein, zero carbs.", Image: "🐟", Price: 350, Calories: 400, Sugar: 0, Protein: 42, Sodium: 400, Carbs: 0},
		{ID: 110, Name: "Quinoa Bowl", Description: "Low GI, high protein.", Image: "🥣", Price: 230, Calories: 320, Sugar: 2, Protein: 14, Sodium: 200, Carbs: 45},
		{ID: 111, Name: "French Fries", Description: "Crispy golden fried potatoes", Image: "🍟", Price: 120, Calories: 450, Sugar: 1, Protein: 4, Sodium: 800, Carbs: 60},
		{ID: 112, Name: "Pepperoni Pizza", Description: "Spicy pepperoni with extra cheese", Image: "🍕", Price: 290, Calories: 800, Sugar: 10, Protein: 30, Sodium: 1600, Carbs: 90},
		{ID: 113, Name: "White Rice Bowl", Description: "Steamed premium white rice", Image: "🍚", Price: 90, Calories: 250, Sugar: 0, Protein: 4, Sodium: 10, Carbs: 55},
		{ID: 114, Name: "Pasta Carbonara", Description: "Creamy pasta with bacon and egg", Image: "🍝", Price: 270, Calories: 700, Sugar: 5, Protein: 25, Sodium: 1100, Carbs: 75},
		{ID: 115, Name: "Fried Chicken", Description: "Deep-fried breaded chicken pieces", Image: "🍗", Price: 240, Calories: 900, Sugar: 2, Protein: 40, Sodium: 1400, Carbs: 40},
		{ID: 116, Name: "Vegetable Noodles", Description: "Stir-fried noodles with farm veggies", Image: "🥢", Price: 180, Calories: 450, Sugar: 6, Protein: 8, Sodium: 1200, Carbs: 65},
		{ID: 117, Name: "Double Cheese Burger", Description: "Extra beef patty with double molten cheese", Image: "🍔", Price: 320, Calories: 1100, Sugar: 15, Protein: 50, Sodium: 1800, Carbs: 70},
		{ID: 118, Name: "Crispy Onion Rings", Description: "Crispy batter-fried onion rings", Image: "🧅", Price: 140, Calories: 600, Sugar: 4, Protein: 5, Sodium: 950, Carbs: 55},
		{ID: 119, Name: "Donut Assortment", Description: "Sugary glazed donuts with sprinkles", Image: "🍩", Price: 160, Calories: 580, Sugar: 48, Protein: 6, Sodium: 420, Carbs: 75},
		{ID: 120, Name: "Sweet Iced Tea", Description: "Refreshing but highly sweetened tea", Image: "🍹", Price: 80, Calories: 180, Sugar: 42, Protein: 0, Sodium: 30, Carbs: 45},
		{ID: 121, Name: "Beef Lasagna", Description: "Layers of pasta with rich meat sauce and cheese", Image: "🥘", Price: 300, Calories: 850, Sugar: 8, Protein: 35, Sodium: 1400, Carbs: 60},
		{ID: 122, Name: "Mac & Cheese", Description: "Classic creamy macaroni and cheese", Image: "🧀", Price: 180, Calories: 650, Sugar: 4, Protein: 20, Sodium: 1100, Carbs: 70},
		{ID: 123, Name: "Chicken Sandwich", Description: "Grilled chicken breast with mayo and lettuce", Image: "🥪", Price: 210, Calories: 550, Sugar: 6, Protein: 28, Sodium: 950, Carbs: 45},
		{ID: 124, Name: "Fruit Custard", Description: "Creamy custard with seasonal fruits", Image: "🍧", Price: 110, Calories: 280, Sugar: 35, Protein: 8, Sodium: 120, Carbs: 40},
		{ID: 125, Name: "Baked Potatoes", Description: "Fluffy baked potatoes with sour cream", Image: "🥔", Price: 130, Calories: 300, Sugar: 2, Protein: 6, Sodium: 450, Carbs: 55},
		{ID: 126, Name: "Fruit Punch", Description: "Sweet mixed fruit juice blend", Image: "🥤", Price: 100, Calories: 220, Sugar: 40, Protein: 1, Sodium: 50, Carbs: 55},
		{ID: 127, Name: "Quinoa Veggie Bowl", Description: "High fiber quinoa with mixed vegetables", Image: "🥣", Price: 190, Calories: 320, Sugar: 0, Protein: 12, Sodium: 150, Carbs: 45},
		{ID: 128, Name: "Steamed Broccoli", Description: "Fresh steamed broccoli florets", Image: "🥦", Price: 120, Calories: 55, Sugar: 0, Protein: 4, Sodium: 25, Carbs: 10},
		{ID: 129, Name: "Roasted Almonds", Description: "Unsalted dry roasted almonds", Image: "🥜", Price: 150, Calories: 160, Sugar: 0, Protein: 6, Sodium: 5, Carbs: 6},
		{ID: 130, Name: "Greek Yogurt Plain", Description: "Creamy sugar-free greek yogurt", Image: "🍦", Price: 140, Calories: 100, Sugar: 0, Protein: 18, Sodium: 60, Carbs: 6},
	}
}
