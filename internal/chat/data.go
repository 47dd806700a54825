package chat

// Exercise is one prescribed movement in a workout list.
type Exercise struct {
	Name string
	Reps string
}

// bodyParts is the recognized body-part vocabulary, in match order.
var bodyParts = []string{"chest", "back", "legs", "arms", "core", "fullbody"}

// workouts maps body part -> intensity tier -> exercise list.
var workouts = map[string]map[string][]Exercise{
	"chest": {
		"beginner": {
			{Name: "Wall push-ups", Reps: "3 sets of 10-15"},
			{Name: "Incline push-ups", Reps: "3 sets of 8-12"},
			{Name: "Knee push-ups", Reps: "3 sets of 10-15"},
		},
		"intermediate": {
			{Name: "Regular push-ups", Reps: "3 sets of 12-15"},
			{Name: "Wide push-ups", Reps: "3 sets of 10-12"},
			{Name: "Decline push-ups", Reps: "3 sets of 8-10"},
		},
		"advanced": {
			{Name: "Archer push-ups", Reps: "3 sets of 5-8"},
			{Name: "Explosive push-ups", Reps: "3 sets of 8-10"},
			{Name: "Dive-bomber push-ups", Reps: "3 sets of 6-8"},
		},
	},
	"back": {
		"beginner": {
			{Name: "Supermans", Reps: "3 sets of 12-15"},
			{Name: "Prone Y-raises", Reps: "3 sets of 10-12"},
		},
		"intermediate": {
			{Name: "Reverse snow angels", Reps: "3 sets of 10-12"},
			{Name: "Hip hinge rows", Reps: "3 sets of 12-15"},
		},
		"advanced": {
			{Name: "Pike handstand hold", Reps: "3 sets of 30-45 seconds"},
			{Name: "Table rows", Reps: "3 sets of 10-12"},
		},
	},
	"legs": {
		"beginner": {
			{Name: "Bodyweight squats", Reps: "3 sets of 12-15"},
			{Name: "Glute bridges", Reps: "3 sets of 12-15"},
			{Name: "Standing calf raises", Reps: "3 sets of 15-20"},
		},
		"intermediate": {
			{Name: "Reverse lunges", Reps: "3 sets of 10-12 per leg"},
			{Name: "Bulgarian split squats", Reps: "3 sets of 8-10 per leg"},
			{Name: "Wall sit", Reps: "3 sets of 30-45 seconds"},
		},
		"advanced": {
			{Name: "Jump squats", Reps: "3 sets of 10-12"},
			{Name: "Pistol squat progressions", Reps: "3 sets of 4-6 per leg"},
			{Name: "Single-leg glute bridges", Reps: "3 sets of 10-12 per leg"},
		},
	},
	"arms": {
		"beginner": {
			{Name: "Bench dips (feet on floor)", Reps: "3 sets of 8-12"},
			{Name: "Isometric curls with towel", Reps: "3 sets of 20-30 seconds"},
		},
		"intermediate": {
			{Name: "Close-grip push-ups", Reps: "3 sets of 10-12"},
			{Name: "Straight bar dips", Reps: "3 sets of 8-10"},
		},
		"advanced": {
			{Name: "Diamond push-ups", Reps: "3 sets of 10-12"},
			{Name: "Korean dips", Reps: "3 sets of 6-8"},
		},
	},
	"core": {
		"beginner": {
			{Name: "Dead bugs", Reps: "3 sets of 10 per side"},
			{Name: "Forearm plank", Reps: "3 sets of 20-30 seconds"},
			{Name: "Bird dogs", Reps: "3 sets of 8 per side"},
		},
		"intermediate": {
			{Name: "Bicycle crunches", Reps: "3 sets of 15-20"},
			{Name: "Side plank", Reps: "3 sets of 30 seconds per side"},
			{Name: "Leg raises", Reps: "3 sets of 10-12"},
		},
		"advanced": {
			{Name: "Hanging knee raises", Reps: "3 sets of 10-12"},
			{Name: "Plank to push-up", Reps: "3 sets of 10-12"},
			{Name: "V-ups", Reps: "3 sets of 12-15"},
		},
	},
	"fullbody": {
		"beginner": {
			{Name: "Marching in place", Reps: "3 minutes"},
			{Name: "Bodyweight squats", Reps: "3 sets of 12-15"},
			{Name: "Wall push-ups", Reps: "3 sets of 10-12"},
		},
		"intermediate": {
			{Name: "Burpees without jump", Reps: "3 sets of 8-10"},
			{Name: "Mountain climbers", Reps: "3 sets of 15-20"},
			{Name: "Walk-out to plank", Reps: "3 sets of 8-10"},
		},
		"advanced": {
			{Name: "Full burpees", Reps: "3 sets of 10-12"},
			{Name: "Plank jacks", Reps: "3 sets of 15-20"},
			{Name: "Jump squats + push-ups", Reps: "3 sets of 8-10"},
		},
	},
}

// Meal is one suggested meal in a plan.
type Meal struct {
	Slot        string
	Name        string
	Ingredients []string
	Calories    int
	Recipe      string
}

// mealPlans maps goal -> diet type ("vegetarian"/"nonVegetarian") -> meals.
var mealPlans = map[string]map[string][]Meal{
	"loss": {
		"vegetarian": {
			{Slot: "Breakfast", Name: "Protein Oats", Ingredients: []string{"Oats", "Skim milk", "Berries", "Chia seeds"}, Calories: 350, Recipe: "Cook oats with milk, top with berries and chia seeds"},
			{Slot: "Lunch", Name: "Quinoa Salad", Ingredients: []string{"Quinoa", "Mixed vegetables", "Lemon dressing", "Herbs"}, Calories: 400, Recipe: "Mix cooked quinoa with vegetables and lemon dressing"},
		},
		"nonVegetarian": {
			{Slot: "Breakfast", Name: "Egg Scramble", Ingredients: []string{"3 Eggs", "Spinach", "Tomatoes", "Whole wheat toast"}, Calories: 380, Recipe: "Scramble eggs with vegetables, serve with toast"},
			{Slot: "Lunch", Name: "Grilled Chicken Salad", Ingredients: []string{"Chicken breast", "Mixed greens", "Olive oil", "Vinegar"}, Calories: 420, Recipe: "Grill chicken and serve over fresh salad"},
		},
	},
	"gain": {
		"vegetarian": {
			{Slot: "Breakfast", Name: "Nut Butter Toast", Ingredients: []string{"Whole grain bread", "Peanut butter", "Banana", "Honey"}, Calories: 450, Recipe: "Toast bread, spread peanut butter, top with banana slices and honey"},
			{Slot: "Lunch", Name: "Paneer Rice Bowl", Ingredients: []string{"Brown rice", "Paneer", "Lentils", "Ghee"}, Calories: 620, Recipe: "Serve paneer and lentils over rice with a spoon of ghee"},
		},
		"nonVegetarian": {
			{Slot: "Breakfast", Name: "Protein Power", Ingredients: []string{"4 Eggs", "Avocado", "Whole wheat toast", "Cheese"}, Calories: 520, Recipe: "Scramble eggs with cheese, serve with avocado toast"},
			{Slot: "Lunch", Name: "Beef and Rice", Ingredients: []string{"Lean beef", "White rice", "Broccoli", "Olive oil"}, Calories: 650, Recipe: "Pan-fry beef, serve over rice with steamed broccoli"},
		},
	},
	"maintain": {
		"vegetarian": {
			{Slot: "Breakfast", Name: "Greek Yogurt Bowl", Ingredients: []string{"Greek yogurt", "Granola", "Honey", "Mixed fruit"}, Calories: 400, Recipe: "Layer yogurt with granola, honey, and fruit"},
			{Slot: "Lunch", Name: "Chickpea Wrap", Ingredients: []string{"Whole wheat wrap", "Chickpeas", "Hummus", "Salad greens"}, Calories: 480, Recipe: "Fill the wrap with mashed chickpeas, hummus, and greens"},
		},
		"nonVegetarian": {
			{Slot: "Breakfast", Name: "Omelette and Fruit", Ingredients: []string{"2 Eggs", "Mushrooms", "Peppers", "Apple"}, Calories: 380, Recipe: "Make a vegetable omelette, serve with fruit"},
			{Slot: "Lunch", Name: "Turkey Sandwich", Ingredients: []string{"Whole grain bread", "Turkey breast", "Lettuce", "Mustard"}, Calories: 450, Recipe: "Assemble the sandwich with sliced turkey and greens"},
		},
	},
}

// bmiTips is keyed by the rendered BMI category string; categories without a
// tip fall back to the generic line.
var bmiTips = map[string]string{
	"underweight":   "Focus on strength training and calorie surplus with nutrient-dense foods",
	"normal weight": "Maintain with balanced workouts and nutrition. Great job!",
	"overweight":    "Combine cardio with strength training and moderate calorie deficit",
	"obese":         "Start with low-impact exercises and focus on consistent calorie deficit",
}

const genericTip = "Stay active and eat balanced meals!"

func tipFor(category string) string {
	if tip, ok := bmiTips[category]; ok {
		return tip
	}
	return genericTip
}
