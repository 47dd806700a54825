// Package metrics computes fitness numbers (BMI, BMR, calorie targets, macro
// split, ideal weight, water intake) from a small profile input. Everything
// here is pure and deterministic; a profile is always recomputed wholesale.
package metrics

import (
	"fmt"
	"math"
	"strings"
)

// Goal is what the user is training toward.
type Goal string

const (
	GoalLoss     Goal = "loss"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
)

// Input is the raw profile the user enters.
type Input struct {
	Age            int     `json:"age"`
	Gender         string  `json:"gender"` // "male" or "female"
	HeightCm       float64 `json:"height"`
	WeightKg       float64 `json:"weight"`
	ActivityFactor float64 `json:"activity"` // 1.2 (sedentary) .. 1.9 (athlete)
	Goal           Goal    `json:"goal"`
}

// ValidationError lists the fields that failed range checks.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

// Validate enforces the accepted ranges: age 10-100, height 100-250 cm,
// weight 20-300 kg.
func (in Input) Validate() error {
	var bad []string
	if in.Age < 10 || in.Age > 100 {
		bad = append(bad, "age (10-100)")
	}
	if in.HeightCm < 100 || in.HeightCm > 250 {
		bad = append(bad, "height (100-250 cm)")
	}
	if in.WeightKg < 20 || in.WeightKg > 300 {
		bad = append(bad, "weight (20-300 kg)")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// Macros is a daily macronutrient plan in grams plus the ratios it came from.
type Macros struct {
	Calories   int    `json:"calories"`
	Protein    int    `json:"protein"`
	Carbs      int    `json:"carbs"`
	Fats       int    `json:"fats"`
	Focus      string `json:"focus"`
	ProteinPct int    `json:"proteinRatio"`
	CarbPct    int    `json:"carbRatio"`
	FatPct     int    `json:"fatRatio"`
}

// WeightRange is an inclusive min-max band in whole kilograms.
type WeightRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r WeightRange) String() string {
	return fmt.Sprintf("%d-%d kg", r.Min, r.Max)
}

// Profile bundles every derived number for one calculation run.
type Profile struct {
	Input
	BMI         float64     `json:"bmi"`
	BMICategory string      `json:"bmiCategory"`
	BMR         int         `json:"bmr"`
	Calories    int         `json:"calories"`
	Diet        Macros      `json:"diet"`
	Level       string      `json:"level"`
	IdealWeight WeightRange `json:"idealWeight"`
	WaterLiters float64     `json:"waterIntake"`
}

// BMI returns weight / height_m², rounded to one decimal.
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return math.Round(weightKg/(heightM*heightM)*10) / 10
}

// BMICategory maps a BMI onto the seven-band classification.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 16:
		return "severely underweight"
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal weight"
	case bmi < 30:
		return "overweight"
	case bmi < 35:
		return "obese class I"
	case bmi < 40:
		return "obese class II"
	default:
		return "obese class III"
	}
}

// BMR estimates resting daily energy expenditure with the Mifflin-St Jeor
// equation.
func BMR(weightKg, heightCm float64, age int, gender string) int {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		return int(math.Round(base + 5))
	}
	return int(math.Round(base - 161))
}

// CalorieTarget scales BMR by the activity factor and applies the goal
// adjustment. The adjustment is a two-tier rule table: -500/+300/0 by goal,
// escalated to -600 when goal is loss and BMI>30, or +400 when goal is gain
// and BMI<18.5.
func CalorieTarget(bmr int, activityFactor float64, goal Goal, weightKg, heightCm float64) int {
	maintenance := float64(bmr) * activityFactor

	var adjustment float64
	switch goal {
	case GoalLoss:
		adjustment = -500
	case GoalGain:
		adjustment = 300
	default:
		adjustment = 0
	}

	bmi := BMI(weightKg, heightCm)
	if goal == GoalLoss && bmi > 30 {
		adjustment = -600
	} else if goal == GoalGain && bmi < 18.5 {
		adjustment = 400
	}

	return int(math.Round(maintenance + adjustment))
}

// DietPlan splits the calorie target into protein/carb/fat grams. Ratios
// depend on the goal, shifted +5% protein / -5% carbs when BMI>30.
func DietPlan(calories int, goal Goal, bmi float64) Macros {
	var proteinRatio, carbRatio, fatRatio float64
	var focus string

	switch goal {
	case GoalLoss:
		proteinRatio, carbRatio, fatRatio = 0.35, 0.40, 0.25
		focus = "higher protein for satiety, controlled carbs, plenty of vegetables and fiber"
	case GoalGain:
		proteinRatio, carbRatio, fatRatio = 0.30, 0.50, 0.20
		focus = "calorie-dense foods, adequate carbs for energy, consistent protein intake"
	default:
		proteinRatio, carbRatio, fatRatio = 0.25, 0.50, 0.25
		focus = "balanced macronutrients matching your maintenance energy needs"
	}

	if bmi > 30 {
		proteinRatio += 0.05
		carbRatio -= 0.05
	}

	c := float64(calories)
	return Macros{
		Calories:   calories,
		Protein:    int(math.Round(proteinRatio * c / 4)),
		Carbs:      int(math.Round(carbRatio * c / 4)),
		Fats:       int(math.Round(fatRatio * c / 9)),
		Focus:      focus,
		ProteinPct: int(math.Round(proteinRatio * 100)),
		CarbPct:    int(math.Round(carbRatio * 100)),
		FatPct:     int(math.Round(fatRatio * 100)),
	}
}

// LevelFor suggests a training level. The 25<=BMI<30 non-senior band falls
// through to "beginner"; that branching is intentional and load-bearing for
// routine selection, so keep it as is.
func LevelFor(bmi float64, age int) string {
	if bmi < 18.5 || bmi >= 30 || age > 50 {
		return "beginner"
	}
	if bmi >= 18.5 && bmi < 25 {
		return "intermediate"
	}
	return "beginner"
}

// IdealWeight returns the 18.5-24.9 BMI band converted to kilograms for the
// given height, floored/ceiled to whole kilograms.
func IdealWeight(heightCm float64) WeightRange {
	heightM := heightCm / 100
	return WeightRange{
		Min: int(math.Floor(18.5 * heightM * heightM)),
		Max: int(math.Ceil(24.9 * heightM * heightM)),
	}
}

// WaterIntake recommends daily water in liters: 33 ml per kg, scaled up with
// activity, rounded to one decimal.
func WaterIntake(weightKg, activityFactor float64) float64 {
	base := weightKg * 0.033
	multiplier := 1 + (activityFactor-1.2)*0.2
	return math.Round(base*multiplier*10) / 10
}

// Calculate derives the full profile from in. All outputs are recomputed
// together; there is no partial recomputation path.
func Calculate(in Input) Profile {
	bmi := BMI(in.WeightKg, in.HeightCm)
	bmr := BMR(in.WeightKg, in.HeightCm, in.Age, in.Gender)
	calories := CalorieTarget(bmr, in.ActivityFactor, in.Goal, in.WeightKg, in.HeightCm)

	return Profile{
		Input:       in,
		BMI:         bmi,
		BMICategory: BMICategory(bmi),
		BMR:         bmr,
		Calories:    calories,
		Diet:        DietPlan(calories, in.Goal, bmi),
		Level:       LevelFor(bmi, in.Age),
		IdealWeight: IdealWeight(in.HeightCm),
		WaterLiters: WaterIntake(in.WeightKg, in.ActivityFactor),
	}
}
