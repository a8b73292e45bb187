package game

// Location is a named map coordinate used when authoring quests.
type Location struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// QuestTemplates holds preset quest payloads for common activities.
// Coordinates are left zero; callers place the quest with FromTemplate.
var QuestTemplates = map[string]QuestSpec{
	"cooking": {
		Title:         "Cooking Session",
		Description:   "Prepare a delicious meal",
		Destination:   "house",
		StatChanges:   Stats{Meal: 25, Sleep: -5, Happiness: 15, Cleanliness: -10, Money: -20},
		ScoreIncrease: 75,
	},
	"eating": {
		Title:         "Meal Time",
		Description:   "Enjoy a satisfying meal",
		Destination:   "house",
		StatChanges:   Stats{Meal: 40, Happiness: 10, Money: -15},
		ScoreIncrease: 50,
	},
	"nap": {
		Title:         "Quick Nap",
		Description:   "Take a refreshing nap",
		Destination:   "house",
		StatChanges:   Stats{Sleep: 30, Happiness: 5},
		ScoreIncrease: 40,
	},
	"fullSleep": {
		Title:         "Good Night's Sleep",
		Description:   "Get a full night of rest",
		Destination:   "house",
		StatChanges:   Stats{Sleep: 80, Happiness: 15, Meal: -10},
		ScoreIncrease: 100,
	},
	"shower": {
		Title:         "Take a Shower",
		Description:   "Clean up and feel refreshed",
		Destination:   "house",
		StatChanges:   Stats{Cleanliness: 50, Happiness: 10, Sleep: -5},
		ScoreIncrease: 60,
	},
	"houseCleaning": {
		Title:         "House Cleaning",
		Description:   "Clean and organize the house",
		Destination:   "house",
		StatChanges:   Stats{Cleanliness: 30, Happiness: 20, Sleep: -15},
		ScoreIncrease: 90,
	},
	"work": {
		Title:         "Work Shift",
		Description:   "Complete a work shift to earn money",
		Destination:   "house",
		StatChanges:   Stats{Meal: -15, Sleep: -20, Happiness: -5, Cleanliness: -10, Money: 150},
		ScoreIncrease: 120,
	},
	"partTimeJob": {
		Title:         "Part-time Job",
		Description:   "Do some part-time work",
		Destination:   "house",
		StatChanges:   Stats{Meal: -10, Sleep: -10, Happiness: 5, Money: 75},
		ScoreIncrease: 80,
	},
	"beachRelax": {
		Title:         "Beach Relaxation",
		Description:   "Relax and unwind at the beach",
		Destination:   "beach",
		StatChanges:   Stats{Happiness: 25, Sleep: -5, Cleanliness: -15},
		ScoreIncrease: 85,
	},
	"mountainHike": {
		Title:         "Mountain Adventure",
		Description:   "Explore the mountains",
		Destination:   "mountain",
		StatChanges:   Stats{Meal: -20, Sleep: -25, Happiness: 30, Cleanliness: -20},
		ScoreIncrease: 150,
	},
	"groceryShopping": {
		Title:         "Grocery Shopping",
		Description:   "Buy food and supplies",
		Destination:   "house",
		StatChanges:   Stats{Meal: 15, Happiness: 5, Sleep: -10, Money: -80},
		ScoreIncrease: 60,
	},
	"clothesShopping": {
		Title:         "Clothes Shopping",
		Description:   "Buy new clothes",
		Destination:   "house",
		StatChanges:   Stats{Happiness: 20, Cleanliness: 10, Sleep: -10, Money: -120},
		ScoreIncrease: 70,
	},
}

// CommonLocations maps well-known map landmarks to coordinates.
var CommonLocations = map[string]Location{
	"houseEntrance":    {X: 523, Y: 538},
	"beachEntrance":    {X: 25, Y: 980},
	"mountainEntrance": {X: 997, Y: 749},
	"townCenter":       {X: 400, Y: 400},
	"parkArea":         {X: 200, Y: 600},
	"shopArea":         {X: 600, Y: 200},
}

// FromTemplate builds a placed QuestSpec from a named template. False
// means the template does not exist.
func FromTemplate(name string, x, y float64) (QuestSpec, bool) {
	template, ok := QuestTemplates[name]
	if !ok {
		return QuestSpec{}, false
	}
	template.X = x
	template.Y = y
	return template, true
}

// FromTemplateAt builds a QuestSpec from a named template placed at a
// common location.
func FromTemplateAt(templateName, locationName string) (QuestSpec, bool) {
	location, ok := CommonLocations[locationName]
	if !ok {
		return QuestSpec{}, false
	}
	return FromTemplate(templateName, location.X, location.Y)
}
