package domain

// Option is one selectable answer to a question.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question is one step of the adopter questionnaire.
type Question struct {
	Key     PreferenceKey `json:"key"`
	Prompt  string        `json:"prompt"`
	Options []Option      `json:"options"`
}

// Questions returns the fixed questionnaire in asking order.
// Front ends walk it to fill a Preferences value; the matching core
// only consumes the answers.
func Questions() []Question {
	return []Question{
		{
			Key:    KeySpecies,
			Prompt: "What kind of animal would you like to adopt?",
			Options: []Option{
				{Label: "A dog", Value: string(SpeciesDog)},
				{Label: "A cat", Value: string(SpeciesCat)},
				{Label: "No preference", Value: NoPreference},
			},
		},
		{
			Key:    KeyEnergy,
			Prompt: "How much energy are you looking for in a companion?",
			Options: []Option{
				{Label: "High (very active, playful)", Value: string(LevelHigh)},
				{Label: "Medium (balanced, regular walks)", Value: string(LevelMedium)},
				{Label: "Low (calm, relaxed, naps)", Value: string(LevelLow)},
			},
		},
		{
			Key:    KeyFriendliness,
			Prompt: "How affectionate should your animal be?",
			Options: []Option{
				{Label: "Very affectionate", Value: string(LevelHigh)},
				{Label: "Friendly but independent", Value: string(LevelMedium)},
				{Label: "Independent and reserved", Value: string(LevelLow)},
			},
		},
		{
			Key:    KeyAge,
			Prompt: "Which age do you prefer?",
			Options: []Option{
				{Label: "Young (more work, very playful)", Value: string(AgeYoung)},
				{Label: "Adult (settled personality)", Value: string(AgeAdult)},
				{Label: "Senior (quiet and composed)", Value: string(AgeSenior)},
			},
		},
		{
			Key:    KeyHome,
			Prompt: "What is your living environment?",
			Options: []Option{
				{Label: "Apartment", Value: string(HomeApartment)},
				{Label: "House with a yard", Value: string(HomeHouseYard)},
				{Label: "Very busy household", Value: string(HomeActive)},
				{Label: "Calm and quiet household", Value: string(HomeQuiet)},
			},
		},
		{
			Key:    KeyExperience,
			Prompt: "Have you had pets before?",
			Options: []Option{
				{Label: "Yes, I am experienced", Value: string(ExperienceExperienced)},
				{Label: "No, this will be my first", Value: string(ExperienceFirstTime)},
			},
		},
		{
			Key:    KeyChildren,
			Prompt: "Are there children in your home?",
			Options: []Option{
				{Label: "Yes", Value: "true"},
				{Label: "No", Value: "false"},
			},
		},
	}
}
