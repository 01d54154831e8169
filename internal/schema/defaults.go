package schema

// Field names referenced outside the schema package.
const (
	FieldGameTitle    = "gameTitle"
	FieldGenre        = "genre"
	FieldDataUsage    = "dataUsage"
	FieldSubmissionID = "submissionId"
)

// questionnaire lists the game questionnaire in column order.
var questionnaire = []FieldDefinition{
	{Name: FieldGameTitle, Label: "Game Title", Required: true},
	{Name: FieldGenre, Label: "Genre(s)", Required: true},
	{Name: "platforms", Label: "Platforms"},
	{Name: "releaseDate", Label: "Release Date(s)"},
	{Name: "developer", Label: "Developer(s)"},
	{Name: "publisher", Label: "Publisher(s)"},
	{Name: "targetAudience", Label: "Target Audience"},
	{Name: "setting", Label: "Setting"},
	{Name: "context", Label: "Cultural/Social Context"},
	{Name: "plotSummary", Label: "Plot Summary (1-2 sentences)"},
	{Name: "plotEvents", Label: "Key Plot Events/Twists"},
	{Name: "endings", Label: "Endings (if multiple, describe differences)"},
	{Name: "protagonist", Label: "Protagonist(s) (Details)"},
	{Name: "supportingCharacters", Label: "Supporting Characters (Roles & Significance)"},
	{Name: "antagonist", Label: "Antagonist(s) (Motivations & Goals)"},
	{Name: "otherEntities", Label: "Other Notable Entities"},
	{Name: "coreMechanics", Label: "Core Gameplay Mechanics"},
	{Name: "uniqueFeatures", Label: "Unique Gameplay Features"},
	{Name: "difficulty", Label: "Difficulty & Accessibility"},
	{Name: "visualStyle", Label: "Visual Style"},
	{Name: "audioDesign", Label: "Audio Design (Music, Sound Effects, Voice Acting)"},
	{Name: "coreThemes", Label: "Core Themes"},
	{Name: "influences", Label: "Influences & Inspirations"},
	{Name: "worldStructure", Label: "World Structure"},
	{Name: "worldInteractivity", Label: "World Interactivity"},
	{Name: "lore", Label: "Lore & Backstory"},
	{Name: "criticalReception", Label: "Critical Reception"},
	{Name: "sales", Label: "Sales & Commercial Performance"},
	{Name: "industryInfluence", Label: "Industry Influence"},
	{Name: "personalExperience", Label: "Personal Experience"},
	{Name: "strengthsWeaknesses", Label: "Strengths & Weaknesses (Personal)"},
	{Name: "overallRating", Label: "Overall Rating/Summary"},
	{Name: "worldReactivity", Label: "World Reactivity"},
	{Name: "replayabilityFeatures", Label: "Replayability Features"},
	{Name: "communityPresence", Label: "Community Presence"},
	{Name: "postLaunchSupport", Label: "Post-Launch Support"},
	{Name: FieldDataUsage, Label: "Data Usage Consent", Required: true, Kind: KindConsent},
	{Name: FieldSubmissionID, Label: "Submission ID", Kind: KindSubmissionID},
}

var defaultSchema = MustNew(questionnaire)

// Default returns the canonical game questionnaire schema.
func Default() *Schema {
	return defaultSchema
}
