package gateway

import (
	"google.golang.org/genai"

	"github.com/josephgoksu/kai/internal/assessment"
)

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

var roleDetailsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"tasks":      stringList(),
		"hardSkills": stringList(),
		"softSkills": stringList(),
	},
}

var assessedTasksSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description":        {Type: genai.TypeString},
			"patternRecognition": {Type: genai.TypeInteger},
			"humanInteraction":   {Type: genai.TypeInteger},
			"complexity":         {Type: genai.TypeInteger},
			"creativity":         {Type: genai.TypeInteger},
			"dataAccessibility":  {Type: genai.TypeInteger},
			"category": {
				Type: genai.TypeString,
				Enum: []string{
					string(assessment.CategoryAutomate),
					string(assessment.CategoryAugment),
					string(assessment.CategoryHuman),
				},
			},
		},
	},
}

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"percentages": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"automate": {Type: genai.TypeNumber},
				"augment":  {Type: genai.TypeNumber},
				"human":    {Type: genai.TypeNumber},
			},
		},
		"timeline": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"period":     {Type: genai.TypeString},
					"prediction": {Type: genai.TypeString},
					"impactLevel": {
						Type: genai.TypeString,
						Enum: []string{string(assessment.ImpactHigh), string(assessment.ImpactMedium), string(assessment.ImpactLow)},
					},
				},
			},
		},
		"tools":           stringList(),
		"skillsToDevelop": stringList(),
		"actionPlan":      {Type: genai.TypeString},
	},
}
