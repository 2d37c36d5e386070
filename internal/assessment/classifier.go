package assessment

// Classification thresholds. Every comparison against them is inclusive.
const (
	HumanInteractionGate  = 4.2
	CreativityGate        = 4.5
	CopilotPatternFloor   = 4.0
	CopilotDataFloor      = 4.0
	AutomatePatternFloor  = 4.0
	AutomateDataFloor     = 4.0
	AutomateComplexityCap = 2.5
)

// Rule identifies which step of the classifier decided a category.
type Rule string

const (
	RuleHumanGate    Rule = "human_gate"
	RuleCopilotGate  Rule = "copilot_exception"
	RuleAutomateGate Rule = "automate_gate"
	RuleWeighted     Rule = "weighted_score"
)

// Score explains a classification: the decisive rule and the three weighted
// scores. The scores are always computed, even when a gate decided.
type Score struct {
	Category Category `json:"category"`
	Rule     Rule     `json:"rule"`
	Automate float64  `json:"automate_score"`
	Augment  float64  `json:"augment_score"`
	Human    float64  `json:"human_score"`
}

// Classify maps five ratings to exactly one category.
// It is pure and total: any real input yields a category.
func Classify(r Ratings) Category {
	return Explain(r).Category
}

// Explain runs the classifier and reports how the decision was reached.
func Explain(r Ratings) Score {
	s := Score{
		Automate: 1.5*r.PatternRecognition + 1.2*r.DataAccessibility - 2*r.Complexity - 2*r.HumanInteraction,
		Augment:  1.5*r.Complexity + 1.2*r.DataAccessibility + 0.5*r.PatternRecognition,
		Human:    2*r.HumanInteraction + 2*r.Creativity - 0.5*r.DataAccessibility,
	}

	// Empathy or pure creativity keeps the task human, unless it is also
	// repetitive and data-rich, in which case AI works as a copilot.
	if r.HumanInteraction >= HumanInteractionGate || r.Creativity >= CreativityGate {
		if r.PatternRecognition >= CopilotPatternFloor && r.DataAccessibility >= CopilotDataFloor {
			s.Category, s.Rule = CategoryAugment, RuleCopilotGate
			return s
		}
		s.Category, s.Rule = CategoryHuman, RuleHumanGate
		return s
	}

	if r.PatternRecognition >= AutomatePatternFloor &&
		r.DataAccessibility >= AutomateDataFloor &&
		r.Complexity <= AutomateComplexityCap {
		s.Category, s.Rule = CategoryAutomate, RuleAutomateGate
		return s
	}

	s.Rule = RuleWeighted
	s.Category = pickWeighted(s.Automate, s.Augment, s.Human)
	return s
}

// pickWeighted returns the category whose score is strictly greatest.
// Any tie lands on the copilot middle ground.
func pickWeighted(automate, augment, human float64) Category {
	switch {
	case automate > augment && automate > human:
		return CategoryAutomate
	case human > augment && human > automate:
		return CategoryHuman
	default:
		return CategoryAugment
	}
}
