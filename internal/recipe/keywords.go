package recipe

import (
	"regexp"
	"strings"
)

// Keyword heuristics for telling cooking instructions apart from channel
// chatter. English plus the Korean terms common in the cooking channels the
// app targets.

// actionKeywords mark actual cooking actions.
var actionKeywords = []string{
	// cooking methods
	"add", "mix", "stir", "cook", "fry", "boil", "bake", "roast", "grill", "steam", "sauté",
	"simmer", "braise", "sear", "caramelize", "deglaze", "reduce", "heat", "warm",
	// preparation
	"chop", "cut", "slice", "dice", "mince", "peel", "grate", "shred", "julienne",
	"whisk", "beat", "fold", "knead", "roll", "press", "crush",
	// seasoning and finishing
	"season", "salt", "pepper", "garnish", "drizzle", "sprinkle", "toss",
	// combining
	"combine", "blend", "marinate", "marinade", "coat", "dredge",
	// serving
	"serve", "plate", "arrange", "top", "finish",
	// korean cooking terms
	"추가", "넣어", "볶아", "끓여", "굽어", "찌고", "자르고", "썰고", "다지고",
	"갈아", "섞어", "양념", "볶음", "끓임", "굽기", "찜", "튀김",
}

// excludeKeywords mark conversational filler that never belongs in a step.
var excludeKeywords = []string{
	"subscribe", "like", "comment", "share", "video", "channel", "thanks", "thank you",
	"welcome", "hello", "hey", "hi", "guys", "everyone", "today", "today we",
	"before we", "if you", "you can", "you should", "i hope", "i think",
	"make sure", "don't forget", "remember", "also", "by the way",
	"구독", "좋아요", "댓글", "공유", "영상", "채널", "감사", "안녕", "오늘", "오늘은",
}

// stepIndicators mark explicit instruction sequencing.
var stepIndicators = []string{
	"first", "next", "then", "now", "after", "add the", "put the", "place the",
	"pour", "pour in", "pour the", "mix in", "stir in", "add in",
	"단계", "첫", "다음", "그리고", "이제", "마지막", "넣고", "넣어서",
}

var (
	measurementRE = regexp.MustCompile(`(?i)\d+\s*(cup|cups|tbsp|tsp|gram|grams|ounce|ounces|ml|liter|liters|분|시간|컵|스푼|티스푼|그램)`)
	ingredientRE  = regexp.MustCompile(`(?i)(chicken|beef|pork|fish|vegetable|onion|garlic|tomato|rice|noodle|pasta|egg|cheese|butter|oil|flour|sugar|salt|pepper|water|sauce|broth|stock|meat|vegetables|ingredients|carrot|potato|bell pepper|mushroom|spinach|lettuce|celery|herbs|spices)`)
	// recipeStartRE recognizes an opening that introduces the actual recipe.
	recipeStartRE = regexp.MustCompile(`(?i)(ingredient|recipe|cook|make|prepare|add|mix|chop|cut|재료|요리|만들|준비)`)
	// spamRE is the light reject filter used by the lenient tiers.
	spamRE = regexp.MustCompile(`(?i)(subscribe|like|comment|share|channel|video|thanks|thank you|구독|좋아요|댓글)`)
)

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isInstruction applies the strict Tier A classification: no conversational
// keywords, at least one action or sequencing cue, and either a measurement,
// a known ingredient, or enough text to be substantive.
func isInstruction(text string) bool {
	lower := strings.ToLower(text)
	if containsAny(lower, excludeKeywords) {
		return false
	}
	hasAction := containsAny(lower, actionKeywords)
	hasIndicator := containsAny(lower, stepIndicators)
	hasMeasurement := measurementRE.MatchString(text)
	hasIngredient := ingredientRE.MatchString(text)
	return (hasAction || hasIndicator) && (hasMeasurement || hasIngredient || len(text) > 30)
}
