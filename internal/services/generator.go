package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/metajournal/reward-engine/internal/models"
)

// typeWeight pairs a drawable reward type with its draw probability. The
// slice is ordered so cumulative iteration is deterministic; a plain map
// would make the draw depend on iteration order.
type typeWeight struct {
	rewardType models.RewardType
	weight     float64
}

var drawWeights = []typeWeight{
	{models.RewardBasic, 0.60},
	{models.RewardSilver, 0.25},
	{models.RewardGold, 0.10},
	{models.RewardSpecial, 0.05},
}

// valueRange is an inclusive uniform integer range.
type valueRange struct {
	min, max int
}

var valueRanges = map[models.RewardType]valueRange{
	models.RewardBasic:     {5, 15},
	models.RewardSilver:    {20, 40},
	models.RewardGold:      {50, 100},
	models.RewardSpecial:   {150, 300},
	models.RewardMilestone: {500, 500},
}

var actionFlavors = map[models.UserAction][]string{
	models.ActionCompletedJournalEntry: {"Journal", "Writer's", "Reflection"},
	models.ActionGeneratedStoryChapter: {"Storyteller's", "Narrative", "Chapter"},
	models.ActionCompletedBodyScan:     {"Mindful", "Calm", "Grounded"},
	models.ActionMetaReflection:        {"Insight", "Thinker's", "Deep"},
}

var genericFlavors = []string{"Explorer's", "Reward"}

var typeNouns = map[models.RewardType][]string{
	models.RewardBasic:   {"Token", "Spark", "Badge"},
	models.RewardSilver:  {"Star", "Medal", "Charm"},
	models.RewardGold:    {"Crown", "Trophy", "Medallion"},
	models.RewardSpecial: {"Treasure", "Relic", "Wonder"},
}

var descriptionTemplates = map[models.RewardType][]string{
	models.RewardBasic: {
		"A small token for showing up.",
		"Every entry counts, and so does this.",
	},
	models.RewardSilver: {
		"A shining mark of steady practice.",
		"Your consistency is starting to gleam.",
	},
	models.RewardGold: {
		"A rare find for a dedicated mind.",
		"Golden proof of real commitment.",
	},
	models.RewardSpecial: {
		"Something extraordinary for an extraordinary effort.",
		"A once-in-a-while wonder, earned today.",
	},
}

// RewardGenerator synthesizes rewards once the scheduler has granted one.
type RewardGenerator struct {
	clock Clock
	rng   RandomSource
}

// NewRewardGenerator creates a generator with injected time and randomness.
func NewRewardGenerator(clock Clock, rng RandomSource) *RewardGenerator {
	return &RewardGenerator{
		clock: clock,
		rng:   rng,
	}
}

// GenerateReward draws a reward type, value, name and description for the
// given action. Milestone rewards are never drawn here; they come from the
// progression tracker.
func (g *RewardGenerator) GenerateReward(action models.UserAction) models.Reward {
	rewardType := g.drawType()
	value := g.drawValue(rewardType)
	now := g.clock.Now()
	expiry := now.Add(models.RewardExpiryWindow)

	return models.Reward{
		ID:               uuid.NewString(),
		Type:             rewardType,
		Value:            value,
		Name:             g.composeName(action, rewardType),
		Description:      g.composeDescription(rewardType, value),
		DateEarned:       now,
		ExpiryDate:       &expiry,
		AssociatedAction: action,
	}
}

// drawType picks a reward type by accumulating the ordered weights until the
// cumulative sum exceeds a uniform draw.
func (g *RewardGenerator) drawType() models.RewardType {
	r := g.rng.Float64()
	cumulative := 0.0
	for _, tw := range drawWeights {
		cumulative += tw.weight
		if r < cumulative {
			return tw.rewardType
		}
	}
	// Unreachable unless float rounding leaves a sliver above the last sum.
	return models.RewardBasic
}

func (g *RewardGenerator) drawValue(rewardType models.RewardType) int {
	vr := valueRanges[rewardType]
	if vr.min == vr.max {
		return vr.min
	}
	return vr.min + g.rng.Intn(vr.max-vr.min+1)
}

func (g *RewardGenerator) composeName(action models.UserAction, rewardType models.RewardType) string {
	flavors, ok := actionFlavors[action]
	if !ok || len(flavors) == 0 {
		flavors = genericFlavors
	}
	nouns, ok := typeNouns[rewardType]
	if !ok || len(nouns) == 0 {
		nouns = []string{"Reward"}
	}

	flavor := flavors[g.rng.Intn(len(flavors))]
	noun := nouns[g.rng.Intn(len(nouns))]
	return flavor + " " + noun
}

func (g *RewardGenerator) composeDescription(rewardType models.RewardType, value int) string {
	templates, ok := descriptionTemplates[rewardType]
	if !ok || len(templates) == 0 {
		templates = []string{"A reward for your practice."}
	}
	template := templates[g.rng.Intn(len(templates))]
	return fmt.Sprintf("%s Worth %d points.", template, value)
}
