package skill

import (
	"context"
	"fmt"
	"strings"

	"github.com/yunseo-dev/neis-kakaobot-go/internal/allergy"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/dateutil"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/intent"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/kakao"
	"github.com/yunseo-dev/neis-kakaobot-go/internal/neis"
)

// mealSlots is the fixed slot order for meal cards. NEIS codes meals
// 1=조식, 2=중식, 3=석식.
var mealSlots = []struct {
	code string
	name string
}{
	{"1", "조식"},
	{"2", "중식"},
	{"3", "석식"},
}

// MealHandler serves meal menu queries, including the static allergen
// code table.
type MealHandler struct {
	client *neis.Client
}

// NewMealHandler creates a meal handler.
func NewMealHandler(client *neis.Client) *MealHandler {
	return &MealHandler{client: client}
}

func (h *MealHandler) Capability() intent.Capability {
	return intent.CapabilityMeal
}

func (h *MealHandler) Handle(ctx context.Context, res intent.Resolution) (kakao.Response, error) {
	if res.SubType == intent.SubTypeAllergy {
		text := allergyHeader + allergy.ListText()
		return kakao.NewSimpleTextResponse(text, quickReplies(intent.CapabilityMeal)...), nil
	}

	meals, err := h.client.Meals(ctx, res.Range.Start, res.Range.End)
	if err != nil {
		return kakao.Response{}, fmt.Errorf("fetch meals: %w", err)
	}
	if len(meals) == 0 {
		text := fmt.Sprintf(noDataMessages[intent.CapabilityMeal], dateutil.FormatRange(res.Range.Start, res.Range.End))
		return kakao.NewSimpleTextResponse(text, quickReplies(intent.CapabilityMeal)...), nil
	}

	if res.Range.SingleDay() {
		cards := mealCards(meals)
		return kakao.NewCarouselResponse(cards, quickReplies(intent.CapabilityMeal)...), nil
	}

	text := mealRangeText(meals)
	return kakao.NewSimpleTextResponse(text, quickReplies(intent.CapabilityMeal)...), nil
}

// mealCards builds one card per meal slot in the fixed slot order.
// Slots without a record get a placeholder card; records with an
// unknown slot code are appended to the last card.
func mealCards(meals []neis.Meal) []kakao.Card {
	bySlot := make(map[string]*neis.Meal, len(meals))
	var extras []neis.Meal
	for i := range meals {
		meal := meals[i]
		known := false
		for _, slot := range mealSlots {
			if meal.SlotCode == slot.code {
				known = true
				break
			}
		}
		if known {
			bySlot[meal.SlotCode] = &meals[i]
		} else {
			extras = append(extras, meal)
		}
	}

	var date string
	if len(meals) > 0 {
		date = dateutil.FormatShort(meals[0].Date)
	}

	cards := make([]kakao.Card, 0, len(mealSlots))
	for _, slot := range mealSlots {
		card := kakao.Card{Title: fmt.Sprintf("%s %s", date, slot.name)}
		meal, ok := bySlot[slot.code]
		if !ok {
			card.Description = noMenuPlaceholder
			cards = append(cards, card)
			continue
		}
		card.Description = mealBody(*meal)
		cards = append(cards, card)
	}

	for _, extra := range extras {
		last := &cards[len(cards)-1]
		last.Description += "\n\n[" + extra.SlotName + "]\n" + mealBody(extra)
	}

	return cards
}

// mealRangeText renders a multi-day range as plain text grouped by
// day, listing only the slots that have records.
func mealRangeText(meals []neis.Meal) string {
	var b strings.Builder
	var lastDay string
	for _, meal := range meals {
		day := dateutil.FormatShort(meal.Date)
		if day != lastDay {
			if lastDay != "" {
				b.WriteString("\n\n")
			}
			b.WriteString(day)
			lastDay = day
		}
		b.WriteString("\n[" + meal.SlotName + "]\n")
		b.WriteString(dishLines(meal.Dishes))
	}
	return b.String()
}

func mealBody(meal neis.Meal) string {
	body := dishLines(meal.Dishes)
	if meal.Calorie != "" {
		body += "\n칼로리: " + meal.Calorie
	}
	return body
}

// dishLines renders dishes one per line, with allergen codes resolved
// to names.
func dishLines(dishes []neis.Dish) string {
	lines := make([]string, len(dishes))
	for i, dish := range dishes {
		line := dish.Name
		if names := allergy.Names(dish.AllergyCodes); len(names) > 0 {
			line += " (" + strings.Join(names, ", ") + ")"
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
