package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/macrolens/mealscore/internal/domain"
)

// Languages advisories can be rendered in. The first entry is the fallback.
var supportedLanguages = []language.Tag{language.English, language.Arabic}

var languageMatcher = language.NewMatcher(supportedLanguages)

var advisoryMessages = newAdvisoryCatalog()

type translation struct {
	en, ar string
}

var nutrientNames = map[domain.Nutrient]translation{
	domain.NutrientIron:       {"iron", "الحديد"},
	domain.NutrientCalcium:    {"calcium", "الكالسيوم"},
	domain.NutrientZinc:       {"zinc", "الزنك"},
	domain.NutrientIodine:     {"iodine", "اليود"},
	domain.NutrientVitaminA:   {"vitamin A", "فيتامين أ"},
	domain.NutrientVitaminD:   {"vitamin D", "فيتامين د"},
	domain.NutrientVitaminC:   {"vitamin C", "فيتامين ج"},
	domain.NutrientVitaminB12: {"vitamin B12", "فيتامين ب12"},
	domain.NutrientFolate:     {"folate", "حمض الفوليك"},
}

var nutrientSources = map[domain.Nutrient]translation{
	domain.NutrientIron: {
		"Consider adding iron-rich foods like lentils, spinach, or lean meats.",
		"يُنصح بإضافة أطعمة غنية بالحديد مثل العدس، السبانخ، أو اللحوم الحمراء.",
	},
	domain.NutrientCalcium: {
		"Increase dairy intake or calcium-fortified plant milks.",
		"يُنصح بزيادة تناول الألبان أو بدائلها المدعمة بالكالسيوم.",
	},
	domain.NutrientZinc: {
		"Add zinc sources such as beef, chickpeas, or pumpkin seeds.",
		"أضف مصادر للزنك مثل اللحم البقري أو الحمص أو بذور اليقطين.",
	},
	domain.NutrientIodine: {
		"Include iodine sources such as fish, eggs, milk, or iodized salt.",
		"أضف مصادر لليود مثل السمك أو البيض أو الحليب أو الملح المعالج باليود.",
	},
	domain.NutrientVitaminA: {
		"Add orange and dark green vegetables such as sweet potato, carrots, or spinach.",
		"أضف خضروات برتقالية وورقية داكنة مثل البطاطا الحلوة أو الجزر أو السبانخ.",
	},
	domain.NutrientVitaminD: {
		"Include oily fish, eggs, or vitamin D fortified milk.",
		"أضف الأسماك الدهنية أو البيض أو الحليب المدعم بفيتامين د.",
	},
	domain.NutrientVitaminC: {
		"Add fresh fruit or vegetables such as guava, oranges, or broccoli.",
		"أضف فواكه أو خضروات طازجة مثل الجوافة أو البرتقال أو البروكلي.",
	},
	domain.NutrientVitaminB12: {
		"Include animal foods such as eggs, fish, meat, or dairy.",
		"أضف أطعمة حيوانية المصدر مثل البيض أو السمك أو اللحوم أو الألبان.",
	},
	domain.NutrientFolate: {
		"Add legumes and leafy greens such as foul, lentils, or spinach.",
		"أضف البقوليات والخضروات الورقية مثل الفول أو العدس أو السبانخ.",
	},
}

var advisoryText = map[domain.AdvisoryCode]translation{
	domain.WarningLowMicronutrient: {
		"Low %s intake detected (%.0f%% of the reference intake).",
		"تم اكتشاف نقص في تناول %s (%.0f%% من الاحتياج اليومي).",
	},
	domain.WarningUltraProcessed: {
		"High proportion of ultra-processed foods (NOVA 4): %.0f%% of the meal.",
		"نسبة عالية من الأطعمة فائقة المعالجة (نوفا 4): %.0f%% من الوجبة.",
	},
	domain.WarningSodiumSugarProxy: {
		"Potential high sodium or added sugar detected.",
		"احتمال وجود نسبة عالية من الصوديوم أو السكر المضاف.",
	},
	domain.WarningMissingMicronutrients: {
		"Some foods have no micronutrient data, so the score may be overstated.",
		"بعض الأطعمة لا تتوفر لها بيانات المغذيات الدقيقة، لذا قد تكون النتيجة أعلى من الواقع.",
	},
	domain.RecommendReplaceUltraProcessed: {
		"Replace ultra-processed snacks with whole fruits or nuts.",
		"استبدل الوجبات الخفيفة المعالجة بالفواكه الطازجة أو المكسرات.",
	},
}

func newAdvisoryCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(key string, t translation) {
		b.SetString(language.English, key, t.en)
		b.SetString(language.Arabic, key, t.ar)
	}
	for code, t := range advisoryText {
		set(string(code), t)
	}
	for n, t := range nutrientNames {
		set(nutrientKey(n), t)
	}
	for n, t := range nutrientSources {
		set(sourceKey(n), t)
	}
	return b
}

func nutrientKey(n domain.Nutrient) string { return "nutrient." + string(n) }

func sourceKey(n domain.Nutrient) string {
	return string(domain.RecommendNutrientSource) + "." + string(n)
}

// requestLanguage picks the response language from ?lang= first, then
// Accept-Language, falling back to English
func requestLanguage(c *gin.Context) language.Tag {
	_, index := language.MatchStrings(languageMatcher, c.Query("lang"), c.GetHeader("Accept-Language"))
	return supportedLanguages[index]
}

// LocalizedAdvisory is an advisory with display text in the response language
type LocalizedAdvisory struct {
	domain.Advisory
	Message string `json:"message"`
}

func localizeAdvisories(tag language.Tag, advisories []domain.Advisory) []LocalizedAdvisory {
	p := message.NewPrinter(tag, message.Catalog(advisoryMessages))
	out := make([]LocalizedAdvisory, len(advisories))
	for i, a := range advisories {
		out[i] = LocalizedAdvisory{Advisory: a, Message: advisoryMessage(p, a)}
	}
	return out
}

func advisoryMessage(p *message.Printer, a domain.Advisory) string {
	switch a.Code {
	case domain.WarningLowMicronutrient:
		return p.Sprintf(string(a.Code), p.Sprintf(nutrientKey(a.Nutrient)), a.Value)
	case domain.WarningUltraProcessed:
		return p.Sprintf(string(a.Code), a.Value)
	case domain.RecommendNutrientSource:
		return p.Sprintf(sourceKey(a.Nutrient))
	default:
		return p.Sprintf(string(a.Code))
	}
}
