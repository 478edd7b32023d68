package classify

import (
	"strings"

	"sift/internal/gallery"
)

// UnknownLabel is recorded when the classifier produced no usable result.
const UnknownLabel = "Unknown"

// Resolution is the single category chosen for a photo, together with the
// label and confidence that justify it.
type Resolution struct {
	CategoryID string
	Label      string
	Confidence float64
}

type categoryKeywords struct {
	categoryID string
	keywords   []string
}

// Label matching is case-insensitive substring matching against this table.
// People run first: a people keyword anywhere in a label beats every other
// bucket for that label. Unmatched labels fall through to cat_other.
var keywordTable = []categoryKeywords{
	{gallery.CategoryPeople, []string{
		"person", "people", "selfie", "portrait", "face", "man", "woman",
		"boy", "girl", "child", "baby", "bride", "groom", "wedding",
		"necktie", "jersey", "suit", "sweatshirt", "gown", "uniform",
	}},
	{gallery.CategoryPets, []string{
		"dog", "cat", "puppy", "kitten", "pet", "retriever", "terrier",
		"hamster", "rabbit", "parrot", "bird", "goldfish",
	}},
	{gallery.CategoryFood, []string{
		"food", "pizza", "burger", "sandwich", "salad", "fruit", "cake",
		"dessert", "coffee", "espresso", "drink", "plate", "meal", "sushi",
		"bread",
	}},
	{gallery.CategoryNature, []string{
		"beach", "palm", "tree", "mountain", "forest", "lake", "river",
		"ocean", "sea", "sky", "sunset", "sunrise", "landscape", "flower",
		"garden", "snow", "waterfall", "field", "cliff", "volcano",
	}},
	{gallery.CategoryDocuments, []string{
		"document", "paper", "text", "receipt", "screenshot", "whiteboard",
		"book", "menu", "envelope", "notebook", "letter",
	}},
	{gallery.CategoryVehicles, []string{
		"car", "truck", "bus", "motorcycle", "bicycle", "train", "airplane",
		"boat", "scooter", "van", "vehicle", "convertible", "jeep",
	}},
}

// CategoryForLabel maps a raw classifier label onto a category id.
func CategoryForLabel(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return gallery.CategoryOther
	}
	for _, entry := range keywordTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.categoryID
			}
		}
	}
	return gallery.CategoryOther
}

// Resolve converts a ranked prediction list into exactly one category.
//
// The rank-1 label picks the tentative category. If that category is not
// people, the remaining ranks are scanned in order and the first
// people-mapping label overrides the tentative choice, adopting that label
// and confidence as the recorded justification. A clothing label at rank 3
// is treated as stronger evidence of a person than an animal label at rank
// 1; the bias is deliberate triage policy.
//
// An empty prediction list resolves to the catch-all with the Unknown label
// and zero confidence.
func Resolve(predictions []Prediction) Resolution {
	if len(predictions) == 0 {
		return Resolution{
			CategoryID: gallery.CategoryOther,
			Label:      UnknownLabel,
			Confidence: 0,
		}
	}

	top := predictions[0]
	resolution := Resolution{
		CategoryID: CategoryForLabel(top.Label),
		Label:      top.Label,
		Confidence: top.Confidence,
	}

	if resolution.CategoryID != gallery.CategoryPeople {
		for _, prediction := range predictions[1:] {
			if CategoryForLabel(prediction.Label) == gallery.CategoryPeople {
				resolution = Resolution{
					CategoryID: gallery.CategoryPeople,
					Label:      prediction.Label,
					Confidence: prediction.Confidence,
				}
				break
			}
		}
	}

	return resolution
}
