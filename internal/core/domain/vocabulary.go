package domain

// Category identifies one of the four card classifications.
type Category string

const (
	CategoryAgeGroups Category = "ageGroups"
	CategorySkills    Category = "skills"
	CategoryStages    Category = "stages"
	CategoryTypes     Category = "types"
)

// Categories lists every category in a stable order.
var Categories = []Category{CategoryAgeGroups, CategorySkills, CategoryStages, CategoryTypes}

// Term is one vocabulary entry: the caller-facing id, the tag stored on cards
// and a display name.
type Term struct {
	ID   string `json:"id"`
	Tag  string `json:"tag,omitempty"`
	Name string `json:"name"`
}

var vocabulary = map[Category][]Term{
	CategoryAgeGroups: {
		{ID: "primary", Tag: "начальные-классы", Name: "Начальные классы (1-4)"},
		{ID: "secondary", Tag: "старшие-классы", Name: "Старшие классы (5-11)"},
	},
	CategorySkills: {
		{ID: "critical", Tag: "критическое-мышление", Name: "Критическое мышление"},
		{ID: "teamwork", Tag: "командная-работа", Name: "Командная работа"},
		{ID: "reflection", Tag: "рефлексия", Name: "Рефлексия"},
		{ID: "creative", Tag: "креативное-мышление", Name: "Креативное мышление"},
		{ID: "systematization", Tag: "систематизация-материала", Name: "Систематизация материала"},
		{ID: "communication", Tag: "коммуникация", Name: "Коммуникативные навыки"},
	},
	CategoryStages: {
		{ID: "lesson-start", Tag: "начало-урока", Name: "Начало урока"},
		{ID: "new-material", Tag: "объяснение-нового-материала", Name: "Объяснение нового материала"},
		{ID: "practice", Tag: "закрепление", Name: "Закрепление"},
		{ID: "lesson-end", Tag: "конец-урока", Name: "Конец урока"},
	},
	CategoryTypes: {
		{ID: "individual", Tag: "индивидуальная", Name: "Индивидуальная"},
		{ID: "pair", Tag: "парная", Name: "Парная"},
		{ID: "team", Tag: "командная", Name: "Командная"},
		{ID: "frontal", Tag: "фронтальная", Name: "Фронтальная"},
	},
}

// Aims are the lesson goals offered by the card form. They are not stored on cards.
var Aims = []Term{
	{ID: "develop", Name: "Развитие навыков"},
	{ID: "consolidate", Name: "Закрепление знаний"},
	{ID: "diagnose", Name: "Диагностика"},
	{ID: "creative", Name: "Творческое развитие"},
}

// Terms returns a copy of the vocabulary for cat. An unknown category gives
// an empty slice.
func Terms(cat Category) []Term {
	terms := vocabulary[cat]
	out := make([]Term, len(terms))
	copy(out, terms)
	return out
}

// StorageTag maps a caller id to its storage tag. Ids with no mapping are
// assumed to already be in storage form and are returned unchanged.
func StorageTag(cat Category, id string) string {
	for _, t := range vocabulary[cat] {
		if t.ID == id {
			return t.Tag
		}
	}
	return id
}

// StorageTags translates ids to storage tags, dropping blanks and duplicates
// while keeping the first-seen order.
func StorageTags(cat Category, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		tag := StorageTag(cat, id)
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
